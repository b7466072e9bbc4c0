package models

import "regexp"

// Remote file references are opaque identifiers embedded in URL strings,
// e.g. https://files.example.com/asset/file_6a1f.../world.bundle.
var fileIDPattern = regexp.MustCompile(`file_[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)

// FileID extracts the remote file identifier from a URL. It returns an empty
// string when the URL carries no identifier, which signals "create a new
// remote file" rather than "append a version to an existing one".
func FileID(url string) string {
	return fileIDPattern.FindString(url)
}
