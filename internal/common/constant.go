package common

// AuthHeaderName is the HTTP header used to carry the access token on
// outbound API requests.
const AuthHeaderName = "Authorization"

// File kinds understood by the file-transfer collaborator.
const (
	FileKindAsset   = "asset"
	FileKindPackage = "package"
	FileKindImage   = "image"
)
