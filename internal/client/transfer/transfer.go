// Package transfer moves artifact bytes to the content service's
// S3-compatible file store. It owns chunking, per-chunk progress and
// cancellation; retry policy (if any) also belongs here, not to callers.
package transfer

import (
	"context"

	"github.com/dmitrijs2005/worldpub/internal/client/status"
)

// UploadOptions describes one file transfer.
type UploadOptions struct {
	LocalPath string

	// ExistingFileID, when non-empty, appends a new version to an already
	// stored remote file instead of creating a new one.
	ExistingFileID string

	// FileKind is one of common.FileKindAsset/Package/Image.
	FileKind string

	// FriendlyName appears in status text.
	FriendlyName string

	Reporter  *status.Reporter
	Cancelled status.CancelToken
}

// FileTransfer is the file-transfer protocol collaborator.
type FileTransfer interface {
	// UploadFile stores the local file remotely and returns a non-empty
	// remote URL on success. The returned URL embeds the remote file
	// identifier.
	UploadFile(ctx context.Context, opts UploadOptions) (string, error)
}
