package publish

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/worldpub/internal/client/models"
	"github.com/dmitrijs2005/worldpub/internal/client/transfer"
	"github.com/dmitrijs2005/worldpub/internal/filex"
	"github.com/dustin/go-humanize"
)

// uploadFile is the file upload client for one artifact. A missing local
// file is a soft failure: it is logged and an empty URL is returned so the
// pipeline can skip optional artifacts. Failures inside the transfer
// collaborator propagate as hard failures; there is no retry here.
func (p *Pipeline) uploadFile(ctx context.Context, localPath, existingURL, friendlyName, kind string) (string, error) {
	if !filex.Exists(localPath) {
		p.log.Error(ctx, "local file missing, skipping upload", "kind", kind, "path", localPath)
		return "", nil
	}

	// A non-empty existing reference appends a new version to the stored
	// remote file instead of creating a new one.
	existingID := models.FileID(existingURL)

	start := time.Now()
	url, err := p.transfer.UploadFile(ctx, transfer.UploadOptions{
		LocalPath:      localPath,
		ExistingFileID: existingID,
		FileKind:       kind,
		FriendlyName:   friendlyName,
		Reporter:       p.reporter,
		Cancelled:      p.cancelled,
	})
	if err != nil {
		return "", err
	}

	var size uint64
	if info, statErr := os.Stat(localPath); statErr == nil {
		size = uint64(info.Size())
	}
	p.reporter.SetStatus(
		friendlyName+" Upload Succeeded!",
		fmt.Sprintf("%s in %s", humanize.Bytes(size), time.Since(start).Round(time.Millisecond)),
		"",
	)
	p.log.Info(ctx, "file uploaded", "kind", kind, "url", url)
	return url, nil
}
