package publish

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/worldpub/internal/client/awaitx"
	"github.com/dmitrijs2005/worldpub/internal/client/models"
	"github.com/dmitrijs2005/worldpub/internal/common"
)

// Commit waits do not poll the cancellation token: once a create or update
// call is in flight, cancellation can no longer abort it, only prevent the
// next stage from starting.

// commitUpdate applies the session's metadata override and the freshly
// uploaded URLs onto the fetched record, then saves it. An upload stage
// that was skipped produced an empty URL and must not blank out a
// previously stored one.
func (p *Pipeline) commitUpdate(ctx context.Context, rec *models.Blueprint, session *models.UploadSession, assetURL, pkgURL, imageURL string) (*models.Blueprint, error) {
	if assetURL != "" {
		rec.AssetURL = assetURL
	}
	if pkgURL != "" {
		rec.UnityPackageURL = pkgURL
	}
	if imageURL != "" {
		rec.ImageURL = imageURL
	}
	session.Override.Apply(rec)

	p.reporter.SetStatus("Saving Blueprint...", rec.Name, rec.ID)

	completion := awaitx.New[*models.Blueprint]()
	p.api.Save(ctx, rec, completion.Succeed, completion.Fail)

	saved, err := completion.Wait(ctx, nil, p.cfg.PollInterval)
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// commitCreate fills in the author and placeholder metadata a first upload
// needs, guarantees a non-empty image, then registers the record. On
// success the issued identifier is written back into local state so the
// next run resolves to the update path.
func (p *Pipeline) commitCreate(ctx context.Context, rec *models.Blueprint, session *models.UploadSession, assetURL, pkgURL, imageURL string) (*models.Blueprint, error) {
	user, err := p.auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	rec.AuthorID = user.ID
	rec.AuthorName = user.Name
	if rec.Name == "" {
		rec.Name = defaultName(rec.Kind)
	}
	if rec.Description == "" {
		rec.Description = "Edit this description from the dashboard."
	}
	if rec.ReleaseStatus == "" {
		rec.ReleaseStatus = "private"
	}

	rec.AssetURL = assetURL
	if pkgURL != "" {
		rec.UnityPackageURL = pkgURL
	}

	if imageURL == "" {
		// The service rejects a first creation without an image; fall back
		// to a generated blank placeholder.
		if imageURL, err = p.uploadPlaceholderImage(ctx, rec.ID); err != nil {
			return nil, err
		}
	}
	if imageURL == "" {
		return nil, common.ErrMissingImage
	}
	rec.ImageURL = imageURL

	session.Override.Apply(rec)

	p.reporter.SetStatus("Creating Blueprint...", rec.Name, rec.ID)

	completion := awaitx.New[*models.Blueprint]()
	p.api.Create(ctx, rec, completion.Succeed, completion.Fail)

	created, err := completion.Wait(ctx, nil, p.cfg.PollInterval)
	if err != nil {
		return nil, err
	}

	if err := p.state.SetBlueprintID(ctx, created.ID); err != nil {
		return nil, fmt.Errorf("persist issued blueprint id: %w", err)
	}
	return created, nil
}

func (p *Pipeline) uploadPlaceholderImage(ctx context.Context, id string) (string, error) {
	dir, err := p.stagingDir()
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, id+"-placeholder.png")
	if err := writeBlankImage(path, 1200, 900); err != nil {
		return "", fmt.Errorf("generate placeholder image: %w", err)
	}

	return p.uploadFile(ctx, path, "", "Image", common.FileKindImage)
}

func defaultName(kind models.ContentKind) string {
	if kind == models.KindAvatar {
		return "New Avatar"
	}
	return "New World"
}
