// Package publish contains the upload pipeline: a sequential, cancellable,
// progress-reporting state machine that pushes a blueprint's artifacts to
// the content service and commits metadata via create-or-update.
package publish

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/worldpub/internal/client/api"
	"github.com/dmitrijs2005/worldpub/internal/client/config"
	"github.com/dmitrijs2005/worldpub/internal/client/models"
	"github.com/dmitrijs2005/worldpub/internal/client/repositories/project"
	"github.com/dmitrijs2005/worldpub/internal/client/services"
	"github.com/dmitrijs2005/worldpub/internal/client/status"
	"github.com/dmitrijs2005/worldpub/internal/client/transfer"
	"github.com/dmitrijs2005/worldpub/internal/common"
	"github.com/dmitrijs2005/worldpub/internal/filex"
	"github.com/dmitrijs2005/worldpub/internal/logging"
)

// Options wires the pipeline's collaborators. Reporter, Cancelled and
// Logger are optional; a nil Reporter falls back to logger-backed sinks and
// a nil Cancelled to never-cancelled, so headless runs need no extra setup.
type Options struct {
	API       api.Client
	Transfer  transfer.FileTransfer
	Auth      services.AuthService
	State     *project.State
	Config    *config.Config
	Reporter  *status.Reporter
	Cancelled status.CancelToken
	Logger    logging.Logger
}

// Pipeline drives one upload run at a time. Concurrent runs require
// independent Pipeline instances with independent sessions; runs targeting
// the same blueprint id can race and avoiding that is the caller's
// responsibility.
type Pipeline struct {
	api       api.Client
	transfer  transfer.FileTransfer
	auth      services.AuthService
	state     *project.State
	cfg       *config.Config
	reporter  *status.Reporter
	cancelled status.CancelToken
	log       logging.Logger
}

func New(opts Options) *Pipeline {
	log := opts.Logger
	if log == nil {
		log = logging.NewDefault()
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = status.NewReporter(status.LoggerSinks(log))
	}
	cancelled := opts.Cancelled
	if cancelled == nil {
		cancelled = status.NeverCancelled
	}

	return &Pipeline{
		api:       opts.API,
		transfer:  opts.Transfer,
		auth:      opts.Auth,
		state:     opts.State,
		cfg:       opts.Config,
		reporter:  reporter,
		cancelled: cancelled,
		log:       log,
	}
}

// Run executes the pipeline for one session:
//
//	resolve blueprint -> prepare artifacts -> upload image -> upload asset
//	-> upload package (optional) -> commit metadata -> terminal state.
//
// Exactly one terminal UploadState is emitted through the reporter,
// regardless of which stage failed. On success the committed record is
// returned.
func (p *Pipeline) Run(ctx context.Context, session *models.UploadSession) (*models.Blueprint, error) {
	terminal := models.StateFailed
	defer func() { p.reporter.SetUploadState(terminal) }()

	p.reporter.SetUploadState(models.StateUploading)
	p.reporter.SetStatus("Preparing Upload...", "", "")

	// fail funnels every hard failure through exactly one error-sink call.
	// A cancelled run emits no error, only the cancelled terminal state.
	fail := func(header string, err error) (*models.Blueprint, error) {
		if errors.Is(err, common.ErrCancelled) {
			terminal = models.StateCancelled
			p.reporter.SetStatus("Upload Cancelled", header, "")
			p.log.Warn(ctx, "upload cancelled", "stage", header)
			return nil, err
		}
		p.reporter.SetErrorState(header, err.Error())
		p.log.Error(ctx, "upload failed", "stage", header, "error", err)
		return nil, fmt.Errorf("%s: %w", header, err)
	}

	// Preconditions: checked before any remote call.
	if p.state == nil {
		return fail("No Project State", common.ErrNoProjectState)
	}
	if err := p.auth.EnsureLoggedIn(ctx); err != nil {
		return fail("Login Required", err)
	}
	if !filex.Exists(session.AssetPath) {
		return fail("Asset Bundle Missing", fmt.Errorf("%w: %s", common.ErrMissingAssetFile, session.AssetPath))
	}
	if session.Platform == "" {
		session.Platform = p.cfg.Platform
	}

	localID, err := p.state.BlueprintID(ctx)
	if err != nil {
		return fail("Project State Error", err)
	}

	p.reporter.SetStatus("Resolving Blueprint...", localID, "")
	res, err := p.resolveBlueprint(ctx, localID, p.state.Kind())
	if err != nil {
		return fail("Blueprint Resolution Failed", err)
	}
	session.IsUpdate = res.IsUpdate
	rec := res.Record

	if err := p.state.SetCompletedOnboarding(ctx, res.Onboarded); err != nil {
		return fail("Project State Error", err)
	}
	if rec.ID == "" {
		if rec.ID, err = p.state.AssignID(ctx); err != nil {
			return fail("Identifier Assignment Failed", err)
		}
	}

	rec.BumpVersion()

	staged, err := p.prepareArtifacts(session, rec)
	if err != nil {
		return fail("Artifact Staging Failed", err)
	}

	imagePath := session.ImagePath
	if session.Override != nil && session.Override.ImagePath != "" {
		imagePath = session.Override.ImagePath
	}
	imageURL, err := p.uploadFile(ctx, imagePath, rec.ImageURL, "Image", common.FileKindImage)
	if err != nil {
		return fail("Image Upload Failed", err)
	}

	assetURL, err := p.uploadFile(ctx, staged.asset, rec.AssetURL, "Asset Bundle", common.FileKindAsset)
	if err != nil {
		return fail("Asset Upload Failed", err)
	}
	// The primary asset is mandatory; never commit metadata without it.
	if assetURL == "" {
		return fail("Asset Upload Failed", common.ErrEmptyAssetURL)
	}

	var pkgURL string
	if staged.pkg != "" {
		if pkgURL, err = p.uploadFile(ctx, staged.pkg, rec.UnityPackageURL, "Unity Package", common.FileKindPackage); err != nil {
			return fail("Package Upload Failed", err)
		}
	}

	if session.IsUpdate {
		rec, err = p.commitUpdate(ctx, rec, session, assetURL, pkgURL, imageURL)
		if err != nil {
			return fail("Update Failed", err)
		}
	} else {
		rec, err = p.commitCreate(ctx, rec, session, assetURL, pkgURL, imageURL)
		if err != nil {
			return fail("Create Failed", err)
		}
	}

	if err := p.state.SetLastVersion(ctx, rec.Version); err != nil {
		p.log.Warn(ctx, "persist last version", "error", err)
	}

	p.reporter.SetStatus("Upload Complete!", rec.Name, rec.ID)
	terminal = models.StateFinished
	return rec, nil
}
