package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/dmitrijs2005/worldpub/internal/client/models"
	"github.com/dmitrijs2005/worldpub/internal/client/publish"
	"github.com/dmitrijs2005/worldpub/internal/client/repositories/project"
	"github.com/dmitrijs2005/worldpub/internal/client/status"
	"github.com/dustin/go-humanize"
)

// Publish runs the upload pipeline for the given artifact paths:
// asset bundle, then optionally a unity package and a thumbnail image.
// Ctrl+C during the run cancels the upload instead of killing the REPL.
func (a *App) Publish(ctx context.Context, args []string) error {
	session := &models.UploadSession{
		Kind:      models.KindWorld,
		AssetPath: args[0],
	}
	if len(args) > 1 {
		session.PackagePath = args[1]
	}
	if len(args) > 2 {
		session.ImagePath = args[2]
	}

	state, err := project.LoadState(ctx, a.repo, session.Kind)
	if err != nil {
		return err
	}
	session.Kind = state.Kind()

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	pipeline := publish.New(publish.Options{
		API:       a.apiClient,
		Transfer:  a.transfer,
		Auth:      a.authService,
		State:     state,
		Config:    a.config,
		Reporter:  status.NewReporter(TerminalSinks(os.Stdout)),
		Cancelled: status.FromContext(runCtx),
		Logger:    a.log,
	})

	if _, err := pipeline.Run(runCtx, session); err != nil {
		return err
	}
	return nil
}

// TerminalSinks renders reporter traffic as plain lines on w, with a
// byte-count progress line per chunk.
func TerminalSinks(w io.Writer) status.Sinks {
	return status.Sinks{
		Status: func(header, st, subStatus string) {
			fmt.Fprintf(w, "%s %s %s\n", header, st, subStatus)
		},
		Progress: func(done, total int64) {
			fmt.Fprintf(w, "  %s / %s\n", humanize.Bytes(uint64(done)), humanize.Bytes(uint64(total)))
		},
		State: func(s models.UploadState) {
			if s.Terminal() {
				fmt.Fprintf(w, "[%s]\n", s)
			}
		},
		Error: func(header, details string) {
			fmt.Fprintf(w, "ERROR %s: %s\n", header, details)
		},
	}
}

// Status prints the local project state: content kind, blueprint id and
// the last successfully published version.
func (a *App) Status(ctx context.Context) error {
	state, err := project.LoadState(ctx, a.repo, models.KindWorld)
	if err != nil {
		return err
	}

	id, err := state.BlueprintID(ctx)
	if err != nil {
		return err
	}
	if id == "" {
		fmt.Println("No blueprint published yet from this project.")
		return nil
	}

	version, err := state.LastVersion(ctx)
	if err != nil {
		return err
	}
	done, err := state.CompletedOnboarding(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("kind: %s\nblueprint: %s\nlast version: %d\nonboarded: %t\n", state.Kind(), id, version, done)
	return nil
}
