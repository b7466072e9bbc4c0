// Package status carries the pipeline's observable side effects: a
// cancellation predicate polled by long-running steps and a reporter with
// four replaceable notification sinks.
package status

import (
	"context"

	"github.com/dmitrijs2005/worldpub/internal/client/models"
	"github.com/dmitrijs2005/worldpub/internal/logging"
)

// CancelToken reports whether the operator has requested abort. It is polled
// by long-running steps, typically between transfer chunks.
type CancelToken func() bool

// NeverCancelled is the default token for non-interactive runs.
func NeverCancelled() bool { return false }

// FromContext derives a token that trips once ctx is done.
func FromContext(ctx context.Context) CancelToken {
	return func() bool {
		select {
		case <-ctx.Done():
			return true
		default:
			return false
		}
	}
}

// Sinks names the four notification channels a status consumer may attach.
// Nil fields are replaced with no-ops, so a zero Sinks is a valid headless
// configuration.
type Sinks struct {
	// Status receives three-level human-readable status text. Most recent
	// call wins; no history is retained.
	Status func(header, status, subStatus string)

	// Progress receives byte counters for the file transfer in flight.
	// Within one transfer, done is non-decreasing and total constant; the
	// pair resets to (0, newTotal) at the start of each new file.
	Progress func(done, total int64)

	// State receives UploadState transitions. Exactly one terminal value
	// arrives per pipeline run.
	State func(s models.UploadState)

	// Error receives an unrecoverable failure, in addition to (not instead
	// of) the terminal state transition.
	Error func(header, details string)
}

// Reporter fans pipeline notifications out to the attached sinks. All
// methods are side-effect only and safe to call on a nil receiver; they run
// inside cleanup paths of other stages and must never panic.
type Reporter struct {
	sinks Sinks
}

func NewReporter(s Sinks) *Reporter {
	if s.Status == nil {
		s.Status = func(string, string, string) {}
	}
	if s.Progress == nil {
		s.Progress = func(int64, int64) {}
	}
	if s.State == nil {
		s.State = func(models.UploadState) {}
	}
	if s.Error == nil {
		s.Error = func(string, string) {}
	}
	return &Reporter{sinks: s}
}

func (r *Reporter) SetStatus(header, status, subStatus string) {
	if r == nil {
		return
	}
	r.sinks.Status(header, status, subStatus)
}

func (r *Reporter) SetUploadProgress(done, total int64) {
	if r == nil {
		return
	}
	r.sinks.Progress(done, total)
}

func (r *Reporter) SetUploadState(s models.UploadState) {
	if r == nil {
		return
	}
	r.sinks.State(s)
}

func (r *Reporter) SetErrorState(header, details string) {
	if r == nil {
		return
	}
	r.sinks.Error(header, details)
}

// LoggerSinks adapts a structured logger into a headless status consumer.
func LoggerSinks(log logging.Logger) Sinks {
	ctx := context.Background()
	return Sinks{
		Status: func(header, status, subStatus string) {
			log.Info(ctx, "upload status", "header", header, "status", status, "sub_status", subStatus)
		},
		Progress: func(done, total int64) {
			log.Debug(ctx, "upload progress", "done", done, "total", total)
		},
		State: func(s models.UploadState) {
			log.Info(ctx, "upload state", "state", string(s))
		},
		Error: func(header, details string) {
			log.Error(ctx, "upload error", "header", header, "details", details)
		},
	}
}
