package models

// UploadState describes a pipeline run for external observers. Transitions
// are monotonic forward; exactly one terminal value is emitted per run.
type UploadState string

const (
	StateIdle      UploadState = "idle"
	StateUploading UploadState = "uploading"
	StateFinished  UploadState = "finished"
	StateFailed    UploadState = "failed"
	StateCancelled UploadState = "cancelled"
)

// Terminal reports whether s ends a pipeline run.
func (s UploadState) Terminal() bool {
	switch s {
	case StateFinished, StateFailed, StateCancelled:
		return true
	}
	return false
}
