package models

// UploadSession is the ephemeral state of one pipeline invocation. It is
// created at the start of a run, owned exclusively by that run's pipeline,
// and discarded at the end; it is never shared across concurrent runs.
type UploadSession struct {
	Kind     ContentKind
	Platform string

	// Local artifact paths. AssetPath is mandatory; PackagePath and
	// ImagePath are optional and their upload stages are skipped when the
	// path is empty or the file does not exist.
	AssetPath   string
	PackagePath string
	ImagePath   string

	Override *MetadataOverride

	// IsUpdate is fixed at resolution time: true when the blueprint record
	// already exists remotely.
	IsUpdate bool
}
