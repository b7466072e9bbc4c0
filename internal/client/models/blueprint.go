// Package models defines the client-side data model for the publisher:
// the remote blueprint record, the per-run upload session, and the
// upload-state enum observed by status consumers.
package models

// ContentKind distinguishes the two publishable content types.
type ContentKind string

const (
	KindWorld  ContentKind = "world"
	KindAvatar ContentKind = "avatar"
)

// IDPrefix returns the identifier prefix used when assigning a fresh
// blueprint id for this kind.
func (k ContentKind) IDPrefix() string {
	if k == KindAvatar {
		return "avtr_"
	}
	return "wrld_"
}

// Blueprint is the remote record representing a world or avatar.
//
// ID is empty only before the first successful create; once assigned by the
// service (or issued locally and accepted on create) it is stable for the
// record's lifetime.
type Blueprint struct {
	ID              string
	Version         int
	Name            string
	Description     string
	Tags            []string
	Capacity        int
	AuthorID        string
	AuthorName      string
	AssetURL        string
	UnityPackageURL string
	ImageURL        string
	ReleaseStatus   string
	Kind            ContentKind
}

// BumpVersion advances the record to the version the next asset replacement
// cycle will be uploaded under: max(1, previous+1).
func (b *Blueprint) BumpVersion() {
	b.Version = max(1, b.Version+1)
}

// MetadataOverride carries optional operator-supplied metadata applied on
// commit. Zero-valued fields leave the record untouched.
type MetadataOverride struct {
	Name        string
	Description string
	Tags        []string
	Capacity    int
	ImagePath   string
}

// Apply copies the non-zero override fields onto b.
func (o *MetadataOverride) Apply(b *Blueprint) {
	if o == nil {
		return
	}
	if o.Name != "" {
		b.Name = o.Name
	}
	if o.Description != "" {
		b.Description = o.Description
	}
	if len(o.Tags) > 0 {
		b.Tags = o.Tags
	}
	if o.Capacity > 0 {
		b.Capacity = o.Capacity
	}
}

// Identity describes the logged-in user on whose behalf content is published.
type Identity struct {
	ID   string
	Name string
}
