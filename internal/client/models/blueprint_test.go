package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlueprint_BumpVersion(t *testing.T) {
	tests := []struct {
		name string
		from int
		want int
	}{
		{"fresh record", 0, 1},
		{"first replacement", 1, 2},
		{"later replacement", 41, 42},
		{"negative is clamped", -3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Blueprint{Version: tt.from}
			b.BumpVersion()
			assert.Equal(t, tt.want, b.Version)
		})
	}
}

func TestMetadataOverride_Apply(t *testing.T) {
	b := &Blueprint{
		Name:        "Old Name",
		Description: "Old description",
		Tags:        []string{"old"},
		Capacity:    8,
	}

	o := &MetadataOverride{Name: "New Name", Tags: []string{"new", "shiny"}}
	o.Apply(b)

	assert.Equal(t, "New Name", b.Name)
	assert.Equal(t, "Old description", b.Description, "zero field must not clobber")
	assert.Equal(t, []string{"new", "shiny"}, b.Tags)
	assert.Equal(t, 8, b.Capacity)
}

func TestMetadataOverride_ApplyNil(t *testing.T) {
	b := &Blueprint{Name: "Kept"}
	var o *MetadataOverride
	o.Apply(b)
	assert.Equal(t, "Kept", b.Name)
}

func TestContentKind_IDPrefix(t *testing.T) {
	assert.Equal(t, "wrld_", KindWorld.IDPrefix())
	assert.Equal(t, "avtr_", KindAvatar.IDPrefix())
}

func TestUploadState_Terminal(t *testing.T) {
	assert.False(t, StateIdle.Terminal())
	assert.False(t, StateUploading.Terminal())
	assert.True(t, StateFinished.Terminal())
	assert.True(t, StateFailed.Terminal())
	assert.True(t, StateCancelled.Terminal())
}

func TestFileID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			"url with id",
			"https://files.example.com/asset/file_2a9c8d7e-1b34-4f5a-9c0d-8e7f6a5b4c3d/world.bundle",
			"file_2a9c8d7e-1b34-4f5a-9c0d-8e7f6a5b4c3d",
		},
		{"empty url", "", ""},
		{"url without id", "https://files.example.com/asset/world.bundle", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileID(tt.url))
		})
	}
}
