package publish

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStagingName(t *testing.T) {
	got := StagingName("wrld_1", 7, "2022.3.22f1", "1", "android", "release", ".bundle")
	assert.Equal(t, "wrld_1-7-2022.3.22f1-1-android-release.bundle", got)

	// Same key tuple, same name: reruns land on the same path.
	again := StagingName("wrld_1", 7, "2022.3.22f1", "1", "android", "release", ".bundle")
	assert.Equal(t, got, again)
}

func TestWriteBlankImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "placeholder.png")
	require.NoError(t, writeBlankImage(path, 1200, 900))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 1200, cfg.Width)
	assert.Equal(t, 900, cfg.Height)
}
