// Package filex provides small filesystem helpers used by the upload
// pipeline: existence checks, staging-directory creation and delete-first
// copies of build artifacts.
package filex

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Exists reports whether path refers to an existing regular file.
func Exists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// EnsureSubDir creates (if needed) and returns the directory parent/name.
// An empty parent means the current working directory.
func EnsureSubDir(parent, name string) (string, error) {
	if parent == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		parent = cwd
	}

	dir := filepath.Join(parent, name)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// CopyFile copies src to dst. Any pre-existing file at dst is deleted first,
// so a leftover from an aborted run is overwritten rather than appended to.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", dst, err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", dst, err)
	}

	return out.Close()
}
