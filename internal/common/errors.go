// Package common defines shared constants and sentinel errors used across
// worldpub components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Remote API errors.
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("service unavailable")

	// Session errors.
	ErrNotLoggedIn  = errors.New("not logged in")
	ErrTokenExpired = errors.New("token expired")

	// Pipeline errors.
	ErrCancelled        = errors.New("upload cancelled")
	ErrMissingAssetFile = errors.New("asset bundle file missing")
	ErrEmptyAssetURL    = errors.New("asset upload returned an empty url")
	ErrNoProjectState   = errors.New("project state unavailable")
	ErrMissingImage     = errors.New("image required for first publish")
)
