// Package project persists per-project publisher state between runs:
// the blueprint identifier, content kind, onboarding flag, and session
// leftovers such as the stored access token.
package project

import "context"

// Well-known state keys.
const (
	KeyBlueprintID         = "blueprint_id"
	KeyContentKind         = "content_kind"
	KeyCompletedOnboarding = "completed_onboarding"
	KeyLastVersion         = "last_version"
	KeyUsername            = "username"
	KeyAccessToken         = "access_token"
)

// Repository is a small key/value store backed by the local project
// database.
type Repository interface {
	// Get returns the stored value, or "" when the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Set inserts or replaces one value.
	Set(ctx context.Context, key, value string) error

	// SetMany writes several values in a single transaction.
	SetMany(ctx context.Context, values map[string]string) error

	// Delete removes a key; deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
