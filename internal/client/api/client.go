// Package api is the client for the remote blueprint service. The service's
// native completion idiom for record operations is a pair of one-shot
// success/failure callbacks; orchestration code consumes those only through
// the awaitx adapter.
package api

import (
	"context"

	"github.com/dmitrijs2005/worldpub/internal/client/models"
)

// Client describes the remote blueprint API surface the pipeline drives.
type Client interface {
	// Login exchanges an API key for an access token.
	Login(ctx context.Context, apiKey string) (string, error)

	// SetAccessToken attaches the token sent on subsequent requests.
	SetAccessToken(token string)

	// Fetch retrieves the blueprint record by id. Exactly one of the two
	// callbacks is eventually invoked; a missing record surfaces through
	// onFailure with an error matching common.ErrNotFound.
	Fetch(ctx context.Context, id string, onSuccess func(*models.Blueprint), onFailure func(error))

	// Create registers a new blueprint record and invokes onSuccess with
	// the record as issued by the service.
	Create(ctx context.Context, b *models.Blueprint, onSuccess func(*models.Blueprint), onFailure func(error))

	// Save commits metadata changes to an existing record.
	Save(ctx context.Context, b *models.Blueprint, onSuccess func(*models.Blueprint), onFailure func(error))

	Close() error
}
