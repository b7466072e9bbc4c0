package publish

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/worldpub/internal/client/awaitx"
	"github.com/dmitrijs2005/worldpub/internal/client/models"
	"github.com/dmitrijs2005/worldpub/internal/common"
)

// DefaultCapacity seeds a freshly synthesized blueprint record.
const DefaultCapacity = 16

// Resolution is the outcome of fetch-or-create blueprint resolution.
type Resolution struct {
	Record   *models.Blueprint
	IsUpdate bool

	// Onboarded is true only when the fetched record already carries an
	// author, meaning the content has been through first-time setup.
	Onboarded bool
}

// resolveBlueprint determines the authoritative remote record for the
// locally-known id. A missing remote record is the expected signal for
// "first upload", never a hard error; only cancellation and transport
// failures propagate.
func (p *Pipeline) resolveBlueprint(ctx context.Context, id string, kind models.ContentKind) (*Resolution, error) {
	if id == "" {
		return &Resolution{Record: newLocalRecord(id, kind)}, nil
	}

	completion := awaitx.New[*models.Blueprint]()
	p.api.Fetch(ctx, id, completion.Succeed, completion.Fail)

	rec, err := completion.Wait(ctx, p.cancelled, p.cfg.PollInterval)
	switch {
	case err == nil:
		return &Resolution{
			Record:    rec,
			IsUpdate:  true,
			Onboarded: rec.AuthorID != "",
		}, nil
	case errors.Is(err, common.ErrNotFound):
		return &Resolution{Record: newLocalRecord(id, kind)}, nil
	default:
		return nil, err
	}
}

func newLocalRecord(id string, kind models.ContentKind) *models.Blueprint {
	return &models.Blueprint{
		ID:       id,
		Kind:     kind,
		Capacity: DefaultCapacity,
	}
}
