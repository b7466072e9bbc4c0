package project

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/worldpub/internal/client/models"
	"github.com/google/uuid"
)

// State is the identifier-issuing handle over the project repository. It is
// the local counterpart of the remote blueprint record: it remembers which
// blueprint this project publishes and whether first-time setup completed.
type State struct {
	repo Repository
	kind models.ContentKind
}

// LoadState binds a handle to the repository. The stored content kind wins
// over the requested one so a project cannot silently switch kinds; when
// nothing is stored yet, the requested kind is persisted.
func LoadState(ctx context.Context, repo Repository, kind models.ContentKind) (*State, error) {
	stored, err := repo.Get(ctx, KeyContentKind)
	if err != nil {
		return nil, err
	}

	if stored == "" {
		if err := repo.Set(ctx, KeyContentKind, string(kind)); err != nil {
			return nil, err
		}
	} else {
		kind = models.ContentKind(stored)
	}

	return &State{repo: repo, kind: kind}, nil
}

func (s *State) Kind() models.ContentKind { return s.kind }

func (s *State) BlueprintID(ctx context.Context) (string, error) {
	return s.repo.Get(ctx, KeyBlueprintID)
}

func (s *State) SetBlueprintID(ctx context.Context, id string) error {
	return s.repo.Set(ctx, KeyBlueprintID, id)
}

// AssignID issues a fresh blueprint identifier for the project and persists
// it. Calling AssignID when an identifier is already stored returns the
// stored one untouched.
func (s *State) AssignID(ctx context.Context) (string, error) {
	existing, err := s.BlueprintID(ctx)
	if err != nil {
		return "", err
	}
	if existing != "" {
		return existing, nil
	}

	id := s.kind.IDPrefix() + uuid.NewString()
	if err := s.repo.Set(ctx, KeyBlueprintID, id); err != nil {
		return "", fmt.Errorf("persist blueprint id: %w", err)
	}
	return id, nil
}

func (s *State) CompletedOnboarding(ctx context.Context) (bool, error) {
	v, err := s.repo.Get(ctx, KeyCompletedOnboarding)
	if err != nil {
		return false, err
	}
	return v == "1", nil
}

func (s *State) SetCompletedOnboarding(ctx context.Context, done bool) error {
	v := "0"
	if done {
		v = "1"
	}
	return s.repo.Set(ctx, KeyCompletedOnboarding, v)
}

func (s *State) SetLastVersion(ctx context.Context, version int) error {
	return s.repo.Set(ctx, KeyLastVersion, strconv.Itoa(version))
}

func (s *State) LastVersion(ctx context.Context) (int, error) {
	v, err := s.repo.Get(ctx, KeyLastVersion)
	if err != nil || v == "" {
		return 0, err
	}
	return strconv.Atoi(v)
}
