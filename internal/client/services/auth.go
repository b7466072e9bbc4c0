// Package services contains application services for the worldpub client.
// This file defines the session/identity provider: API-key login, session
// reuse across runs, and the current-user lookup the create path needs for
// author fields.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/worldpub/internal/client/api"
	"github.com/dmitrijs2005/worldpub/internal/client/models"
	"github.com/dmitrijs2005/worldpub/internal/client/repositories/project"
	"github.com/dmitrijs2005/worldpub/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// AuthService is the session/identity collaborator of the upload pipeline.
//
// Contract:
//   - Login: exchange an API key for an access token and persist the session.
//   - EnsureLoggedIn: restore a persisted session; fails with
//     common.ErrNotLoggedIn or common.ErrTokenExpired.
//   - CurrentUser: identity claims of the active session.
//   - Logout: drop the persisted session.
type AuthService interface {
	Login(ctx context.Context, apiKey string) (models.Identity, error)
	EnsureLoggedIn(ctx context.Context) error
	CurrentUser(ctx context.Context) (models.Identity, error)
	Logout(ctx context.Context) error
}

type authService struct {
	client api.Client
	repo   project.Repository

	// now is a test seam for expiry checks.
	now func() time.Time
}

func NewAuthService(client api.Client, repo project.Repository) AuthService {
	return &authService{client: client, repo: repo, now: time.Now}
}

// sessionClaims are the token claims this client cares about. The token is
// validated by the server on every call; client-side parsing is unverified
// and used only for identity display and early expiry detection.
type sessionClaims struct {
	DisplayName string `json:"name"`
	jwt.RegisteredClaims
}

func parseClaims(token string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrNotLoggedIn, err)
	}
	return claims, nil
}

func (a *authService) Login(ctx context.Context, apiKey string) (models.Identity, error) {
	token, err := a.client.Login(ctx, apiKey)
	if err != nil {
		return models.Identity{}, fmt.Errorf("login error: %w", err)
	}

	claims, err := parseClaims(token)
	if err != nil {
		return models.Identity{}, err
	}

	if err := a.repo.SetMany(ctx, map[string]string{
		project.KeyAccessToken: token,
		project.KeyUsername:    claims.DisplayName,
	}); err != nil {
		return models.Identity{}, fmt.Errorf("session saving error: %w", err)
	}

	return models.Identity{ID: claims.Subject, Name: claims.DisplayName}, nil
}

func (a *authService) EnsureLoggedIn(ctx context.Context) error {
	token, err := a.repo.Get(ctx, project.KeyAccessToken)
	if err != nil {
		return err
	}
	if token == "" {
		return common.ErrNotLoggedIn
	}

	claims, err := parseClaims(token)
	if err != nil {
		return err
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(a.now()) {
		return common.ErrTokenExpired
	}

	a.client.SetAccessToken(token)
	return nil
}

func (a *authService) CurrentUser(ctx context.Context) (models.Identity, error) {
	token, err := a.repo.Get(ctx, project.KeyAccessToken)
	if err != nil {
		return models.Identity{}, err
	}
	if token == "" {
		return models.Identity{}, common.ErrNotLoggedIn
	}

	claims, err := parseClaims(token)
	if err != nil {
		return models.Identity{}, err
	}

	return models.Identity{ID: claims.Subject, Name: claims.DisplayName}, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.repo.Delete(ctx, project.KeyAccessToken); err != nil {
		return err
	}
	if err := a.repo.Delete(ctx, project.KeyUsername); err != nil && !errors.Is(err, common.ErrNotFound) {
		return err
	}
	a.client.SetAccessToken("")
	return nil
}
