package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"

	"github.com/dmitrijs2005/worldpub/internal/client/api"
	"github.com/dmitrijs2005/worldpub/internal/client/config"
	"github.com/dmitrijs2005/worldpub/internal/client/repositories/project"
	"github.com/dmitrijs2005/worldpub/internal/client/services"
	"github.com/dmitrijs2005/worldpub/internal/client/transfer"
	"github.com/dmitrijs2005/worldpub/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config      *config.Config
	db          *sql.DB
	repo        project.Repository
	apiClient   api.Client
	authService services.AuthService
	transfer    transfer.FileTransfer
	log         logging.Logger
	userName    string
	reader      *bufio.Reader
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewDefault()

	db, err := project.Open(ctx, c.LocalDBPath)
	if err != nil {
		log.Error(ctx, "initializing local database", "error", err)
		return nil, err
	}

	repo := project.NewSQLiteRepository(db)
	apiClient := api.NewHTTPClient(c.APIEndpoint, c.RequestTimeout)
	as := services.NewAuthService(apiClient, repo)

	ft, err := transfer.NewS3Transfer(ctx, c, log)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &App{
		config:      c,
		db:          db,
		repo:        repo,
		apiClient:   apiClient,
		authService: as,
		transfer:    ft,
		log:         log,
		reader:      bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Close() {
	if a.apiClient != nil {
		a.apiClient.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.authService.EnsureLoggedIn(ctx) == nil
}
