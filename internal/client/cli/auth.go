package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/worldpub/internal/common"
)

// getAPIKey is an indirection used to facilitate testing. It points to the
// interactive input helper and can be swapped in tests.
var getAPIKey = GetAPIKey

// Login prompts for the service API key and exchanges it for a session
// token via the AuthService. On success the display name of the logged-in
// user is cached for the REPL prompt.
func (a *App) Login(ctx context.Context) error {
	apiKey, err := getAPIKey(os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.authService.Login(ctx, apiKey)
	if err != nil {
		a.log.Error(ctx, "login unsuccessful", "error", err)
		return err
	}

	a.userName = user.Name
	fmt.Printf("Logged in as %s\n", user.Name)
	return nil
}

// Whoami prints the identity from the stored session, or a hint when the
// session is missing or expired.
func (a *App) Whoami(ctx context.Context) error {
	user, err := a.authService.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotLoggedIn) || errors.Is(err, common.ErrTokenExpired) {
			fmt.Println("Not logged in. Use 'login' first.")
			return nil
		}
		return err
	}
	fmt.Printf("%s (%s)\n", user.Name, user.ID)
	return nil
}

// Logout discards the stored session token.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.userName = ""
	fmt.Println("Logged out")
	return nil
}
