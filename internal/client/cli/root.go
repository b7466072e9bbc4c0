package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to worldpub CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("wpub %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				fmt.Println("Available commands: publish, status, whoami, logout, exit")
			} else {
				fmt.Println("Available commands: login, status, exit")
			}

		case "login":
			if err := a.Login(ctx); err != nil {
				fmt.Println("Login failed:", err)
			}
		case "logout":
			if err := a.Logout(ctx); err != nil {
				fmt.Println("Logout failed:", err)
			}
		case "whoami":
			if err := a.Whoami(ctx); err != nil {
				fmt.Println("Error:", err)
			}
		case "status":
			if err := a.Status(ctx); err != nil {
				fmt.Println("Error:", err)
			}
		case "publish":
			if len(args) == 0 {
				fmt.Println("Usage: publish <asset-bundle> [unity-package] [image]")
				continue
			}
			if err := a.Publish(ctx, args); err != nil {
				fmt.Println("Publish failed:", err)
			}
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}
