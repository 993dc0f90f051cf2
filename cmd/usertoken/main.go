// Command usertoken registers a user if needed and prints a bearer token for
// them, for local development and scripting against the API.
//
//	usertoken -name Alice -email alice@example.com
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/shalinipalla005/Walletwise/internal/auth"
	"github.com/shalinipalla005/Walletwise/internal/config"
	"github.com/shalinipalla005/Walletwise/internal/ledger"
	"github.com/shalinipalla005/Walletwise/internal/storage/sqlite"
	"github.com/shalinipalla005/Walletwise/pkg/logging"
)

func main() {
	name := flag.String("name", "", "display name, used when the user is created")
	email := flag.String("email", "", "email address of the user")
	flag.Parse()

	cfg := config.Load()
	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

	if *email == "" {
		fmt.Fprintln(os.Stderr, "usage: usertoken -email <address> [-name <name>]")
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err, "path", cfg.DBPath)
		os.Exit(1)
	}
	defer store.Close()

	issuer := auth.NewIssuer(ledger.New(store), auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL))
	user, token, err := issuer.IssueFor(context.Background(), *name, *email)
	if err != nil {
		slog.Error("Failed to issue token", "error", err, "email", *email)
		os.Exit(1)
	}

	slog.Info("Issued token", "user_id", user.ID, "expires_in", cfg.TokenTTL)
	fmt.Println(token)
}
