// Command tokengen mints a bearer token for local development. Login lives in
// another service; this signs with the configured auth.jwt_secret.
package main

import (
	"flag"
	"fmt"
	"os"

	"storefront/config"
	"storefront/domain/shared"
	"storefront/infrastructure/auth"
	"storefront/infrastructure/persistence/seed"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tokengen: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath, userID, role string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.StringVar(&userID, "user", seed.CustomerUserID, "User id to embed in the token")
	flag.StringVar(&role, "role", string(shared.RoleUser), "Role: user or admin")
	flag.Parse()

	if !shared.Role(role).IsValid() {
		return fmt.Errorf("unknown role %q", role)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	tokens, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		return err
	}
	token, err := tokens.Issue(userID, shared.Role(role))
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}
