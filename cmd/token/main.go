package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/Black-And-White-Club/wager-bot/config"
	"github.com/Black-And-White-Club/wager-bot/pkg/jwt"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "token",
		Usage: "issue a bearer token for the wager read API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yaml", Usage: "path to the configuration file"},
			&cli.StringFlag{Name: "subject", Required: true, Usage: "who the token is for"},
			&cli.StringFlag{Name: "role", Value: string(jwt.RoleViewer), Usage: "viewer or player"},
			&cli.DurationFlag{Name: "ttl", Usage: "token lifetime (defaults to http.token_ttl)"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cfg.HTTP.JWTSecret == "" {
				return errors.New("http.jwt_secret is not configured")
			}

			role := jwt.Role(c.String("role"))
			if role != jwt.RoleViewer && role != jwt.RolePlayer {
				return fmt.Errorf("unknown role %q", role)
			}

			token, err := jwt.NewService(cfg.HTTP.JWTSecret, cfg.HTTP.TokenTTL).
				GenerateToken(c.String("subject"), role, c.Duration("ttl"))
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, token)
			return nil
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
