package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	config "github.com/maheshrc27/contentflow/configs"
	"github.com/maheshrc27/contentflow/pkg/utils"
)

// issueToken signs an operator token for the API. It backs the "token"
// subcommand:
//
//	server token -operator alice [-ttl 12h]
func issueToken(cfg *config.Config, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(w)
	operator := fs.String("operator", "", "operator id carried in the token")
	ttl := fs.Duration("ttl", cfg.TokenTTL, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if cfg.SecretKey == "" {
		return errors.New("SECRET_KEY is not set")
	}
	if strings.TrimSpace(*operator) == "" {
		return errors.New("-operator is required")
	}
	if *ttl <= 0 {
		return fmt.Errorf("-ttl must be positive, got %s", *ttl)
	}

	token, err := utils.GenerateToken(cfg.SecretKey, strings.TrimSpace(*operator), *ttl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, token)
	return err
}
