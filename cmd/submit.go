package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/algox/internal/models"
	"github.com/desertthunder/algox/internal/shared"
	"github.com/urfave/cli/v3"
)

// Submit creates a new catalog entry owned by the logged in user.
func (r *Runner) Submit(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("list-languages") {
		return r.CatalogLanguages(ctx, cmd)
	}

	code := cmd.String("code")
	if path := cmd.String("code-file"); path != "" {
		if code != "" {
			return fmt.Errorf("%w: cannot specify both --code and --code-file", shared.ErrInvalidArgument)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read code file: %w", err)
		}
		code = string(data)
	}

	if _, ok := r.session.Get(); !ok {
		r.logger.Warn("submitting without a session; the catalog will likely reject it")
	}

	entry := models.NewEntry{
		Title:               cmd.String("title"),
		Topic:               cmd.String("topic"),
		ProgrammingLanguage: cmd.String("lang"),
		Code:                code,
	}

	created, err := r.submitFlow.Submit(ctx, entry)
	if err == nil {
		r.writePlain("ID: %s\n", created.ID)
	}
	return r.report(r.submitFlow.Form(), err)
}
