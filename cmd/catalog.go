package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/algox/internal/catalog"
	"github.com/desertthunder/algox/internal/formatter"
	"github.com/desertthunder/algox/internal/models"
	"github.com/desertthunder/algox/internal/shared"
	"github.com/urfave/cli/v3"
)

// CatalogList prints every entry in the catalog.
func (r *Runner) CatalogList(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	r.logger.Info("listing algorithms")
	return r.printResults(format, r.results.LoadAll(ctx))
}

// CatalogMine prints the entries owned by the logged in user.
func (r *Runner) CatalogMine(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	userID, err := r.session.UserID()
	if err != nil {
		return fmt.Errorf("%w: run 'algox auth login' first", err)
	}

	r.logger.Info("listing own algorithms", "user_id", userID)
	return r.printResults(format, r.results.LoadMine(ctx, userID))
}

// CatalogSearch prints the entries matching the given filters.
func (r *Runner) CatalogSearch(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	q, err := searchQuery(cmd)
	if err != nil {
		return err
	}

	if q.IsEmpty() {
		r.logger.Info("searching without filters")
	} else {
		r.logger.Info("searching algorithms", "query", q)
	}
	return r.printResults(format, r.results.LoadBySearch(ctx, q))
}

// CatalogShow prints one entry with its code.
func (r *Runner) CatalogShow(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	id := models.ID(strings.TrimSpace(cmd.StringArg("id")))
	if id.IsZero() {
		return fmt.Errorf("%w: algorithm id is required", shared.ErrMissingArgument)
	}

	if err := r.results.LoadOne(ctx, id); err != nil {
		return fmt.Errorf("failed to load algorithm %s: %w", id, err)
	}

	entry, _ := r.results.Entry()
	return formatter.RenderEntry(r.output, format, entry)
}

// CatalogLanguages prints the programming languages the catalog accepts.
func (r *Runner) CatalogLanguages(ctx context.Context, cmd *cli.Command) error {
	langs, err := r.catalog.Languages(ctx)
	if err != nil {
		return fmt.Errorf("failed to list languages: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(langs, false)
	}
	for _, l := range langs {
		r.writePlain("%s\n", l)
	}
	return nil
}

// printResults renders the held list after a load. A failed load is returned without printing.
func (r *Runner) printResults(format formatter.Format, loadErr error) error {
	snap := r.results.Snapshot()
	if snap.Status == catalog.StatusFailed {
		return fmt.Errorf("failed to load algorithms: %w", snap.Err)
	}
	if loadErr != nil {
		return loadErr
	}
	return formatter.Render(r.output, format, snap.Entries)
}

func searchQuery(cmd *cli.Command) (models.SearchQuery, error) {
	sort, err := models.ParseSortKey(cmd.String("sort"))
	if err != nil {
		return models.SearchQuery{}, err
	}

	return models.SearchQuery{
		Title:               cmd.String("title"),
		Topic:               cmd.String("topic"),
		ProgrammingLanguage: cmd.String("lang"),
		OwnerID:             cmd.String("user"),
		ID:                  cmd.String("id"),
		SortBy:              sort,
	}, nil
}
