package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/algox/internal/formatter"
	"github.com/desertthunder/algox/internal/models"
	"github.com/desertthunder/algox/internal/shared"
	"github.com/desertthunder/algox/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export writes entries to files, one per entry, plus a manifest.
//
// Ids come from the arguments. With --mine the user's entries are exported;
// with neither, every entry in the catalog.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	if format == formatter.FormatCSV {
		return fmt.Errorf("%w: export writes one file per algorithm, use text, json or markdown", shared.ErrInvalidFlag)
	}

	ids, err := r.exportIDs(ctx, cmd)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return r.writePlain("No algorithms found.\n")
	}

	opts := tasks.BulkExportOpts{
		Format:     format,
		OutputDir:  cmd.String("output"),
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
	}

	r.logger.Info("starting export", "count", len(ids), "dir", opts.OutputDir)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.PrepareExport:
				r.writePlain("📁 %s\n", update.Message)
			case tasks.ExportEntry:
				r.writePlain("   %s\n", update.Message)
			case tasks.WriteManifest:
				r.writePlain("\n📝 %s\n", update.Message)
			}
		}
	}()

	result, err := r.exporter.BulkExport(ctx, progressCh, ids, opts)
	close(progressCh)
	<-done

	if result == nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Export Complete!")
	r.writePlain("Directory: %s\n", result.OutputDirectory)
	r.writePlain("Exported: %d/%d\n", result.Succeeded, result.Total)

	if result.Failed > 0 {
		r.writePlainln("Failed to export %d algorithms:", result.Failed)
		for _, res := range result.Results {
			if !res.Success {
				r.writePlain("  - %s: %v\n", res.ID, res.Error)
			}
		}
	}
	return err
}

func (r *Runner) exportIDs(ctx context.Context, cmd *cli.Command) ([]models.ID, error) {
	if args := cmd.Args().Slice(); len(args) > 0 {
		if cmd.Bool("mine") {
			return nil, fmt.Errorf("%w: cannot combine ids with --mine", shared.ErrInvalidArgument)
		}
		ids := make([]models.ID, 0, len(args))
		for _, a := range args {
			ids = append(ids, models.ID(a))
		}
		return ids, nil
	}

	var (
		entries []models.CatalogEntry
		err     error
	)
	if cmd.Bool("mine") {
		userID, uerr := r.session.UserID()
		if uerr != nil {
			return nil, fmt.Errorf("%w: run 'algox auth login' first", uerr)
		}
		entries, err = r.catalog.ListByOwner(ctx, userID)
	} else {
		entries, err = r.catalog.ListAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list algorithms: %w", err)
	}
	return tasks.IDs(entries), nil
}
