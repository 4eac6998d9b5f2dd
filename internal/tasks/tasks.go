// package tasks implements batch operations over the catalog.
package tasks

import (
	"github.com/charmbracelet/log"
	"github.com/desertthunder/algox/internal/models"
	"github.com/desertthunder/algox/internal/services"
	"github.com/desertthunder/algox/internal/shared"
)

// Exporter fetches catalog entries and writes them to disk.
type Exporter struct {
	catalog services.Catalog
	logger  *log.Logger
}

// NewExporter creates an Exporter reading from c.
func NewExporter(c services.Catalog, logger *log.Logger) *Exporter {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Exporter{catalog: c, logger: shared.WithLogger(logger, "task", "export")}
}

// IDs returns the ids of entries in order, skipping duplicates.
func IDs(entries []models.CatalogEntry) []models.ID {
	seen := make(map[models.ID]bool, len(entries))
	ids := make([]models.ID, 0, len(entries))
	for _, e := range entries {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		ids = append(ids, e.ID)
	}
	return ids
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
