package flows

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/algox/internal/models"
	"github.com/desertthunder/algox/internal/services"
	"github.com/desertthunder/algox/internal/shared"
)

const (
	msgSubmitted    = "Algorithm submitted."
	msgSubmitFailed = "Could not submit the algorithm. Please try again."
	msgMissingID    = "The catalog did not confirm the submission. Check your algorithms before retrying."
)

// SubmitFlow drives the new entry form.
type SubmitFlow struct {
	catalog services.Catalog
	nav     Navigator
	logger  *log.Logger
	form    Machine
}

// NewSubmitFlow creates the submission flow. A nil nav discards navigation.
func NewSubmitFlow(c services.Catalog, nav Navigator, logger *log.Logger) *SubmitFlow {
	if nav == nil {
		nav = discard{}
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &SubmitFlow{catalog: c, nav: nav, logger: logger}
}

func (f *SubmitFlow) Form() *Machine { return &f.form }

// Submit creates entry in the catalog and sends the user to their listing.
//
// Success requires the response to carry the assigned id; a 2xx without one is a failure.
func (f *SubmitFlow) Submit(ctx context.Context, entry models.NewEntry) (models.CatalogEntry, error) {
	var created models.CatalogEntry
	err := run(&f.form, entry.Validate(), func() error {
		e, err := f.catalog.Create(ctx, entry)
		if err != nil {
			return err
		}
		if e.ID.IsZero() {
			return shared.ErrDataShape
		}
		created = e
		return nil
	}, msgSubmitted, func(err error) string {
		logFailure(f.logger, "submit", err)
		if errors.Is(err, shared.ErrDataShape) {
			return msgMissingID
		}
		return describe(err, msgSubmitFailed)
	})
	if err != nil {
		return models.CatalogEntry{}, err
	}

	f.logger.Info("submitted algorithm", "id", created.ID, "title", created.Title)
	f.nav.Navigate(RouteListing)
	return created, nil
}
