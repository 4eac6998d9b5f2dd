package catalog

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/algox/internal/models"
	"github.com/desertthunder/algox/internal/services"
	"github.com/desertthunder/algox/internal/shared"
)

// Status is the display state of a slot.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusEmpty
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusEmpty:
		return "empty"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

type slot struct {
	generation uint64
	status     Status
	err        error
}

// begin starts a new generation and returns it.
func (s *slot) begin() uint64 {
	s.generation++
	s.status = StatusLoading
	return s.generation
}

// Snapshot is a consistent copy of a view's list slot.
type Snapshot struct {
	Entries []models.CatalogEntry
	Status  Status
	Err     error
}

// ResultView reconciles catalog responses into displayable state. Safe for concurrent use.
type ResultView struct {
	mu      sync.RWMutex
	catalog services.Catalog
	logger  *log.Logger

	list    slot
	entries []models.CatalogEntry

	detail slot
	entry  *models.CatalogEntry

	onChange func()
}

// NewResultView creates an idle view over c.
func NewResultView(c services.Catalog, logger *log.Logger) *ResultView {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ResultView{catalog: c, logger: logger}
}

// OnChange registers fn to run after any slot changes state. fn runs without the lock held.
func (v *ResultView) OnChange(fn func()) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onChange = fn
}

// LoadAll replaces the list with every entry in the catalog.
func (v *ResultView) LoadAll(ctx context.Context) error {
	return v.loadList(ctx, "all", func(ctx context.Context) ([]models.CatalogEntry, error) {
		return v.catalog.ListAll(ctx)
	})
}

// LoadMine replaces the list with the entries owned by userID.
func (v *ResultView) LoadMine(ctx context.Context, userID models.ID) error {
	return v.loadList(ctx, "mine", func(ctx context.Context) ([]models.CatalogEntry, error) {
		return v.catalog.ListByOwner(ctx, userID)
	})
}

// LoadBySearch replaces the list with the entries matching q.
func (v *ResultView) LoadBySearch(ctx context.Context, q models.SearchQuery) error {
	return v.loadList(ctx, "search", func(ctx context.Context) ([]models.CatalogEntry, error) {
		return v.catalog.Search(ctx, q)
	})
}

// LoadOne replaces the held entry with the entry identified by id.
func (v *ResultView) LoadOne(ctx context.Context, id models.ID) error {
	v.mu.Lock()
	gen := v.detail.begin()
	v.mu.Unlock()
	v.changed()

	entry, err := v.catalog.Get(ctx, id)

	v.mu.Lock()
	if gen != v.detail.generation {
		v.mu.Unlock()
		v.logger.Debug("dropped stale entry", "id", id, "generation", gen)
		return shared.ErrSuperseded
	}
	if err != nil {
		v.detail.status, v.detail.err = StatusFailed, err
	} else {
		v.entry = &entry
		v.detail.status, v.detail.err = StatusLoaded, nil
	}
	v.mu.Unlock()

	v.report("detail", err)
	v.changed()
	return err
}

func (v *ResultView) loadList(ctx context.Context, source string, fetch func(context.Context) ([]models.CatalogEntry, error)) error {
	v.mu.Lock()
	gen := v.list.begin()
	v.mu.Unlock()
	v.changed()

	entries, err := fetch(ctx)

	v.mu.Lock()
	if gen != v.list.generation {
		v.mu.Unlock()
		v.logger.Debug("dropped stale results", "source", source, "generation", gen)
		return shared.ErrSuperseded
	}
	switch {
	case err != nil:
		v.list.status, v.list.err = StatusFailed, err
	case len(entries) == 0:
		v.entries = []models.CatalogEntry{}
		v.list.status, v.list.err = StatusEmpty, nil
	default:
		v.entries = entries
		v.list.status, v.list.err = StatusLoaded, nil
	}
	v.mu.Unlock()

	v.report(source, err)
	v.changed()
	return err
}

func (v *ResultView) report(source string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, shared.ErrDataShape):
		v.logger.Error("malformed catalog response", "source", source, "error", err)
	default:
		v.logger.Warn("catalog load failed", "source", source, "error", err)
	}
}

func (v *ResultView) changed() {
	v.mu.RLock()
	fn := v.onChange
	v.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

// Entries returns a copy of the held list.
func (v *ResultView) Entries() []models.CatalogEntry {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]models.CatalogEntry, len(v.entries))
	copy(out, v.entries)
	return out
}

// Status returns the state of the list slot.
func (v *ResultView) Status() Status {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.list.status
}

// Err returns the error of the last list load, or nil if it succeeded.
func (v *ResultView) Err() error {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.list.err
}

// Snapshot returns the list slot as one consistent value.
func (v *ResultView) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]models.CatalogEntry, len(v.entries))
	copy(out, v.entries)
	return Snapshot{Entries: out, Status: v.list.status, Err: v.list.err}
}

// Entry returns the held entry, if any.
func (v *ResultView) Entry() (models.CatalogEntry, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.entry == nil {
		return models.CatalogEntry{}, false
	}
	return *v.entry, true
}

// EntryStatus returns the state of the detail slot.
func (v *ResultView) EntryStatus() Status {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.detail.status
}

// EntryErr returns the error of the last detail load, or nil.
func (v *ResultView) EntryErr() error {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.detail.err
}
