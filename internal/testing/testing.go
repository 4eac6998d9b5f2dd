// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/algox/internal/models"
	"github.com/desertthunder/algox/internal/shared"
)

// FakeCatalog is an in-memory test double for [services.Catalog].
//
// The *Func fields override the default behavior of the matching method.
// Err, when set, is returned by every method without an override.
type FakeCatalog struct {
	mu      sync.Mutex
	calls   map[string]int
	Entries []models.CatalogEntry
	Langs   []string
	Created []models.NewEntry
	Err     error

	ListAllFunc func(ctx context.Context) ([]models.CatalogEntry, error)
	SearchFunc  func(ctx context.Context, q models.SearchQuery) ([]models.CatalogEntry, error)
	GetFunc     func(ctx context.Context, id models.ID) (models.CatalogEntry, error)
	CreateFunc  func(ctx context.Context, e models.NewEntry) (models.CatalogEntry, error)
}

func (f *FakeCatalog) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[name]++
}

// Calls returns how many times the named method was invoked.
func (f *FakeCatalog) Calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *FakeCatalog) ListAll(ctx context.Context) ([]models.CatalogEntry, error) {
	f.record("ListAll")
	if f.ListAllFunc != nil {
		return f.ListAllFunc(ctx)
	}
	if f.Err != nil {
		return nil, f.Err
	}
	return slices.Clone(f.Entries), nil
}

func (f *FakeCatalog) ListByOwner(ctx context.Context, userID models.ID) ([]models.CatalogEntry, error) {
	f.record("ListByOwner")
	if f.Err != nil {
		return nil, f.Err
	}
	out := []models.CatalogEntry{}
	for _, e := range f.Entries {
		if e.OwnerID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *FakeCatalog) Search(ctx context.Context, q models.SearchQuery) ([]models.CatalogEntry, error) {
	f.record("Search")
	if f.SearchFunc != nil {
		return f.SearchFunc(ctx, q)
	}
	if f.Err != nil {
		return nil, f.Err
	}
	out := []models.CatalogEntry{}
	for _, e := range f.Entries {
		if strings.Contains(e.Title, q.Title) && strings.Contains(e.Topic, q.Topic) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *FakeCatalog) Get(ctx context.Context, id models.ID) (models.CatalogEntry, error) {
	f.record("Get")
	if f.GetFunc != nil {
		return f.GetFunc(ctx, id)
	}
	if f.Err != nil {
		return models.CatalogEntry{}, f.Err
	}
	for _, e := range f.Entries {
		if e.ID == id {
			return e, nil
		}
	}
	return models.CatalogEntry{}, &shared.StatusError{Method: "GET", Path: "/api/algorithms/" + id.String(), StatusCode: 404}
}

func (f *FakeCatalog) Create(ctx context.Context, e models.NewEntry) (models.CatalogEntry, error) {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, e)
	}
	if f.Err != nil {
		return models.CatalogEntry{}, f.Err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.Created = append(f.Created, e)
	entry := models.CatalogEntry{
		ID:                  models.ID(strconv.Itoa(len(f.Entries) + 1)),
		Title:               e.Title,
		Topic:               e.Topic,
		ProgrammingLanguage: e.ProgrammingLanguage,
		Code:                e.Code,
	}
	f.Entries = append(f.Entries, entry)
	return entry, nil
}

func (f *FakeCatalog) Languages(ctx context.Context) ([]string, error) {
	f.record("Languages")
	if f.Err != nil {
		return nil, f.Err
	}
	return slices.Clone(f.Langs), nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
