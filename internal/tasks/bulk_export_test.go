package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/algox/internal/formatter"
	"github.com/desertthunder/algox/internal/models"
	"github.com/desertthunder/algox/internal/shared"
	tu "github.com/desertthunder/algox/internal/testing"
)

func catalogEntries() []models.CatalogEntry {
	return []models.CatalogEntry{
		{ID: "1", Title: "Quick Sort", Topic: "sorting", ProgrammingLanguage: "Go", Code: "package main\n"},
		{ID: "2", Title: "Binary Search", Topic: "search", ProgrammingLanguage: "Python", Code: "def bs(): pass\n"},
		{ID: "3", Title: "Dijkstra", Topic: "graphs", ProgrammingLanguage: "Rust", Code: "fn main() {}\n"},
	}
}

func newTestExporter(c *tu.FakeCatalog) *Exporter {
	return NewExporter(c, shared.NewLogger(io.Discard))
}

func TestBulkExport_SuccessfulExport(t *testing.T) {
	tests := []struct {
		name      string
		format    formatter.Format
		ids       []models.ID
		wantFiles []string
	}{
		{
			name:      "single entry as source",
			format:    formatter.FormatText,
			ids:       []models.ID{"1"},
			wantFiles: []string{"1_quick-sort.go"},
		},
		{
			name:      "multiple entries as source",
			format:    formatter.FormatText,
			ids:       []models.ID{"3", "1", "2"},
			wantFiles: []string{"3_dijkstra.rs", "1_quick-sort.go", "2_binary-search.py"},
		},
		{
			name:      "markdown export",
			format:    formatter.FormatMarkdown,
			ids:       []models.ID{"2"},
			wantFiles: []string{"2_binary-search.py.md"},
		},
		{
			name:      "json export",
			format:    formatter.FormatJSON,
			ids:       []models.ID{"3"},
			wantFiles: []string{"3_dijkstra.rs.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			fake := &tu.FakeCatalog{Entries: catalogEntries()}

			result, err := newTestExporter(fake).BulkExport(context.Background(), nil, tt.ids, BulkExportOpts{
				Format:    tt.format,
				OutputDir: tempDir,
				RateLimit: 1000,
			})
			if err != nil {
				t.Fatalf("BulkExport() error = %v", err)
			}

			if result.Succeeded != len(tt.ids) || result.Failed != 0 {
				t.Errorf("expected %d successes, got %d/%d", len(tt.ids), result.Succeeded, result.Failed)
			}

			for i, name := range tt.wantFiles {
				if result.Results[i].ID != tt.ids[i] {
					t.Errorf("result %d: expected id %s, got %s", i, tt.ids[i], result.Results[i].ID)
				}
				if _, err := os.Stat(filepath.Join(tempDir, name)); err != nil {
					t.Errorf("expected file %s: %v", name, err)
				}
			}

			if _, err := os.Stat(filepath.Join(tempDir, "export_manifest.json")); err != nil {
				t.Errorf("manifest not written: %v", err)
			}
		})
	}
}

func TestBulkExport_SourceContent(t *testing.T) {
	tempDir := t.TempDir()
	fake := &tu.FakeCatalog{Entries: catalogEntries()}

	if _, err := newTestExporter(fake).BulkExport(context.Background(), nil, []models.ID{"1"}, BulkExportOpts{OutputDir: tempDir, RateLimit: 1000}); err != nil {
		t.Fatalf("BulkExport() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tempDir, "1_quick-sort.go"))
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	if string(data) != "package main\n" {
		t.Errorf("unexpected content %q", data)
	}
}

func TestBulkExport_PartialFailure(t *testing.T) {
	tempDir := t.TempDir()
	fake := &tu.FakeCatalog{Entries: catalogEntries()}

	result, err := newTestExporter(fake).BulkExport(context.Background(), nil, []models.ID{"1", "404", "2"}, BulkExportOpts{
		OutputDir:  tempDir,
		NumWorkers: 2,
		RateLimit:  1000,
	})
	if err != nil {
		t.Fatalf("BulkExport() error = %v", err)
	}

	if result.Succeeded != 2 || result.Failed != 1 {
		t.Errorf("expected 2 succeeded and 1 failed, got %d/%d", result.Succeeded, result.Failed)
	}
	if failed := result.Results[1]; failed.Success || !errors.Is(failed.Error, shared.ErrTransport) {
		t.Errorf("expected transport failure for 404, got %+v", failed)
	}

	var manifest formatter.ExportManifest
	data, err := os.ReadFile(result.ManifestPath)
	if err != nil {
		t.Fatalf("failed to read manifest: %v", err)
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		t.Fatalf("invalid manifest: %v", err)
	}
	if manifest.Total != 3 || manifest.Failed != 1 || len(manifest.Entries) != 3 {
		t.Errorf("unexpected manifest %+v", manifest)
	}
	if manifest.Entries[1].Error == "" || manifest.Entries[0].File != "1_quick-sort.go" {
		t.Errorf("unexpected manifest entries %+v", manifest.Entries)
	}
}

func TestBulkExport_Errors(t *testing.T) {
	t.Run("no ids", func(t *testing.T) {
		_, err := newTestExporter(&tu.FakeCatalog{}).BulkExport(context.Background(), nil, nil, BulkExportOpts{OutputDir: t.TempDir()})
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("unwritable output directory", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(file, nil, 0644); err != nil {
			t.Fatal(err)
		}

		_, err := newTestExporter(&tu.FakeCatalog{}).BulkExport(context.Background(), nil, []models.ID{"1"}, BulkExportOpts{OutputDir: filepath.Join(file, "out")})
		if err == nil || !strings.Contains(err.Error(), "output directory") {
			t.Errorf("expected output directory error, got %v", err)
		}
	})

	t.Run("csv format", func(t *testing.T) {
		fake := &tu.FakeCatalog{Entries: catalogEntries()}
		_, err := newTestExporter(fake).BulkExport(context.Background(), nil, []models.ID{"1"}, BulkExportOpts{OutputDir: t.TempDir(), Format: formatter.FormatCSV})
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
		if fake.Calls("Get") != 0 {
			t.Errorf("expected no fetches, got %d", fake.Calls("Get"))
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		fake := &tu.FakeCatalog{Entries: catalogEntries()}
		result, err := newTestExporter(fake).BulkExport(ctx, nil, []models.ID{"1", "2"}, BulkExportOpts{OutputDir: t.TempDir()})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if result == nil || result.Failed != 2 {
			t.Errorf("expected every entry to fail, got %+v", result)
		}
		if fake.Calls("Get") != 0 {
			t.Errorf("expected no fetches after cancel, got %d", fake.Calls("Get"))
		}
	})
}

func TestBulkExport_Progress(t *testing.T) {
	progress := make(chan ProgressUpdate, 16)
	fake := &tu.FakeCatalog{Entries: catalogEntries()}

	_, err := newTestExporter(fake).BulkExport(context.Background(), progress, []models.ID{"1", "2"}, BulkExportOpts{OutputDir: t.TempDir(), RateLimit: 1000})
	if err != nil {
		t.Fatalf("BulkExport() error = %v", err)
	}
	close(progress)

	var phases []Phase
	for u := range progress {
		phases = append(phases, u.Phase)
	}

	if len(phases) != 4 {
		t.Fatalf("expected 4 updates, got %v", phases)
	}
	if phases[0] != PrepareExport || phases[3] != WriteManifest {
		t.Errorf("unexpected phase order %v", phases)
	}
}

func TestProgressUpdate_NonBlocking(t *testing.T) {
	progress := make(chan ProgressUpdate)
	done := make(chan struct{})

	go func() {
		sendProgress(progress, ProgressUpdate{Message: "dropped"})
		sendProgress(nil, ProgressUpdate{Message: "ignored"})
		close(done)
	}()

	<-done
}

func TestIDs(t *testing.T) {
	entries := append(catalogEntries(), models.CatalogEntry{ID: "1"})
	got := IDs(entries)

	if len(got) != 3 || got[0] != "1" || got[2] != "3" {
		t.Errorf("unexpected ids %v", got)
	}
}

func TestBulkExport_HostileIDs(t *testing.T) {
	t.Run("mismatched id fails the entry", func(t *testing.T) {
		root := t.TempDir()
		out := filepath.Join(root, "a", "b")
		fake := &tu.FakeCatalog{GetFunc: func(_ context.Context, id models.ID) (models.CatalogEntry, error) {
			return models.CatalogEntry{ID: "../../escaped", Title: "x", ProgrammingLanguage: "Go", Code: "package x\n"}, nil
		}}

		result, err := newTestExporter(fake).BulkExport(context.Background(), nil, []models.ID{"7"}, BulkExportOpts{OutputDir: out, RateLimit: 1000})
		if err != nil {
			t.Fatalf("BulkExport() error = %v", err)
		}
		if result.Failed != 1 || result.Succeeded != 0 {
			t.Fatalf("expected one failure, got %+v", result)
		}
		if !errors.Is(result.Results[0].Error, shared.ErrDataShape) {
			t.Errorf("expected ErrDataShape, got %v", result.Results[0].Error)
		}

		matches, _ := filepath.Glob(filepath.Join(root, "*escaped*"))
		if len(matches) != 0 {
			t.Errorf("expected nothing written outside the output directory, got %v", matches)
		}
	})

	t.Run("path-like id stays inside the output directory", func(t *testing.T) {
		root := t.TempDir()
		out := filepath.Join(root, "a", "b")
		fake := &tu.FakeCatalog{Entries: []models.CatalogEntry{
			{ID: "../../escaped", Title: "x", ProgrammingLanguage: "Go", Code: "package x\n"},
		}}

		result, err := newTestExporter(fake).BulkExport(context.Background(), nil, []models.ID{"../../escaped"}, BulkExportOpts{OutputDir: out, RateLimit: 1000})
		if err != nil {
			t.Fatalf("BulkExport() error = %v", err)
		}
		if result.Succeeded != 1 {
			t.Fatalf("expected one success, got %+v", result.Results)
		}

		tu.AssertDirExists(t, out)
		tu.AssertFileExists(t, filepath.Join(out, "escaped_x.go"))
		if got := filepath.Dir(result.Results[0].File); got != out {
			t.Errorf("expected file inside %s, got %s", out, result.Results[0].File)
		}
		if _, err := os.Stat(filepath.Join(root, "escaped_x.go")); !os.IsNotExist(err) {
			t.Errorf("expected no file at the escaped path, stat err = %v", err)
		}
	})
}

func TestBulkExport_LogsCarryTask(t *testing.T) {
	var buf bytes.Buffer
	e := NewExporter(&tu.FakeCatalog{Entries: catalogEntries()}, shared.NewLogger(&buf))

	if _, err := e.BulkExport(context.Background(), nil, []models.ID{"1"}, BulkExportOpts{OutputDir: t.TempDir(), RateLimit: 1000}); err != nil {
		t.Fatalf("BulkExport() error = %v", err)
	}
	if !strings.Contains(buf.String(), "task=export") {
		t.Errorf("expected task field in log output, got %q", buf.String())
	}
}
