package formatter

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/algox/internal/models"
	"github.com/desertthunder/algox/internal/shared"
	th "github.com/desertthunder/algox/internal/testing"
)

func sampleEntries() []models.CatalogEntry {
	return []models.CatalogEntry{
		{
			ID:                  "1",
			Title:               "Quick Sort",
			Topic:               "sorting",
			ProgrammingLanguage: "Go",
			Code:                "func quickSort(a []int) {}",
			OwnerID:             "42",
			CreatedAt:           time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:                  "2",
			Title:               "Union | Find",
			Topic:               "graphs",
			ProgrammingLanguage: "C++",
			Code:                "int find(int x);\n",
			OwnerID:             "7",
		},
	}
}

func TestParseFormat(t *testing.T) {
	tc := map[string]Format{"": FormatText, "txt": FormatText, "JSON": FormatJSON, "csv": FormatCSV, "md": FormatMarkdown}
	for in, want := range tc {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	if _, err := ParseFormat("yaml"); !errors.Is(err, shared.ErrInvalidFlag) {
		t.Errorf("expected ErrInvalidFlag, got %v", err)
	}
}

func TestExporters(t *testing.T) {
	t.Run("ToText", func(t *testing.T) {
		data, err := ToText(sampleEntries())
		if err != nil {
			t.Fatalf("ToText failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{"ID", "TITLE", "Quick Sort", "sorting", "2024-05-01 10:00:00", "Union | Find"} {
			if !strings.Contains(output, want) {
				t.Errorf("text output missing %q, got:\n%s", want, output)
			}
		}
		if strings.Contains(output, "func quickSort") {
			t.Error("table should not include code")
		}
	})

	t.Run("ToText Empty", func(t *testing.T) {
		data, _ := ToText(nil)
		if string(data) != "No algorithms found.\n" {
			t.Errorf("unexpected empty output %q", data)
		}
	})

	t.Run("ToCSV", func(t *testing.T) {
		data, err := ToCSV(sampleEntries())
		if err != nil {
			t.Fatalf("ToCSV failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected 3 lines, got %d", len(lines))
		}
		if lines[0] != "ID,Title,Topic,Language,Owner,Created" {
			t.Errorf("CSV missing headers, got: %s", lines[0])
		}
		if lines[2] != "2,Union | Find,graphs,C++,7," {
			t.Errorf("unexpected record %q", lines[2])
		}
	})

	t.Run("ToMarkdown", func(t *testing.T) {
		data, err := ToMarkdown(sampleEntries())
		if err != nil {
			t.Fatalf("ToMarkdown failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "**Entries**: 2") {
			t.Errorf("markdown missing count, got:\n%s", output)
		}
		if !strings.Contains(output, `Union \| Find`) {
			t.Errorf("markdown should escape pipes, got:\n%s", output)
		}
	})

	t.Run("EntryMarkdown", func(t *testing.T) {
		output := string(EntryMarkdown(sampleEntries()[0]))

		if !strings.Contains(output, "# Quick Sort") {
			t.Errorf("missing heading, got:\n%s", output)
		}
		if !strings.Contains(output, "```go\nfunc quickSort(a []int) {}\n```\n") {
			t.Errorf("missing fenced code, got:\n%s", output)
		}
	})

	t.Run("EntryMarkdown Lengthens Fence", func(t *testing.T) {
		e := models.CatalogEntry{ID: "3", Title: "Doc", ProgrammingLanguage: "Elm", Code: "```\nnested\n```"}
		output := string(EntryMarkdown(e))

		if !strings.Contains(output, "````\n```\nnested\n```\n````\n") {
			t.Errorf("expected longer fence, got:\n%s", output)
		}
	})

	t.Run("EntryText", func(t *testing.T) {
		output := string(EntryText(sampleEntries()[1]))

		if !strings.HasPrefix(output, "Union | Find (#2)\n") {
			t.Errorf("unexpected header, got:\n%s", output)
		}
		if strings.Contains(output, "Created:") {
			t.Error("entries without a timestamp should omit Created")
		}
		if !strings.HasSuffix(output, "int find(int x);\n") {
			t.Errorf("unexpected code, got:\n%s", output)
		}
	})

	t.Run("Render JSON", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Render(&buf, FormatJSON, sampleEntries()); err != nil {
			t.Fatalf("Render failed: %v", err)
		}

		var decoded []map[string]any
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(decoded) != 2 || decoded[0]["programming_language"] != "Go" {
			t.Errorf("unexpected JSON %s", buf.String())
		}
		if _, ok := decoded[1]["created_at"]; ok {
			t.Error("zero created_at should be omitted")
		}
	})

	t.Run("Render Write Failure", func(t *testing.T) {
		if err := Render(&th.FWriter{}, FormatText, sampleEntries()); err == nil {
			t.Error("expected write error")
		}
		if err := RenderEntry(&th.FWriter{}, FormatMarkdown, sampleEntries()[0]); err == nil {
			t.Error("expected write error")
		}
	})
}

func TestFiles(t *testing.T) {
	t.Run("FileExtension", func(t *testing.T) {
		tc := map[string]string{"Go": "go", "c++": "cpp", " Python ": "py", "C#": "cs", "Objective-C": "m", "Brainfuck": "txt"}
		for in, want := range tc {
			if got := FileExtension(in); got != want {
				t.Errorf("FileExtension(%q) = %q, want %q", in, got, want)
			}
		}
	})

	t.Run("CodeFilename", func(t *testing.T) {
		if got := CodeFilename(sampleEntries()[1]); got != "2_union-find.cpp" {
			t.Errorf("unexpected filename %q", got)
		}
		if got := CodeFilename(models.CatalogEntry{ID: "9", Title: "!!!"}); got != "9_untitled.txt" {
			t.Errorf("unexpected filename %q", got)
		}
		if got := CodeFilename(models.CatalogEntry{ID: "../../etc/x", Title: "a/b", ProgrammingLanguage: "Go"}); got != "etc-x_a-b.go" {
			t.Errorf("unexpected filename %q", got)
		}
		if got := CodeFilename(models.CatalogEntry{ID: "..", Title: "x"}); got != "entry_x.txt" {
			t.Errorf("unexpected filename %q", got)
		}
	})

	t.Run("WriteCodeFile And Manifest", func(t *testing.T) {
		dir := t.TempDir()
		entry := sampleEntries()[0]
		path := filepath.Join(dir, CodeFilename(entry))

		if err := WriteCodeFile(entry, path); err != nil {
			t.Fatalf("WriteCodeFile failed: %v", err)
		}
		th.AssertFileExists(t, path)
		if got := th.MustReadFile(t, path); got != entry.Code {
			t.Errorf("unexpected file content %q", got)
		}

		manifestPath := filepath.Join(dir, "export_manifest.json")
		m := ExportManifest{Directory: dir, Total: 1, Succeeded: 1, Entries: []ManifestEntry{{ID: "1", File: path}}}
		if err := WriteManifest(m, manifestPath); err != nil {
			t.Fatalf("WriteManifest failed: %v", err)
		}

		var decoded ExportManifest
		if err := json.Unmarshal([]byte(th.MustReadFile(t, manifestPath)), &decoded); err != nil {
			t.Fatalf("invalid manifest: %v", err)
		}
		if decoded.Succeeded != 1 || decoded.Entries[0].File != path {
			t.Errorf("unexpected manifest %+v", decoded)
		}
	})

	t.Run("WriteCodeFile Missing Directory", func(t *testing.T) {
		err := WriteCodeFile(sampleEntries()[0], filepath.Join(t.TempDir(), "missing", "x.go"))
		if err == nil {
			t.Error("expected error writing into a missing directory")
		}
	})
}
