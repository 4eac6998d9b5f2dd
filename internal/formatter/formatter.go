// package formatter renders catalog entries as text tables, JSON, CSV and Markdown, and writes export files
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/desertthunder/algox/internal/models"
	"github.com/desertthunder/algox/internal/shared"
)

// Format selects an output representation.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
)

// ParseFormat accepts a format name, with "txt" and "md" as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: unknown format %q (use text, json, csv or markdown)", shared.ErrInvalidFlag, s)
}

// extensions maps the languages the catalog accepts to source file extensions.
var extensions = map[string]string{
	"go":          "go",
	"c++":         "cpp",
	"python":      "py",
	"javascript":  "js",
	"rust":        "rs",
	"c#":          "cs",
	"java":        "java",
	"php":         "php",
	"ruby":        "rb",
	"kotlin":      "kt",
	"swift":       "swift",
	"c":           "c",
	"typescript":  "ts",
	"lua":         "lua",
	"haskell":     "hs",
	"lisp":        "lisp",
	"r":           "r",
	"objective-c": "m",
	"scala":       "scala",
	"dart":        "dart",
	"elixir":      "ex",
}

// FileExtension returns the source extension for language, or "txt" when unknown.
func FileExtension(language string) string {
	if ext, ok := extensions[strings.ToLower(strings.TrimSpace(language))]; ok {
		return ext
	}
	return "txt"
}

// fenceLanguage returns the info string for a Markdown code fence.
func fenceLanguage(language string) string {
	ext := FileExtension(language)
	if ext == "txt" {
		return ""
	}
	return ext
}

func created(e models.CatalogEntry) string {
	if e.CreatedAt.IsZero() {
		return ""
	}
	return e.CreatedAt.Format(time.DateTime)
}

// ToText renders entries as an aligned table.
func ToText(entries []models.CatalogEntry) ([]byte, error) {
	var buf bytes.Buffer
	if len(entries) == 0 {
		buf.WriteString("No algorithms found.\n")
		return buf.Bytes(), nil
	}

	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tTOPIC\tLANGUAGE\tOWNER\tCREATED")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.Title, e.Topic, e.ProgrammingLanguage, e.OwnerID, created(e))
	}
	if err := tw.Flush(); err != nil {
		return nil, fmt.Errorf("failed to write table: %w", err)
	}
	return buf.Bytes(), nil
}

// ToCSV converts entries to CSV with columns: ID, Title, Topic, Language, Owner, Created
func ToCSV(entries []models.CatalogEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Topic", "Language", "Owner", "Created"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, e := range entries {
		record := []string{e.ID.String(), e.Title, e.Topic, e.ProgrammingLanguage, e.OwnerID.String(), created(e)}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ToMarkdown converts entries to a Markdown table.
func ToMarkdown(entries []models.CatalogEntry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Algorithms\n\n")
	fmt.Fprintf(&buf, "**Entries**: %d\n\n", len(entries))
	if len(entries) == 0 {
		return buf.Bytes(), nil
	}

	buf.WriteString("| ID | Title | Topic | Language | Owner |\n")
	buf.WriteString("|---|---|---|---|---|\n")
	for _, e := range entries {
		fmt.Fprintf(&buf, "| %s | %s | %s | %s | %s |\n",
			e.ID, escapeCell(e.Title), escapeCell(e.Topic), escapeCell(e.ProgrammingLanguage), e.OwnerID)
	}

	return buf.Bytes(), nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// EntryText renders one entry with its code.
func EntryText(e models.CatalogEntry) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s (#%s)\n", e.Title, e.ID)
	fmt.Fprintf(&buf, "Topic: %s\n", e.Topic)
	fmt.Fprintf(&buf, "Language: %s\n", e.ProgrammingLanguage)
	fmt.Fprintf(&buf, "Owner: %s\n", e.OwnerID)
	if c := created(e); c != "" {
		fmt.Fprintf(&buf, "Created: %s\n", c)
	}
	buf.WriteString("\n")
	buf.WriteString(e.Code)
	if !strings.HasSuffix(e.Code, "\n") {
		buf.WriteString("\n")
	}

	return buf.Bytes()
}

// EntryMarkdown renders one entry with its code in a fenced block.
func EntryMarkdown(e models.CatalogEntry) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", e.Title)
	fmt.Fprintf(&buf, "**Topic**: %s\n", e.Topic)
	fmt.Fprintf(&buf, "**Language**: %s\n", e.ProgrammingLanguage)
	if c := created(e); c != "" {
		fmt.Fprintf(&buf, "**Created**: %s\n", c)
	}

	fence := "```"
	for strings.Contains(e.Code, fence) {
		fence += "`"
	}
	fmt.Fprintf(&buf, "\n%s%s\n%s", fence, fenceLanguage(e.ProgrammingLanguage), e.Code)
	if !strings.HasSuffix(e.Code, "\n") {
		buf.WriteString("\n")
	}
	fmt.Fprintf(&buf, "%s\n", fence)

	return buf.Bytes()
}

// Render writes entries to w in the given format.
func Render(w io.Writer, format Format, entries []models.CatalogEntry) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = shared.MarshalJSON(entries, true)
	case FormatCSV:
		data, err = ToCSV(entries)
	case FormatMarkdown:
		data, err = ToMarkdown(entries)
	default:
		data, err = ToText(entries)
	}
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return err
}

// RenderEntry writes a single entry to w in the given format. CSV renders a one-row table.
func RenderEntry(w io.Writer, format Format, e models.CatalogEntry) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = shared.MarshalJSON(e, true)
	case FormatCSV:
		data, err = ToCSV([]models.CatalogEntry{e})
	case FormatMarkdown:
		data = EntryMarkdown(e)
	default:
		data = EntryText(e)
	}
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return err
}

// WriteCodeFile writes the entry's code to path.
func WriteCodeFile(e models.CatalogEntry, path string) error {
	if err := os.WriteFile(path, []byte(e.Code), 0644); err != nil {
		return fmt.Errorf("failed to write code file: %w", err)
	}
	return nil
}

// CodeFilename returns "<id>_<slug>.<ext>" for e. Both the id and the title are
// slugified, so the name never contains a path separator.
func CodeFilename(e models.CatalogEntry) string {
	id := shared.Slugify(e.ID.String())
	if id == "" {
		id = "entry"
	}
	slug := shared.Slugify(e.Title)
	if slug == "" {
		slug = "untitled"
	}
	return fmt.Sprintf("%s_%s.%s", id, slug, FileExtension(e.ProgrammingLanguage))
}

// ManifestEntry records the outcome of exporting one entry.
type ManifestEntry struct {
	ID    models.ID `json:"id"`
	Title string    `json:"title,omitempty"`
	File  string    `json:"file,omitempty"`
	Error string    `json:"error,omitempty"`
}

// ExportManifest summarizes a bulk export.
type ExportManifest struct {
	ExportedAt time.Time       `json:"exported_at"`
	Directory  string          `json:"directory"`
	Total      int             `json:"total"`
	Succeeded  int             `json:"succeeded"`
	Failed     int             `json:"failed"`
	Entries    []ManifestEntry `json:"entries"`
}

// WriteManifest writes m as indented JSON to path.
func WriteManifest(m ExportManifest, path string) error {
	data, err := shared.MarshalJSON(m, true)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
