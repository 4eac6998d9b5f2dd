package tasks

import (
	"fmt"

	"github.com/desertthunder/algox/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	PrepareExport Phase = iota
	ExportEntry
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case PrepareExport:
		return "prepare_export"
	case ExportEntry:
		return "export_entry"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

func prepareExportUpdate(total int, dir string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PrepareExport,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Exporting %d algorithms to %s...", total, dir),
	}
}

func exportCompletedUpdate(step, total int, res ExportResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportEntry,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s → %s", step, total, res.Title, res.File),
		Data:    res,
	}
}

func exportFailedUpdate(step, total int, id models.ID, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportEntry,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ #%s: %v", step, total, id, err),
	}
}

func manifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Wrote manifest %s", path),
	}
}
