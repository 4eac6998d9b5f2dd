package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/algox/internal/models"
)

var _ list.Item = entryItem{}

// entryItem wraps [models.CatalogEntry] to implement [list.Item].
type entryItem struct {
	entry models.CatalogEntry
}

func (i entryItem) FilterValue() string { return i.entry.Title }
func (i entryItem) Title() string       { return i.entry.Title }
func (i entryItem) Description() string {
	desc := fmt.Sprintf("#%s • %s", i.entry.ID, i.entry.ProgrammingLanguage)
	if i.entry.Topic != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.entry.Topic)
	}
	return desc
}

func toItems(entries []models.CatalogEntry) []list.Item {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = entryItem{entry: e}
	}
	return items
}
