package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

var (
	_ tea.Msg = listLoadedMsg{}
	_ tea.Msg = entryLoadedMsg{}
)

// listLoadedMsg reports that a list load finished. The entries are read from the result view.
type listLoadedMsg struct {
	source source
	err    error
}

// entryLoadedMsg reports that a detail load finished.
type entryLoadedMsg struct {
	err error
}
