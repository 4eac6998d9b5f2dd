// Package ui implements an interactive terminal browser for the catalog using bubbletea's Elm architecture.
//
// The TUI has three views:
//  1. [ListView] : the current result set, loaded as all entries, the user's own entries or a search
//  2. [DetailView] : one entry with its code
//  3. [SearchView] : a one-line query such as "topic:graphs lang:Go sort:newest dijkstra"
//
// The [Model] never holds catalog data of its own. Loads go through a
// [catalog.ResultView] and the model re-reads the view's snapshot when a load
// finishes, so a slow response for an older query cannot replace newer results.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
