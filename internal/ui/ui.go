package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/algox/internal/catalog"
	"github.com/desertthunder/algox/internal/formatter"
	"github.com/desertthunder/algox/internal/models"
	"github.com/desertthunder/algox/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ListView ViewState = iota
	DetailView
	SearchView
)

type source int

const (
	sourceAll source = iota
	sourceMine
	sourceSearch
)

func (s source) String() string {
	switch s {
	case sourceMine:
		return "My Algorithms"
	case sourceSearch:
		return "Search Results"
	default:
		return "All Algorithms"
	}
}

// Session reports the logged in user.
type Session interface {
	UserID() (models.ID, error)
}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	results *catalog.ResultView
	session Session
	logger  *log.Logger

	view         ViewState
	source       source
	query        models.SearchQuery
	loading      bool
	snap         catalog.Snapshot
	entryLoading bool
	notice       string

	width  int
	height int
	list   list.Model
	input  textinput.Model
	help   help.Model
	keys   keyMap
}

// NewModel creates a new TUI model over results.
func NewModel(ctx context.Context, results *catalog.ResultView, session Session, logger *log.Logger) *Model {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = sourceAll.String()
	l.SetShowHelp(false)

	input := textinput.New()
	input.Placeholder = "topic:graphs lang:Go sort:newest dijkstra"
	input.Prompt = "search> "

	return &Model{
		ctx:     ctx,
		results: results,
		session: session,
		logger:  logger,
		view:    ListView,
		list:    l,
		input:   input,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init loads every entry.
func (m *Model) Init() tea.Cmd {
	return m.load(sourceAll)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ListView:
			return m.handleListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case SearchView:
			return m.handleSearchKeys(msg)
		}

	case listLoadedMsg:
		if errors.Is(msg.err, shared.ErrSuperseded) {
			return m, nil
		}
		m.loading = false
		m.snap = m.results.Snapshot()
		m.list.Title = msg.source.String()
		if msg.source == sourceSearch && m.query.IsEmpty() {
			m.list.Title += " (no filters)"
		}
		return m, m.list.SetItems(toItems(m.snap.Entries))

	case entryLoadedMsg:
		if errors.Is(msg.err, shared.ErrSuperseded) {
			return m, nil
		}
		m.entryLoading = false
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case DetailView:
		return m.renderDetail()
	case SearchView:
		return m.renderSearch()
	default:
		return m.renderList()
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	m.notice = ""
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.list.SelectedItem().(entryItem); ok {
			m.view = DetailView
			m.entryLoading = true
			return m, m.loadOne(item.entry.ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.all):
		return m, m.load(sourceAll)
	case key.Matches(msg, m.keys.mine):
		return m, m.load(sourceMine)
	case key.Matches(msg, m.keys.search):
		m.view = SearchView
		m.input.SetValue("")
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.refresh):
		return m, m.load(m.source)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = ListView
	}
	return m, nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.input.Blur()
		m.view = ListView
		return m, nil
	case tea.KeyEnter:
		q, err := parseQuery(m.input.Value())
		if err != nil {
			m.notice = err.Error()
			return m, nil
		}
		m.input.Blur()
		m.view = ListView
		m.query = q
		return m, m.load(sourceSearch)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// load issues a list load for src. Results are read back from the view when the command finishes.
func (m *Model) load(src source) tea.Cmd {
	var userID models.ID
	if src == sourceMine {
		id, err := m.session.UserID()
		if err != nil {
			m.notice = "Log in to see your algorithms."
			return nil
		}
		userID = id
	}

	m.source = src
	m.loading = true
	query := m.query

	return func() tea.Msg {
		var err error
		switch src {
		case sourceMine:
			err = m.results.LoadMine(m.ctx, userID)
		case sourceSearch:
			err = m.results.LoadBySearch(m.ctx, query)
		default:
			err = m.results.LoadAll(m.ctx)
		}
		return listLoadedMsg{source: src, err: err}
	}
}

func (m *Model) loadOne(id models.ID) tea.Cmd {
	return func() tea.Msg {
		return entryLoadedMsg{err: m.results.LoadOne(m.ctx, id)}
	}
}

func (m *Model) renderList() string {
	var status string
	switch {
	case m.notice != "":
		status = styles.warn.Render(m.notice)
	case m.loading:
		status = styles.help.Render("Loading...")
	case m.snap.Status == catalog.StatusFailed:
		status = styles.status(m.snap.Status).Render(fmt.Sprintf("Could not load algorithms: %v", m.snap.Err))
	case m.snap.Status == catalog.StatusEmpty:
		status = styles.status(m.snap.Status).Render("No algorithms found.")
	case m.snap.Status == catalog.StatusLoaded:
		status = styles.status(m.snap.Status).Render(fmt.Sprintf("%d algorithms", len(m.snap.Entries)))
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.all, m.keys.mine, m.keys.search, m.keys.refresh, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n\n%s", m.list.View(), status, helpView)
}

func (m *Model) renderDetail() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})

	if m.entryLoading {
		return fmt.Sprintf("%s\n\n%s", styles.help.Render("Loading entry..."), helpView)
	}
	if err := m.results.EntryErr(); err != nil {
		return fmt.Sprintf("%s\n\n%s", styles.err.Render(fmt.Sprintf("Could not load entry: %v", err)), helpView)
	}

	entry, ok := m.results.Entry()
	if !ok {
		return helpView
	}

	title := styles.title.Render(entry.Title)
	return fmt.Sprintf("%s\n%s\n%s", title, formatter.EntryText(entry), helpView)
}

func (m *Model) renderSearch() string {
	title := styles.title.Render("Search")
	var notice string
	if m.notice != "" {
		notice = "\n" + styles.err.Render(m.notice)
	}
	hint := styles.help.Render("keys: title topic lang user id sort (newest, most_popular) • enter to search • esc to cancel")
	return fmt.Sprintf("%s\n%s%s\n\n%s", title, m.input.View(), notice, hint)
}
