package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mannit-co/albayan/internal/cli/pagination"
	"github.com/mannit-co/albayan/internal/engine"
	listview "github.com/mannit-co/albayan/internal/tui/list"
)

// Item is what a list screen can show.
type Item interface {
	engine.Searchable
	engine.Timestamped
}

// Screen describes one entity list: its columns, how to render a row and a
// detail view, and which fields it can sort by.
type Screen[T Item] struct {
	// Title is shown above the list, e.g. "Candidates".
	Title string

	Columns []table.Column
	Row     listview.RowFunc[T]
	Detail  func(item T, width int) string

	// Sorter orders the list. SortFields is the order "s" cycles through.
	Sorter     *pagination.Sorter[T]
	SortFields []string
}

// Fetcher loads the items for a screen. It should honor ctx cancellation.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// itemsLoadedMsg carries the result of a Fetcher.
type itemsLoadedMsg[T any] struct {
	items []T
	err   error
}

// ScreenModel is the Bubble Tea model behind the candidate, test and
// question screens.
type ScreenModel[T Item] struct {
	// View state
	state  ViewState
	screen Screen[T]
	all    []T // Source of truth
	shown  []T // Searched/sorted for display

	// Interactive components
	list       *listview.PageListModel[T]
	textInput  textinput.Model
	showFilter bool

	// Ordering
	sortBy      string // "" keeps source order
	sortOrder   string
	recentFirst bool

	// startPage is applied once loading completes
	startPage int

	width  int
	height int

	// Loading state
	loading  *LoadingState
	fetchCmd tea.Cmd

	err error
}

// NewScreenModel creates a model showing items. It returns
// pager.ErrInvalidPageSize when pageSize <= 0.
func NewScreenModel[T Item](screen Screen[T], items []T, pageSize int) (*ScreenModel[T], error) {
	m, err := newScreenModel(screen, pageSize)
	if err != nil {
		return nil, err
	}
	m.state = ViewStateList
	m.all = items
	m.refresh()
	return m, nil
}

// NewScreenModelWithLoading creates a model that shows a spinner until
// fetcher returns.
func NewScreenModelWithLoading[T Item](
	ctx context.Context,
	screen Screen[T],
	pageSize int,
	fetcher Fetcher[T],
) (*ScreenModel[T], error) {
	m, err := newScreenModel(screen, pageSize)
	if err != nil {
		return nil, err
	}
	m.state = ViewStateLoading
	m.loading = NewLoadingState()
	m.loading.SetMessage(fmt.Sprintf("Loading %s...", strings.ToLower(screen.Title)))
	m.fetchCmd = func() tea.Msg {
		items, fetchErr := fetcher(ctx)
		return itemsLoadedMsg[T]{items: items, err: fetchErr}
	}
	return m, nil
}

func newScreenModel[T Item](screen Screen[T], pageSize int) (*ScreenModel[T], error) {
	list, err := listview.NewPageListModel(nil, pageSize, screen.Columns, screen.Row)
	if err != nil {
		return nil, err
	}

	ti := textinput.New()
	ti.Placeholder = "Search " + strings.ToLower(screen.Title) + "..."
	ti.CharLimit = filterInputCharLimit
	ti.Width = filterInputWidth

	m := &ScreenModel[T]{
		screen:    screen,
		list:      list,
		textInput: ti,
		sortOrder: pagination.SortOrderAsc,
		width:     defaultWidth,
		height:    defaultHeight,
	}
	m.list.SetWidth(m.width)
	return m, nil
}

// SetQuery sets the search text.
func (m *ScreenModel[T]) SetQuery(query string) {
	m.textInput.SetValue(query)
	m.refresh()
}

// SetSort selects a sort field and order. An unknown field keeps source order.
func (m *ScreenModel[T]) SetSort(field, order string) {
	m.sortBy = ""
	if m.screen.Sorter != nil && m.screen.Sorter.IsValidField(field) {
		m.sortBy = field
	}
	if order == pagination.SortOrderDesc {
		m.sortOrder = pagination.SortOrderDesc
	} else {
		m.sortOrder = pagination.SortOrderAsc
	}
	m.refresh()
}

// SetRecentFirst toggles newest-first ordering.
func (m *ScreenModel[T]) SetRecentFirst(on bool) {
	m.recentFirst = on
	m.refresh()
}

// GoToPage jumps to page, clamped to the valid range. While loading, the
// jump is deferred until the items arrive.
func (m *ScreenModel[T]) GoToPage(page int) {
	if m.state == ViewStateLoading {
		m.startPage = page
		return
	}
	m.list.GoToPage(page)
}

// State returns the current view state.
func (m *ScreenModel[T]) State() ViewState {
	return m.state
}

// Err returns the fetch error, if any.
func (m *ScreenModel[T]) Err() error {
	return m.err
}

// List returns the paginated list.
func (m *ScreenModel[T]) List() *listview.PageListModel[T] {
	return m.list
}

// Init starts the spinner and fetch when loading.
func (m *ScreenModel[T]) Init() tea.Cmd {
	if m.state == ViewStateLoading {
		return tea.Batch(m.loading.Init(), m.fetchCmd)
	}
	return nil
}

// Update handles messages and updates the model state.
func (m *ScreenModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if winMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = winMsg.Width
		m.height = winMsg.Height
		m.list.SetWidth(m.width)
		return m, nil
	}

	if loadMsg, ok := msg.(itemsLoadedMsg[T]); ok {
		return m.handleLoadingComplete(loadMsg)
	}

	if m.showFilter {
		return m.handleFilterInput(msg)
	}

	switch m.state {
	case ViewStateLoading:
		return m, m.loading.Update(msg)
	case ViewStateList:
		return m.handleListUpdate(msg)
	case ViewStateDetail:
		return m.handleDetailUpdate(msg)
	case ViewStateQuitting, ViewStateError:
		return m.handleQuitUpdate(msg)
	default:
		return m, nil
	}
}

func (m *ScreenModel[T]) handleLoadingComplete(msg itemsLoadedMsg[T]) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		m.state = ViewStateError
		return m, tea.Quit
	}
	m.all = msg.items
	m.state = ViewStateList
	m.refresh()
	if m.startPage > 0 {
		m.list.GoToPage(m.startPage)
		m.startPage = 0
	}
	return m, nil
}

func (m *ScreenModel[T]) handleFilterInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEnter, keyEsc:
			m.showFilter = false
			m.textInput.Blur()
			m.refresh()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.refresh()
	return m, cmd
}

func (m *ScreenModel[T]) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		case keyEnter:
			if _, found := m.list.Selected(); found {
				m.state = ViewStateDetail
			}
			return m, nil
		case keySlash:
			m.showFilter = true
			m.textInput.Focus()
			return m, textinput.Blink
		case keyS:
			m.cycleSort()
			return m, nil
		case keyR:
			m.SetRecentFirst(!m.recentFirst)
			return m, nil
		case keyEsc:
			if m.textInput.Value() != "" {
				m.SetQuery("")
			}
			return m, nil
		}
	}

	_, cmd := m.list.Update(msg)
	return m, cmd
}

func (m *ScreenModel[T]) handleDetailUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		case keyEsc:
			m.state = ViewStateList
			return m, nil
		}
	}
	return m, nil
}

func (m *ScreenModel[T]) handleQuitUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
	}
	return m, nil
}

// cycleSort steps through source order, each field ascending, then each
// field descending. A field set with SetSort that is not in SortFields
// restarts the cycle.
func (m *ScreenModel[T]) cycleSort() {
	fields := m.screen.SortFields
	if len(fields) == 0 {
		return
	}
	i := slices.Index(fields, m.sortBy)
	switch {
	case i < len(fields)-1:
		m.sortBy = fields[i+1]
	case m.sortOrder == pagination.SortOrderAsc:
		m.sortBy = fields[0]
		m.sortOrder = pagination.SortOrderDesc
	default:
		m.sortBy = ""
		m.sortOrder = pagination.SortOrderAsc
	}
	m.refresh()
}

func (m *ScreenModel[T]) sortField() string {
	return m.sortBy
}

// refresh recomputes the shown items and hands them to the list, which keeps
// the current page when it still exists.
func (m *ScreenModel[T]) refresh() {
	shown := engine.Search(m.all, m.textInput.Value())
	if m.recentFirst {
		shown = engine.RecentFirst(shown)
	}
	if field := m.sortField(); field != "" && m.screen.Sorter != nil {
		shown = m.screen.Sorter.Sort(shown, field, m.sortOrder)
	}
	m.shown = shown
	m.list.SetItems(shown)
}

// View renders the current view.
func (m *ScreenModel[T]) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateError:
		return CriticalStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	case ViewStateLoading:
		return RenderLoading(m.loading)
	case ViewStateDetail:
		if item, ok := m.list.Selected(); ok && m.screen.Detail != nil {
			return m.screen.Detail(item, m.width) + "\n" + SubtleStyle.Render("[Esc] Back to list  [q] Quit")
		}
		return errSelectedOutOfBounds
	case ViewStateList:
		return m.renderListView()
	default:
		return ""
	}
}

func (m *ScreenModel[T]) renderListView() string {
	header := HeaderStyle.Render(strings.ToUpper(m.screen.Title)) + "  " + SubtleStyle.Render(m.statusLine())
	help := SubtleStyle.Render(
		"[/] Search  [s] Sort  [r] Recent  [↑↓] Move  [←→] Page  [Enter] Details  [q] Quit")

	parts := []string{header, "", m.list.View()}
	if m.showFilter {
		parts = append(parts, "Search: "+m.textInput.View())
	}
	parts = append(parts, help)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *ScreenModel[T]) statusLine() string {
	parts := []string{fmt.Sprintf("%d of %d", len(m.shown), len(m.all))}
	if field := m.sortField(); field != "" {
		parts = append(parts, fmt.Sprintf("sort: %s %s", field, m.sortOrder))
	}
	if m.recentFirst {
		parts = append(parts, "recent first")
	}
	if q := m.textInput.Value(); q != "" {
		parts = append(parts, fmt.Sprintf("search: %q", q))
	}
	return strings.Join(parts, " · ")
}
