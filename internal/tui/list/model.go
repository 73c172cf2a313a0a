package listview

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mannit-co/albayan/internal/pager"
	"github.com/mannit-co/albayan/internal/tui/controls"
)

// RowFunc renders one item as a table row. The row must have one cell per column.
type RowFunc[T any] func(item T) table.Row

// PageListModel shows one page of items at a time.
type PageListModel[T any] struct {
	// pager holds the items and the current page
	pager *pager.Pager[T]

	// rowFunc renders a single item
	rowFunc RowFunc[T]

	// table renders the current page; it never receives key messages
	table table.Model

	// controls is the Prev / indicator / Next bar
	controls controls.Model

	// cursor is the selected row within the current page (0-based)
	cursor int

	// headerHeight is the line count of the rendered column header
	headerHeight int

	width int
}

// NewPageListModel creates a list over items. It returns
// pager.ErrInvalidPageSize when pageSize <= 0.
func NewPageListModel[T any](
	items []T,
	pageSize int,
	columns []table.Column,
	rowFunc RowFunc[T],
) (*PageListModel[T], error) {
	p, err := pager.New(items, pageSize)
	if err != nil {
		return nil, err
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))

	// table.SetHeight counts the header lines, border included.
	headerHeight := lipgloss.Height(styles.Header.Render("x"))

	m := &PageListModel[T]{
		pager:        p,
		rowFunc:      rowFunc,
		table:        table.New(table.WithColumns(columns), table.WithFocused(true), table.WithStyles(styles)),
		controls:     controls.New(),
		headerHeight: headerHeight,
	}
	m.sync()
	return m, nil
}

// Init implements tea.Model.
func (m *PageListModel[T]) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys, page requests and resizes.
func (m *PageListModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case controls.RequestPreviousMsg:
		m.pager.Previous()
		m.cursor = 0
		m.sync()
	case controls.RequestNextMsg:
		m.pager.Next()
		m.cursor = 0
		m.sync()
	case tea.WindowSizeMsg:
		m.SetWidth(msg.Width)
	}
	return m, nil
}

//nolint:exhaustive // Only navigation keys are handled here.
func (m *PageListModel[T]) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.sync()
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.pager.PaginatedData())-1 {
			m.cursor++
			m.sync()
		}
		return m, nil
	case "home":
		m.GoToPage(pager.FirstPage)
		return m, nil
	case "end":
		m.pager.Last()
		m.cursor = 0
		m.sync()
		return m, nil
	}

	var cmd tea.Cmd
	m.controls, cmd = m.controls.Update(msg)
	return m, cmd
}

// View renders the table followed by the page controls.
func (m *PageListModel[T]) View() string {
	if m.pager.TotalItems() == 0 {
		return "  No items.\n"
	}

	var b strings.Builder
	b.WriteString(m.table.View())
	b.WriteString("\n")
	if bar := m.controls.View(); bar != "" {
		b.WriteString("\n")
		b.WriteString(bar)
		b.WriteString("\n")
	}
	return b.String()
}

// SetItems replaces the items. The current page is kept when it still exists
// and clamped otherwise; the cursor is clamped to the new page.
func (m *PageListModel[T]) SetItems(items []T) {
	m.pager.SetItems(items)
	m.sync()
}

// SetPageSize changes the page size. It returns pager.ErrInvalidPageSize
// when size <= 0 and leaves the list unchanged.
func (m *PageListModel[T]) SetPageSize(size int) error {
	if err := m.pager.SetPageSize(size); err != nil {
		return err
	}
	m.sync()
	return nil
}

// GoToPage jumps to page, clamped to the valid range, and resets the cursor.
func (m *PageListModel[T]) GoToPage(page int) {
	m.pager.GoToPage(page)
	m.cursor = 0
	m.sync()
}

// SetWidth sets the available width.
func (m *PageListModel[T]) SetWidth(w int) {
	m.width = w
	m.table.SetWidth(w)
	m.controls.SetWidth(w)
}

// Selected returns the item under the cursor. ok is false for an empty list.
func (m *PageListModel[T]) Selected() (T, bool) {
	page := m.pager.PaginatedData()
	if len(page) == 0 {
		var zero T
		return zero, false
	}
	return page[m.cursor], true
}

// Cursor returns the selected row within the current page.
func (m *PageListModel[T]) Cursor() int {
	return m.cursor
}

// State returns the pager state.
func (m *PageListModel[T]) State() pager.State[T] {
	return m.pager.State()
}

// Controls returns the controls state.
func (m *PageListModel[T]) Controls() controls.State {
	return m.controls.State()
}

// sync pushes the current page into the table and controls.
func (m *PageListModel[T]) sync() {
	page := m.pager.PaginatedData()
	if m.cursor >= len(page) {
		m.cursor = max(len(page)-1, 0)
	}

	rows := make([]table.Row, 0, len(page))
	for _, item := range page {
		rows = append(rows, m.rowFunc(item))
	}
	m.table.SetRows(rows)
	m.table.SetHeight(max(m.pager.PageSize(), 1) + m.headerHeight)
	m.table.SetCursor(m.cursor)

	m.controls.SetState(controls.StateOf(m.pager.State()))
}
