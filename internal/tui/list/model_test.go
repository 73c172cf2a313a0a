package listview

import (
	"strconv"
	"testing"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mannit-co/albayan/internal/pager"
	"github.com/mannit-co/albayan/internal/tui/controls"
)

func numbers(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i + 1
	}
	return items
}

func newTestList(t *testing.T, items []int, pageSize int) *PageListModel[int] {
	t.Helper()
	m, err := NewPageListModel(items, pageSize,
		[]table.Column{{Title: "N", Width: 6}},
		func(n int) table.Row { return table.Row{strconv.Itoa(n)} },
	)
	require.NoError(t, err)
	return m
}

func press(t *testing.T, m *PageListModel[int], msg tea.KeyMsg) {
	t.Helper()
	_, cmd := m.Update(msg)
	for cmd != nil {
		_, cmd = m.Update(cmd())
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewPageListModel_InvalidPageSize(t *testing.T) {
	_, err := NewPageListModel([]int{1}, 0, nil, func(int) table.Row { return nil })
	require.ErrorIs(t, err, pager.ErrInvalidPageSize)
}

func TestPageListModel_Navigation(t *testing.T) {
	m := newTestList(t, numbers(25), 10)

	assert.Equal(t, 1, m.State().CurrentPage)
	assert.Equal(t, 3, m.State().TotalPages)

	press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, m.State().CurrentPage)
	assert.Equal(t, []int{11, 12, 13, 14, 15, 16, 17, 18, 19, 20}, m.State().PaginatedData)

	press(t, m, runes("l"))
	assert.Equal(t, 3, m.State().CurrentPage)
	assert.Equal(t, []int{21, 22, 23, 24, 25}, m.State().PaginatedData)

	// Next is disabled on the last page.
	press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 3, m.State().CurrentPage)
	assert.False(t, m.Controls().HasNext)

	press(t, m, tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 1, m.State().CurrentPage)

	// Previous is disabled on the first page.
	press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 1, m.State().CurrentPage)

	press(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	assert.Equal(t, 3, m.State().CurrentPage)
}

func TestPageListModel_Cursor(t *testing.T) {
	m := newTestList(t, numbers(12), 5)

	press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	press(t, m, runes("j"))
	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, 3, sel)

	press(t, m, runes("k"))
	assert.Equal(t, 1, m.Cursor())

	for range 10 {
		press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, 4, m.Cursor(), "cursor stops at the last row of the page")

	press(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, 2, m.State().CurrentPage)
	assert.Equal(t, 0, m.Cursor(), "page change resets the cursor")
	sel, _ = m.Selected()
	assert.Equal(t, 6, sel)
}

func TestPageListModel_SetItemsReclamps(t *testing.T) {
	m := newTestList(t, numbers(30), 10)
	m.GoToPage(3)
	for range 9 {
		press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}

	m.SetItems(numbers(25))
	assert.Equal(t, 3, m.State().CurrentPage, "page still exists")
	assert.Equal(t, 4, m.Cursor(), "cursor clamped to the shorter page")

	m.SetItems(numbers(7))
	assert.Equal(t, 1, m.State().CurrentPage)
	assert.False(t, m.Controls().Visible())

	m.SetItems(nil)
	_, ok := m.Selected()
	assert.False(t, ok)
	assert.Contains(t, m.View(), "No items")
}

func TestPageListModel_SetPageSize(t *testing.T) {
	m := newTestList(t, numbers(30), 10)
	m.GoToPage(3)

	require.ErrorIs(t, m.SetPageSize(0), pager.ErrInvalidPageSize)
	assert.Equal(t, 10, m.State().PageSize)

	require.NoError(t, m.SetPageSize(20))
	assert.Equal(t, 2, m.State().CurrentPage)
	assert.Equal(t, 2, m.State().TotalPages)
}

func TestPageListModel_View(t *testing.T) {
	m := newTestList(t, numbers(15), 10)
	_, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	view := m.View()
	assert.Contains(t, view, "N")
	assert.Contains(t, view, "10")
	assert.Contains(t, view, controls.PrevLabel)
	assert.Contains(t, view, "1/2")

	m.SetItems(numbers(3))
	assert.NotContains(t, m.View(), controls.NextLabel)
}

func TestPageListModel_ViewShowsWholePage(t *testing.T) {
	tests := []struct {
		name     string
		items    []int
		pageSize int
		visible  []string
		hidden   []string
	}{
		{
			name:     "five per page",
			items:    []int{101, 102, 103, 104, 105, 106},
			pageSize: 5,
			visible:  []string{"101", "102", "103", "104", "105"},
			hidden:   []string{"106"},
		},
		{
			name:     "ten per page",
			items:    []int{201, 202, 203, 204, 205, 206, 207, 208, 209, 210, 211},
			pageSize: 10,
			visible:  []string{"201", "205", "209", "210"},
			hidden:   []string{"211"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestList(t, tt.items, tt.pageSize)
			_, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

			view := m.View()
			for _, want := range tt.visible {
				assert.Contains(t, view, want)
			}
			for _, gone := range tt.hidden {
				assert.NotContains(t, view, gone)
			}
			assert.Len(t, m.State().PaginatedData, tt.pageSize)
		})
	}
}
