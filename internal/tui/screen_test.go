package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mannit-co/albayan/internal/engine"
	"github.com/mannit-co/albayan/internal/pager"
)

var baseTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func testCandidates(n int) []engine.Candidate {
	out := make([]engine.Candidate, n)
	for i := range out {
		out[i] = engine.Candidate{
			ID:        fmt.Sprintf("c%02d", i+1),
			Name:      fmt.Sprintf("Candidate %02d", i+1),
			Email:     fmt.Sprintf("c%02d@example.com", i+1),
			Status:    engine.CandidateInvited,
			InvitedAt: baseTime.Add(time.Duration(i) * time.Hour),
		}
	}
	return out
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send delivers msg and any follow-up message its command produces.
func send(m *ScreenModel[engine.Candidate], msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	if cmd == nil {
		return nil
	}
	next := cmd()
	switch next.(type) {
	case tea.QuitMsg, nil:
		return cmd
	}
	_, cmd = m.Update(next)
	return cmd
}

func TestScreenModel_InvalidPageSize(t *testing.T) {
	_, err := NewScreenModel(CandidateScreen(), testCandidates(3), 0)
	require.ErrorIs(t, err, pager.ErrInvalidPageSize)
}

func TestScreenModel_Paging(t *testing.T) {
	m, err := NewScreenModel(CandidateScreen(), testCandidates(12), 5)
	require.NoError(t, err)
	assert.Equal(t, ViewStateList, m.State())

	send(m, key("right"))
	send(m, key("right"))
	state := m.List().State()
	assert.Equal(t, 3, state.CurrentPage)
	assert.Len(t, state.PaginatedData, 2)

	send(m, key("right"))
	assert.Equal(t, 3, m.List().State().CurrentPage)

	send(m, key("left"))
	assert.Equal(t, 2, m.List().State().CurrentPage)
	assert.Contains(t, m.View(), "2/3")
}

func TestScreenModel_SearchKeepsOrClampsPage(t *testing.T) {
	m, err := NewScreenModel(CandidateScreen(), testCandidates(30), 5)
	require.NoError(t, err)
	m.GoToPage(4)

	// "candidate 1" matches Candidate 10..19: two pages.
	m.SetQuery("candidate 1")
	assert.Equal(t, 2, m.List().State().CurrentPage, "clamped to the last page")
	assert.Equal(t, 10, m.List().State().TotalItems)

	m.SetQuery("")
	assert.Equal(t, 2, m.List().State().CurrentPage, "page kept when it still exists")

	m.SetQuery("nobody")
	state := m.List().State()
	assert.Equal(t, 1, state.CurrentPage)
	assert.Zero(t, state.TotalItems)
	assert.Contains(t, m.View(), "No items")
}

func TestScreenModel_FilterInput(t *testing.T) {
	m, err := NewScreenModel(CandidateScreen(), testCandidates(12), 5)
	require.NoError(t, err)

	send(m, key("/"))
	send(m, key("0"))
	send(m, key("5"))
	assert.Contains(t, m.View(), "Search:")
	send(m, key("enter"))

	state := m.List().State()
	require.Len(t, state.PaginatedData, 1)
	assert.Equal(t, "c05", state.PaginatedData[0].ID)

	send(m, key("esc"))
	assert.Equal(t, 12, m.List().State().TotalItems)
}

func TestScreenModel_Ordering(t *testing.T) {
	m, err := NewScreenModel(CandidateScreen(), testCandidates(4), 10)
	require.NoError(t, err)

	send(m, key("r"))
	assert.Equal(t, "c04", m.List().State().PaginatedData[0].ID)
	assert.Contains(t, m.View(), "recent first")

	send(m, key("r"))
	assert.Equal(t, "c01", m.List().State().PaginatedData[0].ID)

	m.SetSort("name", "desc")
	assert.Equal(t, "c04", m.List().State().PaginatedData[0].ID)
	assert.Contains(t, m.View(), "sort: name desc")

	m.SetSort("email", "asc")
	assert.Equal(t, "email", m.sortField(), "any sorter field, not only the cycled ones")

	m.SetSort("bogus", "asc")
	assert.Equal(t, "c01", m.List().State().PaginatedData[0].ID)
}

func TestScreenModel_CycleSort(t *testing.T) {
	m, err := NewScreenModel(CandidateScreen(), testCandidates(3), 10)
	require.NoError(t, err)
	fields := CandidateScreen().SortFields

	for _, f := range fields {
		send(m, key("s"))
		assert.Equal(t, f, m.sortField())
		assert.Equal(t, "asc", m.sortOrder)
	}
	send(m, key("s"))
	assert.Equal(t, fields[0], m.sortField())
	assert.Equal(t, "desc", m.sortOrder)

	for range fields {
		send(m, key("s"))
	}
	assert.Empty(t, m.sortField())
	assert.Equal(t, "asc", m.sortOrder)
}

func TestScreenModel_Detail(t *testing.T) {
	m, err := NewScreenModel(CandidateScreen(), testCandidates(3), 10)
	require.NoError(t, err)

	send(m, key("down"))
	send(m, key("enter"))
	assert.Equal(t, ViewStateDetail, m.State())
	assert.Contains(t, m.View(), "c02@example.com")

	send(m, key("esc"))
	assert.Equal(t, ViewStateList, m.State())

	empty, err := NewScreenModel(CandidateScreen(), nil, 10)
	require.NoError(t, err)
	send(empty, key("enter"))
	assert.Equal(t, ViewStateList, empty.State())
}

func TestScreenModel_Quit(t *testing.T) {
	m, err := NewScreenModel(CandidateScreen(), testCandidates(1), 10)
	require.NoError(t, err)

	cmd := send(m, key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, ViewStateQuitting, m.State())
	assert.Empty(t, m.View())
}

func TestScreenModel_Loading(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		m, err := NewScreenModelWithLoading(context.Background(), CandidateScreen(), 5,
			func(context.Context) ([]engine.Candidate, error) { return testCandidates(7), nil })
		require.NoError(t, err)
		assert.Equal(t, ViewStateLoading, m.State())
		assert.Contains(t, m.View(), "Loading candidates")
		require.NotNil(t, m.Init())
		m.GoToPage(2)

		_, _ = m.Update(m.fetchCmd())
		assert.Equal(t, ViewStateList, m.State())
		assert.Equal(t, 2, m.List().State().TotalPages)
		assert.Equal(t, 2, m.List().State().CurrentPage, "page requested while loading")
	})

	t.Run("error", func(t *testing.T) {
		m, err := NewScreenModelWithLoading(context.Background(), CandidateScreen(), 5,
			func(context.Context) ([]engine.Candidate, error) { return nil, errors.New("boom") })
		require.NoError(t, err)

		_, cmd := m.Update(m.fetchCmd())
		require.NotNil(t, cmd)
		assert.Equal(t, ViewStateError, m.State())
		require.EqualError(t, m.Err(), "boom")
		assert.Contains(t, m.View(), "boom")
	})
}

func TestScreenModel_WindowSize(t *testing.T) {
	m, err := NewScreenModel(TestScreen(), nil, 10)
	require.NoError(t, err)
	_, cmd := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Nil(t, cmd)
	assert.Equal(t, 120, m.width)
}
