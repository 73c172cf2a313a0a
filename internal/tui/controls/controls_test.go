package controls

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mannit-co/albayan/internal/pager"
)

func TestRenderControls_Hidden(t *testing.T) {
	tests := []struct {
		name  string
		state State
	}{
		{name: "empty list", state: StateOf(pager.MustNew([]int{}, 10).State())},
		{name: "nil list", state: StateOf(pager.MustNew[int](nil, 10).State())},
		{name: "one full page", state: StateOf(pager.MustNew(make([]int, 10), 10).State())},
		{name: "one partial page", state: StateOf(pager.MustNew(make([]int, 3), 5).State())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 1, tt.state.TotalPages)
			assert.False(t, tt.state.HasPrevious)
			assert.False(t, tt.state.HasNext)
			assert.False(t, tt.state.Visible())
			assert.Empty(t, RenderControls(tt.state, 80))
		})
	}
}

func TestRenderControls_Indicator(t *testing.T) {
	out := RenderControls(State{CurrentPage: 2, TotalPages: 5, HasPrevious: true, HasNext: true}, 80)
	assert.Contains(t, out, PrevLabel)
	assert.Contains(t, out, "2/5")
	assert.Contains(t, out, NextLabel)
	assert.Less(t, strings.Index(out, PrevLabel), strings.Index(out, "2/5"))
	assert.Less(t, strings.Index(out, "2/5"), strings.Index(out, NextLabel))
}

func TestButtons(t *testing.T) {
	tests := []struct {
		name               string
		state              State
		wantPrev, wantNext bool
	}{
		{name: "first page", state: State{CurrentPage: 1, TotalPages: 3, HasNext: true}, wantNext: true},
		{name: "middle page", state: State{CurrentPage: 2, TotalPages: 3, HasPrevious: true, HasNext: true}, wantPrev: true, wantNext: true},
		{name: "last page", state: State{CurrentPage: 3, TotalPages: 3, HasPrevious: true}, wantPrev: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev, next := Buttons(tt.state)
			assert.Equal(t, tt.wantPrev, prev.Enabled)
			assert.Equal(t, tt.wantNext, next.Enabled)
			assert.Equal(t, PrevLabel, prev.Label)
			assert.Equal(t, NextLabel, next.Label)
		})
	}
}

func TestRenderer_DotsFallback(t *testing.T) {
	r := NewRenderer()
	r.Indicator = IndicatorDots
	state := State{CurrentPage: 1, TotalPages: 4, HasNext: true}

	wide := r.Render(state, 80)
	assert.NotContains(t, wide, "1/4")
	assert.Contains(t, wide, "•")

	many := State{CurrentPage: 1, TotalPages: 200, HasNext: true}
	narrow := r.Render(many, 40)
	assert.Contains(t, narrow, "1/200")
	assert.LessOrEqual(t, ansi.PrintableRuneWidth(narrow), 40)
}

func TestStateOf(t *testing.T) {
	p := pager.MustNew([]int{1, 2, 3, 4, 5}, 2)
	p.Next()

	s := StateOf(p.State())
	assert.Equal(t, State{CurrentPage: 2, TotalPages: 3, HasPrevious: true, HasNext: true}, s)
	assert.Equal(t, "Page 2 of 3", Label(s))
}

func TestModel_Update(t *testing.T) {
	tests := []struct {
		name  string
		state State
		key   tea.KeyMsg
		want  tea.Msg
	}{
		{
			name:  "next enabled",
			state: State{CurrentPage: 1, TotalPages: 2, HasNext: true},
			key:   tea.KeyMsg{Type: tea.KeyRight},
			want:  RequestNextMsg{},
		},
		{
			name:  "prev enabled",
			state: State{CurrentPage: 2, TotalPages: 2, HasPrevious: true},
			key:   tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}},
			want:  RequestPreviousMsg{},
		},
		{
			name:  "next disabled on last page",
			state: State{CurrentPage: 2, TotalPages: 2, HasPrevious: true},
			key:   tea.KeyMsg{Type: tea.KeyPgDown},
		},
		{
			name:  "prev disabled on first page",
			state: State{CurrentPage: 1, TotalPages: 2, HasNext: true},
			key:   tea.KeyMsg{Type: tea.KeyLeft},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			m.SetState(tt.state)

			_, cmd := m.Update(tt.key)
			if tt.want == nil {
				assert.Nil(t, cmd)
				return
			}
			require.NotNil(t, cmd)
			assert.Equal(t, tt.want, cmd())
		})
	}
}

func TestModel_View(t *testing.T) {
	m := New()
	assert.Empty(t, m.View())

	m.SetWidth(80)
	m.SetState(State{CurrentPage: 1, TotalPages: 3, HasNext: true})
	assert.Contains(t, m.View(), "1/3")
	assert.Len(t, m.Keys.ShortHelp(), 2)
}
