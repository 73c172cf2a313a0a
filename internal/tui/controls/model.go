package controls

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// RequestPreviousMsg asks the pager owner to go back one page.
type RequestPreviousMsg struct{}

// RequestNextMsg asks the pager owner to go forward one page.
type RequestNextMsg struct{}

// KeyMap holds the page navigation bindings.
type KeyMap struct {
	Previous key.Binding
	Next     key.Binding
}

// DefaultKeyMap binds left/h/pgup and right/l/pgdown.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Previous: key.NewBinding(
			key.WithKeys("left", "h", "pgup"),
			key.WithHelp("←/h", "prev page"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l", "pgdown"),
			key.WithHelp("→/l", "next page"),
		),
	}
}

// Model is the interactive bar. Disabled buttons have disabled bindings, so
// their keys produce no request.
type Model struct {
	Keys     KeyMap
	Renderer Renderer

	state State
	width int
}

// New creates a Model with default keys and renderer.
func New() Model {
	m := Model{Keys: DefaultKeyMap(), Renderer: NewRenderer()}
	m.SetState(State{CurrentPage: 1, TotalPages: 1})
	return m
}

// SetState replaces the displayed state and enables the bindings to match.
func (m *Model) SetState(s State) {
	m.state = s
	m.Keys.Previous.SetEnabled(s.HasPrevious)
	m.Keys.Next.SetEnabled(s.HasNext)
}

// State returns the displayed state.
func (m Model) State() State {
	return m.state
}

// SetWidth sets the available width.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update turns page keys into requests.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.Keys.Previous):
		return m, func() tea.Msg { return RequestPreviousMsg{} }
	case key.Matches(keyMsg, m.Keys.Next):
		return m, func() tea.Msg { return RequestNextMsg{} }
	}
	return m, nil
}

// View renders the bar.
func (m Model) View() string {
	return m.Renderer.Render(m.state, m.width)
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Previous, k.Next}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
