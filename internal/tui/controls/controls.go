package controls

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/ansi"

	"github.com/mannit-co/albayan/internal/pager"
)

// Button labels.
const (
	PrevLabel = "‹ Prev"
	NextLabel = "Next ›"

	separator = "  "
)

// State is what the controls need from a pager.
type State struct {
	CurrentPage int
	TotalPages  int
	HasPrevious bool
	HasNext     bool
}

// StateOf extracts the controls state from a pager state.
func StateOf[T any](s pager.State[T]) State {
	return State{
		CurrentPage: s.CurrentPage,
		TotalPages:  s.TotalPages,
		HasPrevious: s.HasPreviousPage,
		HasNext:     s.HasNextPage,
	}
}

// Visible reports whether the bar renders anything.
func (s State) Visible() bool {
	return s.TotalPages > 1
}

// Indicator selects how the current page is shown.
type Indicator int

const (
	// IndicatorArabic shows "current/total".
	IndicatorArabic Indicator = iota
	// IndicatorDots shows one dot per page, falling back to Arabic when the
	// bar would not fit.
	IndicatorDots
)

// Button is one end of the bar.
type Button struct {
	Label   string
	Enabled bool
}

// Buttons returns the Previous and Next buttons for s.
func Buttons(s State) (Button, Button) {
	return Button{Label: PrevLabel, Enabled: s.HasPrevious},
		Button{Label: NextLabel, Enabled: s.HasNext}
}

// Styles holds the lipgloss styles used by the bar.
type Styles struct {
	Bar         lipgloss.Style
	Button      lipgloss.Style
	Disabled    lipgloss.Style
	Indicator   lipgloss.Style
	ActiveDot   string
	InactiveDot string
}

// DefaultStyles returns the standard palette.
func DefaultStyles() Styles {
	return Styles{
		Bar:         lipgloss.NewStyle().PaddingLeft(1),
		Button:      lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		Disabled:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Faint(true),
		Indicator:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ActiveDot:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Render("•"),
		InactiveDot: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render("◦"),
	}
}

// Renderer draws the bar.
type Renderer struct {
	Styles    Styles
	Indicator Indicator
}

// NewRenderer returns a Renderer with DefaultStyles and the Arabic indicator.
func NewRenderer() Renderer {
	return Renderer{Styles: DefaultStyles(), Indicator: IndicatorArabic}
}

// RenderControls draws the bar for s with the default renderer.
func RenderControls(s State, width int) string {
	return NewRenderer().Render(s, width)
}

// Render draws the bar for s within width columns. It returns "" when the
// list fits on one page.
func (r Renderer) Render(s State, width int) string {
	if !s.Visible() {
		return ""
	}

	prev, next := Buttons(s)
	left := r.button(prev)
	right := r.button(next)

	indicator := r.indicator(s, paginator.Arabic)
	if r.Indicator == IndicatorDots {
		dots := r.indicator(s, paginator.Dots)
		bar := strings.Join([]string{left, dots, right}, separator)
		if width <= 0 || ansi.PrintableRuneWidth(bar) <= width {
			indicator = dots
		}
	}

	return r.Styles.Bar.Render(strings.Join([]string{left, indicator, right}, separator))
}

func (r Renderer) button(b Button) string {
	if b.Enabled {
		return r.Styles.Button.Render(b.Label)
	}
	return r.Styles.Disabled.Render(b.Label)
}

// indicator renders the page position with a bubbles paginator. The
// paginator counts pages from 0.
func (r Renderer) indicator(s State, kind paginator.Type) string {
	p := paginator.New()
	p.Type = kind
	p.ArabicFormat = "%d/%d"
	p.ActiveDot = r.Styles.ActiveDot
	p.InactiveDot = r.Styles.InactiveDot
	p.TotalPages = s.TotalPages
	p.Page = s.CurrentPage - 1

	if kind == paginator.Arabic {
		return r.Styles.Indicator.Render(p.View())
	}
	return p.View()
}

// Label is the plain-text position, e.g. "Page 2 of 5".
func Label(s State) string {
	return fmt.Sprintf("Page %d of %d", s.CurrentPage, s.TotalPages)
}
