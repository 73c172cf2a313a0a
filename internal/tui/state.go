package tui

// ViewState is the screen a model is showing.
type ViewState int

const (
	// ViewStateLoading shows a spinner while data is fetched.
	ViewStateLoading ViewState = iota
	// ViewStateList shows the paginated list.
	ViewStateList
	// ViewStateDetail shows the selected item.
	ViewStateDetail
	// ViewStateQuitting is set just before tea.Quit.
	ViewStateQuitting
	// ViewStateError shows a fetch error.
	ViewStateError
)

// String returns a short name for logs.
func (s ViewState) String() string {
	switch s {
	case ViewStateLoading:
		return "loading"
	case ViewStateList:
		return "list"
	case ViewStateDetail:
		return "detail"
	case ViewStateQuitting:
		return "quitting"
	case ViewStateError:
		return "error"
	default:
		return "unknown"
	}
}

// Key strings.
const (
	keyQuit  = "q"
	keyCtrlC = "ctrl+c"
	keyEnter = "enter"
	keyEsc   = "esc"
	keySlash = "/"
	keyS     = "s"
	keyR     = "r"
)

// Layout.
const (
	defaultWidth  = 100
	defaultHeight = 30
	minHeight     = 5

	filterInputWidth     = 40
	filterInputCharLimit = 100
)

const errSelectedOutOfBounds = "No item selected.\n"
