package pager

// State is a point-in-time view of a paginated list.
type State[T any] struct {
	PaginatedData   []T  `json:"paginated_data"    yaml:"paginated_data"`
	CurrentPage     int  `json:"current_page"      yaml:"current_page"`
	TotalPages      int  `json:"total_pages"       yaml:"total_pages"`
	HasNextPage     bool `json:"has_next_page"     yaml:"has_next_page"`
	HasPreviousPage bool `json:"has_previous_page" yaml:"has_previous_page"`
	PageSize        int  `json:"page_size"         yaml:"page_size"`
	TotalItems      int  `json:"total_items"       yaml:"total_items"`
}

// Paginate computes the first page of items in one call.
// It returns ErrInvalidPageSize when pageSize <= 0.
func Paginate[T any](items []T, pageSize int) (State[T], error) {
	p, err := New(items, pageSize)
	if err != nil {
		return State[T]{}, err
	}
	return p.State(), nil
}

// TotalPages returns ceil(totalItems/pageSize), floored at 1.
// A non-positive pageSize yields 1.
func TotalPages(totalItems, pageSize int) int {
	if pageSize <= 0 || totalItems <= 0 {
		return FirstPage
	}
	return (totalItems + pageSize - 1) / pageSize
}

// ClampPage forces page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < FirstPage {
		totalPages = FirstPage
	}
	switch {
	case page < FirstPage:
		return FirstPage
	case page > totalPages:
		return totalPages
	default:
		return page
	}
}

// Bounds returns the half-open [start, end) index range of page within a list
// of totalItems. The page is clamped first; end is truncated to totalItems.
func Bounds(totalItems, page, pageSize int) (int, int) {
	if pageSize <= 0 || totalItems <= 0 {
		return 0, 0
	}
	page = ClampPage(page, TotalPages(totalItems, pageSize))
	start := (page - 1) * pageSize
	end := start + pageSize
	if end > totalItems {
		end = totalItems
	}
	return start, end
}

// Window returns the slice of items shown on page.
// The result has its capacity capped so appends never write into items.
func Window[T any](items []T, page, pageSize int) []T {
	start, end := Bounds(len(items), page, pageSize)
	return items[start:end:end]
}
