package pager

import (
	"errors"
	"fmt"
)

// FirstPage is the lowest page number a Pager ever reports.
const FirstPage = 1

// ErrInvalidPageSize is returned when a page size is zero or negative.
var ErrInvalidPageSize = errors.New("page size must be greater than zero")

// Pager holds the navigation state for one paginated list.
//
// The zero value is not usable; construct with New or MustNew.
type Pager[T any] struct {
	items       []T
	pageSize    int
	currentPage int
}

// New creates a Pager over items positioned on the first page.
// The slice is never modified by the Pager.
// It returns ErrInvalidPageSize when pageSize <= 0.
func New[T any](items []T, pageSize int) (*Pager[T], error) {
	if err := validatePageSize(pageSize); err != nil {
		return nil, err
	}
	return &Pager[T]{
		items:       items,
		pageSize:    pageSize,
		currentPage: FirstPage,
	}, nil
}

// MustNew is like New but panics on an invalid page size.
// Intended for screens whose page size is a compile-time constant.
func MustNew[T any](items []T, pageSize int) *Pager[T] {
	p, err := New(items, pageSize)
	if err != nil {
		panic(err)
	}
	return p
}

func validatePageSize(pageSize int) error {
	if pageSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, pageSize)
	}
	return nil
}

// GoToPage moves to page, clamped into [1, TotalPages].
func (p *Pager[T]) GoToPage(page int) {
	p.currentPage = ClampPage(page, p.TotalPages())
}

// Next moves one page forward. A no-op on the last page.
func (p *Pager[T]) Next() {
	p.GoToPage(p.currentPage + 1)
}

// Previous moves one page back. A no-op on the first page.
func (p *Pager[T]) Previous() {
	p.GoToPage(p.currentPage - 1)
}

// Last moves to the final page.
func (p *Pager[T]) Last() {
	p.GoToPage(p.TotalPages())
}

// Reset returns to the first page. Only an explicit caller request does this;
// SetItems and SetPageSize keep the current page whenever it still exists.
func (p *Pager[T]) Reset() {
	p.currentPage = FirstPage
}

// SetItems replaces the source list and reclamps the current page
// before the next read.
func (p *Pager[T]) SetItems(items []T) {
	p.items = items
	p.reclamp()
}

// SetPageSize changes the page size and reclamps the current page.
// On ErrInvalidPageSize the Pager is left unchanged.
func (p *Pager[T]) SetPageSize(pageSize int) error {
	if err := validatePageSize(pageSize); err != nil {
		return err
	}
	p.pageSize = pageSize
	p.reclamp()
	return nil
}

// reclamp pulls the current page down when the list shrank beneath it.
func (p *Pager[T]) reclamp() {
	if total := p.TotalPages(); p.currentPage > total {
		p.currentPage = total
	}
}

// Items returns the full source list as given to New or SetItems.
func (p *Pager[T]) Items() []T {
	return p.items
}

// PaginatedData returns the items on the current page.
func (p *Pager[T]) PaginatedData() []T {
	return Window(p.items, p.currentPage, p.pageSize)
}

// CurrentPage returns the 1-indexed current page.
func (p *Pager[T]) CurrentPage() int {
	return p.currentPage
}

// TotalPages returns the page count, never less than 1.
func (p *Pager[T]) TotalPages() int {
	return TotalPages(len(p.items), p.pageSize)
}

// HasNextPage reports whether a page exists after the current one.
func (p *Pager[T]) HasNextPage() bool {
	return p.currentPage < p.TotalPages()
}

// HasPreviousPage reports whether a page exists before the current one.
func (p *Pager[T]) HasPreviousPage() bool {
	return p.currentPage > FirstPage
}

// PageSize returns the configured page size.
func (p *Pager[T]) PageSize() int {
	return p.pageSize
}

// TotalItems returns the length of the source list.
func (p *Pager[T]) TotalItems() int {
	return len(p.items)
}

// Range returns the 1-indexed positions of the first and last item on the
// current page, e.g. (11, 20). Both are 0 for an empty list.
func (p *Pager[T]) Range() (int, int) {
	start, end := Bounds(len(p.items), p.currentPage, p.pageSize)
	if start == end {
		return 0, 0
	}
	return start + 1, end
}

// State returns an immutable snapshot of the current page.
func (p *Pager[T]) State() State[T] {
	return State[T]{
		PaginatedData:   p.PaginatedData(),
		CurrentPage:     p.currentPage,
		TotalPages:      p.TotalPages(),
		HasNextPage:     p.HasNextPage(),
		HasPreviousPage: p.HasPreviousPage(),
		PageSize:        p.pageSize,
		TotalItems:      len(p.items),
	}
}
