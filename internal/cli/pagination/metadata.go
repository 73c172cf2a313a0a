package pagination

import (
	"github.com/mannit-co/albayan/internal/pager"
)

// PaginationMeta contains metadata about paginated results.
//
//nolint:revive // PaginationMeta is the canonical name for this exported type.
type PaginationMeta struct {
	CurrentPage   int  `json:"current_page"             yaml:"current_page"`
	RequestedPage int  `json:"requested_page,omitempty" yaml:"requested_page,omitempty"`
	PageSize      int  `json:"page_size"                yaml:"page_size"`
	TotalPages    int  `json:"total_pages"              yaml:"total_pages"`
	TotalItems    int  `json:"total_items"              yaml:"total_items"`
	HasPrevious   bool `json:"has_previous"             yaml:"has_previous"`
	HasNext       bool `json:"has_next"                 yaml:"has_next"`
	RangeStart    int  `json:"range_start"              yaml:"range_start"`
	RangeEnd      int  `json:"range_end"                yaml:"range_end"`
}

// NewPaginationMeta derives metadata from a pager state. requested is the page
// the user asked for; it is recorded only when the pager clamped it.
func NewPaginationMeta[T any](state pager.State[T], requested int) PaginationMeta {
	meta := PaginationMeta{
		CurrentPage: state.CurrentPage,
		PageSize:    state.PageSize,
		TotalPages:  state.TotalPages,
		TotalItems:  state.TotalItems,
		HasPrevious: state.HasPreviousPage,
		HasNext:     state.HasNextPage,
	}
	if requested != 0 && requested != state.CurrentPage {
		meta.RequestedPage = requested
	}
	if n := len(state.PaginatedData); n > 0 {
		meta.RangeStart, _ = pager.Bounds(state.TotalItems, state.CurrentPage, state.PageSize)
		meta.RangeStart++
		meta.RangeEnd = meta.RangeStart + n - 1
	}
	return meta
}

// Clamped reports whether the requested page was out of range.
func (m PaginationMeta) Clamped() bool {
	return m.RequestedPage != 0
}
