// Package pager turns an ordered in-memory slice into a bounded page window.
//
// A Pager keeps a single piece of mutable state, the 1-indexed current page.
// Everything a list screen renders is derived from it on demand:
//   - PaginatedData: the contiguous window items[(page-1)*size : page*size]
//   - TotalPages: max(1, ceil(len(items)/size))
//   - HasPreviousPage / HasNextPage: boundary flags for navigation controls
//
// Navigation never fails. GoToPage clamps any integer into [1, TotalPages],
// and replacing the items or the page size reclamps the current page in the
// same call, so a caller can never observe an empty window on a page that no
// longer exists. The only error is a page size <= 0, which is a caller bug.
//
// Each list view owns its own Pager. A Pager is not safe for concurrent use.
package pager
