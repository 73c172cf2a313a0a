// Package controls renders the Previous / page indicator / Next bar shown
// under every paginated list, and turns key presses into page requests.
//
// The bar is a pure function of a State. It renders nothing for lists that
// fit on one page. A button whose flag is false is drawn disabled, and its
// keys do nothing. Requests leave the package as RequestPreviousMsg and
// RequestNextMsg; the owner of the pager performs the move.
package controls
