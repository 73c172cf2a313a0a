// Package listview provides the paginated list component shared by the
// candidate, test and question screens.
//
// A PageListModel owns a pager.Pager, renders the current page through a
// bubbles table and shows the page controls underneath. Key handling:
//   - up/down (k/j) move the cursor within the page
//   - left/right (h/l, pgup/pgdn) request the previous/next page
//   - home/end jump to the first/last page
//
// Replacing the items (after a search or sort) keeps the current page
// where possible and clamps it otherwise.
package listview
