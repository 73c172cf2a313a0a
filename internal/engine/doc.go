// Package engine holds the assessment entities shown by list screens and the
// caller-side list pipeline that runs before pagination: free-text search,
// "key=value" filters, and recency ordering.
//
// Nothing here knows about pages. Screens run the pipeline, then hand the
// resulting slice to a pager.Pager.
package engine
