// Package pagination provides utilities for CLI pagination, sorting, and result formatting.
//
// This package contains shared pagination logic used across list commands, including:
//   - PaginationParams: --page/--page-size/--sort flag parsing and validation
//   - PaginationMeta: response metadata derived from a pager.State
//   - Sorter: generic field-based sorting with field validation
//
// Page numbers are never rejected for being past the end. They are clamped
// by the pager, and PaginationMeta records the page the user asked for when it
// differs from the page served.
package pagination
