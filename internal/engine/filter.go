package engine

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Filter errors.
var (
	ErrInvalidFilter    = errors.New("invalid filter: use 'key=value' or 'key=value1,value2'")
	ErrUnknownFilterKey = errors.New("unknown filter key")
)

// Filter is a parsed "key=value1,value2" expression. An item matches when any
// of its values for Key equals any of Values (case-insensitive).
type Filter struct {
	Key    string
	Values []string
}

// ParseFilter parses a single filter expression.
func ParseFilter(expr string) (Filter, error) {
	key, raw, found := strings.Cut(expr, "=")
	key = strings.ToLower(strings.TrimSpace(key))
	if !found || key == "" {
		return Filter{}, fmt.Errorf("%w: %q", ErrInvalidFilter, expr)
	}

	var values []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, strings.ToLower(v))
		}
	}
	if len(values) == 0 {
		return Filter{}, fmt.Errorf("%w: %q has no value", ErrInvalidFilter, expr)
	}

	return Filter{Key: key, Values: values}, nil
}

// ValidateFilter checks that expr parses and that its key is known to T.
func ValidateFilter[T Filterable](expr string) error {
	f, err := ParseFilter(expr)
	if err != nil {
		return err
	}
	var zero T
	if !slices.Contains(zero.FilterKeys(), f.Key) {
		return fmt.Errorf("%w: %q (valid keys: %s)",
			ErrUnknownFilterKey, f.Key, strings.Join(zero.FilterKeys(), ", "))
	}
	return nil
}

// Matches reports whether item satisfies the filter.
func (f Filter) Matches(item Filterable) bool {
	values, ok := item.FilterValues(f.Key)
	if !ok {
		return false
	}
	for _, v := range values {
		if slices.Contains(f.Values, strings.ToLower(v)) {
			return true
		}
	}
	return false
}

// ApplyFilters validates every expression, then keeps the items matching all
// of them. Empty expressions are ignored. The input slice is not modified.
func ApplyFilters[T Filterable](items []T, exprs []string) ([]T, error) {
	filters := make([]Filter, 0, len(exprs))
	for _, expr := range exprs {
		if strings.TrimSpace(expr) == "" {
			continue
		}
		if err := ValidateFilter[T](expr); err != nil {
			return nil, err
		}
		f, _ := ParseFilter(expr)
		filters = append(filters, f)
	}

	if len(filters) == 0 {
		return items, nil
	}

	result := make([]T, 0, len(items))
	for _, item := range items {
		if matchesAll(item, filters) {
			result = append(result, item)
		}
	}
	return result, nil
}

func matchesAll(item Filterable, filters []Filter) bool {
	for _, f := range filters {
		if !f.Matches(item) {
			return false
		}
	}
	return true
}

// Search keeps items whose SearchText contains query, ignoring case.
// An empty query returns items unchanged.
func Search[T Searchable](items []T, query string) []T {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}

	result := make([]T, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.SearchText()), query) {
			result = append(result, item)
		}
	}
	return result
}
