package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// flexString accepts a JSON string or number. Mongo-style {"$oid": "..."}
// objects are unwrapped.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*f = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
	case data[0] == '{':
		var oid struct {
			OID string `json:"$oid"`
		}
		if err := json.Unmarshal(data, &oid); err != nil {
			return err
		}
		*f = flexString(oid.OID)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", data)
		}
		*f = flexString(n.String())
	}
	return nil
}

// flexFloat accepts a JSON number or numeric string. Set is false for null,
// absent or empty values.
type flexFloat struct {
	Value float64
	Set   bool
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}
	trimmed := strings.TrimSuffix(strings.TrimSpace(string(s)), "%")
	if trimmed == "" {
		*f = flexFloat{}
		return nil
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", string(s))
	}
	*f = flexFloat{Value: v, Set: true}
	return nil
}

// Ptr returns the value as a pointer, or nil when unset.
func (f flexFloat) Ptr() *float64 {
	if !f.Set {
		return nil
	}
	v := f.Value
	return &v
}

// flexInt is a flexFloat truncated to int.
type flexInt struct {
	flexFloat
}

func (f flexInt) Int() int {
	return int(f.Value)
}

//nolint:gochecknoglobals // accepted timestamp layouts, most specific first
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// unixMillisThreshold separates unix seconds from unix milliseconds.
const unixMillisThreshold = 1e11

// flexTime accepts RFC3339 variants, bare dates, and unix seconds or
// milliseconds. Zero for null or empty values.
type flexTime struct {
	time.Time
}

func (f *flexTime) UnmarshalJSON(data []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}
	t, err := parseTime(string(s))
	if err != nil {
		return err
	}
	f.Time = t
	return nil
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n > unixMillisThreshold {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// flexStrings accepts an array of strings or a comma-separated string.
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var parts []string
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
	case data[0] == '[':
		var list []flexString
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		for _, s := range list {
			parts = append(parts, string(s))
		}
	default:
		var s flexString
		if err := s.UnmarshalJSON(data); err != nil {
			return err
		}
		parts = strings.Split(string(s), ",")
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	*f = out
	return nil
}

// firstNonEmpty returns the first non-blank value.
func firstNonEmpty[S ~string](values ...S) string {
	for _, v := range values {
		if s := strings.TrimSpace(string(v)); s != "" {
			return s
		}
	}
	return ""
}

// firstTime returns the first non-zero time.
func firstTime(values ...flexTime) time.Time {
	for _, v := range values {
		if !v.IsZero() {
			return v.Time
		}
	}
	return time.Time{}
}

// firstSet returns the first set number.
func firstSet(values ...flexFloat) flexFloat {
	for _, v := range values {
		if v.Set {
			return v
		}
	}
	return flexFloat{}
}

// normalizeToken lowercases s and folds separators to underscores.
func normalizeToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", " ", "_", "/", "_").Replace(s)
}
