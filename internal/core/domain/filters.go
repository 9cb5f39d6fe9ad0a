package domain

import (
	"fmt"
	"time"
)

// Filters constrain a search beyond its free-text query. The zero value
// applies no constraints. Size bounds are bytes; date bounds compare
// against an object's last-modified time.
type Filters struct {
	// Extensions is an allow-list of file extensions, without dots.
	Extensions []string `json:"extensions,omitempty"`

	// SizeMin is the inclusive lower size bound in bytes.
	SizeMin *int64 `json:"size_min,omitempty"`

	// SizeMax is the inclusive upper size bound in bytes.
	SizeMax *int64 `json:"size_max,omitempty"`

	// CreatedAfter is the inclusive lower date bound.
	CreatedAfter *time.Time `json:"created_after,omitempty"`

	// CreatedBefore is the inclusive upper date bound.
	CreatedBefore *time.Time `json:"created_before,omitempty"`

	// Buckets restricts results to the named buckets. Empty means every
	// bucket visible to the session.
	Buckets []string `json:"buckets,omitempty"`
}

// IsZero reports whether no constraint is set.
func (f Filters) IsZero() bool {
	return len(f.Extensions) == 0 && f.SizeMin == nil && f.SizeMax == nil &&
		f.CreatedAfter == nil && f.CreatedBefore == nil && len(f.Buckets) == 0
}

// Merge overlays explicit caller filters on top of f. A field set in
// override replaces the corresponding field in f; unset fields keep
// whatever f extracted.
func (f Filters) Merge(override Filters) Filters {
	out := f
	if len(override.Extensions) > 0 {
		out.Extensions = override.Extensions
	}
	if override.SizeMin != nil {
		out.SizeMin = override.SizeMin
	}
	if override.SizeMax != nil {
		out.SizeMax = override.SizeMax
	}
	if override.CreatedAfter != nil {
		out.CreatedAfter = override.CreatedAfter
	}
	if override.CreatedBefore != nil {
		out.CreatedBefore = override.CreatedBefore
	}
	if len(override.Buckets) > 0 {
		out.Buckets = override.Buckets
	}
	return out
}

// ParseFilters converts a loosely typed filter map (as arriving over the
// wire) into Filters. Unknown keys are ignored. The bucket filter accepts
// two spellings: "bucket" holding a string or a one-element list, and
// "buckets" holding a list; both normalise to Buckets. When both are
// present the plural wins.
func ParseFilters(raw map[string]any) (Filters, error) {
	var f Filters
	if len(raw) == 0 {
		return f, nil
	}

	if v, ok := raw["extension"]; ok {
		s, err := toString(v, "extension")
		if err != nil {
			return Filters{}, err
		}
		f.Extensions = append(f.Extensions, s)
	}
	if v, ok := raw["extensions"]; ok {
		list, err := toStringList(v, "extensions")
		if err != nil {
			return Filters{}, err
		}
		f.Extensions = append(f.Extensions, list...)
	}

	for _, key := range []string{"size_min", "size_max"} {
		v, ok := raw[key]
		if !ok {
			continue
		}
		n, err := toInt64(v, key)
		if err != nil {
			return Filters{}, err
		}
		if key == "size_min" {
			f.SizeMin = &n
		} else {
			f.SizeMax = &n
		}
	}

	for _, key := range []string{"created_after", "created_before"} {
		v, ok := raw[key]
		if !ok {
			continue
		}
		ts, err := toTime(v, key)
		if err != nil {
			return Filters{}, err
		}
		if key == "created_after" {
			f.CreatedAfter = &ts
		} else {
			f.CreatedBefore = &ts
		}
	}

	if v, ok := raw["bucket"]; ok {
		list, err := toStringList(v, "bucket")
		if err != nil {
			return Filters{}, err
		}
		if len(list) > 1 {
			return Filters{}, fmt.Errorf("%w: singular bucket filter holds %d values", ErrInvalidFilter, len(list))
		}
		f.Buckets = list
	}
	if v, ok := raw["buckets"]; ok {
		list, err := toStringList(v, "buckets")
		if err != nil {
			return Filters{}, err
		}
		f.Buckets = list
	}

	return f, nil
}

func toString(v any, key string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string", ErrInvalidFilter, key)
	}
	return s, nil
}

func toStringList(v any, key string) ([]string, error) {
	switch val := v.(type) {
	case string:
		return []string{val}, nil
	case []string:
		return val, nil
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s holds a non-string element", ErrInvalidFilter, key)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %s must be a string or list of strings", ErrInvalidFilter, key)
}

func toInt64(v any, key string) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		return int64(n), nil
	}
	return 0, fmt.Errorf("%w: %s must be a number", ErrInvalidFilter, key)
}

func toTime(v any, key string) (time.Time, error) {
	switch ts := v.(type) {
	case time.Time:
		return ts, nil
	case string:
		if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
			return parsed, nil
		}
		if parsed, err := time.Parse("2006-01-02", ts); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %s must be an ISO-8601 date", ErrInvalidFilter, key)
}
