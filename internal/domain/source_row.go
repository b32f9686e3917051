package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SourceRow is a raw row from a source table. Columns differ per source, so
// rows travel as maps; the accessors below absorb the type looseness of
// values that crossed a JSON or database boundary.
type SourceRow map[string]any

// ID returns the row's primary identifier rendered as a string, checking the
// given column names in order.
func (r SourceRow) ID(columns ...string) string {
	for _, col := range columns {
		if v, ok := r[col]; ok && v != nil {
			switch x := v.(type) {
			case string:
				if s := strings.TrimSpace(x); s != "" {
					return s
				}
			case float64:
				// JSON numbers arrive as float64; ids are integral.
				return strconv.FormatInt(int64(x), 10)
			case int64:
				return strconv.FormatInt(x, 10)
			case int:
				return strconv.Itoa(x)
			default:
				return fmt.Sprintf("%v", x)
			}
		}
	}
	return ""
}

// String returns the trimmed string value of a column, or "".
func (r SourceRow) String(column string) string {
	v, ok := r[column]
	if !ok || v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case []byte:
		return strings.TrimSpace(string(x))
	case float64:
		if x == float64(int64(x)) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

// Float returns the numeric value of a column, tolerating string encodings.
func (r SourceRow) Float(column string) (float64, bool) {
	v, ok := r[column]
	if !ok || v == nil {
		return 0, false
	}
	switch x := v.(type) {
	case float64:
		return x, true
	case int64:
		return float64(x), true
	case int:
		return float64(x), true
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(x), ",", "")
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, true
		}
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return f, true
		}
	}
	return 0, false
}

// Time returns the column as a time, handling native timestamps and the
// common string layouts.
func (r SourceRow) Time(column string) (*time.Time, bool) {
	v, ok := r[column]
	if !ok || v == nil {
		return nil, false
	}
	switch x := v.(type) {
	case time.Time:
		return &x, true
	case *time.Time:
		return x, x != nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil, false
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, s); err == nil {
				return &t, true
			}
		}
	}
	return nil, false
}

// Value returns the raw value of a column.
func (r SourceRow) Value(column string) (any, bool) {
	v, ok := r[column]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Has reports whether a column is present with a non-empty value.
func (r SourceRow) Has(column string) bool {
	v, ok := r[column]
	if !ok || v == nil {
		return false
	}
	if s, isStr := v.(string); isStr {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// JSON renders the whole row for the original_data audit copy.
func (r SourceRow) JSON() json.RawMessage {
	data, err := json.Marshal(r)
	if err != nil {
		// Rows come from database scans; unmarshalable values are replaced
		// rather than dropped.
		safe := make(map[string]any, len(r))
		for k, v := range r {
			if _, jerr := json.Marshal(v); jerr == nil {
				safe[k] = v
			} else {
				safe[k] = fmt.Sprintf("%v", v)
			}
		}
		data, _ = json.Marshal(safe)
	}
	return data
}
