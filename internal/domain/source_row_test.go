package domain_test

import (
	"testing"
	"time"

	"github.com/tenderhub/normalizer/internal/domain"
)

func TestSourceRowID(t *testing.T) {
	tests := []struct {
		name    string
		row     domain.SourceRow
		columns []string
		want    string
	}{
		{"string id", domain.SourceRow{"id": "abc-1"}, []string{"id"}, "abc-1"},
		{"json number", domain.SourceRow{"id": float64(12345)}, []string{"id"}, "12345"},
		{"int64 from driver", domain.SourceRow{"id": int64(7)}, []string{"id"}, "7"},
		{"first column wins", domain.SourceRow{"id": "x", "project_number": "y"}, []string{"project_number", "id"}, "y"},
		{"falls through empty", domain.SourceRow{"project_number": "  ", "id": "z"}, []string{"project_number", "id"}, "z"},
		{"missing", domain.SourceRow{}, []string{"id"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.row.ID(tt.columns...); got != tt.want {
				t.Errorf("ID(%v) = %q, want %q", tt.columns, got, tt.want)
			}
		})
	}
}

func TestSourceRowString(t *testing.T) {
	row := domain.SourceRow{
		"title":   "  Road works  ",
		"raw":     []byte("bytes"),
		"whole":   float64(3),
		"decimal": float64(2.5),
		"flag":    true,
		"nested":  map[string]any{"a": 1},
		"null":    nil,
	}

	tests := []struct {
		column string
		want   string
	}{
		{"title", "Road works"},
		{"raw", "bytes"},
		{"whole", "3"},
		{"decimal", "2.5"},
		{"flag", "true"},
		{"nested", ""},
		{"null", ""},
		{"absent", ""},
	}

	for _, tt := range tests {
		if got := row.String(tt.column); got != tt.want {
			t.Errorf("String(%q) = %q, want %q", tt.column, got, tt.want)
		}
	}
}

func TestSourceRowFloat(t *testing.T) {
	row := domain.SourceRow{
		"plain":     float64(1500),
		"quoted":    "2,500,000.50",
		"integer":   int64(10),
		"malformed": "about a million",
	}

	if v, ok := row.Float("plain"); !ok || v != 1500 {
		t.Errorf("Float(plain) = %v, %v", v, ok)
	}
	if v, ok := row.Float("quoted"); !ok || v != 2500000.50 {
		t.Errorf("Float(quoted) = %v, %v", v, ok)
	}
	if v, ok := row.Float("integer"); !ok || v != 10 {
		t.Errorf("Float(integer) = %v, %v", v, ok)
	}
	if _, ok := row.Float("malformed"); ok {
		t.Error("Float(malformed) should not parse")
	}
	if _, ok := row.Float("absent"); ok {
		t.Error("Float(absent) should not parse")
	}
}

func TestSourceRowTime(t *testing.T) {
	native := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	row := domain.SourceRow{
		"native": native,
		"iso":    "2024-03-01T10:00:00Z",
		"bare":   "2024-03-01",
		"junk":   "soon",
	}

	if got, ok := row.Time("native"); !ok || !got.Equal(native) {
		t.Errorf("Time(native) = %v, %v", got, ok)
	}
	if got, ok := row.Time("iso"); !ok || !got.Equal(native) {
		t.Errorf("Time(iso) = %v, %v", got, ok)
	}
	if got, ok := row.Time("bare"); !ok || got.Day() != 1 {
		t.Errorf("Time(bare) = %v, %v", got, ok)
	}
	if _, ok := row.Time("junk"); ok {
		t.Error("Time(junk) should not parse")
	}
}

func TestSourceRowHas(t *testing.T) {
	row := domain.SourceRow{
		"filled": "x",
		"blank":  "   ",
		"zero":   float64(0),
		"null":   nil,
	}

	if !row.Has("filled") {
		t.Error("filled column should be present")
	}
	if row.Has("blank") {
		t.Error("whitespace-only string is not present")
	}
	if !row.Has("zero") {
		t.Error("numeric zero is still a value")
	}
	if row.Has("null") || row.Has("absent") {
		t.Error("nil and missing columns are not present")
	}
}

func TestSourceRowJSON(t *testing.T) {
	row := domain.SourceRow{"id": "1", "title": "works"}
	data := row.JSON()
	if len(data) == 0 {
		t.Fatal("expected JSON output")
	}

	// Unmarshalable values are rendered as strings instead of dropping the
	// whole row.
	row["bad"] = make(chan int)
	data = row.JSON()
	if len(data) == 0 {
		t.Fatal("expected JSON output despite unmarshalable value")
	}
}
