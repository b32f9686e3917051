package extract_test

import (
	"testing"
	"time"

	"github.com/tenderhub/normalizer/internal/extract"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected time.Time
		ok       bool
	}{
		{
			name:     "rfc3339",
			input:    "2024-03-15T10:30:00Z",
			expected: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "iso with fractional seconds",
			input:    "2024-03-15T10:30:00.500Z",
			expected: time.Date(2024, 3, 15, 10, 30, 0, 500_000_000, time.UTC),
			ok:       true,
		},
		{
			name:     "bare date promotes to midnight utc",
			input:    "2024-03-15",
			expected: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "iso without zone",
			input:    "2024-03-15T10:30:00",
			expected: time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "day month year slashes",
			input:    "15/03/2024",
			expected: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "long month name",
			input:    "March 15, 2024",
			expected: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "compact digits",
			input:    "20240315",
			expected: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "unix seconds",
			input:    "1700000000",
			expected: time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "unix milliseconds",
			input:    "1700000000000",
			expected: time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC),
			ok:       true,
		},
		{name: "empty", input: "", ok: false},
		{name: "garbage", input: "sometime soon", ok: false},
		{name: "out of range numeric", input: "42", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := extract.ParseDate(tc.input)
			if ok != tc.ok {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tc.input, ok, tc.ok)
			}
			if !tc.ok {
				return
			}
			if !got.Equal(tc.expected) {
				t.Errorf("ParseDate(%q) = %v, want %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestPromoteDate(t *testing.T) {
	withTime := time.Date(2024, 3, 15, 14, 30, 5, 0, time.UTC)
	if got := extract.PromoteDate(withTime); !got.Equal(withTime) {
		t.Errorf("timestamp with time of day changed: %v", got)
	}

	loc := time.FixedZone("plus2", 2*3600)
	bare := time.Date(2024, 3, 15, 0, 0, 0, 0, loc)
	got := extract.PromoteDate(bare)
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("bare date not promoted to midnight UTC: %v", got)
	}
}

func TestLongMonthNameLayout(t *testing.T) {
	// "January 2, 2006" style from afdb rows.
	got, ok := extract.ParseDate("15 March 2024")
	if !ok {
		t.Fatal("expected day-first month name layout to parse")
	}
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
