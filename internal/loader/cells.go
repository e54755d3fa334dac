package loader

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// dayLayouts are tried in order against the first column of every data row.
var dayLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"2006/1/2",
	"1/2/2006",
	"1/2/06",
	"2-Jan-2006",
	"2-Jan-06",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Mon, Jan 2, 2006",
	"Monday, January 2, 2006",
	"20060102",
}

// ParseDay parses a calendar day from a CSV cell.
func ParseDay(cell string) (time.Time, bool) {
	s := cleanCell(cell)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseAttention parses a numeric observation. Anything that is not a finite
// number yields 0 and ok=false so the caller can count the fill.
func ParseAttention(cell string) (value float64, ok bool) {
	s := cleanCell(cell)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func cleanCell(cell string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(cell), "\""))
}
