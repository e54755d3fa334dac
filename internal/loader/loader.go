// Package loader turns a raw attention CSV into a cleaned, date-keyed table.
//
// The file layout is fixed: two descriptive lines, a header row whose first
// column holds dates, then one row per day with one column per event.
// Malformed rows and cells are recovered silently; only a missing file or an
// input with no usable structure is an error.
package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/lifespan/internal/log"
	"github.com/huangsam/lifespan/schema"
)

// HeaderLines is the number of descriptive lines that precede the header row.
const HeaderLines = 2

// Errors reported for inputs that cannot be turned into a table.
var (
	ErrNoHeader = errors.New("input ends before the header row")
	ErrNoEvents = errors.New("header row has no event columns")
	ErrNoRows   = errors.New("no data row has a valid date")
)

// Options controls how the input is read.
type Options struct {
	Encoding  schema.Encoding
	SkipLines int
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{
		Encoding:  schema.AutoEncoding,
		SkipLines: HeaderLines,
	}
}

// CacheKeyPart returns a stable string describing the options, for cache keys.
func (o Options) CacheKeyPart() string {
	return fmt.Sprintf("encoding=%s;skip=%d", o.Encoding, o.SkipLines)
}

type row struct {
	day    time.Time
	values []float64
}

// ReadInput reads the raw bytes of the CSV at path.
func ReadInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

// LoadFile reads and parses the CSV at path.
func LoadFile(path string, opts Options) (schema.AttentionTable, error) {
	data, err := ReadInput(path)
	if err != nil {
		return schema.AttentionTable{}, err
	}
	return Parse(data, opts)
}

// Parse builds an attention table from raw CSV bytes.
func Parse(data []byte, opts Options) (schema.AttentionTable, error) {
	text, detected, err := decode(data, opts.Encoding)
	if err != nil {
		return schema.AttentionTable{}, err
	}
	body, ok := skipLines(text, opts.SkipLines)
	if !ok {
		return schema.AttentionTable{}, ErrNoHeader
	}

	reader := csv.NewReader(bytes.NewReader(body))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return schema.AttentionTable{}, ErrNoHeader
	}
	if err != nil {
		return schema.AttentionTable{}, fmt.Errorf("parse header: %w", err)
	}
	if len(header) < 2 {
		return schema.AttentionTable{}, ErrNoEvents
	}
	names := eventNames(header)

	stats := schema.LoadStats{Encoding: detected, Events: len(names)}
	var rows []row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return schema.AttentionTable{}, fmt.Errorf("parse row: %w", err)
		}
		stats.RowsRead++

		day, ok := ParseDay(record[0])
		if !ok {
			stats.InvalidDateRows++
			continue
		}

		values := make([]float64, len(names))
		for j := range names {
			cell := ""
			if j+1 < len(record) {
				cell = record[j+1]
			}
			v, ok := ParseAttention(cell)
			if !ok {
				stats.ZeroFilledCells++
			}
			values[j] = v
		}
		rows = append(rows, row{day: day, values: values})
	}

	rows = orderByDay(rows, &stats)
	if len(rows) == 0 {
		return schema.AttentionTable{}, ErrNoRows
	}
	stats.RowsKept = len(rows)

	table := buildTable(names, rows)
	table.Stats = stats
	log.Debugw("loaded attention table",
		"encoding", stats.Encoding,
		"events", stats.Events,
		"rows_read", stats.RowsRead,
		"rows_kept", stats.RowsKept,
		"invalid_date_rows", stats.InvalidDateRows,
		"duplicate_date_rows", stats.DuplicateDateRows,
		"zero_filled_cells", stats.ZeroFilledCells,
	)
	return table, nil
}

// eventNames names every column after the first. Blank headers become
// "Unnamed: i" and repeated headers get a ".n" suffix so names stay unique.
func eventNames(header []string) []string {
	seen := make(map[string]int, len(header))
	seen[schema.DayColumn] = 1
	names := make([]string, 0, len(header)-1)
	for i, h := range header[1:] {
		name := strings.TrimSpace(h)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i+1)
		}
		base := name
		for seen[name] > 0 {
			name = base + "." + strconv.Itoa(seen[base])
			seen[base]++
		}
		seen[name]++
		names = append(names, name)
	}
	return names
}

// orderByDay sorts rows chronologically and keeps the first row of each day.
func orderByDay(rows []row, stats *schema.LoadStats) []row {
	slices.SortStableFunc(rows, func(a, b row) int {
		return a.day.Compare(b.day)
	})
	out := rows[:0]
	for _, r := range rows {
		if n := len(out); n > 0 && out[n-1].day.Equal(r.day) {
			stats.DuplicateDateRows++
			log.Warnw("dropping duplicate day", "day", r.day.Format(time.DateOnly))
			continue
		}
		out = append(out, r)
	}
	return out
}

func buildTable(names []string, rows []row) schema.AttentionTable {
	days := make([]time.Time, len(rows))
	for i, r := range rows {
		days[i] = r.day
	}
	events := make([]schema.EventSeries, len(names))
	for j, name := range names {
		values := make([]float64, len(rows))
		for i, r := range rows {
			values[i] = r.values[j]
		}
		events[j] = schema.EventSeries{Name: name, Days: days, Values: values}
	}
	return schema.AttentionTable{Days: days, Events: events}
}
