// Package frame holds the in-memory tabular type produced by reads and
// consumed by bulk inserts: ordered column names over ordered rows of
// value tuples.
package frame

import (
	"fmt"
	"strings"
)

// Frame is an in-memory table. Column names come from the result
// metadata and are not guaranteed unique; that is inherited from the
// underlying schema.
type Frame struct {
	columns []string
	rows    [][]interface{}
}

// New builds a Frame from column names and rows. Every row must carry
// exactly one value per column.
func New(columns []string, rows [][]interface{}) (*Frame, error) {
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, want %d", i, len(row), len(columns))
		}
	}
	return &Frame{columns: columns, rows: rows}, nil
}

// Columns returns the ordered column names.
func (f *Frame) Columns() []string {
	return f.columns
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.rows)
}

// Row returns the i-th row's values in column order.
func (f *Frame) Row(i int) []interface{} {
	return f.rows[i]
}

// Rows returns every row's values in column order. This is the source
// a bulk insert derives its value tuples from.
func (f *Frame) Rows() [][]interface{} {
	return f.rows
}

// String renders the frame as an aligned text table.
func (f *Frame) String() string {
	widths := make([]int, len(f.columns))
	for i, col := range f.columns {
		widths[i] = len(col)
	}
	cells := make([][]string, len(f.rows))
	for r, row := range f.rows {
		cells[r] = make([]string, len(row))
		for c, v := range row {
			s := formatValue(v)
			cells[r][c] = s
			if len(s) > widths[c] {
				widths[c] = len(s)
			}
		}
	}

	var b strings.Builder
	for c, col := range f.columns {
		if c > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "%-*s", widths[c], col)
	}
	b.WriteByte('\n')
	for c := range f.columns {
		if c > 0 {
			b.WriteString("  ")
		}
		b.WriteString(strings.Repeat("-", widths[c]))
	}
	for _, row := range cells {
		b.WriteByte('\n')
		for c, s := range row {
			if c > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "%-*s", widths[c], s)
		}
	}
	return b.String()
}

func formatValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
