// File: internal/core/query.go
package core

import (
	"database/sql"
	"fmt"
	"strings"
)

// valuesMarker is the placeholder a bulk-insert statement carries where
// the multi-row VALUES groups get expanded.
const valuesMarker = "%s"

// EnsureTerminator returns query guaranteed to end with a statement
// terminator, appending one only when the query (ignoring trailing
// whitespace) does not already carry it. Applying it twice is a no-op.
func EnsureTerminator(query string) string {
	if strings.HasSuffix(strings.TrimSpace(query), ";") {
		return query
	}
	return query + ";"
}

// ExpandValues replaces the single values marker in query with nRows
// groups of nCols numbered driver placeholders, e.g. ($1,$2),($3,$4).
func ExpandValues(query string, nRows, nCols int) (string, error) {
	switch n := strings.Count(query, valuesMarker); {
	case n == 0:
		return "", fmt.Errorf("statement is missing the %s values placeholder", valuesMarker)
	case n > 1:
		return "", fmt.Errorf("statement must contain exactly one %s values placeholder, found %d", valuesMarker, n)
	}
	if nRows < 1 || nCols < 1 {
		return "", fmt.Errorf("cannot expand %d rows of %d values", nRows, nCols)
	}

	var b strings.Builder
	arg := 1
	for r := 0; r < nRows; r++ {
		if r > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('(')
		for c := 0; c < nCols; c++ {
			if c > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "$%d", arg)
			arg++
		}
		b.WriteByte(')')
	}
	return strings.Replace(query, valuesMarker, b.String(), 1), nil
}

// Collect drains up to n rows from rows into value tuples and returns
// them together with the ordered column names from the result metadata.
// A negative n means all remaining rows.
func Collect(rows *sql.Rows, n int) ([][]interface{}, []string, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get columns: %w", err)
	}

	var result [][]interface{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result = append(result, values)
		if n >= 0 && len(result) == n {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return result, columns, nil
}
