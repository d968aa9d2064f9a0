package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path"
	"strconv"
	"strings"
)

// Format identifies a dataset encoding.
type Format string

const (
	// FormatCSV is comma-delimited text with a header row.
	FormatCSV Format = "csv"
	// FormatParquet is an Apache Parquet file with flat columns.
	FormatParquet Format = "parquet"
)

// DetectFormat picks the format from an explicit setting or the source extension.
func DetectFormat(explicit, source string) (Format, error) {
	switch Format(strings.ToLower(explicit)) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatParquet:
		return FormatParquet, nil
	case "":
	default:
		return "", fmt.Errorf("unknown dataset format %q", explicit)
	}

	// strip query string from URLs
	p, _, _ := strings.Cut(source, "?")
	if strings.EqualFold(path.Ext(p), ".parquet") {
		return FormatParquet, nil
	}
	return FormatCSV, nil
}

// Decode parses data and keeps only the requested columns, in the requested order.
// Every requested column must exist and every cell must be numeric or boolean.
func Decode(data []byte, format Format, columns []string) (*Table, error) {
	switch format {
	case FormatCSV:
		return decodeCSV(bytes.NewReader(data), columns)
	case FormatParquet:
		return decodeParquet(data, columns)
	default:
		return nil, fmt.Errorf("unknown dataset format %q", format)
	}
}

func decodeCSV(r io.Reader, columns []string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv: empty input")
		}
		return nil, fmt.Errorf("csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.TrimSpace(h)] = i
	}
	idx, err := resolveColumns(pos, columns)
	if err != nil {
		return nil, err
	}

	cols := make([][]float64, len(columns))
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		for c, i := range idx {
			v, err := parseCell(rec[i])
			if err != nil {
				return nil, fmt.Errorf("csv line %d column %q: %w", line, columns[c], err)
			}
			cols[c] = append(cols[c], v)
		}
	}

	return NewTable(columns, cols)
}

func resolveColumns(pos map[string]int, columns []string) ([]int, error) {
	idx := make([]int, len(columns))
	var missing []string
	for c, name := range columns {
		i, ok := pos[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		idx[c] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

// parseCell accepts numbers and the usual boolean spellings, coerced to 0/1.
func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	switch strings.ToLower(s) {
	case "true", "t", "yes", "y":
		return 1, nil
	case "false", "f", "no", "n":
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not numeric: %q", s)
	}
	return v, nil
}
