package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/parquet-go/parquet-go"
)

// decodeParquet reads flat columns with the generic row reader; nested columns are ignored.
func decodeParquet(data []byte, columns []string) (*Table, error) {
	pf, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	pos := make(map[string]int)
	for i, p := range pf.Schema().Columns() {
		if len(p) == 1 {
			pos[p[0]] = i
		}
	}
	idx, err := resolveColumns(pos, columns)
	if err != nil {
		return nil, err
	}
	// leaf column index -> output column
	target := make(map[int]int, len(idx))
	for c, leaf := range idx {
		target[leaf] = c
	}

	cols := make([][]float64, len(columns))
	row := 0
	for _, rg := range pf.RowGroups() {
		if err := readRowGroup(rg, target, columns, cols, &row); err != nil {
			return nil, err
		}
	}

	return NewTable(columns, cols)
}

func readRowGroup(rg parquet.RowGroup, target map[int]int, names []string, cols [][]float64, row *int) error {
	rows := parquet.NewRowGroupReader(rg)
	defer func() { _ = rows.Close() }()

	buf := make([]parquet.Row, 512)
	for {
		n, readErr := rows.ReadRows(buf)
		for i := 0; i < n; i++ {
			*row++
			seen := 0
			for _, v := range buf[i] {
				c, ok := target[v.Column()]
				if !ok {
					continue
				}
				f, err := valueToFloat(v)
				if err != nil {
					return fmt.Errorf("parquet row %d column %q: %w", *row, names[c], err)
				}
				cols[c] = append(cols[c], f)
				seen++
			}
			if seen != len(target) {
				return fmt.Errorf("parquet row %d: expected %d values, got %d", *row, len(target), seen)
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return fmt.Errorf("read rows: %w", readErr)
		}
	}
}

func valueToFloat(v parquet.Value) (float64, error) {
	if v.IsNull() {
		return 0, fmt.Errorf("empty value")
	}
	var f float64
	switch v.Kind() {
	case parquet.Boolean:
		if v.Boolean() {
			return 1, nil
		}
		return 0, nil
	case parquet.Int32:
		return float64(v.Int32()), nil
	case parquet.Int64:
		return float64(v.Int64()), nil
	case parquet.Float:
		f = float64(v.Float())
	case parquet.Double:
		f = v.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return parseCell(v.String())
	default:
		return 0, fmt.Errorf("unsupported kind %s", v.Kind())
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not finite: %v", f)
	}
	return f, nil
}
