package source

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads the zero-based column of a worksheet. An empty sheet name
// selects the first sheet. Empty cells are skipped and a non-numeric first
// row is treated as a header.
func ReadXLSX(r io.Reader, sheet string, column int) ([]float64, error) {
	if column < 0 {
		return nil, fmt.Errorf("%w: %d", ErrColumn, column)
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoSamples
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}

	var out []float64
	for i, row := range rows {
		if column >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[column])
		if cell == "" {
			continue
		}

		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			if i == 0 {
				continue
			}
			return nil, fmt.Errorf("source: sheet %q row %d: %w", sheet, i+1, err)
		}
		out = append(out, v)
	}

	if len(out) == 0 {
		return nil, ErrNoSamples
	}
	return out, nil
}
