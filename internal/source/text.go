package source

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// delimiters lists the explicit column separators in order of preference.
const delimiters = ",;\t"

// detectDelimiter picks the separator of line. Zero means runs of spaces.
func detectDelimiter(line string) rune {
	for _, d := range delimiters {
		if strings.ContainsRune(line, d) {
			return d
		}
	}
	return 0
}

// splitFields splits line on delim, keeping empty cells in place so later
// columns do not shift.
func splitFields(line string, delim rune) []string {
	if delim == 0 {
		return strings.Fields(line)
	}

	fields := strings.Split(line, string(delim))
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}

// ReadText reads one sample per line from the zero-based column of a
// delimited text stream. The separator (comma, semicolon, tab or spaces) is
// taken from the first row and used for the whole stream. Blank lines and
// lines starting with '#' are skipped, a non-numeric first row is treated
// as a header, and an empty cell in the selected column is an error.
func ReadText(r io.Reader, column int) ([]float64, error) {
	if column < 0 {
		return nil, fmt.Errorf("%w: %d", ErrColumn, column)
	}

	var (
		out    []float64
		header = true
		delim  rune
		seen   bool
		lineNo int
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		raw := strings.TrimRight(sc.Text(), "\r")
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen {
			delim, seen = detectDelimiter(line), true
		}

		fields := splitFields(raw, delim)
		if column >= len(fields) {
			return nil, fmt.Errorf("%w: line %d has %d columns, want column %d", ErrColumn, lineNo, len(fields), column)
		}
		if fields[column] == "" {
			return nil, fmt.Errorf("source: line %d: empty cell in column %d", lineNo, column)
		}

		v, err := strconv.ParseFloat(fields[column], 64)
		if err != nil {
			if header {
				header = false
				continue
			}
			return nil, fmt.Errorf("source: line %d: %w", lineNo, err)
		}
		header = false
		out = append(out, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}

	if len(out) == 0 {
		return nil, ErrNoSamples
	}
	return out, nil
}
