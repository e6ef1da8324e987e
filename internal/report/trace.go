package report

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/cwbudde/algo-htr/measure/htr"
)

// TraceRow is one sample of the per-sample trace.
type TraceRow struct {
	Index     int64   `parquet:"index"`
	TimeS     float64 `parquet:"time_s"`
	Raw       float64 `parquet:"raw"`
	Filtered  float64 `parquet:"filtered"`
	Corrected float64 `parquet:"corrected"`
	Rectified float64 `parquet:"rectified"`
	Signal    int32   `parquet:"signal"`
	Event     bool    `parquet:"event"`
}

// TraceRows lays raw and every intermediate sequence of res side by side.
func TraceRows(raw []float64, res *htr.Result) ([]TraceRow, error) {
	if len(raw) != len(res.Filtered) {
		return nil, fmt.Errorf("report: trace length mismatch: raw %d, result %d", len(raw), len(res.Filtered))
	}

	mask := res.EventMask()
	rows := make([]TraceRow, len(raw))
	for i := range rows {
		rows[i] = TraceRow{
			Index:     int64(i),
			TimeS:     res.Time(i),
			Raw:       raw[i],
			Filtered:  res.Filtered[i],
			Corrected: res.Corrected[i],
			Rectified: res.Rectified[i],
			Signal:    int32(res.Signals[i]),
			Event:     mask[i],
		}
	}
	return rows, nil
}

// WriteTrace writes rows as a Snappy-compressed parquet file.
func WriteTrace(w io.Writer, rows []TraceRow) error {
	pw := parquet.NewGenericWriter[TraceRow](w, parquet.Compression(&parquet.Snappy))
	if _, err := pw.Write(rows); err != nil {
		return fmt.Errorf("report: write trace: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("report: close trace: %w", err)
	}
	return nil
}

// ReadTrace reads every row of a trace written by [WriteTrace].
func ReadTrace(r io.ReaderAt) ([]TraceRow, error) {
	gr := parquet.NewGenericReader[TraceRow](r)
	defer gr.Close()

	out := make([]TraceRow, 0, gr.NumRows())
	batch := make([]TraceRow, 1024)
	for {
		n, err := gr.Read(batch)
		if n > 0 {
			out = append(out, batch[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("report: read trace: %w", err)
		}
	}
	return out, nil
}
