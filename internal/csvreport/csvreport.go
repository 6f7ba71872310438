// Package csvreport buffers search results to CSV through a single
// writer goroutine, fed by a bounded channel so worker goroutines never
// block on disk I/O beyond the channel's capacity. Grounded on the
// teacher's internal/backtest.WriteLedgerCSV (buffered *csv.Writer over
// a slice of rows), generalised here from a one-shot dump to a
// long-lived streaming writer.
package csvreport

import (
	"encoding/csv"
	"os"

	"github.com/elemental-power/epoch/internal/epocherr"
)

// channelCapacity bounds how far worker goroutines can outrun the
// single writer before Enqueue blocks, capping memory use during a
// large exhaustive dump.
const channelCapacity = 4096

// Writer drains rows off a bounded channel on its own goroutine,
// through a buffered *csv.Writer. The header is written once, at
// construction.
type Writer struct {
	rows chan []string
	done chan error
}

// NewWriter creates path, writes header, and starts the writer
// goroutine. Callers push rows with Enqueue and must call Close to
// flush and release the file handle.
func NewWriter(path string, header []string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, epocherr.Wrap(epocherr.KindIoError, "create csv file", err)
	}

	w := &Writer{
		rows: make(chan []string, channelCapacity),
		done: make(chan error, 1),
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		f.Close()
		return nil, epocherr.Wrap(epocherr.KindIoError, "write csv header", err)
	}

	go func() {
		var writeErr error
		for row := range w.rows {
			if writeErr != nil {
				continue // drain remaining rows so senders never block after a failure
			}
			if err := cw.Write(row); err != nil {
				writeErr = epocherr.Wrap(epocherr.KindIoError, "write csv row", err)
			}
		}
		cw.Flush()
		if writeErr == nil {
			writeErr = cw.Error()
		}
		closeErr := f.Close()
		if writeErr == nil && closeErr != nil {
			writeErr = epocherr.Wrap(epocherr.KindIoError, "close csv file", closeErr)
		}
		w.done <- writeErr
	}()

	return w, nil
}

// Enqueue submits one row, blocking if the channel is full.
func (w *Writer) Enqueue(row []string) {
	w.rows <- row
}

// Close signals the writer goroutine to drain and flush, and returns
// the first I/O error encountered, if any.
func (w *Writer) Close() error {
	close(w.rows)
	return <-w.done
}
