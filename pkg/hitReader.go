package actar

import (
	"fmt"
	"io"

	hdf5 "github.com/jmbenlloch/go-hdf5"
)

// HitReader hands out the hits of an input table one event at a time. An
// event is a run of consecutive rows sharing the same event ID.
type HitReader struct {
	rows     []Hit
	position int
}

func NewHitReader(rows []Hit) *HitReader {
	return &HitReader{rows: rows}
}

// OpenHitReader loads the hit table dataset from an HDF5 file.
func OpenHitReader(filename string, dataset string) (*HitReader, error) {
	file, err := hdf5.OpenFile(filename, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, &ErrOpenFile{Filename: filename, Err: err}
	}
	defer file.Close()

	rows, err := readTable[Hit](file, dataset)
	if err != nil {
		return nil, err
	}
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Read %d hits from %s:%s", len(rows), filename, dataset)
		logger.Info(message, "hitReader")
	}
	return NewHitReader(rows), nil
}

// Entries returns the number of rows in the table.
func (r *HitReader) Entries() int {
	return len(r.rows)
}

// NextEvent returns the hits of the next event, or io.EOF once the table
// is exhausted.
func (r *HitReader) NextEvent() (EventBatch, error) {
	if r.position >= len(r.rows) {
		return EventBatch{EventID: -1}, io.EOF
	}
	start := r.position
	eventID := r.rows[start].EventID
	for r.position < len(r.rows) && r.rows[r.position].EventID == eventID {
		r.position++
	}

	hits := make([]Hit, r.position-start)
	copy(hits, r.rows[start:r.position])
	if configuration.Verbosity > 1 {
		message := fmt.Sprintf("read %d points for event %d", len(hits), eventID)
		logger.Info(message, "hitReader")
	}
	return EventBatch{EventID: eventID, Hits: hits}, nil
}

// CountEvents counts the events left in the table without consuming them.
func (r *HitReader) CountEvents() int {
	count := 0
	for i := r.position; i < len(r.rows); i++ {
		if i == r.position || r.rows[i].EventID != r.rows[i-1].EventID {
			count++
		}
	}
	return count
}

// Rewind moves back to the first row.
func (r *HitReader) Rewind() {
	r.position = 0
}
