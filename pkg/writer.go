package actar

import (
	"errors"
	"fmt"

	hdf5 "github.com/jmbenlloch/go-hdf5"
)

type Writer struct {
	File          *hdf5.File
	Filename      string
	RunGroup      *hdf5.Group
	ChainsGroup   *hdf5.Group
	EventTable    *hdf5.Dataset
	GeometryTable *hdf5.Dataset
	ChainHits     *hdf5.Dataset
	ChainSummary  *hdf5.Dataset
	EvtCounter    int
	HitCounter    int
	ChainCounter  int
}

func NewWriter(filename string) (*Writer, error) {
	var err error
	writer := &Writer{Filename: filename}
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Creating file: %s", filename), "writer")
	}
	if writer.File, err = openFile(filename); err != nil {
		return nil, err
	}
	if writer.RunGroup, err = createGroup(writer.File, "Run"); err != nil {
		return nil, errors.Join(err, writer.Close())
	}
	if writer.ChainsGroup, err = createGroup(writer.File, "Chains"); err != nil {
		return nil, errors.Join(err, writer.Close())
	}
	if writer.EventTable, err = createTable(writer.RunGroup, "events", EventInfoHDF5{}); err != nil {
		return nil, errors.Join(err, writer.Close())
	}
	if writer.GeometryTable, err = createTable(writer.RunGroup, "geometry", GeometryHDF5{}); err != nil {
		return nil, errors.Join(err, writer.Close())
	}
	if writer.ChainHits, err = createTable(writer.ChainsGroup, "hits", ChainHitHDF5{}); err != nil {
		return nil, errors.Join(err, writer.Close())
	}
	if writer.ChainSummary, err = createTable(writer.ChainsGroup, "summary", ChainSummaryHDF5{}); err != nil {
		return nil, errors.Join(err, writer.Close())
	}
	// Geometry goes in first so that a run without events still records it
	if err = writer.writeGeometry(); err != nil {
		return nil, errors.Join(err, writer.Close())
	}
	return writer, nil
}

func (w *Writer) writeGeometry() error {
	geometry := []GeometryHDF5{{
		PitchX:    configuration.PitchX,
		PitchY:    configuration.PitchY,
		PitchZ:    configuration.PitchZ,
		MinPoints: int32(configuration.MinPoints),
		MaxPoints: int32(configuration.MaxPoints),
	}}
	if _, err := writeArrayToTable(w.GeometryTable, geometry, 0); err != nil {
		return fmt.Errorf("error writing geometry: %w", err)
	}
	return nil
}

func (w *Writer) WriteEvent(result *EventResult) error {
	var err error
	info := []EventInfoHDF5{{
		EventID:     result.EventID,
		NHits:       int32(result.Stats.Points),
		NChains:     int32(len(result.Chains)),
		NDuplicates: int32(result.Stats.Duplicates),
		Rejected:    int32(result.Stats.Rejected),
	}}
	if w.EvtCounter, err = writeArrayToTable(w.EventTable, info, w.EvtCounter); err != nil {
		return fmt.Errorf("error writing event %d: %w", result.EventID, err)
	}

	chainHits := chainHitRows(result)
	if w.HitCounter, err = writeArrayToTable(w.ChainHits, chainHits, w.HitCounter); err != nil {
		return fmt.Errorf("error writing chain hits of event %d: %w", result.EventID, err)
	}

	summaries := summaryRows(result.Summaries)
	if w.ChainCounter, err = writeArrayToTable(w.ChainSummary, summaries, w.ChainCounter); err != nil {
		return fmt.Errorf("error writing chain summary of event %d: %w", result.EventID, err)
	}
	return nil
}

func chainHitRows(result *EventResult) []ChainHitHDF5 {
	nRows := 0
	for _, chain := range result.Chains {
		nRows += chain.Len()
	}
	rows := make([]ChainHitHDF5, 0, nRows)
	for _, chain := range result.Chains {
		for position, idx := range chain.Members {
			hit := result.Hits[idx]
			rows = append(rows, ChainHitHDF5{
				EventID:  result.EventID,
				ChainID:  int32(chain.ID),
				Position: int32(position),
				HitIndex: int32(idx),
				PixelNb:  hit.PixelNb,
				TrackID:  hit.TrackID,
				X:        hit.X,
				Y:        hit.Y,
				Z:        hit.Z,
				Edep:     hit.Edep,
			})
		}
	}
	return rows
}

func summaryRows(summaries []ChainSummary) []ChainSummaryHDF5 {
	rows := make([]ChainSummaryHDF5, len(summaries))
	for i, s := range summaries {
		rows[i] = ChainSummaryHDF5{
			EventID: s.EventID,
			ChainID: int32(s.ChainID),
			NHits:   int32(s.NHits),
			Edep:    s.Edep,
			X:       s.X,
			Y:       s.Y,
			Z:       s.Z,
			XMin:    s.Min[0],
			XMax:    s.Max[0],
			YMin:    s.Min[1],
			YMax:    s.Max[1],
			ZMin:    s.Min[2],
			ZMax:    s.Max[2],
		}
	}
	return rows
}

func (w *Writer) Close() error {
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Closing file %s", w.Filename), "writer")
	}
	var errs []error

	if w.EventTable != nil {
		if err := w.EventTable.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing event table: %w", err))
		}
	}
	if w.GeometryTable != nil {
		if err := w.GeometryTable.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing geometry table: %w", err))
		}
	}
	if w.ChainHits != nil {
		if err := w.ChainHits.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing chain hits table: %w", err))
		}
	}
	if w.ChainSummary != nil {
		if err := w.ChainSummary.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing chain summary table: %w", err))
		}
	}
	if w.RunGroup != nil {
		if err := w.RunGroup.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing run group: %w", err))
		}
	}
	if w.ChainsGroup != nil {
		if err := w.ChainsGroup.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing chains group: %w", err))
		}
	}
	if w.File != nil {
		if err := w.File.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing file: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
