package actar

import (
	"fmt"

	hdf5 "github.com/jmbenlloch/go-hdf5"
)

type EventInfoHDF5 struct {
	EventID     int64 `event_id`
	NHits       int32 `n_hits`
	NChains     int32 `n_chains`
	NDuplicates int32 `n_duplicates`
	Rejected    int32 `rejected`
}

type ChainHitHDF5 struct {
	EventID  int64   `event_id`
	ChainID  int32   `chain_id`
	Position int32   `position`
	HitIndex int32   `hit_index`
	PixelNb  int32   `pixel_nb`
	TrackID  int32   `track_id`
	X        float64 `x`
	Y        float64 `y`
	Z        float64 `z`
	Edep     float64 `edep`
}

type ChainSummaryHDF5 struct {
	EventID int64   `event_id`
	ChainID int32   `chain_id`
	NHits   int32   `n_hits`
	Edep    float64 `edep`
	X       float64 `x`
	Y       float64 `y`
	Z       float64 `z`
	XMin    float64 `xmin`
	XMax    float64 `xmax`
	YMin    float64 `ymin`
	YMax    float64 `ymax`
	ZMin    float64 `zmin`
	ZMax    float64 `zmax`
}

type GeometryHDF5 struct {
	PitchX    float64 `pitch_x`
	PitchY    float64 `pitch_y`
	PitchZ    float64 `pitch_z`
	MinPoints int32   `min_points`
	MaxPoints int32   `max_points`
}

func openFile(fname string) (*hdf5.File, error) {
	f, err := hdf5.CreateFile(fname, hdf5.F_ACC_TRUNC)
	if err != nil {
		return nil, &ErrOpenFile{Filename: fname, Err: err}
	}
	return f, nil
}

func createGroup(file *hdf5.File, groupName string) (*hdf5.Group, error) {
	g, err := file.CreateGroup(groupName)
	if err != nil {
		return nil, &ErrCreateGroup{GroupName: groupName, Err: err}
	}
	return g, nil
}

// datasetCreator is satisfied by both *hdf5.File and *hdf5.Group.
type datasetCreator interface {
	CreateDatasetWith(name string, dtype *hdf5.Datatype, dspace *hdf5.Dataspace, dcpl *hdf5.PropList) (*hdf5.Dataset, error)
}

// createTable makes an extendable one-dimensional table whose compound
// members are named after the raw struct tags of datatype.
func createTable(group datasetCreator, name string, datatype interface{}) (*hdf5.Dataset, error) {
	dims := []uint{0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}
	file_space, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer file_space.Close()

	// create property list
	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer plist.Close()

	chunks := []uint{32768}
	if err := plist.SetChunk(chunks); err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	if configuration.CompressionLevel > 0 {
		if err := plist.SetDeflate(configuration.CompressionLevel); err != nil {
			return nil, &ErrCreateTable{TableName: name, Err: err}
		}
	}

	// create the memory data type
	dtype, err := hdf5.NewDatatypeFromValue(datatype)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}

	// create the dataset
	dset, err := group.CreateDatasetWith(name, dtype, file_space, plist)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	return dset, nil
}

// writeArrayToTable appends data at row offset and returns the new number
// of rows in the table.
func writeArrayToTable[T any](dataset *hdf5.Dataset, data []T, offset int) (int, error) {
	if len(data) == 0 {
		return offset, nil
	}
	length := uint(len(data))
	dims := []uint{length}
	dataspace, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		return offset, fmt.Errorf("error creating memory dataspace: %w", err)
	}
	defer dataspace.Close()

	// extend
	rowsInFile := uint(offset)
	newsize := []uint{rowsInFile + length}
	if err := dataset.Resize(newsize); err != nil {
		return offset, fmt.Errorf("error resizing table: %w", err)
	}
	filespace := dataset.Space()
	defer filespace.Close()

	start := []uint{rowsInFile}
	count := []uint{length}
	if err := filespace.SelectHyperslab(start, nil, count, nil); err != nil {
		return offset, fmt.Errorf("error selecting hyperslab: %w", err)
	}

	if err := dataset.WriteSubset(&data, dataspace, filespace); err != nil {
		return offset, fmt.Errorf("error writing table: %w", err)
	}
	return offset + len(data), nil
}

// readTable loads a whole one-dimensional compound table.
func readTable[T any](file *hdf5.File, name string) ([]T, error) {
	dataset, err := file.OpenDataset(name)
	if err != nil {
		return nil, &ErrOpenDataset{DatasetName: name, Err: err}
	}
	defer dataset.Close()

	space := dataset.Space()
	defer space.Close()
	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return nil, fmt.Errorf("error reading dimensions of %q: %w", name, err)
	}
	if len(dims) != 1 {
		return nil, fmt.Errorf("dataset %q has %d dimensions, expected 1", name, len(dims))
	}

	// The slice MUST be allocated before reading, HDF5 fills it in place
	rows := make([]T, dims[0])
	if len(rows) == 0 {
		return rows, nil
	}
	if err := dataset.Read(&rows); err != nil {
		return nil, fmt.Errorf("error reading dataset %q: %w", name, err)
	}
	return rows, nil
}
