package actar

import "fmt"

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

func (e *ErrOpenFile) Unwrap() error { return e.Err }

// ErrOpenDataset represents an error when opening a dataset for reading.
type ErrOpenDataset struct {
	DatasetName string
	Err         error
}

func (e *ErrOpenDataset) Error() string {
	return fmt.Sprintf("error opening dataset %q: %v", e.DatasetName, e.Err)
}

func (e *ErrOpenDataset) Unwrap() error { return e.Err }

// ErrCreateGroup represents an error when creating a group.
type ErrCreateGroup struct {
	GroupName string
	Err       error
}

func (e *ErrCreateGroup) Error() string {
	return fmt.Sprintf("error creating group %q: %v", e.GroupName, e.Err)
}

func (e *ErrCreateGroup) Unwrap() error { return e.Err }

// ErrCreateTable represents an error when creating a table.
type ErrCreateTable struct {
	TableName string
	Err       error
}

func (e *ErrCreateTable) Error() string {
	return fmt.Sprintf("error creating table %q: %v", e.TableName, e.Err)
}

func (e *ErrCreateTable) Unwrap() error { return e.Err }

// ErrNonFiniteHit is returned by PointStore.Load when a hit has a NaN or
// infinite coordinate. Such events cannot be ordered.
type ErrNonFiniteHit struct {
	EventID int64
	Index   int
	Axis    string
}

func (e *ErrNonFiniteHit) Error() string {
	return fmt.Sprintf("event %d: hit %d has non-finite %s coordinate", e.EventID, e.Index, e.Axis)
}
