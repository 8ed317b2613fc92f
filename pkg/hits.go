package actar

// Hit is a single activated pixel of one event. The raw struct tags are the
// HDF5 column names, taken from the branches of the simulation output.
type Hit struct {
	PixelNb     int32   `PixelNb`
	TrackID     int32   `TrackID`
	PartPDGCode int32   `PartPDGCode`
	SensorNb    int32   `SensorNb`
	Edep        float64 `Edep`
	EventID     int64   `EventID`
	X           float64 `PixelCentreXPosition`
	Y           float64 `PixelCentreYPosition`
	Z           float64 `PixelCentreZPosition`
	BigSensorNb int32   `BigSensorNb`
}

// HitIndex addresses a hit inside the batch currently held by a PointStore.
// Indices are only meaningful until the next Load or Reset.
type HitIndex int

// EventBatch is the set of hits read for one event, in file order.
type EventBatch struct {
	EventID int64
	Hits    []Hit
}

const (
	DefaultPitchX = 0.03
	DefaultPitchY = 0.05
	DefaultPitchZ = 0.03

	DefaultMinPointsPerEvent = 3
)

// Geometry is the pixel grid spacing along each axis.
type Geometry struct {
	PitchX float64 `db:"PitchX"`
	PitchY float64 `db:"PitchY"`
	PitchZ float64 `db:"PitchZ"`
}

func DefaultGeometry() Geometry {
	return Geometry{PitchX: DefaultPitchX, PitchY: DefaultPitchY, PitchZ: DefaultPitchZ}
}

// Valid reports whether all pitches are strictly positive.
func (g Geometry) Valid() bool {
	return g.PitchX > 0 && g.PitchY > 0 && g.PitchZ > 0
}
