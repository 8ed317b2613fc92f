package actar

type Configuration struct {
	MaxEvents        int     `json:"max_events" yaml:"max_events"`
	Verbosity        int     `json:"verbosity" yaml:"verbosity"`
	FileIn           string  `json:"file_in" yaml:"file_in"`
	FileOut          string  `json:"file_out" yaml:"file_out"`
	InputDataset     string  `json:"input_dataset" yaml:"input_dataset"`
	Skip             int     `json:"skip" yaml:"skip"`
	MinPoints        int     `json:"min_points" yaml:"min_points"`
	MaxPoints        int     `json:"max_points" yaml:"max_points"`
	PitchX           float64 `json:"pitch_x" yaml:"pitch_x"`
	PitchY           float64 `json:"pitch_y" yaml:"pitch_y"`
	PitchZ           float64 `json:"pitch_z" yaml:"pitch_z"`
	NoDB             bool    `json:"no_db" yaml:"no_db"`
	DBDriver         string  `json:"db_driver" yaml:"db_driver"`
	Host             string  `json:"host" yaml:"host"`
	User             string  `json:"user" yaml:"user"`
	Passwd           string  `json:"pass" yaml:"pass"`
	DBName           string  `json:"dbname" yaml:"dbname"`
	RunNumber        int     `json:"run_number" yaml:"run_number"`
	NumWorkers       int     `json:"num_workers" yaml:"num_workers"`
	Parallel         bool    `json:"parallel" yaml:"parallel"`
	WriteData        bool    `json:"write_data" yaml:"write_data"`
	Discard          bool    `json:"discard" yaml:"discard"`
	CompressionLevel int     `json:"compression_level" yaml:"compression_level"`
	MetricsAddr      string  `json:"metrics_addr" yaml:"metrics_addr"`
}

// Geometry returns the pixel pitches set in the configuration.
func (c Configuration) Geometry() Geometry {
	return Geometry{PitchX: c.PitchX, PitchY: c.PitchY, PitchZ: c.PitchZ}
}

var configuration = DefaultConfiguration()

// DefaultConfiguration holds the values used when a key is missing from the
// configuration file.
func DefaultConfiguration() Configuration {
	return Configuration{
		MaxEvents:        1000000000,
		Verbosity:        0,
		InputDataset:     "Interest",
		Skip:             0,
		MinPoints:        DefaultMinPointsPerEvent,
		MaxPoints:        0,
		PitchX:           DefaultPitchX,
		PitchY:           DefaultPitchY,
		PitchZ:           DefaultPitchZ,
		NoDB:             true,
		DBDriver:         "mysql",
		Host:             "next.ific.uv.es",
		User:             "nextreader",
		Passwd:           "readonly",
		DBName:           "ACTAR",
		NumWorkers:       1,
		Parallel:         false,
		WriteData:        true,
		Discard:          true,
		CompressionLevel: 4,
	}
}

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}
