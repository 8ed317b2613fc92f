package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	actar "github.com/next-exp/actar_go/pkg"
	"gopkg.in/yaml.v3"
)

// LoadConfiguration reads a JSON or YAML (.yaml, .yml) configuration file.
// Keys missing from the file keep their default values.
func LoadConfiguration(filename string) (actar.Configuration, error) {
	config := actar.DefaultConfiguration()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return config, err
	}
	return config, validateConfiguration(config)
}

func validateConfiguration(config actar.Configuration) error {
	if !config.Geometry().Valid() {
		return fmt.Errorf("pitches must be positive, got %g %g %g", config.PitchX, config.PitchY, config.PitchZ)
	}
	if config.MinPoints < 0 || config.MaxPoints < 0 {
		return fmt.Errorf("point limits must not be negative, got min %d max %d", config.MinPoints, config.MaxPoints)
	}
	if config.MaxPoints > 0 && config.MaxPoints < config.MinPoints {
		return fmt.Errorf("max_points (%d) is below min_points (%d)", config.MaxPoints, config.MinPoints)
	}
	if config.NumWorkers < 1 {
		return fmt.Errorf("num_workers must be at least 1, got %d", config.NumWorkers)
	}
	return nil
}

func printConfiguration(config actar.Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("File in: %s", config.FileIn), "config")
	logger.Info(fmt.Sprintf("Input dataset: %s", config.InputDataset), "config")
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("DB driver: %s", config.DBDriver), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("Run number: %d", config.RunNumber), "config")
	logger.Info(fmt.Sprintf("Pitch: %g %g %g", config.PitchX, config.PitchY, config.PitchZ), "config")
	logger.Info(fmt.Sprintf("Min points: %d", config.MinPoints), "config")
	logger.Info(fmt.Sprintf("Max points: %d", config.MaxPoints), "config")
	logger.Info(fmt.Sprintf("Skip: %d", config.Skip), "config")
	logger.Info(fmt.Sprintf("Max events: %d", config.MaxEvents), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Discard: %t", config.Discard), "config")
	logger.Info(fmt.Sprintf("Write data: %t", config.WriteData), "config")
	logger.Info(fmt.Sprintf("Compression level: %d", config.CompressionLevel), "config")
	logger.Info(fmt.Sprintf("Number of workers: %d", config.NumWorkers), "config")
	logger.Info(fmt.Sprintf("Parallel: %t", config.Parallel), "config")
	logger.Info(fmt.Sprintf("Metrics address: %s", config.MetricsAddr), "config")
}
