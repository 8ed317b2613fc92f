package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	actar "github.com/next-exp/actar_go/pkg"
)

type Logger struct {
	InfoLog  *slog.Logger
	ErrorLog *slog.Logger
}

func (l Logger) Info(message string, module string) {
	l.InfoLog.Info(message, "module", module)
}

func (l Logger) Error(message string) {
	l.ErrorLog.Error(message)
}

var logger Logger

func init() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	logger = Logger{
		InfoLog:  slog.New(slog.NewTextHandler(os.Stdout, opts)),
		ErrorLog: slog.New(slog.NewJSONHandler(os.Stderr, opts)),
	}
}

// measureCompression clusters an input file once, then writes the chains
// with every deflate level and reports write time and file size.
func main() {
	fileIn := flag.String("in", "", "Input HDF5 file with hits")
	dataset := flag.String("dataset", "Interest", "Hit table inside the input file")
	fileOut := flag.String("out", "chains_measure.h5", "Output HDF5 file, overwritten for every level")
	repetitions := flag.Int("repetitions", 3, "Writes per compression level")
	flag.Parse()

	configuration := actar.DefaultConfiguration()
	configuration.FileIn = *fileIn
	configuration.InputDataset = *dataset
	configuration.FileOut = *fileOut
	actar.SetConfiguration(configuration)
	actar.SetLogger(logger)

	results, err := clusterFile(configuration)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	fmt.Println("Total events processed: ", len(results))

	start := time.Now()
	for compressionLevel := 0; compressionLevel < 10; compressionLevel++ {
		configuration.CompressionLevel = compressionLevel
		actar.SetConfiguration(configuration)
		for i := 0; i < *repetitions; i++ {
			duration, size, err := writeResults(configuration, results)
			if err != nil {
				logger.Error(fmt.Sprintf("Error writing with compression %d: %v", compressionLevel, err))
				continue
			}
			fmt.Printf("(hdf5, comp %d) Time: %d ms, size %d bytes\n", compressionLevel, duration.Milliseconds(), size)
		}
	}
	fmt.Printf("Total time: %d ms\n", time.Since(start).Milliseconds())
}

func clusterFile(configuration actar.Configuration) ([]actar.EventResult, error) {
	reader, err := actar.OpenHitReader(configuration.FileIn, configuration.InputDataset)
	if err != nil {
		return nil, err
	}
	processor := actar.NewProcessor(configuration, nil)

	var results []actar.EventResult
	for {
		batch, err := reader.NextEvent()
		if err == io.EOF {
			return results, nil
		}
		if err != nil {
			return results, err
		}
		result, err := processor.ProcessEvent(batch)
		if err != nil {
			logger.Error(fmt.Sprintf("discarding event %d: %v", batch.EventID, err))
			continue
		}
		results = append(results, result)
	}
}

func writeResults(configuration actar.Configuration, results []actar.EventResult) (time.Duration, int64, error) {
	start := time.Now()
	writer, err := actar.NewWriter(configuration.FileOut)
	if err != nil {
		return 0, 0, err
	}
	for _, result := range results {
		if err := writer.WriteEvent(&result); err != nil {
			writer.Close()
			return 0, 0, err
		}
	}
	if err := writer.Close(); err != nil {
		return 0, 0, err
	}
	duration := time.Since(start)

	fileInfo, err := os.Stat(configuration.FileOut)
	if err != nil {
		return duration, 0, fmt.Errorf("error getting file info: %w", err)
	}
	return duration, fileInfo.Size(), nil
}
