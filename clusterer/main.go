package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	sqlx "github.com/jmoiron/sqlx"
	actar "github.com/next-exp/actar_go/pkg"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var dbConn *sqlx.DB
var configuration actar.Configuration

var (
	logger         Logger
	VerbosityLevel int
	DiscardErrors  bool
)

func init() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	handlerStdOut := NewHandler(os.Stdout, opts)
	handlerStdErr := slog.NewJSONHandler(os.Stderr, opts)
	logger = Logger{
		InfoLog:  slog.New(handlerStdOut),
		ErrorLog: slog.New(handlerStdErr),
	}
}

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	flag.Parse()

	var err error
	configuration, err = LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	actar.SetLogger(logger)
	actar.SetConfiguration(configuration)

	VerbosityLevel = configuration.Verbosity
	DiscardErrors = configuration.Discard
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading configuration file: %s", *configFilename)
		logger.Info(message, "main")
	}

	if !configuration.NoDB {
		dbConn, err = actar.ConnectToDatabase(configuration.DBDriver, configuration.User, configuration.Passwd, configuration.Host, configuration.DBName)
		if err != nil {
			message := fmt.Errorf("Error connection to database: %w", err)
			logger.Error(message.Error())
			os.Exit(1)
		}
		defer dbConn.Close()

		configuration, err = actar.LoadDatabase(dbConn, configuration)
		if err != nil {
			os.Exit(1)
		}
	}
	actar.SetConfiguration(configuration)
	if VerbosityLevel > 0 {
		printConfiguration(configuration, logger)
	}

	registry := prometheus.NewRegistry()
	metrics := actar.NewMetrics(registry)
	if configuration.MetricsAddr != "" {
		go serveMetrics(configuration.MetricsAddr, registry)
	}

	if err := run(configuration, metrics); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func run(config actar.Configuration, metrics *actar.Metrics) error {
	hitReader, err := actar.OpenHitReader(config.FileIn, config.InputDataset)
	if err != nil {
		return fmt.Errorf("error opening input: %w", err)
	}
	evtCount := hitReader.CountEvents()
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Number of events: %d, to process: %d", evtCount,
			numberOfEventsToProcess(evtCount, config.Skip, config.MaxEvents))
		logger.Info(message, "main")
	}

	var writer *actar.Writer
	if config.WriteData {
		writer, err = actar.NewWriter(config.FileOut)
		if err != nil {
			return fmt.Errorf("error creating output: %w", err)
		}
	}

	start := time.Now()
	evtsProcessed := 0
	var writeErr error
	handle := func(result actar.EventResult) {
		evtsProcessed++
		if writeErr != nil {
			return
		}
		writeErr = actar.ProcessEventResult(result, config, writer)
	}

	reader := NewEventReader(hitReader, config.Skip, config.MaxEvents)
	if config.Parallel && config.NumWorkers > 1 {
		runParallel(reader, config.NumWorkers, config, metrics, handle)
	} else {
		runSequential(reader, config, metrics, handle)
	}

	var closeErr error
	if writer != nil {
		closeErr = writer.Close()
	}
	logger.Info(fmt.Sprintf("Total events processed: %d", evtsProcessed), "main")
	logger.Info(fmt.Sprintf("Total time: %d ms", time.Since(start).Milliseconds()), "main")
	return errors.Join(writeErr, closeErr)
}

func serveMetrics(addr string, registry *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	logger.Info(fmt.Sprintf("Serving metrics on %s", addr), "metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error(fmt.Errorf("metrics server stopped: %w", err).Error())
	}
}
