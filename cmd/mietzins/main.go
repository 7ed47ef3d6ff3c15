package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/swissrent/mietzins/internal/config"
	"github.com/swissrent/mietzins/internal/refdata"
	"github.com/swissrent/mietzins/internal/rent"
	"github.com/swissrent/mietzins/internal/server"
	"github.com/swissrent/mietzins/pkg/constants"
	"github.com/swissrent/mietzins/pkg/output"
	"github.com/swissrent/mietzins/pkg/validation"
)

var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "console"
	}

	// Configure encoder
	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	fetchOnly := flag.Bool("fetch-only", false, "fetch and print the reference data without calculating")
	serve := flag.Bool("serve", false, "run the HTTP API instead of a one-shot calculation")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	currentRent := flag.Float64("current-rent", 0, "current monthly net rent in CHF")
	investment := flag.Float64("investment", 0, "total investment in CHF")
	valueShare := flag.Float64("value-share", 0, "value-increasing share of the investment in percent")
	lifespan := flag.Float64("lifespan", 0, "lifespan of the investment in years")
	maintenanceRate := flag.Float64("maintenance-rate", 0, "maintenance surcharge in percent (default 10)")
	flag.Parse()

	// Load the config file to get source URLs and logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	fetcher := refdata.NewFetcher(conf, logger)

	if *serve {
		serverConf, err := server.LoadConfig(*serverConfigLocation)
		if err != nil {
			logger.Fatal("failed to load server configuration",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		handler := server.NewHandler(logger, fetcher, version)
		logger.Info("listening",
			zap.String("op", "main"),
			zap.String("address", serverConf.Address),
		)
		if err := http.ListenAndServe(serverConf.Address, handler); err != nil {
			logger.Fatal("server stopped",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	ctx := context.Background()

	if *fetchOnly {
		data, err := fetcher.Fetch(ctx)
		if err != nil {
			logger.Fatal("failed to fetch reference data",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		switch outputFormat {
		case constants.OutputFormatPretty:
			output.ReferencePretty(data)
		case constants.OutputFormatCSV:
			output.ReferenceCsv(data)
		}
		return
	}

	input := rent.Input{
		CurrentRent:     *currentRent,
		Investment:      *investment,
		ValueShareRate:  *valueShare,
		LifespanYears:   *lifespan,
		MaintenanceRate: *maintenanceRate,
	}

	adjustment, err := rent.CalculateCurrent(ctx, logger, fetcher, input)
	if err != nil {
		logger.Fatal("failed to compute rent adjustment",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.RentPretty(adjustment)
	case constants.OutputFormatCSV:
		output.RentCsv(adjustment)
	}
}
