package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/finaly55/opti-credit/internal/cache"
	"github.com/finaly55/opti-credit/internal/config"
	"github.com/finaly55/opti-credit/internal/logging"
	"github.com/finaly55/opti-credit/internal/optimizer"
	"github.com/finaly55/opti-credit/internal/simulation"
	"github.com/finaly55/opti-credit/pkg/constants"
	"github.com/finaly55/opti-credit/pkg/output"
	"github.com/finaly55/opti-credit/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, pdf")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	store, err := cache.New(cache.Options{
		Backend:    conf.Cache.Backend,
		Address:    conf.Cache.Address,
		Password:   conf.Cache.Password,
		DB:         conf.Cache.DB,
		TTL:        conf.Cache.TTL,
		MaxEntries: conf.Cache.MaxEntries,
	})
	if err != nil {
		logger.Fatal("failed to initialize cache",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	sim := cache.NewSimulator(logger, simulation.NewEngine(logger), store)

	params := conf.Simulation.Params
	report := output.Report{
		Analysis: simulation.Analyze(sim, params, conf.Simulation.CustomExpenses, conf.Simulation.TargetYear),
	}

	if conf.Optimizer != nil {
		runner, err := optimizer.NewRunner(logger, sim, conf.Optimizer)
		if err != nil {
			logger.Warn("optimizer skipped",
				zap.String("op", "main"),
				zap.Error(err),
			)
		} else {
			summary := runner.Run(params, conf.Simulation.CustomExpenses, conf.Simulation.TargetYear)
			report.Optimization = &summary
		}
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, report)
	case constants.OutputFormatCSV:
		if err := output.CsvFormat(os.Stdout, report); err != nil {
			logger.Fatal("failed to write csv output",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	case constants.OutputFormatPDF:
		if err := writePDF(report, conf.Output.File); err != nil {
			logger.Fatal("failed to write pdf report",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}
}

func writePDF(report output.Report, path string) error {
	if path == "" {
		path = constants.DefaultPDFFile
	}

	data, err := output.PDFReport(report)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Printf("Report written to %s\n", path)
	return nil
}
