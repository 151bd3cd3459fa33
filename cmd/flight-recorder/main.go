package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ciberfox/flight-recorder/internal/config"
	"github.com/ciberfox/flight-recorder/internal/recorder"
	"github.com/ciberfox/flight-recorder/internal/report"
	"github.com/ciberfox/flight-recorder/internal/store"
	"github.com/ciberfox/flight-recorder/internal/timeline"
)

// Exit codes: 1 for general failures, 2 when the flight database
// cannot be opened.
const (
	exitOK      = 0
	exitFailure = 1
	exitConnect = 2
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitFailure)
	}

	switch os.Args[1] {
	case "report":
		os.Exit(runReport(os.Args[2:]))
	case "record":
		os.Exit(runRecord(os.Args[2:]))
	default:
		printUsage()
		os.Exit(exitFailure)
	}
}

func printUsage() {
	fmt.Println("Usage: flight-recorder <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  report [--db PATH] [--config PATH]                    Print the uptime timeline report")
	fmt.Println("  record [--db PATH] [--config PATH] [--heartbeat 30s]  Record flights until interrupted")
	fmt.Println()
}

// loadConfig builds the effective configuration from defaults, an
// optional config file, and flag overrides.
func loadConfig(configPath, dbPath string) (config.Config, error) {
	cfg := config.DefaultConfig()

	if configPath != "" {
		if err := cfg.LoadFile(configPath); err != nil {
			return cfg, err
		}
	}
	if dbPath != "" {
		cfg.Database = dbPath
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runReport(args []string) int {
	reportCmd := flag.NewFlagSet("report", flag.ExitOnError)
	dbPath := reportCmd.String("db", "", "path to the flight database")
	configPath := reportCmd.String("config", "", "path to a YAML config file")
	reportCmd.Parse(args)

	cfg, err := loadConfig(*configPath, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailure
	}

	st, err := store.OpenReadOnly(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitConnect
	}
	defer st.Close()

	flights, err := st.Flights(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailure
	}

	events := timeline.NewAggregator(timeline.NewMerger(timeline.Boundaries(flights)))
	if err := report.NewRenderer(os.Stdout).Render(events); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailure
	}

	return exitOK
}

func runRecord(args []string) int {
	recordCmd := flag.NewFlagSet("record", flag.ExitOnError)
	dbPath := recordCmd.String("db", "", "path to the flight database")
	configPath := recordCmd.String("config", "", "path to a YAML config file")
	heartbeat := recordCmd.Duration("heartbeat", 0, "interval between heartbeats (overrides config)")
	recordCmd.Parse(args)

	cfg, err := loadConfig(*configPath, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailure
	}
	if *heartbeat != 0 {
		cfg.Heartbeat = *heartbeat
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
			return exitFailure
		}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailure
	}

	st, err := store.Open(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitConnect
	}
	defer st.Close()

	rec := recorder.NewRecorder(st, cfg.Heartbeat)
	if err := rec.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailure
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	sig := <-shutdown
	log.Printf("Received signal: %v", sig)
	rec.Stop()

	return exitOK
}
