// Package main is the entry point for the inkwell editor.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/inkwell/internal/app"
	"github.com/dshills/inkwell/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type cliOptions struct {
	app.Options
	print bool
}

func main() {
	os.Exit(run())
}

func run() int {
	cli := parseFlags()

	application, err := app.New(cli.Options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if cli.print {
		fmt.Print(application.Document().Text())
	}
	return 0
}

func parseFlags() cliOptions {
	var cli cliOptions
	var showVersion bool

	flag.StringVar(&cli.ConfigPath, "config", "", "Path to configuration file (TOML or YAML)")
	flag.StringVar(&cli.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&cli.Debug, "debug", false, "Log every dispatched action")
	flag.StringVar(&cli.LogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config")
	flag.BoolVar(&cli.ReadOnly, "readonly", false, "Refuse edits")
	flag.BoolVar(&cli.ReadOnly, "R", false, "Refuse edits (shorthand)")
	flag.BoolVar(&cli.print, "p", false, "Print the buffer to stdout on exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "inkwell - markdown editing with bracket pairs\n\n")
		fmt.Fprintf(os.Stderr, "Usage: inkwell [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nCtrl-Q quits.\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("inkwell %s (%s, %s)\n", version, commit, date)
		os.Exit(0)
	}

	switch cli.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", cli.LogLevel)
		os.Exit(1)
	}

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}
	cli.File = flag.Arg(0)
	return cli
}
