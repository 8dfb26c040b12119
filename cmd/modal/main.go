// Package main is the entry point for the modal editor.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/jessevdk/go-flags"

	"github.com/dshills/modal/internal/app"
	"github.com/dshills/modal/internal/input/key"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

// Options are the command line flags.
type Options struct {
	Config    string `short:"c" long:"config" description:"Path to the configuration file (.toml, .yaml, .yml or .lua)"`
	LogLevel  string `long:"log-level" choice:"debug" choice:"info" choice:"warn" choice:"error" description:"Log level"`
	LogFile   string `long:"log-file" description:"Write logs to this file"`
	MacroFile string `long:"macro-file" description:"Keep recorded macros in this file between sessions"`
	Keys      string `long:"keys" description:"Run these keys without a terminal and print the buffer"`
	ReadOnly  bool   `short:"R" long:"readonly" description:"Open the file read-only"`
	Version   bool   `short:"v" long:"version" description:"Show version information"`

	Args struct {
		File string `positional-arg-name:"file"`
	} `positional-args:"yes"`
}

func main() {
	os.Exit(run())
}

func run() int {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return 0
		}
		return 2
	}
	if opts.Version {
		fmt.Printf("modal %s (%s)\n", version, commit)
		return 0
	}

	var keys key.Sequence
	if opts.Keys != "" {
		var err error
		if keys, err = key.ParseSequence(opts.Keys); err != nil {
			fmt.Fprintf(os.Stderr, "Error: --keys: %v\n", err)
			return 2
		}
	}

	application, err := app.New(app.Options{
		ConfigPath: opts.Config,
		File:       opts.Args.File,
		ReadOnly:   opts.ReadOnly,
		LogLevel:   opts.LogLevel,
		LogFile:    opts.LogFile,
		MacroFile:  opts.MacroFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer func() {
		if err := application.Shutdown(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.Keys != "" {
		if err := application.RunKeys(ctx, keys); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Print(application.Editor().Text())
		return 0
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	err = application.Run(ctx, screen)
	screen.Fini()
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
