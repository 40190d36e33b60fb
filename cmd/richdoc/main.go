// Package main is the entry point for the richdoc editor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/richdoc/internal/app"
	"github.com/dshills/richdoc/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if opts.Batch() {
		opts.LogOutput = os.Stderr
	}
	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	if opts.Batch() {
		if err := application.RunBatch(ctx, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
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
	screen.EnablePaste()

	err = application.RunInteractive(ctx, screen)
	screen.Fini()
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() app.Options {
	var opts app.Options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.Watch, "watch", false, "Reload the file when it changes on disk")
	flag.StringVar(&opts.Script, "script", "", "Run a Lua script against the document and exit")
	flag.BoolVar(&opts.Write, "w", false, "Write the document back to the file after a batch run")
	flag.BoolVar(&opts.Dump, "dump", false, "Print the document structure as JSON and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "richdoc - rich text editor for markdown documents\n\n")
		fmt.Fprintf(os.Stderr, "Usage: richdoc [options] [file.md]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  richdoc notes.md                     Edit a file\n")
		fmt.Fprintf(os.Stderr, "  richdoc -watch notes.md              Edit, reloading on outside changes\n")
		fmt.Fprintf(os.Stderr, "  richdoc -script fix.lua notes.md     Print the scripted result\n")
		fmt.Fprintf(os.Stderr, "  richdoc -script fix.lua -w notes.md  Apply a script in place\n")
		fmt.Fprintf(os.Stderr, "  richdoc -dump notes.md               Print the block structure\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("richdoc %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.LogLevel != "" {
		if _, err := logging.ParseLevel(opts.LogLevel); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
	}

	switch flag.NArg() {
	case 0:
	case 1:
		opts.File = flag.Arg(0)
	default:
		flag.Usage()
		os.Exit(2)
	}
	return opts
}
