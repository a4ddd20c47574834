// Package main is the entry point for the kedit terminal editor.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/kedit/internal/app"
	"github.com/dshills/kedit/internal/clipboard"
	"github.com/dshills/kedit/internal/config"
	"github.com/dshills/kedit/internal/input/keymap"
	"github.com/dshills/kedit/internal/logging"
	"github.com/dshills/kedit/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// flags holds command line values. Only flags given explicitly override
// the settings file.
type flags struct {
	configPath string
	readOnly   bool
	language   string
	highlight  string
	logLevel   string
	logFile    string
	file       string
	set        map[string]bool
}

func main() {
	os.Exit(run())
}

func run() int {
	f := parseFlags()

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: kedit must run in a terminal")
		return 1
	}

	cfg, err := loadConfig(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger, closeLog, err := logging.New(logging.Config{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	// Create terminal backend
	screen, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	application, err := app.New(app.Options{
		Config:     cfg,
		ConfigPath: f.configPath,
		File:       f.file,
		Backend:    screen,
		Clipboard:  clipboard.Default(),
		Logger:     logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting", "version", version, "file", f.file)
	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig reads the settings file, then the environment, then the
// explicitly given flags.
func loadConfig(f flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if f.set["readonly"] || f.set["R"] {
		cfg.Editor.ReadOnly = f.readOnly
	}
	if f.set["lang"] {
		cfg.Editor.Language = f.language
	}
	if f.set["highlight"] {
		cfg.Editor.Highlight = f.highlight
	}
	if f.set["log-level"] {
		cfg.Log.Level = f.logLevel
	}
	if f.set["log-file"] {
		cfg.Log.File = f.logFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaultConfigPath returns the user settings file, or "" when the user
// config directory is unknown.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "kedit", "settings.toml")
}

func parseFlags() flags {
	var f flags
	var showVersion bool
	var showHelp bool

	flag.StringVar(&f.configPath, "config", defaultConfigPath(), "Path to configuration file (.toml or .yaml)")
	flag.StringVar(&f.configPath, "c", defaultConfigPath(), "Path to configuration file (shorthand)")
	flag.BoolVar(&f.readOnly, "readonly", false, "Open the file in read-only mode")
	flag.BoolVar(&f.readOnly, "R", false, "Open the file in read-only mode (shorthand)")
	flag.StringVar(&f.language, "lang", "", "Language tag for files without an extension (e.g. go, md)")
	flag.StringVar(&f.highlight, "highlight", config.DefaultHighlight, "Highlighting: none, grammar or grammar+override")
	flag.StringVar(&f.logLevel, "log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	flag.StringVar(&f.logFile, "log-file", "", "Write logs to this file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "kedit - terminal text editor component demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: kedit [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKey bindings:\n")
		for _, line := range keymap.DefaultGlobalKeymap().Help() {
			fmt.Fprintf(os.Stderr, "  %s\n", line)
		}
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  kedit                       Open the built-in sample\n")
		fmt.Fprintf(os.Stderr, "  kedit main.go               Open a file\n")
		fmt.Fprintf(os.Stderr, "  kedit -R -highlight none x  Open a file read-only without colours\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("kedit %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	f.set = make(map[string]bool)
	flag.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })

	if flag.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: kedit opens a single file")
		os.Exit(1)
	}
	f.file = flag.Arg(0)

	return f
}
