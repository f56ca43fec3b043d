package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"log/slog"
	"os"
	"runtime"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/fwojciec/resworb"
	"github.com/fwojciec/resworb/browser"
	"github.com/fwojciec/resworb/etree"
	"github.com/fwojciec/resworb/fs"
	"github.com/fwojciec/resworb/gob"
	"github.com/fwojciec/resworb/goquery"
	resworbhttp "github.com/fwojciec/resworb/http"
	"github.com/fwojciec/resworb/json"
	resworbslog "github.com/fwojciec/resworb/slog"
	"github.com/fwojciec/resworb/toml"
	"github.com/fwojciec/resworb/yaml"
	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Home directory and operating system used to find default libraries.
	Home string
	GOOS string

	// EnvFile is loaded into the environment before parsing flags.
	EnvFile string

	// OpenBrowser resolves a browser by name. Replaced in tests.
	OpenBrowser func(name, library string) (*resworb.Browser, error)

	// Fetcher used by title formatters. Created from flags when nil.
	Fetcher resworb.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	home, _ := os.UserHomeDir()
	return &Main{
		Home:        home,
		GOOS:        runtime.GOOS,
		EnvFile:     ".env",
		OpenBrowser: browser.New,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// A missing .env file is fine; flags and the environment still apply.
	if err := godotenv.Load(m.EnvFile); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", m.EnvFile, err)
	}

	deps := &Dependencies{
		Ctx:         ctx,
		Stdout:      stdout,
		Stderr:      stderr,
		Home:        m.Home,
		GOOS:        m.GOOS,
		OpenBrowser: m.OpenBrowser,
		Writer:      NewWriter(),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("resworb"),
		kong.Description("Export tabs, reading lists, bookmarks and history from web browsers."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'resworb --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger, closeLog := newLogger(stderr, cli.LogFile, cli.Verbose)
	defer closeLog.Close()
	deps.Logger = logger

	// Root flags may precede the command, so ask the parser what was selected.
	if kongCtx.Command() == "export" && !cli.Export.NoFormat {
		fetcher := m.Fetcher
		if fetcher == nil {
			fetcher = resworbhttp.NewFetcher(
				resworbhttp.WithTimeout(cli.Export.FetchTimeout),
				resworbhttp.WithRateLimit(1.0),
			)
		}
		defer fetcher.Close()

		fetcher = resworbslog.NewLoggingFetcher(fetcher, logger)
		deps.Formatters = []resworb.Formatter{
			resworbslog.NewLoggingFormatter(goquery.NewWeixinFormatter(fetcher), logger),
		}
	}

	return kongCtx.Run(deps)
}

// NewWriter returns an export writer with every supported file format.
func NewWriter() *fs.Writer {
	w := fs.NewWriter()
	w.Register(".json", json.NewEncoder())
	w.Register(".yml", yaml.NewEncoder())
	w.Register(".yaml", yaml.NewEncoder())
	w.Register(".toml", toml.NewEncoder())
	w.Register(".xml", etree.NewEncoder())
	w.Register(".gob", gob.NewEncoder())
	return w
}

// newLogger returns a logger writing to stderr and, when logFile is set,
// to a rotated log file. The returned closer releases the file.
func newLogger(stderr io.Writer, logFile string, verbose bool) (*slog.Logger, io.Closer) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	var out io.Writer = stderr
	var closer io.Closer = nopCloser{}
	if logFile != "" {
		lj := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
		out = io.MultiWriter(stderr, lj)
		closer = lj
	}

	handler := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	return slog.New(handler), closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
