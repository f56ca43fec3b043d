package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/resworb"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	Home        string
	GOOS        string
	OpenBrowser func(name, library string) (*resworb.Browser, error)
	Writer      resworb.ExportWriter
	Formatters  []resworb.Formatter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	LogFile string `name:"log-file" env:"RESWORB_LOG_FILE" help:"Also write logs to this file, rotated"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Export   ExportCmd   `cmd:"" help:"Export browser data to a file"`
	Browsers BrowsersCmd `cmd:"" help:"List supported browsers and their default libraries"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Browser        string        `short:"b" required:"" help:"Browser to export from (chrome, firefox, safari)"`
	Source         []string      `short:"s" help:"Sources to export: opened_tabs, cloud_tabs, readings, bookmarks, histories or all (default: all)"`
	Target         string        `short:"t" required:"" help:"Output file; the extension selects the format"`
	Library        string        `short:"l" env:"RESWORB_LIBRARY" help:"Browser profile directory (default: the platform location)"`
	KeepDuplicates bool          `help:"Keep records whose URL was already exported"`
	NoFormat       bool          `help:"Do not look up page titles"`
	FetchTimeout   time.Duration `env:"RESWORB_FETCH_TIMEOUT" default:"10s" help:"Timeout for page title lookups"`
}

// BrowsersCmd is the "browsers" subcommand.
type BrowsersCmd struct{}
