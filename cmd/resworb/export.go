package main

import (
	"fmt"

	"github.com/fwojciec/resworb"
	"github.com/fwojciec/resworb/browser"
	resworbslog "github.com/fwojciec/resworb/slog"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	kinds, err := resworb.ParseCapabilities(c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", resworb.ErrorMessage(err))
		return err
	}

	// Reject unknown formats before reading anything.
	if _, err := deps.Writer.EncoderFor(c.Target); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", resworb.ErrorMessage(err))
		return err
	}

	library := c.Library
	if library == "" {
		library, err = browser.DefaultLibrary(c.Browser, deps.GOOS, deps.Home)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", resworb.ErrorMessage(err))
			fmt.Fprintln(deps.Stderr, "Hint: Use --library to set the browser profile directory")
			return err
		}
	}

	b, err := deps.OpenBrowser(c.Browser, library)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", resworb.ErrorMessage(err))
		return err
	}
	deps.Logger.Debug("browser", "name", b.Name, "library", library, "capabilities", b.Capabilities())

	svc := resworbslog.NewLoggingBrowser(b, deps.Logger)
	result, err := resworb.Export(deps.Ctx, svc, kinds, resworb.ExportOptions{KeepDuplicates: c.KeepDuplicates})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", resworb.ErrorMessage(err))
		return err
	}

	if !c.NoFormat {
		if err := resworb.FormatExport(deps.Ctx, result, deps.Formatters); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", resworb.ErrorMessage(err))
			fmt.Fprintln(deps.Stderr, "Hint: Use --no-format to skip page title lookups")
			return err
		}
	}

	if err := deps.Writer.WriteExport(deps.Ctx, c.Target, result); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", resworb.ErrorMessage(err))
		return err
	}

	deps.Logger.Info("export statistics", "target", c.Target)
	for _, s := range result.Sections {
		deps.Logger.Info("exported", "source", string(s.Capability), "count", s.Count())
	}
	fmt.Fprintf(deps.Stdout, "Exported %d sources to %s\n", len(result.Sections), c.Target)

	return nil
}
