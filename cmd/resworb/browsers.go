package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/resworb/browser"
)

// Run executes the browsers command.
func (c *BrowsersCmd) Run(deps *Dependencies) error {
	for _, name := range browser.Names() {
		library, err := browser.DefaultLibrary(name, deps.GOOS, deps.Home)
		if err != nil {
			fmt.Fprintf(deps.Stdout, "%-8s %-11s\n", name, "unsupported")
			continue
		}

		b, err := deps.OpenBrowser(name, library)
		if err != nil {
			fmt.Fprintf(deps.Stdout, "%-8s %-11s %s\n", name, "not found", library)
			continue
		}

		var caps []string
		for _, c := range b.Capabilities() {
			caps = append(caps, string(c))
		}
		fmt.Fprintf(deps.Stdout, "%-8s %-11s %s\n", name, "found", library)
		fmt.Fprintf(deps.Stdout, "         sources: %s\n", strings.Join(caps, ", "))
	}
	return nil
}
