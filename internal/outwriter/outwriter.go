// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"github.com/perfgate/perfgate/internal/contract"
	"golang.org/x/term"
)

// getMaxTableIDWidth calculates the maximum width for benchmark IDs in
// table output based on terminal width.
func getMaxTableIDWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the numeric columns, table borders and padding
	available := termWidth - 55
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}
