// main is the entry point for the perfgate CLI.
package main

import (
	"github.com/perfgate/perfgate/cmd"
	"github.com/perfgate/perfgate/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		cmd.CloseStore()
		contract.LogFatal("Command failed", err)
	}
	cmd.CloseStore()
}
