// Package main is the entry point for the jiratime CLI.
package main

import (
	"fmt"
	"os"

	"github.com/intapp/jiratime/cmd"
	"github.com/intapp/jiratime/internal/logging"
)

func main() {
	if err := cmd.Execute(); err != nil {
		logging.Error("command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
