// Package main is the entry point for the sshsel binary.
//
// sshsel turns a user's possibly multi-file SSH client configuration into a
// deduplicated table of connectable hosts and hands it to an interactive
// fuzzy selector, so a shell widget can complete and run ssh commands from a
// single keystroke.
//
// Usage:
//
//	sshsel                  # interactive selection via fzf
//	sshsel hosts            # list the parsed host table
//	sshsel browse           # built-in picker, no fzf required
//	sshsel shell-init zsh   # print the shell widget
//
// The CLI is constructed in internal/cli. This file simply wires it up and
// handles top-level error reporting.
package main

import (
	"fmt"
	"os"

	"sshsel/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
