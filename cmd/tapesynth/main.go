// cmd/tapesynth/main.go
package main

import (
	"errors"
	"fmt"
	"os"

	"tapesynth/cmd/tapesynth/commands"
	"tapesynth/internal/errcode"
)

// commandAliases mirrors the short forms a frequent user reaches for.
var commandAliases = map[string]string{
	"r": "run",
	"s": "search",
	"t": "tui",
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		showUsage()
		os.Exit(1)
	}

	cmd := args[0]
	if alias, ok := commandAliases[cmd]; ok {
		cmd = alias
	}

	if cmd == "--help" || cmd == "-h" || cmd == "help" {
		showUsage()
		return
	}

	var err error
	switch cmd {
	case "run":
		err = commands.RunCommand(args[1:])
	case "search":
		err = commands.SearchCommand(args[1:])
	case "tui":
		err = commands.TUICommand(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "tapesynth: unknown command %q\n\n", args[0])
		showUsage()
		os.Exit(1)
	}

	if err != nil {
		exitOn(err)
	}
}

// exitOn reports err and sets the process exit code by the error taxonomy
// (spec.md §7): a UserError is a diagnostic and nothing more; anything else
// (including a Fatal) aborts the same way, since both mean the command
// could not do what it was asked.
func exitOn(err error) {
	var userErr *errcode.UserError
	if errors.As(err, &userErr) {
		fmt.Fprintln(os.Stderr, "tapesynth:", userErr.Error())
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, "tapesynth: fatal:", err)
	os.Exit(1)
}

func showUsage() {
	fmt.Fprint(os.Stderr, `tapesynth - minimal tape-machine program synthesis

Usage:
  tapesynth run    {--input S | --file P}
  tapesynth search {--target S | --file P} [--format json|xml|txt] [--multithread]
  tapesynth tui

Run 'tapesynth <command> --help' for flags specific to a command.
`)
}
