package commands

import (
	"os"

	"tapesynth/internal/editor"
)

// TUICommand launches the byte-grid editor's command loop against stdin and
// stdout. spec.md scopes the terminal rendering itself out; this wires the
// data contract (internal/editor) to a real process so the subcommand is
// something more than a stub.
func TUICommand(args []string) error {
	g := editor.NewGrid(nil)
	editor.Run(g, os.Stdin, os.Stdout)
	return nil
}
