// Package commands implements tapesynth's three subcommands. Each gets its
// own flag.FlagSet rather than the hand-rolled os.Args parsing the teacher
// command layer used — these subcommands need typed, validated flags
// (--format json|xml|txt, --multithread) that a plain switch over args
// would just reimplement.
package commands

import (
	"flag"
	"os"
)

func flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}
