package commands

import (
	"fmt"
	"os"

	"tapesynth/internal/code"
	"tapesynth/internal/errcode"
	"tapesynth/internal/interp"
)

// RunCommand executes a user-supplied program against stdin/stdout with no
// search target. Bytes outside the eight-instruction alphabet are skipped
// as comments, the usual tape-machine-language convention — a --file
// program can carry whitespace and commentary freely.
func RunCommand(args []string) error {
	fs := flagSet("run")
	input := fs.String("input", "", "program source, given literally")
	file := fs.String("file", "", "path to a file containing the program source")
	if err := fs.Parse(args); err != nil {
		return err
	}

	source, err := resolveSource(*input, *file)
	if err != nil {
		return err
	}

	p := parseSource(source)
	jt, err := code.NewJumpTable(p)
	if err != nil {
		if u, ok := err.(*code.Unmatched); ok {
			return errcode.NewUnmatchedClose(u.Index)
		}
		return fmt.Errorf("run: compiling program: %w", err)
	}

	return interp.RunLive(p, jt, os.Stdin, os.Stdout)
}

func parseSource(text string) *code.Packed {
	insns := make([]code.Instruction, 0, len(text))
	for i := 0; i < len(text); i++ {
		if ins, ok := code.ParseInstruction(text[i]); ok {
			insns = append(insns, ins)
		}
	}
	return code.Pack(insns)
}

func resolveSource(input, file string) (string, error) {
	switch {
	case input != "" && file != "":
		return "", fmt.Errorf("run: --input and --file are mutually exclusive")
	case input != "":
		return input, nil
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("run: reading %s: %w", file, err)
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("run: one of --input or --file is required")
	}
}
