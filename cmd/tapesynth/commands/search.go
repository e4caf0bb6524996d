package commands

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"

	"tapesynth/internal/search"
)

// solutionReport is the only payload search --format needs, so it uses the
// standard library's own encoding/json and encoding/xml rather than a
// third-party codec — there is nothing here a schema-driven library would
// buy back (see DESIGN.md).
type solutionReport struct {
	XMLName xml.Name `xml:"solution" json:"-"`
	Program string   `json:"program" xml:"program"`
	Length  int      `json:"length" xml:"length"`
}

// SearchCommand decodes a target byte sequence and invokes the synthesis
// core, printing the discovered minimal program in the requested format.
func SearchCommand(args []string) error {
	fs := flagSet("search")
	target := fs.String("target", "", "target byte sequence, given literally")
	file := fs.String("file", "", "path to a file containing the target bytes")
	start := fs.String("start", "", "starting program (default: empty)")
	format := fs.String("format", "txt", "output format: json|xml|txt")
	multithread := fs.Bool("multithread", false, "shard the BFS driver across worker goroutines")
	maxLength := fs.Int("max-length", 0, "length cap (0 = package default)")
	resume := fs.Bool("resume", false, "resume from an existing frontier cache")
	dir := fs.String("dir", "", "frontier cache directory (default: a temp directory)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	targetBytes, err := resolveTarget(*target, *file)
	if err != nil {
		return err
	}

	initial, err := search.Preprocess(*start)
	if err != nil {
		return err
	}

	sol, err := search.Search(context.Background(), initial, search.Options{
		Target:      targetBytes,
		MaxLength:   *maxLength,
		Multithread: *multithread,
		Resume:      *resume,
		Dir:         *dir,
	})
	if err != nil {
		return err
	}

	return printSolution(sol.Display(), *format)
}

func resolveTarget(target, file string) ([]byte, error) {
	if target != "" && file != "" {
		return nil, fmt.Errorf("search: --target and --file are mutually exclusive")
	}
	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("search: reading %s: %w", file, err)
		}
		return b, nil
	}
	return []byte(target), nil
}

func printSolution(program, format string) error {
	report := solutionReport{Program: program, Length: len(program)}
	switch format {
	case "txt":
		fmt.Println(program)
		return nil
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "xml":
		enc := xml.NewEncoder(os.Stdout)
		enc.Indent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
		fmt.Println()
		return nil
	default:
		return fmt.Errorf("search: unknown --format %q", format)
	}
}
