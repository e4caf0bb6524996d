// Package search is the BFS driver (C7): it reads the previous length's
// frontier, extends every parent by the allowed canonical-form instructions,
// classifies each child with the interpreter, and either returns a solution,
// persists the child to the current length's frontier, or drops it.
package search

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/dustin/go-humanize"

	"tapesynth/internal/code"
	"tapesynth/internal/concurrency"
	"tapesynth/internal/dedup"
	"tapesynth/internal/errcode"
	"tapesynth/internal/frontier"
	"tapesynth/internal/interp"
	"tapesynth/internal/machine"
	"tapesynth/internal/seed"
)

// DefaultMaxLength is the length cap used when Options.MaxLength is unset.
// spec.md §4.5 leaves the cap to the implementation; a few dozen
// instructions covers every scenario in §8 at the configured tape width.
const DefaultMaxLength = 40

// dedupCapacityHint sizes each worker's dedup filter map. spec.md §4.7:
// "expected capacity on the order of millions" for a full search; a far
// smaller hint keeps small searches cheap since Go maps grow on demand
// anyway.
const dedupCapacityHint = 4096

// Options configures a search run.
type Options struct {
	Target      []byte
	MaxLength   int
	Multithread bool
	Workers     int
	Resume      bool
	Dir         string
}

func resolveDir(dir string) string {
	if dir != "" {
		return dir
	}
	return filepath.Join(os.TempDir(), "tapesynth-search")
}

func resolveWorkers(opts Options) int {
	if !opts.Multithread {
		return 1
	}
	if opts.Workers > 0 {
		return opts.Workers
	}
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return n
}

// Search runs the BFS from initial until it finds a program whose execution
// on a zero tape emits exactly Options.Target, or exhausts Options.MaxLength.
// The frontier lives under Options.Dir (a temp directory by default), one
// file per length, so the search never needs the whole state space resident
// at once (spec.md §4.6).
func Search(ctx context.Context, initial *seed.Seed, opts Options) (*code.Packed, error) {
	dir := resolveDir(opts.Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errcode.Wrap(err, "creating frontier directory "+dir)
	}

	const width = machine.Width
	maxLen := opts.MaxLength
	if maxLen <= 0 {
		maxLen = DefaultMaxLength
	}
	workers := resolveWorkers(opts)

	if interp.Run(initial, opts.Target, interp.NewWorkspace()).Outcome == interp.Success {
		return initial.Code, nil
	}

	start := initial.Code.Size()
	if !(opts.Resume && frontier.Exists(dir, width, start)) {
		if err := writeFrontier(dir, width, start, []*seed.Seed{initial}); err != nil {
			return nil, err
		}
	}
	if opts.Resume {
		for frontier.Exists(dir, width, start+1) {
			start++
		}
	}

	for length := start; length < maxLen; length++ {
		parents, err := loadParents(dir, width, length)
		if err != nil {
			return nil, err
		}
		if len(parents) == 0 {
			return nil, errcode.Newf("search: frontier at length %d is empty, nothing to extend", length)
		}

		solution, children, err := extendLength(ctx, parents, opts.Target, workers)
		if err != nil {
			return nil, err
		}
		if solution != nil {
			return solution, nil
		}
		log.Printf("search: length %s -> %s seeds at length %d",
			humanize.Comma(int64(length)), humanize.Comma(int64(len(children))), length+1)
		if err := writeFrontier(dir, width, length+1, children); err != nil {
			return nil, err
		}
	}

	return nil, errcode.Newf("search: exhausted to maximum configured length %d with no solution", maxLen)
}

func writeFrontier(dir string, width, length int, seeds []*seed.Seed) error {
	w, err := frontier.NewWriter(dir, width, length, 0)
	if err != nil {
		return err
	}
	for _, s := range seeds {
		w.Append(s)
	}
	return w.Flush()
}

func loadParents(dir string, width, length int) ([]*seed.Seed, error) {
	r, err := frontier.OpenReader(dir, width, length)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var out []*seed.Seed
	for {
		s, err := r.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return out, err
		}
		out = append(out, s)
	}
	return out, nil
}

type shardResult struct {
	solution *code.Packed
	children []*seed.Seed
}

// extendLength shards parents across workers, each with its own interpreter
// Workspace and dedup Filter (spec.md §5: "per-thread interpreter scratch
// structures ... joined at length boundaries"), then joins everything before
// this length is declared done.
func extendLength(ctx context.Context, parents []*seed.Seed, target []byte, workers int) (*code.Packed, []*seed.Seed, error) {
	if workers > len(parents) {
		workers = len(parents)
	}
	if workers < 1 {
		workers = 1
	}
	chunks := chunkParents(parents, workers)
	results := make([]shardResult, len(chunks))

	err := concurrency.Shard(ctx, len(chunks), len(chunks), func(i int) error {
		ws := interp.NewWorkspace()
		filter := dedup.New(dedupCapacityHint)
		solution, children := extendChunk(chunks[i], target, ws, filter)
		results[i] = shardResult{solution: solution, children: children}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	var allChildren []*seed.Seed
	for _, r := range results {
		if r.solution != nil {
			return r.solution, nil, nil
		}
		allChildren = append(allChildren, r.children...)
	}
	return nil, allChildren, nil
}

func chunkParents(parents []*seed.Seed, workers int) [][]*seed.Seed {
	chunks := make([][]*seed.Seed, 0, workers)
	n := len(parents)
	base := n / workers
	rem := n % workers
	start := 0
	for i := 0; i < workers; i++ {
		size := base
		if i < rem {
			size++
		}
		if size == 0 {
			continue
		}
		chunks = append(chunks, parents[start:start+size])
		start += size
	}
	return chunks
}

// extendChunk runs one shard's parents to completion: every allowed
// extension of every parent, classified by the interpreter (spec.md §4.5).
// A Success short-circuits the whole chunk immediately — BFS order means
// the first Success found anywhere is already minimal-length.
func extendChunk(parents []*seed.Seed, target []byte, ws *interp.Workspace, filter *dedup.Filter) (*code.Packed, []*seed.Seed) {
	var children []*seed.Seed
	for _, parent := range parents {
		for _, ins := range candidates(parent) {
			child := extend(parent, ins)
			result := interp.Run(child, target, ws)

			switch result.Outcome {
			case interp.Success:
				return child.Code, nil
			case interp.IncompleteLoopSuccess:
				child.Resume = result.Resume
				children = append(children, child)
			case interp.IncompleteOutputSuccess:
				child.Resume = result.Resume
				if !filter.SeenOrInsert(dedup.Key(result.Resume)) {
					children = append(children, child)
				}
			}
		}
	}
	return nil, children
}
