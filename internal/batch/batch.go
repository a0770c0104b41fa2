// Package batch produces several puzzles from one dictionary, regenerating
// each one until it validates.
package batch

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"crosswarped.com/freeform"
	"crosswarped.com/freeform/internal/dictionary"
)

// ErrNoValidPuzzle means every attempt produced a puzzle that failed validation.
var ErrNoValidPuzzle = errors.New("no valid puzzle")

type Params struct {
	Generator freeform.GeneratorParams
	// Seed makes the batch reproducible: puzzle i always uses the stream (Seed, i).
	Seed uint64
	// Attempts is how many puzzles are generated for each slot before giving up.
	Attempts int
	// Concurrency bounds the puzzles generated at once. Zero means no limit.
	Concurrency int
}

type Result struct {
	Puzzle   *freeform.Puzzle
	Stats    freeform.Stats
	Report   freeform.Report
	Attempts int
}

// UntilValid generates puzzles with rng until one passes validation, at most
// attempts times. A generator error stops the loop at once.
func UntilValid(ctx context.Context, d dictionary.Dictionary, rng *rand.Rand, params freeform.GeneratorParams, attempts int) (Result, error) {
	g, err := freeform.CreateGenerator(d, rng, params)
	if err != nil {
		return Result{}, err
	}
	logger := params.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	attempts = max(attempts, 1)
	var last Result
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		p, stats, err := g.Generate()
		if err != nil {
			return Result{}, err
		}
		last = Result{Puzzle: p, Stats: stats, Report: freeform.Validate(p, d), Attempts: attempt}
		if last.Report.OK() {
			return last, nil
		}
		logger.Warn("puzzle failed validation", "id", p.ID, "attempt", attempt, "report", last.Report.String())
	}
	return last, fmt.Errorf("after %d attempts: %w", attempts, ErrNoValidPuzzle)
}

// Produce generates count valid puzzles concurrently. Results are in slot
// order and do not depend on scheduling.
func Produce(ctx context.Context, d dictionary.Dictionary, count int, params Params) ([]Result, error) {
	results := make([]Result, count)
	eg, ctx := errgroup.WithContext(ctx)
	if params.Concurrency > 0 {
		eg.SetLimit(params.Concurrency)
	}
	for i := range count {
		eg.Go(func() error {
			rng := rand.New(rand.NewPCG(params.Seed, uint64(i)))
			r, err := UntilValid(ctx, d, rng, params.Generator, params.Attempts)
			if err != nil {
				return fmt.Errorf("puzzle %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Distinct yields valid puzzles one at a time, skipping any whose grid has
// already been yielded, until ctx is done, a generator error occurs, or the
// consumer stops.
func Distinct(ctx context.Context, d dictionary.Dictionary, rng *rand.Rand, params Params) iter.Seq2[Result, error] {
	return func(yield func(Result, error) bool) {
		seenReprs := make(map[string]bool)
		for ctx.Err() == nil {
			r, err := UntilValid(ctx, d, rng, params.Generator, params.Attempts)
			if errors.Is(err, ErrNoValidPuzzle) {
				continue
			}
			if err != nil {
				if ctx.Err() == nil {
					yield(Result{}, err)
				}
				return
			}
			repr := r.Puzzle.Grid.Repr()
			if seenReprs[repr] {
				continue
			}
			seenReprs[repr] = true
			if !yield(r, nil) {
				return
			}
		}
	}
}
