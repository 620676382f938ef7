package transform

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// applyLoop passes each array element through the ordered sub-transformation
// chain. By default items run concurrently and results are reassembled in
// input order; with parallel=false items run strictly in sequence, in chunks
// of batchSize (chunking changes scheduling granularity only, not
// semantics).
func (e *Executor) applyLoop(ctx context.Context, data any, t *Transformation) (any, error) {
	items, ok := data.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: loop requires an array, got %T", ErrInvalidInput, data)
	}

	if len(t.ItemTransformations) == 0 {
		return nil, fmt.Errorf("%w: loop requires item_transformations", ErrMissingField)
	}

	results := make([]any, len(items))

	if t.parallel() {
		g, gctx := errgroup.WithContext(ctx)

		for i, item := range items {
			g.Go(func() error {
				out, err := e.applyChain(gctx, item, t.ItemTransformations)
				if err != nil {
					return fmt.Errorf("loop item %d: %w", i, err)
				}

				results[i] = out

				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}

		return results, nil
	}

	size := t.batchSize()

	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))

		for i := start; i < end; i++ {
			out, err := e.applyChain(ctx, items[i], t.ItemTransformations)
			if err != nil {
				return nil, fmt.Errorf("loop item %d: %w", i, err)
			}

			results[i] = out
		}
	}

	return results, nil
}

func (e *Executor) applyChain(ctx context.Context, item any, chain []*Transformation) (any, error) {
	var err error

	for _, t := range chain {
		item, err = e.Transform(ctx, item, t)
		if err != nil {
			return nil, err
		}
	}

	return item, nil
}
