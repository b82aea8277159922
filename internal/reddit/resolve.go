package reddit

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const (
	// moreBatchSize is the upstream ceiling on ids per continuation request.
	moreBatchSize = 100
	// moreConcurrency caps in-flight continuation requests.
	moreConcurrency = 4
)

// resolveMore fetches the flat entries for every collected child id, in
// batches of moreBatchSize. Batches run concurrently but results are
// indexed back to batch position, so the returned concatenation order is
// batch order regardless of completion order. A batch that fails is
// skipped; its ids are lost for this reconstruction and the rest proceed.
// If every batch fails the result is empty, never an error.
func resolveMore(ctx context.Context, api ThreadAPI, linkID string, childIDs []string) []Thing {
	if len(childIDs) == 0 {
		return nil
	}

	var batches [][]string
	for start := 0; start < len(childIDs); start += moreBatchSize {
		end := start + moreBatchSize
		if end > len(childIDs) {
			end = len(childIDs)
		}
		batches = append(batches, childIDs[start:end])
	}

	results := make([][]Thing, len(batches))
	var g errgroup.Group
	g.SetLimit(moreConcurrency)
	for i, batch := range batches {
		g.Go(func() error {
			things, err := api.GetMoreChildren(ctx, linkID, batch)
			if err != nil {
				// Skip the batch; no retry within a resolution pass.
				return nil
			}
			results[i] = things
			return nil
		})
	}
	_ = g.Wait() // goroutines never report errors

	var out []Thing
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}

// flattenStubs returns the union of every stub's child ids in stub
// discovery order, then within-stub order.
func flattenStubs(stubs []MoreStub) []string {
	var ids []string
	for _, s := range stubs {
		ids = append(ids, s.Children...)
	}
	return ids
}
