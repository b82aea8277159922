package reddit

import "context"

// Thread is a reconstructed discussion: the post plus its ordered
// top-level comments.
type Thread struct {
	Post     *Post      `json:"post,omitempty"`
	Comments []*Comment `json:"comments"`
}

// CommentCount returns the number of comments in the reconstructed tree.
func (t *Thread) CommentCount() int {
	return countNodes(t.Comments)
}

func countNodes(roots []*Comment) int {
	n := 0
	for _, c := range roots {
		n += 1 + countNodes(c.Replies)
	}
	return n
}

// BuildTree reconstructs the full comment tree for one thread: nested pass,
// continuation pass (skipped when the nested pass left no stubs), splice
// pass. The nested-pass tree is the floor of correctness; continuation
// failures only shrink the result, they never surface as errors.
func BuildTree(ctx context.Context, api ThreadAPI, linkID string, children []Thing) []*Comment {
	var (
		budget treeBudget
		stubs  []MoreStub
	)
	roots := parseListing(children, 0, &budget, &stubs)
	if len(stubs) == 0 {
		return roots
	}

	things := resolveMore(ctx, api, linkID, flattenStubs(stubs))
	forest, order := buildForest(things, &budget)

	rootRef := LinkRef(linkID)
	for _, ref := range order {
		nodes := forest[ref]
		if splice(roots, ref, nodes) {
			continue
		}
		if ref == rootRef {
			// The attachment point is the thread itself; promote the
			// sub-forest to top level.
			roots = append(roots, nodes...)
			continue
		}
		// The parent branch never arrived, so the sub-forest has no
		// place in the tree. Expected outcome, not an error.
	}
	return roots
}

// FetchThread fetches a thread by id (with or without the t3 prefix) and
// reconstructs its comment tree.
func FetchThread(ctx context.Context, api ThreadAPI, threadID string) (*Thread, error) {
	id := NormalizeThreadID(threadID)
	post, children, err := api.GetThread(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Thread{
		Post:     post,
		Comments: BuildTree(ctx, api, id, children),
	}, nil
}
