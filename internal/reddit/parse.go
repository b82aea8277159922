package reddit

// parseListing turns a nested listing's children into an ordered slice of
// Comments, descending into embedded reply listings up to MaxDepth and
// MaxNodes. "more" placeholders are not fetched here; they are pushed onto
// stubs for the continuation resolver, keeping this pass free of network
// side effects. The stub slice and budget are shared by pointer across the
// whole recursive descent.
func parseListing(children []Thing, depth int, budget *treeBudget, stubs *[]MoreStub) []*Comment {
	// Bound check at every recursive entry, not just at node creation.
	if len(children) == 0 || depth > MaxDepth || budget.spent() {
		return nil
	}

	var out []*Comment
	for _, child := range children {
		if budget.spent() {
			// Remaining siblings are dropped, not skipped and retried.
			break
		}

		switch child.Kind {
		case KindMore:
			more, ok := decodeMore(child.Data)
			if !ok {
				continue
			}
			parent, ok := ParseParentRef(more.ParentID)
			if !ok || len(more.Children) == 0 {
				// Without a parent to splice back onto, or ids to
				// fetch, the placeholder cannot be stitched later.
				continue
			}
			*stubs = append(*stubs, MoreStub{Parent: parent, Children: more.Children})

		case KindComment:
			data, ok := decodeComment(child.Data)
			if !ok || !hasBody(data.Body) {
				continue
			}
			budget.take()
			node := newComment(data)
			node.Replies = parseListing(data.Replies, depth+1, budget, stubs)
			out = append(out, node)
		}
	}
	return out
}
