package reddit

// buildForest converts the flat entries of a continuation response into
// sub-forests keyed by their external parent reference. Parent/child pairs
// that arrived together in the same batch are wired to each other here;
// only nodes whose parent lives outside the batch surface in the returned
// mapping, for the splicer to attach. The order slice holds the parent
// references in first-appearance order, so callers can iterate the forest
// deterministically. The shared budget keeps the global node cap spanning
// both the nested pass and this one.
func buildForest(things []Thing, budget *treeBudget) (map[ParentRef][]*Comment, []ParentRef) {
	type flatEntry struct {
		node   *Comment
		parent ParentRef
	}

	var entries []flatEntry
	byID := make(map[string]*Comment)
	for _, t := range things {
		if budget.spent() {
			break
		}
		if t.Kind != KindComment {
			continue
		}
		d, ok := decodeComment(t.Data)
		if !ok || !hasBody(d.Body) {
			continue
		}
		parent, ok := ParseParentRef(d.ParentID)
		if !ok {
			// No parent reference means no attachment point, in-batch
			// or out.
			continue
		}
		budget.take()
		node := newComment(d)
		entries = append(entries, flatEntry{node: node, parent: parent})
		byID[node.ID] = node
	}

	forest := make(map[ParentRef][]*Comment)
	var order []ParentRef
	for _, e := range entries {
		if parentNode, ok := byID[e.parent.ID]; ok {
			// True parent arrived in the same batch; sibling order is
			// input order.
			parentNode.Replies = append(parentNode.Replies, e.node)
			continue
		}
		if _, ok := forest[e.parent]; !ok {
			order = append(order, e.parent)
		}
		forest[e.parent] = append(forest[e.parent], e.node)
	}
	return forest, order
}
