package reddit

// splice walks the tree depth-first and appends nodes to the replies of the
// first node matching ref. Identifiers are unique within a thread, so the
// first match wins and the search stops. Returns false when no node
// matches; the orchestrator then decides between root promotion and
// dropping the sub-forest. Spliced branches attach at whatever depth their
// parent sits, without a depth re-check; continuation-fetched branches are
// exempt from the nested-pass depth bound.
func splice(roots []*Comment, ref ParentRef, nodes []*Comment) bool {
	if len(nodes) == 0 {
		return false
	}
	for _, n := range roots {
		if matchesRef(n, ref) {
			n.Replies = append(n.Replies, nodes...)
			return true
		}
		if splice(n.Replies, ref, nodes) {
			return true
		}
	}
	return false
}

// matchesRef compares a node against a parent reference in both of its
// type-tagged forms: a reference may name a comment or the thread's post.
func matchesRef(n *Comment, ref ParentRef) bool {
	if ref.Kind != KindComment && ref.Kind != KindLink {
		return false
	}
	return n.ID == ref.ID
}
