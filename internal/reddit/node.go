package reddit

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	// MaxNodes is the total number of comments a reconstructed tree may
	// hold, counted across the nested pass and all spliced sub-forests.
	MaxNodes = 2000
	// MaxDepth is the deepest nesting level the nested pass descends to.
	MaxDepth = 20
)

// DeletedAuthor is substituted when the upstream omits the author field.
const DeletedAuthor = "[deleted]"

// Thing kinds as they appear in the wire envelope.
const (
	KindComment = "t1"
	KindLink    = "t3"
	KindMore    = "more"
	KindListing = "Listing"
)

// Comment is one reconstructed comment. Replies is owned exclusively by its
// parent; the only mutation after construction is appending to Replies.
type Comment struct {
	ID         string     `json:"id"`
	Author     string     `json:"author"`
	Body       string     `json:"body"`
	Score      int64      `json:"score"`
	CreatedUTC int64      `json:"created_utc"`
	Replies    []*Comment `json:"replies,omitempty"`
}

// newComment builds a Comment from decoded wire fields, filling in the
// defaults the upstream is allowed to omit.
func newComment(d commentData) *Comment {
	id := d.ID
	if id == "" {
		id = uuid.NewString()
	}
	author := d.Author
	if author == "" {
		author = DeletedAuthor
	}
	return &Comment{
		ID:         id,
		Author:     author,
		Body:       d.Body,
		Score:      d.Score,
		CreatedUTC: d.CreatedUTC,
	}
}

// ParentRef is a typed form of a kind-prefixed identifier like "t1_abc123"
// or "t3_def456". It is a comparable value type, so it works as a map key.
type ParentRef struct {
	Kind string
	ID   string
}

// ParseParentRef splits a kind-prefixed identifier into its parts. The
// second return is false when the input has no kind prefix or an empty id.
func ParseParentRef(s string) (ParentRef, bool) {
	kind, id, ok := strings.Cut(s, "_")
	if !ok || kind == "" || id == "" {
		return ParentRef{}, false
	}
	return ParentRef{Kind: kind, ID: id}, true
}

// LinkRef returns the post-kind reference for a thread id.
func LinkRef(linkID string) ParentRef {
	return ParentRef{Kind: KindLink, ID: linkID}
}

func (r ParentRef) String() string {
	return fmt.Sprintf("%s_%s", r.Kind, r.ID)
}

// MoreStub records a truncated branch found during the nested pass: the
// parent it hangs off and the child ids still to be fetched. Stubs are
// consumed exactly once by the continuation resolver and never appear in
// the final tree.
type MoreStub struct {
	Parent   ParentRef
	Children []string
}

// treeBudget is the node counter shared across one reconstruction. It is
// passed by pointer down the nested recursion and into the forest builder
// so the MaxNodes cap spans both sources. Each reconstruction owns its own
// budget; nothing is shared between concurrent reconstructions.
type treeBudget struct {
	nodes int
}

func (b *treeBudget) spent() bool {
	return b.nodes >= MaxNodes
}

func (b *treeBudget) take() {
	b.nodes++
}
