package reddit

import "context"

// ThreadAPI is the transport collaborator the reconstruction core calls.
// The HTTP Client implements it; command tests substitute fakes.
type ThreadAPI interface {
	// GetThread fetches a thread by id, returning the post and the
	// children of its top-level comment listing.
	GetThread(ctx context.Context, threadID string) (*Post, []Thing, error)

	// GetMoreChildren fetches one continuation batch: the flat entries
	// for up to 100 comment ids belonging to the given thread.
	GetMoreChildren(ctx context.Context, linkID string, ids []string) ([]Thing, error)
}

// Post is the submission a thread hangs off.
type Post struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Selftext   string `json:"selftext,omitempty"`
	URL        string `json:"url,omitempty"`
	Subreddit  string `json:"subreddit,omitempty"`
	Score      int64  `json:"score"`
	CreatedUTC int64  `json:"created_utc"`
}

// decodePost decodes a "t3" payload with the same tolerance rules as
// comments.
func decodePost(raw []byte) (*Post, bool) {
	f, ok := decodeFields(raw)
	if !ok {
		return nil, false
	}
	p := &Post{
		ID:         f.str("id"),
		Title:      f.str("title"),
		Author:     f.str("author"),
		Selftext:   f.str("selftext"),
		URL:        f.str("url"),
		Subreddit:  f.str("subreddit"),
		Score:      f.num("score"),
		CreatedUTC: f.num("created_utc"),
	}
	if p.Author == "" {
		p.Author = DeletedAuthor
	}
	return p, true
}
