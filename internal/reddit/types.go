package reddit

import (
	"encoding/json"
	"strings"
)

// Thing is the envelope every upstream entry arrives in: a kind
// discriminator ("t1", "t3", "more", "Listing") plus an opaque payload.
type Thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// Listing is the nested wire shape: an ordered sequence of child Things.
type Listing struct {
	Data struct {
		Children []Thing `json:"children"`
	} `json:"data"`
}

// DecodeListing parses a raw listing body into its children. A body that is
// not a listing yields nil children, which the parser treats as empty.
func DecodeListing(raw json.RawMessage) []Thing {
	var l Listing
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil
	}
	return l.Data.Children
}

// commentData is the decoded form of a "t1" payload. All fields are
// best-effort: missing or malformed values default rather than fail, since
// the upstream data is tolerated, not validated.
type commentData struct {
	ID         string
	Author     string
	Body       string
	Score      int64
	CreatedUTC int64
	ParentID   string
	Replies    []Thing
}

// moreData is the decoded form of a "more" placeholder payload.
type moreData struct {
	ParentID string
	Children []string
}

// rawFields gives per-field access to a JSON object so one bad field does
// not poison its siblings.
type rawFields map[string]json.RawMessage

func decodeFields(raw json.RawMessage) (rawFields, bool) {
	var f rawFields
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, false
	}
	return f, true
}

func (f rawFields) str(key string) string {
	var s string
	if err := json.Unmarshal(f[key], &s); err != nil {
		return ""
	}
	return s
}

// num reads a numeric field, accepting ints, floats, and numeric strings.
// Anything else decodes to zero.
func (f rawFields) num(key string) int64 {
	var n json.Number
	if err := json.Unmarshal(f[key], &n); err != nil {
		var s string
		if err := json.Unmarshal(f[key], &s); err != nil {
			return 0
		}
		n = json.Number(s)
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if fl, err := n.Float64(); err == nil {
		return int64(fl)
	}
	return 0
}

func (f rawFields) strs(key string) []string {
	var raw []json.RawMessage
	if err := json.Unmarshal(f[key], &raw); err != nil {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err != nil {
			continue // non-string ids are discarded
		}
		out = append(out, s)
	}
	return out
}

// decodeComment decodes a "t1" payload. The replies field is either an
// embedded Listing or an empty string; both shapes land here.
func decodeComment(raw json.RawMessage) (commentData, bool) {
	f, ok := decodeFields(raw)
	if !ok {
		return commentData{}, false
	}
	d := commentData{
		ID:         f.str("id"),
		Author:     f.str("author"),
		Body:       f.str("body"),
		Score:      f.num("score"),
		CreatedUTC: f.num("created_utc"),
		ParentID:   f.str("parent_id"),
	}
	if replies, ok := f["replies"]; ok {
		d.Replies = DecodeListing(replies)
	}
	return d, true
}

// decodeMore decodes a "more" payload.
func decodeMore(raw json.RawMessage) (moreData, bool) {
	f, ok := decodeFields(raw)
	if !ok {
		return moreData{}, false
	}
	return moreData{
		ParentID: f.str("parent_id"),
		Children: f.strs("children"),
	}, true
}

// hasBody reports whether a comment body carries any visible content.
func hasBody(body string) bool {
	return strings.TrimSpace(body) != ""
}

// NormalizeThreadID strips a kind prefix from a thread id if present, so
// callers may pass either "abc123" or "t3_abc123".
func NormalizeThreadID(id string) string {
	if ref, ok := ParseParentRef(id); ok && ref.Kind == KindLink {
		return ref.ID
	}
	return id
}
