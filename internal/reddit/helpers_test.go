package reddit

import (
	"encoding/json"
	"testing"
)

// jsonThing builds a wire Thing from a kind and payload fields.
func jsonThing(t *testing.T, kind string, data map[string]interface{}) Thing {
	t.Helper()
	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal thing data: %v", err)
	}
	return Thing{Kind: kind, Data: raw}
}

// commentThing builds a nested-listing comment entry. Replies may be nil.
func commentThing(t *testing.T, id, body string, replies []Thing) Thing {
	t.Helper()
	data := map[string]interface{}{
		"id":          id,
		"author":      "author_" + id,
		"body":        body,
		"score":       1,
		"created_utc": 1700000000,
	}
	if replies != nil {
		data["replies"] = map[string]interface{}{
			"kind": "Listing",
			"data": map[string]interface{}{"children": replies},
		}
	} else {
		data["replies"] = ""
	}
	return jsonThing(t, KindComment, data)
}

// flatThing builds a flat continuation entry with a parent pointer.
func flatThing(t *testing.T, id, parentRef, body string) Thing {
	t.Helper()
	return jsonThing(t, KindComment, map[string]interface{}{
		"id":          id,
		"author":      "author_" + id,
		"body":        body,
		"score":       2,
		"created_utc": 1700000100,
		"parent_id":   parentRef,
	})
}

// moreThing builds a "more" placeholder entry.
func moreThing(t *testing.T, parentRef string, children []string) Thing {
	t.Helper()
	return jsonThing(t, KindMore, map[string]interface{}{
		"parent_id": parentRef,
		"children":  children,
	})
}

// treeIDs flattens a tree into depth-first id order for comparison.
func treeIDs(roots []*Comment) []string {
	var ids []string
	for _, c := range roots {
		ids = append(ids, c.ID)
		ids = append(ids, treeIDs(c.Replies)...)
	}
	return ids
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
