package reddit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const threadBody = `[
	{"kind": "Listing", "data": {"children": [
		{"kind": "t3", "data": {"id": "abc", "title": "A thread", "author": "op", "score": 10, "created_utc": 1700000000}}
	]}},
	{"kind": "Listing", "data": {"children": [
		{"kind": "t1", "data": {"id": "c1", "author": "u1", "body": "hi", "replies": ""}}
	]}}
]`

func TestClient_GetThread(t *testing.T) {
	var gotPath, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, threadBody)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithUserAgent("test-agent/1.0"))

	post, children, err := client.GetThread(context.Background(), "abc")
	if err != nil {
		t.Fatalf("GetThread failed: %v", err)
	}
	if gotPath != "/comments/abc.json" {
		t.Errorf("path = %q", gotPath)
	}
	if gotUA != "test-agent/1.0" {
		t.Errorf("user agent = %q", gotUA)
	}
	if post.Title != "A thread" || post.Author != "op" {
		t.Errorf("post = %+v", post)
	}
	if len(children) != 1 || children[0].Kind != KindComment {
		t.Errorf("children = %+v", children)
	}
}

func TestClient_GetThread_NoPost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"kind":"Listing","data":{"children":[]}},{"kind":"Listing","data":{"children":[]}}]`)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, _, err := client.GetThread(context.Background(), "abc")

	var notFound NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("err = %v, want NotFoundError", err)
	}
}

func TestClient_GetMoreChildren(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"link_id":  r.URL.Query().Get("link_id"),
			"children": r.URL.Query().Get("children"),
			"api_type": r.URL.Query().Get("api_type"),
		}
		fmt.Fprint(w, `{"json": {"data": {"things": [
			{"kind": "t1", "data": {"id": "x", "body": "stitched", "parent_id": "t1_p"}}
		]}}}`)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	things, err := client.GetMoreChildren(context.Background(), "abc", []string{"x", "y"})
	if err != nil {
		t.Fatalf("GetMoreChildren failed: %v", err)
	}
	if gotQuery["link_id"] != "t3_abc" {
		t.Errorf("link_id = %q, want t3_abc", gotQuery["link_id"])
	}
	if gotQuery["children"] != "x,y" {
		t.Errorf("children = %q, want x,y", gotQuery["children"])
	}
	if gotQuery["api_type"] != "json" {
		t.Errorf("api_type = %q", gotQuery["api_type"])
	}
	if len(things) != 1 || things[0].Kind != KindComment {
		t.Errorf("things = %+v", things)
	}
}

func TestClient_ErrorMapping(t *testing.T) {
	cases := []struct {
		status int
		check  func(error) bool
	}{
		{http.StatusUnauthorized, func(err error) bool { var e AuthenticationError; return errors.As(err, &e) }},
		{http.StatusForbidden, func(err error) bool { var e AuthenticationError; return errors.As(err, &e) }},
		{http.StatusNotFound, func(err error) bool { var e NotFoundError; return errors.As(err, &e) }},
		{http.StatusBadRequest, func(err error) bool { var e ValidationError; return errors.As(err, &e) }},
		{http.StatusInternalServerError, func(err error) bool {
			var a AuthenticationError
			var n NotFoundError
			var v ValidationError
			return err != nil && !errors.As(err, &a) && !errors.As(err, &n) && !errors.As(err, &v)
		}},
	}

	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer server.Close()

			client := NewClient(WithBaseURL(server.URL))
			_, _, err := client.GetThread(context.Background(), "abc")
			if !tc.check(err) {
				t.Errorf("status %d mapped to %v", tc.status, err)
			}
		})
	}
}

func TestClient_TokenHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, threadBody)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithToken("sekrit"))
	if _, _, err := client.GetThread(context.Background(), "abc"); err != nil {
		t.Fatalf("GetThread failed: %v", err)
	}
	if gotAuth != "Bearer sekrit" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}
