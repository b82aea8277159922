// Package render turns a reconstructed thread into human-readable output.
// Comment bodies are markdown; the HTML renderer converts and sanitizes
// them, the text renderer prints them verbatim in an indented outline.
package render

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"threadloom/internal/reddit"
)

var (
	mdParser = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)
	policy = bluemonday.UGCPolicy()
)

func init() {
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	policy.RequireNoReferrerOnLinks(true)
}

// Text writes the thread as an indented outline.
func Text(w io.Writer, t *reddit.Thread) error {
	if t.Post != nil {
		fmt.Fprintf(w, "%s\n", t.Post.Title)
		fmt.Fprintf(w, "by %s · %d points%s\n", t.Post.Author, t.Post.Score, formatTime(t.Post.CreatedUTC))
		if strings.TrimSpace(t.Post.Selftext) != "" {
			fmt.Fprintf(w, "\n%s\n", strings.TrimRight(t.Post.Selftext, "\n"))
		}
		fmt.Fprintf(w, "\n%d comments\n\n", t.CommentCount())
	}
	writeComments(w, t.Comments, 0)
	return nil
}

func writeComments(w io.Writer, comments []*reddit.Comment, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, c := range comments {
		fmt.Fprintf(w, "%s- %s · %d points%s\n", indent, c.Author, c.Score, formatTime(c.CreatedUTC))
		for _, line := range strings.Split(strings.TrimRight(c.Body, "\n"), "\n") {
			fmt.Fprintf(w, "%s  %s\n", indent, line)
		}
		if len(c.Replies) > 0 {
			writeComments(w, c.Replies, depth+1)
		}
	}
}

func formatTime(unix int64) string {
	if unix == 0 {
		return ""
	}
	return " · " + time.Unix(unix, 0).UTC().Format("2006-01-02 15:04")
}

// HTML renders the thread as a sanitized HTML fragment. Markdown
// conversion failures fall back to the escaped source text.
func HTML(t *reddit.Thread) (string, error) {
	var sb strings.Builder
	if t.Post != nil {
		fmt.Fprintf(&sb, "<h1>%s</h1>\n", html.EscapeString(t.Post.Title))
		fmt.Fprintf(&sb, "<p class=\"byline\">by %s · %d points</p>\n",
			html.EscapeString(t.Post.Author), t.Post.Score)
		if strings.TrimSpace(t.Post.Selftext) != "" {
			sb.WriteString(markdownToHTML(t.Post.Selftext))
		}
	}
	writeCommentsHTML(&sb, t.Comments)
	return sb.String(), nil
}

func writeCommentsHTML(sb *strings.Builder, comments []*reddit.Comment) {
	if len(comments) == 0 {
		return
	}
	sb.WriteString("<ul class=\"comments\">\n")
	for _, c := range comments {
		sb.WriteString("<li>\n")
		fmt.Fprintf(sb, "<p class=\"meta\">%s · %d points</p>\n",
			html.EscapeString(c.Author), c.Score)
		sb.WriteString(markdownToHTML(c.Body))
		writeCommentsHTML(sb, c.Replies)
		sb.WriteString("</li>\n")
	}
	sb.WriteString("</ul>\n")
}

func markdownToHTML(source string) string {
	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(source), &buf); err != nil {
		return "<p>" + html.EscapeString(source) + "</p>\n"
	}
	return string(policy.SanitizeBytes(buf.Bytes()))
}
