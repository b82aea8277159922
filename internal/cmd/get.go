package cmd

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"threadloom/internal/output"
	"threadloom/internal/reddit"
	"threadloom/internal/render"
)

var renderMode string

var getCmd = &cobra.Command{
	Use:   "get <url|thread-id>",
	Short: "Fetch a thread and print its reconstructed comment tree",
	Long: `Fetch a discussion thread by URL or id and print the complete comment
tree, including branches the listing endpoint truncated.

Accepts a full thread URL, a short redd.it link, a bare id like abc123,
or a fullname like t3_abc123.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		threadID, err := ExtractThreadID(args[0])
		if err != nil {
			return err
		}

		thread, err := reddit.FetchThread(cmd.Context(), GetClient(), threadID)
		if err != nil {
			return err
		}

		if structuredOutputRequested() {
			return printStructured(thread)
		}
		if GetOutputFormat() == output.FormatTable {
			return printStructured(commentTable(thread))
		}

		switch renderMode {
		case "html":
			doc, err := render.HTML(thread)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), doc)
			return nil
		case "", "text":
			return render.Text(cmd.OutOrStdout(), thread)
		default:
			return reddit.ValidationError{Message: fmt.Sprintf("invalid --render %q (expected text|html)", renderMode)}
		}
	},
}

// ExtractThreadID pulls the thread id out of a URL, short link, fullname,
// or bare id.
func ExtractThreadID(arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", reddit.ValidationError{Message: "empty thread reference"}
	}

	if !strings.Contains(arg, "/") {
		return reddit.NormalizeThreadID(arg), nil
	}

	raw := arg
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", reddit.ValidationError{Message: fmt.Sprintf("cannot parse thread URL: %s", arg)}
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")

	// Short links carry the id as the whole path.
	if strings.EqualFold(u.Host, "redd.it") {
		if len(parts) == 1 && parts[0] != "" {
			return reddit.NormalizeThreadID(parts[0]), nil
		}
		return "", reddit.ValidationError{Message: fmt.Sprintf("cannot find thread id in URL: %s", arg)}
	}

	// Full URLs look like /r/<sub>/comments/<id>/<slug>.
	for i, p := range parts {
		if p == "comments" && i+1 < len(parts) {
			return reddit.NormalizeThreadID(parts[i+1]), nil
		}
	}
	return "", reddit.ValidationError{Message: fmt.Sprintf("cannot find thread id in URL: %s", arg)}
}

// commentTable flattens the tree into rows with a depth column.
func commentTable(t *reddit.Thread) output.Table {
	table := output.Table{
		Headers: []string{"DEPTH", "AUTHOR", "SCORE", "BODY"},
	}
	var walk func(comments []*reddit.Comment, depth int)
	walk = func(comments []*reddit.Comment, depth int) {
		for _, c := range comments {
			table.Rows = append(table.Rows, []string{
				strconv.Itoa(depth),
				c.Author,
				strconv.FormatInt(c.Score, 10),
				summarize(c.Body),
			})
			walk(c.Replies, depth+1)
		}
	}
	walk(t.Comments, 0)
	return table
}

func summarize(body string) string {
	body = strings.Join(strings.Fields(body), " ")
	const max = 60
	if len(body) > max {
		return body[:max-1] + "…"
	}
	return body
}

func init() {
	getCmd.Flags().StringVar(&renderMode, "render", "text", "Text rendering mode (text|html)")
	rootCmd.AddCommand(getCmd)
}
