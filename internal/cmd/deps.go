package cmd

import (
	"os"

	"threadloom/internal/reddit"
	"threadloom/internal/secrets"
)

// Indirection points for tests.
var (
	openSecretsStore = secrets.Open
	envGet           = os.Getenv
	newClientFunc    = func(opts ...reddit.ClientOption) reddit.ThreadAPI {
		return reddit.NewClient(opts...)
	}
)
