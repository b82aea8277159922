package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"threadloom/internal/config"
	"threadloom/internal/output"
	"threadloom/internal/reddit"
)

var (
	// Version is set at build time
	version = "dev"
	// Commit is set at build time
	commit = "none"
	// Date is set at build time
	date = "unknown"
)

// SetVersionInfo sets the version information from build flags
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Global flags
var (
	baseURL     string
	apiToken    string
	userAgent   string
	outputFmt   string
	outputType  output.Format
	queryExpr   string
	errorFmt    string
	quietFlag   bool
	debug       bool
	configFile  string
	timeoutSecs int
)

// client is the shared API client
var client reddit.ThreadAPI

var rootCmd = &cobra.Command{
	Use:   "threadloom",
	Short: "Fetch and reconstruct discussion threads",
	Long: `threadloom fetches a Reddit discussion thread and reconstructs its
complete comment tree, resolving truncated branches through continuation
requests.

Environment Variables:
  THREADLOOM_TOKEN       Optional API token (raises rate limits)
  THREADLOOM_USER_AGENT  Override the User-Agent header`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceErrors = true

		skipConfigLoad := isCommandGroup(cmd, "config")
		var cfg *config.Config
		if !skipConfigLoad {
			loadedCfg, err := loadConfigFromFlag()
			if err != nil {
				return formatConfigLoadError(err)
			}
			cfg = loadedCfg
		}

		// Output format selection: --output > config > default
		formatStr := outputFmt
		if !flagChanged(cmd, "output") && cfg != nil && strings.TrimSpace(cfg.OutputFormat) != "" {
			formatStr = strings.TrimSpace(cfg.OutputFormat)
		}
		if !flagChanged(cmd, "output") && !isTerminal(cmd.OutOrStdout()) {
			formatStr = "json"
		}
		format, err := output.ParseFormat(formatStr)
		if err != nil {
			return err
		}
		outputType = format
		outputFmt = string(format)

		// Default quiet mode for non-interactive structured output
		if !flagChanged(cmd, "quiet") && !isTerminal(cmd.OutOrStdout()) && output.IsStructured(outputType) {
			quietFlag = true
		}

		ctx := cmd.Context()
		ctx = withIO(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		ctx = withErrorFormat(ctx, errorFmt)
		cmd.SetContext(ctx)

		if err := validateErrorFormat(errorFmt); err != nil {
			return err
		}
		if effectiveErrorFormat(ctx) != "text" {
			cmd.SilenceUsage = true
		}

		// Skip client initialization for commands that never reach the
		// network.
		if isCommandGroup(cmd, "auth") || isCommandGroup(cmd, "config") ||
			cmd.Name() == "completion" || cmd.Name() == "help" {
			return nil
		}

		client = newClientFunc(clientOptions(cmd, cfg)...)
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		printCommandError(rootCmd.Context(), err)
		return err
	}
	return nil
}

// GetClient returns the initialized API client
func GetClient() reddit.ThreadAPI {
	return client
}

// GetOutputFormat returns the configured output format
func GetOutputFormat() output.Format {
	if outputType != "" {
		return outputType
	}
	parsed, err := output.ParseFormat(outputFmt)
	if err != nil {
		return output.FormatText
	}
	return parsed
}

// clientOptions assembles client options with flag > env > config
// precedence.
func clientOptions(cmd *cobra.Command, cfg *config.Config) []reddit.ClientOption {
	var opts []reddit.ClientOption

	if baseURL != "" {
		opts = append(opts, reddit.WithBaseURL(baseURL))
	} else if cfg != nil && cfg.BaseURL != "" {
		opts = append(opts, reddit.WithBaseURL(cfg.BaseURL))
	}

	ua := userAgent
	if ua == "" {
		ua = envGet("THREADLOOM_USER_AGENT")
	}
	if ua == "" && cfg != nil {
		ua = cfg.UserAgent
	}
	if ua != "" {
		opts = append(opts, reddit.WithUserAgent(ua))
	}

	secs := timeoutSecs
	if !flagChanged(cmd, "timeout") && cfg != nil && cfg.TimeoutSeconds > 0 {
		secs = cfg.TimeoutSeconds
	}
	if secs > 0 {
		opts = append(opts, reddit.WithTimeout(time.Duration(secs)*time.Second))
	}

	if token := resolveToken(cfg); token != "" {
		opts = append(opts, reddit.WithToken(token))
	}

	if debug {
		opts = append(opts, reddit.WithDebug(true))
	}

	return opts
}

// resolveToken picks a token with flag > env > keyring > config
// precedence. A token is optional; keyring trouble is not fatal here.
func resolveToken(cfg *config.Config) string {
	if apiToken != "" {
		return apiToken
	}
	if env := envGet("THREADLOOM_TOKEN"); env != "" {
		return env
	}

	backend := ""
	if cfg != nil {
		backend = cfg.KeyringBackend
	}
	if store, err := openSecretsStore(backend); err == nil {
		if token, err := store.Token(); err == nil && token != "" {
			return token
		}
	}

	if cfg != nil {
		return cfg.Token
	}
	return ""
}

func loadConfigFromFlag() (*config.Config, error) {
	if strings.TrimSpace(configFile) != "" {
		return config.Load(configFile)
	}
	return config.ReadConfig()
}

func formatConfigLoadError(err error) error {
	return fmt.Errorf("failed to load config: %w", err)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Changed
	}
	if f := cmd.InheritedFlags().Lookup(name); f != nil {
		return f.Changed
	}
	return false
}

// isCommandGroup reports whether cmd is the named command or one of its
// direct subcommands.
func isCommandGroup(cmd *cobra.Command, name string) bool {
	return cmd.Name() == name || (cmd.Parent() != nil && cmd.Parent().Name() == name)
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("threadloom version %s (commit: %s, built: %s)\n", version, commit, date))

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "Output format (text|json|ndjson|table|yaml)")
	rootCmd.PersistentFlags().StringVar(&queryExpr, "query", "", "jq expression to filter JSON output")
	rootCmd.PersistentFlags().StringVar(&errorFmt, "error-format", "auto", "Error output format (auto|text|json|yaml)")
	rootCmd.PersistentFlags().BoolVar(&quietFlag, "quiet", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", "", "API token (env: THREADLOOM_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&userAgent, "user-agent", "", "User-Agent header (env: THREADLOOM_USER_AGENT)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Override the API base URL")
	rootCmd.PersistentFlags().IntVar(&timeoutSecs, "timeout", 0, "Request timeout in seconds (0 = default)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: ~/.config/threadloom/config.yaml)")
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
