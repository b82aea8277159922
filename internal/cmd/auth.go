package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"threadloom/internal/secrets"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the stored API token",
	Long: `Manage the optional API token.

The public listing endpoints work without a token; storing one raises
the upstream rate limits. The token is kept in your system keychain
(macOS Keychain, Windows Credential Manager, or an encrypted file on
Linux).

Examples:
  threadloom auth login --token YOUR_TOKEN
  threadloom auth login   # Interactive prompt
  threadloom auth status
  threadloom auth logout`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store an API token",
	RunE:  runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored API token",
	RunE:  runAuthLogout,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a token is stored",
	RunE:  runAuthStatus,
}

var loginToken string

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)

	authLoginCmd.Flags().StringVar(&loginToken, "token", "", "API token")
}

func openStoreFromConfig() (*secrets.Store, error) {
	cfg, err := loadConfigFromFlag()
	if err != nil {
		return nil, formatConfigLoadError(err)
	}
	store, err := openSecretsStore(cfg.KeyringBackend)
	if err != nil {
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}
	return store, nil
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	store, err := openStoreFromConfig()
	if err != nil {
		return err
	}

	token := loginToken
	if token == "" {
		token = envGet("THREADLOOM_TOKEN")
	}
	if token == "" {
		token, err = promptSecret(cmd.Context(), "Enter API token: ")
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
	}
	if token == "" {
		return errors.New("API token is required")
	}

	if err := store.SetToken(token); err != nil {
		return err
	}

	if structuredOutputRequested() {
		return printStructured(map[string]interface{}{
			"status": "authenticated",
			"token":  maskToken(token),
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Token stored.")
	if !quietFlag {
		fmt.Fprintln(cmd.OutOrStdout(), "Commands will now authenticate without --token.")
	}
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	store, err := openStoreFromConfig()
	if err != nil {
		return err
	}

	if err := store.DeleteToken(); err != nil {
		return err
	}

	if structuredOutputRequested() {
		return printStructured(map[string]interface{}{
			"status": "logged_out",
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Token removed from the system keychain.")
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	store, err := openStoreFromConfig()
	if err != nil {
		return err
	}

	token, err := store.Token()
	if err != nil {
		if !errors.Is(err, secrets.ErrNotFound) {
			return err
		}
		if structuredOutputRequested() {
			return printStructured(map[string]interface{}{
				"authenticated": false,
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Status: No token stored")
		fmt.Fprintln(cmd.OutOrStdout(), "\nRun 'threadloom auth login' to store one.")
		return nil
	}

	if structuredOutputRequested() {
		return printStructured(map[string]interface{}{
			"authenticated": true,
			"token_preview": maskToken(token),
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Status: Token stored")
	fmt.Fprintf(cmd.OutOrStdout(), "Token: %s\n", maskToken(token))
	return nil
}

// promptSecret prompts for a secret input (no echo on a terminal).
func promptSecret(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(stderrFromContext(ctx), prompt)

	in := stdinFromContext(ctx)
	if file, ok := in.(*os.File); ok {
		if term.IsTerminal(int(file.Fd())) {
			password, err := term.ReadPassword(int(file.Fd()))
			fmt.Fprintln(stderrFromContext(ctx))
			if err != nil {
				return "", err
			}
			return strings.TrimSpace(string(password)), nil
		}
	}

	// Piped input
	reader := bufio.NewReader(in)
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// maskToken shows only the first and last 4 characters.
func maskToken(token string) string {
	if len(token) <= 12 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
