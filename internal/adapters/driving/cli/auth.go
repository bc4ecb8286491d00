package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Configure store credentials",
	Long: `Stores the Confluence base URL and API token in the config file.

The token is read from the terminal without echo when not given as a
flag. An API token can be created in your Atlassian account settings.

Examples:
  # Interactive (token prompted without echo)
  stampede auth --base-url https://wiki.example.com

  # Non-interactive
  stampede auth --base-url https://wiki.example.com --token "xxx"`,
	RunE: runAuth,
}

var (
	authBaseURL string
	authToken   string
)

func init() {
	authCmd.Flags().StringVar(&authBaseURL, "base-url", "", "Confluence base URL")
	authCmd.Flags().StringVar(&authToken, "token", "", "API token (prompted if omitted)")
	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	baseURL := strings.TrimSpace(authBaseURL)
	if baseURL == "" {
		cmd.Print("Base URL: ")
		reader := bufio.NewReader(cmd.InOrStdin())
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading base URL: %w", err)
		}
		baseURL = strings.TrimSpace(line)
	}
	if baseURL == "" {
		return errors.New("base URL is required")
	}

	token := authToken
	if token == "" {
		cmd.Print("API token: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		cmd.Println()
		if err != nil {
			return fmt.Errorf("reading token: %w", err)
		}
		token = strings.TrimSpace(string(raw))
	}
	if token == "" {
		return errors.New("token is required")
	}

	if err := configStore.Set("base_url", strings.TrimRight(baseURL, "/")); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	if err := configStore.Set("token", token); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	cmd.Printf("Credentials saved to %s\n", configStore.Path())
	return nil
}
