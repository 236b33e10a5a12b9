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

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage discovery settings",
	Long: `View and configure providers, credentials, scoring weights, cascade limits
and the result cache.

Settings are stored in ~/.skillscout/config.toml. Credentials fall back to
the YOUTUBE_API_KEY and GITHUB_TOKEN environment variables.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Set a single setting",
	Long: `Set a single setting by its dotted key.

Credentials may be entered without echo by omitting the value:
  skillscout settings set youtube.api_key

Examples:
  skillscout settings set discovery.limit 8
  skillscout settings set providers.enabled youtube,github
  skillscout settings set cache.backend sqlite
  skillscout settings set scoring.relevance.exact_title 120`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	entries, err := settingsService.Entries()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	styles := DefaultStyles()
	cmd.Println(styles.Heading.Render("Current Settings"))

	section := ""
	for _, e := range entries {
		if s := sectionOf(e.Key); s != section {
			section = s
			cmd.Println()
			cmd.Printf("[%s]\n", section)
		}

		value := e.Value
		if e.Secret {
			value = maskSecret(value)
		}
		suffix := ""
		if !e.IsSet && !e.Secret {
			suffix = styles.Muted.Render(" (default)")
		}
		cmd.Printf("  %s = %s%s\n", styles.Key.Render(e.Key), value, suffix)
	}
	cmd.Println()
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := args[0]
	var value string
	if len(args) == 2 {
		value = args[1]
	} else {
		if !isSecretKey(key) {
			return fmt.Errorf("a value is required for %s", key)
		}
		cmd.Printf("Enter value for %s: ", key)
		value = readPassword()
		cmd.Println()
	}

	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	shown := value
	if isSecretKey(key) {
		shown = maskSecret(strings.TrimSpace(value))
	}
	cmd.Printf("%s set to %s\n", key, shown)
	return nil
}

// isSecretKey reports whether key holds a credential.
func isSecretKey(key string) bool {
	entries, err := settingsService.Entries()
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.Key == key {
			return e.Secret
		}
	}
	return false
}

// sectionOf returns the first segment of a dotted key.
func sectionOf(key string) string {
	if i := strings.Index(key, "."); i > 0 {
		return key[:i]
	}
	return key
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskSecret(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

