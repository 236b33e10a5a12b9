package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/skillscout/internal/core/domain"
)

var (
	discoverKind    string
	discoverLimit   int
	discoverJSON    bool
	discoverGrouped bool
)

var discoverCmd = &cobra.Command{
	Use:   "discover <subject>",
	Short: "Find ranked learning resources for a subject",
	Long: `Finds learning resources for a skill, a job role or a free-text phrase.

Each provider is searched with a cascade of queries, from most specific to
most general, until enough relevant results are found. Results are filtered
for relevance, scored for quality and merged into one ranked list.

Examples:
  skillscout discover docker
  skillscout discover "data engineer" --kind role --limit 10
  skillscout discover "rest api" --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().StringVarP(&discoverKind, "kind", "k", "skill", "subject kind: skill, role or free_text")
	discoverCmd.Flags().IntVarP(&discoverLimit, "limit", "n", 0, "maximum number of results (0 = configured default)")
	discoverCmd.Flags().BoolVar(&discoverJSON, "json", false, "output results as JSON")
	discoverCmd.Flags().BoolVar(&discoverGrouped, "grouped", false, "group results by source")
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	subject := strings.Join(args, " ")

	kind, err := domain.ParseSubjectKind(discoverKind)
	if err != nil {
		return err
	}

	rt, err := openRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer closeRuntime(rt)

	results := rt.Discovery.Discover(cmd.Context(), domain.DiscoveryRequest{
		Subject: subject,
		Kind:    kind,
		Limit:   discoverLimit,
	})

	switch {
	case discoverJSON && discoverGrouped:
		return outputJSON(cmd, domain.GroupBySource(results))
	case discoverJSON:
		return outputJSON(cmd, results)
	case discoverGrouped:
		outputGrouped(cmd, DefaultStyles(), subject, results)
	default:
		outputList(cmd, DefaultStyles(), subject, results)
	}
	return nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputList(cmd *cobra.Command, styles *Styles, subject string, results []domain.Resource) {
	if len(results) == 0 {
		cmd.Printf("No learning resources found for %q.\n", subject)
		return
	}

	cmd.Println(styles.Heading.Render(fmt.Sprintf("Learning resources for %q", subject)))
	cmd.Println()
	width := terminalWidth()
	for i := range results {
		cmd.Println(renderResource(styles, i+1, &results[i], width))
		cmd.Println()
	}
}

func outputGrouped(cmd *cobra.Command, styles *Styles, subject string, results []domain.Resource) {
	if len(results) == 0 {
		cmd.Printf("No learning resources found for %q.\n", subject)
		return
	}

	cmd.Println(styles.Heading.Render(fmt.Sprintf("Learning resources for %q", subject)))
	width := terminalWidth()
	n := 0
	for _, group := range domain.GroupBySource(results) {
		cmd.Println()
		cmd.Println(styles.Heading.Render(fmt.Sprintf("%s (%d)", group.Source, len(group.Resources))))
		for i := range group.Resources {
			n++
			cmd.Println(renderResource(styles, n, &group.Resources[i], width))
		}
	}
	cmd.Println()
}

// renderResource formats one result as a bordered card.
func renderResource(styles *Styles, n int, r *domain.Resource, width int) string {
	lines := []string{
		fmt.Sprintf("%s %s", styles.Muted.Render(fmt.Sprintf("[%d]", n)), styles.Title.Render(r.Title)),
		styles.Link.Render(r.URL),
	}

	meta := []string{r.Source}
	if r.Author != "" {
		meta = append(meta, r.Author)
	}
	if r.DurationText != "" {
		meta = append(meta, r.DurationText)
	}
	if r.ViewsText != "" {
		meta = append(meta, r.ViewsText+" views")
	}
	lines = append(lines,
		styles.Muted.Render(strings.Join(meta, " · "))+"  "+styles.Label(r.QualityLabel),
	)

	if desc := truncate(r.Description, width-4); desc != "" {
		lines = append(lines, styles.Muted.Render(desc))
	}

	return styles.Card.Render(strings.Join(lines, "\n"))
}

// truncate shortens s to at most width runes on a single line.
func truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if width <= 3 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return strings.TrimSpace(string(runes[:width-3])) + "..."
}
