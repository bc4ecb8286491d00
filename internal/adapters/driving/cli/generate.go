package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/stampede-tools/stampede-cli/internal/core/domain"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Create pages in bulk from a template",
	Long: `Creates a batch of pages from a captured template. Titles come
either from repeated --title flags or from a generated sequence
(--mode numbered/weekly/monthly/quarterly with a --base title).

Failures on individual pages do not abort the run; the final report
lists every page that was created and every one that failed.

Examples:
  # Twelve numbered pages under a fresh parent
  stampede generate --template tpl-xxx --space ENG \
    --mode numbered --base "Sprint Retro" --count 12 \
    --organize new-parent --parent-title "Retros 2026"

  # Weekly meeting notes, explicit start date
  stampede generate --template tpl-xxx --space ENG \
    --mode weekly --base "Team Sync" --count 8 \
    --start-month September --start-day 1 --start-year 2026

  # Explicit titles at top level
  stampede generate --template tpl-xxx --space ENG \
    --title "Roadmap" --title "Budget" --title "Hiring"`,
	RunE: runGenerate,
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview a generated title sequence",
	Long:  `Expands title flags into the exact sequence a generate run would use, without creating anything.`,
	RunE:  runPreview,
}

// Flags shared by generate and preview.
var (
	genTemplateID   string
	genSpaceKey     string
	genOrganize     string
	genParentID     string
	genParentTitle  string
	genTitles       []string
	genMode         string
	genBase         string
	genCount        int
	genStartMonth   string
	genStartDay     int
	genStartYear    int
	genStartQuarter string
)

func init() {
	for _, c := range []*cobra.Command{generateCmd, previewCmd} {
		c.Flags().StringVar(&genMode, "mode", "single", "title mode (single, numbered, weekly, monthly, quarterly)")
		c.Flags().StringVar(&genBase, "base", "", "base title for generated sequences")
		c.Flags().IntVar(&genCount, "count", 1, "number of pages to create")
		c.Flags().StringVar(&genStartMonth, "start-month", "", "start month name (weekly, monthly)")
		c.Flags().IntVar(&genStartDay, "start-day", 0, "start day of month (weekly)")
		c.Flags().IntVar(&genStartYear, "start-year", 0, "start year (weekly, monthly, quarterly)")
		c.Flags().StringVar(&genStartQuarter, "start-quarter", "", "start quarter, Q1..Q4 (quarterly)")
		c.Flags().StringArrayVar(&genTitles, "title", nil, "explicit page title (repeatable, overrides --mode)")
	}

	generateCmd.Flags().StringVar(&genTemplateID, "template", "", "captured template id (required)")
	generateCmd.Flags().StringVar(&genSpaceKey, "space", "", "destination space key (required)")
	generateCmd.Flags().StringVar(&genOrganize, "organize", "top-level", organizeUsage())
	generateCmd.Flags().StringVar(&genParentID, "parent-id", "", "existing parent page id (attach-existing)")
	generateCmd.Flags().StringVar(&genParentTitle, "parent-title", "", "title for the new parent page (new-parent)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(previewCmd)
}

// organizeUsage enumerates the placement modes for the --organize help.
func organizeUsage() string {
	modes := []domain.OrganizationMode{
		domain.ModeTopLevel,
		domain.ModeAttachExisting,
		domain.ModeNewParent,
	}
	parts := make([]string, 0, len(modes))
	for _, m := range modes {
		parts = append(parts, fmt.Sprintf("%s = %s", m, m.Description()))
	}
	return "placement: " + strings.Join(parts, ", ")
}

func titleSpecFromFlags() *domain.TitleSpec {
	return &domain.TitleSpec{
		Mode:         domain.TitleMode(genMode),
		BaseTitle:    genBase,
		Count:        genCount,
		StartMonth:   genStartMonth,
		StartDay:     genStartDay,
		StartYear:    genStartYear,
		StartQuarter: genStartQuarter,
	}
}

func runPreview(cmd *cobra.Command, _ []string) error {
	if generationService == nil {
		return errors.New("generation service not configured")
	}

	titles := genTitles
	if len(titles) == 0 {
		expanded, err := generationService.PreviewTitles(*titleSpecFromFlags())
		if err != nil {
			return fmt.Errorf("expanding titles: %w", err)
		}
		titles = expanded
	}

	cmd.Printf("Would create %d pages:\n\n", len(titles))
	for i, title := range titles {
		cmd.Printf("  %2d. %s\n", i+1, title)
	}
	return nil
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	if err := requireRemote(); err != nil {
		return err
	}
	if genTemplateID == "" {
		return errors.New("--template is required")
	}
	if genSpaceKey == "" {
		return errors.New("--space is required")
	}

	req := domain.GenerationRequest{
		TemplateID:       genTemplateID,
		ContainerKey:     genSpaceKey,
		Mode:             domain.OrganizationMode(genOrganize),
		ParentDocumentID: genParentID,
		NewParentTitle:   genParentTitle,
		Titles:           genTitles,
	}
	if len(genTitles) == 0 {
		req.TitleSpec = titleSpecFromFlags()
	}

	ctx := context.Background()
	report, err := generationService.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	renderReport(cmd, report)
	return nil
}

// renderReport prints the outcome of one bulk run.
func renderReport(cmd *cobra.Command, report *domain.GenerationReport) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	out := cmd.OutOrStdout()

	if len(report.Errors) == 0 {
		fmt.Fprintf(out, "%s %d of %d pages created\n",
			green("✓"), report.CreatedCount, report.TotalRequested)
	} else {
		fmt.Fprintf(out, "%d of %d pages created, %d failed\n",
			report.CreatedCount, report.TotalRequested, len(report.Errors))
	}
	if report.ParentID != "" {
		fmt.Fprintf(out, "Parent page: %s\n", report.ParentID)
	}
	fmt.Fprintln(out)

	for _, p := range report.Pages {
		fmt.Fprintf(out, "  %s %s\n", green("✓"), p.Title)
		if p.URL != "" {
			fmt.Fprintf(out, "      %s\n", p.URL)
		}
	}
	for _, e := range report.Errors {
		fmt.Fprintf(out, "  %s %s: %s\n", red("✗"), e.Title, e.Err)
	}
}
