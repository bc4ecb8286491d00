package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stampede-tools/stampede-cli/internal/core/domain"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage captured templates",
	Long: `Capture, list, inspect and remove templates.

A template is a snapshot of one page's content taken at capture time.
Later edits to the source page do not affect it. Templates persist
until removed.

Examples:
  # Capture from a pasted page URL
  stampede template capture --url "https://wiki.example.com/spaces/ENG/pages/123456/Weekly+Notes"

  # Capture by page id with a custom name
  stampede template capture --id 123456 --name "Weekly notes"

  # List captured templates
  stampede template list

  # Remove one
  stampede template remove tpl-1712000000-ab12cd34`,
}

var templateCaptureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture a page as a template",
	RunE:  runTemplateCapture,
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List captured templates",
	RunE:  runTemplateList,
}

var templateGetCmd = &cobra.Command{
	Use:   "get [template-id]",
	Short: "Show one template's metadata",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateGet,
}

var templateRemoveCmd = &cobra.Command{
	Use:   "remove [template-id]",
	Short: "Remove a captured template",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateRemove,
}

// Flags for template capture.
var (
	captureURL  string
	captureID   string
	captureName string
)

func init() {
	templateCaptureCmd.Flags().StringVar(&captureURL, "url", "", "page URL to capture")
	templateCaptureCmd.Flags().StringVar(&captureID, "id", "", "page id to capture")
	templateCaptureCmd.Flags().StringVar(&captureName, "name", "", "template name (defaults to the page title)")

	templateCmd.AddCommand(templateCaptureCmd)
	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateGetCmd)
	templateCmd.AddCommand(templateRemoveCmd)
	rootCmd.AddCommand(templateCmd)
}

func runTemplateCapture(cmd *cobra.Command, _ []string) error {
	if err := requireRemote(); err != nil {
		return err
	}
	if captureURL == "" && captureID == "" {
		return errors.New("either --url or --id is required")
	}

	ctx := context.Background()
	info, err := templateService.Capture(ctx, domain.TemplateRef{
		DocumentID: captureID,
		URL:        captureURL,
	}, captureName)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidReference) {
			return fmt.Errorf("could not find a page id in %q", captureURL)
		}
		return fmt.Errorf("capture failed: %w", err)
	}

	cmd.Printf("Captured template %s (%s)\n", info.ID, info.Name)
	return nil
}

func runTemplateList(cmd *cobra.Command, _ []string) error {
	if templateService == nil {
		return errors.New("template service not configured")
	}

	ctx := context.Background()
	infos, err := templateService.List(ctx)
	if err != nil {
		return fmt.Errorf("listing templates: %w", err)
	}

	if len(infos) == 0 {
		cmd.Println("No templates captured yet.")
		return nil
	}

	cmd.Printf("Templates (%d):\n\n", len(infos))
	for _, info := range infos {
		cmd.Printf("  %s\n", info.ID)
		cmd.Printf("      Name:     %s\n", info.Name)
		cmd.Printf("      Source:   %s\n", info.SourceTitle)
		cmd.Printf("      Captured: %s\n", info.CreatedAt.Format("2006-01-02 15:04"))
		cmd.Println()
	}
	return nil
}

func runTemplateGet(cmd *cobra.Command, args []string) error {
	if templateService == nil {
		return errors.New("template service not configured")
	}

	ctx := context.Background()
	info, err := templateService.Get(ctx, args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("template %s not found", args[0])
		}
		return fmt.Errorf("getting template: %w", err)
	}

	cmd.Printf("Template: %s\n", info.ID)
	cmd.Printf("  Name:     %s\n", info.Name)
	cmd.Printf("  Source:   %s\n", info.SourceTitle)
	cmd.Printf("  Captured: %s\n", info.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

func runTemplateRemove(cmd *cobra.Command, args []string) error {
	if templateService == nil {
		return errors.New("template service not configured")
	}

	ctx := context.Background()
	if err := templateService.Remove(ctx, args[0]); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("template %s not found", args[0])
		}
		return fmt.Errorf("removing template: %w", err)
	}

	cmd.Printf("Removed template %s\n", args[0])
	return nil
}
