package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var pagesLimit int

var pagesCmd = &cobra.Command{
	Use:   "pages [space-key]",
	Short: "List pages in one space",
	Long:  `Lists pages in a space sorted by title, up to a limit.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPages,
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [url]",
	Short: "Resolve a Confluence URL",
	Long: `Resolves a pasted Confluence URL. Page URLs resolve to the single
page they name; space URLs resolve to a listing of that space.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	pagesCmd.Flags().IntVarP(&pagesLimit, "limit", "n", 0, "maximum number of pages (0 = configured default)")
	rootCmd.AddCommand(pagesCmd)
	rootCmd.AddCommand(resolveCmd)
}

func runPages(cmd *cobra.Command, args []string) error {
	if err := requireRemote(); err != nil {
		return err
	}

	ctx := context.Background()
	docs, err := catalogService.ListTopDocuments(ctx, args[0], pagesLimit)
	if err != nil {
		return fmt.Errorf("listing pages: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No pages found.")
		return nil
	}

	cmd.Printf("Pages in %s (%d):\n\n", args[0], len(docs))
	for _, doc := range docs {
		cmd.Printf("  %-14s %s\n", doc.ID, doc.Title)
	}
	return nil
}

func runResolve(cmd *cobra.Command, args []string) error {
	if err := requireRemote(); err != nil {
		return err
	}

	ctx := context.Background()
	res, err := catalogService.ResolveFromURL(ctx, args[0])
	if err != nil {
		return fmt.Errorf("resolving URL: %w", err)
	}

	if res.DirectMode && res.TargetDocument != nil {
		doc := res.TargetDocument
		cmd.Printf("Page: %s\n", doc.Title)
		cmd.Printf("  ID:    %s\n", doc.ID)
		cmd.Printf("  Space: %s\n", doc.ContainerKey)
		if doc.URL != "" {
			cmd.Printf("  URL:   %s\n", doc.URL)
		}
		return nil
	}

	for _, c := range res.Containers {
		cmd.Printf("Space: %s (%s)\n", c.Name, c.Key)
	}
	cmd.Printf("Pages (%d):\n\n", len(res.Documents))
	for _, doc := range res.Documents {
		cmd.Printf("  %-14s %s\n", doc.ID, doc.Title)
	}
	return nil
}
