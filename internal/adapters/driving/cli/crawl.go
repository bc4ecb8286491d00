package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stampede-tools/stampede-cli/internal/core/domain"
)

var (
	crawlMax  int
	crawlJSON bool
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Enumerate pages across all spaces",
	Long: `Walks every space and lists its pages, following pagination in
each space until exhausted or the global document cap is reached.
Spaces that fail to list are skipped; the crawl reports what it got.`,
	RunE: runCrawl,
}

func init() {
	crawlCmd.Flags().IntVar(&crawlMax, "max", domain.DefaultMaxDocuments, "global cap on crawled pages")
	crawlCmd.Flags().BoolVar(&crawlJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(crawlCmd)
}

func runCrawl(cmd *cobra.Command, _ []string) error {
	if err := requireRemote(); err != nil {
		return err
	}

	ctx := context.Background()
	result := catalogService.CrawlAll(ctx, crawlMax)

	if crawlJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal crawl result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if result.Err != "" {
		cmd.Printf("Warning: %s\n", result.Err)
	}

	cmd.Printf("Crawled %d pages across %d spaces", result.TotalCount, result.LoadedContainers)
	if result.Truncated {
		cmd.Print(" (truncated)")
	}
	cmd.Println()
	cmd.Println()

	for _, doc := range result.Documents {
		cmd.Printf("  [%s] %s\n", doc.ContainerKey, doc.Title)
	}
	return nil
}
