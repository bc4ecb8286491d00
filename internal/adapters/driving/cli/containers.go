package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var containersJSON bool

var containersCmd = &cobra.Command{
	Use:   "containers",
	Short: "List all spaces in the store",
	Long: `Lists every space visible to the configured credentials,
following pagination until the listing is exhausted.`,
	RunE: runContainers,
}

func init() {
	containersCmd.Flags().BoolVar(&containersJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(containersCmd)
}

func runContainers(cmd *cobra.Command, _ []string) error {
	if err := requireRemote(); err != nil {
		return err
	}

	ctx := context.Background()
	containers, err := catalogService.ListContainers(ctx)
	if err != nil {
		return fmt.Errorf("listing spaces: %w", err)
	}

	if containersJSON {
		data, err := json.MarshalIndent(containers, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal containers: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(containers) == 0 {
		cmd.Println("No spaces found.")
		return nil
	}

	cmd.Printf("Spaces (%d):\n\n", len(containers))
	for _, c := range containers {
		cmd.Printf("  %-12s %s\n", c.Key, c.Name)
	}
	return nil
}
