package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/stampede-tools/stampede-cli/internal/adapters/driven/config/file"
	"github.com/stampede-tools/stampede-cli/internal/adapters/driven/storage/sqlite"
	"github.com/stampede-tools/stampede-cli/internal/connectors/confluence"
	"github.com/stampede-tools/stampede-cli/internal/core/domain"
	"github.com/stampede-tools/stampede-cli/internal/core/ports/driven"
	"github.com/stampede-tools/stampede-cli/internal/core/ports/driving"
	"github.com/stampede-tools/stampede-cli/internal/core/services"
	"github.com/stampede-tools/stampede-cli/internal/logger"
)

var version = "0.1.0-dev"

// Package-level services shared by all commands. Populated by
// initServices; commands nil-check before use so that commands which
// need no remote client (version, auth) still work unconfigured.
var (
	configStore       driven.ConfigStore
	templateStore     driven.TemplateStore
	storeClient       driven.DocumentStoreClient
	catalogService    driving.CatalogService
	templateService   driving.TemplateService
	generationService driving.GenerationService
	appSettings       domain.Settings
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "stampede",
	Short: "Bulk page creation for Confluence",
	Long: `Stampede captures a Confluence page as a template and fans it out
into many pages at once: numbered series, weekly meeting notes, monthly
reports, quarterly reviews.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// Execute runs the root command. It is the single entry point called
// from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initServices wires the driven adapters into the core services. The
// config store and template store are always available; the remote
// client and everything depending on it stay nil until base_url and
// token are configured.
func initServices() error {
	if configStore != nil {
		// Already wired, typically by a test.
		return nil
	}

	cs, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	configStore = cs

	appSettings = settingsFromConfig(configStore)

	ts, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening template store: %w", err)
	}
	templateStore = ts

	baseURL := configStore.GetString("base_url")
	token := configStore.GetString("token")
	if baseURL == "" || token == "" {
		logger.Debug("no store credentials configured, remote commands disabled")
		return nil
	}

	client, err := confluence.NewClient(confluence.Config{
		BaseURL: baseURL,
		Token:   token,
	})
	if err != nil {
		return fmt.Errorf("creating store client: %w", err)
	}
	storeClient = client

	resolver := services.NewContainerResolver(storeClient)
	catalogService = services.NewCatalogService(storeClient, resolver, appSettings)
	templateService = services.NewTemplateCapture(storeClient, templateStore)
	generationService = services.NewBulkEngine(storeClient, templateStore, resolver, appSettings)

	return nil
}

// settingsFromConfig reads tuning knobs from the config file, falling
// back to defaults for anything unset.
func settingsFromConfig(cs driven.ConfigStore) domain.Settings {
	s := domain.DefaultSettings()
	if v := cs.GetInt("max_documents"); v > 0 {
		s.MaxDocuments = v
	}
	if v := cs.GetInt("batch_size"); v > 0 {
		s.BatchSize = v
	}
	if v := cs.GetInt("page_size"); v > 0 {
		s.PageSize = v
	}
	if v := cs.GetInt("create_delay_ms"); v > 0 {
		s.CreateDelay = time.Duration(v) * time.Millisecond
	}
	return s.Normalised()
}

// requireRemote is the shared guard for commands that talk to the store.
func requireRemote() error {
	if catalogService == nil {
		return fmt.Errorf("store not configured: run 'stampede auth' first")
	}
	return nil
}
