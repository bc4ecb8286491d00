package cli

import (
	"context"
	"os"
	"time"

	"github.com/stampede-tools/stampede-cli/internal/adapters/driven/config/file"
	"github.com/stampede-tools/stampede-cli/internal/adapters/driven/storage/memory"
	"github.com/stampede-tools/stampede-cli/internal/core/domain"
	"github.com/stampede-tools/stampede-cli/internal/core/ports/driven"
	"github.com/stampede-tools/stampede-cli/internal/core/services"
)

// setupTestServices wires the package-level services with in-memory
// fakes and returns a cleanup restoring the previous state. Having
// configStore set also stops PersistentPreRunE from re-wiring.
func setupTestServices() func() {
	oldConfig := configStore
	oldTemplates := templateStore
	oldClient := storeClient
	oldCatalog := catalogService
	oldTemplateSvc := templateService
	oldGeneration := generationService

	tmpDir, err := os.MkdirTemp("", "stampede-cli-test")
	if err != nil {
		panic(err)
	}
	cs, err := file.NewConfigStore(tmpDir)
	if err != nil {
		panic(err)
	}

	client := memory.NewStoreClient()
	client.Containers = []domain.Container{
		{ID: "10", Key: "ENG", Name: "Engineering"},
	}
	client.Documents["10"] = []domain.Document{
		{ID: "102", Title: "Onboarding"},
	}
	client.Content["102"] = &driven.DocumentContent{
		ID: "102", Title: "Onboarding", ContainerID: "10", Body: []byte("<p>x</p>"),
	}

	templates := memory.NewTemplateStore()
	_ = templates.Save(context.Background(), &domain.Template{
		ID:        "tpl-1",
		Name:      "Base",
		Content:   []byte("<p>x</p>"),
		CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})

	settings := domain.DefaultSettings()
	settings.CreateDelay = 0
	resolver := services.NewContainerResolver(client)

	configStore = cs
	templateStore = templates
	storeClient = client
	catalogService = services.NewCatalogService(client, resolver, settings)
	templateService = services.NewTemplateCapture(client, templates)
	generationService = services.NewBulkEngine(client, templates, resolver, settings)

	return func() {
		configStore = oldConfig
		templateStore = oldTemplates
		storeClient = oldClient
		catalogService = oldCatalog
		templateService = oldTemplateSvc
		generationService = oldGeneration
		os.RemoveAll(tmpDir)
	}
}
