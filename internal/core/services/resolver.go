package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stampede-tools/stampede-cli/internal/core/domain"
	"github.com/stampede-tools/stampede-cli/internal/core/ports/driven"
	"github.com/stampede-tools/stampede-cli/internal/logger"
)

// DefaultResolverTTL bounds how long a key -> container mapping is
// cached. Container metadata can change (rename, deletion), so entries
// must expire.
const DefaultResolverTTL = 5 * time.Minute

// ContainerResolver maps a human container key to the store's internal
// numeric identifier. Lookups are memoized with a TTL: multiple callers
// within one bulk operation resolve the same key.
type ContainerResolver struct {
	client driven.DocumentStoreClient
	ttl    time.Duration

	mu    sync.Mutex
	cache map[string]resolverEntry

	// now is swappable for tests.
	now func() time.Time
}

type resolverEntry struct {
	container domain.Container
	expires   time.Time
}

// NewContainerResolver creates a resolver with the default TTL.
func NewContainerResolver(client driven.DocumentStoreClient) *ContainerResolver {
	return NewContainerResolverTTL(client, DefaultResolverTTL)
}

// NewContainerResolverTTL creates a resolver with a custom cache TTL.
func NewContainerResolverTTL(client driven.DocumentStoreClient, ttl time.Duration) *ContainerResolver {
	return &ContainerResolver{
		client: client,
		ttl:    ttl,
		cache:  make(map[string]resolverEntry),
		now:    time.Now,
	}
}

// Resolve returns the container for a key, consulting the cache first.
// Returns domain.ErrNotFound when the store has no container with that
// key. Lookup failures are never recovered locally; they propagate.
func (r *ContainerResolver) Resolve(ctx context.Context, key string) (*domain.Container, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: container key is required", domain.ErrInvalidInput)
	}

	r.mu.Lock()
	entry, ok := r.cache[key]
	if ok && r.now().Before(entry.expires) {
		r.mu.Unlock()
		c := entry.container
		return &c, nil
	}
	r.mu.Unlock()

	container, err := r.client.FindContainerByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("resolve container %q: %w", key, err)
	}

	logger.Debug("resolved container %s -> id %s", key, container.ID)

	r.mu.Lock()
	r.cache[key] = resolverEntry{container: *container, expires: r.now().Add(r.ttl)}
	r.mu.Unlock()

	c := *container
	return &c, nil
}
