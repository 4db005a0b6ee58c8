package cache

import (
	"context"
	"sync"
	"time"

	"github.com/casecraft/backend/internal/domain/catalog"
	"github.com/casecraft/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// invalidationChannel is the Pub/Sub channel catalog changes are announced on.
const invalidationChannel = "casecraft:catalog:invalidate"

// flusher is the part of CatalogCache the invalidator needs.
type flusher interface {
	InvalidateAll(ctx context.Context) error
}

// Ensure CatalogInvalidator implements EventHandler
var _ shared.EventHandler = (*CatalogInvalidator)(nil)

// CatalogInvalidator bridges catalog domain events to cache invalidation.
// On any catalog change it announces the change over Redis Pub/Sub; every
// instance (including the publisher) flushes its evaluated-options entries
// when the announcement arrives. Run Start once per process.
type CatalogInvalidator struct {
	client   *redis.Client
	cache    flusher
	logger   *zap.Logger
	cancelFn context.CancelFunc
	mu       sync.Mutex
	running  bool
	done     chan struct{}
}

// NewCatalogInvalidator creates an invalidator over an existing Redis client.
// The caller retains ownership of the client.
func NewCatalogInvalidator(client *redis.Client, cache *CatalogCache, logger *zap.Logger) *CatalogInvalidator {
	return &CatalogInvalidator{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

// EventTypes lists the catalog events that make cached evaluations stale.
func (i *CatalogInvalidator) EventTypes() []string {
	return []string{
		catalog.EventTypeCategoryCreated,
		catalog.EventTypeCategoryUpdated,
		catalog.EventTypeCategoryDeleted,
		catalog.EventTypeOptionGroupCreated,
		catalog.EventTypeOptionGroupUpdated,
		catalog.EventTypeOptionGroupDeleted,
		catalog.EventTypeProductCreated,
		catalog.EventTypeProductUpdated,
		catalog.EventTypeProductDeleted,
	}
}

// Handle announces the change to all instances.
func (i *CatalogInvalidator) Handle(ctx context.Context, evt shared.DomainEvent) error {
	if err := i.client.Publish(ctx, invalidationChannel, evt.EventType()).Err(); err != nil {
		i.logger.Error("failed to publish cache invalidation",
			zap.String("event_type", evt.EventType()),
			zap.Error(err))
		return err
	}
	return nil
}

// Start begins listening for invalidation announcements. It returns once the
// subscription is established; the listen loop runs until Stop is called.
func (i *CatalogInvalidator) Start(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.running {
		return nil
	}

	runCtx, cancel := context.WithCancel(context.Background())
	i.cancelFn = cancel
	i.done = make(chan struct{})
	i.running = true

	sub := i.client.Subscribe(runCtx, invalidationChannel)
	// Wait for the subscription before returning so no announcement is lost
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		cancel()
		i.running = false
		return err
	}

	go i.listen(runCtx, sub)
	i.logger.Info("catalog cache invalidator started", zap.String("channel", invalidationChannel))
	return nil
}

func (i *CatalogInvalidator) listen(ctx context.Context, sub *redis.PubSub) {
	defer close(i.done)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := i.cache.InvalidateAll(flushCtx); err != nil {
				i.logger.Error("failed to flush catalog cache",
					zap.String("event_type", msg.Payload),
					zap.Error(err))
			}
			cancel()
		}
	}
}

// Stop terminates the listen loop and waits for it to exit.
func (i *CatalogInvalidator) Stop() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if !i.running {
		return
	}
	i.cancelFn()
	<-i.done
	i.running = false
	i.logger.Info("catalog cache invalidator stopped")
}
