package cache

import (
	"context"
	"testing"
	"time"

	"github.com/casecraft/backend/internal/domain/catalog"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestCatalogInvalidator_EventTypes(t *testing.T) {
	inv := NewCatalogInvalidator(nil, nil, nil)

	types := inv.EventTypes()

	// Every catalog mutation must flush the evaluated-options cache
	assert.Contains(t, types, catalog.EventTypeOptionGroupCreated)
	assert.Contains(t, types, catalog.EventTypeOptionGroupUpdated)
	assert.Contains(t, types, catalog.EventTypeOptionGroupDeleted)
	assert.Contains(t, types, catalog.EventTypeProductUpdated)
	assert.Contains(t, types, catalog.EventTypeCategoryDeleted)
	assert.Len(t, types, 9)
}

func TestCatalogInvalidator_StartSubscribeFailure(t *testing.T) {
	// Nothing listens on this address; Subscribe's initial Receive fails
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	inv := NewCatalogInvalidator(client, nil, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err := inv.Start(ctx)
	assert.Error(t, err)

	// The failed attempt must release its subscription and leave the
	// invalidator stopped, so Stop is a no-op and Start can be retried
	inv.Stop()
	assert.Error(t, inv.Start(ctx))
}
