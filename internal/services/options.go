package services

import (
	"context"
	"time"

	"sgp/internal/cache"
	"sgp/pkg/logutils"
	"sgp/pkg/rabbitmq"
)

// EventPublisher delivers encoded domain events. *rabbitmq.Client implements it.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// Options carries the collaborators shared by the entity services. Zero
// values disable caching and event publishing.
type Options struct {
	Cache     cache.Cache
	CacheTTL  time.Duration
	Publisher EventPublisher
}

func (o Options) normalize() Options {
	if o.Cache == nil {
		o.Cache = cache.Noop{}
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = 5 * time.Minute
	}
	return o
}

// emit publishes an event, logging instead of failing when delivery fails.
func (o Options) emit(entity, action string, id uint, data interface{}) {
	if o.Publisher == nil {
		return
	}
	event := rabbitmq.NewEvent(entity, action, id, data)
	body, err := event.Encode()
	if err == nil {
		err = o.Publisher.Publish(event.Type, body)
	}
	if err != nil {
		logutils.Log.WithError(err).WithFields(logutils.Fields{
			"event":     event.Type,
			"entity_id": id,
		}).Error("Failed to publish event")
	}
}

func (o Options) invalidate(ctx context.Context, entity string, id uint) {
	cache.Invalidate(ctx, o.Cache, cache.Key(entity, id))
}
