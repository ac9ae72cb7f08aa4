package event

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/mindsacademy/backend/internal/domain/shared"
	"github.com/mindsacademy/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ErrBusStopped is returned when publishing to a stopped bus
var ErrBusStopped = errors.New("event bus is not running")

// AsyncEventBus dispatches domain events to registered handlers on a
// fixed worker pool. Publish enqueues and returns immediately; handler
// failures are logged, never propagated back to the publisher.
type AsyncEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
	cfg      config.EventConfig

	queue   chan shared.DomainEvent
	running atomic.Bool
	mu      sync.RWMutex
	wg      sync.WaitGroup
}

// NewAsyncEventBus creates a new async event bus
func NewAsyncEventBus(cfg config.EventConfig, logger *zap.Logger) *AsyncEventBus {
	return &AsyncEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
		cfg:      cfg,
		queue:    make(chan shared.DomainEvent, cfg.BufferSize),
	}
}

// Publish enqueues events for asynchronous delivery. If the buffer is
// full the call blocks until a worker drains the queue. The read lock
// keeps Stop from closing the queue under an in-flight send.
func (b *AsyncEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.running.Load() {
		b.logger.Warn("events dropped, bus is not running",
			zap.Int("count", len(events)),
		)
		return ErrBusStopped
	}
	for _, event := range events {
		select {
		case b.queue <- event:
		case <-ctx.Done():
			b.logger.Warn("event enqueue cancelled",
				zap.String("event_type", event.EventType()),
				zap.Error(ctx.Err()),
			)
			return ctx.Err()
		}
	}
	return nil
}

// Subscribe registers a handler for specific event types
func (b *AsyncEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("handler subscribed",
		zap.Strings("event_types", eventTypes),
	)
}

// Unsubscribe removes a handler
func (b *AsyncEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
	b.logger.Debug("handler unsubscribed")
}

// Start spawns the worker pool
func (b *AsyncEventBus) Start(ctx context.Context) error {
	if b.running.Swap(true) {
		return nil
	}
	for i := 0; i < b.cfg.Workers; i++ {
		b.wg.Add(1)
		go b.worker()
	}
	b.logger.Info("event bus started",
		zap.Int("workers", b.cfg.Workers),
		zap.Int("buffer_size", b.cfg.BufferSize),
	)
	return nil
}

// Stop drains the queue and waits for in-flight handlers to finish
func (b *AsyncEventBus) Stop(ctx context.Context) error {
	b.mu.Lock()
	if !b.running.Swap(false) {
		b.mu.Unlock()
		return nil
	}
	close(b.queue)
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.logger.Info("event bus stopped")
		return nil
	case <-ctx.Done():
		b.logger.Warn("event bus stopped before all handlers finished")
		return ctx.Err()
	}
}

func (b *AsyncEventBus) worker() {
	defer b.wg.Done()
	for event := range b.queue {
		b.dispatch(event)
	}
}

func (b *AsyncEventBus) dispatch(event shared.DomainEvent) {
	ctx := context.Background()
	if b.cfg.HandlerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.cfg.HandlerTimeout)
		defer cancel()
	}

	for _, handler := range b.registry.GetHandlers(event.EventType()) {
		if err := b.dispatchToHandler(ctx, handler, event); err != nil {
			// Log error but continue with other handlers
			b.logger.Error("handler failed to process event",
				zap.String("event_type", event.EventType()),
				zap.String("event_id", event.EventID().String()),
				zap.Error(err),
			)
		}
	}
}

// dispatchToHandler safely dispatches an event to a handler
func (b *AsyncEventBus) dispatchToHandler(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("handler panicked",
				zap.String("event_type", event.EventType()),
				zap.Any("panic", r),
			)
		}
	}()

	return handler.Handle(ctx, event)
}

// SyncEventBus dispatches events to handlers synchronously on the
// publishing goroutine. Used in tests and the migration CLI where the
// worker pool is unnecessary.
type SyncEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
}

// NewSyncEventBus creates a new synchronous event bus
func NewSyncEventBus(logger *zap.Logger) *SyncEventBus {
	return &SyncEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
	}
}

// Publish dispatches events to all registered handlers in order
func (b *SyncEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, event := range events {
		for _, handler := range b.registry.GetHandlers(event.EventType()) {
			if err := handler.Handle(ctx, event); err != nil {
				b.logger.Error("handler failed to process event",
					zap.String("event_type", event.EventType()),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

// Subscribe registers a handler for specific event types
func (b *SyncEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
}

// Unsubscribe removes a handler
func (b *SyncEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
}

// Start is a no-op for the synchronous bus
func (b *SyncEventBus) Start(ctx context.Context) error { return nil }

// Stop is a no-op for the synchronous bus
func (b *SyncEventBus) Stop(ctx context.Context) error { return nil }

// Interface guards
var (
	_ shared.EventBus = (*AsyncEventBus)(nil)
	_ shared.EventBus = (*SyncEventBus)(nil)
)
