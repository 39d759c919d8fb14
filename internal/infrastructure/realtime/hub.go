package realtime

import (
	"context"
	"ebd_gestao/internal/domain/entities"
	"ebd_gestao/internal/usecase/interfaces"
	"sync"

	"go.uber.org/zap"
)

// Predicate selects the events a subscriber receives.
type Predicate func(entities.ChangeEvent) bool

// Handler receives matching events. It runs on the publisher's goroutine and
// must not block.
type Handler func(entities.ChangeEvent)

type subscription struct {
	match  Predicate
	handle Handler
}

// Hub fans change events out to in-process subscribers.
type Hub struct {
	mu   sync.RWMutex
	next uint64
	subs map[uint64]subscription
	log  *zap.Logger
}

var _ interfaces.IChangePublisher = (*Hub)(nil)

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{subs: make(map[uint64]subscription), log: log}
}

// Subscribe registers handler for events matching pred (all events when nil).
// The returned function removes the subscription; calling it more than once is safe.
func (h *Hub) Subscribe(pred Predicate, handler Handler) (unsubscribe func()) {
	h.mu.Lock()
	id := h.next
	h.next++
	h.subs[id] = subscription{match: pred, handle: handler}
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
		})
	}
}

func (h *Hub) Publish(_ context.Context, ev entities.ChangeEvent) {
	h.mu.RLock()
	targets := make([]Handler, 0, len(h.subs))
	for _, s := range h.subs {
		if s.match == nil || s.match(ev) {
			targets = append(targets, s.handle)
		}
	}
	h.mu.RUnlock()

	for _, handle := range targets {
		h.deliver(handle, ev)
	}
}

func (h *Hub) deliver(handle Handler, ev entities.ChangeEvent) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error("[realtime][hub] subscriber panicked", zap.String("entity_id", ev.EntityID), zap.Any("panic", r))
		}
	}()
	handle(ev)
}

// Subscribers returns the number of live subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// ForEntity matches events of one entity id.
func ForEntity(entity, id string) Predicate {
	return func(ev entities.ChangeEvent) bool {
		return ev.Entity == entity && ev.EntityID == id
	}
}
