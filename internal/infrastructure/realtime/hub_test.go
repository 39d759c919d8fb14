package realtime

import (
	"context"
	"ebd_gestao/internal/domain/entities"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_Publish(t *testing.T) {
	t.Run("delivers only matching events", func(t *testing.T) {
		h := NewHub(nil)
		var got []string
		unsub := h.Subscribe(ForEntity(entities.ChangeEntityProposal, "p-1"), func(ev entities.ChangeEvent) {
			got = append(got, ev.Status)
		})
		defer unsub()

		h.Publish(context.Background(), entities.ChangeEvent{Entity: entities.ChangeEntityProposal, EntityID: "p-2", Status: "PENDENTE"})
		h.Publish(context.Background(), entities.ChangeEvent{Entity: entities.ChangeEntityProposal, EntityID: "p-1", Status: "ACEITA"})

		assert.Equal(t, []string{"ACEITA"}, got)
	})

	t.Run("nil predicate receives everything", func(t *testing.T) {
		h := NewHub(nil)
		count := 0
		h.Subscribe(nil, func(entities.ChangeEvent) { count++ })

		h.Publish(context.Background(), entities.ChangeEvent{EntityID: "a"})
		h.Publish(context.Background(), entities.ChangeEvent{EntityID: "b"})

		assert.Equal(t, 2, count)
	})

	t.Run("unsubscribe stops delivery and is idempotent", func(t *testing.T) {
		h := NewHub(nil)
		count := 0
		unsub := h.Subscribe(nil, func(entities.ChangeEvent) { count++ })
		require.Equal(t, 1, h.Subscribers())

		unsub()
		unsub()
		h.Publish(context.Background(), entities.ChangeEvent{EntityID: "a"})

		assert.Equal(t, 0, count)
		assert.Equal(t, 0, h.Subscribers())
	})

	t.Run("panicking subscriber does not affect others", func(t *testing.T) {
		h := NewHub(nil)
		delivered := false
		h.Subscribe(nil, func(entities.ChangeEvent) { panic("boom") })
		h.Subscribe(nil, func(entities.ChangeEvent) { delivered = true })

		assert.NotPanics(t, func() {
			h.Publish(context.Background(), entities.ChangeEvent{EntityID: "a"})
		})
		assert.True(t, delivered)
	})

	t.Run("concurrent subscribe and publish", func(t *testing.T) {
		h := NewHub(nil)
		var mu sync.Mutex
		total := 0
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unsub := h.Subscribe(nil, func(entities.ChangeEvent) {
					mu.Lock()
					total++
					mu.Unlock()
				})
				h.Publish(context.Background(), entities.ChangeEvent{EntityID: "x"})
				unsub()
			}()
		}
		wg.Wait()

		assert.Equal(t, 0, h.Subscribers())
		assert.GreaterOrEqual(t, total, 20)
	})
}

func TestEventCodec(t *testing.T) {
	t.Run("round trips an event", func(t *testing.T) {
		in := entities.ChangeEvent{Entity: entities.ChangeEntityProposal, EntityID: "p-1", Status: "PAGO", PaymentURL: "https://pay"}
		payload, err := encodeEvent(in)
		require.NoError(t, err)

		out, err := decodeEvent(payload)
		require.NoError(t, err)
		assert.Equal(t, in.EntityID, out.EntityID)
		assert.Equal(t, in.Status, out.Status)
		assert.Equal(t, in.PaymentURL, out.PaymentURL)
	})

	t.Run("rejects malformed payloads", func(t *testing.T) {
		_, err := decodeEvent("not json")
		assert.Error(t, err)

		_, err = decodeEvent(`{"entity":"proposal"}`)
		assert.Error(t, err)
	})
}
