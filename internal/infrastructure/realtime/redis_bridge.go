package realtime

import (
	"context"
	"ebd_gestao/internal/domain/entities"
	"ebd_gestao/internal/usecase/interfaces"
	"encoding/json"
	"errors"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const DefaultChannel = "ebd:changes"

// RedisBridge publishes change events on a Redis channel and replays every
// message received on it into the local Hub, so subscribers connected to any
// API instance see every change.
type RedisBridge struct {
	client  *redis.Client
	channel string
	hub     *Hub
	log     *zap.Logger
}

var _ interfaces.IChangePublisher = (*RedisBridge)(nil)

func NewRedisBridge(client *redis.Client, channel string, hub *Hub, log *zap.Logger) *RedisBridge {
	if channel == "" {
		channel = DefaultChannel
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisBridge{client: client, channel: channel, hub: hub, log: log}
}

// Publish sends ev to Redis. When Redis is unreachable the event still reaches
// local subscribers.
func (b *RedisBridge) Publish(ctx context.Context, ev entities.ChangeEvent) {
	payload, err := encodeEvent(ev)
	if err == nil {
		err = b.client.Publish(ctx, b.channel, payload).Err()
	}
	if err != nil {
		b.log.Warn("[realtime][redis] publish failed; delivering locally", zap.String("entity_id", ev.EntityID), zap.Error(err))
		b.hub.Publish(ctx, ev)
	}
}

// Run forwards channel messages to the hub until ctx is done.
func (b *RedisBridge) Run(ctx context.Context) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	b.log.Info("[realtime][redis] listening", zap.String("channel", b.channel))

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return errors.New("redis subscription closed")
			}
			ev, err := decodeEvent(msg.Payload)
			if err != nil {
				b.log.Warn("[realtime][redis] dropping malformed message", zap.Error(err))
				continue
			}
			b.hub.Publish(ctx, ev)
		}
	}
}

func encodeEvent(ev entities.ChangeEvent) (string, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeEvent(payload string) (entities.ChangeEvent, error) {
	var ev entities.ChangeEvent
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return entities.ChangeEvent{}, err
	}
	if ev.EntityID == "" {
		return entities.ChangeEvent{}, errors.New("change event without entity id")
	}
	return ev, nil
}
