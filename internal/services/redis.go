package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/profast/parcel-api/internal/models"
)

// EventsChannel is the pub/sub channel domain events travel on.
const EventsChannel = "profast:events"

var unlockScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Redis provides the distributed payment lock and the event bus.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to redisURL and checks the connection.
func NewRedis(ctx context.Context, redisURL string) (*Redis, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opt)
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &Redis{client: client}, nil
}

// Lock takes key for ttl. The returned release only deletes the key if this
// holder still owns it.
func (r *Redis) Lock(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	token := uuid.NewString()

	ok, err := r.client.SetNX(ctx, "lock:"+key, token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLockHeld
	}

	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := unlockScript.Run(ctx, r.client, []string{"lock:" + key}, token).Err(); err != nil {
			log.Printf("Failed to release lock %s: %v", key, err)
		}
	}
	return release, nil
}

// Publish sends msg to every subscribed API instance.
func (r *Redis) Publish(ctx context.Context, msg WebSocketMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, EventsChannel, data).Err()
}

// ForwardEvents relays published events to the admins connected to hub until
// ctx is cancelled.
func (r *Redis) ForwardEvents(ctx context.Context, hub *Hub) {
	sub := r.client.Subscribe(ctx, EventsChannel)
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
			hub.BroadcastToRole(models.RoleAdmin, []byte(msg.Payload))
		}
	}
}

func (r *Redis) Close() error {
	return r.client.Close()
}
