// Package stream pushes progress events to the websocket connections of
// the user they concern. With Redis configured, events published on one
// node reach sockets held by every node.
package stream

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	EventTripCompleted     = "trip_completed"
	EventLevelUp           = "level_up"
	EventAchievementEarned = "achievement_earned"
)

const (
	channelPrefix  = "progress:"
	channelPattern = channelPrefix + "*"
)

type Event struct {
	Type string    `json:"type"`
	Data any       `json:"data,omitempty"`
	At   time.Time `json:"at"`
}

// Publisher is what services depend on to emit events.
type Publisher interface {
	Publish(userID string, ev Event)
}

type Hub struct {
	redis   *redis.Client
	log     *zap.Logger
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex

	pubsub *redis.PubSub
	done   chan struct{}
}

type Client struct {
	UserID string
	Send   chan []byte
}

// NewHub returns a hub. When redisClient is set the hub subscribes before
// returning, so nothing published afterwards is missed.
func NewHub(redisClient *redis.Client, log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	h := &Hub{
		redis:   redisClient,
		log:     log,
		clients: map[string]map[*Client]struct{}{},
		done:    make(chan struct{}),
	}

	if redisClient != nil {
		ctx := context.Background()
		pubsub := redisClient.PSubscribe(ctx, channelPattern)
		if _, err := pubsub.Receive(ctx); err != nil {
			log.Warn("progress stream running without redis", zap.Error(err))
			_ = pubsub.Close()
			h.redis = nil
			close(h.done)
			return h
		}
		h.pubsub = pubsub
		go h.subscribeRedis()
	} else {
		close(h.done)
	}
	return h
}

func (h *Hub) Register(userID string) *Client {
	client := &Client{
		UserID: userID,
		Send:   make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = map[*Client]struct{}{}
	}
	h.clients[userID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if userClients, ok := h.clients[client.UserID]; ok {
		if _, registered := userClients[client]; !registered {
			return
		}
		delete(userClients, client)
		if len(userClients) == 0 {
			delete(h.clients, client.UserID)
		}
		close(client.Send)
	}
}

// Publish delivers ev to every socket of userID. Through Redis the local
// node receives its own message back, so local delivery only happens
// without Redis.
func (h *Hub) Publish(userID string, ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		h.log.Error("encode progress event", zap.String("type", ev.Type), zap.Error(err))
		return
	}

	if h.redis == nil {
		h.deliver(userID, payload)
		return
	}
	if err := h.redis.Publish(context.Background(), redisChannel(userID), payload).Err(); err != nil {
		h.log.Warn("redis publish failed, delivering locally", zap.String("user_id", userID), zap.Error(err))
		h.deliver(userID, payload)
	}
}

// Close stops the Redis subscription.
func (h *Hub) Close() error {
	if h.pubsub == nil {
		return nil
	}
	err := h.pubsub.Close()
	<-h.done
	return err
}

func (h *Hub) deliver(userID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[userID] {
		select {
		case client.Send <- payload:
		default:
			h.log.Debug("dropping progress event for slow client", zap.String("user_id", userID))
		}
	}
}

func (h *Hub) subscribeRedis() {
	defer close(h.done)
	for msg := range h.pubsub.Channel() {
		userID := userIDFromChannel(msg.Channel)
		if userID == "" {
			continue
		}
		h.deliver(userID, []byte(msg.Payload))
	}
}

func redisChannel(userID string) string {
	return channelPrefix + userID
}

func userIDFromChannel(ch string) string {
	if !strings.HasPrefix(ch, channelPrefix) {
		return ""
	}
	return ch[len(channelPrefix):]
}
