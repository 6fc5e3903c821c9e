package realtime

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Table names published on the change feed, one Redis channel per table
// ("events:<table>").
const (
	TableMessages  = "direct_messages"
	TableOrders    = "orders"
	TableExports   = "export_requests"
	TableCurrency  = "currency_transfer_requests"
	TableCases     = "cases"
	channelPrefix  = "events:"
	channelPattern = channelPrefix + "*"
)

type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
)

// Event is one mutation on a source table. UserID, when set, narrows
// websocket fan-out to that user's sockets; the feed engine always receives
// the event regardless.
type Event struct {
	Type    EventType       `json:"type"`
	Table   string          `json:"table"`
	UserID  *uuid.UUID      `json:"user_id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, evt Event)
}

type redisPublisher struct {
	client *redis.Client
	log    *zap.Logger
}

func NewPublisher(client *redis.Client, logger *zap.Logger) Publisher {
	return &redisPublisher{client: client, log: logger}
}

// Publish is best effort: a lost event only delays the feed until the next
// pull, so failures are logged and swallowed.
func (p *redisPublisher) Publish(ctx context.Context, evt Event) {
	if p.client == nil {
		return
	}
	data, err := json.Marshal(evt)
	if err != nil {
		p.log.Error("marshal event", zap.Error(err))
		return
	}
	if err := p.client.Publish(ctx, channelPrefix+evt.Table, data).Err(); err != nil {
		p.log.Warn("publish event", zap.String("table", evt.Table), zap.Error(err))
	}
}

// Handler receives decoded change-feed events.
type Handler interface {
	HandleEvent(evt Event)
}

// Subscriber fans change-feed events out to the registered handlers
// (typically the feed engine and the websocket hub).
type Subscriber struct {
	client   *redis.Client
	handlers []Handler
	log      *zap.Logger
}

func NewSubscriber(client *redis.Client, logger *zap.Logger, handlers ...Handler) *Subscriber {
	return &Subscriber{client: client, handlers: handlers, log: logger}
}

// Run blocks until ctx is cancelled; callers start it in a goroutine.
func (s *Subscriber) Run(ctx context.Context) {
	pubsub := s.client.PSubscribe(ctx, channelPattern)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var evt Event
			if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
				s.log.Warn("decode event", zap.String("channel", msg.Channel), zap.Error(err))
				continue
			}
			if evt.Table == "" {
				evt.Table = strings.TrimPrefix(msg.Channel, channelPrefix)
			}
			for _, h := range s.handlers {
				h.HandleEvent(evt)
			}
		}
	}
}
