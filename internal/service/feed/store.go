package feed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"cargobridge/internal/domain"
)

// Store persists per-user feed state. Keys are namespaced and versioned
// (feed:v1:<user-id>) and never proactively purged; concurrent sessions for
// the same user race with last-writer-wins, which is acceptable for a
// best-effort feed.
type Store interface {
	Load(ctx context.Context, userID uuid.UUID) (domain.FeedState, error)
	Save(ctx context.Context, userID uuid.UUID, state domain.FeedState) error
}

type redisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func stateKey(userID uuid.UUID) string {
	return fmt.Sprintf("feed:v1:%s", userID)
}

func (s *redisStore) Load(ctx context.Context, userID uuid.UUID) (domain.FeedState, error) {
	data, err := s.client.Get(ctx, stateKey(userID)).Bytes()
	if err == redis.Nil {
		return domain.NewFeedState(), nil
	}
	if err != nil {
		return domain.NewFeedState(), err
	}

	var state domain.FeedState
	if err := json.Unmarshal(data, &state); err != nil {
		return domain.NewFeedState(), err
	}
	if state.ReadMap == nil {
		state.ReadMap = domain.NewFeedState().ReadMap
	}
	if state.LastSeen == nil {
		state.LastSeen = domain.NewFeedState().LastSeen
	}
	return state, nil
}

func (s *redisStore) Save(ctx context.Context, userID uuid.UUID, state domain.FeedState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, stateKey(userID), data, 0).Err()
}
