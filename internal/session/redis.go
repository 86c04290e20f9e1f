package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/staff-directory/internal/directory"
)

// RedisStore keeps session state as JSON values with a sliding TTL so that
// several service instances share it.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore wraps client; keys are prefix+id.
func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

// Load reads the JSON state stored under the prefixed key. A missing key is
// not an error.
func (s *RedisStore) Load(ctx context.Context, id string) (directory.State, bool, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return directory.State{}, false, nil
	}
	if err != nil {
		return directory.State{}, false, fmt.Errorf("load session: %w", err)
	}
	var state directory.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return directory.State{}, false, fmt.Errorf("decode session: %w", err)
	}
	return state, true, nil
}

// Save writes state as JSON with the store TTL.
func (s *RedisStore) Save(ctx context.Context, id string, state directory.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(id), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
