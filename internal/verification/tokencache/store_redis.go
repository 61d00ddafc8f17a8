package tokencache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"integrationhub/internal/verification/models"
)

// casScript replaces the entry only if it is absent (Redis already expired it)
// or its token still matches ARGV[1]. The value and its expiry are written by
// one SET.
var casScript = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if current and cjson.decode(current).token ~= ARGV[1] then
  return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PXAT', ARGV[3])
return 1
`)

// RedisStore shares tokens across replicas. Entries expire in Redis at the
// token's own expiry.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore creates a store on an existing client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Load(ctx context.Context, providerID string) (*models.CachedToken, error) {
	raw, err := s.client.Get(ctx, Key(providerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	var tok models.CachedToken
	if err := json.Unmarshal(raw, &tok); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return &tok, nil
}

func (s *RedisStore) CompareAndSwap(ctx context.Context, providerID string, old, next *models.CachedToken) (bool, error) {
	payload, err := json.Marshal(next)
	if err != nil {
		return false, fmt.Errorf("encode token: %w", err)
	}
	expected := ""
	if old != nil {
		expected = old.Token
	}

	res, err := casScript.Run(ctx, s.client,
		[]string{Key(providerID)},
		expected, payload, next.ExpiresAt.UnixMilli(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("swap token: %w", err)
	}
	return res == 1, nil
}
