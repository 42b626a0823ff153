package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Update statuses returned by the compare-and-swap script.
const (
	casStatusNotFound int64 = 0
	casStatusConflict int64 = 1
	casStatusUpdated  int64 = 2
	casStatusCorrupt  int64 = 3
)

// casUpdateScript replaces the record only while its stored version
// still matches the expected one, in a single atomic step. ARGV[1] is
// the new payload, ARGV[2] the expected version, ARGV[3] the TTL in
// milliseconds.
const casUpdateScript = `
local cur = redis.call("GET", KEYS[1])
if not cur then
  return 0
end
local ok, decoded = pcall(cjson.decode, cur)
if not ok or type(decoded) ~= "table" or decoded.version == nil then
  return 3
end
if tonumber(decoded.version) ~= tonumber(ARGV[2]) then
  return 1
end
redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[3])
return 2
`

var casUpdateLua = redis.NewScript(casUpdateScript)

// RedisStore persists session records as JSON values in Redis, relying
// on SETNX for create-only semantics and a Lua script for the
// version-matched conditional write.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore wraps an established Redis client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (r *RedisStore) Get(ctx context.Context, subject string) (*Session, error) {
	payload, err := r.client.Get(ctx, Key(subject)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	var s Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, errors.Join(ErrCorruptRecord, err)
	}
	return &s, nil
}

func (r *RedisStore) Create(ctx context.Context, subject string, s *Session, ttl time.Duration) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}

	created, err := r.client.SetNX(ctx, Key(subject), payload, ttl).Result()
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	if !created {
		return ErrSessionExists
	}
	return nil
}

func (r *RedisStore) Update(ctx context.Context, subject string, s *Session, expectedVersion int64, ttl time.Duration) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}

	status, err := casUpdateLua.Run(ctx, r.client,
		[]string{Key(subject)},
		payload, expectedVersion, ttl.Milliseconds(),
	).Int64()
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}

	switch status {
	case casStatusUpdated:
		return nil
	case casStatusNotFound:
		return ErrSessionNotFound
	case casStatusConflict:
		return ErrVersionConflict
	case casStatusCorrupt:
		return ErrCorruptRecord
	default:
		return fmt.Errorf("unexpected cas status %d", status)
	}
}

func (r *RedisStore) Delete(ctx context.Context, subject string) (bool, error) {
	n, err := r.client.Del(ctx, Key(subject)).Result()
	if err != nil {
		return false, errors.Join(ErrStoreUnavailable, err)
	}
	return n > 0, nil
}
