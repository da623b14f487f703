// Package redis keeps short-lived keys: idempotency keys with their stored replies, and
// revoked sessions.
package redis

import (
	"context"
	"encoding/json"
	"time"

	"discount/internal/core/ports"

	faster "github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"
)

const (
	processingMarker     = "processing"
	beginAttempts        = 2
	idempotencyKeyPrefix = "idempotency:"
	revokedKeyPrefix     = "session:revoked:"
)

var (
	_ ports.IdempotencyStore = (*Store)(nil)
	_ ports.SessionRevoker   = (*Store)(nil)
)

type Store struct {
	client redis.Cmdable
}

func NewStore(client redis.Cmdable) *Store {
	return &Store{client: client}
}

// Begin marks the key as processing if it is absent. A taken key reports the reply
// stored by Complete, or none while its request is still processing.
func (s *Store) Begin(ctx context.Context, key string, ttl time.Duration) (bool, *ports.IdempotentReply, error) {
	for range beginAttempts {
		ok, err := s.client.SetNX(ctx, idempotencyKeyPrefix+key, processingMarker, ttl).Result()
		if err != nil {
			return false, nil, faster.Wrap(err, "claim idempotency key")
		}
		if ok {
			return true, nil, nil
		}

		stored, err := s.client.Get(ctx, idempotencyKeyPrefix+key).Result()
		if faster.Is(err, redis.Nil) {
			// released between the two calls
			continue
		}
		if err != nil {
			return false, nil, faster.Wrap(err, "read idempotency key")
		}
		if stored == processingMarker {
			return false, nil, nil
		}

		var reply ports.IdempotentReply
		if err = json.Unmarshal([]byte(stored), &reply); err != nil {
			return false, nil, faster.Wrap(err, "decode idempotent reply")
		}
		return false, &reply, nil
	}
	return false, nil, nil
}

// Complete stores the reply that later requests with the key are answered with.
func (s *Store) Complete(ctx context.Context, key string, reply ports.IdempotentReply, ttl time.Duration) error {
	payload, err := json.Marshal(reply)
	if err != nil {
		return faster.Wrap(err, "encode idempotent reply")
	}
	if err = s.client.Set(ctx, idempotencyKeyPrefix+key, payload, ttl).Err(); err != nil {
		return faster.Wrap(err, "complete idempotency key")
	}
	return nil
}

// Release drops the key so the request can be retried.
func (s *Store) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, idempotencyKeyPrefix+key).Err(); err != nil {
		return faster.Wrap(err, "release idempotency key")
	}
	return nil
}

// Revoke remembers the session until its token expires anyway. Already expired
// sessions are not stored.
func (s *Store) Revoke(ctx context.Context, sessionID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, revokedKeyPrefix+sessionID, 1, ttl).Err(); err != nil {
		return faster.Wrap(err, "revoke session")
	}
	return nil
}

func (s *Store) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKeyPrefix+sessionID).Result()
	if err != nil {
		return false, faster.Wrap(err, "check revoked session")
	}
	return n > 0, nil
}
