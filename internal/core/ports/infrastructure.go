package ports

import (
	"context"
	"time"

	"discount/internal/core/domain/model/kernel"
)

// ChangeOp is the kind of row change reported by the change feed.
type ChangeOp string

const (
	ChangeInsert ChangeOp = "INSERT"
	ChangeUpdate ChangeOp = "UPDATE"
	ChangeDelete ChangeOp = "DELETE"
	// ChangeResync means notifications may have been lost, e.g. after a reconnect.
	ChangeResync ChangeOp = "RESYNC"
)

// Change notifies that a row of Table changed. It carries no payload: consumers
// re-fetch.
type Change struct {
	Table string   `json:"table"`
	Op    ChangeOp `json:"op"`
	ID    string   `json:"id"`
}

// ChangeFeed pushes row changes. The channel is closed when ctx ends.
type ChangeFeed interface {
	Subscribe(ctx context.Context) (<-chan Change, error)
}

// IdempotentReply is the response stored for a request that completed.
type IdempotentReply struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// IdempotencyStore tracks request keys from processing to completion.
//
// Begin claims a free key for processing and returns true. For a taken key it returns
// false together with the stored reply, or a nil reply while the first request is still
// processing. Release frees a key whose request failed so the client may retry it.
type IdempotencyStore interface {
	Begin(ctx context.Context, key string, ttl time.Duration) (bool, *IdempotentReply, error)
	Complete(ctx context.Context, key string, reply IdempotentReply, ttl time.Duration) error
	Release(ctx context.Context, key string) error
}

// SessionRevoker remembers signed-out sessions until their token would have expired.
type SessionRevoker interface {
	Revoke(ctx context.Context, sessionID string, until time.Time) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns errs.ErrInvalidCredentials on mismatch.
	Compare(hash, password string) error
}

// Session is an authenticated session as carried by a token.
type Session struct {
	ID        string
	Actor     kernel.Actor
	Email     string
	ExpiresAt time.Time
}

// TokenIssuer signs and verifies session tokens.
type TokenIssuer interface {
	Issue(actor kernel.Actor, email string) (token string, session Session, err error)
	// Parse returns errs.ErrInvalidCredentials for bad or expired tokens.
	Parse(token string) (Session, error)
}
