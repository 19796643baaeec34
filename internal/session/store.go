package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	flashKeyPrefix   = "flash:"

	// Flashes outlive the page that set them by a comfortable margin but not
	// by much; they are one-shot notices, not durable state.
	flashTTL = 30 * time.Minute
)

// Store persists session bindings and flash messages in Redis. A session id
// exists client-side as a cookie from the first request; the binding to a
// user id exists server-side only between login and logout/expiry.
type Store struct {
	client   *redis.Client
	lifetime time.Duration
}

// NewStore returns a Store writing through the given client. Sessions expire
// after the configured lifetime.
func NewStore(client *redis.Client, lifetime time.Duration) *Store {
	return &Store{client: client, lifetime: lifetime}
}

// NewSessionID returns a fresh opaque session identifier.
func NewSessionID() string {
	return uuid.New().String()
}

// Bind associates the session with the given user id, moving the session
// from Anonymous to Identified.
func (s *Store) Bind(ctx context.Context, sid string, userID uint) error {
	return s.client.Set(ctx, sessionKeyPrefix+sid,
		strconv.FormatUint(uint64(userID), 10), s.lifetime).Err()
}

// Unbind removes the session's user binding, returning it to Anonymous. It is
// idempotent: unbinding an anonymous session is not an error.
func (s *Store) Unbind(ctx context.Context, sid string) error {
	return s.client.Del(ctx, sessionKeyPrefix+sid).Err()
}

// UserID returns the user id bound to the session, if any.
func (s *Store) UserID(ctx context.Context, sid string) (uint, bool, error) {
	val, err := s.client.Get(ctx, sessionKeyPrefix+sid).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, false, err
	}
	return uint(id), true, nil
}

// Flash queues a one-shot message for the session's next rendered page.
func (s *Store) Flash(ctx context.Context, sid, message string) error {
	key := flashKeyPrefix + sid
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, message)
	pipe.Expire(ctx, key, flashTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// TakeFlashes drains and returns the session's pending flash messages.
func (s *Store) TakeFlashes(ctx context.Context, sid string) ([]string, error) {
	key := flashKeyPrefix + sid
	pipe := s.client.TxPipeline()
	lrange := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	return lrange.Val(), nil
}
