package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func setupStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStore(client, time.Hour), mr
}

func TestBindAndResolveUserID(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	sid := NewSessionID()

	// Unbound session reads as anonymous, not as an error.
	id, ok, err := store.UserID(ctx, sid)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, uint(0), id)

	assert.NoError(t, store.Bind(ctx, sid, 42))

	id, ok, err = store.UserID(ctx, sid)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)
}

func TestUnbindIsIdempotent(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	sid := NewSessionID()

	assert.NoError(t, store.Bind(ctx, sid, 7))
	assert.NoError(t, store.Unbind(ctx, sid))

	_, ok, err := store.UserID(ctx, sid)
	assert.NoError(t, err)
	assert.False(t, ok)

	// Unbinding an already-anonymous session is a no-op, not an error.
	assert.NoError(t, store.Unbind(ctx, sid))
	assert.NoError(t, store.Unbind(ctx, "never-seen"))
}

func TestSessionExpiry(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()
	sid := NewSessionID()

	assert.NoError(t, store.Bind(ctx, sid, 42))

	mr.FastForward(2 * time.Hour)

	_, ok, err := store.UserID(ctx, sid)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestFlashesDrainInOrder(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	sid := NewSessionID()

	assert.NoError(t, store.Flash(ctx, sid, "first"))
	assert.NoError(t, store.Flash(ctx, sid, "second"))

	flashes, err := store.TakeFlashes(ctx, sid)
	assert.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, flashes)

	// Drained means drained.
	flashes, err = store.TakeFlashes(ctx, sid)
	assert.NoError(t, err)
	assert.Empty(t, flashes)
}

func TestFlashesAreScopedPerSession(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()
	alice := NewSessionID()
	bob := NewSessionID()

	assert.NoError(t, store.Flash(ctx, alice, "for alice"))

	flashes, err := store.TakeFlashes(ctx, bob)
	assert.NoError(t, err)
	assert.Empty(t, flashes)

	flashes, err = store.TakeFlashes(ctx, alice)
	assert.NoError(t, err)
	assert.Equal(t, []string{"for alice"}, flashes)
}

func TestNewSessionIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		sid := NewSessionID()
		assert.NotEmpty(t, sid)
		assert.False(t, seen[sid])
		seen[sid] = true
	}
}
