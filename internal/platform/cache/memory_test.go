package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestMemoryStore_ExpiresEntries(t *testing.T) {
	c := &clock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryStore().WithClock(c.now)
	ctx := context.Background()

	if err := store.SetJSON(ctx, "k", map[string]int{"v": 1}, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got map[string]int
	ok, err := store.GetJSON(ctx, "k", &got)
	if err != nil || !ok || got["v"] != 1 {
		t.Fatalf("expected hit, got ok=%v err=%v value=%v", ok, err, got)
	}

	c.t = c.t.Add(time.Minute)
	ok, err = store.GetJSON(ctx, "k", &got)
	if err != nil || ok {
		t.Fatalf("expected miss after ttl, got ok=%v err=%v", ok, err)
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	_ = store.SetJSON(ctx, "k", "v", 0)
	_ = store.Delete(ctx, "k")

	var got string
	if ok, _ := store.GetJSON(ctx, "k", &got); ok {
		t.Fatalf("expected key to be deleted")
	}
}

func TestMemoryStore_Lock(t *testing.T) {
	c := &clock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryStore().WithClock(c.now)
	ctx := context.Background()

	release, err := store.Lock(ctx, "lock", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Lock(ctx, "lock", time.Minute); !errors.Is(err, ErrLockHeld) {
		t.Fatalf("expected ErrLockHeld, got %v", err)
	}

	c.t = c.t.Add(2 * time.Minute)
	releaseSecond, err := store.Lock(ctx, "lock", time.Minute)
	if err != nil {
		t.Fatalf("expected expired lock to be reacquired, got %v", err)
	}

	// The stale holder must not free the new owner's lock.
	_ = release(ctx)
	if _, err := store.Lock(ctx, "lock", time.Minute); !errors.Is(err, ErrLockHeld) {
		t.Fatalf("expected lock still held by second owner, got %v", err)
	}

	_ = releaseSecond(ctx)
	if _, err := store.Lock(ctx, "lock", time.Minute); err != nil {
		t.Fatalf("expected lock to be free, got %v", err)
	}
}
