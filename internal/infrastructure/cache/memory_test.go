package cache

import (
	"testing"
	"time"
)

func TestMemoryStore_SetAndGet(t *testing.T) {
	store := NewMemoryStore()

	store.Set("key", "value", time.Minute)
	got, ok := store.Get("key")
	if !ok || got != "value" {
		t.Fatalf("expected value, got %q (ok=%v)", got, ok)
	}

	if _, ok := store.Get("missing"); ok {
		t.Fatalf("expected miss for unknown key")
	}
}

func TestMemoryStore_GetExpired(t *testing.T) {
	store := NewMemoryStore()

	store.Set("key", "value", -time.Second)
	if _, ok := store.Get("key"); ok {
		t.Fatalf("expected miss for expired key")
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore()

	store.Set("key", "value", time.Minute)
	store.Delete("key")
	if _, ok := store.Get("key"); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestMemoryStore_Remember(t *testing.T) {
	store := NewMemoryStore()

	if store.Remember("delivery-1", time.Minute) {
		t.Fatalf("first sighting must not report seen")
	}
	if !store.Remember("delivery-1", time.Minute) {
		t.Fatalf("second sighting must report seen")
	}
	if store.Remember("delivery-2", time.Minute) {
		t.Fatalf("distinct key must not report seen")
	}
}

func TestMemoryStore_RememberExpiredIsFresh(t *testing.T) {
	store := NewMemoryStore()

	store.Remember("delivery-1", -time.Second)
	if store.Remember("delivery-1", time.Minute) {
		t.Fatalf("expired key must count as first sighting again")
	}
}
