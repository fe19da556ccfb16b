package dashboard

import (
	"context"
	"sync"
	"testing"
	"time"

	"product-dashboard/internal/models"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(ttl time.Duration) (*Store, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := NewStore(ttl)
	s.now = clock.Now
	return s, clock
}

func TestStore_PutGet(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	products := []models.EnrichedProduct{product(1, strPtr("Mug"), nil), product(2, nil, nil)}

	id := s.Put(products)
	got, ok := s.Get(id)
	if !ok {
		t.Fatal("Get() should find a fresh view")
	}
	if len(got) != 2 {
		t.Errorf("got %d products, want 2", len(got))
	}

	p, ok := s.Find(id, 2)
	if !ok || p.ID != 2 {
		t.Errorf("Find(2) = %v, %v", p, ok)
	}
	if _, ok := s.Find(id, 99); ok {
		t.Error("Find should miss unknown products")
	}
}

func TestStore_RejectsUnknownIDs(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	s.Put(nil)

	for _, id := range []string{"", "not-a-uuid", "5f2b7c1e-0000-4000-8000-000000000000"} {
		if _, ok := s.Get(id); ok {
			t.Errorf("Get(%q) should miss", id)
		}
	}
}

func TestStore_Expiry(t *testing.T) {
	s, clock := newTestStore(time.Minute)

	idle := s.Put(nil)
	active := s.Put(nil)

	clock.Advance(45 * time.Second)
	if _, ok := s.Get(active); !ok {
		t.Fatal("active view should still be present")
	}

	clock.Advance(30 * time.Second)
	if _, ok := s.Get(idle); ok {
		t.Error("idle view should have expired")
	}
	if _, ok := s.Get(active); !ok {
		t.Error("using a view should extend its life")
	}

	clock.Advance(2 * time.Minute)
	if dropped := s.Sweep(); dropped != 1 {
		t.Errorf("Sweep() dropped %d, want 1", dropped)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d after sweep", s.Len())
	}
}

func TestStore_Run(t *testing.T) {
	s := NewStore(time.Nanosecond)
	s.Put(nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Millisecond)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for s.Len() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	if s.Len() != 0 {
		t.Error("Run should sweep expired views")
	}
}
