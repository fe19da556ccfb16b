package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"product-dashboard/internal/models"
)

// Store keeps the product list each open dashboard view loaded, so that
// filtering and paging within a view work on that view's own fetch. Views
// never share data; a fresh page load always fetches again.
type Store struct {
	mu    sync.Mutex
	views map[string]*snapshot
	ttl   time.Duration
	now   func() time.Time
}

type snapshot struct {
	products []models.EnrichedProduct
	lastUsed time.Time
}

// NewStore returns a Store that forgets a view once it has been idle for ttl.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		views: make(map[string]*snapshot),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Put records products under a new view id and returns the id.
func (s *Store) Put(products []models.EnrichedProduct) string {
	id := uuid.NewString()
	s.Replace(id, products)
	return id
}

// Replace records products under id, replacing whatever was there.
func (s *Store) Replace(id string, products []models.EnrichedProduct) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.views[id] = &snapshot{products: products, lastUsed: now}
}

// Get returns the products of view id and marks the view as used.
func (s *Store) Get(id string) ([]models.EnrichedProduct, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}

	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.views[id]
	if !ok {
		return nil, false
	}
	if now.Sub(snap.lastUsed) > s.ttl {
		delete(s.views, id)
		return nil, false
	}
	snap.lastUsed = now
	return snap.products, true
}

// Find returns one product of view id.
func (s *Store) Find(id string, productID int) (models.EnrichedProduct, bool) {
	products, ok := s.Get(id)
	if !ok {
		return models.EnrichedProduct{}, false
	}
	for _, p := range products {
		if p.ID == productID {
			return p, true
		}
	}
	return models.EnrichedProduct{}, false
}

// Sweep drops idle views and reports how many it dropped.
func (s *Store) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for id, snap := range s.views {
		if now.Sub(snap.lastUsed) > s.ttl {
			delete(s.views, id)
			dropped++
		}
	}
	return dropped
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.views)
}
