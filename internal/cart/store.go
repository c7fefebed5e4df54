package cart

import (
	"context"
	"sync"

	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/upstream"
)

// Persister receives the network side effects of optimistic dispatches.
// *Actions satisfies it.
type Persister interface {
	AddItem(ctx context.Context, merchandiseID string) error
	UpdateItemQuantity(ctx context.Context, merchandiseID string, quantity int) error
}

// Store holds the UI-visible optimistic cart. Every dispatch applies the pure
// reducer synchronously, then fires the persistence call on its own goroutine.
// Persistence results are never folded back into the optimistic value and a
// failed persist is never rolled back; the next hydration corrects any drift.
// In-flight requests are never cancelled.
type Store struct {
	mu      sync.Mutex
	cart    Cart
	seeded  bool
	seed    func(ctx context.Context) (*Cart, error)
	persist Persister
	logger  *logger.Logger
}

// NewStore builds a store whose initial value is resolved lazily from seed,
// typically the deferred server-hydrated snapshot. A nil seed starts empty.
func NewStore(seed func(ctx context.Context) (*Cart, error), persist Persister, logg *logger.Logger) *Store {
	return &Store{
		cart:    Empty(),
		seed:    seed,
		persist: persist,
		logger:  logg,
	}
}

// Cart returns the current optimistic value, resolving the seed on first use.
func (s *Store) Cart(ctx context.Context) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureSeededLocked(ctx)
	return s.cart
}

// AddItem applies the add optimistically and persists it fire-and-forget.
// The returned channel closes when the persistence attempt settles; waiting on
// it is optional and never required for UI correctness.
func (s *Store) AddItem(ctx context.Context, variant upstream.ProductVariant, product upstream.Product) <-chan struct{} {
	s.mu.Lock()
	s.ensureSeededLocked(ctx)
	s.cart = AddOrIncrement(s.cart, variant, product)
	s.mu.Unlock()

	done := make(chan struct{})
	go func(ctx context.Context) {
		defer close(done)
		if err := s.persist.AddItem(ctx, variant.ID); err != nil {
			s.logger.Error(ctx, "cart.optimistic_add_persist_failed", err)
		}
	}(context.WithoutCancel(ctx))
	return done
}

// UpdateItem applies plus, minus, or delete optimistically and persists the
// resulting absolute quantity fire-and-forget. The quantity is captured from
// the post-dispatch state while still holding the lock, so two rapid updates
// for the same line each persist the state they produced. An id with no line
// in the optimistic cart is a no-op and issues no network call; the local
// view may be stale, and writing through it would delete a live server line.
func (s *Store) UpdateItem(ctx context.Context, merchandiseID string, update UpdateType) <-chan struct{} {
	s.mu.Lock()
	s.ensureSeededLocked(ctx)
	if !s.hasLineLocked(merchandiseID) {
		s.mu.Unlock()
		done := make(chan struct{})
		close(done)
		return done
	}
	s.cart = ApplyUpdate(s.cart, merchandiseID, update)
	quantity := s.quantityLocked(merchandiseID)
	s.mu.Unlock()

	done := make(chan struct{})
	go func(ctx context.Context) {
		defer close(done)
		if err := s.persist.UpdateItemQuantity(ctx, merchandiseID, quantity); err != nil {
			s.logger.Error(ctx, "cart.optimistic_update_persist_failed", err)
		}
	}(context.WithoutCancel(ctx))
	return done
}

func (s *Store) ensureSeededLocked(ctx context.Context) {
	if s.seeded {
		return
	}
	s.seeded = true
	if s.seed == nil {
		return
	}
	initial, err := s.seed(ctx)
	if err != nil {
		s.logger.Warn(ctx, "cart.seed_failed_starting_empty")
		return
	}
	if initial != nil {
		s.cart = *initial
	}
}

func (s *Store) hasLineLocked(merchandiseID string) bool {
	for _, line := range s.cart.Lines {
		if line.Merchandise.ID == merchandiseID {
			return true
		}
	}
	return false
}

func (s *Store) quantityLocked(merchandiseID string) int {
	for _, line := range s.cart.Lines {
		if line.Merchandise.ID == merchandiseID {
			return line.Quantity
		}
	}
	return 0
}
