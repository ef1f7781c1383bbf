package store

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pawshop/internal/api"
	"pawshop/internal/storage"
)

// ErrInvalidQuantity rejects non-positive quantities before any network call.
var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// CartAPI is the slice of the gateway the cart store drives.
type CartAPI interface {
	Cart(ctx context.Context) (*api.CartContents, error)
	AddCartItem(ctx context.Context, productID uuid.UUID, quantity int) error
	UpdateCartItem(ctx context.Context, lineID uuid.UUID, quantity int) error
	RemoveCartItem(ctx context.Context, lineID uuid.UUID) error
	ClearCart(ctx context.Context) error
}

// CartStore mirrors the server-side cart. Mutations follow refetch-as-truth:
// the mutation response body is never trusted as the new state; the full cart
// is re-read and the mirror replaced atomically. A failed fetch leaves the
// prior mirror untouched (stale but consistent) and records the error.
//
// Mutations are serialized through ops, so two rapid calls settle in issue
// order and cannot interleave their refetches.
type CartStore struct {
	client CartAPI
	kv     *storage.Store
	log    *zap.Logger

	ops sync.Mutex // one mutate+refetch at a time

	mu      sync.RWMutex
	items   []api.CartItem
	lastErr error
}

// NewCartStore builds a cart mirror. kv may be nil to skip persistence; the
// persisted mirror only pre-populates the view before the first refetch, it
// is never authoritative. log may be nil.
func NewCartStore(client CartAPI, kv *storage.Store, log *zap.Logger) *CartStore {
	if log == nil {
		log = zap.NewNop()
	}
	s := &CartStore{client: client, kv: kv, log: log}
	if kv != nil {
		var items []api.CartItem
		if ok, err := kv.Get(storage.KeyCart, &items); err != nil {
			log.Warn("cart mirror restore failed", zap.Error(err))
		} else if ok {
			s.items = items
		}
	}
	return s
}

// Fetch re-reads the full cart and replaces the mirror. On failure the prior
// mirror is kept and the error recorded.
func (s *CartStore) Fetch(ctx context.Context) error {
	contents, err := s.client.Cart(ctx)
	if err != nil {
		s.setErr(err)
		return err
	}
	s.replace(contents.CartItems)
	return nil
}

// Add creates a cart line for productID, then refetches. Quantity must be
// positive.
func (s *CartStore) Add(ctx context.Context, productID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	s.ops.Lock()
	defer s.ops.Unlock()

	if err := s.client.AddCartItem(ctx, productID, quantity); err != nil {
		s.setErr(err)
		return err
	}
	s.log.Debug("cart line added", zap.String("product_id", productID.String()), zap.Int("quantity", quantity))
	return s.Fetch(ctx)
}

// Update sets a line's quantity, then refetches. Rejecting quantities below
// one is the caller's job; the store forwards whatever it is given.
func (s *CartStore) Update(ctx context.Context, lineID uuid.UUID, quantity int) error {
	s.ops.Lock()
	defer s.ops.Unlock()

	if err := s.client.UpdateCartItem(ctx, lineID, quantity); err != nil {
		s.setErr(err)
		return err
	}
	return s.Fetch(ctx)
}

// Remove deletes one line, then refetches.
func (s *CartStore) Remove(ctx context.Context, lineID uuid.UUID) error {
	s.ops.Lock()
	defer s.ops.Unlock()

	if err := s.client.RemoveCartItem(ctx, lineID); err != nil {
		s.setErr(err)
		return err
	}
	return s.Fetch(ctx)
}

// Clear deletes the remote cart and empties the mirror directly. The
// post-state is unambiguous, so no refetch is issued.
func (s *CartStore) Clear(ctx context.Context) error {
	s.ops.Lock()
	defer s.ops.Unlock()

	if err := s.client.ClearCart(ctx); err != nil {
		s.setErr(err)
		return err
	}
	s.replace(nil)
	return nil
}

// Items returns a copy of the mirrored lines in display order.
func (s *CartStore) Items() []api.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]api.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// Total sums snapshot price times quantity over the mirrored lines. The
// total reflects the price the cart last observed, not the catalog's current
// price.
func (s *CartStore) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, item := range s.items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// Count sums quantities over the mirrored lines.
func (s *CartStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Err returns the error recorded by the last failed operation, cleared by
// the next successful fetch.
func (s *CartStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *CartStore) replace(items []api.CartItem) {
	s.mu.Lock()
	s.items = items
	s.lastErr = nil
	s.mu.Unlock()

	if s.kv != nil {
		if err := s.kv.Put(storage.KeyCart, items); err != nil {
			s.log.Warn("cart mirror persist failed", zap.Error(err))
		}
	}
}

func (s *CartStore) setErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}
