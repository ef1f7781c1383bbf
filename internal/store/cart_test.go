package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawshop/internal/api"
)

// fakeCartAPI models the backend's cart semantics: lines merge per product,
// quantities clamp to stock, and the mutation responses carry no state the
// client could use (the store must refetch).
type fakeCartAPI struct {
	mu       sync.Mutex
	lines    []api.CartItem
	products map[uuid.UUID]api.Product

	fetchErr  error
	mutateErr error
	fetches   int
}

func newFakeCartAPI(products ...api.Product) *fakeCartAPI {
	f := &fakeCartAPI{products: make(map[uuid.UUID]api.Product)}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeCartAPI) Cart(ctx context.Context) (*api.CartContents, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	lines := make([]api.CartItem, len(f.lines))
	copy(lines, f.lines)
	var total float64
	for _, l := range lines {
		total += l.Product.Price * float64(l.Quantity)
	}
	return &api.CartContents{CartItems: lines, Total: total}, nil
}

func (f *fakeCartAPI) AddCartItem(ctx context.Context, productID uuid.UUID, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return f.mutateErr
	}
	product, ok := f.products[productID]
	if !ok {
		return &api.Error{Status: 404, Message: "Product not found"}
	}
	for i := range f.lines {
		if f.lines[i].ProductID == productID {
			f.lines[i].Quantity = clamp(f.lines[i].Quantity+quantity, product.Stock)
			return nil
		}
	}
	f.lines = append(f.lines, api.CartItem{
		ID:        uuid.New(),
		ProductID: productID,
		Product:   product,
		Quantity:  clamp(quantity, product.Stock),
	})
	return nil
}

func (f *fakeCartAPI) UpdateCartItem(ctx context.Context, lineID uuid.UUID, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return f.mutateErr
	}
	for i := range f.lines {
		if f.lines[i].ID == lineID {
			f.lines[i].Quantity = clamp(quantity, f.lines[i].Product.Stock)
			return nil
		}
	}
	return &api.Error{Status: 404, Message: "Cart item not found"}
}

func (f *fakeCartAPI) RemoveCartItem(ctx context.Context, lineID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return f.mutateErr
	}
	for i := range f.lines {
		if f.lines[i].ID == lineID {
			f.lines = append(f.lines[:i], f.lines[i+1:]...)
			return nil
		}
	}
	return &api.Error{Status: 404, Message: "Cart item not found"}
}

func (f *fakeCartAPI) ClearCart(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutateErr != nil {
		return f.mutateErr
	}
	f.lines = nil
	return nil
}

func clamp(q, stock int) int {
	if q > stock {
		return stock
	}
	return q
}

func kibble(price float64, stock int) api.Product {
	return api.Product{ID: uuid.New(), Name: "Premium Kibble", Price: price, Stock: stock}
}

func TestCartStore_AddRefetchesAsTruth(t *testing.T) {
	product := kibble(250, 10)
	backend := newFakeCartAPI(product)
	cart := NewCartStore(backend, nil, nil)

	require.NoError(t, cart.Add(context.Background(), product.ID, 2))

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, product.ID, items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 500.0, cart.Total())
	assert.Equal(t, 2, cart.Count())
}

func TestCartStore_ServerMergeVisibleAfterRefetch(t *testing.T) {
	product := kibble(100, 10)
	backend := newFakeCartAPI(product)
	cart := NewCartStore(backend, nil, nil)
	ctx := context.Background()

	require.NoError(t, cart.Add(ctx, product.ID, 1))
	require.NoError(t, cart.Add(ctx, product.ID, 2))

	// The backend merged both adds into one line; the mirror must agree.
	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestCartStore_ServerClampVisibleAfterRefetch(t *testing.T) {
	product := kibble(100, 5)
	backend := newFakeCartAPI(product)
	cart := NewCartStore(backend, nil, nil)
	ctx := context.Background()

	require.NoError(t, cart.Add(ctx, product.ID, 1))
	lineID := cart.Items()[0].ID
	require.NoError(t, cart.Update(ctx, lineID, 50))

	// Stock clamping happened server-side; the mirror reflects it because
	// the store refetched instead of trusting its own request.
	assert.Equal(t, 5, cart.Items()[0].Quantity)
	assert.Equal(t, 500.0, cart.Total())
}

func TestCartStore_TotalMatchesSnapshotSum(t *testing.T) {
	pa := kibble(250, 100)
	pb := api.Product{ID: uuid.New(), Name: "Salmon Treats", Price: 89.5, Stock: 100}
	backend := newFakeCartAPI(pa, pb)
	cart := NewCartStore(backend, nil, nil)
	ctx := context.Background()

	require.NoError(t, cart.Add(ctx, pa.ID, 2))
	require.NoError(t, cart.Add(ctx, pb.ID, 3))

	var paLine, pbLine uuid.UUID
	for _, item := range cart.Items() {
		if item.ProductID == pa.ID {
			paLine = item.ID
		} else {
			pbLine = item.ID
		}
	}
	require.NoError(t, cart.Update(ctx, pbLine, 1))
	require.NoError(t, cart.Remove(ctx, paLine))

	// One line left: pb at quantity 1.
	var want float64
	for _, item := range cart.Items() {
		want += item.Product.Price * float64(item.Quantity)
	}
	assert.Equal(t, want, cart.Total())
	assert.Equal(t, 89.5, cart.Total())
	assert.Equal(t, 1, cart.Count())
}

func TestCartStore_ClearEmptiesWithoutRefetch(t *testing.T) {
	product := kibble(100, 10)
	backend := newFakeCartAPI(product)
	cart := NewCartStore(backend, nil, nil)
	ctx := context.Background()

	require.NoError(t, cart.Add(ctx, product.ID, 4))
	fetchesBefore := backend.fetches

	require.NoError(t, cart.Clear(ctx))

	assert.Equal(t, 0, cart.Count())
	assert.Empty(t, cart.Items())
	assert.Equal(t, fetchesBefore, backend.fetches, "clear must not refetch")
}

func TestCartStore_FailedFetchKeepsStaleState(t *testing.T) {
	product := kibble(100, 10)
	backend := newFakeCartAPI(product)
	cart := NewCartStore(backend, nil, nil)
	ctx := context.Background()

	require.NoError(t, cart.Add(ctx, product.ID, 2))

	backend.fetchErr = errors.New("backend down")
	err := cart.Fetch(ctx)
	require.Error(t, err)

	// Stale but consistent: the prior mirror is untouched.
	assert.Equal(t, 2, cart.Count())
	assert.Equal(t, 200.0, cart.Total())
	assert.Error(t, cart.Err())

	backend.fetchErr = nil
	require.NoError(t, cart.Fetch(ctx))
	assert.NoError(t, cart.Err())
}

func TestCartStore_MutationErrorPropagates(t *testing.T) {
	product := kibble(100, 10)
	backend := newFakeCartAPI(product)
	cart := NewCartStore(backend, nil, nil)
	ctx := context.Background()

	backend.mutateErr = &api.Error{Status: 401, Message: "Unauthorized"}
	err := cart.Add(ctx, product.ID, 1)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Empty(t, cart.Items())
	assert.Error(t, cart.Err())
}

func TestCartStore_AddRejectsNonPositiveQuantity(t *testing.T) {
	backend := newFakeCartAPI()
	cart := NewCartStore(backend, nil, nil)

	for _, q := range []int{0, -1} {
		err := cart.Add(context.Background(), uuid.New(), q)
		require.ErrorIs(t, err, ErrInvalidQuantity)
	}
	assert.Zero(t, backend.fetches, "guard must fire before any network call")
}

func TestCartStore_PersistedMirrorRestores(t *testing.T) {
	kv := openKV(t)
	product := kibble(120, 10)
	backend := newFakeCartAPI(product)

	cart := NewCartStore(backend, kv, nil)
	require.NoError(t, cart.Add(context.Background(), product.ID, 2))

	// A fresh store over the same storage sees the last-synced mirror
	// before any fetch.
	restored := NewCartStore(newFakeCartAPI(), kv, nil)
	assert.Equal(t, 2, restored.Count())
	assert.Equal(t, 240.0, restored.Total())
}

func TestCartStore_ConcurrentMutationsSerialize(t *testing.T) {
	product := kibble(10, 1000)
	backend := newFakeCartAPI(product)
	cart := NewCartStore(backend, nil, nil)
	ctx := context.Background()

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_ = cart.Add(ctx, product.ID, 1)
		}()
	}
	wg.Wait()

	// Every add settled through its own refetch; the final mirror holds the
	// full quantity.
	assert.Equal(t, workers, cart.Count())
	require.NoError(t, cart.Err())
}
