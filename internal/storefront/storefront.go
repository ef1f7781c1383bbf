// Package storefront is the view-model over the stores: it owns the
// client-side guards that short-circuit before any network call, turns store
// errors into toasts, and leaves all rendering to the caller. The stores
// below it never touch UI.
package storefront

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pawshop/internal/api"
	"pawshop/internal/store"
)

// Validation errors, rejected before any network call.
var (
	ErrNotAuthenticated = errors.New("not logged in")
	ErrEmptyCredentials = errors.New("email and password are required")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch = errors.New("password confirmation does not match")
	ErrEmptyAddress     = errors.New("shipping address is required")
	ErrEmptyCart        = errors.New("cart is empty")
)

// Gateway is the slice of the API client the storefront drives directly.
// Cart traffic goes through the cart store instead.
type Gateway interface {
	Login(ctx context.Context, email, password string) (*api.LoginResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.User, error)
	Products(ctx context.Context, q api.ProductQuery) (*api.ProductPage, error)
	Categories(ctx context.Context) ([]api.Category, error)
	CreateOrder(ctx context.Context, shippingAddress string) (*api.Order, error)
	Orders(ctx context.Context) ([]api.Order, error)
}

// Storefront wires the stores together behind user-intent methods.
type Storefront struct {
	gateway Gateway
	session *store.SessionStore
	cart    *store.CartStore
	toasts  *store.ToastStore
	modals  *store.ModalStore
	log     *zap.Logger
}

// New builds a storefront over already-constructed stores. log may be nil.
func New(gateway Gateway, session *store.SessionStore, cart *store.CartStore, toasts *store.ToastStore, modals *store.ModalStore, log *zap.Logger) *Storefront {
	if log == nil {
		log = zap.NewNop()
	}
	return &Storefront{
		gateway: gateway,
		session: session,
		cart:    cart,
		toasts:  toasts,
		modals:  modals,
		log:     log,
	}
}

// Session exposes the session store for reads.
func (s *Storefront) Session() *store.SessionStore { return s.session }

// Cart exposes the cart store for reads.
func (s *Storefront) Cart() *store.CartStore { return s.cart }

// Toasts exposes the toast store for rendering.
func (s *Storefront) Toasts() *store.ToastStore { return s.toasts }

// Modals exposes the modal store for rendering and resolution.
func (s *Storefront) Modals() *store.ModalStore { return s.modals }

// Login authenticates and opens a session. The returned user's role decides
// where the caller routes next (admin back-office vs. home).
func (s *Storefront) Login(ctx context.Context, email, password string) (*api.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrEmptyCredentials
	}

	resp, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.session.Login(resp.User, resp.Token); err != nil {
		return nil, err
	}
	s.log.Info("logged in", zap.String("email", resp.User.Email), zap.String("role", resp.User.Role))
	return &resp.User, nil
}

// Logout closes the session. The persisted cart mirror is left in place;
// the next authenticated fetch replaces it with server truth.
func (s *Storefront) Logout() error {
	return s.session.Logout()
}

// Register validates locally, then creates the account. The caller follows
// up with Login.
func (s *Storefront) Register(ctx context.Context, req api.RegisterRequest, confirmPassword string) (*api.User, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, ErrEmptyCredentials
	}
	if len(req.Password) < 6 {
		return nil, ErrPasswordTooShort
	}
	if req.Password != confirmPassword {
		return nil, ErrPasswordMismatch
	}
	return s.gateway.Register(ctx, req)
}

// Browse lists the catalog.
func (s *Storefront) Browse(ctx context.Context, q api.ProductQuery) (*api.ProductPage, error) {
	return s.gateway.Products(ctx, q)
}

// Categories lists the catalog's categories.
func (s *Storefront) Categories(ctx context.Context) ([]api.Category, error) {
	return s.gateway.Categories(ctx)
}

// RefreshCart resynchronizes the cart mirror.
func (s *Storefront) RefreshCart(ctx context.Context) error {
	if !s.session.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	return s.cart.Fetch(ctx)
}

// AddToCart adds a product and surfaces the result as a toast.
func (s *Storefront) AddToCart(ctx context.Context, productID uuid.UUID, quantity int) error {
	if !s.session.IsAuthenticated() {
		return ErrNotAuthenticated
	}
	if err := s.cart.Add(ctx, productID, quantity); err != nil {
		s.toasts.Error(remoteMessage(err, "Could not add to cart"))
		return err
	}
	s.toasts.Success("Added to cart")
	return nil
}

// ChangeQuantity sets a line's quantity. Quantities below one are rejected
// here; the cart store forwards whatever it is given.
func (s *Storefront) ChangeQuantity(ctx context.Context, lineID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return store.ErrInvalidQuantity
	}
	if err := s.cart.Update(ctx, lineID, quantity); err != nil {
		s.toasts.Error(remoteMessage(err, "Could not update quantity"))
		return err
	}
	return nil
}

// ConfirmRemoval opens the removal prompt. The caller renders it, resolves
// the modal store, and calls RemoveFromCart on a Confirmed outcome.
func (s *Storefront) ConfirmRemoval() *store.Decision {
	return s.modals.Confirm("Remove this item from the cart?", "Confirm removal")
}

// RemoveFromCart deletes one line and surfaces the result as a toast.
func (s *Storefront) RemoveFromCart(ctx context.Context, lineID uuid.UUID) error {
	if err := s.cart.Remove(ctx, lineID); err != nil {
		s.toasts.Error(remoteMessage(err, "Could not remove item"))
		return err
	}
	s.toasts.Success("Item removed from cart")
	return nil
}

// ClearCart empties the cart after the prompt the caller already resolved.
func (s *Storefront) ClearCart(ctx context.Context) error {
	if err := s.cart.Clear(ctx); err != nil {
		s.toasts.Error(remoteMessage(err, "Could not clear cart"))
		return err
	}
	return nil
}

// Checkout validates the order locally, places it, and resynchronizes the
// cart (the backend drains it). An empty cart short-circuits to a warning
// toast without touching the network.
func (s *Storefront) Checkout(ctx context.Context, shippingAddress string) (*api.Order, error) {
	if !s.session.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	if s.cart.Count() == 0 {
		s.toasts.Warning("Your cart is empty")
		return nil, ErrEmptyCart
	}
	if strings.TrimSpace(shippingAddress) == "" {
		return nil, ErrEmptyAddress
	}

	order, err := s.gateway.CreateOrder(ctx, shippingAddress)
	if err != nil {
		s.toasts.Error(remoteMessage(err, "Could not place order"))
		return nil, err
	}

	// Best effort: the order succeeded even if this refetch does not.
	if err := s.cart.Fetch(ctx); err != nil {
		s.log.Warn("post-checkout cart refresh failed", zap.Error(err))
	}
	s.toasts.Success("Order placed")
	return order, nil
}

// OrderHistory lists the user's past orders.
func (s *Storefront) OrderHistory(ctx context.Context) ([]api.Order, error) {
	if !s.session.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	return s.gateway.Orders(ctx)
}

// remoteMessage prefers the server-provided message, falling back to a
// generic one.
func remoteMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
