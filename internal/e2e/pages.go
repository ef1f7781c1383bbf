package e2e

import (
	"fmt"

	"github.com/go-rod/rod/lib/proto"
)

// The storefront UI is rendered in Thai; locator texts below are the exact
// strings the deployed app shows.

// LoginPage wraps the /login screen.
type LoginPage struct {
	page *Page
}

func NewLoginPage(p *Page) *LoginPage { return &LoginPage{page: p} }

func (l *LoginPage) Goto() error { return l.page.Goto("/login") }

// Login fills the credential form and submits. Navigation is asserted by the
// caller, since where the app routes depends on the account's role.
func (l *LoginPage) Login(email, password string) error {
	if err := l.page.Fill(`input[type="email"]`, email); err != nil {
		return err
	}
	if err := l.page.Fill(`input[type="password"]`, password); err != nil {
		return err
	}
	return l.page.Click(`button[type="submit"]`)
}

// Submit clicks the login button without filling anything.
func (l *LoginPage) Submit() error {
	return l.page.Click(`button[type="submit"]`)
}

// ExpectError asserts the inline error banner shows up.
func (l *LoginPage) ExpectError() error {
	return l.page.WaitVisible(".error-message")
}

// ExpectStillOnLogin asserts no navigation happened.
func (l *LoginPage) ExpectStillOnLogin() error {
	return l.page.WaitPath("/login")
}

// ProductsPage wraps the catalog screen.
type ProductsPage struct {
	page *Page
}

func NewProductsPage(p *Page) *ProductsPage { return &ProductsPage{page: p} }

func (pp *ProductsPage) Goto() error { return pp.page.Goto("/products") }

func (pp *ProductsPage) Search(name string) error {
	if err := pp.page.Fill(`input[name="search"]`, name); err != nil {
		return err
	}
	return pp.page.ClickText("button", "ค้นหา")
}

func (pp *ProductsPage) FilterByCategory(categoryName string) error {
	return pp.page.ClickText(".filter-btn", categoryName)
}

// FirstProductName waits for the grid and returns the first card's title so
// the caller can verify it later in the cart.
func (pp *ProductsPage) FirstProductName() (string, error) {
	if err := pp.page.WaitVisible(".product-card"); err != nil {
		return "", err
	}
	return pp.page.Text(".product-card h3")
}

// FirstProductPrice returns the first card's displayed price, e.g. "฿1,290".
func (pp *ProductsPage) FirstProductPrice() (string, error) {
	if err := pp.page.WaitVisible(".product-card"); err != nil {
		return "", err
	}
	return pp.page.Text(".product-card .price-amount")
}

// AddFirstToCart clicks the add-to-cart button on the first product card.
func (pp *ProductsPage) AddFirstToCart() error {
	return pp.page.ClickText(".product-card button", "ใส่ตะกร้า")
}

func (pp *ProductsPage) ExpectProductVisible(name string) error {
	return pp.page.WaitText(".product-card", name)
}

// CartPage wraps the /cart screen.
type CartPage struct {
	page *Page
}

func NewCartPage(p *Page) *CartPage { return &CartPage{page: p} }

func (c *CartPage) Goto() error { return c.page.Goto("/cart") }

func (c *CartPage) ExpectItem(name string) error {
	return c.page.WaitText(".cart-item", name)
}

func (c *CartPage) ExpectEmpty() error {
	return c.page.WaitVisible(".empty-cart")
}

// TotalText returns the displayed cart total.
func (c *CartPage) TotalText() (string, error) {
	return c.page.Text(".total-amount")
}

// ExpectTotal asserts the displayed total contains amount.
func (c *CartPage) ExpectTotal(amount string) error {
	return c.page.WaitText(".total-amount", amount)
}

func (c *CartPage) ProceedToCheckout() error {
	return c.page.ClickText("button", "ดำเนินการชำระเงิน")
}

// ExpectLineCount asserts the exact number of rendered cart lines.
func (c *CartPage) ExpectLineCount(want int) error {
	if err := c.page.WaitVisible(".cart-item"); err != nil {
		return err
	}
	items, err := c.page.page.Timeout(c.page.assertTimeout).Elements(".cart-item")
	if err != nil {
		return err
	}
	if len(items) != want {
		return fmt.Errorf("expected %d cart lines, found %d", want, len(items))
	}
	return nil
}

// IncreaseQuantity clicks the plus control on the first cart line. The line
// holds two quantity buttons, minus then plus.
func (c *CartPage) IncreaseQuantity() error {
	item, err := c.page.page.Timeout(c.page.assertTimeout).Element(".cart-item")
	if err != nil {
		return fmt.Errorf("cart line not found: %w", err)
	}
	btns, err := item.Elements(".quantity-btn")
	if err != nil {
		return err
	}
	if len(btns) < 2 {
		return fmt.Errorf("expected 2 quantity buttons, found %d", len(btns))
	}
	return btns[1].Click(proto.InputMouseButtonLeft, 1)
}

// ExpectQuantity asserts the first line's displayed quantity.
func (c *CartPage) ExpectQuantity(quantity string) error {
	return c.page.WaitText(".quantity-value", quantity)
}

// RemoveFirstItem clicks the first line's remove control and confirms the
// prompt.
func (c *CartPage) RemoveFirstItem() error {
	if err := c.page.Click(".cart-item-remove"); err != nil {
		return err
	}
	return c.page.Click(".modal-btn-confirm")
}

// CheckoutPage wraps the /checkout screen.
type CheckoutPage struct {
	page *Page
}

func NewCheckoutPage(p *Page) *CheckoutPage { return &CheckoutPage{page: p} }

func (c *CheckoutPage) FillAddress(address string) error {
	return c.page.Fill(`textarea[placeholder="กรอกที่อยู่สำหรับจัดส่งสินค้า..."]`, address)
}

func (c *CheckoutPage) PlaceOrder() error {
	return c.page.ClickText(`button[type="submit"]`, "ยืนยันการสั่งซื้อ")
}

// ExpectSuccess waits for the order-confirmation dialog. This follows a full
// server round trip, hence the bounded wait rather than an immediate check.
func (c *CheckoutPage) ExpectSuccess() error {
	return c.page.WaitVisible(".success-modal-content")
}

func (c *CheckoutPage) GoToOrders() error {
	return c.page.Click("button.success-btn")
}

// OrdersPage wraps the order-history screen.
type OrdersPage struct {
	page *Page
}

func NewOrdersPage(p *Page) *OrdersPage { return &OrdersPage{page: p} }

func (o *OrdersPage) Goto() error { return o.page.Goto("/orders") }

// ExpectOrderWithAddress asserts an order row carrying the address exists.
func (o *OrdersPage) ExpectOrderWithAddress(address string) error {
	return o.page.WaitText(".order-card", address)
}

// journey is a convenience bundle: every page object over one browser page.
type journey struct {
	page     *Page
	login    *LoginPage
	products *ProductsPage
	cart     *CartPage
	checkout *CheckoutPage
	orders   *OrdersPage
	admin    *AdminPages
}

func newJourney(p *Page) *journey {
	return &journey{
		page:     p,
		login:    NewLoginPage(p),
		products: NewProductsPage(p),
		cart:     NewCartPage(p),
		checkout: NewCheckoutPage(p),
		orders:   NewOrdersPage(p),
		admin:    NewAdminPages(p),
	}
}

// signIn runs the login flow and asserts the post-login route.
func (j *journey) signIn(email, password, wantPath string) error {
	if err := j.login.Goto(); err != nil {
		return err
	}
	if err := j.login.Login(email, password); err != nil {
		return err
	}
	if err := j.page.WaitPath(wantPath); err != nil {
		return fmt.Errorf("login did not land on %s: %w", wantPath, err)
	}
	return nil
}
