package e2e

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"pawshop/internal/config"
)

// Suite returns the built-in scenarios, ported one-to-one from the user
// journeys the storefront supports.
func Suite() []Scenario {
	return []Scenario{
		{
			Name: "auth: user login redirects home",
			Tags: []string{"auth", "smoke"},
			Run: func(ctx context.Context, j *journey, cfg config.E2EConfig) error {
				return j.signIn(cfg.UserEmail, cfg.UserPassword, "/")
			},
		},
		{
			Name: "auth: admin login redirects to back-office",
			Tags: []string{"auth", "admin"},
			Run: func(ctx context.Context, j *journey, cfg config.E2EConfig) error {
				if err := j.signIn(cfg.AdminEmail, cfg.AdminPassword, "/admin"); err != nil {
					return err
				}
				return j.admin.ExpectDashboard()
			},
		},
		{
			Name: "auth: wrong password shows error and stays on login",
			Tags: []string{"auth", "negative"},
			Run: func(ctx context.Context, j *journey, cfg config.E2EConfig) error {
				if err := j.login.Goto(); err != nil {
					return err
				}
				if err := j.login.Login(cfg.UserEmail, "wrongpassword"); err != nil {
					return err
				}
				if err := j.login.ExpectError(); err != nil {
					return err
				}
				return j.login.ExpectStillOnLogin()
			},
		},
		{
			Name: "auth: unknown email shows error and stays on login",
			Tags: []string{"auth", "negative"},
			Run: func(ctx context.Context, j *journey, cfg config.E2EConfig) error {
				if err := j.login.Goto(); err != nil {
					return err
				}
				if err := j.login.Login("notfound@fake.com", cfg.UserPassword); err != nil {
					return err
				}
				if err := j.login.ExpectError(); err != nil {
					return err
				}
				return j.login.ExpectStillOnLogin()
			},
		},
		{
			Name: "auth: empty submit stays on login",
			Tags: []string{"auth", "negative"},
			Run: func(ctx context.Context, j *journey, cfg config.E2EConfig) error {
				if err := j.login.Goto(); err != nil {
					return err
				}
				// Native required-field validation blocks the submit.
				if err := j.login.Submit(); err != nil {
					return err
				}
				return j.login.ExpectStillOnLogin()
			},
		},
		{
			Name: "shop: search narrows the product grid",
			Tags: []string{"shop", "catalog"},
			Run: func(ctx context.Context, j *journey, cfg config.E2EConfig) error {
				if err := j.signIn(cfg.UserEmail, cfg.UserPassword, "/"); err != nil {
					return err
				}
				if err := j.products.Goto(); err != nil {
					return err
				}
				if err := j.products.Search("Cat Food"); err != nil {
					return err
				}
				return j.products.ExpectProductVisible("Cat Food")
			},
		},
		{
			Name: "shop: single product add shows matching line and unit-price total",
			Tags: []string{"shop", "cart", "smoke"},
			Run: func(ctx context.Context, j *journey, cfg config.E2EConfig) error {
				if err := j.signIn(cfg.UserEmail, cfg.UserPassword, "/"); err != nil {
					return err
				}
				if err := j.products.Goto(); err != nil {
					return err
				}
				name, err := j.products.FirstProductName()
				if err != nil {
					return err
				}
				priceText, err := j.products.FirstProductPrice()
				if err != nil {
					return err
				}
				price, err := parseBaht(priceText)
				if err != nil {
					return err
				}
				if err := j.products.AddFirstToCart(); err != nil {
					return err
				}
				if err := j.cart.Goto(); err != nil {
					return err
				}
				if err := j.cart.ExpectItem(name); err != nil {
					return err
				}
				if err := j.cart.ExpectLineCount(1); err != nil {
					return err
				}
				// One line at quantity one: the grand total is the unit
				// price, plus the delivery fee under the free-shipping
				// threshold.
				return j.cart.ExpectTotal(formatBaht(displayedGrandTotal(price)))
			},
		},
		{
			Name: "shop: search, add to cart, checkout, order lands in history",
			Tags: []string{"shop", "checkout"},
			Run: func(ctx context.Context, j *journey, cfg config.E2EConfig) error {
				if err := j.signIn(cfg.UserEmail, cfg.UserPassword, "/"); err != nil {
					return err
				}
				if err := j.products.Goto(); err != nil {
					return err
				}
				if err := j.products.FilterByCategory("อาหารแมว"); err != nil {
					return err
				}
				name, err := j.products.FirstProductName()
				if err != nil {
					return err
				}
				if err := j.products.AddFirstToCart(); err != nil {
					return err
				}
				if err := j.cart.Goto(); err != nil {
					return err
				}
				if err := j.cart.ExpectItem(name); err != nil {
					return err
				}
				if err := j.cart.ProceedToCheckout(); err != nil {
					return err
				}
				if err := j.page.WaitPath("/checkout"); err != nil {
					return err
				}
				address := "123 Rod St, Bangkok 10110"
				if err := j.checkout.FillAddress(address); err != nil {
					return err
				}
				if err := j.checkout.PlaceOrder(); err != nil {
					return err
				}
				if err := j.checkout.ExpectSuccess(); err != nil {
					return err
				}
				if err := j.checkout.GoToOrders(); err != nil {
					return err
				}
				return j.page.WaitPath("/orders")
			},
		},
		{
			Name: "cart: quantity change updates the line and removal empties the cart",
			Tags: []string{"shop", "cart"},
			Run: func(ctx context.Context, j *journey, cfg config.E2EConfig) error {
				if err := j.signIn(cfg.UserEmail, cfg.UserPassword, "/"); err != nil {
					return err
				}
				if err := j.products.Goto(); err != nil {
					return err
				}
				priceText, err := j.products.FirstProductPrice()
				if err != nil {
					return err
				}
				price, err := parseBaht(priceText)
				if err != nil {
					return err
				}
				if err := j.products.AddFirstToCart(); err != nil {
					return err
				}
				if err := j.cart.Goto(); err != nil {
					return err
				}
				if err := j.cart.ExpectQuantity("1"); err != nil {
					return err
				}
				if err := j.cart.IncreaseQuantity(); err != nil {
					return err
				}
				if err := j.cart.ExpectQuantity("2"); err != nil {
					return err
				}
				totalText, err := j.cart.TotalText()
				if err != nil {
					return err
				}
				total, err := parseBaht(totalText)
				if err != nil {
					return err
				}
				if want := displayedGrandTotal(2 * price); total != want {
					return fmt.Errorf("expected total %s after quantity change, displayed %s",
						formatBaht(want), totalText)
				}
				if err := j.cart.RemoveFirstItem(); err != nil {
					return err
				}
				return j.cart.ExpectEmpty()
			},
		},
		{
			Name: "admin: created product appears in grid and can be deleted",
			Tags: []string{"admin", "products"},
			Run: func(ctx context.Context, j *journey, cfg config.E2EConfig) error {
				if err := j.signIn(cfg.AdminEmail, cfg.AdminPassword, "/admin"); err != nil {
					return err
				}
				if err := j.admin.GotoProducts(); err != nil {
					return err
				}
				name := fmt.Sprintf("E2E Food %s", strconv.FormatInt(time.Now().UnixMilli(), 10))
				details := ProductDetails{Name: name, Price: "199", Stock: "10", Category: "อาหารแมว"}
				if err := j.admin.AddProduct(details); err != nil {
					return err
				}
				if err := j.admin.ExpectProductVisible(name); err != nil {
					return err
				}
				if err := j.admin.DeleteProduct(name); err != nil {
					return err
				}
				return j.admin.ExpectProductGone(name)
			},
		},
		{
			Name: "admin: orders table lists orders",
			Tags: []string{"admin", "orders"},
			Run: func(ctx context.Context, j *journey, cfg config.E2EConfig) error {
				if err := j.signIn(cfg.AdminEmail, cfg.AdminPassword, "/admin"); err != nil {
					return err
				}
				if err := j.admin.GotoOrders(); err != nil {
					return err
				}
				return j.page.WaitVisible(".admin-table")
			},
		},
		{
			Name: "admin: order status change is reflected in the table",
			Tags: []string{"admin", "orders", "mutating"},
			Run: func(ctx context.Context, j *journey, cfg config.E2EConfig) error {
				if err := j.signIn(cfg.AdminEmail, cfg.AdminPassword, "/admin"); err != nil {
					return err
				}
				if err := j.admin.GotoOrders(); err != nil {
					return err
				}
				if err := j.page.WaitVisible(".admin-table tbody tr"); err != nil {
					return err
				}
				if err := j.admin.UpdateFirstOrderStatus("กำลังดำเนินการ"); err != nil {
					return err
				}
				return j.admin.ExpectFirstOrderStatus("processing")
			},
		},
	}
}
