package e2e

import (
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// AdminPages wraps the back-office screens: dashboard, product management,
// and order management.
type AdminPages struct {
	page *Page
}

func NewAdminPages(p *Page) *AdminPages { return &AdminPages{page: p} }

func (a *AdminPages) GotoDashboard() error { return a.page.Goto("/admin") }

func (a *AdminPages) ExpectDashboard() error {
	return a.page.WaitText("h2", "Dashboard")
}

func (a *AdminPages) GotoProducts() error { return a.page.Goto("/admin/products") }

// ProductDetails is the writable subset the product form exposes.
type ProductDetails struct {
	Name     string
	Price    string
	Stock    string
	Category string
}

// AddProduct opens the product modal, fills it, and submits.
func (a *AdminPages) AddProduct(d ProductDetails) error {
	if err := a.page.ClickText("button", "เพิ่มสินค้า"); err != nil {
		return err
	}
	if err := a.page.Fill(`input[name="name"]`, d.Name); err != nil {
		return err
	}
	if err := a.page.Fill(`input[name="price"]`, d.Price); err != nil {
		return err
	}
	if err := a.page.Fill(`input[name="stock"]`, d.Stock); err != nil {
		return err
	}
	if err := a.page.SelectByLabel(`select[name="category_id"]`, d.Category); err != nil {
		return err
	}
	return a.page.Click(`button[type="submit"]`)
}

// DeleteProduct removes the named product, confirming the prompt.
func (a *AdminPages) DeleteProduct(name string) error {
	if err := a.page.WaitText(".product-card-admin", name); err != nil {
		return err
	}
	card, err := a.page.page.Timeout(a.page.assertTimeout).ElementR(".product-card-admin", name)
	if err != nil {
		return err
	}
	btn, err := card.Element(".btn-icon.delete")
	if err != nil {
		return err
	}
	if err := btn.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return err
	}
	return a.page.ClickText("button", "ลบสินค้า")
}

func (a *AdminPages) ExpectProductVisible(name string) error {
	return a.page.WaitText(".product-card-admin", name)
}

// ExpectProductGone polls until the named product is no longer in the grid.
func (a *AdminPages) ExpectProductGone(name string) error {
	return a.page.WaitAbsentText(".product-card-admin", name)
}

func (a *AdminPages) GotoOrders() error { return a.page.Goto("/admin/orders") }

func (a *AdminPages) ExpectOrderVisible(orderRef string) error {
	return a.page.WaitText(".admin-table tbody tr", orderRef)
}

// UpdateFirstOrderStatus picks a new status, by its visible Thai label, in
// the first order row.
func (a *AdminPages) UpdateFirstOrderStatus(statusLabel string) error {
	sel, err := a.page.page.Timeout(a.page.assertTimeout).Element("select.status-select")
	if err != nil {
		return err
	}
	return sel.Select([]string{statusLabel}, true, rod.SelectorTypeText)
}

// ExpectFirstOrderStatus asserts the first row's select carries the status
// class the app assigns on change.
func (a *AdminPages) ExpectFirstOrderStatus(status string) error {
	return a.page.WaitVisible(".status-select.status-" + status)
}

// UpdateOrderStatus picks a new status in the named order's row.
func (a *AdminPages) UpdateOrderStatus(orderRef, status string) error {
	row, err := a.page.page.Timeout(a.page.assertTimeout).ElementR("tr", orderRef)
	if err != nil {
		return err
	}
	sel, err := row.Element("select.status-select")
	if err != nil {
		return err
	}
	return sel.Select([]string{status}, true, rod.SelectorTypeText)
}
