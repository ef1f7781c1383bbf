package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pawshop/internal/api"
	"pawshop/internal/store"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	faintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	totalStyle   = lipgloss.NewStyle().Bold(true)
)

func renderToast(t store.Toast) string {
	style := infoStyle
	switch t.Kind {
	case store.ToastSuccess:
		style = successStyle
	case store.ToastError:
		style = errStyle
	case store.ToastWarning:
		style = warnStyle
	}
	return fmt.Sprintf("%s %s", style.Render("["+t.Title+"]"), t.Message)
}

func renderPromptTitle(title string) string {
	return headerStyle.Render(title)
}

func renderProducts(page *api.ProductPage) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Products (page %d, %d total)", page.Page, page.Total)))
	b.WriteString("\n")
	for _, p := range page.Products {
		category := ""
		if p.Category != nil {
			category = p.Category.Name
		}
		b.WriteString(fmt.Sprintf("  %s  ฿%.2f  stock %d  %s\n",
			p.Name, p.Price, p.Stock, faintStyle.Render(category)))
		b.WriteString(faintStyle.Render(fmt.Sprintf("    id %s", p.ID)))
		b.WriteString("\n")
	}
	if len(page.Products) == 0 {
		b.WriteString(faintStyle.Render("  (no products)"))
		b.WriteString("\n")
	}
	return b.String()
}

func renderCategories(categories []api.Category) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Categories"))
	b.WriteString("\n")
	for _, c := range categories {
		b.WriteString(fmt.Sprintf("  %s  %s\n", c.Name, faintStyle.Render(c.ID.String())))
	}
	return b.String()
}

func renderCart(items []api.CartItem, total float64) string {
	if len(items) == 0 {
		return faintStyle.Render("Your cart is empty") + "\n"
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render("Cart"))
	b.WriteString("\n")
	for _, item := range items {
		b.WriteString(fmt.Sprintf("  %s  x%d  ฿%.2f\n",
			item.Product.Name, item.Quantity, item.Product.Price*float64(item.Quantity)))
		b.WriteString(faintStyle.Render(fmt.Sprintf("    line %s", item.ID)))
		b.WriteString("\n")
	}
	b.WriteString(totalStyle.Render(fmt.Sprintf("Total: ฿%.2f", total)))
	b.WriteString("\n")
	return b.String()
}

func renderOrders(orders []api.Order) string {
	if len(orders) == 0 {
		return faintStyle.Render("No orders yet") + "\n"
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render("Orders"))
	b.WriteString("\n")
	for _, o := range orders {
		b.WriteString(fmt.Sprintf("  %s  %s  ฿%.2f  %s\n",
			o.CreatedAt.Format("2006-01-02 15:04"), o.Status, o.TotalAmount,
			faintStyle.Render(o.ID.String())))
		for _, item := range o.OrderItems {
			b.WriteString(faintStyle.Render(fmt.Sprintf("    %s x%d @ ฿%.2f",
				item.Product.Name, item.Quantity, item.Price)))
			b.WriteString("\n")
		}
	}
	return b.String()
}
