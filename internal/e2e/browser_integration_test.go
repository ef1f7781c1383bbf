//go:build integration

package e2e

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const testStorefrontHTML = `<html><body>
<h2>Dashboard</h2>
<input type="text" placeholder="ค้นหา..." id="q">
<div class="product-card"><h3>Royal Feline 1kg</h3><button>ใส่ตะกร้า</button></div>
<div class="total-amount">฿199.00</div>
<button id="hideme" onclick="this.remove()">ลบสินค้า</button>
</body></html>`

func TestPageWrapper_Integration(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testStorefrontHTML)
	}))
	defer ts.Close()

	cfg := testE2EConfig()
	cfg.AppURL = ts.URL
	cfg.Headless = true

	b := NewBrowser(cfg, zaptest.NewLogger(t))
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	require.NoError(t, b.Start(ctx))
	defer func() {
		require.NoError(t, b.Shutdown())
	}()

	page, err := b.NewPage(ctx)
	require.NoError(t, err)
	defer page.Close()

	require.NoError(t, page.Goto("/"))
	require.NoError(t, page.WaitVisible(".product-card"))
	require.NoError(t, page.WaitText(".product-card h3", "Royal Feline"))

	name, err := page.Text(".product-card h3")
	require.NoError(t, err)
	assert.Equal(t, "Royal Feline 1kg", name)

	require.NoError(t, page.Fill("#q", "แมว"))
	require.NoError(t, page.WaitText(".total-amount", "199"))

	require.NoError(t, page.ClickText("button", "ลบสินค้า"))
	require.NoError(t, page.WaitAbsentText("button", "ลบสินค้า"))

	path, err := page.CurrentPath()
	require.NoError(t, err)
	assert.Equal(t, "/", path)
}

func TestBrowser_IsolatedPages_Integration(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "seen", Value: "1"})
		fmt.Fprint(w, testStorefrontHTML)
	}))
	defer ts.Close()

	cfg := testE2EConfig()
	cfg.AppURL = ts.URL
	cfg.Headless = true

	b := NewBrowser(cfg, zaptest.NewLogger(t))
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	require.NoError(t, b.Start(ctx))
	defer func() {
		require.NoError(t, b.Shutdown())
	}()

	// Two pages from the same browser must not share session state.
	p1, err := b.NewPage(ctx)
	require.NoError(t, err)
	defer p1.Close()
	p2, err := b.NewPage(ctx)
	require.NoError(t, err)
	defer p2.Close()

	require.NoError(t, p1.Goto("/"))
	require.NoError(t, p2.Goto("/"))
	require.NoError(t, p1.WaitVisible(".product-card"))
	require.NoError(t, p2.WaitVisible(".product-card"))
}
