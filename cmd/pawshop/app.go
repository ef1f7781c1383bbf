package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pawshop/internal/api"
	"pawshop/internal/config"
	"pawshop/internal/storage"
	"pawshop/internal/store"
	"pawshop/internal/storefront"
)

// app wires config, durable storage, the gateway client, and the stores
// into one storefront instance for a single command invocation.
type app struct {
	cfg   *config.Config
	kv    *storage.Store
	shop  *storefront.Storefront
	store struct {
		session *store.SessionStore
		cart    *store.CartStore
		toasts  *store.ToastStore
		modals  *store.ModalStore
	}
}

func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(cfg.Storage.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}
	kv, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return nil, err
	}

	session, err := store.NewSessionStore(kv)
	if err != nil {
		kv.Close()
		return nil, err
	}

	client := api.NewClient(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.RequestTimeout(),
	}, session)

	a := &app{cfg: cfg, kv: kv}
	a.store.session = session
	a.store.cart = store.NewCartStore(client, kv, logger)
	a.store.toasts = store.NewToastStore()
	a.store.modals = store.NewModalStore()
	a.shop = storefront.New(client, session, a.store.cart, a.store.toasts, a.store.modals, logger)
	return a, nil
}

func (a *app) Close() error {
	return a.kv.Close()
}

// flushToasts drains pending notifications to the terminal. A CLI process
// exits before any TTL fires, so every queued toast prints.
func (a *app) flushToasts() {
	for _, t := range a.store.toasts.List() {
		fmt.Println(renderToast(t))
		a.store.toasts.Remove(t.ID)
	}
}

// resolvePrompt renders the active modal and answers it from stdin.
func (a *app) resolvePrompt() {
	m := a.store.modals.Active()
	if m == nil {
		return
	}
	fmt.Printf("%s\n%s [y/N]: ", renderPromptTitle(m.Title), m.Message)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	answer := strings.TrimSpace(strings.ToLower(line))
	a.store.modals.Resolve(answer == "y" || answer == "yes")
}
