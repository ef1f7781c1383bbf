package e2e

import "pawshop/internal/config"

func testE2EConfig() config.E2EConfig {
	cfg := config.DefaultConfig().E2E
	cfg.NavigationTimeoutMs = 10000
	cfg.AssertTimeoutMs = 3000
	return cfg
}
