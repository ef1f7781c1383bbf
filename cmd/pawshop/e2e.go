package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pawshop/internal/config"
	"pawshop/internal/e2e"
)

var (
	e2eFilterName string
	e2eFilterTag  string
	e2eParallel   int
	e2eHeaded     bool
	e2eAppURL     string
)

var e2eCmd = &cobra.Command{
	Use:   "e2e",
	Short: "Drive the deployed web storefront end to end",
	Long: `Runs scripted user journeys against the deployed web storefront in a
real browser: sign-in, catalog browsing, cart, checkout, and the admin
back-office. The target app and seeded accounts come from the e2e section
of the config file.`,
}

var e2eRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the verification scenarios",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadE2EConfig()
		if err != nil {
			return err
		}

		runner := e2e.NewRunner(cfg, logger)
		runner.Parallel = e2eParallel

		results, err := runner.Run(cmd.Context(), e2e.Filter{Name: e2eFilterName, Tag: e2eFilterTag})
		if err != nil {
			return err
		}

		fmt.Print(e2e.FormatReport(results))
		for _, r := range results {
			if !r.Passed() {
				return fmt.Errorf("%d of %d scenarios failed", countFailed(results), len(results))
			}
		}
		return nil
	},
}

var e2eListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scenarios without running them",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadE2EConfig()
		if err != nil {
			return err
		}

		runner := e2e.NewRunner(cfg, logger)
		for _, s := range runner.List(e2e.Filter{Name: e2eFilterName, Tag: e2eFilterTag}) {
			fmt.Printf("%s  %s\n", s.Name, faintStyle.Render("["+strings.Join(s.Tags, ", ")+"]"))
		}
		return nil
	},
}

func loadE2EConfig() (config.E2EConfig, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.E2EConfig{}, err
	}
	e2eCfg := cfg.E2E
	if e2eAppURL != "" {
		e2eCfg.AppURL = e2eAppURL
	}
	if e2eHeaded {
		e2eCfg.Headless = false
	}
	return e2eCfg, nil
}

func countFailed(results []e2e.Result) int {
	n := 0
	for _, r := range results {
		if !r.Passed() {
			n++
		}
	}
	return n
}

func init() {
	e2eCmd.PersistentFlags().StringVar(&e2eFilterName, "filter", "", "Only scenarios whose name contains this")
	e2eCmd.PersistentFlags().StringVar(&e2eFilterTag, "tag", "", "Only scenarios carrying this tag")
	e2eRunCmd.Flags().IntVar(&e2eParallel, "parallel", 1, "Concurrent scenarios")
	e2eRunCmd.Flags().BoolVar(&e2eHeaded, "headed", false, "Run with a visible browser window")
	e2eCmd.PersistentFlags().StringVar(&e2eAppURL, "app-url", "", "Override the storefront URL")

	e2eCmd.AddCommand(e2eRunCmd)
	e2eCmd.AddCommand(e2eListCmd)
}
