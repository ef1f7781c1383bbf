package e2e

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pawshop/internal/config"
)

// Scenario is one scripted user journey. Run receives a fresh incognito page
// bundle and returns an error on the first failed assertion.
type Scenario struct {
	Name string
	Tags []string
	Run  func(ctx context.Context, j *journey, cfg config.E2EConfig) error
}

func (s Scenario) hasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Result is the outcome of one scenario run.
type Result struct {
	Name     string
	Tags     []string
	Err      error
	Duration time.Duration
}

// Passed reports whether the scenario ran clean.
func (r Result) Passed() bool { return r.Err == nil }

// Filter narrows which scenarios a run executes. Zero value means all.
type Filter struct {
	// Name keeps scenarios whose name contains the string (case-insensitive).
	Name string
	// Tag keeps scenarios carrying the tag exactly.
	Tag string
}

func (f Filter) matches(s Scenario) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.Tag != "" && !s.hasTag(f.Tag) {
		return false
	}
	return true
}

// Runner executes scenarios against a shared browser.
type Runner struct {
	cfg       config.E2EConfig
	browser   *Browser
	log       *zap.Logger
	scenarios []Scenario
	// Parallel bounds concurrent scenarios; <=1 means sequential.
	Parallel int
}

// NewRunner builds a runner over the built-in suite. log may be nil.
func NewRunner(cfg config.E2EConfig, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		cfg:       cfg,
		browser:   NewBrowser(cfg, log),
		log:       log,
		scenarios: Suite(),
		Parallel:  1,
	}
}

// Register adds extra scenarios beyond the built-in suite.
func (r *Runner) Register(scenarios ...Scenario) {
	r.scenarios = append(r.scenarios, scenarios...)
}

// List returns the scenarios a filter would run, without running them.
func (r *Runner) List(f Filter) []Scenario {
	var out []Scenario
	for _, s := range r.scenarios {
		if f.matches(s) {
			out = append(out, s)
		}
	}
	return out
}

// Run executes the filtered scenarios and returns their results in
// registration order. A scenario failure does not stop the run; only
// browser-level failures do.
func (r *Runner) Run(ctx context.Context, f Filter) ([]Result, error) {
	selected := r.List(f)
	if len(selected) == 0 {
		return nil, fmt.Errorf("no scenarios match filter %+v", f)
	}

	if err := r.browser.Start(ctx); err != nil {
		return nil, err
	}
	defer func() {
		if err := r.browser.Shutdown(); err != nil {
			r.log.Warn("browser shutdown failed", zap.Error(err))
		}
	}()

	results := make([]Result, len(selected))
	g, gctx := errgroup.WithContext(ctx)
	limit := r.Parallel
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for i, s := range selected {
		g.Go(func() error {
			results[i] = r.runOne(gctx, s)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (r *Runner) runOne(ctx context.Context, s Scenario) Result {
	start := time.Now()
	r.log.Info("scenario start", zap.String("name", s.Name))

	page, err := r.browser.NewPage(ctx)
	if err != nil {
		return Result{Name: s.Name, Tags: s.Tags, Err: err, Duration: time.Since(start)}
	}
	defer page.Close()

	err = s.Run(ctx, newJourney(page), r.cfg)
	result := Result{Name: s.Name, Tags: s.Tags, Err: err, Duration: time.Since(start)}
	if err != nil {
		r.log.Warn("scenario failed", zap.String("name", s.Name), zap.Error(err))
	} else {
		r.log.Info("scenario passed", zap.String("name", s.Name), zap.Duration("took", result.Duration))
	}
	return result
}
