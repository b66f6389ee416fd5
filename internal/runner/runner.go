// Package runner validates a set of feed sources and aggregates the results.
package runner

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/thoreinstein/rsscheck/internal/logging"
	"github.com/thoreinstein/rsscheck/internal/source"
	"github.com/thoreinstein/rsscheck/internal/validator"
)

// Validator checks one feed source.
type Validator interface {
	Validate(ctx context.Context, src source.FeedSource) *validator.Result
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers sets how many sources are validated at once. Values below 2
// validate sequentially.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		r.workers = n
	}
}

// WithProgress registers fn to receive each result as soon as it and every
// result sorted before it are done, so fn sees results in report order even
// with several workers. Calls are serialized.
func WithProgress(fn func(*validator.Result)) Option {
	return func(r *Runner) {
		r.progress = fn
	}
}

// Runner executes validations and aggregates their results.
type Runner struct {
	validator Validator
	workers   int
	progress  func(*validator.Result)
}

// New creates a new Runner.
func New(v Validator, opts ...Option) *Runner {
	r := &Runner{
		validator: v,
		workers:   1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run validates every source and returns the summary sorted by source.
// A failing source never stops the others; only cancellation of ctx
// returns an error.
func (r *Runner) Run(ctx context.Context, sources []source.FeedSource) (*validator.Summary, error) {
	ordered := make([]source.FeedSource, len(sources))
	copy(ordered, sources)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].String() < ordered[j].String()
	})

	c := &collector{
		results:  make([]*validator.Result, len(ordered)),
		progress: r.progress,
	}

	var err error
	if r.workers > 1 && len(ordered) > 1 {
		err = r.runPool(ctx, ordered, c)
	} else {
		err = r.runSequential(ctx, ordered, c)
	}
	if err != nil {
		return nil, err
	}
	results := c.results

	summary := &validator.Summary{Results: results}
	summary.Sort()

	logging.FromContext(ctx).Info("validation finished",
		"sources", len(results),
		"passed", summary.Passed(),
		"failed", summary.Failed(),
	)
	return summary, nil
}

func (r *Runner) runSequential(ctx context.Context, sources []source.FeedSource, c *collector) error {
	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.done(i, r.validator.Validate(ctx, src))
	}
	return nil
}

func (r *Runner) runPool(ctx context.Context, sources []source.FeedSource, c *collector) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c.done(i, r.validator.Validate(gctx, src))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// collector stores results by position and hands the finished prefix to
// the progress callback.
type collector struct {
	mu       sync.Mutex
	results  []*validator.Result
	next     int
	progress func(*validator.Result)
}

func (c *collector) done(i int, res *validator.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.results[i] = res
	for c.next < len(c.results) && c.results[c.next] != nil {
		if c.progress != nil {
			c.progress(c.results[c.next])
		}
		c.next++
	}
}
