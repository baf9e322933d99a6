// Copyright (c) 2025 BVK Chaitanya

// Package monitor implements the price-check orchestration service: the
// periodic sweep loop, on-demand checks, product and configuration
// management, and the check-event stream.
package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pricemon/pricemon/api"
	"github.com/pricemon/pricemon/config"
	"github.com/pricemon/pricemon/ctxutil"
	"github.com/pricemon/pricemon/extract"
	"github.com/pricemon/pricemon/history"
	"github.com/pricemon/pricemon/job"
	"github.com/pricemon/pricemon/notify"
	"github.com/shopspring/decimal"
	"github.com/visvasity/topic"
	"golang.org/x/time/rate"
)

var (
	// ErrAlreadyRunning is returned by Start when the sweep loop is active.
	ErrAlreadyRunning = fmt.Errorf("monitor is already running: %w", os.ErrInvalid)

	// ErrNotRunning is returned by Stop when the sweep loop is not active.
	ErrNotRunning = fmt.Errorf("monitor is not running: %w", os.ErrInvalid)
)

type Options struct {
	// CrawlDelay is the minimum spacing between page fetches in a sweep.
	CrawlDelay time.Duration
}

func (v *Options) setDefaults() {
	if v.CrawlDelay == 0 {
		v.CrawlDelay = 5 * time.Second
	}
}

type Service struct {
	opts Options

	cg ctxutil.CloseGroup

	cfg *config.Store

	hist *history.Store

	extractor extract.Extractor

	notifier *notify.Service

	events *topic.Topic[*api.CheckEvent]

	start time.Time

	mu sync.Mutex

	loopJob *job.Job
}

func New(cfg *config.Store, hist *history.Store, extractor extract.Extractor, notifier *notify.Service, opts *Options) *Service {
	var vopts Options
	if opts != nil {
		vopts = *opts
	}
	vopts.setDefaults()
	return &Service{
		opts:      vopts,
		cfg:       cfg,
		hist:      hist,
		extractor: extractor,
		notifier:  notifier,
		events:    topic.New[*api.CheckEvent](),
		start:     time.Now(),
	}
}

// Close stops the sweep loop if it is active and releases all resources.
func (s *Service) Close() {
	s.mu.Lock()
	if s.loopJob != nil && !job.IsFinal(s.loopJob.State()) {
		s.loopJob.Cancel()
	}
	s.mu.Unlock()

	s.cg.Close()
	s.events.Close()

	if err := s.hist.Flush(); err != nil {
		slog.Warn("could not flush price history on close (ignored)", "error", err)
	}
}

// Start begins the periodic sweep loop. The first sweep runs immediately.
func (s *Service) Start(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loopJob != nil && !job.IsFinal(s.loopJob.State()) {
		return "", ErrAlreadyRunning
	}
	s.loopJob = job.Run(s.cg.Context(), s.loop)
	slog.InfoContext(ctx, "price monitor started")
	return string(s.loopJob.State()), nil
}

// Stop cancels the sweep loop and waits for it to finish. A sweep in progress
// is interrupted.
func (s *Service) Stop(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loopJob == nil || job.IsFinal(s.loopJob.State()) {
		return "", ErrNotRunning
	}
	s.loopJob.Cancel()
	slog.InfoContext(ctx, "price monitor stopped")
	return string(s.loopJob.State()), nil
}

// IsRunning reports whether the sweep loop is active.
func (s *Service) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loopJob != nil && !job.IsFinal(s.loopJob.State())
}

// loop sweeps all products and sleeps for the configured check interval,
// until canceled. The interval is re-read on every turn, so interval updates
// take effect without a restart.
func (s *Service) loop(ctx context.Context) error {
	for ctx.Err() == nil {
		s.CheckAll(ctx)

		interval := time.Duration(s.cfg.Current().CheckIntervalMinutes) * time.Minute
		ctxutil.Sleep(ctx, interval)
	}
	return context.Cause(ctx)
}

// CheckAll checks every configured product once, in list order, with the
// crawl delay between page fetches. One product failing doesn't stop the
// sweep. Recorded prices are flushed to disk once at the end of the sweep.
func (s *Service) CheckAll(ctx context.Context) []*api.CheckResult {
	defer func() {
		if err := s.hist.Flush(); err != nil {
			slog.WarnContext(ctx, "could not flush price history (ignored)", "error", err)
		}
	}()

	products := s.cfg.Current().Products
	limiter := rate.NewLimiter(rate.Every(s.opts.CrawlDelay), 1)

	var results []*api.CheckResult
	for _, p := range products {
		if err := limiter.Wait(ctx); err != nil {
			break
		}
		results = append(results, s.CheckProduct(ctx, p))
	}
	return results
}

// CheckProduct checks a single product and returns the outcome. The price is
// recorded in the history and, when it is at or below the target, an alert is
// sent on all notification channels. A panic inside the extractor is reported
// as a failed check.
func (s *Service) CheckProduct(ctx context.Context, p *config.Product) (result *api.CheckResult) {
	result = &api.CheckResult{
		Name:        p.Name,
		URL:         p.URL,
		TargetPrice: p.TargetPrice,
	}
	defer func() {
		if r := recover(); r != nil {
			result.CurrentPrice = nil
			result.PriceMet = false
			result.Error = fmt.Sprintf("price check panicked: %v", r)
		}
		s.publish(result)
	}()

	price, ok, err := s.extractor.ExtractPrice(ctx, p.URL)
	if err != nil {
		slog.WarnContext(ctx, "could not check product price", "product", p.Name, "error", err)
		result.Error = err.Error()
		return result
	}
	if !ok {
		result.Error = "could not extract price - site may be blocking requests"
		return result
	}

	now := time.Now()
	s.hist.Append(p.URL, price, now)

	result.CurrentPrice = &price
	result.PriceMet = price.LessThanOrEqual(p.TargetPrice)
	slog.InfoContext(ctx, "checked product price", "product", p.Name, "price", price, "target", p.TargetPrice, "met", result.PriceMet)

	if result.PriceMet {
		alert := &notify.Alert{
			ID:           uuid.NewString(),
			At:           now,
			ProductName:  p.Name,
			URL:          p.URL,
			CurrentPrice: price,
			TargetPrice:  p.TargetPrice,
		}
		s.notifier.Notify(ctx, s.cfg.Current(), alert)
	}
	return result
}

func (s *Service) publish(result *api.CheckResult) {
	s.events.Send(&api.CheckEvent{
		ID:     uuid.NewString(),
		At:     time.Now(),
		Result: result,
	})
}

// Products returns a copy of the configured product list.
func (s *Service) Products() []*config.Product {
	return s.cfg.Current().Products
}

// AddProduct appends a product to the list and returns its index.
func (s *Service) AddProduct(p *config.Product) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cfg.Current()
	c.Products = append(c.Products, p)
	if err := s.cfg.Save(c); err != nil {
		return -1, -1, err
	}
	return len(c.Products) - 1, len(c.Products), nil
}

// UpdateProduct replaces non-nil fields of the product at the given index.
func (s *Service) UpdateProduct(index int, name, url *string, target *decimal.Decimal) (*config.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cfg.Current()
	if index < 0 || index >= len(c.Products) {
		return nil, fmt.Errorf("product %d not found: %w", index, os.ErrNotExist)
	}
	p := c.Products[index]
	if name != nil {
		p.Name = *name
	}
	if url != nil {
		p.URL = *url
	}
	if target != nil {
		p.TargetPrice = *target
	}
	if err := s.cfg.Save(c); err != nil {
		return nil, err
	}
	cp := *p
	return &cp, nil
}

// DeleteProduct removes the product at the given index. Later products shift
// down by one position.
func (s *Service) DeleteProduct(index int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cfg.Current()
	if index < 0 || index >= len(c.Products) {
		return -1, fmt.Errorf("product %d not found: %w", index, os.ErrNotExist)
	}
	c.Products = append(c.Products[:index], c.Products[index+1:]...)
	if err := s.cfg.Save(c); err != nil {
		return -1, err
	}
	return len(c.Products), nil
}

// Config returns a copy of the current configuration.
func (s *Service) Config() *config.Config {
	return s.cfg.Current()
}

// UpdateConfig replaces non-nil settings. A running sweep loop picks up a new
// interval on its next turn.
func (s *Service) UpdateConfig(interval *int, email *config.EmailNotifications, desktop *config.DesktopNotifications) (*config.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cfg.Current()
	if interval != nil {
		c.CheckIntervalMinutes = *interval
	}
	if email != nil {
		c.Email = *email
	}
	if desktop != nil {
		c.Desktop = *desktop
	}
	if err := s.cfg.Save(c); err != nil {
		return nil, err
	}
	return c, nil
}

// History returns recorded price points, optionally filtered to one product
// url and limited to the most recent entries.
func (s *Service) History(url string, limit int) map[string][]*api.PricePoint {
	return s.hist.Snapshot(url, limit)
}
