// Copyright (c) 2025 BVK Chaitanya

package monitor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/pricemon/pricemon/config"
	"github.com/pricemon/pricemon/extract"
	"github.com/pricemon/pricemon/history"
	"github.com/pricemon/pricemon/notify"
	"github.com/shopspring/decimal"
)

type fakeSender struct {
	mu   sync.Mutex
	msgs []string
}

func (f *fakeSender) SendMessage(ctx context.Context, at time.Time, msg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeSender) numMessages() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.msgs)
}

func newTestService(t *testing.T, extractor extract.Extractor) (*Service, *fakeSender) {
	t.Helper()

	dir := t.TempDir()
	cfg, err := config.Open(filepath.Join(dir, "config.json"))
	if err != nil {
		t.Fatal(err)
	}
	// Keep alerts on the fake channel only.
	quiet := cfg.Current()
	quiet.Desktop.Enabled = false
	if err := cfg.Save(quiet); err != nil {
		t.Fatal(err)
	}
	hist, err := history.Open(filepath.Join(dir, "price_history.json"))
	if err != nil {
		t.Fatal(err)
	}

	sender := &fakeSender{}
	notifier := notify.NewService()
	notifier.AddSender("fake", sender)

	s := New(cfg, hist, extractor, notifier, &Options{CrawlDelay: time.Millisecond})
	t.Cleanup(s.Close)
	return s, sender
}

func addProduct(t *testing.T, s *Service, name, url, target string) {
	t.Helper()
	_, _, err := s.AddProduct(&config.Product{
		Name:        name,
		URL:         url,
		TargetPrice: decimal.RequireFromString(target),
	})
	if err != nil {
		t.Fatal(err)
	}
}

func fixedPrice(price string) extract.Extractor {
	return extract.Func(func(ctx context.Context, url string) (decimal.Decimal, bool, error) {
		return decimal.RequireFromString(price), true, nil
	})
}

func TestStartStop(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t, fixedPrice("10"))

	if s.IsRunning() {
		t.Fatalf("new monitor must not be running")
	}
	if _, err := s.Stop(ctx); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("want ErrNotRunning, got %v", err)
	}

	if _, err := s.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if !s.IsRunning() {
		t.Fatalf("monitor must be running after start")
	}
	if _, err := s.Start(ctx); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("want ErrAlreadyRunning, got %v", err)
	}

	if _, err := s.Stop(ctx); err != nil {
		t.Fatal(err)
	}
	if s.IsRunning() {
		t.Fatalf("monitor must not be running after stop")
	}
	if _, err := s.Stop(ctx); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("want ErrNotRunning, got %v", err)
	}

	// Stopped monitors can be started again.
	if _, err := s.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Stop(ctx); err != nil {
		t.Fatal(err)
	}
}

func TestCheckAllNotifications(t *testing.T) {
	ctx := context.Background()

	prices := map[string]string{
		"https://www.example.com/dp/B0AAAA": "45.99",
		"https://www.example.com/dp/B0BBBB": "60",
	}
	extractor := extract.Func(func(ctx context.Context, url string) (decimal.Decimal, bool, error) {
		return decimal.RequireFromString(prices[url]), true, nil
	})
	s, sender := newTestService(t, extractor)
	addProduct(t, s, "Met", "https://www.example.com/dp/B0AAAA", "50")
	addProduct(t, s, "NotMet", "https://www.example.com/dp/B0BBBB", "50")

	results := s.CheckAll(ctx)
	if len(results) != 2 {
		t.Fatalf("want 2 results, got %d", len(results))
	}
	if !results[0].PriceMet {
		t.Fatalf("price 45.99 with target 50 must be met")
	}
	if results[1].PriceMet {
		t.Fatalf("price 60 with target 50 must not be met")
	}
	if n := sender.numMessages(); n != 1 {
		t.Fatalf("want 1 notification, got %d", n)
	}
}

func TestPriceMetBoundary(t *testing.T) {
	ctx := context.Background()

	s, sender := newTestService(t, fixedPrice("55.99"))
	addProduct(t, s, "Exact", "https://www.example.com/dp/B0TEST", "55.99")

	results := s.CheckAll(ctx)
	if len(results) != 1 {
		t.Fatalf("want 1 result, got %d", len(results))
	}
	if !results[0].PriceMet {
		t.Fatalf("price equal to target must be met")
	}
	if n := sender.numMessages(); n != 1 {
		t.Fatalf("want 1 notification, got %d", n)
	}
}

func TestExtractionFailureIsolation(t *testing.T) {
	ctx := context.Background()

	extractor := extract.Func(func(ctx context.Context, url string) (decimal.Decimal, bool, error) {
		if url == "https://www.example.com/dp/B0FAIL" {
			return decimal.Decimal{}, false, nil
		}
		return decimal.NewFromInt(10), true, nil
	})
	s, _ := newTestService(t, extractor)
	addProduct(t, s, "First", "https://www.example.com/dp/B0AAAA", "5")
	addProduct(t, s, "Broken", "https://www.example.com/dp/B0FAIL", "5")
	addProduct(t, s, "Last", "https://www.example.com/dp/B0BBBB", "5")

	results := s.CheckAll(ctx)
	if len(results) != 3 {
		t.Fatalf("one failing product must not stop the sweep; got %d results", len(results))
	}
	if results[0].CurrentPrice == nil || results[2].CurrentPrice == nil {
		t.Fatalf("healthy products must report a price")
	}
	if results[1].CurrentPrice != nil {
		t.Fatalf("failed extraction must not report a price")
	}
	if want := "could not extract price - site may be blocking requests"; results[1].Error != want {
		t.Fatalf("want %q, got %q", want, results[1].Error)
	}
	if results[1].PriceMet {
		t.Fatalf("failed extraction must not meet the target")
	}

	hist := s.History("", 0)
	if len(hist["https://www.example.com/dp/B0FAIL"]) != 0 {
		t.Fatalf("failed checks must not be recorded in history")
	}
	if len(hist["https://www.example.com/dp/B0AAAA"]) != 1 || len(hist["https://www.example.com/dp/B0BBBB"]) != 1 {
		t.Fatalf("successful checks must be recorded in history")
	}
}

func TestPanicInExtractor(t *testing.T) {
	ctx := context.Background()

	extractor := extract.Func(func(ctx context.Context, url string) (decimal.Decimal, bool, error) {
		panic("bad page")
	})
	s, sender := newTestService(t, extractor)
	addProduct(t, s, "Panicky", "https://www.example.com/dp/B0TEST", "5")

	results := s.CheckAll(ctx)
	if len(results) != 1 {
		t.Fatalf("want 1 result, got %d", len(results))
	}
	if results[0].CurrentPrice != nil || results[0].PriceMet {
		t.Fatalf("panicked check must not report a price")
	}
	if len(results[0].Error) == 0 {
		t.Fatalf("panicked check must report an error")
	}
	if n := sender.numMessages(); n != 0 {
		t.Fatalf("want no notifications, got %d", n)
	}
}

func TestHistoryAcrossSweeps(t *testing.T) {
	ctx := context.Background()

	s, _ := newTestService(t, fixedPrice("42"))
	addProduct(t, s, "Tracked", "https://www.example.com/dp/B0TEST", "5")

	s.CheckAll(ctx)
	s.CheckAll(ctx)

	points := s.History("https://www.example.com/dp/B0TEST", 0)["https://www.example.com/dp/B0TEST"]
	if len(points) != 2 {
		t.Fatalf("want 2 history points, got %d", len(points))
	}
}

func TestProductCRUD(t *testing.T) {
	s, _ := newTestService(t, fixedPrice("10"))

	index, total, err := s.AddProduct(&config.Product{
		Name:        "Headphones",
		URL:         "https://www.example.com/dp/B0AAAA",
		TargetPrice: decimal.RequireFromString("50"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if index != 0 || total != 1 {
		t.Fatalf("want index=0 total=1, got index=%d total=%d", index, total)
	}

	name := "Better Headphones"
	target := decimal.RequireFromString("45")
	p, err := s.UpdateProduct(0, &name, nil, &target)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != name || !p.TargetPrice.Equal(target) {
		t.Fatalf("unexpected product after update: %#v", p)
	}
	if p.URL != "https://www.example.com/dp/B0AAAA" {
		t.Fatalf("unset fields must retain their values")
	}

	if _, err := s.UpdateProduct(5, &name, nil, nil); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want os.ErrNotExist for out-of-range update, got %v", err)
	}
	if _, err := s.DeleteProduct(5); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want os.ErrNotExist for out-of-range delete, got %v", err)
	}
	if _, err := s.UpdateProduct(-1, &name, nil, nil); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want os.ErrNotExist for negative update index, got %v", err)
	}
	if _, err := s.DeleteProduct(-1); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want os.ErrNotExist for negative delete index, got %v", err)
	}

	total, err = s.DeleteProduct(0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 {
		t.Fatalf("want 0 products after delete, got %d", total)
	}
}

func TestDeleteShiftsIndexes(t *testing.T) {
	s, _ := newTestService(t, fixedPrice("10"))
	for i := 0; i < 3; i++ {
		addProduct(t, s, fmt.Sprintf("Product%d", i), fmt.Sprintf("https://www.example.com/dp/B0%04d", i), "5")
	}
	if _, err := s.DeleteProduct(1); err != nil {
		t.Fatal(err)
	}
	products := s.Products()
	if len(products) != 2 {
		t.Fatalf("want 2 products, got %d", len(products))
	}
	if products[0].Name != "Product0" || products[1].Name != "Product2" {
		t.Fatalf("products after the deleted index must shift down: %#v", products)
	}
}

func TestUpdateConfig(t *testing.T) {
	s, _ := newTestService(t, fixedPrice("10"))

	bad := 10
	if _, err := s.UpdateConfig(&bad, nil, nil); err == nil {
		t.Fatalf("interval below the minimum must be rejected")
	}
	if s.Config().CheckIntervalMinutes != config.DefaultCheckIntervalMinutes {
		t.Fatalf("failed update must not change the interval")
	}

	good := 120
	c, err := s.UpdateConfig(&good, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if c.CheckIntervalMinutes != 120 {
		t.Fatalf("want 120, got %d", c.CheckIntervalMinutes)
	}
}

func TestLoopSweepsImmediately(t *testing.T) {
	ctx := context.Background()

	var mu sync.Mutex
	nchecks := 0
	extractor := extract.Func(func(ctx context.Context, url string) (decimal.Decimal, bool, error) {
		mu.Lock()
		nchecks++
		mu.Unlock()
		return decimal.NewFromInt(10), true, nil
	})
	s, _ := newTestService(t, extractor)
	addProduct(t, s, "Watched", "https://www.example.com/dp/B0TEST", "5")

	if _, err := s.Start(ctx); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for {
		mu.Lock()
		n := nchecks
		mu.Unlock()
		if n >= 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("first sweep did not run")
		}
		time.Sleep(10 * time.Millisecond)
	}
	if _, err := s.Stop(ctx); err != nil {
		t.Fatal(err)
	}
}
