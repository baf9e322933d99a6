// Copyright (c) 2025 BVK Chaitanya

package extract

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/pricemon/pricemon/ctxutil"
	"github.com/shopspring/decimal"
)

type Options struct {
	// Timeout limits a single page fetch.
	Timeout time.Duration

	// MaxAttempts is the number of fetch attempts per page. Failed attempts
	// back off exponentially.
	MaxAttempts int

	UserAgent string
}

func (v *Options) setDefaults() {
	if v.Timeout == 0 {
		v.Timeout = 30 * time.Second
	}
	if v.MaxAttempts == 0 {
		v.MaxAttempts = 3
	}
	if len(v.UserAgent) == 0 {
		v.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}
}

// Retail pages render the price in one of a few known shapes. Patterns are
// tried in order and the first match wins.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`<span class="a-price-whole">([0-9,]+)</span>`),
	regexp.MustCompile(`"priceAmount":([0-9]+\.?[0-9]*)`),
	regexp.MustCompile(`\$([0-9,]+\.?[0-9]*)`),
}

// WebExtractor fetches product pages over HTTP with browser-like headers and
// extracts prices from the page markup.
type WebExtractor struct {
	opts Options

	client *http.Client
}

func New(opts *Options) *WebExtractor {
	var vopts Options
	if opts != nil {
		vopts = *opts
	}
	vopts.setDefaults()
	return &WebExtractor{
		opts: vopts,
		client: &http.Client{
			Timeout: vopts.Timeout,
		},
	}
}

// ExtractPrice fetches the page and scans it for a price. Fetch failures are
// retried up to MaxAttempts times with exponential backoff capped at ten
// seconds.
func (w *WebExtractor) ExtractPrice(ctx context.Context, url string) (decimal.Decimal, bool, error) {
	var lastErr error
	for attempt := 0; attempt < w.opts.MaxAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Min(math.Pow(2, float64(attempt)), 10)) * time.Second
			ctxutil.Sleep(ctx, backoff)
			if err := ctx.Err(); err != nil {
				return decimal.Decimal{}, false, err
			}
		}
		page, err := w.fetch(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				return decimal.Decimal{}, false, ctx.Err()
			}
			lastErr = err
			continue
		}
		price, ok := ScanPrice(page)
		return price, ok, nil
	}
	return decimal.Decimal{}, false, fmt.Errorf("could not fetch %q: %w", url, lastErr)
}

func (w *WebExtractor) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("could not create page request: %w", err)
	}
	req.Header.Set("User-Agent", w.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("could not fetch page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page fetch returned status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("could not read page body: %w", err)
	}
	return string(data), nil
}

// ScanPrice scans page markup for a recognizable price. The boolean result is
// false when no pattern matches.
func ScanPrice(page string) (decimal.Decimal, bool) {
	for _, re := range pricePatterns {
		if m := re.FindStringSubmatch(page); m != nil {
			if price, err := ParsePrice(m[1]); err == nil {
				return price, true
			}
		}
	}
	return decimal.Decimal{}, false
}

// ParsePrice converts a matched price string like "1,299.99" to a decimal.
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(s, ",", "")
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("could not parse price %q: %w", s, err)
	}
	return price, nil
}
