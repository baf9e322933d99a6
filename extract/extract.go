// Copyright (c) 2025 BVK Chaitanya

// Package extract fetches product pages and extracts their listed price.
package extract

import (
	"context"

	"github.com/shopspring/decimal"
)

// Extractor fetches the page at the given url and returns the product price
// found on it. The boolean result is false when the page was fetched but no
// price could be recognized.
type Extractor interface {
	ExtractPrice(ctx context.Context, url string) (decimal.Decimal, bool, error)
}

// Func adapts a function into an Extractor.
type Func func(ctx context.Context, url string) (decimal.Decimal, bool, error)

func (f Func) ExtractPrice(ctx context.Context, url string) (decimal.Decimal, bool, error) {
	return f(ctx, url)
}
