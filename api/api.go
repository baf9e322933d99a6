// Copyright (c) 2025 BVK Chaitanya

// Package api defines the request/response messages exchanged between the
// pricemon daemon and its command-line clients over HTTP POST with JSON
// encoded bodies.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckResult summarizes the outcome of a single product price check.
type CheckResult struct {
	Name string

	URL string

	// CurrentPrice is absent when the price could not be extracted.
	CurrentPrice *decimal.Decimal `json:",omitempty"`

	TargetPrice decimal.Decimal

	// PriceMet is true when current price is at or below the target price.
	PriceMet bool

	Error string `json:",omitempty"`
}

// CheckEvent is published on the monitor updates stream after every product
// price check.
type CheckEvent struct {
	ID string

	At time.Time

	Result *CheckResult
}

// PricePoint is a single recorded price observation for a product URL.
type PricePoint struct {
	Price decimal.Decimal `json:"price"`

	Timestamp time.Time `json:"timestamp"`
}
