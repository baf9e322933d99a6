// Copyright (c) 2025 BVK Chaitanya

package api

import (
	"github.com/pricemon/pricemon/config"
	"github.com/shopspring/decimal"
)

const ProductAddPath = "/product/add"

type ProductAddRequest struct {
	Name string

	URL string

	TargetPrice decimal.Decimal
}

// Product converts the request into the config data model.
func (r *ProductAddRequest) Product() *config.Product {
	return &config.Product{
		Name:        r.Name,
		URL:         r.URL,
		TargetPrice: r.TargetPrice,
	}
}

type ProductAddResponse struct {
	// Index is the position of the new product in the product list.
	Index int

	TotalProducts int
}
