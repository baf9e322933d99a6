// Copyright (c) 2025 BVK Chaitanya

package api

import (
	"github.com/pricemon/pricemon/config"
	"github.com/shopspring/decimal"
)

const ProductUpdatePath = "/product/update"

// ProductUpdateRequest updates one or more fields of the product at the given
// index. Nil fields retain their current values.
type ProductUpdateRequest struct {
	Index int

	Name *string `json:",omitempty"`

	URL *string `json:",omitempty"`

	TargetPrice *decimal.Decimal `json:",omitempty"`
}

type ProductUpdateResponse struct {
	Product *config.Product
}
