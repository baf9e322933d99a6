// Copyright (c) 2025 BVK Chaitanya

package api

import "github.com/pricemon/pricemon/config"

const ProductListPath = "/product/list"

type ProductListRequest struct {
}

type ProductListResponse struct {
	Products []*config.Product
}
