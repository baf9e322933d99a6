// Copyright (c) 2025 BVK Chaitanya

package api

const ProductDeletePath = "/product/delete"

// ProductDeleteRequest removes the product at the given index. Products after
// the removed index shift down by one position.
type ProductDeleteRequest struct {
	Index int
}

type ProductDeleteResponse struct {
	TotalProducts int
}
