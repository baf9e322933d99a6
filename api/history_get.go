// Copyright (c) 2025 BVK Chaitanya

package api

const HistoryGetPath = "/history/get"

type HistoryGetRequest struct {
	// URL limits the response to a single product URL when non-empty.
	URL string `json:",omitempty"`

	// Limit caps the number of most recent price points per URL. Zero means
	// no limit.
	Limit int `json:",omitempty"`
}

type HistoryGetResponse struct {
	History map[string][]*PricePoint
}
