// Copyright (c) 2025 BVK Chaitanya

package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
)

// PostJSONHandler adapts a request/response function into a http.Handler
// that decodes the request body as JSON and encodes the response as JSON.
//
// Errors wrapping os.ErrNotExist are reported with a 404 status and errors
// wrapping os.ErrInvalid are reported with a 400 status. All other errors
// are reported with a 500 status.
func PostJSONHandler[REQ, RESP any](fn func(context.Context, *REQ) (*RESP, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "only POST requests are supported", http.StatusMethodNotAllowed)
			return
		}

		req := new(REQ)
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		resp, err := fn(r.Context(), req)
		if err != nil {
			status := http.StatusInternalServerError
			switch {
			case errors.Is(err, os.ErrNotExist):
				status = http.StatusNotFound
			case errors.Is(err, os.ErrInvalid):
				status = http.StatusBadRequest
			}
			http.Error(w, err.Error(), status)
			return
		}

		w.Header().Set("content-type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
