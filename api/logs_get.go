// Copyright (c) 2025 BVK Chaitanya

package api

const LogsGetPath = "/logs/get"

type LogsGetRequest struct {
	// NumLines caps the number of most recent log lines. Zero picks a
	// server-side default.
	NumLines int `json:",omitempty"`
}

type LogsGetResponse struct {
	Lines []string
}
