// Copyright (c) 2025 BVK Chaitanya

package api

const MonitorStartPath = "/monitor/start"

type MonitorStartRequest struct {
}

type MonitorStartResponse struct {
	State string
}
