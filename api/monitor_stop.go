// Copyright (c) 2025 BVK Chaitanya

package api

const MonitorStopPath = "/monitor/stop"

type MonitorStopRequest struct {
}

type MonitorStopResponse struct {
	State string
}
