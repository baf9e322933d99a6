// Copyright (c) 2025 BVK Chaitanya

package api

import "time"

const StatusPath = "/monitor/status"

type StatusRequest struct {
}

type StatusResponse struct {
	IsRunning bool

	// LastCheck is nil when the monitor loop is stopped.
	LastCheck *time.Time

	TotalProducts int

	CheckIntervalMinutes int

	// Daemon process diagnostics.
	ServerPID       int
	ServerUptime    time.Duration
	ServerMemoryRSS uint64
}
