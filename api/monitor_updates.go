// Copyright (c) 2025 BVK Chaitanya

package api

// MonitorUpdatesPath serves a websocket stream of CheckEvent messages, one
// JSON message per completed product check.
const MonitorUpdatesPath = "/monitor/updates"
