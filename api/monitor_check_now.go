// Copyright (c) 2025 BVK Chaitanya

package api

const MonitorCheckNowPath = "/monitor/check-now"

type MonitorCheckNowRequest struct {
}

type MonitorCheckNowResponse struct {
	Results []*CheckResult
}
