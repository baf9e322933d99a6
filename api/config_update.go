// Copyright (c) 2025 BVK Chaitanya

package api

import "github.com/pricemon/pricemon/config"

const ConfigUpdatePath = "/config/update"

// ConfigUpdateRequest updates monitor settings. Nil fields retain their
// current values. A running monitor loop picks up a new check interval at the
// next sweep without a restart.
type ConfigUpdateRequest struct {
	CheckIntervalMinutes *int `json:",omitempty"`

	Email *config.EmailNotifications `json:",omitempty"`

	Desktop *config.DesktopNotifications `json:",omitempty"`
}

type ConfigUpdateResponse struct {
	Config *config.Config
}
