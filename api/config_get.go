// Copyright (c) 2025 BVK Chaitanya

package api

import "github.com/pricemon/pricemon/config"

const ConfigGetPath = "/config/get"

type ConfigGetRequest struct {
}

type ConfigGetResponse struct {
	Config *config.Config
}
