// Copyright (c) 2025 BVK Chaitanya

package api

import (
	"fmt"
	"net/url"
	"os"

	"github.com/pricemon/pricemon/config"
)

func checkURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("could not parse product url: %w", os.ErrInvalid)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("product url must use http or https scheme: %w", os.ErrInvalid)
	}
	if len(u.Host) == 0 {
		return fmt.Errorf("product url has no host: %w", os.ErrInvalid)
	}
	return nil
}

func (r *ProductAddRequest) Check() error {
	if len(r.Name) == 0 {
		return fmt.Errorf("product name cannot be empty: %w", os.ErrInvalid)
	}
	if err := checkURL(r.URL); err != nil {
		return err
	}
	if !r.TargetPrice.IsPositive() {
		return fmt.Errorf("target price must be positive: %w", os.ErrInvalid)
	}
	return nil
}

// Check validates the field values alone. Index range checks happen against
// the live product list, so a bad index reports not-found. An update with no
// fields set is a valid no-op.
func (r *ProductUpdateRequest) Check() error {
	if r.Name != nil && len(*r.Name) == 0 {
		return fmt.Errorf("product name cannot be empty: %w", os.ErrInvalid)
	}
	if r.URL != nil {
		if err := checkURL(*r.URL); err != nil {
			return err
		}
	}
	if r.TargetPrice != nil && !r.TargetPrice.IsPositive() {
		return fmt.Errorf("target price must be positive: %w", os.ErrInvalid)
	}
	return nil
}

func (r *ProductDeleteRequest) Check() error {
	return nil
}

func (r *ConfigUpdateRequest) Check() error {
	if r.CheckIntervalMinutes != nil {
		v := *r.CheckIntervalMinutes
		if v < config.MinCheckIntervalMinutes || v > config.MaxCheckIntervalMinutes {
			return fmt.Errorf("check interval must be between %d and %d minutes: %w",
				config.MinCheckIntervalMinutes, config.MaxCheckIntervalMinutes, os.ErrInvalid)
		}
	}
	if r.Email != nil && r.Email.Enabled {
		if len(r.Email.SMTPServer) == 0 || r.Email.SMTPPort <= 0 {
			return fmt.Errorf("email notifications need a valid smtp server and port: %w", os.ErrInvalid)
		}
	}
	return nil
}

func (r *HistoryGetRequest) Check() error {
	if r.Limit < 0 {
		return fmt.Errorf("history limit cannot be negative: %w", os.ErrInvalid)
	}
	if len(r.URL) != 0 {
		if err := checkURL(r.URL); err != nil {
			return err
		}
	}
	return nil
}

func (r *LogsGetRequest) Check() error {
	if r.NumLines < 0 {
		return fmt.Errorf("number of log lines cannot be negative: %w", os.ErrInvalid)
	}
	return nil
}
