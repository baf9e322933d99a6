// Copyright (c) 2025 BVK Chaitanya

// Package config defines the monitor configuration data model and its
// persistence as a human-readable JSON file under the data directory.
package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/shopspring/decimal"
)

const (
	// MinCheckIntervalMinutes and MaxCheckIntervalMinutes bound the sweep
	// interval. DefaultCheckIntervalMinutes is used for fresh setups.
	MinCheckIntervalMinutes     = 60
	MaxCheckIntervalMinutes     = 1440
	DefaultCheckIntervalMinutes = 300
)

// Product identifies a monitored product page and its target price. Products
// are addressed by their position in the Config.Products list.
type Product struct {
	Name string `json:"name"`

	URL string `json:"url"`

	TargetPrice decimal.Decimal `json:"target_price"`
}

// EmailNotifications holds SMTP settings for target-price alerts. Credentials
// from the process environment take precedence over these fields.
type EmailNotifications struct {
	Enabled bool `json:"enabled"`

	SMTPServer string `json:"smtp_server"`

	SMTPPort int `json:"smtp_port"`

	SenderEmail string `json:"sender_email"`

	SenderPassword string `json:"sender_password,omitempty"`

	RecipientEmail string `json:"recipient_email"`
}

// DesktopNotifications enables local desktop alerts through notify-send.
type DesktopNotifications struct {
	Enabled bool `json:"enabled"`
}

type Config struct {
	Products []*Product `json:"products"`

	CheckIntervalMinutes int `json:"check_interval_minutes"`

	Email EmailNotifications `json:"email_notifications"`

	Desktop DesktopNotifications `json:"desktop_notifications"`
}

// Default returns the configuration used when no config file exists: no
// products, a five hour sweep interval, email disabled and desktop alerts
// enabled.
func Default() *Config {
	return &Config{
		Products:             []*Product{},
		CheckIntervalMinutes: DefaultCheckIntervalMinutes,
		Email: EmailNotifications{
			Enabled:    false,
			SMTPServer: "smtp.gmail.com",
			SMTPPort:   587,
		},
		Desktop: DesktopNotifications{
			Enabled: true,
		},
	}
}

func (p *Product) Check() error {
	if len(p.Name) == 0 {
		return fmt.Errorf("product name cannot be empty: %w", os.ErrInvalid)
	}
	u, err := url.Parse(p.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || len(u.Host) == 0 {
		return fmt.Errorf("product %q has invalid url %q: %w", p.Name, p.URL, os.ErrInvalid)
	}
	if !p.TargetPrice.IsPositive() {
		return fmt.Errorf("product %q target price must be positive: %w", p.Name, os.ErrInvalid)
	}
	return nil
}

func (c *Config) Check() error {
	if c.CheckIntervalMinutes < MinCheckIntervalMinutes || c.CheckIntervalMinutes > MaxCheckIntervalMinutes {
		return fmt.Errorf("check interval %d is outside [%d, %d] minutes: %w",
			c.CheckIntervalMinutes, MinCheckIntervalMinutes, MaxCheckIntervalMinutes, os.ErrInvalid)
	}
	for _, p := range c.Products {
		if err := p.Check(); err != nil {
			return err
		}
	}
	if c.Email.Enabled {
		if len(c.Email.SMTPServer) == 0 || c.Email.SMTPPort <= 0 {
			return fmt.Errorf("email notifications need a valid smtp server and port: %w", os.ErrInvalid)
		}
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Products = make([]*Product, len(c.Products))
	for i, p := range c.Products {
		cp := *p
		clone.Products[i] = &cp
	}
	return &clone
}
