// Copyright (c) 2025 BVK Chaitanya

// Package notify delivers target-price alerts over one or more channels
// (email, desktop, pushover, telegram). Delivery is best-effort; a failing
// channel never blocks the others or the monitor loop.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pricemon/pricemon/config"
	"github.com/shopspring/decimal"
)

// Alert describes a product whose price dropped to or below its target.
type Alert struct {
	ID string

	At time.Time

	ProductName string

	URL string

	CurrentPrice decimal.Decimal

	TargetPrice decimal.Decimal
}

// Subject returns a short one-line summary for the alert.
func (a *Alert) Subject() string {
	return fmt.Sprintf("Price Alert: %s is now $%s", a.ProductName, a.CurrentPrice)
}

// Message returns the full alert text. The first line matches Subject so
// channels without a separate subject field can send the message as-is.
func (a *Alert) Message() string {
	return fmt.Sprintf("%s\nTarget price: $%s\n%s", a.Subject(), a.TargetPrice, a.URL)
}

// Sender delivers a single message over one notification channel.
type Sender interface {
	SendMessage(ctx context.Context, at time.Time, msg string) error
}

type namedSender struct {
	name   string
	sender Sender
}

// Service fans an alert out to all active channels. Email and desktop
// channels are picked from the configuration snapshot on every alert, so
// toggling them takes effect without a daemon restart. Channels registered
// with AddSender (eg: pushover, telegram) are always active.
type Service struct {
	senders []namedSender
}

func NewService() *Service {
	return &Service{}
}

func (s *Service) AddSender(name string, sender Sender) {
	s.senders = append(s.senders, namedSender{name: name, sender: sender})
}

// NumSenders returns the number of always-active channels.
func (s *Service) NumSenders() int {
	return len(s.senders)
}

// channels returns the senders active for the given configuration snapshot.
func (s *Service) channels(ctx context.Context, c *config.Config) []namedSender {
	var active []namedSender
	if c != nil && c.Email.Enabled {
		email, err := NewEmailSender(&c.Email)
		if err != nil {
			slog.WarnContext(ctx, "could not configure email channel (ignored)", "error", err)
		} else {
			active = append(active, namedSender{name: "email", sender: email})
		}
	}
	if c != nil && c.Desktop.Enabled {
		active = append(active, namedSender{name: "desktop", sender: NewDesktopSender()})
	}
	return append(active, s.senders...)
}

// Notify sends the alert on every active channel and returns the number of
// successful deliveries. Channel failures are logged and skipped.
func (s *Service) Notify(ctx context.Context, c *config.Config, alert *Alert) int {
	msg := alert.Message()
	ndelivered := 0
	for _, ns := range s.channels(ctx, c) {
		if err := ns.sender.SendMessage(ctx, alert.At, msg); err != nil {
			slog.WarnContext(ctx, "could not deliver price alert (ignored)", "channel", ns.name, "product", alert.ProductName, "error", err)
			continue
		}
		ndelivered++
	}
	return ndelivered
}
