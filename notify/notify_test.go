// Copyright (c) 2025 BVK Chaitanya

package notify

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pricemon/pricemon/config"
	"github.com/shopspring/decimal"
)

func quietConfig() *config.Config {
	c := config.Default()
	c.Desktop.Enabled = false
	return c
}

type fakeSender struct {
	msgs []string
	fail bool
}

func (f *fakeSender) SendMessage(ctx context.Context, at time.Time, msg string) error {
	if f.fail {
		return fmt.Errorf("channel is down")
	}
	f.msgs = append(f.msgs, msg)
	return nil
}

func TestNotifyFanOut(t *testing.T) {
	ctx := context.Background()

	good1, good2 := &fakeSender{}, &fakeSender{}
	bad := &fakeSender{fail: true}

	s := NewService()
	s.AddSender("one", good1)
	s.AddSender("bad", bad)
	s.AddSender("two", good2)

	alert := &Alert{
		At:           time.Now(),
		ProductName:  "Headphones",
		URL:          "https://www.example.com/dp/B0TEST",
		CurrentPrice: decimal.RequireFromString("45.99"),
		TargetPrice:  decimal.RequireFromString("50"),
	}
	if n := s.Notify(ctx, quietConfig(), alert); n != 2 {
		t.Fatalf("want 2 deliveries, got %d", n)
	}
	if len(good1.msgs) != 1 || len(good2.msgs) != 1 {
		t.Fatalf("every healthy channel must receive the alert")
	}
	if good1.msgs[0] != good2.msgs[0] {
		t.Fatalf("channels must receive identical messages")
	}
}

func TestAlertMessage(t *testing.T) {
	alert := &Alert{
		ProductName:  "Headphones",
		URL:          "https://www.example.com/dp/B0TEST",
		CurrentPrice: decimal.RequireFromString("45.99"),
		TargetPrice:  decimal.RequireFromString("50"),
	}
	msg := alert.Message()
	if !strings.HasPrefix(msg, alert.Subject()) {
		t.Fatalf("message must start with the subject line")
	}
	for _, want := range []string{"Headphones", "45.99", "50", alert.URL} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message %q must contain %q", msg, want)
		}
	}
}

func TestNotifyNoSenders(t *testing.T) {
	ctx := context.Background()
	s := NewService()
	alert := &Alert{
		ProductName:  "Headphones",
		CurrentPrice: decimal.NewFromInt(1),
		TargetPrice:  decimal.NewFromInt(2),
	}
	if n := s.Notify(ctx, quietConfig(), alert); n != 0 {
		t.Fatalf("want 0 deliveries, got %d", n)
	}
}
