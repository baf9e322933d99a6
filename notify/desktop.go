// Copyright (c) 2025 BVK Chaitanya

package notify

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DesktopSender shows alerts as desktop notifications through the
// notify-send command.
type DesktopSender struct {
}

func NewDesktopSender() *DesktopSender {
	return &DesktopSender{}
}

func (s *DesktopSender) SendMessage(ctx context.Context, at time.Time, msg string) error {
	title, body, _ := strings.Cut(msg, "\n")
	cmd := exec.CommandContext(ctx, "notify-send", title, body)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("could not run notify-send: %w", err)
	}
	return nil
}
