// Copyright (c) 2025 BVK Chaitanya

package monitor

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/pricemon/pricemon/api"
	"github.com/shirou/gopsutil/v4/process"
)

func (s *Service) doStatus(ctx context.Context, req *api.StatusRequest) (*api.StatusResponse, error) {
	c := s.Config()
	resp := &api.StatusResponse{
		IsRunning:            s.IsRunning(),
		TotalProducts:        len(c.Products),
		CheckIntervalMinutes: c.CheckIntervalMinutes,
		ServerPID:            os.Getpid(),
		ServerUptime:         time.Since(s.start),
	}
	if resp.IsRunning {
		now := time.Now()
		resp.LastCheck = &now
	}

	// Memory usage is informational; failures don't fail the status call.
	if proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid())); err == nil {
		if mi, err := proc.MemoryInfoWithContext(ctx); err == nil {
			resp.ServerMemoryRSS = mi.RSS
		} else {
			slog.DebugContext(ctx, "could not read process memory info (ignored)", "error", err)
		}
	}
	return resp, nil
}
