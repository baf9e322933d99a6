// Copyright (c) 2025 BVK Chaitanya

package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestAppendFlushReopen(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), "price_history.json")
	url := "https://www.example.com/dp/B0TEST"

	s, err := Open(fpath)
	if err != nil {
		t.Fatal(err)
	}
	now := time.Now()
	s.Append(url, decimal.RequireFromString("55.99"), now)
	s.Append(url, decimal.RequireFromString("45.99"), now.Add(time.Minute))
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}

	s2, err := Open(fpath)
	if err != nil {
		t.Fatal(err)
	}
	points := s2.Snapshot(url, 0)[url]
	if len(points) != 2 {
		t.Fatalf("want 2 points, got %d", len(points))
	}
	if !points[0].Price.Equal(decimal.RequireFromString("55.99")) {
		t.Fatalf("want 55.99, got %s", points[0].Price)
	}
	if !points[1].Price.Equal(decimal.RequireFromString("45.99")) {
		t.Fatalf("want 45.99, got %s", points[1].Price)
	}
	if !points[0].Timestamp.Before(points[1].Timestamp) {
		t.Fatalf("points must retain append order")
	}
}

func TestAppendOnly(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), "price_history.json")
	url := "https://www.example.com/dp/B0TEST"

	s, err := Open(fpath)
	if err != nil {
		t.Fatal(err)
	}
	s.Append(url, decimal.RequireFromString("10"), time.Now())
	before := s.Snapshot(url, 0)[url]

	s.Append(url, decimal.RequireFromString("20"), time.Now())
	after := s.Snapshot(url, 0)[url]
	if len(after) != len(before)+1 {
		t.Fatalf("want %d points, got %d", len(before)+1, len(after))
	}
	for i := range before {
		if !after[i].Price.Equal(before[i].Price) || !after[i].Timestamp.Equal(before[i].Timestamp) {
			t.Fatalf("existing entry %d was modified", i)
		}
	}
}

func TestSnapshotFilterAndLimit(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), "price_history.json")
	url1 := "https://www.example.com/dp/B0AAAA"
	url2 := "https://www.example.com/dp/B0BBBB"

	s, err := Open(fpath)
	if err != nil {
		t.Fatal(err)
	}
	now := time.Now()
	for i := 0; i < 5; i++ {
		s.Append(url1, decimal.NewFromInt(int64(10+i)), now.Add(time.Duration(i)*time.Minute))
	}
	s.Append(url2, decimal.NewFromInt(99), now)

	snap := s.Snapshot(url1, 2)
	if len(snap) != 1 {
		t.Fatalf("want 1 url, got %d", len(snap))
	}
	points := snap[url1]
	if len(points) != 2 {
		t.Fatalf("want 2 points, got %d", len(points))
	}
	if !points[1].Price.Equal(decimal.NewFromInt(14)) {
		t.Fatalf("want most recent point last, got %s", points[1].Price)
	}
}

func TestOpenCorruptStartsEmpty(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), "price_history.json")
	if err := os.WriteFile(fpath, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := Open(fpath)
	if err != nil {
		t.Fatal(err)
	}
	if snap := s.Snapshot("", 0); len(snap) != 0 {
		t.Fatalf("want empty history, got %d urls", len(snap))
	}

	url := "https://www.example.com/dp/B0TEST"
	s.Append(url, decimal.NewFromInt(5), time.Now())
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	s2, err := Open(fpath)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(s2.Snapshot(url, 0)[url]); got != 1 {
		t.Fatalf("want 1 point after flush, got %d", got)
	}
}

func TestFlushIsIdempotent(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), "price_history.json")

	s, err := Open(fpath)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	s.Append("https://www.example.com/dp/B0TEST", decimal.NewFromInt(1), time.Now())
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
}
