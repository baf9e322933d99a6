// Copyright (c) 2025 BVK Chaitanya

package logdir

import (
	"log"
	"testing"
)

func TestLogDir(t *testing.T) {
	dir := t.TempDir()
	b, err := New(dir, "testlogdir")
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	logger := log.New(b, "", log.Flags())
	for i := 0; i < 1024; i++ {
		logger.Printf("hello world %d", i)
	}

	lines, err := Tail(dir, "testlogdir", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 10 {
		t.Fatalf("want 10 lines, got %d", len(lines))
	}
}
