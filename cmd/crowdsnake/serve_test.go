package main

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/crowdsnake/internal/config"
	"github.com/vovakirdan/crowdsnake/internal/storage"
)

func testServeConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(t.TempDir(), "sessions.db")
	cfg.Server.HTTPAddr = "127.0.0.1:0"
	cfg.Server.SSHAddr = ""
	cfg.Tick.Interval = 5 * time.Millisecond
	cfg.Tick.Seed = 7
	return cfg
}

func recentSessions(t *testing.T, dbPath string) []storage.SessionEntry {
	t.Helper()
	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	entries, err := store.RecentSessions(10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	return entries
}

func TestServeStopsCleanlyOnCancel(t *testing.T) {
	cfg := testServeConfig(t)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := serve(ctx, cfg, "", log.New(io.Discard)); err != nil {
		t.Fatalf("serve() = %v, expected nil after cancel", err)
	}

	entries := recentSessions(t, cfg.Storage.DBPath)
	if len(entries) != 1 || entries[0].EndReason != "shutdown" {
		t.Errorf("journal = %+v, expected one shutdown session", entries)
	}
}

func TestServeReturnsFrontEndFailure(t *testing.T) {
	cfg := testServeConfig(t)
	cfg.Server.HTTPAddr = "127.0.0.1:-1"

	done := make(chan error, 1)
	go func() {
		done <- serve(context.Background(), cfg, "", log.New(io.Discard))
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("serve() = nil, expected the listen error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve() did not return after the HTTP server failed")
	}

	// The driver was stopped and its session journaled before serve returned
	entries := recentSessions(t, cfg.Storage.DBPath)
	if len(entries) != 1 || entries[0].EndReason != "shutdown" {
		t.Errorf("journal = %+v, expected one shutdown session", entries)
	}
}
