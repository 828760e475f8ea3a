package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName == "" {
		t.Error("AppName should not be empty")
	}

	expectedVersion := "1.0.0"
	if Version != expectedVersion {
		t.Errorf("Expected version %s, got %s", expectedVersion, Version)
	}

	expectedAppName := "Room Coordination Server"
	if AppName != expectedAppName {
		t.Errorf("Expected app name %s, got %s", expectedAppName, AppName)
	}
}

// TestRunStartsAndStops wires the whole server on an ephemeral port and
// verifies it shuts down cleanly when the context is cancelled.
func TestRunStartsAndStops(t *testing.T) {
	dir := t.TempDir()

	cfg := map[string]any{
		"rooms_file": filepath.Join(dir, "rooms.json"),
		"static_dir": dir,
		"log_file":   filepath.Join(dir, "app.log"),
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(dir, "config.json")
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- run(ctx, configPath, "127.0.0.1:0", false)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop after context cancellation")
	}
}

func TestRunFailsOnUnreadableConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	if err := os.WriteFile(configPath, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := run(context.Background(), configPath, "", false); err == nil {
		t.Error("Expected error for malformed config file")
	}
}

// Note: main() itself parses os.Args and blocks on the server; its wiring is
// covered through run() above and the api and websocket package tests.
