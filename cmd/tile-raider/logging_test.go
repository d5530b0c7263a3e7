package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
)

func restoreLog(t *testing.T) {
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(log.LstdFlags)
	})
}

func TestSetupLogging_EmptyPathDiscards(t *testing.T) {
	restoreLog(t)
	f, err := setupLogging("")
	if err != nil || f != nil {
		t.Fatalf("setupLogging(\"\") = %v, %v", f, err)
	}
	if log.Writer() != io.Discard {
		t.Errorf("Expected log output to be io.Discard, got %v", log.Writer())
	}
}

func TestSetupLogging_WritesFile(t *testing.T) {
	restoreLog(t)
	path := filepath.Join(t.TempDir(), "logs", "tile-raider.log")
	f, err := setupLogging(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	log.Println("Test log message")

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected log file to contain content")
	}
}

func TestSetupLogging_Appends(t *testing.T) {
	restoreLog(t)
	path := filepath.Join(t.TempDir(), "run.log")
	if err := os.WriteFile(path, []byte("previous\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := setupLogging(path)
	if err != nil {
		t.Fatal(err)
	}
	log.Println("next")
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) <= len("previous\n") || string(data[:9]) != "previous\n" {
		t.Errorf("log not appended: %q", data)
	}
}
