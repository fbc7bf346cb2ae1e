package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tessro/spin/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    log.Level
		wantErr bool
	}{
		{"", log.InfoLevel, false},
		{"debug", log.DebugLevel, false},
		{"warn", log.WarnLevel, false},
		{"error", log.ErrorLevel, false},
		{"shouting", log.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(config.LogConfig{Level: "warn"}, false, &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = closeFn() }()

	logger.Info("info message")
	logger.Warn("warn message")

	output := buf.String()
	if strings.Contains(output, "info message") {
		t.Error("info message should be filtered out")
	}
	if !strings.Contains(output, "warn message") {
		t.Error("warn message should be present")
	}
}

func TestVerboseForcesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(config.LogConfig{Level: "error"}, true, &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Debug("wrote key", "key", "__search__")
	if !strings.Contains(buf.String(), "key=__search__") {
		t.Errorf("expected debug output with key field, got: %s", buf.String())
	}
}

func TestLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "spin.log")
	logger, closeFn, err := New(config.LogConfig{Level: "info", File: path}, false, os.Stderr)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("hello file")
	if err := closeFn(); err != nil {
		t.Fatalf("close error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "hello file") {
		t.Errorf("log file = %q, want message", data)
	}
}
