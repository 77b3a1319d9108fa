package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		debug bool
		info  bool
	}{
		{"default is info", Options{}, false, true},
		{"explicit warn", Options{Level: "warn"}, false, false},
		{"verbose forces debug", Options{Level: "error", Verbose: true}, true, true},
		{"console format", Options{Format: "console", Level: "debug"}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.opts)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			core := logger.Core()
			if core.Enabled(zapcore.DebugLevel) != tt.debug {
				t.Errorf("debug enabled = %v, want %v", !tt.debug, tt.debug)
			}
			if core.Enabled(zapcore.InfoLevel) != tt.info {
				t.Errorf("info enabled = %v, want %v", !tt.info, tt.info)
			}
		})
	}
}

func TestNew_Invalid(t *testing.T) {
	if _, err := New(Options{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resonanz.log")
	logger, err := New(Options{File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hallo")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hallo"`) {
		t.Errorf("log file = %s", data)
	}
}
