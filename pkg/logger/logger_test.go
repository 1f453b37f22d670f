package logger

import (
	"habit_tracker_backend/internal/config"
	"testing"

	"go.uber.org/zap"
)

func TestLevelForMode(t *testing.T) {
	tests := []struct {
		mode string
		want string
	}{
		{mode: "debug", want: "debug"},
		{mode: "release", want: "info"},
		{mode: "", want: "info"},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			if got := levelForMode(tt.mode).String(); got != tt.want {
				t.Errorf("levelForMode(%q) = %q, want %q", tt.mode, got, tt.want)
			}
		})
	}
}

func TestApplyConfigChangesLevel(t *testing.T) {
	cfg := &config.Config{Server: config.ServerConfig{Mode: "debug"}}
	ApplyConfig(cfg)
	if Level() != zap.DebugLevel {
		t.Errorf("expected debug level after reload, got %v", Level())
	}

	cfg.Server.Mode = "release"
	ApplyConfig(cfg)
	if Level() != zap.InfoLevel {
		t.Errorf("expected info level after reload, got %v", Level())
	}
}
