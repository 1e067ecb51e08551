package logger

import (
	"log/slog"
	"testing"
)

func TestNewInstallsDefault(t *testing.T) {
	log := New(Options{Service: "test", Level: "debug"})
	if log == nil {
		t.Fatal("expected a logger")
	}
	if slog.Default() != log {
		t.Fatal("New must install the returned logger as the process default")
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"  WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.in); got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
