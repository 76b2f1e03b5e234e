// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Level != "info" {
		t.Errorf("expected default level 'info', got '%s'", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("expected default format 'json', got '%s'", cfg.Format)
	}
	if !cfg.Timestamp {
		t.Error("expected default timestamp to be true")
	}
}

func TestInit(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Info().Str("page", "1").Msg("feed page assembled")

	output := buf.String()
	if !strings.Contains(output, "feed page assembled") {
		t.Errorf("expected message in output, got: %s", output)
	}
	if !strings.Contains(output, `"level":"info"`) {
		t.Errorf("expected level field in output, got: %s", output)
	}
	if !strings.Contains(output, `"page":"1"`) {
		t.Errorf("expected page field in output, got: %s", output)
	}
}

func TestInit_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "warn", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Debug().Msg("hidden debug")
	Info().Msg("hidden info")
	Warn().Msg("visible warn")
	Err(errors.New("boom")).Msg("visible error")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("expected debug and info to be filtered, got: %s", output)
	}
	if !strings.Contains(output, "visible warn") || !strings.Contains(output, "visible error") {
		t.Errorf("expected warn and error output, got: %s", output)
	}
	if !strings.Contains(output, `"error":"boom"`) {
		t.Errorf("expected error field, got: %s", output)
	}
}

func TestInit_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "console", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Info().Msg("console line")

	output := buf.String()
	if strings.HasPrefix(output, "{") {
		t.Errorf("expected console output, got JSON: %s", output)
	}
	if !strings.Contains(output, "console line") {
		t.Errorf("expected message in console output, got: %s", output)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"disabled", zerolog.Disabled},
		{"DEBUG", zerolog.DebugLevel},
		{" info ", zerolog.InfoLevel},
		{"invalid", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidLevel(t *testing.T) {
	t.Parallel()

	for _, level := range []string{"trace", "debug", "INFO", "warn", "error", "disabled"} {
		if !ValidLevel(level) {
			t.Errorf("ValidLevel(%q) = false, want true", level)
		}
	}
	for _, level := range []string{"", "verbose", "critical"} {
		if ValidLevel(level) {
			t.Errorf("ValidLevel(%q) = true, want false", level)
		}
	}
}

func TestSetLoggerAndWith(t *testing.T) {
	var buf bytes.Buffer
	original := Logger()
	SetLogger(NewTestLogger(&buf))
	t.Cleanup(func() { SetLogger(original) })

	child := With().Str("component", "feed").Logger()
	child.Info().Msg("child message")

	output := buf.String()
	if !strings.Contains(output, `"component":"feed"`) {
		t.Errorf("expected component field, got: %s", output)
	}
}
