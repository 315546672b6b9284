package main

import (
	"os"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		env     string
		want    string
		wantErr bool
	}{
		{"default", nil, "", "info", false},
		{"flag", []string{"--log-level=debug"}, "", "debug", false},
		{"env", nil, "debug", "debug", false},
		{"flag beats env", []string{"--log-level=info"}, "debug", "info", false},
		{"unknown level", []string{"--log-level=trace"}, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setenv restores the variable after the test; an empty
			// value would still count as set, so unset it.
			t.Setenv("COLLAGE_MCP_LOG_LEVEL", tt.env)
			if tt.env == "" {
				os.Unsetenv("COLLAGE_MCP_LOG_LEVEL")
			}

			var c cli
			parser, err := newParser(&c)
			if err != nil {
				t.Fatalf("newParser failed: %v", err)
			}
			_, err = parser.Parse(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Error("expected parse error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if c.LogLevel != tt.want {
				t.Errorf("LogLevel: got %q, want %q", c.LogLevel, tt.want)
			}
		})
	}
}
