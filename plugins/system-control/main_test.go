package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestHandlers_RejectBadParams(t *testing.T) {
	tests := []struct {
		name    string
		action  string
		params  string
		wantErr string
	}{
		{"volume missing scalar", "volume-set", `{}`, "missing scalar"},
		{"volume above range", "volume-set", `{"scalar":1.5}`, "out of range"},
		{"volume below range", "volume-set", `{"scalar":-0.1}`, "out of range"},
		{"volume malformed", "volume-set", `{"scalar":"loud"}`, "invalid params"},
		{"mute missing flag", "mute-set", `{}`, "missing muted"},
		{"mute malformed", "mute-set", `[1]`, "invalid params"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, ok := actionHandlers[tt.action]
			if !ok {
				t.Fatalf("no handler for %s", tt.action)
			}

			err := handler(json.RawMessage(tt.params))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("handler() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseVolume(t *testing.T) {
	tests := []struct {
		params string
		want   int
	}{
		{`{"scalar":0}`, 0},
		{`{"scalar":0.5}`, 50},
		{`{"scalar":0.555}`, 56},
		{`{"scalar":1}`, 100},
	}

	for _, tt := range tests {
		got, err := parseVolume(json.RawMessage(tt.params))
		if err != nil {
			t.Errorf("parseVolume(%s) error = %v", tt.params, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseVolume(%s) = %d, want %d", tt.params, got, tt.want)
		}
	}
}

func TestParseMute(t *testing.T) {
	for _, want := range []bool{true, false} {
		params, _ := json.Marshal(map[string]bool{"muted": want})
		got, err := parseMute(params)
		if err != nil {
			t.Fatalf("parseMute(%s) error = %v", params, err)
		}
		if got != want {
			t.Errorf("parseMute(%s) = %v, want %v", params, got, want)
		}
	}
}
