package helpvideos

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"zero", 0, "00:00"},
		{"under a minute", 59 * time.Second, "00:59"},
		{"exactly one minute", 60 * time.Second, "01:00"},
		{"125 seconds", 125 * time.Second, "02:05"},
		{"fractional seconds truncate", 125900 * time.Millisecond, "02:05"},
		{"minutes not capped at 59", 90 * time.Minute, "90:00"},
		{"negative clamps to zero", -5 * time.Second, "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.duration); got != tt.expected {
				t.Errorf("FormatDuration(%v) = %q, expected %q", tt.duration, got, tt.expected)
			}
		})
	}
}
