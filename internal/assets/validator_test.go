package assets

import (
	"strings"
	"testing"
)

func TestValidate_AcceptsValidFiles(t *testing.T) {
	tests := []struct {
		name        string
		size        int64
		contentType string
		kind        Kind
	}{
		{"mp4 within limit", 50 * bytesInMegabyte, "video/mp4", KindVideo},
		{"webm at limit", 100 * bytesInMegabyte, "video/webm", KindVideo},
		{"jpeg within limit", 1 * bytesInMegabyte, "image/jpeg", KindImage},
		{"png at limit", 5 * bytesInMegabyte, "image/png", KindImage},
		{"webp small", 1024, "image/webp", KindImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if msg := Validate(tt.size, tt.contentType, tt.kind); msg != "" {
				t.Errorf("expected no error, got %q", msg)
			}
		})
	}
}

func TestValidate_RejectsOversizedFiles(t *testing.T) {
	tests := []struct {
		name    string
		size    int64
		kind    Kind
		wantMB  string
		mime    string
	}{
		{"video over 100MB", 100*bytesInMegabyte + 1, KindVideo, "100MB", "video/mp4"},
		{"image over 5MB", 6 * bytesInMegabyte, KindImage, "5MB", "image/png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Validate(tt.size, tt.mime, tt.kind)
			if msg == "" {
				t.Fatal("expected an error message, got none")
			}
			if !strings.Contains(msg, tt.wantMB) {
				t.Errorf("expected message to contain %q, got %q", tt.wantMB, msg)
			}
		})
	}
}

func TestValidate_RejectsDisallowedTypes(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		kind        Kind
		wantListed  []string
	}{
		{"avi video", "video/avi", KindVideo, []string{"video/mp4", "video/webm"}},
		{"gif image", "image/gif", KindImage, []string{"image/jpeg", "image/png", "image/webp"}},
		{"empty type", "", KindVideo, []string{"video/mp4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Validate(1024, tt.contentType, tt.kind)
			if msg == "" {
				t.Fatal("expected an error message, got none")
			}
			for _, listed := range tt.wantListed {
				if !strings.Contains(msg, listed) {
					t.Errorf("expected message to list %q, got %q", listed, msg)
				}
			}
		})
	}
}

func TestValidate_IsRepeatable(t *testing.T) {
	first := Validate(200*bytesInMegabyte, "video/mp4", KindVideo)
	second := Validate(200*bytesInMegabyte, "video/mp4", KindVideo)

	if first != second {
		t.Errorf("expected identical results for identical input, got %q then %q", first, second)
	}
}
