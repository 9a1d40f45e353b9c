package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadStyle(t *testing.T) {
	t.Run("embedded layers load", func(t *testing.T) {
		for _, name := range []string{"base", "github", "mpe"} {
			css, err := LoadStyle(name)
			if err != nil {
				t.Errorf("LoadStyle(%q) error = %v", name, err)
				continue
			}
			if !strings.Contains(css, ".markdown-body") {
				t.Errorf("LoadStyle(%q) missing .markdown-body selector", name)
			}
		}
	})

	t.Run("unknown style", func(t *testing.T) {
		_, err := LoadStyle("nonexistent")
		if !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("expected ErrStyleNotFound, got %v", err)
		}
	})
}

func TestValidateAssetName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid name", "base", false},
		{"valid with dash", "my-style", false},
		{"empty", "", true},
		{"path traversal", "../etc/passwd", true},
		{"forward slash", "a/b", true},
		{"backslash", `a\b`, true},
		{"dot extension", "base.css", true},
		{"null byte", "a\x00b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAssetName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAssetName(%q) error = %v, wantErr %t", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidAssetName) {
				t.Errorf("error should wrap ErrInvalidAssetName, got %v", err)
			}
		})
	}
}
