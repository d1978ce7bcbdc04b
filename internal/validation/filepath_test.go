package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewOutputPathValidator(t *testing.T) {
	v := NewOutputPathValidator()
	if v == nil {
		t.Fatal("NewOutputPathValidator returned nil")
	}
	if !v.AllowHomeExpansion {
		t.Error("Expected AllowHomeExpansion to be true")
	}
	if v.MaxPathLength != 4096 {
		t.Errorf("Expected MaxPathLength to be 4096, got %d", v.MaxPathLength)
	}
}

func TestValidateAndSanitize_Valid(t *testing.T) {
	v := NewOutputPathValidator()

	got, err := v.ValidateAndSanitize("/tmp/fluidcss.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/tmp/fluidcss.toml" {
		t.Errorf("expected absolute path unchanged, got %q", got)
	}
}

func TestValidateAndSanitize_MakesRelativeAbsolute(t *testing.T) {
	v := NewOutputPathValidator()

	got, err := v.ValidateAndSanitize("export.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("expected an absolute path, got %q", got)
	}
}

func TestValidateAndSanitize_HomeExpansion(t *testing.T) {
	v := NewOutputPathValidator()

	got, err := v.ValidateAndSanitize("~/export.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if got != filepath.Join(home, "export.toml") {
		t.Errorf("expected home-expanded path, got %q", got)
	}
}

func TestValidateAndSanitize_HomeExpansionDisabled(t *testing.T) {
	v := NewOutputPathValidator()
	v.AllowHomeExpansion = false

	if _, err := v.ValidateAndSanitize("~/export.toml"); err == nil {
		t.Error("expected tilde to be rejected when expansion is disabled")
	}
}

func TestValidateAndSanitize_Rejections(t *testing.T) {
	v := NewOutputPathValidator()

	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"null byte", "/tmp/a\x00b"},
		{"control character", "/tmp/a\x01b"},
		{"bare tilde user", "~root/file"},
		{"too long", "/" + strings.Repeat("a", 5000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := v.ValidateAndSanitize(tt.input); err == nil {
				t.Errorf("expected %q to be rejected", tt.input)
			}
		})
	}
}

func TestValidateAndSanitize_CleansTraversal(t *testing.T) {
	v := NewOutputPathValidator()

	// Traversal inside an absolute path collapses under Clean.
	got, err := v.ValidateAndSanitize("/tmp/sub/../export.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/tmp/export.toml" {
		t.Errorf("expected cleaned path, got %q", got)
	}
}

func TestValidateFile_RejectsDirectory(t *testing.T) {
	v := NewOutputPathValidator()
	dir := t.TempDir()

	if _, err := v.ValidateFile(dir); err == nil {
		t.Error("expected a directory path to be rejected")
	}
}

func TestValidateFile_AcceptsNewFile(t *testing.T) {
	v := NewOutputPathValidator()
	path := filepath.Join(t.TempDir(), "new.toml")

	got, err := v.ValidateFile(path)
	if err != nil {
		t.Fatalf("expected a not-yet-existing file path to pass, got %v", err)
	}
	if got != path {
		t.Errorf("expected %q, got %q", path, got)
	}
}
