package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitCommand(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, ".config", "fluidcss", "config.toml")

	oldConfig := configFlag
	configFlag = configFile
	defer func() { configFlag = oldConfig }()

	var buf bytes.Buffer
	configInitCmd.SetOut(&buf)

	if err := configInitCmd.RunE(configInitCmd, nil); err != nil {
		t.Fatalf("config init failed: %v", err)
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		t.Errorf("Config file was not created at %s", configFile)
	}
	if !strings.Contains(buf.String(), "Generated default configuration at") {
		t.Errorf("Expected confirmation message, got: %s", buf.String())
	}
}

func TestGenerateCommandPrintsDefaultClasses(t *testing.T) {
	tmpDir := t.TempDir()

	oldHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpDir)
	defer os.Setenv("HOME", oldHome)

	oldDB := dbFlag
	dbFlag = filepath.Join(tmpDir, "test.db")
	defer func() { dbFlag = oldDB }()

	var buf bytes.Buffer
	generateCmd.SetOut(&buf)

	if err := generateCmd.RunE(generateCmd, nil); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	out := buf.String()
	// Fresh database seeds the default six-entry table.
	for _, name := range []string{"xs", "sm", "md", "lg", "xl", "xxl"} {
		if !strings.Contains(out, ".space-"+name+" {") {
			t.Errorf("Expected output to contain class for %q, got: %s", name, out)
		}
	}
	if !strings.Contains(out, "margin: clamp(") {
		t.Errorf("Expected clamp() declarations, got: %s", out)
	}
}

func TestGenerateCommandUnitOverride(t *testing.T) {
	tmpDir := t.TempDir()

	oldHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpDir)
	defer os.Setenv("HOME", oldHome)

	oldDB := dbFlag
	dbFlag = filepath.Join(tmpDir, "test.db")
	defer func() { dbFlag = oldDB }()

	oldUnit := unitFlag
	unitFlag = "rem"
	defer func() { unitFlag = oldUnit }()

	var buf bytes.Buffer
	generateCmd.SetOut(&buf)

	if err := generateCmd.RunE(generateCmd, nil); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "clamp(0.500rem,") {
		t.Errorf("Expected rem-formatted bounds, got: %s", out)
	}
	if strings.Contains(out, "px,") {
		t.Errorf("Expected no px bounds with --unit rem, got: %s", out)
	}
}

func TestGenerateCommandRejectsUnknownUnit(t *testing.T) {
	tmpDir := t.TempDir()

	oldHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpDir)
	defer os.Setenv("HOME", oldHome)

	oldDB := dbFlag
	dbFlag = filepath.Join(tmpDir, "test.db")
	defer func() { dbFlag = oldDB }()

	oldUnit := unitFlag
	unitFlag = "em"
	defer func() { unitFlag = oldUnit }()

	if err := generateCmd.RunE(generateCmd, nil); err == nil {
		t.Error("Expected an error for an unknown unit")
	}
}

func TestGenerateCommandRejectsUnknownKind(t *testing.T) {
	tmpDir := t.TempDir()

	oldHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpDir)
	defer os.Setenv("HOME", oldHome)

	oldDB := dbFlag
	dbFlag = filepath.Join(tmpDir, "test.db")
	defer func() { dbFlag = oldDB }()

	oldKind := kindFlag
	kindFlag = "stylesheet"
	defer func() { kindFlag = oldKind }()

	if err := generateCmd.RunE(generateCmd, nil); err == nil {
		t.Error("Expected an error for an unknown kind")
	}
}
