package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cybersorcerer/kspcfg/internal/diag"
)

func TestHasGameDataAncestor(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{filepath.Join("home", "user", "KSP", "GameData", "Mod", "patch.cfg"), true},
		{filepath.Join("home", "user", "KSP", "Mod", "patch.cfg"), false},
		{filepath.Join("GameData", "patch.cfg"), true},
	}
	for _, c := range cases {
		if got := hasGameDataAncestor(c.path); got != c.want {
			t.Errorf("hasGameDataAncestor(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestDiscoverConfigFilesFiltersExtensionAndAncestor(t *testing.T) {
	dir := t.TempDir()
	gameData := filepath.Join(dir, "Mod", "GameData", "Sub")
	outside := filepath.Join(dir, "Other")
	if err := os.MkdirAll(gameData, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.MkdirAll(outside, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(gameData, "patch.cfg"), []byte("@PART {\n}\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(gameData, "readme.txt"), []byte("not a patch"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(outside, "ignored.cfg"), []byte("@PART {\n}\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	files, err := discoverConfigFiles(dir)
	if err != nil {
		t.Fatalf("discoverConfigFiles: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected exactly one discovered file, got %v", files)
	}
	if filepath.Base(files[0]) != "patch.cfg" {
		t.Errorf("expected patch.cfg, got %s", files[0])
	}
}

func TestReportCheckReturnsErrorOnlyForErrorSeverity(t *testing.T) {
	clean := []diag.Diagnostic{{Severity: diag.SeverityWarning, Message: "fyi"}}
	if err := reportCheck("a.cfg", clean); err != nil {
		t.Errorf("expected no error for a Warning-only diagnostic set, got %v", err)
	}

	withError := []diag.Diagnostic{{Severity: diag.SeverityError, Message: "boom"}}
	if err := reportCheck("a.cfg", withError); err == nil {
		t.Errorf("expected an error when an Error-severity diagnostic is present")
	}
}
