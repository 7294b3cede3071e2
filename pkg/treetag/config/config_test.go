package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cognicore/treetag/pkg/treetag/invoke"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "treetag.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
install_dir: /opt/treetagger
language: english
encoding: latin-1
abbreviations: true
timeout: 45s
`)

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	opts, err := f.Options()
	if err != nil {
		t.Fatalf("Options failed: %v", err)
	}
	if opts.InstallDir != "/opt/treetagger" {
		t.Errorf("Wrong install dir: %q", opts.InstallDir)
	}
	if opts.Language != "english" {
		t.Errorf("Wrong language: %q", opts.Language)
	}
	if opts.Encoding != invoke.Latin1 {
		t.Errorf("Wrong encoding: %q", opts.Encoding)
	}
	if !opts.Abbreviations {
		t.Error("Abbreviations should be enabled")
	}
	if opts.Timeout != 45*time.Second {
		t.Errorf("Wrong timeout: %v", opts.Timeout)
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	_, err := Load("/nonexistent/treetag.yaml")
	if err == nil {
		t.Error("Should error on nonexistent config")
	}
}

func TestOptionsBadTimeout(t *testing.T) {
	f := &File{Timeout: "soon"}
	if _, err := f.Options(); err == nil {
		t.Error("Should error on unparseable timeout")
	}
}

func TestLoaderNoPath(t *testing.T) {
	t.Setenv(EnvHome, "")
	t.Setenv(EnvRoot, "")

	loader := Loader{}
	opts, err := loader.Load()
	if err != nil {
		t.Fatalf("Empty loader should succeed: %v", err)
	}
	if opts.InstallDir != "" {
		t.Errorf("Expected empty install dir, got %q", opts.InstallDir)
	}
}

func TestLoaderEnvFallback(t *testing.T) {
	t.Setenv(EnvHome, "/env/treetagger")

	loader := Loader{}
	opts, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if opts.InstallDir != "/env/treetagger" {
		t.Errorf("Expected env install dir, got %q", opts.InstallDir)
	}
}

func TestLoaderFileWinsOverEnv(t *testing.T) {
	t.Setenv(EnvHome, "/env/treetagger")
	path := writeConfig(t, "install_dir: /file/treetagger\n")

	loader := Loader{Path: path}
	opts, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if opts.InstallDir != "/file/treetagger" {
		t.Errorf("Config file should win over env, got %q", opts.InstallDir)
	}
}

func TestFromEnvPrecedence(t *testing.T) {
	t.Setenv(EnvHome, "/home/dir")
	t.Setenv(EnvRoot, "/root/dir")

	if dir := FromEnv(); dir != "/home/dir" {
		t.Errorf("TREETAGGER_HOME should win, got %q", dir)
	}

	t.Setenv(EnvHome, "")
	if dir := FromEnv(); dir != "/root/dir" {
		t.Errorf("TREETAGGER should be the fallback, got %q", dir)
	}
}
