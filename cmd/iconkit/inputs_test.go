package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iconforge/iconkit/internal/appfilter"
	"github.com/iconforge/iconkit/internal/common/config"
)

func writeTestAppfilter(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "appfilter.xml")
	if err := os.WriteFile(path, []byte("<resources>\n</resources>\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolveInputsPositionalArgs(t *testing.T) {
	cfg := &config.Config{}

	in, err := resolveInputs(cfg, []string{"newicons/appfilter.xml", "https://example.org/appfilter.xml"}, "", "")
	if err != nil {
		t.Fatalf("resolveInputs failed: %v", err)
	}

	if in.localPath != "newicons/appfilter.xml" {
		t.Errorf("localPath = %q", in.localPath)
	}
	if in.remote != "https://example.org/appfilter.xml" {
		t.Errorf("remote = %q", in.remote)
	}
}

func TestResolveInputsConfigFallback(t *testing.T) {
	path := writeTestAppfilter(t)
	cfg := &config.Config{
		Appfilter: config.AppfilterConfig{
			Path:    path,
			Remote:  "https://config.example.org/appfilter.xml",
			Matcher: "name",
		},
	}

	in, err := resolveInputs(cfg, nil, "", "")
	if err != nil {
		t.Fatalf("resolveInputs failed: %v", err)
	}

	if in.localPath != path {
		t.Errorf("localPath = %q, want %q", in.localPath, path)
	}
	if in.remote != "https://config.example.org/appfilter.xml" {
		t.Errorf("remote = %q", in.remote)
	}
	if in.matcher != "name" {
		t.Errorf("matcher = %q", in.matcher)
	}
}

func TestResolveInputsNoRemote(t *testing.T) {
	path := writeTestAppfilter(t)
	cfg := &config.Config{Appfilter: config.AppfilterConfig{Path: path}}

	_, err := resolveInputs(cfg, nil, "", "")
	if !errors.Is(err, errNoRemote) {
		t.Errorf("error = %v, want errNoRemote", err)
	}
}

func TestResolveInputsNamedSource(t *testing.T) {
	path := writeTestAppfilter(t)

	sourcesDir := filepath.Join(filepath.Dir(path), ".iconkit")
	if err := os.MkdirAll(sourcesDir, 0755); err != nil {
		t.Fatal(err)
	}
	sources := `[arcticons]
url = "https://source.example.org/appfilter.xml"
matcher = "name"
`
	if err := os.WriteFile(filepath.Join(sourcesDir, "sources.toml"), []byte(sources), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{Appfilter: config.AppfilterConfig{Matcher: "drawable"}}

	in, err := resolveInputs(cfg, []string{path}, "arcticons", "")
	if err != nil {
		t.Fatalf("resolveInputs failed: %v", err)
	}

	if in.remote != "https://source.example.org/appfilter.xml" {
		t.Errorf("remote = %q", in.remote)
	}
	if in.matcher != "name" {
		t.Errorf("source matcher should override config, got %q", in.matcher)
	}
}

func TestResolveInputsMatcherFlagWins(t *testing.T) {
	cfg := &config.Config{Appfilter: config.AppfilterConfig{Matcher: "name"}}

	in, err := resolveInputs(cfg, []string{"appfilter.xml", "https://example.org/appfilter.xml"}, "", "drawable")
	if err != nil {
		t.Fatalf("resolveInputs failed: %v", err)
	}

	if in.matcher != "drawable" {
		t.Errorf("matcher = %q, want flag value", in.matcher)
	}
}

func TestResolveInputsUnknownSource(t *testing.T) {
	path := writeTestAppfilter(t)
	cfg := &config.Config{}

	_, err := resolveInputs(cfg, []string{path}, "nope", "")
	if !errors.Is(err, appfilter.ErrSourcesNotFound) {
		t.Errorf("error = %v, want ErrSourcesNotFound", err)
	}
}

func TestHTTPClientUsesConfig(t *testing.T) {
	cfg := &config.Config{HTTP: config.HTTPConfig{TimeoutSeconds: 5, Retries: 1}}

	client := httpClient(cfg)
	rc := client.Config()

	if rc.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", rc.Timeout)
	}
	if rc.MaxRetries != 1 {
		t.Errorf("retries = %d, want 1", rc.MaxRetries)
	}
}
