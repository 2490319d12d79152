package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kingrea/loanflow/internal/application"
)

func TestLoadProjectConfigDefaultsWhenMissing(t *testing.T) {
	projectDir := t.TempDir()
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.Project.Version != 1 {
		t.Fatalf("expected default version == 1, got %d", c.Project.Version)
	}
	if c.DefaultDemo() != defaultDemoID {
		t.Fatalf("expected default demo %q, got %q", defaultDemoID, c.DefaultDemo())
	}
	if c.SimulatedDelay() != 2*time.Second {
		t.Fatalf("expected 2s delay, got %s", c.SimulatedDelay())
	}
	if c.ReviewProfile().AgeWeight != 1.5 {
		t.Fatalf("expected two-factor review profile, got %+v", c.ReviewProfile())
	}
}

func TestInitStateDirWritesParsableDefaults(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitStateDir(projectDir); err != nil {
		t.Fatalf("init state dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(projectDir, StateDir, "logs")); err != nil {
		t.Fatalf("logs dir missing: %v", err)
	}
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("default config must parse: %v", err)
	}
	app := c.ApplicationProfile()
	if app.AgeWeight != 0 || app.ApprovalThreshold != 50 {
		t.Fatalf("unexpected application profile %+v", app)
	}
	if len(app.Thresholds) != 2 || app.Thresholds[0].Status != application.StatusHigh {
		t.Fatalf("unexpected thresholds %+v", app.Thresholds)
	}
}

func TestLoadProjectConfigParsesYaml(t *testing.T) {
	projectDir := t.TempDir()
	stateDir := filepath.Join(projectDir, StateDir)
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		t.Fatal(err)
	}
	configYAML := strings.TrimSpace(`
version: 1
scoring:
  review:
    income_divisor: 500
    age_weight: 2
    approval_threshold: 80
    thresholds:
      - above: 20
        status: low
      - above: 80
        status: " top "
simulated_delay: 250ms
demos:
  default: Counter
`)
	if err := os.WriteFile(filepath.Join(stateDir, "config.yaml"), []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	review := c.ReviewProfile()
	if review.IncomeDivisor != 500 || review.AgeWeight != 2 {
		t.Fatalf("review profile not parsed: %+v", review)
	}
	if review.Thresholds[0].Status != "top" {
		t.Fatalf("thresholds must be ordered highest first, got %+v", review.Thresholds)
	}
	if c.ApplicationProfile().ApprovalThreshold != 50 {
		t.Fatalf("missing application section should keep defaults")
	}
	if c.SimulatedDelay() != 250*time.Millisecond {
		t.Fatalf("delay = %s", c.SimulatedDelay())
	}
	if c.DefaultDemo() != DemoCounter {
		t.Fatalf("default demo = %q", c.DefaultDemo())
	}
}

func TestLoadProjectConfigValidation(t *testing.T) {
	cases := map[string]string{
		"zero divisor": `
scoring:
  review:
    income_divisor: 0
`,
		"bad delay": `
simulated_delay: soon
`,
		"unknown demo": `
demos:
  default: pinball
`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			projectDir := t.TempDir()
			stateDir := filepath.Join(projectDir, StateDir)
			if err := os.MkdirAll(stateDir, 0o755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(filepath.Join(stateDir, "config.yaml"), []byte(strings.TrimSpace(body)), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := NewConfig(projectDir); err == nil {
				t.Fatalf("expected validation error but got none")
			}
		})
	}
}

func TestSetDefaultDemoPersists(t *testing.T) {
	projectDir := t.TempDir()
	if err := InitStateDir(projectDir); err != nil {
		t.Fatal(err)
	}
	c, err := NewConfig(projectDir)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SetDefaultDemo("tabs"); err != nil {
		t.Fatalf("SetDefaultDemo: %v", err)
	}
	if err := c.SetDefaultDemo("nope"); err == nil {
		t.Fatalf("expected unknown demo error")
	}
	reloaded, err := NewConfig(projectDir)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.DefaultDemo() != DemoTabs {
		t.Fatalf("default demo not persisted, got %q", reloaded.DefaultDemo())
	}
	if reloaded.SimulatedDelay() != 2*time.Second {
		t.Fatalf("delay lost on save: %s", reloaded.SimulatedDelay())
	}
}
