// internal/config/config.go
//
// This package handles configuration and the .loanflow directory structure.
// The first run in a directory writes a commented config.yaml that holds
// the scoring constants, so thresholds can be tuned without a rebuild.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kingrea/loanflow/internal/application"
)

const (
	// StateDir is the name of the directory we create in the working directory
	StateDir = ".loanflow"

	defaultDemoID = "review"
	defaultDelay  = 2 * time.Second
)

// Demo identifiers accepted by demos.default.
const (
	DemoReview      = "review"
	DemoApplication = "application"
	DemoCounter     = "counter"
	DemoTabs        = "tabs"
)

var knownDemos = []string{DemoReview, DemoApplication, DemoCounter, DemoTabs}

const defaultProjectConfigYAML = `# loanflow configuration
version: 1

# Scoring constants. score = income / income_divisor + age * age_weight.
# Thresholds are checked from highest to lowest; a score must be strictly above
# a threshold to earn its status.
scoring:
  review:
    name: two-factor
    income_divisor: 1000
    age_weight: 1.5
    approval_threshold: 100
    thresholds:
      - above: 100
        status: high
      - above: 50
        status: moderate
    default_status: under review
  application:
    name: income-only
    income_divisor: 1000
    age_weight: 0
    approval_threshold: 50
    thresholds:
      - above: 100
        status: high
      - above: 50
        status: moderate
    default_status: under review

# How long the mortgage application pretends to compute.
simulated_delay: 2s

demos:
  default: review
`

// ScoringConfig groups the profile of each workflow.
type ScoringConfig struct {
	Review      application.ScoringProfile `yaml:"review"`
	Application application.ScoringProfile `yaml:"application"`
}

// DemoConfig captures demo preferences.
type DemoConfig struct {
	Default string `yaml:"default"`
}

// ProjectConfig models .loanflow/config.yaml.
type ProjectConfig struct {
	Version        int           `yaml:"version"`
	Scoring        ScoringConfig `yaml:"scoring"`
	SimulatedDelay string        `yaml:"simulated_delay"`
	Demos          DemoConfig    `yaml:"demos"`

	delay time.Duration
}

// Config holds the runtime configuration.
type Config struct {
	// ProjectDir is the directory loanflow was started from
	ProjectDir string

	// StateDir is ProjectDir/.loanflow
	StateDir string

	Project ProjectConfig
}

// InitStateDir creates the .loanflow directory structure in projectDir.
//
// Structure created:
// .loanflow/
// ├── config.yaml
// └── logs/
func InitStateDir(projectDir string) error {
	stateDir := filepath.Join(projectDir, StateDir)
	if err := os.MkdirAll(filepath.Join(stateDir, "logs"), 0o755); err != nil {
		return fmt.Errorf("config: ensure state dir: %w", err)
	}
	return ensureProjectConfig(filepath.Join(stateDir, "config.yaml"))
}

// NewConfig creates a Config populated from .loanflow/config.yaml, falling
// back to defaults when the file does not exist.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir: projectDir,
		StateDir:   filepath.Join(projectDir, StateDir),
		Project:    defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns an in-memory configuration that never touches disk.
func Default() *Config {
	return &Config{Project: defaultProjectConfig()}
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.StateDir, "logs")
}

// JourneyLogPath returns the logbook file shown in the TUI log panel.
func (c *Config) JourneyLogPath() string {
	return filepath.Join(c.LogsDir(), "journey.log")
}

// DiagnosticLogPath returns the file the binary records startup and
// shutdown errors in.
func (c *Config) DiagnosticLogPath() string {
	return filepath.Join(c.LogsDir(), "loanflow.log")
}

// ProjectConfigPath returns the on-disk location for the config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.StateDir, "config.yaml")
}

// ReviewProfile returns the scoring profile of the review workflow.
func (c *Config) ReviewProfile() application.ScoringProfile {
	return c.Project.Scoring.Review
}

// ApplicationProfile returns the scoring profile of the mortgage application.
func (c *Config) ApplicationProfile() application.ScoringProfile {
	return c.Project.Scoring.Application
}

// SimulatedDelay returns how long the application demo waits before scoring.
func (c *Config) SimulatedDelay() time.Duration {
	return c.Project.delay
}

// DefaultDemo returns the demo highlighted at startup.
func (c *Config) DefaultDemo() string {
	return c.Project.Demos.Default
}

// SetDefaultDemo updates the default demo and persists it to config.yaml.
func (c *Config) SetDefaultDemo(id string) error {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return fmt.Errorf("config: demo id is required")
	}
	if !contains(knownDemos, id) {
		return fmt.Errorf("config: unknown demo %q", id)
	}
	c.Project.Demos.Default = id
	if c.StateDir == "" {
		return nil
	}
	return c.saveProjectConfig()
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	parsed := defaultProjectConfig()
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	if err := parsed.normalize(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Scoring: ScoringConfig{
			Review:      application.TwoFactorProfile(),
			Application: application.IncomeOnlyProfile(),
		},
		SimulatedDelay: defaultDelay.String(),
		Demos:          DemoConfig{Default: defaultDemoID},
		delay:          defaultDelay,
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.SimulatedDelay) == "" {
		pc.SimulatedDelay = defaultDelay.String()
	}
}

func (pc *ProjectConfig) normalize() error {
	pc.Scoring.Review.Normalize()
	pc.Scoring.Application.Normalize()
	pc.Demos.Default = strings.ToLower(strings.TrimSpace(pc.Demos.Default))
	if pc.Demos.Default == "" {
		pc.Demos.Default = defaultDemoID
	}
	delay, err := time.ParseDuration(strings.TrimSpace(pc.SimulatedDelay))
	if err != nil {
		return fmt.Errorf("simulated_delay: %w", err)
	}
	pc.delay = delay
	return nil
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if err := pc.Scoring.Review.Validate(); err != nil {
		return fmt.Errorf("scoring.review: %w", err)
	}
	if err := pc.Scoring.Application.Validate(); err != nil {
		return fmt.Errorf("scoring.application: %w", err)
	}
	if pc.delay < 0 {
		return fmt.Errorf("simulated_delay must not be negative")
	}
	if !contains(knownDemos, pc.Demos.Default) {
		return fmt.Errorf("demos.default must be one of %s", strings.Join(knownDemos, ", "))
	}
	return nil
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), target) {
			return true
		}
	}
	return false
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}

func (c *Config) saveProjectConfig() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.Project.applyDefaults()
	if err := c.Project.normalize(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Project.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(c.StateDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure state dir: %w", err)
	}
	data, err := yaml.Marshal(c.Project)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(c.ProjectConfigPath(), data, 0o644); err != nil {
		return fmt.Errorf("config: write project config: %w", err)
	}
	return nil
}
