package prompt

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kingrea/loanflow/internal/application"
	"github.com/kingrea/loanflow/internal/config"
	"github.com/kingrea/loanflow/internal/logbook"
	"github.com/kingrea/loanflow/internal/workflow"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	infoMessages []string
	onInfo       func(string)
	inputPos     int
	selectPos    int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	if cfg.Validator != nil {
		if err := cfg.Validator(val); err != nil {
			return "", err
		}
	}
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, ErrAborted
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	if s.onInfo != nil {
		s.onInfo(msg)
	}
	return nil
}

func (s *stubDriver) output() string {
	return strings.Join(s.infoMessages, "\n")
}

func fastConfig(t *testing.T) *config.Config {
	t.Helper()
	projectDir := t.TempDir()
	stateDir := filepath.Join(projectDir, config.StateDir)
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(stateDir, "config.yaml"), []byte("simulated_delay: 1ms\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return cfg
}

func fixedID() workflow.Option {
	return workflow.WithIDGenerator(func() string { return "run-plain" })
}

func TestRunReviewScoresAndSends(t *testing.T) {
	book, err := logbook.New(filepath.Join(t.TempDir(), "journey.log"))
	if err != nil {
		t.Fatal(err)
	}
	driver := &stubDriver{inputs: []string{"Ada", "30", "150000", "300000"}, confirm: []bool{true}}
	runner := NewRunner(driver, nil, book, fixedID())

	res, err := runner.RunReview(context.Background())
	if err != nil {
		t.Fatalf("run review: %v", err)
	}
	if res.Score != 195 || res.Status != application.StatusHigh || !res.Approved || res.ID != "run-plain" {
		t.Fatalf("unexpected result %+v", res)
	}
	out := driver.output()
	for _, want := range []string{"Processing Complete! Ada scored 195.00", "Regulator Review", "Reference: run-plain"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	lines, _ := book.Tail(10)
	if !strings.Contains(strings.Join(lines, "\n"), "Processing → Review (send)") {
		t.Fatalf("logbook should record the send transition: %v", lines)
	}
}

func TestRunReviewDeclinedSendReturnsEmpty(t *testing.T) {
	driver := &stubDriver{inputs: []string{"Ada", "30", "150000", "300000"}, confirm: []bool{false}}
	res, err := NewRunner(driver, nil, nil).RunReview(context.Background())
	if err != nil {
		t.Fatalf("run review: %v", err)
	}
	if res.ID != "" {
		t.Fatalf("declined send should not return a result, got %+v", res)
	}
}

func TestRunReviewRejectsBlankField(t *testing.T) {
	driver := &stubDriver{inputs: []string{"Ada", "  "}}
	_, err := NewRunner(driver, nil, nil).RunReview(context.Background())
	if err == nil || !strings.Contains(err.Error(), "Age is required") {
		t.Fatalf("expected required-field error, got %v", err)
	}
}

func TestRunApplicationWaitsForScore(t *testing.T) {
	driver := &stubDriver{inputs: []string{"Ada", "40", "1000"}}
	res, err := NewRunner(driver, fastConfig(t), nil, fixedID()).RunApplication(context.Background())
	if err != nil {
		t.Fatalf("run application: %v", err)
	}
	if res.Score != 1 || res.Status != application.StatusUnderReview || res.Approved {
		t.Fatalf("unexpected result %+v", res)
	}
	if !strings.Contains(driver.output(), "you do not qualify") {
		t.Fatalf("verdict missing:\n%s", driver.output())
	}
}

func TestRunApplicationHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	driver := &stubDriver{inputs: []string{"Ada", "40", "90000"}}
	driver.onInfo = func(msg string) {
		if strings.HasPrefix(msg, "Calculating") {
			cancel()
		}
	}
	_, err := NewRunner(driver, config.Default(), nil).RunApplication(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

func TestRunMenuLoopsUntilQuit(t *testing.T) {
	driver := &stubDriver{
		selectIdx: []int{1, 2},
		inputs:    []string{"Ada", "40", "90000"},
	}
	cfg := fastConfig(t)
	if err := NewRunner(driver, cfg, nil).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(driver.output(), "you qualify") {
		t.Fatalf("application should have run:\n%s", driver.output())
	}
	if cfg.DefaultDemo() != config.DemoApplication {
		t.Fatalf("default demo = %q", cfg.DefaultDemo())
	}
}

func TestRunAbortIsNotAnError(t *testing.T) {
	if err := NewRunner(&stubDriver{}, nil, nil).Run(context.Background()); err != nil {
		t.Fatalf("abort should exit cleanly, got %v", err)
	}
}
