// cmd/loanflow/main.go
//
// This is the entry point for the loanflow CLI.
//
// Flow:
// 1. Resolve the project directory (cwd unless -dir is given)
// 2. Make sure .loanflow/ exists with a config.yaml
// 3. Launch the full-screen TUI, or the line prompts with -plain

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/loanflow/internal/config"
	"github.com/kingrea/loanflow/internal/logbook"
	"github.com/kingrea/loanflow/internal/logging"
	"github.com/kingrea/loanflow/internal/prompt"
	"github.com/kingrea/loanflow/internal/tui"
)

func main() {
	plain := flag.Bool("plain", false, "use line prompts instead of the full-screen UI")
	dir := flag.String("dir", "", "project directory holding .loanflow (defaults to the working directory)")
	flag.Parse()

	projectDir := *dir
	if projectDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
			os.Exit(1)
		}
		projectDir = cwd
	}

	if err := config.InitStateDir(projectDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing .loanflow directory: %v\n", err)
		os.Exit(1)
	}

	if err := run(projectDir, *plain); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(projectDir string, plain bool) error {
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()
	logger.Printf("loanflow starting in %s (plain=%t)", projectDir, plain)
	defer logger.Printf("loanflow stopped")

	if plain {
		return logger.Fail("plain runner", runPlain(cfg))
	}

	app, err := tui.NewApp(projectDir)
	if err != nil {
		return logger.Fail("load app", err)
	}

	// Run blocks until the user quits
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return logger.Fail("run tui", err)
	}
	return nil
}

func runPlain(cfg *config.Config) error {
	book, err := logbook.New(cfg.JourneyLogPath())
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	book.Info("Plain session opened")
	defer book.Info("Plain session closed")
	return prompt.NewRunner(prompt.NewSurveyDriver(), cfg, book).Run(ctx)
}
