// Package prompt runs the loan workflows as plain line prompts for terminals
// where the full-screen UI is not wanted.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kingrea/loanflow/internal/application"
	"github.com/kingrea/loanflow/internal/config"
	"github.com/kingrea/loanflow/internal/logbook"
	"github.com/kingrea/loanflow/internal/modes/quickapply"
	"github.com/kingrea/loanflow/internal/workflow"
)

var menuOptions = []string{
	"Mortgage Review Workflow",
	"Mortgage Application",
	"Quit",
}

// Runner drives the workflow controllers through a Driver.
type Runner struct {
	driver  Driver
	config  *config.Config
	logbook *logbook.Logbook
	opts    []workflow.Option
}

// NewRunner builds a runner. A nil config falls back to config.Default().
func NewRunner(driver Driver, cfg *config.Config, lb *logbook.Logbook, opts ...workflow.Option) *Runner {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Runner{driver: driver, config: cfg, logbook: lb, opts: opts}
}

// Run shows the demo menu until the user quits or aborts.
func (r *Runner) Run(ctx context.Context) error {
	for {
		choice, err := r.driver.Select(ctx, SelectConfig{
			Message:      "Choose a demo",
			Options:      menuOptions,
			DefaultIndex: r.defaultIndex(),
		})
		if err != nil {
			if errors.Is(err, ErrAborted) {
				return nil
			}
			return err
		}
		switch choice {
		case 0:
			_ = r.config.SetDefaultDemo(config.DemoReview)
			_, err = r.RunReview(ctx)
		case 1:
			_ = r.config.SetDefaultDemo(config.DemoApplication)
			_, err = r.RunApplication(ctx)
		default:
			return nil
		}
		if errors.Is(err, ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (r *Runner) defaultIndex() int {
	if r.config.DefaultDemo() == config.DemoApplication {
		return 1
	}
	return 0
}

// RunReview walks the Client → Bank → Regulator workflow once.
func (r *Runner) RunReview(ctx context.Context) (application.Result, error) {
	controller := workflow.NewController(
		workflow.VariantManual,
		application.ReviewFields(),
		application.NewScorer(r.config.ReviewProfile()),
		r.opts...,
	)
	state := controller.Initial()
	if err := r.info(ctx, state.Screen.FriendlyName()); err != nil {
		return application.Result{}, err
	}
	state, err := r.collect(ctx, controller, state)
	if err != nil {
		return application.Result{}, err
	}
	state = r.step(controller, state, workflow.Submit{})
	if state.Screen != workflow.ScreenProcessing {
		return application.Result{}, fmt.Errorf("prompt: submit refused, missing %s", strings.Join(application.MissingFields(state.Form), ", "))
	}

	if err := r.info(ctx, state.Screen.FriendlyName()); err != nil {
		return application.Result{}, err
	}
	state = r.step(controller, state, workflow.Process{})
	res := state.Result
	if err := r.info(ctx, fmt.Sprintf("Processing Complete! %s scored %.2f (%s)", res.Fields[application.FieldName], res.Score, res.Status)); err != nil {
		return application.Result{}, err
	}
	send, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Send to regulator?", Default: true})
	if err != nil {
		return application.Result{}, err
	}
	if !send {
		r.step(controller, state, workflow.Restart{})
		return application.Result{}, nil
	}

	state = r.step(controller, state, workflow.Send{})
	summary := fmt.Sprintf("%s\n  Approved: %t\n  Score: %.2f\n  Status: %s\n  Reference: %s",
		state.Screen.FriendlyName(), res.Approved, res.Score, res.Status, res.ID)
	if err := r.info(ctx, summary); err != nil {
		return application.Result{}, err
	}
	return *res, nil
}

// RunApplication collects the quick application and waits for the
// simulated background calculation.
func (r *Runner) RunApplication(ctx context.Context) (application.Result, error) {
	controller := workflow.NewController(
		workflow.VariantDelayed,
		application.QuickFields(),
		application.NewScorer(r.config.ApplicationProfile()),
		r.opts...,
	)
	state, err := r.collect(ctx, controller, controller.Initial())
	if err != nil {
		return application.Result{}, err
	}
	state, effect := controller.Update(state, workflow.Submit{})
	if effect != workflow.EffectScheduleScore {
		return application.Result{}, fmt.Errorf("prompt: submit refused, missing %s", strings.Join(application.MissingFields(state.Form), ", "))
	}
	if err := r.info(ctx, "Calculating your result..."); err != nil {
		return application.Result{}, err
	}

	select {
	case <-ctx.Done():
		return application.Result{}, ctx.Err()
	case done := <-controller.ScoreAfter(r.config.SimulatedDelay(), state):
		state = r.step(controller, state, done)
	}
	if err := r.info(ctx, quickapply.Verdict(state.Result)); err != nil {
		return application.Result{}, err
	}
	if state.Result == nil {
		return application.Result{}, errors.New("prompt: calculation produced no result")
	}
	return *state.Result, nil
}

func (r *Runner) collect(ctx context.Context, controller *workflow.Controller, state workflow.State) (workflow.State, error) {
	for _, spec := range state.Form.Specs() {
		label := spec.Label
		value, err := r.driver.Input(ctx, InputConfig{
			Message: label,
			Help:    spec.Placeholder,
			Validator: func(v string) error {
				if spec.Required && strings.TrimSpace(v) == "" {
					return fmt.Errorf("%s is required", label)
				}
				return nil
			},
		})
		if err != nil {
			return state, err
		}
		state, _ = controller.Update(state, workflow.EditField{Field: spec.Name, Value: strings.TrimSpace(value)})
	}
	return state, nil
}

func (r *Runner) step(controller *workflow.Controller, state workflow.State, action workflow.Action) workflow.State {
	next, _ := controller.Update(state, action)
	if tr, changed := workflow.Diff(state, next, action); changed {
		r.logbook.Info("Plain · screen %s → %s (%s)", tr.From, tr.To, tr.Action)
	}
	return next
}

func (r *Runner) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, msg)
}
