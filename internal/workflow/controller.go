// internal/workflow/controller.go
//
// The screen controller is a pure update function over State. UIs feed it
// actions and render whatever State comes back; side effects the runtime
// has to perform are returned as an Effect instead of being run here.

package workflow

import (
	"github.com/google/uuid"

	"github.com/kingrea/loanflow/internal/application"
)

// Variant selects how the Processing screen completes.
type Variant int

const (
	// VariantManual waits for explicit Process and Send actions.
	VariantManual Variant = iota
	// VariantDelayed scores in the background and advances on Complete.
	VariantDelayed
)

// Effect is work the caller must start after applying an action.
type Effect int

const (
	EffectNone Effect = iota
	// EffectScheduleScore asks the runtime to score the run after the
	// configured delay and send back a Complete action.
	EffectScheduleScore
)

// Action is anything the controller can apply.
type Action interface {
	Name() string
}

// EditField replaces the raw value of one field.
type EditField struct {
	Field string
	Value string
}

// Submit asks to leave the input screen.
type Submit struct{}

// Process runs the scorer on the processing screen.
type Process struct{}

// Send forwards a scored run to review.
type Send struct{}

// Complete delivers a background score for the run RunID.
type Complete struct {
	RunID  string
	Result application.Result
}

// Restart clears the run and returns to the input screen.
type Restart struct{}

func (EditField) Name() string { return "edit" }
func (Submit) Name() string    { return "submit" }
func (Process) Name() string   { return "process" }
func (Send) Name() string      { return "send" }
func (Complete) Name() string  { return "complete" }
func (Restart) Name() string   { return "restart" }

// State is everything a workflow UI renders.
type State struct {
	Variant Variant
	Screen  Screen
	Form    application.Form
	Result  *application.Result
	// Pending is set while a delayed score is outstanding.
	Pending bool
	// RunID identifies the submission currently on screen.
	RunID string
}

// HasResult reports whether scoring has executed for this run.
func (s State) HasResult() bool {
	return s.Result != nil
}

// CanSubmit reports whether Submit would leave the input screen.
func (s State) CanSubmit() bool {
	return s.Screen == ScreenInput && application.Validate(s.Form)
}

// Transition describes a screen change caused by an action.
type Transition struct {
	From   Screen
	To     Screen
	Action string
}

// Diff returns the screen change between prev and next, if any.
func Diff(prev, next State, action Action) (Transition, bool) {
	if prev.Screen == next.Screen {
		return Transition{}, false
	}
	name := ""
	if action != nil {
		name = action.Name()
	}
	return Transition{From: prev.Screen, To: next.Screen, Action: name}, true
}

// Controller applies actions using a fixed scorer.
type Controller struct {
	scorer  application.Scorer
	variant Variant
	specs   []application.FieldSpec
	newID   func() string
}

// Option customizes Controller construction.
type Option func(*Controller)

// WithIDGenerator overrides how run identifiers are minted.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// NewController creates a controller for a form with the given specs.
func NewController(variant Variant, specs []application.FieldSpec, scorer application.Scorer, opts ...Option) *Controller {
	c := &Controller{
		scorer:  scorer,
		variant: variant,
		specs:   specs,
		newID:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Scorer exposes the scorer the controller applies.
func (c *Controller) Scorer() application.Scorer {
	return c.scorer
}

// Initial returns the state at startup and after Restart.
func (c *Controller) Initial() State {
	return State{
		Variant: c.variant,
		Screen:  ScreenInput,
		Form:    application.NewForm(c.specs),
	}
}

// Score computes the Complete action for a pending delayed run. It reads
// only the snapshot it is given, so it may run on any goroutine.
func (c *Controller) Score(s State) Complete {
	return Complete{RunID: s.RunID, Result: c.scorer.Evaluate(s.RunID, s.Form.Snapshot())}
}

// Update applies action to s. Illegal actions return s unchanged.
func (c *Controller) Update(s State, action Action) (State, Effect) {
	switch a := action.(type) {
	case EditField:
		if s.Screen != ScreenInput {
			return s, EffectNone
		}
		next := s
		next.Form = s.Form.Clone()
		if !next.Form.Set(a.Field, a.Value) {
			return s, EffectNone
		}
		return next, EffectNone

	case Submit:
		if !s.CanSubmit() {
			return s, EffectNone
		}
		next := s
		next.Screen = ScreenProcessing
		next.RunID = c.newID()
		next.Result = nil
		if s.Variant == VariantDelayed {
			next.Pending = true
			return next, EffectScheduleScore
		}
		return next, EffectNone

	case Process:
		if s.Variant != VariantManual || s.Screen != ScreenProcessing || s.HasResult() {
			return s, EffectNone
		}
		res := c.scorer.Evaluate(s.RunID, s.Form.Snapshot())
		next := s
		next.Result = &res
		return next, EffectNone

	case Send:
		if s.Variant != VariantManual || s.Screen != ScreenProcessing || !s.HasResult() {
			return s, EffectNone
		}
		next := s
		next.Screen = ScreenReview
		return next, EffectNone

	case Complete:
		if s.Variant != VariantDelayed || s.Screen != ScreenProcessing || !s.Pending || a.RunID != s.RunID {
			return s, EffectNone
		}
		res := a.Result
		next := s
		next.Pending = false
		next.Result = &res
		next.Screen = ScreenReview
		return next, EffectNone

	case Restart:
		return c.Initial(), EffectNone
	}
	return s, EffectNone
}
