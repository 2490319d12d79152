// internal/workflow/screen.go
//
// Screens of the linear review workflow. A run only ever moves forward
// through these, except for Restart which returns to ScreenInput.

package workflow

// Screen represents a step in the workflow
type Screen int

const (
	ScreenInput Screen = iota
	ScreenProcessing
	ScreenReview
)

// ScreenOrder lists the screens in the order a run visits them.
var ScreenOrder = []Screen{ScreenInput, ScreenProcessing, ScreenReview}

// String returns a human-readable name for the screen
func (s Screen) String() string {
	switch s {
	case ScreenInput:
		return "Input"
	case ScreenProcessing:
		return "Processing"
	case ScreenReview:
		return "Review"
	default:
		return "Unknown"
	}
}

// FriendlyName returns the title shown at the top of the screen
func (s Screen) FriendlyName() string {
	switch s {
	case ScreenInput:
		return "Client Information"
	case ScreenProcessing:
		return "Bank Processing"
	case ScreenReview:
		return "Regulator Review"
	default:
		return s.String()
	}
}

// ShortName is used when the screen is collapsed next to the active one.
func (s Screen) ShortName() string {
	switch s {
	case ScreenInput:
		return "Client"
	case ScreenProcessing:
		return "Bank"
	case ScreenReview:
		return "Regulator"
	default:
		return s.String()
	}
}

// Step returns the 1-based position of the screen and the total count.
func (s Screen) Step() (int, int) {
	for i, screen := range ScreenOrder {
		if screen == s {
			return i + 1, len(ScreenOrder)
		}
	}
	return 0, len(ScreenOrder)
}

// Next returns the following screen, staying on the last one.
func (s Screen) Next() Screen {
	if s >= ScreenReview {
		return ScreenReview
	}
	return s + 1
}
