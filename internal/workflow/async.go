package workflow

import "time"

// ScoreAfter scores s on a background goroutine once delay has elapsed.
// The channel is buffered and always receives exactly one value, so a
// caller that stops listening does not leak the goroutine.
func (c *Controller) ScoreAfter(delay time.Duration, s State) <-chan Complete {
	out := make(chan Complete, 1)
	snapshot := s
	snapshot.Form = s.Form.Clone()
	go func() {
		if delay > 0 {
			timer := time.NewTimer(delay)
			<-timer.C
		}
		out <- c.Score(snapshot)
		close(out)
	}()
	return out
}
