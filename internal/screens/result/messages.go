package result

import "github.com/pomelo-edu/pomelo/internal/feedback"

// DoneMsg carries the outcome of one ticketed feedback request. Screens that
// are no longer waiting for it must still hand the ticket back to the
// session.
type DoneMsg struct {
	Result feedback.Result
}

// copyResetMsg restores the copy label after the confirmation delay.
type copyResetMsg struct {
	gen int
}

// exportDoneMsg is sent when a PDF export finishes.
type exportDoneMsg struct {
	Path string
	Err  error
}
