package memory

// Questions asked by RestartController.
const (
	QuestionRestart = "Stop the current game and start over?"
	QuestionReset   = "Reset to level 1? (No restarts the current level)"
)

// Asker poses a yes/no question and reports the answer later.
type Asker interface {
	Ask(question string, answer func(yes bool))
}

// RestartController runs the two-step restart confirmation.
type RestartController struct {
	session *Session
	asker   Asker
	asking  bool
}

// NewRestartController creates a controller for session.
func NewRestartController(session *Session, asker Asker) *RestartController {
	return &RestartController{session: session, asker: asker}
}

// Request opens the restart dialog. It returns false if the session is idle
// or a dialog is already open.
func (r *RestartController) Request() bool {
	if r.asking || !r.session.Suspend() {
		return false
	}
	r.asking = true

	r.asker.Ask(QuestionRestart, func(yes bool) {
		if !yes {
			r.asking = false
			r.session.ResumeSuspended()
			return
		}
		r.asker.Ask(QuestionReset, func(reset bool) {
			r.asking = false
			if err := r.session.Restart(reset); err != nil {
				r.session.logger.Error("restart failed", "error", err)
			}
		})
	})
	return true
}

// Asking reports whether the dialog is open.
func (r *RestartController) Asking() bool {
	return r.asking
}
