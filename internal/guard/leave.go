package guard

// LeavePrompt is the confirmation question shown before abandoning an
// unsaved form.
const LeavePrompt = "Do you really want to leave?"

// Confirmer answers a confirmation prompt with the user's choice.
type Confirmer interface {
	Confirm(message string) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(message string) bool

func (f ConfirmerFunc) Confirm(message string) bool { return f(message) }

// FormState describes the editable form hosted by the route being left.
type FormState struct {
	Dirty     bool
	Submitted bool
}

// AllowLeave decides whether navigating away from the form is allowed. The
// prompt fires only for a dirty form that was not submitted during this
// visit; its answer is the decision. Everything else passes without a
// prompt.
func AllowLeave(form FormState, confirm Confirmer) bool {
	if form.Dirty && !form.Submitted {
		return confirm.Confirm(LeavePrompt)
	}
	return true
}
