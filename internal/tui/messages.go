package tui

// NavigateTo switches the active page. Payload, when non-nil, is re-emitted
// as a message to the target page after the switch so list pages can arrive
// pre-filtered.
type NavigateTo struct {
	Page    string
	Payload any
}

// LoginResult reports the outcome of the async login command. A nil Err ends
// the login flow.
type LoginResult struct {
	Err error
}

// logoutRequestedMsg asks the router to end the main loop and return to the
// login flow.
type logoutRequestedMsg struct{}

// toastTickMsg drives periodic re-render so expired toasts disappear without
// waiting for a key press.
type toastTickMsg struct{}

// copiedMsg reports a finished clipboard write.
type copiedMsg struct {
	err error
}

// statusClearMsg clears a transient status line on the active page.
type statusClearMsg struct{}
