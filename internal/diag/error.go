package diag

// Error is returned by instrumented parser functions on failure.
// An empty message or input means the field is unset.
type Error struct {
	message string
	input   string
	debugInfo
}

// New returns an empty Error.
func New() *Error {
	return &Error{}
}

func (e *Error) Message() string {
	return e.message
}

func (e *Error) Input() string {
	return e.input
}

// SetMessage records a message while the error bubbles outward.
func (e *Error) SetMessage(message string) *Error {
	e.message = message
	return e
}

// SetInput records the raw input being parsed.
func (e *Error) SetInput(input string) *Error {
	e.input = input
	return e
}

// Error renders the annotated report with default options.
// It is empty when diagnostics are compiled out.
func (e *Error) Error() string {
	return e.Render(DefaultRenderOpts())
}
