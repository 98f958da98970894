package flow

import (
	"context"

	"github.com/avvvet/ussdflow/internal/ussd"
)

// Field is one unit of input a flow collects.
type Field struct {
	// Name keys the collected value in the session's value map.
	Name string

	// Prompt asks the user for this field.
	Prompt string

	// Validate inspects the raw input; its error text is sent back as the
	// re-prompt. A nil validator accepts anything, blank input included.
	Validate func(input string) error
}

// Confirm describes the confirmation screen shown once every field is
// collected. The choice keys are fixed (1 confirms, 2 cancels); only the
// labels and title vary per flow.
type Confirm struct {
	// Title builds the screen title from the collected values.
	Title func(values map[string]string) string

	// ConfirmLabel and CancelLabel default to "Confirm" and "Cancel".
	ConfirmLabel string
	CancelLabel  string
}

// ActionFunc performs the side effect a confirmed flow commits, returning
// the reference embedded in the success message. An error aborts the
// session.
type ActionFunc func(ctx context.Context, req *ussd.Request, values map[string]string) (reference string, err error)

// Definition declares a multi-field collection flow: prompts and
// validation for each field in order, a confirm-or-cancel screen, then the
// committing action.
type Definition struct {
	Fields  []Field
	Confirm Confirm

	// Action runs exactly once, on an explicit confirm choice.
	Action ActionFunc

	// Success builds the terminal message after the action succeeds.
	Success func(values map[string]string, reference string) string

	// Terminal messages. Zero values pick the package defaults.
	Cancelled        string
	InvalidChoice    string
	AlreadyCompleted string
}
