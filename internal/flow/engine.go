// Package flow runs multi-field collection flows over a session store:
// prompt, validate, re-prompt, confirm, commit. One engine serves any
// number of concurrent sessions; all state lives in the store, so the
// engine itself holds no locks.
package flow

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/avvvet/ussdflow/internal/store"
	"github.com/avvvet/ussdflow/internal/ussd"
)

// Choice keys on the confirmation screen, fixed across flows.
const (
	ChoiceConfirm = "1"
	ChoiceCancel  = "2"
)

const (
	defaultCancelled        = "Transaction cancelled."
	defaultInvalidChoice    = "Invalid choice. Transaction aborted."
	defaultAlreadyCompleted = "This session is already completed."
)

// Engine drives one flow definition. Each interaction performs a single
// store read and at most one store write or delete.
type Engine struct {
	store store.Store
	def   Definition
}

var _ ussd.Handler = (*Engine)(nil)

// NewEngine validates the definition, fills in default labels and
// messages, and binds the flow to a store.
func NewEngine(s store.Store, def Definition) (*Engine, error) {
	if s == nil {
		return nil, errors.New("flow engine needs a store")
	}
	if len(def.Fields) == 0 {
		return nil, errors.New("flow definition needs at least one field")
	}
	seen := make(map[string]bool, len(def.Fields))
	for i, f := range def.Fields {
		if f.Name == "" {
			return nil, fmt.Errorf("field %d has no name", i)
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("field %q declared twice", f.Name)
		}
		seen[f.Name] = true
		if f.Prompt == "" {
			return nil, fmt.Errorf("field %q has no prompt", f.Name)
		}
	}
	if def.Confirm.Title == nil {
		return nil, errors.New("flow definition needs a confirmation title")
	}
	if def.Action == nil {
		return nil, errors.New("flow definition needs an action")
	}
	if def.Success == nil {
		return nil, errors.New("flow definition needs a success message")
	}

	if def.Confirm.ConfirmLabel == "" {
		def.Confirm.ConfirmLabel = "Confirm"
	}
	if def.Confirm.CancelLabel == "" {
		def.Confirm.CancelLabel = "Cancel"
	}
	if def.Cancelled == "" {
		def.Cancelled = defaultCancelled
	}
	if def.InvalidChoice == "" {
		def.InvalidChoice = defaultInvalidChoice
	}
	if def.AlreadyCompleted == "" {
		def.AlreadyCompleted = defaultAlreadyCompleted
	}

	return &Engine{store: s, def: def}, nil
}

// Handle runs one interaction through the state machine.
func (e *Engine) Handle(ctx context.Context, req *ussd.Request) (*ussd.Response, error) {
	session, err := e.store.Get(ctx, req.SessionID)
	if errors.Is(err, store.ErrNotFound) {
		// First touch of this session.
		session = store.NewSession(req.SessionID)
	} else if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", req.SessionID, err)
	}

	switch session.Phase {
	case store.PhaseInitial:
		return e.begin(ctx, session)
	case store.PhaseCollecting:
		return e.collect(ctx, req, session)
	case store.PhaseConfirming:
		return e.confirm(ctx, req, session)
	case store.PhaseComplete:
		// Stale or duplicate interaction; nothing to mutate.
		return ussd.End(e.def.AlreadyCompleted), nil
	default:
		// State written by something else entirely. Abort.
		return e.abort(ctx, session.SessionID, e.def.InvalidChoice)
	}
}

// begin advances a fresh session into collection and asks for the first
// field.
func (e *Engine) begin(ctx context.Context, session *store.Session) (*ussd.Response, error) {
	session.Phase = store.PhaseCollecting
	session.Next = 0
	session.Touch()

	if err := e.store.Put(ctx, session.SessionID, session); err != nil {
		return nil, fmt.Errorf("failed to persist session %s: %w", session.SessionID, err)
	}

	return ussd.Continue(e.def.Fields[0].Prompt), nil
}

// collect validates the answer to the previous prompt, then either
// re-prompts or advances.
func (e *Engine) collect(ctx context.Context, req *ussd.Request, session *store.Session) (*ussd.Response, error) {
	if session.Next < 0 || session.Next >= len(e.def.Fields) {
		// The stored index does not fit this flow's shape. Abort.
		return e.abort(ctx, session.SessionID, e.def.InvalidChoice)
	}

	// The latest segment answers the previous prompt. An absent segment is
	// validated like any other blank input.
	input, _ := req.CurrentInput()

	field := e.def.Fields[session.Next]
	if field.Validate != nil {
		if verr := field.Validate(input); verr != nil {
			// Phase and values stay put; rewriting only refreshes the TTL.
			session.Touch()
			if err := e.store.Put(ctx, session.SessionID, session); err != nil {
				return nil, fmt.Errorf("failed to persist session %s: %w", session.SessionID, err)
			}
			return ussd.Continue(verr.Error()), nil
		}
	}

	session.Values[field.Name] = input
	session.Next++

	var res *ussd.Response
	if session.Next < len(e.def.Fields) {
		res = ussd.Continue(e.def.Fields[session.Next].Prompt)
	} else {
		session.Phase = store.PhaseConfirming
		res = e.confirmScreen(session)
	}

	session.Touch()
	if err := e.store.Put(ctx, session.SessionID, session); err != nil {
		return nil, fmt.Errorf("failed to persist session %s: %w", session.SessionID, err)
	}

	return res, nil
}

func (e *Engine) confirmScreen(session *store.Session) *ussd.Response {
	return ussd.NewMenu(e.def.Confirm.Title(session.Values)).
		Option(ChoiceConfirm, e.def.Confirm.ConfirmLabel).
		Option(ChoiceCancel, e.def.Confirm.CancelLabel).
		BuildContinue()
}

// confirm commits on 1, cancels on 2, and aborts on anything else.
// Ambiguous input at this step never triggers the action.
func (e *Engine) confirm(ctx context.Context, req *ussd.Request, session *store.Session) (*ussd.Response, error) {
	// Confirming with fields missing is unreachable through normal
	// navigation; if it shows up anyway, abort instead of acting.
	for _, f := range e.def.Fields {
		if _, ok := session.Values[f.Name]; !ok {
			return e.abort(ctx, session.SessionID, e.def.InvalidChoice)
		}
	}

	choice, _ := req.CurrentInput()
	switch choice {
	case ChoiceConfirm:
		reference, err := e.def.Action(ctx, req, session.Values)
		if err != nil {
			if derr := e.store.Delete(ctx, session.SessionID); derr != nil {
				log.Warn().Err(derr).Str("session_id", session.SessionID).
					Msg("failed to delete session after action failure")
			}
			return nil, fmt.Errorf("confirm action failed: %w", err)
		}

		// Keep a tombstone so a stale retry of this session is answered
		// with the already-completed message instead of a fresh flow. The
		// store TTL reclaims it.
		session.Phase = store.PhaseComplete
		session.Touch()
		if err := e.store.Put(ctx, session.SessionID, session); err != nil {
			return nil, fmt.Errorf("failed to persist session %s: %w", session.SessionID, err)
		}

		return ussd.End(e.def.Success(session.Values, reference)), nil

	case ChoiceCancel:
		return e.abort(ctx, session.SessionID, e.def.Cancelled)

	default:
		return e.abort(ctx, session.SessionID, e.def.InvalidChoice)
	}
}

// abort deletes the session and terminates with msg.
func (e *Engine) abort(ctx context.Context, sessionID, msg string) (*ussd.Response, error) {
	if err := e.store.Delete(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	return ussd.End(msg), nil
}
