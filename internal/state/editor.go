package state

import (
	"context"

	"github.com/five82/contractdesk/internal/contracts"
)

// EditorMode is the lifecycle of the create/edit form.
type EditorMode int

const (
	EditorClosed EditorMode = iota
	EditorCreate
	EditorEdit
)

// Editor tracks whether the form is open, what it edits and whether a save
// is in flight.
type Editor struct {
	Mode       EditorMode
	Target     contracts.Contract
	Submitting bool
}

// Open reports whether the form is visible.
func (e Editor) Open() bool {
	return e.Mode != EditorClosed
}

// Draft returns the initial form values for the current mode.
func (e Editor) Draft() contracts.Draft {
	if e.Mode == EditorEdit {
		return contracts.DraftFrom(e.Target)
	}
	return contracts.Draft{}
}

// Save sends payload with POST when creating and PATCH when editing.
func (e Editor) Save(ctx context.Context, svc contracts.Service, payload contracts.Payload) (*contracts.Contract, error) {
	if e.Mode == EditorEdit {
		return svc.Update(ctx, e.Target.ID, payload)
	}
	return svc.Create(ctx, payload)
}

// Editor returns the editor state.
func (s *Session) Editor() Editor {
	return s.editor
}

// OpenCreate opens an empty form.
func (s *Session) OpenCreate() {
	if s.editor.Submitting {
		return
	}
	s.editor = Editor{Mode: EditorCreate}
}

// OpenEdit opens the form prefilled from c.
func (s *Session) OpenEdit(c contracts.Contract) {
	if s.editor.Submitting {
		return
	}
	s.editor = Editor{Mode: EditorEdit, Target: c}
}

// CloseEditor hides the form. It is ignored while a save is in flight.
func (s *Session) CloseEditor() {
	if s.editor.Submitting {
		return
	}
	s.editor = Editor{}
}

// BeginSubmit marks the form as submitting. It returns false when the form is
// closed or already submitting.
func (s *Session) BeginSubmit() bool {
	if !s.editor.Open() || s.editor.Submitting {
		return false
	}
	s.editor.Submitting = true
	return true
}

// FinishSubmit applies the outcome of a save. Success merges the record,
// closes the form and raises a confirmation; failure keeps the form open and
// raises the server's message or a generic one.
func (s *Session) FinishSubmit(saved *contracts.Contract, err error) {
	mode := s.editor.Mode
	s.editor.Submitting = false
	if err != nil || saved == nil {
		s.PushAlert(AlertError, contracts.Message(err, "An error occurred while saving the contract."))
		return
	}
	s.Merge(*saved)
	s.editor = Editor{}
	if mode == EditorEdit {
		s.PushAlert(AlertInfo, "Contract updated.")
		return
	}
	s.PushAlert(AlertInfo, "Contract created.")
}
