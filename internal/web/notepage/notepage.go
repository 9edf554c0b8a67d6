// Package notepage renders the page behind /note/{id}: one lookup, then
// either the empty state or the note view for the record the store returned.
package notepage

import (
	"context"

	"notebook/internal/notes"
	"notebook/internal/web/components"
	"github.com/a-h/templ"
)

// Params carries the id segment from the route as it was matched. It is not
// trimmed or validated.
type Params struct {
	ID string
}

// NoteView renders a found note.
type NoteView func(noteID string, note *notes.Note) templ.Component

// View is the settled result of the lookup. Note is nil when the store has no
// note with NoteID.
type View struct {
	NoteID string
	Note   *notes.Note
}

func (v View) Found() bool {
	return v.Note != nil
}

// Load looks up params.ID exactly once. Lookup errors are returned as they
// are.
func Load(ctx context.Context, lookup notes.Lookup, params Params) (View, error) {
	note, err := lookup.GetNote(ctx, params.ID)
	if err != nil {
		return View{}, err
	}

	return View{NoteID: params.ID, Note: note}, nil
}

// Component returns the empty state for a missing note, otherwise noteView
// with the id and the record from the store.
func (v View) Component(noteView NoteView) templ.Component {
	if v.Note == nil {
		return components.EmptyState()
	}
	return noteView(v.NoteID, v.Note)
}

type Page struct {
	Lookup   notes.Lookup
	NoteView NoteView
}

func New(lookup notes.Lookup) Page {
	return Page{Lookup: lookup, NoteView: components.NoteView}
}

func (p Page) Render(ctx context.Context, params Params) (templ.Component, error) {
	view, err := Load(ctx, p.Lookup, params)
	if err != nil {
		return nil, err
	}

	noteView := p.NoteView
	if noteView == nil {
		noteView = components.NoteView
	}
	return view.Component(noteView), nil
}
