package appcore

import (
	"errors"
	"time"

	"notebook/internal/notes"
)

var errNoteStoreUnavailable = errors.New("note store unavailable")

type Context struct {
	store notes.Store
	now   func() time.Time
}

func NewContext(store notes.Store) *Context {
	return &Context{store: store, now: time.Now}
}

// WithClock replaces the clock used for sidebar timestamps.
func (c *Context) WithClock(now func() time.Time) *Context {
	c.now = now
	return c
}

func noteStore(appCtx *Context) (notes.Store, error) {
	if appCtx == nil || appCtx.store == nil {
		return nil, errNoteStoreUnavailable
	}
	return appCtx.store, nil
}
