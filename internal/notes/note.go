package notes

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"
)

var (
	ErrUnknownDriver = errors.New("unknown note store driver")
	ErrInvalidNote   = errors.New("invalid note")
	ErrReadOnly      = errors.New("note store is read-only")
)

type Note struct {
	ID        string
	Title     string
	Content   string
	UpdatedAt time.Time
}

type Summary struct {
	ID        string
	Title     string
	Content   string
	UpdatedAt time.Time
}

// Lookup resolves a single note. A missing note is (nil, nil), never an
// error; errors mean the store itself failed.
type Lookup interface {
	GetNote(ctx context.Context, id string) (*Note, error)
}

type Store interface {
	Lookup
	// ListNotes returns notes whose title contains query, case-insensitively,
	// newest first. An empty query lists everything.
	ListNotes(ctx context.Context, query string) ([]Summary, error)
	Close() error
}

type Writer interface {
	PutNotes(ctx context.Context, notes []Note) error
}

// Watcher is implemented by stores that can follow changes in their backing
// source. Watch blocks until ctx is done.
type Watcher interface {
	Watch(ctx context.Context) error
}

func (n Note) Summary() Summary {
	return Summary{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		UpdatedAt: n.UpdatedAt,
	}
}

func (n Note) Validate() error {
	if strings.TrimSpace(n.ID) == "" {
		return errors.Join(ErrInvalidNote, errors.New("id is required"))
	}
	return nil
}

func matchesQuery(title string, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(title), strings.ToLower(query))
}

func sortSummaries(items []Summary) {
	sort.SliceStable(items, func(i int, j int) bool {
		if !items[i].UpdatedAt.Equal(items[j].UpdatedAt) {
			return items[i].UpdatedAt.After(items[j].UpdatedAt)
		}
		return items[i].ID < items[j].ID
	})
}
