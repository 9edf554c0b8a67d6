package notes

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu    sync.RWMutex
	notes map[string]Note
}

func NewMemoryStore(initial ...Note) *MemoryStore {
	store := &MemoryStore{notes: make(map[string]Note, len(initial))}
	for _, note := range initial {
		store.notes[note.ID] = note
	}
	return store
}

func (s *MemoryStore) GetNote(ctx context.Context, id string) (*Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	note, ok := s.notes[id]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return &note, nil
}

func (s *MemoryStore) ListNotes(ctx context.Context, query string) ([]Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	items := make([]Summary, 0, len(s.notes))
	for _, note := range s.notes {
		if matchesQuery(note.Title, query) {
			items = append(items, note.Summary())
		}
	}
	s.mu.RUnlock()

	sortSummaries(items)
	return items, nil
}

func (s *MemoryStore) PutNotes(ctx context.Context, notes []Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, note := range notes {
		if err := note.Validate(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, note := range notes {
		s.notes[note.ID] = note
	}
	return nil
}

// replace swaps the whole note set, used by stores that reload from disk.
func (s *MemoryStore) replace(notes map[string]Note) {
	s.mu.Lock()
	s.notes = notes
	s.mu.Unlock()
}

func (s *MemoryStore) Close() error {
	return nil
}
