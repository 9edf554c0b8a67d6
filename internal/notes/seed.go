package notes

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Notes []seedNote `yaml:"notes"`
}

type seedNote struct {
	ID        string    `yaml:"id"`
	Title     string    `yaml:"title"`
	Content   string    `yaml:"content"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// ReadSeedFile loads a YAML document of the form
//
//	notes:
//	  - id: abc123
//	    title: Groceries
//	    content: milk, eggs
//	    updated_at: 2024-05-01T10:00:00Z
//
// Notes without an id get a random UUID, notes without updated_at get now.
func ReadSeedFile(path string, now func() time.Time) ([]Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(data, now)
}

func ParseSeed(data []byte, now func() time.Time) ([]Note, error) {
	if now == nil {
		now = time.Now
	}

	var parsed seedFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	seen := make(map[string]struct{}, len(parsed.Notes))
	out := make([]Note, 0, len(parsed.Notes))
	for idx, item := range parsed.Notes {
		note := Note{
			ID:        strings.TrimSpace(item.ID),
			Title:     strings.TrimSpace(item.Title),
			Content:   item.Content,
			UpdatedAt: item.UpdatedAt,
		}
		if note.ID == "" {
			note.ID = uuid.NewString()
		}
		if note.UpdatedAt.IsZero() {
			note.UpdatedAt = now()
		}
		note.UpdatedAt = note.UpdatedAt.UTC()

		if _, dup := seen[note.ID]; dup {
			return nil, fmt.Errorf("seed note %d: %w", idx, errors.Join(ErrInvalidNote, fmt.Errorf("duplicate id %q", note.ID)))
		}
		seen[note.ID] = struct{}{}
		out = append(out, note)
	}

	return out, nil
}
