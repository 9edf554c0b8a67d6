package notes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	defaultDirPattern  = "**/*.md"
	defaultDirDebounce = 50 * time.Millisecond
	noteFileExt        = ".md"
)

var frontmatterFence = []byte("---")

type frontmatter struct {
	Title   string    `yaml:"title,omitempty"`
	Updated time.Time `yaml:"updated,omitempty"`
}

// DirStore serves markdown files under a directory. A note's id is its
// slash-separated path relative to the directory, without extension.
// Files are read into memory on open and on every Reload.
type DirStore struct {
	root     string
	pattern  string
	debounce time.Duration
	logger   *zap.Logger
	index    *MemoryStore
}

func OpenDir(root string, pattern string, logger *zap.Logger) (*DirStore, error) {
	if strings.TrimSpace(pattern) == "" {
		pattern = defaultDirPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid note file pattern %q", pattern)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("open note directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open note directory: %q is not a directory", root)
	}

	store := &DirStore{
		root:     root,
		pattern:  pattern,
		debounce: defaultDirDebounce,
		logger:   logger,
		index:    NewMemoryStore(),
	}
	if err := store.Reload(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *DirStore) GetNote(ctx context.Context, id string) (*Note, error) {
	return s.index.GetNote(ctx, id)
}

func (s *DirStore) ListNotes(ctx context.Context, query string) ([]Summary, error) {
	return s.index.ListNotes(ctx, query)
}

func (s *DirStore) Reload() error {
	fsys := os.DirFS(s.root)
	matches, err := doublestar.Glob(fsys, s.pattern, doublestar.WithFilesOnly())
	if err != nil {
		return fmt.Errorf("glob %q: %w", s.pattern, err)
	}

	loaded := make(map[string]Note, len(matches))
	for _, match := range matches {
		note, err := readNoteFile(fsys, match)
		if err != nil {
			return err
		}
		loaded[note.ID] = note
	}

	s.index.replace(loaded)
	s.logger.Debug("note directory loaded",
		zap.String("dir", s.root),
		zap.Int("notes", len(loaded)))
	return nil
}

func readNoteFile(fsys fs.FS, name string) (Note, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Note{}, fmt.Errorf("read note %q: %w", name, err)
	}
	info, err := fs.Stat(fsys, name)
	if err != nil {
		return Note{}, fmt.Errorf("stat note %q: %w", name, err)
	}

	meta, body, err := splitFrontmatter(data)
	if err != nil {
		return Note{}, fmt.Errorf("parse note %q: %w", name, err)
	}

	id := strings.TrimSuffix(name, path.Ext(name))
	note := Note{
		ID:        id,
		Title:     strings.TrimSpace(meta.Title),
		Content:   body,
		UpdatedAt: meta.Updated,
	}
	if note.Title == "" {
		note.Title = path.Base(id)
	}
	if note.UpdatedAt.IsZero() {
		note.UpdatedAt = info.ModTime()
	}
	note.UpdatedAt = note.UpdatedAt.UTC()

	return note, nil
}

func splitFrontmatter(data []byte) (frontmatter, string, error) {
	var meta frontmatter

	firstLine, rest, found := bytes.Cut(data, []byte("\n"))
	if !found || !bytes.Equal(bytes.TrimRight(firstLine, "\r"), frontmatterFence) {
		return meta, string(data), nil
	}

	var yamlBlock []byte
	for len(rest) > 0 {
		line, remaining, _ := bytes.Cut(rest, []byte("\n"))
		if bytes.Equal(bytes.TrimRight(line, "\r"), frontmatterFence) {
			if err := yaml.Unmarshal(yamlBlock, &meta); err != nil {
				return meta, "", fmt.Errorf("decode frontmatter: %w", err)
			}
			return meta, string(remaining), nil
		}
		yamlBlock = append(yamlBlock, line...)
		yamlBlock = append(yamlBlock, '\n')
		rest = remaining
	}

	return meta, "", errors.New("frontmatter has no closing fence")
}

// PutNotes writes each note to <dir>/<id>.md and reloads the index.
func (s *DirStore) PutNotes(ctx context.Context, notes []Note) error {
	for _, note := range notes {
		if err := note.Validate(); err != nil {
			return err
		}
		if !filepath.IsLocal(filepath.FromSlash(note.ID)) {
			return errors.Join(ErrInvalidNote, fmt.Errorf("id %q escapes the note directory", note.ID))
		}
	}

	for _, note := range notes {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.writeNoteFile(note); err != nil {
			return err
		}
	}

	return s.Reload()
}

func (s *DirStore) writeNoteFile(note Note) error {
	target := filepath.Join(s.root, filepath.FromSlash(note.ID)+noteFileExt)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create note directory: %w", err)
	}

	meta, err := yaml.Marshal(frontmatter{Title: note.Title, Updated: note.UpdatedAt.UTC()})
	if err != nil {
		return fmt.Errorf("encode frontmatter for %q: %w", note.ID, err)
	}

	var buf bytes.Buffer
	buf.Write(frontmatterFence)
	buf.WriteByte('\n')
	buf.Write(meta)
	buf.Write(frontmatterFence)
	buf.WriteByte('\n')
	buf.WriteString(note.Content)

	if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write note %q: %w", note.ID, err)
	}
	return nil
}

// Watch reloads the index when files under the directory change. Bursts of
// events are collapsed into one reload. Reload failures are logged and keep
// the previous index.
func (s *DirStore) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchDirs(watcher, s.root); err != nil {
		return err
	}

	timer := time.NewTimer(s.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					if err := addWatchDirs(watcher, event.Name); err != nil {
						s.logger.Warn("watch new directory", zap.String("dir", event.Name), zap.Error(err))
					}
				}
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			timer.Reset(s.debounce)
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("note directory watch error", zap.Error(watchErr))
		case <-timer.C:
			if err := s.Reload(); err != nil {
				s.logger.Error("reload note directory", zap.String("dir", s.root), zap.Error(err))
			}
		}
	}
}

func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(dirPath string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if dirPath != root && strings.HasPrefix(entry.Name(), ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(dirPath); err != nil {
			return fmt.Errorf("watch %q: %w", dirPath, err)
		}
		return nil
	})
}

func (s *DirStore) Close() error {
	return s.index.Close()
}
