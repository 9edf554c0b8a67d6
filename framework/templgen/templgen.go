package templgen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/a-h/templ/generator"
	"github.com/a-h/templ/parser/v2"
)

var ErrStale = errors.New("generated templ output is stale")

type Config struct {
	Paths    []string
	BasePath string
	// Check reports stale outputs instead of writing them.
	Check bool
}

type Result struct {
	Written []string
	Stale   []string
}

func Run(cfg Config) (Result, error) {
	basePath := strings.TrimSpace(cfg.BasePath)
	if basePath == "" {
		basePath = "."
	}

	sources, err := collectSources(cfg.Paths)
	if err != nil {
		return Result{}, err
	}
	if len(sources) == 0 {
		return Result{}, errors.New("no templ files found")
	}

	baseAbs, err := filepath.Abs(basePath)
	if err != nil {
		return Result{}, fmt.Errorf("resolve base path %q: %w", basePath, err)
	}

	var result Result
	for _, source := range sources {
		target, generated, err := generate(source, baseAbs)
		if err != nil {
			return result, err
		}

		current, readErr := os.ReadFile(target)
		if readErr == nil && bytes.Equal(current, generated) {
			continue
		}

		if cfg.Check {
			result.Stale = append(result.Stale, target)
			continue
		}
		if err := os.WriteFile(target, generated, 0o644); err != nil {
			return result, fmt.Errorf("write %q: %w", target, err)
		}
		result.Written = append(result.Written, target)
	}

	if len(result.Stale) > 0 {
		return result, fmt.Errorf("%w: %s", ErrStale, strings.Join(result.Stale, ", "))
	}
	return result, nil
}

func collectSources(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	all := make([]string, 0, 8)

	add := func(filePath string) error {
		absPath, err := filepath.Abs(filePath)
		if err != nil {
			return err
		}
		if _, ok := seen[absPath]; ok {
			return nil
		}
		seen[absPath] = struct{}{}
		all = append(all, absPath)
		return nil
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %q: %w", root, err)
		}
		if !info.IsDir() {
			if filepath.Ext(root) != ".templ" {
				return nil, fmt.Errorf("file %q must have .templ extension", root)
			}
			if err := add(root); err != nil {
				return nil, fmt.Errorf("resolve file %q: %w", root, err)
			}
			continue
		}

		walkErr := filepath.WalkDir(root, func(filePath string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if entry.IsDir() || filepath.Ext(filePath) != ".templ" {
				return nil
			}
			return add(filePath)
		})
		if walkErr != nil {
			return nil, fmt.Errorf("walk path %q: %w", root, walkErr)
		}
	}

	sort.Strings(all)
	return all, nil
}

func generate(fileName string, baseAbs string) (string, []byte, error) {
	t, err := parser.Parse(fileName)
	if err != nil {
		return "", nil, fmt.Errorf("parse %q: %w", fileName, err)
	}

	relFileName, err := filepath.Rel(baseAbs, fileName)
	if err != nil {
		return "", nil, fmt.Errorf("compute relative filename for %q: %w", fileName, err)
	}

	var output bytes.Buffer
	if _, err := generator.Generate(t, &output, generator.WithFileName(filepath.ToSlash(relFileName))); err != nil {
		return "", nil, fmt.Errorf("generate %q: %w", fileName, err)
	}

	formatted, err := format.Source(output.Bytes())
	if err != nil {
		return "", nil, fmt.Errorf("format generated output for %q: %w", fileName, err)
	}

	return strings.TrimSuffix(fileName, ".templ") + "_templ.go", formatted, nil
}
