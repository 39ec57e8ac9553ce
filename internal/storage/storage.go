// Package storage handles reading referee HTML documents and writing the
// output snapshot.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pfrederiksen/ref-stats/internal/referee"
)

// ErrNoInputFiles is returned when the input directory holds no HTML files.
var ErrNoInputFiles = errors.New("no HTML input files found")

// Document is one referee page read from disk.
type Document struct {
	Path     string
	Contents string
}

// ExpandHome expands a leading ~/ to the user's home directory.
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

// ReadDocuments loads every *.html file in dir, sorted by filename.
// Returns ErrNoInputFiles (wrapped with the directory) if none match.
func ReadDocuments(dir string) ([]Document, error) {
	dir, err := ExpandHome(dir)
	if err != nil {
		return nil, err
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("scanning input directory: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in: %s", ErrNoInputFiles, dir)
	}
	sort.Strings(paths)

	docs := make([]Document, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		docs = append(docs, Document{Path: path, Contents: string(data)})
	}
	return docs, nil
}

// WriteReferees writes the referee records as a 2-space-indented JSON array.
// HTML escaping is disabled so team and location text stays readable, and
// non-ASCII text is preserved as UTF-8. The parent directory is created if
// missing.
func WriteReferees(path string, refs []*referee.Referee) error {
	path, err := ExpandHome(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(refs); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
