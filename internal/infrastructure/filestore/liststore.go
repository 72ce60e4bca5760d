// Package filestore holds the line-oriented text files an operator edits by
// hand: the API key list, the airport list and the completion log.
package filestore

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
)

// ListStore is a one-value-per-line text file, rewritten in full on every
// mutation. Blank lines and surrounding whitespace are ignored on load.
type ListStore struct {
	mu   sync.Mutex
	path string
}

// NewListStore creates a list store backed by the given file path
func NewListStore(path string) *ListStore {
	return &ListStore{path: path}
}

// Load reads all non-blank lines from the file. A missing file is an empty list.
func (s *ListStore) Load() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *ListStore) load() ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	var values []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			values = append(values, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	return values, nil
}

// Save rewrites the file with the given values, one per line
func (s *ListStore) Save(values []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(values)
}

func (s *ListStore) save(values []string) error {
	var sb strings.Builder
	for _, v := range values {
		sb.WriteString(v)
		sb.WriteString("\n")
	}
	if err := os.WriteFile(s.path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

// Add appends a value if not already present and rewrites the file
func (s *ListStore) Add(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	for _, v := range values {
		if v == value {
			return nil
		}
	}
	return s.save(append(values, value))
}

// Remove deletes a value if present and rewrites the file
func (s *ListStore) Remove(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	kept := values[:0]
	for _, v := range values {
		if v != value {
			kept = append(kept, v)
		}
	}
	if len(kept) == len(values) {
		return nil
	}
	return s.save(kept)
}
