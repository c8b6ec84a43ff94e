// Package history keeps the append-only publish history document: one shared
// JSON file holding the most recent publish events, capped at maxEntries with
// oldest entries dropped first.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"influencer-pipeline/types"
)

const maxEntries = 100

// Store reads and writes the publish-history document. The mutex only guards
// against lost updates within this process; cross-process writers are out of
// scope.
type Store struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// New creates a Store for the document at path.
func New(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Ensure idempotently creates an empty history document if none exists. An
// existing document is never overwritten.
func (s *Store) Ensure() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat history: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	return s.write(types.HistoryDocument{History: []types.HistoryEntry{}})
}

// Record appends one publish outcome, updates lastPublish to now, and
// truncates to the most recent entries.
func (s *Store) Record(outcome types.PublishOutcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	now := s.now().UTC()
	doc.LastPublish = &now
	doc.History = append(doc.History, types.HistoryEntry{
		Timestamp: now,
		ContentID: outcome.ContentID,
		Result:    outcome.PublishResult,
	})
	if len(doc.History) > maxEntries {
		doc.History = doc.History[len(doc.History)-maxEntries:]
	}

	return s.write(doc)
}

// Load returns the current history document, or an empty one if the document
// does not exist yet.
func (s *Store) Load() (types.HistoryDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *Store) read() (types.HistoryDocument, error) {
	doc := types.HistoryDocument{History: []types.HistoryEntry{}}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return doc, fmt.Errorf("read history: %w", err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("parse history: %w", err)
	}
	return doc, nil
}

func (s *Store) write(doc types.HistoryDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}
