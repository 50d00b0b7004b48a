package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// FileStore stores transcripts as JSON files.
type FileStore struct {
	baseDir string
	mu      sync.RWMutex
	active  map[string]*Transcript
}

// StoreConfig holds configuration for transcript storage.
type StoreConfig struct {
	BaseDir string
}

// NewFileStore creates a file-based transcript store.
func NewFileStore(config StoreConfig) (*FileStore, error) {
	runsDir := filepath.Join(config.BaseDir, "runs")
	if err := os.MkdirAll(runsDir, 0o755); err != nil {
		return nil, err
	}

	return &FileStore{
		baseDir: config.BaseDir,
		active:  make(map[string]*Transcript),
	}, nil
}

// StartRun begins a new transcript.
func (s *FileStore) StartRun(runID string, meta RunMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.active[runID]; exists {
		return ErrRunAlreadyExists
	}

	runDir := filepath.Join(s.baseDir, "runs", runID)
	if _, err := os.Stat(runDir); err == nil {
		return ErrRunAlreadyExists
	}

	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return err
	}

	t := NewTranscript(runID, meta)
	if err := s.writeMetadata(runID, &t.Metadata); err != nil {
		return err
	}

	s.active[runID] = t
	return nil
}

// RecordTurn adds a turn to an active transcript.
func (s *FileStore) RecordTurn(runID string, turn Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.active[runID]
	if !ok {
		return ErrRunNotStarted
	}

	t.AddTurn(turn)
	return nil
}

// EndRun completes a transcript and persists it.
func (s *FileStore) EndRun(runID string, status RunStatus, attempts int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.active[runID]
	if !ok {
		return ErrRunNotStarted
	}

	t.Metadata.Status = status
	t.Metadata.EndedAt = time.Now()
	t.Metadata.Attempts = attempts

	if err := s.writeTranscript(t); err != nil {
		return err
	}
	if err := s.writeMetadata(runID, &t.Metadata); err != nil {
		return err
	}

	delete(s.active, runID)
	return nil
}

// Load retrieves a complete transcript.
func (s *FileStore) Load(runID string) (*Transcript, error) {
	s.mu.RLock()
	if t, ok := s.active[runID]; ok {
		// Return a copy so callers never share the live record.
		data, err := json.Marshal(t)
		s.mu.RUnlock()
		if err != nil {
			return nil, err
		}
		var out Transcript
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	s.mu.RUnlock()

	path := filepath.Join(s.baseDir, "runs", runID, "transcript.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}

	var out Transcript
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse transcript %s: %w", runID, err)
	}
	return &out, nil
}

// LoadMetadata retrieves just the metadata.
func (s *FileStore) LoadMetadata(runID string) (*Meta, error) {
	s.mu.RLock()
	if t, ok := s.active[runID]; ok {
		meta := t.Metadata
		s.mu.RUnlock()
		return &meta, nil
	}
	s.mu.RUnlock()

	path := filepath.Join(s.baseDir, "runs", runID, "metadata.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}

	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// List returns metadata for runs matching the filter, newest first.
func (s *FileStore) List(filter ListFilter) ([]Meta, error) {
	runsDir := filepath.Join(s.baseDir, "runs")
	entries, err := os.ReadDir(runsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var metas []Meta
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.LoadMetadata(entry.Name())
		if err != nil {
			continue
		}
		if filter.Status != "" && meta.Status != filter.Status {
			continue
		}
		if !filter.After.IsZero() && meta.StartedAt.Before(filter.After) {
			continue
		}
		if !filter.Before.IsZero() && meta.StartedAt.After(filter.Before) {
			continue
		}
		metas = append(metas, *meta)
	}

	sort.Slice(metas, func(i, j int) bool {
		return metas[i].StartedAt.After(metas[j].StartedAt)
	})

	if filter.Limit > 0 && len(metas) > filter.Limit {
		metas = metas[:filter.Limit]
	}
	return metas, nil
}

func (s *FileStore) writeTranscript(t *Transcript) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(s.baseDir, "runs", t.RunID, "transcript.json")
	return os.WriteFile(path, data, 0o644)
}

func (s *FileStore) writeMetadata(runID string, meta *Meta) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(s.baseDir, "runs", runID, "metadata.json")
	return os.WriteFile(path, data, 0o644)
}
