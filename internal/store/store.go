// Package store keeps recorded animation logs on disk, either as loose
// files or as runs under a data directory.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/san-kum/sortviz/internal/anim"
	"gopkg.in/yaml.v3"
)

const recordingFile = "recording.json"

// Recording is one recorded sort: the input and every event.
type Recording struct {
	ID        string      `json:"id,omitempty" yaml:"id,omitempty"`
	Algorithm string      `json:"algorithm" yaml:"algorithm"`
	Timestamp time.Time   `json:"timestamp" yaml:"timestamp"`
	Seed      int64       `json:"seed,omitempty" yaml:"seed,omitempty"`
	Values    anim.Values `json:"values" yaml:"values"`
	Events    anim.Log    `json:"events" yaml:"events"`
	Counts    anim.Counts `json:"counts" yaml:"counts"`
}

// NewRecording stamps a log with its counts and the current time.
func NewRecording(algorithm string, seed int64, values anim.Values, events anim.Log) *Recording {
	return &Recording{
		Algorithm: algorithm,
		Timestamp: time.Now().UTC(),
		Seed:      seed,
		Values:    values.Clone(),
		Events:    events,
		Counts:    events.Counts(),
	}
}

// Metadata is the listing view of a stored run.
type Metadata struct {
	ID        string
	Algorithm string
	Timestamp time.Time
	Size      int
	Events    int
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Save writes rec as a new run and returns its id.
func (s *Store) Save(rec *Recording) (string, error) {
	runID := fmt.Sprintf("%s_%d", rec.Algorithm, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	rec.ID = runID
	if err := WriteFile(filepath.Join(runDir, recordingFile), rec); err != nil {
		return "", err
	}
	return runID, nil
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]Metadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Metadata{}, nil
		}
		return nil, err
	}

	runs := make([]Metadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		rec, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, Metadata{
			ID:        rec.ID,
			Algorithm: rec.Algorithm,
			Timestamp: rec.Timestamp,
			Size:      len(rec.Values),
			Events:    len(rec.Events),
		})
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*Recording, error) {
	return ReadFile(filepath.Join(s.baseDir, runID, recordingFile))
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// WriteFile encodes rec as YAML for .yaml/.yml paths and JSON otherwise.
func WriteFile(path string, rec *Recording) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if isYAML(path) {
		enc := yaml.NewEncoder(file)
		enc.SetIndent(2)
		if err := enc.Encode(rec); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

// ReadFile decodes a recording. Events are not validated here; playback
// rejects a log that does not fit its values.
func ReadFile(path string) (*Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rec Recording
	if isYAML(path) {
		err = yaml.Unmarshal(data, &rec)
	} else {
		err = json.Unmarshal(data, &rec)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &rec, nil
}
