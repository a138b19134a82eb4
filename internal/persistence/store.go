package persistence

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/user4815162342/monstorr/internal/statblock"
)

// EntryType tags each catalog line so other record kinds can be added.
type EntryType string

const EntryStatBlock EntryType = "statblock"

// EntryWrapper facilitates serialization of catalog records.
type EntryWrapper struct {
	Type   EntryType       `json:"type"`
	ID     string          `json:"id"`
	Source string          `json:"source,omitempty"`
	Data   json.RawMessage `json:"data"`
}

// Entry is one derived creature in the catalog.
type Entry struct {
	ID        string
	Source    string
	StatBlock *statblock.StatBlock
}

// Store handles append-only storing of derived stat blocks as JSON lines.
type Store struct {
	file *os.File
}

// NewStore opens or creates the file at path for appending lines. Missing
// parent directories are created.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create catalog directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open store file: %w", err)
	}
	return &Store{file: file}, nil
}

// Append marshals the stat block to a new catalog line and returns the
// entry's ID.
func (s *Store) Append(source string, sb *statblock.StatBlock) (string, error) {
	data, err := json.Marshal(sb)
	if err != nil {
		return "", err
	}

	wrapper := EntryWrapper{
		Type:   EntryStatBlock,
		ID:     uuid.NewString(),
		Source: source,
		Data:   data,
	}

	wrapperData, err := json.Marshal(wrapper)
	if err != nil {
		return "", err
	}

	if _, err := s.file.Write(append(wrapperData, '\n')); err != nil {
		return "", err
	}
	return wrapper.ID, s.file.Sync()
}

// Load reads every catalog line back in order.
func (s *Store) Load() ([]Entry, error) {
	var entries []Entry

	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(s.file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var wrapper EntryWrapper
		if err := json.Unmarshal(scanner.Bytes(), &wrapper); err != nil {
			return nil, fmt.Errorf("line %d: failed to decode wrapper: %w", line, err)
		}

		switch wrapper.Type {
		case EntryStatBlock:
		default:
			return nil, fmt.Errorf("line %d: unknown entry type in catalog: %s", line, wrapper.Type)
		}

		var sb statblock.StatBlock
		if err := json.Unmarshal(wrapper.Data, &sb); err != nil {
			return nil, fmt.Errorf("line %d: failed to parse stat block: %w", line, err)
		}
		entries = append(entries, Entry{ID: wrapper.ID, Source: wrapper.Source, StatBlock: &sb})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// Close handles safe shutdown.
func (s *Store) Close() error {
	return s.file.Close()
}
