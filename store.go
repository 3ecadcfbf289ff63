package valutatrade

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File names inside the store directory.
const (
	ratesFilename      = "rates.json"
	historyFilename    = "exchange_rates.json"
	usersFilename      = "users.json"
	portfoliosFilename = "portfolios.json"
)

// Store persists every ledger document under a single directory of JSON
// files. One Store is constructed per process and passed by reference to the
// Updater and Resolver; all operations are serialized by one mutex because
// the backing medium is a set of shared files with no transactional support.
//
// The rate table and the history are written atomically (temp file + rename
// in the same directory) since they are read by concurrent CLI invocations.
// Simple keyed-record files used by the account layers use plain overwrite.
//
// A missing or malformed file is treated as "no data yet", never as a fatal
// error: the atomic write path is the defense against corruption, and
// self-healing on read keeps the system recoverable after a bad write.
type Store struct {
	mu  sync.Mutex
	dir string
}

// NewStore returns a store rooted at dir. The directory is created lazily on
// first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store's root directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(name string) string { return filepath.Join(s.dir, name) }

// RateTable loads the current rate table. It returns (nil, nil) when the
// table has never been written or the file is unreadable.
func (s *Store) RateTable() (*RateTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(ratesFilename))
	if err != nil {
		return nil, nil
	}
	table, err := decodeRateTable(data)
	if err != nil {
		// Self-heal: a corrupt table is indistinguishable from no table.
		return nil, nil
	}
	return table, nil
}

// SaveRateTable atomically replaces the persisted rate table.
func (s *Store) SaveRateTable(t *RateTable) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := encodeRateTable(t)
	if err != nil {
		return fmt.Errorf("could not encode rate table: %w", err)
	}
	return s.atomicWrite(s.path(ratesFilename), data)
}

// History loads the append-only history. Missing or corrupt files yield an
// empty history.
func (s *Store) History() ([]HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadHistory()
}

func (s *Store) loadHistory() ([]HistoryRecord, error) {
	data, err := os.ReadFile(s.path(historyFilename))
	if err != nil {
		return nil, nil
	}
	records, err := decodeHistory(data)
	if err != nil {
		return nil, nil
	}
	return records, nil
}

// AppendHistory merges records into the history: any existing record whose
// id collides with an incoming one is replaced, everything else is kept.
// Re-applying the same cycle is therefore idempotent. The union is written
// atomically.
func (s *Store) AppendHistory(records []HistoryRecord) error {
	if len(records) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.loadHistory()
	if err != nil {
		return err
	}
	incoming := make(map[string]bool, len(records))
	for _, r := range records {
		incoming[r.ID] = true
	}
	merged := make([]HistoryRecord, 0, len(existing)+len(records))
	for _, r := range existing {
		if !incoming[r.ID] {
			merged = append(merged, r)
		}
	}
	merged = append(merged, records...)

	data, err := encodeHistory(merged)
	if err != nil {
		return fmt.Errorf("could not encode history: %w", err)
	}
	return s.atomicWrite(s.path(historyFilename), data)
}

// Load reads the JSON document name into v. A missing or malformed file
// leaves v untouched and returns nil: callers always start from their empty
// default.
func (s *Store) Load(name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return nil
	}
	return nil
}

// Save writes the JSON document name as a full overwrite.
func (s *Store) Save(name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("could not encode %q: %w", name, err)
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("could not create store directory: %w", err)
	}
	return os.WriteFile(s.path(name), data, 0644)
}

// atomicWrite writes data to a temporary file in the target's directory and
// renames it over the target, so a reader observes either the prior complete
// document or the new complete one, never a truncated file.
// Callers hold s.mu.
func (s *Store) atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create store directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("could not create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("could not write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("could not close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("could not replace %q: %w", path, err)
	}
	return nil
}

// FindRecord scans the JSON list document name for the first record matching
// match. It reports ok=false when nothing matches.
func FindRecord[T any](s *Store, name string, match func(T) bool) (rec T, ok bool, err error) {
	var list []T
	if err = s.Load(name, &list); err != nil {
		return rec, false, err
	}
	for _, r := range list {
		if match(r) {
			return r, true, nil
		}
	}
	return rec, false, nil
}

// UpdateRecord replaces the first record matching match in the JSON list
// document name. It returns ErrNotFound when no record matches.
func UpdateRecord[T any](s *Store, name string, match func(T) bool, rec T) error {
	var list []T
	if err := s.Load(name, &list); err != nil {
		return err
	}
	for i := range list {
		if match(list[i]) {
			list[i] = rec
			return s.Save(name, list)
		}
	}
	return fmt.Errorf("updating %q: %w", name, ErrNotFound)
}
