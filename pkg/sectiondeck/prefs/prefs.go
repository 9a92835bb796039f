// Package prefs persists the handful of user preferences the site keeps
// between visits: cookie consent and the display language.
package prefs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BrandonKowalski/sectiondeck/pkg/sectiondeck/constants"
	_ "modernc.org/sqlite"
)

// Store is a string key/value store.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

const schema = `
CREATE TABLE IF NOT EXISTS preferences (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// SQLiteStore keeps preferences in a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the preference database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create prefs dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open prefs db: %w", err)
	}
	// One writer; the UI goroutine is the only caller.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init prefs schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM preferences WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *MemoryStore) Close() error { return nil }

// Consent is the stored cookie choice. Necessary cookies cannot be refused.
type Consent struct {
	Necessary bool `json:"necessary"`
	Analytics bool `json:"analytics"`
	Marketing bool `json:"marketing"`
}

// ErrMalformed is returned when a stored value cannot be decoded.
var ErrMalformed = errors.New("malformed preference")

// LoadConsent reads the stored consent. ok is false when nothing was stored.
// A stored value that is not valid JSON returns ok=true and ErrMalformed.
func LoadConsent(ctx context.Context, s Store) (consent Consent, ok bool, err error) {
	raw, ok, err := s.Get(ctx, constants.ConsentStorageKey)
	if err != nil || !ok {
		return Consent{}, ok, err
	}
	if err := json.Unmarshal([]byte(raw), &consent); err != nil {
		return Consent{}, true, fmt.Errorf("%w: %s: %v", ErrMalformed, constants.ConsentStorageKey, err)
	}
	return consent, true, nil
}

// SaveConsent stores consent. Necessary is always recorded as true.
func SaveConsent(ctx context.Context, s Store, consent Consent) error {
	consent.Necessary = true
	data, err := json.Marshal(consent)
	if err != nil {
		return err
	}
	return s.Set(ctx, constants.ConsentStorageKey, string(data))
}

// ClearConsent forgets the stored choice so the banner shows again.
func ClearConsent(ctx context.Context, s Store) error {
	return s.Delete(ctx, constants.ConsentStorageKey)
}

// LoadLanguage returns the stored language code, if any.
func LoadLanguage(ctx context.Context, s Store) (string, bool, error) {
	return s.Get(ctx, constants.LanguageStorageKey)
}

// SaveLanguage stores the language code.
func SaveLanguage(ctx context.Context, s Store, lang string) error {
	return s.Set(ctx, constants.LanguageStorageKey, lang)
}
