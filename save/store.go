// Package save persists game state as a namespaced key-value store.
// Values are serialized to JSON in a SQLite database through the
// pure-Go modernc.org/sqlite driver, so no CGO is involved.
//
// All operations fail soft: on any storage or serialization error they
// log and fall back to a no-op or the caller's default. A nil Store is
// valid and behaves as an empty, unwritable one, which is what the
// engine hands out when the database could not be opened.
package save

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store reads and writes values under one namespace. Stores sharing a
// database but not a namespace never see each other's keys.
type Store struct {
	db     *sql.DB
	ns     string
	logger *log.Logger
}

// Open creates or opens the save database at the given path, creating
// parent directories as needed. An empty path opens an in-memory
// store that lasts for the process.
func Open(dbPath, namespace string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if dbPath == "" {
		dbPath = ":memory:"
	}
	if dbPath != ":memory:" {
		// Expand ~ to home directory
		if dbPath[0] == '~' {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("save: cannot expand home directory: %w", err)
			}
			dbPath = filepath.Join(home, dbPath[1:])
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("save: cannot create directory %s: %w", filepath.Dir(dbPath), err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("save: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("save: cannot connect to database: %w", err)
	}

	store := &Store{db: db, ns: namespace, logger: logger}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("save: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saves (
			namespace TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (namespace, key)
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s != nil && s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Namespace returns the prefix this store operates under.
func (s *Store) Namespace() string {
	if s == nil {
		return ""
	}
	return s.ns
}

// WithNamespace returns a view of the same database under another
// namespace.
func (s *Store) WithNamespace(ns string) *Store {
	if s == nil {
		return nil
	}
	return &Store{db: s.db, ns: ns, logger: s.logger}
}

func (s *Store) usable() bool {
	return s != nil && s.db != nil
}

// Save serializes v to JSON and stores it under the key, replacing any
// previous value. Failures are logged and swallowed.
func (s *Store) Save(key string, v any) {
	if !s.usable() {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("could not serialize save value", "namespace", s.ns, "key", key, "error", err)
		return
	}
	_, err = s.db.Exec(
		`INSERT INTO saves (namespace, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(namespace, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		s.ns, key, string(data),
	)
	if err != nil {
		s.logger.Warn("could not write save value", "namespace", s.ns, "key", key, "error", err)
	}
}

// Load reads the value stored under the key into dst, which must be a
// pointer. When the key is absent or unreadable, dst keeps whatever
// default the caller preset and Load returns false.
func (s *Store) Load(key string, dst any) bool {
	if !s.usable() {
		return false
	}
	var raw string
	err := s.db.QueryRow(
		"SELECT value FROM saves WHERE namespace = ? AND key = ?",
		s.ns, key,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		s.logger.Warn("could not read save value", "namespace", s.ns, "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.logger.Warn("could not deserialize save value", "namespace", s.ns, "key", key, "error", err)
		return false
	}
	return true
}

// Delete removes the key. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) {
	if !s.usable() {
		return
	}
	if _, err := s.db.Exec("DELETE FROM saves WHERE namespace = ? AND key = ?", s.ns, key); err != nil {
		s.logger.Warn("could not delete save value", "namespace", s.ns, "key", key, "error", err)
	}
}

// Has reports whether the key exists in this namespace.
func (s *Store) Has(key string) bool {
	if !s.usable() {
		return false
	}
	var one int
	err := s.db.QueryRow(
		"SELECT 1 FROM saves WHERE namespace = ? AND key = ?",
		s.ns, key,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		s.logger.Warn("could not check save key", "namespace", s.ns, "key", key, "error", err)
		return false
	}
	return true
}

// Keys returns the keys present in this namespace, sorted.
func (s *Store) Keys() []string {
	if !s.usable() {
		return nil
	}
	rows, err := s.db.Query(
		"SELECT key FROM saves WHERE namespace = ? ORDER BY key",
		s.ns,
	)
	if err != nil {
		s.logger.Warn("could not list save keys", "namespace", s.ns, "error", err)
		return nil
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			s.logger.Warn("could not scan save key", "namespace", s.ns, "error", err)
			return keys
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		s.logger.Warn("could not iterate save keys", "namespace", s.ns, "error", err)
	}
	return keys
}

// Clear deletes every key in this namespace. Other namespaces in the
// same database are untouched.
func (s *Store) Clear() {
	if !s.usable() {
		return
	}
	if _, err := s.db.Exec("DELETE FROM saves WHERE namespace = ?", s.ns); err != nil {
		s.logger.Warn("could not clear namespace", "namespace", s.ns, "error", err)
	}
}
