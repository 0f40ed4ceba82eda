package sqlite

import (
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/blake3"

	"auditlens/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// ErrCorruptSlot is returned by Load when the stored value does not match
// its checksum
var ErrCorruptSlot = errors.New("state slot checksum mismatch")

// Slot implements ports.StateSlot as one row of a SQLite table. Several
// sessions can share a database file, each with its own row.
type Slot struct {
	db      *sql.DB
	dbPath  string
	session string
}

// Ensure Slot implements StateSlot
var _ ports.StateSlot = (*Slot)(nil)

// OpenSlot opens (creating if needed) the database at dbPath and binds the
// slot to session
func OpenSlot(dbPath, session string) (*Slot, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS slots (
			session TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			checksum TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', '` + schemaVersion + `');
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	return &Slot{db: db, dbPath: dbPath, session: session}, nil
}

// Path returns the database file backing the slot
func (s *Slot) Path() string {
	return s.dbPath
}

// Load returns the stored value, or nil when the session has none
func (s *Slot) Load() ([]byte, error) {
	var (
		value    []byte
		checksum string
	)
	err := s.db.QueryRow(`SELECT value, checksum FROM slots WHERE session = ?`, s.session).Scan(&value, &checksum)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %s: %w", s.session, err)
	}

	if checksumOf(value) != checksum {
		return nil, fmt.Errorf("%w: session %s", ErrCorruptSlot, s.session)
	}
	return value, nil
}

// Save replaces the stored value
func (s *Slot) Save(data []byte) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO slots (session, value, checksum, updated_at)
		VALUES (?, ?, ?, ?)
	`, s.session, data, checksumOf(data), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", s.session, err)
	}
	return nil
}

// Close closes the database connection
func (s *Slot) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func checksumOf(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
