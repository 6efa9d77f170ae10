package histio

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/gridhist/hist"
)

// ErrNotFound is returned when no histogram with the requested name exists.
var ErrNotFound = errors.New("histogram not found")

// Config locates the histogram database on disk.
type Config struct {
	// Dir is the directory holding the database. Defaults to the current
	// directory; it is created if missing.
	Dir string
	// File is the database filename inside Dir. Defaults to
	// "histograms.db".
	File string
}

func (c Config) path() string {
	dir := c.Dir
	if dir == "" {
		dir = "."
	}
	file := c.File
	if file == "" {
		file = "histograms.db"
	}
	return filepath.Join(dir, file)
}

// Store keeps named histogram blobs in a local SQLite database.
type Store struct {
	*sql.DB
}

// Entry describes one stored histogram.
type Entry struct {
	ID        string
	Name      string
	Dim       int
	Label     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Open opens (creating if necessary) the histogram database described by
// cfg and applies any pending schema migrations.
func Open(cfg Config) (*Store, error) {
	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", cfg.path())
	if err != nil {
		return nil, err
	}
	s := &Store{db}
	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Save writes a histogram under name, replacing any previous histogram with
// the same name. It returns the stored record's id.
func (s *Store) Save(name string, h *hist.Histogram) (string, error) {
	if name == "" {
		return "", fmt.Errorf("histogram name must not be empty")
	}
	if h == nil {
		return "", fmt.Errorf("nil histogram")
	}
	blob, err := Encode(h)
	if err != nil {
		return "", fmt.Errorf("failed to encode histogram %q: %w", name, err)
	}

	id := uuid.NewString()
	_, err = s.Exec(`
		INSERT INTO histograms (id, name, blob, dim, label)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			blob = excluded.blob,
			dim = excluded.dim,
			label = excluded.label,
			updated_at = CURRENT_TIMESTAMP
	`, id, name, blob, h.Dim(), h.Label())
	if err != nil {
		return "", fmt.Errorf("failed to save histogram %q: %w", name, err)
	}

	// On conflict the original id survives; read back whichever won.
	if err := s.QueryRow("SELECT id FROM histograms WHERE name = ?", name).Scan(&id); err != nil {
		return "", fmt.Errorf("failed to read back histogram id: %w", err)
	}
	return id, nil
}

// Load returns the histogram stored under name.
func (s *Store) Load(name string) (*hist.Histogram, error) {
	var blob []byte
	err := s.QueryRow("SELECT blob FROM histograms WHERE name = ?", name).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load histogram %q: %w", name, err)
	}
	h, err := Decode(blob)
	if err != nil {
		return nil, fmt.Errorf("failed to decode histogram %q: %w", name, err)
	}
	return h, nil
}

// List returns every stored histogram's metadata, most recently updated
// first.
func (s *Store) List() ([]Entry, error) {
	rows, err := s.Query(`
		SELECT id, name, dim, label, created_at, updated_at
		FROM histograms ORDER BY updated_at DESC, name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list histograms: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.Dim, &e.Label, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan histogram row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes the histogram stored under name.
func (s *Store) Delete(name string) error {
	res, err := s.Exec("DELETE FROM histograms WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete histogram %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}
