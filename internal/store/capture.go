package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Capture is a saved screenshot.
type Capture struct {
	ID      string
	Path    string
	Width   int
	Height  int
	TakenAt time.Time
}

// CaptureRepository provides access to the screenshot history.
type CaptureRepository struct {
	db *sql.DB
}

// Captures returns the capture repository for this store.
func (s *Store) Captures() *CaptureRepository {
	return &CaptureRepository{db: s.db}
}

// Create records a screenshot. Recording a path that is already in the
// history replaces the earlier record, since the file itself was overwritten.
func (r *CaptureRepository) Create(c *Capture) error {
	if c.TakenAt.IsZero() {
		c.TakenAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO captures (id, path, width, height, taken_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			id = excluded.id,
			width = excluded.width,
			height = excluded.height,
			taken_at = excluded.taken_at,
			created_at = CURRENT_TIMESTAMP`,
		c.ID, c.Path, c.Width, c.Height, c.TakenAt,
	)
	return err
}

// GetByID retrieves a capture by its ID.
func (r *CaptureRepository) GetByID(id string) (*Capture, error) {
	c := &Capture{}
	err := r.db.QueryRow(
		`SELECT id, path, width, height, taken_at FROM captures WHERE id = ?`,
		id,
	).Scan(&c.ID, &c.Path, &c.Width, &c.Height, &c.TakenAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return c, nil
}

// List returns up to limit captures, newest first. A limit of zero or less
// returns all of them.
func (r *CaptureRepository) List(limit int) ([]*Capture, error) {
	query := `SELECT id, path, width, height, taken_at FROM captures ORDER BY taken_at DESC, created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var captures []*Capture
	for rows.Next() {
		c := &Capture{}
		if err := rows.Scan(&c.ID, &c.Path, &c.Width, &c.Height, &c.TakenAt); err != nil {
			return nil, err
		}
		captures = append(captures, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return captures, nil
}

// Count returns the number of recorded captures.
func (r *CaptureRepository) Count() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM captures`).Scan(&n)
	return n, err
}

// Delete removes a capture record by its ID. The image file is left alone.
func (r *CaptureRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM captures WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
