package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Captures table - one row per saved screenshot
		`CREATE TABLE IF NOT EXISTS captures (
			id TEXT PRIMARY KEY,
			path TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			taken_at DATETIME NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_captures_taken_at ON captures(taken_at)`,

		// One row per file: a later screenshot in the same second replaces the file
		`DELETE FROM captures WHERE rowid NOT IN (SELECT MAX(rowid) FROM captures GROUP BY path)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_captures_path ON captures(path)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
