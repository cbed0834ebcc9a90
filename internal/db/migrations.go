package db

import "fmt"

// migrate creates the catalog schema.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS movies (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			title            TEXT NOT NULL CHECK(title <> ''),
			duration_minutes INTEGER NOT NULL CHECK(duration_minutes >= 0),
			mandatory        BOOLEAN NOT NULL DEFAULT 0,
			created_at       DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS showtimes (
			movie_id INTEGER NOT NULL REFERENCES movies(id),
			position INTEGER NOT NULL,
			value    TEXT NOT NULL,
			PRIMARY KEY (movie_id, position)
		);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating catalog tables: %w", err)
	}

	return nil
}
