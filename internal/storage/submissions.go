package storage

import (
	"strings"
	"time"
)

// UpsertSubmission creates or refreshes a submission row, unique on the
// lowercased name, defaulting status to "pending" on first insert, per
// §5.
func (s *Store) UpsertSubmission(name, source string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	_, err := s.db.Exec(`
		INSERT INTO submissions (name, source, status, submitted_at, updated_at)
		VALUES (?, ?, 'pending', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			source = excluded.source,
			updated_at = CURRENT_TIMESTAMP
	`, name, source)
	return err
}

// ListPending returns every submission with status "pending", sorted
// by submission time ascending (oldest first), per §5.
func (s *Store) ListPending() ([]Submission, error) {
	rows, err := s.db.Query(`
		SELECT name, source, status, submitted_at, updated_at
		FROM submissions
		WHERE status = 'pending'
		ORDER BY submitted_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		var sub Submission
		if err := rows.Scan(&sub.Name, &sub.Source, &sub.Status, &sub.SubmittedAt, &sub.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

// SetStatus updates a row's status by name.
func (s *Store) SetStatus(name, status string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	_, err := s.db.Exec(`
		UPDATE submissions SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE name = ?
	`, status, name)
	return err
}
