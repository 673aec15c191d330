package leaderboard

import (
	"database/sql"
	"fmt"
)

// Store reads the cross-learner standings snapshot.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// AllEntries returns every learner with any experience, newest snapshot the
// database has. Ordering is left to the ranker.
func (s *Store) AllEntries() ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT u.id, u.username, p.experience, p.level, p.days_streak
		FROM users u
		JOIN learner_progression p ON p.user_id = u.id
		WHERE p.experience > 0`)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.UserID, &e.Username, &e.Experience, &e.Level, &e.DaysStreak); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
