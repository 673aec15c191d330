package progression

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spantrek/backend/internal/models"
)

// Store persists learner progression snapshots. A learner's full state lives
// in one row so every engine application commits as a single UPDATE.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// GetOrCreate loads the learner's progression, inserting a fresh row on
// first touch. Safe under concurrent first requests for the same learner.
func (s *Store) GetOrCreate(userID int64) (*models.Progression, error) {
	_, err := s.db.Exec(`
		INSERT INTO learner_progression (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to init progression: %w", err)
	}
	return s.Get(userID)
}

// Get loads the learner's progression row.
func (s *Store) Get(userID int64) (*models.Progression, error) {
	p := &models.Progression{}
	var (
		activityDays, words, sentences, audio []byte
		countryProg, landmarkProg, passports  []byte
		challenges, achievements              []byte
		lastActivity, challengesDate          sql.NullTime
	)

	err := s.db.QueryRow(`
		SELECT user_id, experience, level, days_streak, highest_streak,
		       adventure_progress, use_of_spanish, last_activity_date,
		       activity_days, words_learned, sentences_learned, audio_learned,
		       country_lessons_progress, landmark_lessons_progress,
		       passports_earned, daily_challenges, daily_challenges_date,
		       daily_challenges_completed, earned_achievements,
		       created_at, updated_at
		FROM learner_progression
		WHERE user_id = $1`, userID).Scan(
		&p.UserID, &p.Experience, &p.Level, &p.DaysStreak, &p.HighestStreak,
		&p.AdventureProgress, &p.UseOfSpanish, &lastActivity,
		&activityDays, &words, &sentences, &audio,
		&countryProg, &landmarkProg,
		&passports, &challenges, &challengesDate,
		&p.DailyChallengesCompleted, &achievements,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("progression not found for user %d", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load progression: %w", err)
	}

	if lastActivity.Valid {
		p.LastActivityDate = &lastActivity.Time
	}
	if challengesDate.Valid {
		p.DailyChallengesDate = &challengesDate.Time
	}

	for _, col := range []struct {
		raw  []byte
		dest any
	}{
		{activityDays, &p.ActivityDays},
		{words, &p.WordsLearned},
		{sentences, &p.SentencesLearned},
		{audio, &p.AudioLearned},
		{countryProg, &p.CountryProgress},
		{landmarkProg, &p.LandmarkProgress},
		{passports, &p.PassportsEarned},
		{challenges, &p.DailyChallenges},
		{achievements, &p.EarnedAchievements},
	} {
		if len(col.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(col.raw, col.dest); err != nil {
			return nil, fmt.Errorf("failed to decode progression column: %w", err)
		}
	}

	if p.CountryProgress == nil {
		p.CountryProgress = make(map[string]int)
	}
	if p.LandmarkProgress == nil {
		p.LandmarkProgress = make(map[string]int)
	}
	return p, nil
}

// Update writes the full snapshot back in one statement.
func (s *Store) Update(p *models.Progression) error {
	cols := make([][]byte, 9)
	for i, v := range []any{
		p.ActivityDays, p.WordsLearned, p.SentencesLearned, p.AudioLearned,
		p.CountryProgress, p.LandmarkProgress, p.PassportsEarned,
		p.DailyChallenges, p.EarnedAchievements,
	} {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode progression column: %w", err)
		}
		cols[i] = raw
	}

	var lastActivity, challengesDate any
	if p.LastActivityDate != nil {
		lastActivity = *p.LastActivityDate
	}
	if p.DailyChallengesDate != nil {
		challengesDate = *p.DailyChallengesDate
	}

	_, err := s.db.Exec(`
		UPDATE learner_progression
		SET experience = $2, level = $3, days_streak = $4, highest_streak = $5,
		    adventure_progress = $6, use_of_spanish = $7,
		    last_activity_date = $8,
		    activity_days = $9, words_learned = $10, sentences_learned = $11,
		    audio_learned = $12, country_lessons_progress = $13,
		    landmark_lessons_progress = $14, passports_earned = $15,
		    daily_challenges = $16, daily_challenges_date = $17,
		    daily_challenges_completed = $18, earned_achievements = $19,
		    updated_at = NOW()
		WHERE user_id = $1`,
		p.UserID, p.Experience, p.Level, p.DaysStreak, p.HighestStreak,
		p.AdventureProgress, p.UseOfSpanish, lastActivity,
		cols[0], cols[1], cols[2], cols[3], cols[4], cols[5], cols[6],
		cols[7], challengesDate, p.DailyChallengesCompleted, cols[8],
	)
	if err != nil {
		return fmt.Errorf("failed to save progression: %w", err)
	}
	return nil
}

// HasCompletedLesson reports whether the learner ever completed the lesson.
func (s *Store) HasCompletedLesson(userID, lessonID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM lesson_completions
			WHERE user_id = $1 AND lesson_id = $2
		)`, userID, lessonID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check lesson completion: %w", err)
	}
	return exists, nil
}

// MarkLessonCompleted records a first-time completion. Replays are a no-op.
func (s *Store) MarkLessonCompleted(userID, lessonID int64) error {
	_, err := s.db.Exec(`
		INSERT INTO lesson_completions (user_id, lesson_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, lesson_id) DO NOTHING`, userID, lessonID)
	if err != nil {
		return fmt.Errorf("failed to record lesson completion: %w", err)
	}
	return nil
}

// LogXPEvent appends an audit entry for an XP award.
func (s *Store) LogXPEvent(userID int64, eventType string, amount int, metadata map[string]any) error {
	raw, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to encode xp event metadata: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO xp_events (user_id, event_type, xp_amount, metadata)
		VALUES ($1, $2, $3, $4)`, userID, eventType, amount, raw)
	if err != nil {
		return fmt.Errorf("failed to log xp event: %w", err)
	}
	return nil
}

// ActiveLearnerIDs returns learners who have started the adventure; the
// nightly challenge refresh only targets these.
func (s *Store) ActiveLearnerIDs() ([]int64, error) {
	rows, err := s.db.Query(`
		SELECT user_id FROM learner_progression
		WHERE adventure_progress > 0`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active learners: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan learner id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// StaleChallengeDate reports whether the stored challenge set predates today.
func StaleChallengeDate(p *models.Progression, today time.Time) bool {
	return p.DailyChallengesDate == nil ||
		p.DailyChallengesDate.Format(dateLayout) != today.Format(dateLayout)
}
