package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

func Connect(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func Migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		username VARCHAR(150) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
	CREATE INDEX IF NOT EXISTS idx_users_username ON users(username);

	CREATE TABLE IF NOT EXISTS lessons (
		id             BIGSERIAL PRIMARY KEY,
		country        VARCHAR(100) NOT NULL,
		landmark       VARCHAR(100) NOT NULL,
		ord            INT NOT NULL DEFAULT 0,
		title          VARCHAR(200) NOT NULL,
		vocabulary     JSONB NOT NULL DEFAULT '[]',
		sentences      JSONB NOT NULL DEFAULT '[]',
		audio          JSONB NOT NULL DEFAULT '[]',
		use_of_spanish INT NOT NULL DEFAULT 0,
		created_at     TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(country, landmark, ord)
	);

	CREATE INDEX IF NOT EXISTS idx_lessons_country ON lessons(country, landmark, ord);

	CREATE TABLE IF NOT EXISTS learner_progression (
		user_id                    BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		experience                 INT NOT NULL DEFAULT 0 CHECK (experience >= 0),
		level                      INT NOT NULL DEFAULT 1 CHECK (level >= 1),
		days_streak                INT NOT NULL DEFAULT 0,
		highest_streak             INT NOT NULL DEFAULT 0,
		adventure_progress         INT NOT NULL DEFAULT 0,
		use_of_spanish             INT NOT NULL DEFAULT 0,
		last_activity_date         DATE,
		activity_days              JSONB NOT NULL DEFAULT '[]',
		words_learned              JSONB NOT NULL DEFAULT '[]',
		sentences_learned          JSONB NOT NULL DEFAULT '[]',
		audio_learned              JSONB NOT NULL DEFAULT '[]',
		country_lessons_progress   JSONB NOT NULL DEFAULT '{}',
		landmark_lessons_progress  JSONB NOT NULL DEFAULT '{}',
		passports_earned           JSONB NOT NULL DEFAULT '[]',
		daily_challenges           JSONB NOT NULL DEFAULT '[]',
		daily_challenges_date      DATE,
		daily_challenges_completed BOOLEAN NOT NULL DEFAULT FALSE,
		earned_achievements        JSONB NOT NULL DEFAULT '[]',
		created_at                 TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at                 TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_progression_experience ON learner_progression(experience DESC);

	CREATE TABLE IF NOT EXISTS lesson_completions (
		id           BIGSERIAL PRIMARY KEY,
		user_id      BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		lesson_id    BIGINT NOT NULL REFERENCES lessons(id) ON DELETE CASCADE,
		completed_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(user_id, lesson_id)
	);

	CREATE INDEX IF NOT EXISTS idx_completions_user ON lesson_completions(user_id);

	CREATE TABLE IF NOT EXISTS xp_events (
		id         BIGSERIAL PRIMARY KEY,
		user_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		event_type VARCHAR(50) NOT NULL,
		xp_amount  INT NOT NULL,
		metadata   JSONB,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_xp_events_user ON xp_events(user_id, created_at);
	`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}
