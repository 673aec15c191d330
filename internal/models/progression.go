package models

import "time"

// ── Learner State ─────────────────────────────────────────

// DailyChallengeInstance is a learner's snapshot of a challenge template.
// Progress and Completed are mutable; the rest is copied from the template
// at creation time and survives later template edits.
type DailyChallengeInstance struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Progress    int    `json:"progress"`
	MaxProgress int    `json:"max_progress"`
	Completed   bool   `json:"completed"`
}

// Progression holds all gamification state for one learner. The progression
// engine is the only writer; set and map fields keep set discipline through
// the engine's mutators. Dates in ActivityDays are ISO "2006-01-02" strings.
type Progression struct {
	UserID                   int64                    `json:"user_id"`
	Experience               int                      `json:"experience"`
	Level                    int                      `json:"level"`
	DaysStreak               int                      `json:"days_streak"`
	HighestStreak            int                      `json:"highest_streak"`
	AdventureProgress        int                      `json:"adventure_progress"`
	UseOfSpanish             int                      `json:"use_of_spanish"`
	LastActivityDate         *time.Time               `json:"last_activity_date"`
	ActivityDays             []string                 `json:"activity_days"`
	WordsLearned             []string                 `json:"words_learned"`
	SentencesLearned         []string                 `json:"sentences_learned"`
	AudioLearned             []string                 `json:"audio_learned"`
	CountryProgress          map[string]int           `json:"country_lessons_progress"`
	LandmarkProgress         map[string]int           `json:"landmark_lessons_progress"`
	PassportsEarned          []string                 `json:"passports_earned"`
	DailyChallenges          []DailyChallengeInstance `json:"daily_challenges"`
	DailyChallengesDate      *time.Time               `json:"daily_challenges_date"`
	DailyChallengesCompleted bool                     `json:"daily_challenges_completed"`
	EarnedAchievements       []string                 `json:"earned_achievements"`
	CreatedAt                time.Time                `json:"created_at"`
	UpdatedAt                time.Time                `json:"updated_at"`
}

// HasAchievement reports whether the achievement code was already granted.
func (p *Progression) HasAchievement(code string) bool {
	for _, c := range p.EarnedAchievements {
		if c == code {
			return true
		}
	}
	return false
}

// HasActivityOn reports whether the ISO date is in the activity set.
func (p *Progression) HasActivityOn(day string) bool {
	for _, d := range p.ActivityDays {
		if d == day {
			return true
		}
	}
	return false
}

// HasPassport reports whether the country passport was already earned.
func (p *Progression) HasPassport(country string) bool {
	for _, c := range p.PassportsEarned {
		if c == country {
			return true
		}
	}
	return false
}

// ── Request Types ─────────────────────────────────────────

type CompletePracticeRequest struct {
	PracticeType string `json:"practice_type"`
}

// ── Response Types ────────────────────────────────────────

type ProgressionResponse struct {
	Experience               int                      `json:"experience"`
	Level                    int                      `json:"level"`
	DaysStreak               int                      `json:"days_streak"`
	HighestStreak            int                      `json:"highest_streak"`
	AdventureProgress        int                      `json:"adventure_progress"`
	UseOfSpanish             int                      `json:"use_of_spanish"`
	WordsLearned             int                      `json:"words_learned"`
	SentencesLearned         int                      `json:"sentences_learned"`
	AudioLearned             int                      `json:"audio_learned"`
	CountryProgress          map[string]int           `json:"country_lessons_progress"`
	LandmarkProgress         map[string]int           `json:"landmark_lessons_progress"`
	CountryPercentages       map[string]int           `json:"country_percentages"`
	PassportsEarned          []string                 `json:"passports_earned"`
	DailyChallenges          []DailyChallengeInstance `json:"daily_challenges"`
	DailyChallengesCompleted bool                     `json:"daily_challenges_completed"`
	EarnedAchievements       []string                 `json:"earned_achievements"`
}

type LessonCompleteResponse struct {
	XPAwarded                int                      `json:"xp_awarded"`
	Replay                   bool                     `json:"replay"`
	Experience               int                      `json:"experience"`
	Level                    int                      `json:"level"`
	DaysStreak               int                      `json:"days_streak"`
	AdventureProgress        int                      `json:"adventure_progress"`
	PassportsEarned          []string                 `json:"passports_earned"`
	AchievementsUnlocked     []string                 `json:"achievements_unlocked"`
	ChallengesCompleted      []string                 `json:"challenges_completed"`
	DailyChallengesCompleted bool                     `json:"daily_challenges_completed"`
	DailyChallenges          []DailyChallengeInstance `json:"daily_challenges"`
}

type PracticeCompleteResponse struct {
	XPAwarded                int                      `json:"xp_awarded"`
	Experience               int                      `json:"experience"`
	Level                    int                      `json:"level"`
	DaysStreak               int                      `json:"days_streak"`
	AchievementsUnlocked     []string                 `json:"achievements_unlocked"`
	ChallengesCompleted      []string                 `json:"challenges_completed"`
	DailyChallengesCompleted bool                     `json:"daily_challenges_completed"`
	DailyChallenges          []DailyChallengeInstance `json:"daily_challenges"`
}

// AchievementStatus is one catalog entry with the learner's earned flag.
type AchievementStatus struct {
	Code            string `json:"code"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Icon            string `json:"icon"`
	ExperienceAward int    `json:"experience_award"`
	Earned          bool   `json:"earned"`
}
