package progression

import "github.com/spantrek/backend/internal/models"

// Experience amounts awarded by the engine.
const (
	// LevelExperienceUnit is the XP required per level.
	LevelExperienceUnit = 500

	// LessonXP is awarded for completing a new lesson.
	LessonXP = 100
	// LessonReplayXP is awarded for revisiting an already completed lesson.
	LessonReplayXP = 50
	// PracticeXP is awarded for completing a practice session.
	PracticeXP = 25
	// DailyChallengeBonusXP is awarded once when all daily challenges are done.
	DailyChallengeBonusXP = 75

	// EarlyBirdHour / NightOwlHour bound the time-of-day achievements.
	EarlyBirdHour = 10
	NightOwlHour  = 22
)

// LevelForExperience returns the level implied by a cumulative XP total.
func LevelForExperience(xp int) int {
	if xp < 0 {
		return 1
	}
	return xp/LevelExperienceUnit + 1
}

// Relevel raises the level until it matches the experience total. Supports
// multi-level jumps from a single grant; never lowers the level.
func Relevel(p *models.Progression) {
	if p.Level < 1 {
		p.Level = 1
	}
	for p.Experience >= p.Level*LevelExperienceUnit {
		p.Level++
	}
}

// AddExperience applies an XP delta and re-derives the level.
func AddExperience(p *models.Progression, amount int) {
	p.Experience += amount
	Relevel(p)
}

// RegionPercent returns completion percentage for a region, 0 when the
// region has no lessons.
func RegionPercent(progress, total int) int {
	if total <= 0 {
		return 0
	}
	return progress * 100 / total
}
