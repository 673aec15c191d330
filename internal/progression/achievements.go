package progression

import (
	"time"

	"github.com/spantrek/backend/internal/models"
)

// Condition is the closed set of achievement condition kinds. Dispatch is a
// single exhaustive switch in conditionMet, never string sniffing of codes.
type Condition int

const (
	CondExperience Condition = iota
	CondLevel
	CondStreak
	CondAdventure
	CondCountryPercent
	CondBeforeHour
	CondAfterHour
	CondWordsLearned
	CondSentencesLearned
	CondAudioLearned
	CondUseOfSpanish
	CondCustom
)

// Custom predicate keys.
const (
	CustomWellRounded   = "well_rounded"  // level >= 3 with 5+ day streak
	CustomPerfectionist = "perfectionist" // level equals streak, both >= 10
)

// AchievementDef is an immutable catalog entry.
type AchievementDef struct {
	Code        string
	Name        string
	Description string
	Icon        string

	Condition Condition
	Threshold int
	// Country scopes CondCountryPercent conditions.
	Country string
	// Custom names the predicate for CondCustom conditions.
	Custom string

	ExperienceAward int
}

// Env carries the read-only context achievement evaluation needs beyond the
// learner snapshot: the injected date/hour and per-country lesson totals.
type Env struct {
	Today         time.Time
	Hour          int
	CountryTotals map[string]int
}

// Evaluate runs one pass over the catalog and grants every achievement whose
// condition holds and which the learner does not already have. Each grant
// adds the reward XP and re-derives the level immediately, so later entries
// in the same pass observe the updated state. Returns the codes granted.
// Re-evaluating an unchanged learner grants nothing.
func Evaluate(p *models.Progression, catalog []AchievementDef, env Env) []string {
	var granted []string
	for _, def := range catalog {
		if p.HasAchievement(def.Code) {
			continue
		}
		if !conditionMet(p, def, env) {
			continue
		}
		p.EarnedAchievements = append(p.EarnedAchievements, def.Code)
		AddExperience(p, def.ExperienceAward)
		granted = append(granted, def.Code)
	}
	return granted
}

// maxEvaluatePasses bounds the leveling/achievement fixed point; a pass that
// grants nothing terminates the loop early.
const maxEvaluatePasses = 3

// EvaluateToFixedPoint re-runs Evaluate while grants keep changing state,
// since reward XP can satisfy experience or level conditions that failed
// earlier in the same batch. Bounded so a misconfigured catalog cannot loop.
func EvaluateToFixedPoint(p *models.Progression, catalog []AchievementDef, env Env) []string {
	var all []string
	for i := 0; i < maxEvaluatePasses; i++ {
		granted := Evaluate(p, catalog, env)
		if len(granted) == 0 {
			break
		}
		all = append(all, granted...)
	}
	return all
}

func conditionMet(p *models.Progression, def AchievementDef, env Env) bool {
	switch def.Condition {
	case CondExperience:
		return p.Experience >= def.Threshold
	case CondLevel:
		return p.Level >= def.Threshold
	case CondStreak:
		return p.DaysStreak >= def.Threshold
	case CondAdventure:
		return p.AdventureProgress >= def.Threshold
	case CondCountryPercent:
		return RegionPercent(p.CountryProgress[def.Country], env.CountryTotals[def.Country]) >= def.Threshold
	case CondBeforeHour:
		return activeToday(p, env) && env.Hour < def.Threshold
	case CondAfterHour:
		return activeToday(p, env) && env.Hour >= def.Threshold
	case CondWordsLearned:
		return len(p.WordsLearned) >= def.Threshold
	case CondSentencesLearned:
		return len(p.SentencesLearned) >= def.Threshold
	case CondAudioLearned:
		return len(p.AudioLearned) >= def.Threshold
	case CondUseOfSpanish:
		return p.UseOfSpanish >= def.Threshold
	case CondCustom:
		return customMet(p, def.Custom)
	default:
		return false
	}
}

func activeToday(p *models.Progression, env Env) bool {
	return p.LastActivityDate != nil &&
		p.LastActivityDate.Format(dateLayout) == env.Today.Format(dateLayout)
}

func customMet(p *models.Progression, key string) bool {
	switch key {
	case CustomWellRounded:
		return p.Level >= 3 && p.DaysStreak >= 5
	case CustomPerfectionist:
		return p.Level >= 10 && p.Level == p.DaysStreak
	default:
		return false
	}
}
