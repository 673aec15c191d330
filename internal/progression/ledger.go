package progression

import (
	"github.com/spantrek/backend/internal/models"
)

// LessonEvent describes a lesson completion as seen by the ledger. Region
// totals come from the lesson catalog so percentage math never divides by a
// stale count.
type LessonEvent struct {
	Country      string
	Landmark     string
	Order        int
	Words        []string
	Sentences    []string
	AudioTexts   []string
	UseOfSpanish int

	CountryTotal  int
	LandmarkTotal int

	// AlreadyCompleted is true when the learner finished this exact lesson
	// before; it gates the adventure counter, not the replay branch.
	AlreadyCompleted bool
}

// Result summarizes what a ledger application changed.
type Result struct {
	XPAwarded           int
	Replay              bool
	NewAchievements     []string
	ChallengesCompleted []string
	DailyBonusAwarded   bool
}

// ApplyLessonCompletion runs the full lesson flow against a learner
// snapshot: streak, XP, knowledge sets, region counters, passports, daily
// challenges and achievements, in that order. A lesson whose order the
// landmark counter already covers is a replay: reduced XP, leveling and
// achievement evaluation still run, but adventure counters, knowledge sets
// and challenges stay untouched.
func ApplyLessonCompletion(p *models.Progression, ev LessonEvent, catalog Catalog, env Env) Result {
	RecordActivity(p, env.Today)

	if p.LandmarkProgress[ev.Landmark] >= ev.Order+1 {
		AddExperience(p, LessonReplayXP)
		return Result{
			XPAwarded:       LessonReplayXP,
			Replay:          true,
			NewAchievements: EvaluateToFixedPoint(p, catalog.Achievements, env),
		}
	}

	AddExperience(p, LessonXP)
	if !ev.AlreadyCompleted {
		p.AdventureProgress++
	}

	newWords := mergeKnowledge(&p.WordsLearned, ev.Words)
	newSentences := mergeKnowledge(&p.SentencesLearned, ev.Sentences)
	newAudio := mergeKnowledge(&p.AudioLearned, ev.AudioTexts)
	p.UseOfSpanish += ev.UseOfSpanish

	advanceRegion(p, ev)

	completed, bonus := AdvanceChallenges(p, ChallengeEvent{
		Lesson:       true,
		XPEarned:     LessonXP,
		NewWords:     newWords,
		NewSentences: newSentences,
		NewAudio:     newAudio,
	})

	return Result{
		XPAwarded:           LessonXP,
		NewAchievements:     EvaluateToFixedPoint(p, catalog.Achievements, env),
		ChallengesCompleted: completed,
		DailyBonusAwarded:   bonus,
	}
}

// ApplyPracticeCompletion runs the practice flow: streak, flat XP, challenge
// advancement for the practice type, achievement evaluation. The caller
// validates practiceType first.
func ApplyPracticeCompletion(p *models.Progression, practiceType string, catalog Catalog, env Env) Result {
	RecordActivity(p, env.Today)
	AddExperience(p, PracticeXP)

	completed, bonus := AdvanceChallenges(p, ChallengeEvent{
		PracticeType: practiceType,
		XPEarned:     PracticeXP,
	})

	return Result{
		XPAwarded:           PracticeXP,
		NewAchievements:     EvaluateToFixedPoint(p, catalog.Achievements, env),
		ChallengesCompleted: completed,
		DailyBonusAwarded:   bonus,
	}
}

// advanceRegion updates the country and landmark counters and awards the
// country passport at 100%. Counters are capped at the catalog totals so a
// re-seeded catalog cannot push progress past complete.
func advanceRegion(p *models.Progression, ev LessonEvent) {
	if p.CountryProgress == nil {
		p.CountryProgress = make(map[string]int)
	}
	if p.LandmarkProgress == nil {
		p.LandmarkProgress = make(map[string]int)
	}

	if cur := p.CountryProgress[ev.Country]; cur < ev.CountryTotal || ev.CountryTotal <= 0 {
		p.CountryProgress[ev.Country] = cur + 1
	}

	// Landmark position is the highest completed order plus one; skipping
	// ahead pulls the marker forward, revisits never pull it back.
	if pos := ev.Order + 1; pos > p.LandmarkProgress[ev.Landmark] {
		if ev.LandmarkTotal > 0 && pos > ev.LandmarkTotal {
			pos = ev.LandmarkTotal
		}
		p.LandmarkProgress[ev.Landmark] = pos
	}

	if RegionPercent(p.CountryProgress[ev.Country], ev.CountryTotal) >= 100 && !p.HasPassport(ev.Country) {
		p.PassportsEarned = append(p.PassportsEarned, ev.Country)
	}
}

// mergeKnowledge appends items missing from the set and returns how many
// were new. The set keeps insertion order for stable persistence.
func mergeKnowledge(set *[]string, items []string) int {
	seen := make(map[string]bool, len(*set))
	for _, s := range *set {
		seen[s] = true
	}

	added := 0
	for _, item := range items {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		*set = append(*set, item)
		added++
	}
	return added
}
