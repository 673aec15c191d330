package progression

import (
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/spantrek/backend/internal/models"
)

// DailyChallengeCount is the size of a learner's daily challenge set.
const DailyChallengeCount = 3

// ErrEmptyChallengeCatalog is returned when challenge generation is asked to
// sample from an empty template catalog.
var ErrEmptyChallengeCatalog = errors.New("challenge template catalog is empty")

// ChallengeTemplate is an immutable catalog entry. The code prefix encodes
// the category; learners get snapshots, never references.
type ChallengeTemplate struct {
	Code        string
	Description string
	MaxProgress int
}

// ChallengeCategory is the closed set of challenge kinds derived from a
// template code prefix.
type ChallengeCategory int

const (
	ChallengeUnknown ChallengeCategory = iota
	ChallengeExperience                // EX — earn experience points
	ChallengeLessons                   // C  — complete lessons
	ChallengeAnyPractice               // P  — practice of any type
	ChallengeRandomPractice            // RP
	ChallengeVocabularyPractice        // VP
	ChallengeSentencePractice          // SP
	ChallengeListeningPractice         // LP
	ChallengeNewWords                  // NW — learn new words
	ChallengeNewSentences              // NS — learn new sentences
	ChallengeNewAudio                  // NA — learn new audio clips
)

// CategoryOf parses a template code into its category. Two-letter prefixes
// are checked before the single-letter ones so "NW4" never matches "N".
func CategoryOf(code string) ChallengeCategory {
	switch {
	case strings.HasPrefix(code, "EX"):
		return ChallengeExperience
	case strings.HasPrefix(code, "RP"):
		return ChallengeRandomPractice
	case strings.HasPrefix(code, "VP"):
		return ChallengeVocabularyPractice
	case strings.HasPrefix(code, "SP"):
		return ChallengeSentencePractice
	case strings.HasPrefix(code, "LP"):
		return ChallengeListeningPractice
	case strings.HasPrefix(code, "NW"):
		return ChallengeNewWords
	case strings.HasPrefix(code, "NS"):
		return ChallengeNewSentences
	case strings.HasPrefix(code, "NA"):
		return ChallengeNewAudio
	case strings.HasPrefix(code, "C"):
		return ChallengeLessons
	case strings.HasPrefix(code, "P"):
		return ChallengeAnyPractice
	default:
		return ChallengeUnknown
	}
}

// Practice types accepted by practice-completion events.
const (
	PracticeRandom     = "random"
	PracticeVocabulary = "vocabulary"
	PracticeSentence   = "sentence"
	PracticeListening  = "listening"
)

// ValidPracticeType reports whether t is a known practice type.
func ValidPracticeType(t string) bool {
	switch t {
	case PracticeRandom, PracticeVocabulary, PracticeSentence, PracticeListening:
		return true
	default:
		return false
	}
}

// CreateDailyChallenges replaces the learner's challenge set with a fresh
// random sample (without replacement) of templates, snapshotted with zero
// progress, and stamps the creation date. Fails cleanly on an empty catalog.
func CreateDailyChallenges(p *models.Progression, templates []ChallengeTemplate, today time.Time, rng *rand.Rand) error {
	if len(templates) == 0 {
		return ErrEmptyChallengeCatalog
	}

	n := DailyChallengeCount
	if n > len(templates) {
		n = len(templates)
	}

	instances := make([]models.DailyChallengeInstance, 0, n)
	for _, idx := range rng.Perm(len(templates))[:n] {
		t := templates[idx]
		instances = append(instances, models.DailyChallengeInstance{
			Code:        t.Code,
			Description: t.Description,
			MaxProgress: t.MaxProgress,
		})
	}

	day := today
	p.DailyChallenges = instances
	p.DailyChallengesDate = &day
	p.DailyChallengesCompleted = false
	return nil
}

// ChallengeEvent describes a learner action for challenge advancement:
// either a lesson completion (with counts of newly introduced content) or a
// practice completion of a given type.
type ChallengeEvent struct {
	Lesson       bool
	PracticeType string
	XPEarned     int
	NewWords     int
	NewSentences int
	NewAudio     int
}

// AdvanceChallenges applies an event to every unfinished challenge, marks
// those that reached max progress, and awards the set-completion bonus the
// first time all challenges are done. Returns the codes newly completed and
// whether the bonus fired; the caller re-runs achievement evaluation since
// the bonus changes experience.
func AdvanceChallenges(p *models.Progression, ev ChallengeEvent) (completed []string, bonus bool) {
	for i := range p.DailyChallenges {
		c := &p.DailyChallenges[i]
		if c.Completed {
			continue
		}

		c.Progress += increment(CategoryOf(c.Code), ev)
		if c.Progress >= c.MaxProgress {
			c.Completed = true
			completed = append(completed, c.Code)
		}
	}

	if len(p.DailyChallenges) > 0 && !p.DailyChallengesCompleted && allCompleted(p.DailyChallenges) {
		p.DailyChallengesCompleted = true
		AddExperience(p, DailyChallengeBonusXP)
		bonus = true
	}
	return completed, bonus
}

func increment(cat ChallengeCategory, ev ChallengeEvent) int {
	switch cat {
	case ChallengeExperience:
		return ev.XPEarned
	case ChallengeLessons:
		if ev.Lesson {
			return 1
		}
	case ChallengeAnyPractice:
		if !ev.Lesson && ev.PracticeType != "" {
			return 1
		}
	case ChallengeRandomPractice:
		if ev.PracticeType == PracticeRandom {
			return 1
		}
	case ChallengeVocabularyPractice:
		if ev.PracticeType == PracticeVocabulary {
			return 1
		}
	case ChallengeSentencePractice:
		if ev.PracticeType == PracticeSentence {
			return 1
		}
	case ChallengeListeningPractice:
		if ev.PracticeType == PracticeListening {
			return 1
		}
	case ChallengeNewWords:
		if ev.Lesson {
			return ev.NewWords
		}
	case ChallengeNewSentences:
		if ev.Lesson {
			return ev.NewSentences
		}
	case ChallengeNewAudio:
		if ev.Lesson {
			return ev.NewAudio
		}
	}
	return 0
}

func allCompleted(cs []models.DailyChallengeInstance) bool {
	for _, c := range cs {
		if !c.Completed {
			return false
		}
	}
	return true
}
