package progression

import (
	"math/rand"
	"testing"

	"github.com/spantrek/backend/internal/models"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestCreateDailyChallenges(t *testing.T) {
	p := &models.Progression{DailyChallengesCompleted: true}

	err := CreateDailyChallenges(p, DefaultChallengeTemplates(), day("2024-03-10"), testRNG())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(p.DailyChallenges) != DailyChallengeCount {
		t.Fatalf("expected %d challenges, got %d", DailyChallengeCount, len(p.DailyChallenges))
	}
	for _, c := range p.DailyChallenges {
		if c.Progress != 0 || c.Completed {
			t.Errorf("challenge %s not reset: progress=%d completed=%v", c.Code, c.Progress, c.Completed)
		}
		if c.MaxProgress <= 0 {
			t.Errorf("challenge %s has invalid max progress %d", c.Code, c.MaxProgress)
		}
	}

	seen := map[string]bool{}
	for _, c := range p.DailyChallenges {
		if seen[c.Code] {
			t.Errorf("duplicate challenge %s in one set", c.Code)
		}
		seen[c.Code] = true
	}

	if p.DailyChallengesDate == nil || p.DailyChallengesDate.Format(dateLayout) != "2024-03-10" {
		t.Errorf("expected challenge date 2024-03-10, got %v", p.DailyChallengesDate)
	}
	if p.DailyChallengesCompleted {
		t.Error("completion flag not cleared on regeneration")
	}
}

func TestCreateDailyChallenges_EmptyCatalog(t *testing.T) {
	p := &models.Progression{}

	err := CreateDailyChallenges(p, nil, day("2024-03-10"), testRNG())
	if err != ErrEmptyChallengeCatalog {
		t.Fatalf("expected ErrEmptyChallengeCatalog, got: %v", err)
	}
	if len(p.DailyChallenges) != 0 {
		t.Error("challenges created from empty catalog")
	}
}

func TestCreateDailyChallenges_SmallCatalog(t *testing.T) {
	p := &models.Progression{}
	templates := []ChallengeTemplate{{Code: "C1", Description: "one lesson", MaxProgress: 1}}

	if err := CreateDailyChallenges(p, templates, day("2024-03-10"), testRNG()); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(p.DailyChallenges) != 1 {
		t.Errorf("expected 1 challenge from 1-template catalog, got %d", len(p.DailyChallenges))
	}
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		code string
		want ChallengeCategory
	}{
		{"EX1", ChallengeExperience},
		{"C2", ChallengeLessons},
		{"P3", ChallengeAnyPractice},
		{"RP1", ChallengeRandomPractice},
		{"VP1", ChallengeVocabularyPractice},
		{"SP1", ChallengeSentencePractice},
		{"LP1", ChallengeListeningPractice},
		{"NW5", ChallengeNewWords},
		{"NS3", ChallengeNewSentences},
		{"NA3", ChallengeNewAudio},
		{"??", ChallengeUnknown},
	}
	for _, tt := range tests {
		if got := CategoryOf(tt.code); got != tt.want {
			t.Errorf("CategoryOf(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestAdvanceChallenges_PerCategory(t *testing.T) {
	tests := []struct {
		name string
		code string
		ev   ChallengeEvent
		want int
	}{
		{"experience from lesson", "EX1", ChallengeEvent{Lesson: true, XPEarned: 100}, 100},
		{"experience from practice", "EX1", ChallengeEvent{PracticeType: PracticeRandom, XPEarned: 25}, 25},
		{"lesson count", "C2", ChallengeEvent{Lesson: true, XPEarned: 100}, 1},
		{"lesson ignores practice", "C2", ChallengeEvent{PracticeType: PracticeRandom, XPEarned: 25}, 0},
		{"any practice", "P3", ChallengeEvent{PracticeType: PracticeSentence, XPEarned: 25}, 1},
		{"any practice ignores lesson", "P3", ChallengeEvent{Lesson: true, XPEarned: 100}, 0},
		{"typed practice match", "VP1", ChallengeEvent{PracticeType: PracticeVocabulary, XPEarned: 25}, 1},
		{"typed practice mismatch", "VP1", ChallengeEvent{PracticeType: PracticeSentence, XPEarned: 25}, 0},
		{"new words", "NW5", ChallengeEvent{Lesson: true, NewWords: 4}, 4},
		{"new sentences", "NS3", ChallengeEvent{Lesson: true, NewSentences: 2}, 2},
		{"new audio", "NA3", ChallengeEvent{Lesson: true, NewAudio: 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &models.Progression{
				DailyChallenges: []models.DailyChallengeInstance{
					{Code: tt.code, MaxProgress: 1000},
				},
			}
			AdvanceChallenges(p, tt.ev)
			if got := p.DailyChallenges[0].Progress; got != tt.want {
				t.Errorf("progress = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAdvanceChallenges_CompletionBonus(t *testing.T) {
	p := &models.Progression{
		Level: 1,
		DailyChallenges: []models.DailyChallengeInstance{
			{Code: "C1", Progress: 0, MaxProgress: 1},
			{Code: "EX1", Progress: 50, MaxProgress: 100},
			{Code: "NW5", Progress: 3, MaxProgress: 5},
		},
	}

	completed, bonus := AdvanceChallenges(p, ChallengeEvent{Lesson: true, XPEarned: 100, NewWords: 2})

	if len(completed) != 3 {
		t.Fatalf("expected 3 completed challenges, got %d: %v", len(completed), completed)
	}
	if !bonus {
		t.Fatal("expected set-completion bonus")
	}
	if !p.DailyChallengesCompleted {
		t.Error("completion flag not set")
	}
	if p.Experience != DailyChallengeBonusXP {
		t.Errorf("expected bonus XP %d, got %d", DailyChallengeBonusXP, p.Experience)
	}
}

func TestAdvanceChallenges_BonusAwardedOnce(t *testing.T) {
	p := &models.Progression{
		Level: 1,
		DailyChallenges: []models.DailyChallengeInstance{
			{Code: "EX1", Progress: 100, MaxProgress: 100, Completed: true},
		},
		DailyChallengesCompleted: true,
		Experience:               DailyChallengeBonusXP,
	}

	_, bonus := AdvanceChallenges(p, ChallengeEvent{Lesson: true, XPEarned: 100})

	if bonus {
		t.Error("bonus awarded twice")
	}
	if p.Experience != DailyChallengeBonusXP {
		t.Errorf("experience changed: got %d", p.Experience)
	}
}

func TestAdvanceChallenges_CompletedChallengeFrozen(t *testing.T) {
	p := &models.Progression{
		DailyChallenges: []models.DailyChallengeInstance{
			{Code: "C1", Progress: 1, MaxProgress: 1, Completed: true},
			{Code: "NW5", Progress: 0, MaxProgress: 5},
		},
	}

	completed, _ := AdvanceChallenges(p, ChallengeEvent{Lesson: true, XPEarned: 100, NewWords: 1})

	if p.DailyChallenges[0].Progress != 1 {
		t.Errorf("completed challenge progressed: %d", p.DailyChallenges[0].Progress)
	}
	for _, code := range completed {
		if code == "C1" {
			t.Error("already completed challenge reported again")
		}
	}
}

func TestAdvanceChallenges_EmptySetNoBonus(t *testing.T) {
	p := &models.Progression{}

	_, bonus := AdvanceChallenges(p, ChallengeEvent{Lesson: true, XPEarned: 100})

	if bonus || p.DailyChallengesCompleted {
		t.Error("empty challenge set treated as completed")
	}
}
