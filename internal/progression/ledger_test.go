package progression

import (
	"testing"

	"github.com/spantrek/backend/internal/models"
)

func newLearner() *models.Progression {
	return &models.Progression{
		Level:            1,
		CountryProgress:  map[string]int{},
		LandmarkProgress: map[string]int{},
	}
}

func lessonEvent() LessonEvent {
	return LessonEvent{
		Country:       "poland",
		Landmark:      "szczecin",
		Order:         0,
		Words:         []string{"el café", "la mesa"},
		Sentences:     []string{"Quisiera un café."},
		AudioTexts:    []string{"Buenos días."},
		UseOfSpanish:  5,
		CountryTotal:  9,
		LandmarkTotal: 3,
	}
}

func testEnv() Env {
	return Env{
		Today:         day("2024-03-10"),
		Hour:          14,
		CountryTotals: map[string]int{"poland": 9, "spain": 12},
	}
}

func TestApplyLessonCompletion_FirstLesson(t *testing.T) {
	p := newLearner()

	result := ApplyLessonCompletion(p, lessonEvent(), Catalog{}, testEnv())

	if result.XPAwarded != 100 {
		t.Errorf("expected 100 XP, got %d", result.XPAwarded)
	}
	if result.Replay {
		t.Error("first completion flagged as replay")
	}
	if p.Experience != 100 {
		t.Errorf("expected experience 100, got %d", p.Experience)
	}
	if p.AdventureProgress != 1 {
		t.Errorf("expected adventure progress 1, got %d", p.AdventureProgress)
	}
	if p.UseOfSpanish != 5 {
		t.Errorf("expected use of spanish 5, got %d", p.UseOfSpanish)
	}
	if p.LandmarkProgress["szczecin"] != 1 {
		t.Errorf("expected landmark progress 1, got %d", p.LandmarkProgress["szczecin"])
	}
	if p.CountryProgress["poland"] != 1 {
		t.Errorf("expected country progress 1, got %d", p.CountryProgress["poland"])
	}
	if len(p.WordsLearned) != 2 || len(p.SentencesLearned) != 1 || len(p.AudioLearned) != 1 {
		t.Errorf("knowledge sets wrong: %d words, %d sentences, %d audio",
			len(p.WordsLearned), len(p.SentencesLearned), len(p.AudioLearned))
	}
	if p.DaysStreak != 1 {
		t.Errorf("expected streak 1, got %d", p.DaysStreak)
	}
}

func TestApplyLessonCompletion_LevelUp(t *testing.T) {
	p := newLearner()
	p.Experience = 450

	ApplyLessonCompletion(p, lessonEvent(), Catalog{}, testEnv())

	if p.Experience != 550 {
		t.Errorf("expected experience 550, got %d", p.Experience)
	}
	if p.Level != 2 {
		t.Errorf("expected level 2, got %d", p.Level)
	}
}

func TestApplyLessonCompletion_Replay(t *testing.T) {
	p := newLearner()
	ev := lessonEvent()
	ApplyLessonCompletion(p, ev, Catalog{}, testEnv())
	before := *p

	ev.AlreadyCompleted = true
	result := ApplyLessonCompletion(p, ev, Catalog{}, testEnv())

	if result.XPAwarded != 50 || !result.Replay {
		t.Errorf("expected 50 XP replay, got %d (replay=%v)", result.XPAwarded, result.Replay)
	}
	if p.Experience != before.Experience+50 {
		t.Errorf("expected experience %d, got %d", before.Experience+50, p.Experience)
	}
	if p.AdventureProgress != before.AdventureProgress {
		t.Error("replay advanced adventure progress")
	}
	if len(p.WordsLearned) != len(before.WordsLearned) {
		t.Error("replay grew knowledge sets")
	}
	if p.LandmarkProgress["szczecin"] != before.LandmarkProgress["szczecin"] {
		t.Error("replay moved landmark progress")
	}
}

func TestApplyLessonCompletion_RegionCap(t *testing.T) {
	p := newLearner()
	ev := lessonEvent()
	ev.CountryTotal = 2
	ev.LandmarkTotal = 1

	// Orders past the landmark's total must not push either counter
	// beyond the catalog totals.
	for i := 0; i < 5; i++ {
		ev.Order = i
		ApplyLessonCompletion(p, ev, Catalog{}, testEnv())
	}

	if p.LandmarkProgress["szczecin"] > 1 {
		t.Errorf("landmark counter %d exceeds total 1", p.LandmarkProgress["szczecin"])
	}
	if p.CountryProgress["poland"] > 2 {
		t.Errorf("country counter %d exceeds total 2", p.CountryProgress["poland"])
	}
}

func TestApplyLessonCompletion_PassportAtFullCompletion(t *testing.T) {
	p := newLearner()
	ev := lessonEvent()
	ev.CountryTotal = 1
	ev.LandmarkTotal = 1

	ApplyLessonCompletion(p, ev, Catalog{}, testEnv())

	if !p.HasPassport("poland") {
		t.Error("expected poland passport at 100% completion")
	}

	// A replay must not duplicate the passport.
	ev.AlreadyCompleted = true
	ApplyLessonCompletion(p, ev, Catalog{}, testEnv())
	if len(p.PassportsEarned) != 1 {
		t.Errorf("expected 1 passport, got %d", len(p.PassportsEarned))
	}
}

func TestApplyLessonCompletion_KnowledgeSetsDeduplicate(t *testing.T) {
	p := newLearner()
	p.WordsLearned = []string{"el café"}

	ev := lessonEvent()
	ApplyLessonCompletion(p, ev, Catalog{}, testEnv())

	if len(p.WordsLearned) != 2 {
		t.Errorf("expected 2 distinct words, got %d: %v", len(p.WordsLearned), p.WordsLearned)
	}
}

func TestApplyLessonCompletion_SkipAheadPullsLandmarkForward(t *testing.T) {
	p := newLearner()
	ev := lessonEvent()
	ev.Order = 2

	ApplyLessonCompletion(p, ev, Catalog{}, testEnv())

	if p.LandmarkProgress["szczecin"] != 3 {
		t.Errorf("expected landmark progress 3 after order-2 lesson, got %d", p.LandmarkProgress["szczecin"])
	}
}

func TestApplyPracticeCompletion(t *testing.T) {
	p := newLearner()

	result := ApplyPracticeCompletion(p, PracticeVocabulary, Catalog{}, testEnv())

	if result.XPAwarded != 25 {
		t.Errorf("expected 25 XP, got %d", result.XPAwarded)
	}
	if p.Experience != 25 {
		t.Errorf("expected experience 25, got %d", p.Experience)
	}
	if p.DaysStreak != 1 {
		t.Errorf("expected streak 1, got %d", p.DaysStreak)
	}
	if p.AdventureProgress != 0 {
		t.Error("practice advanced adventure progress")
	}
}

func TestLevelingInvariantUnderGrantSequence(t *testing.T) {
	p := newLearner()

	amounts := []int{100, 25, 75, 500, 50, 1200, 25}
	for _, amt := range amounts {
		AddExperience(p, amt)
		want := p.Experience/LevelExperienceUnit + 1
		if p.Level != want {
			t.Fatalf("after %d total XP: level %d, want %d", p.Experience, p.Level, want)
		}
	}
}

func TestRegionPercent(t *testing.T) {
	tests := []struct {
		progress, total, want int
	}{
		{0, 10, 0},
		{5, 10, 50},
		{10, 10, 100},
		{1, 3, 33},
		{3, 0, 0},
	}
	for _, tt := range tests {
		if got := RegionPercent(tt.progress, tt.total); got != tt.want {
			t.Errorf("RegionPercent(%d, %d) = %d, want %d", tt.progress, tt.total, got, tt.want)
		}
	}
}
