package progression

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/spantrek/backend/internal/models"
	"github.com/spantrek/backend/pkg/logger"
)

// LessonCatalog is the slice of the lesson store the engine needs: single
// lessons and region totals for percentage math.
type LessonCatalog interface {
	GetLesson(id int64) (*models.Lesson, error)
	TotalsFor(country, landmark string) (countryTotal, landmarkTotal int, err error)
	CountryTotals() (map[string]int, error)
}

// Service drives the progression engine against persisted learner state.
type Service struct {
	store   *Store
	lessons LessonCatalog
	catalog Catalog
	clock   Clock
	rng     *rand.Rand
	log     zerolog.Logger
}

func NewService(store *Store, lessons LessonCatalog, catalog Catalog, clock Clock) *Service {
	return &Service{
		store:   store,
		lessons: lessons,
		catalog: catalog,
		clock:   clock,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		log:     logger.With("progression"),
	}
}

// GetProgression returns the learner's state, refreshing stale daily
// challenges first so the client never sees yesterday's set.
func (s *Service) GetProgression(userID int64) (*models.ProgressionResponse, error) {
	p, err := s.store.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureDailyChallenges(p); err != nil {
		return nil, err
	}

	totals, err := s.lessons.CountryTotals()
	if err != nil {
		return nil, err
	}
	percentages := make(map[string]int, len(p.CountryProgress))
	for country, progress := range p.CountryProgress {
		percentages[country] = RegionPercent(progress, totals[country])
	}

	return &models.ProgressionResponse{
		Experience:               p.Experience,
		Level:                    p.Level,
		DaysStreak:               p.DaysStreak,
		HighestStreak:            p.HighestStreak,
		AdventureProgress:        p.AdventureProgress,
		UseOfSpanish:             p.UseOfSpanish,
		WordsLearned:             len(p.WordsLearned),
		SentencesLearned:         len(p.SentencesLearned),
		AudioLearned:             len(p.AudioLearned),
		CountryProgress:          p.CountryProgress,
		LandmarkProgress:         p.LandmarkProgress,
		CountryPercentages:       percentages,
		PassportsEarned:          p.PassportsEarned,
		DailyChallenges:          p.DailyChallenges,
		DailyChallengesCompleted: p.DailyChallengesCompleted,
		EarnedAchievements:       p.EarnedAchievements,
	}, nil
}

// CompleteLesson applies a lesson completion end to end and persists the
// resulting snapshot.
func (s *Service) CompleteLesson(userID, lessonID int64) (*models.LessonCompleteResponse, error) {
	lesson, err := s.lessons.GetLesson(lessonID)
	if err != nil {
		return nil, err
	}

	p, err := s.store.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureDailyChallenges(p); err != nil {
		return nil, err
	}

	alreadyCompleted, err := s.store.HasCompletedLesson(userID, lessonID)
	if err != nil {
		return nil, err
	}

	countryTotal, landmarkTotal, err := s.lessons.TotalsFor(lesson.Country, lesson.Landmark)
	if err != nil {
		return nil, err
	}
	env, err := s.env()
	if err != nil {
		return nil, err
	}

	result := ApplyLessonCompletion(p, LessonEvent{
		Country:          lesson.Country,
		Landmark:         lesson.Landmark,
		Order:            lesson.Order,
		Words:            lesson.Words(),
		Sentences:        lesson.SentenceTexts(),
		AudioTexts:       lesson.AudioTexts(),
		UseOfSpanish:     lesson.UseOfSpanish,
		CountryTotal:     countryTotal,
		LandmarkTotal:    landmarkTotal,
		AlreadyCompleted: alreadyCompleted,
	}, s.catalog, env)

	if !result.Replay {
		if err := s.store.MarkLessonCompleted(userID, lessonID); err != nil {
			return nil, err
		}
	}
	if err := s.store.Update(p); err != nil {
		return nil, err
	}

	eventType := "lesson_completed"
	if result.Replay {
		eventType = "lesson_replayed"
	}
	if err := s.store.LogXPEvent(userID, eventType, result.XPAwarded, map[string]any{
		"lesson_id": lessonID,
		"country":   lesson.Country,
		"landmark":  lesson.Landmark,
	}); err != nil {
		s.log.Error().Err(err).Int64("user_id", userID).Msg("failed to log xp event")
	}

	s.log.Info().
		Int64("user_id", userID).
		Int64("lesson_id", lessonID).
		Bool("replay", result.Replay).
		Int("xp", result.XPAwarded).
		Strs("achievements", result.NewAchievements).
		Msg("lesson completed")

	return &models.LessonCompleteResponse{
		XPAwarded:                result.XPAwarded,
		Replay:                   result.Replay,
		Experience:               p.Experience,
		Level:                    p.Level,
		DaysStreak:               p.DaysStreak,
		AdventureProgress:        p.AdventureProgress,
		PassportsEarned:          p.PassportsEarned,
		AchievementsUnlocked:     result.NewAchievements,
		ChallengesCompleted:      result.ChallengesCompleted,
		DailyChallengesCompleted: p.DailyChallengesCompleted,
		DailyChallenges:          p.DailyChallenges,
	}, nil
}

// ErrInvalidPracticeType signals a practice completion with an unknown type.
var ErrInvalidPracticeType = fmt.Errorf("invalid practice type")

// CompletePractice applies a practice completion and persists the snapshot.
func (s *Service) CompletePractice(userID int64, practiceType string) (*models.PracticeCompleteResponse, error) {
	if !ValidPracticeType(practiceType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPracticeType, practiceType)
	}

	p, err := s.store.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureDailyChallenges(p); err != nil {
		return nil, err
	}
	env, err := s.env()
	if err != nil {
		return nil, err
	}

	result := ApplyPracticeCompletion(p, practiceType, s.catalog, env)

	if err := s.store.Update(p); err != nil {
		return nil, err
	}
	if err := s.store.LogXPEvent(userID, "practice_completed", result.XPAwarded, map[string]any{
		"practice_type": practiceType,
	}); err != nil {
		s.log.Error().Err(err).Int64("user_id", userID).Msg("failed to log xp event")
	}

	return &models.PracticeCompleteResponse{
		XPAwarded:                result.XPAwarded,
		Experience:               p.Experience,
		Level:                    p.Level,
		DaysStreak:               p.DaysStreak,
		AchievementsUnlocked:     result.NewAchievements,
		ChallengesCompleted:      result.ChallengesCompleted,
		DailyChallengesCompleted: p.DailyChallengesCompleted,
		DailyChallenges:          p.DailyChallenges,
	}, nil
}

// AchievementsStatus returns the whole catalog flagged with the learner's
// earned state, highest reward first.
func (s *Service) AchievementsStatus(userID int64) ([]models.AchievementStatus, error) {
	p, err := s.store.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	out := make([]models.AchievementStatus, 0, len(s.catalog.Achievements))
	for _, def := range s.catalog.Achievements {
		out = append(out, models.AchievementStatus{
			Code:            def.Code,
			Name:            def.Name,
			Description:     def.Description,
			Icon:            def.Icon,
			ExperienceAward: def.ExperienceAward,
			Earned:          p.HasAchievement(def.Code),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExperienceAward > out[j].ExperienceAward
	})
	return out, nil
}

// DailyChallenges returns the learner's current set, regenerating if stale.
func (s *Service) DailyChallenges(userID int64) ([]models.DailyChallengeInstance, error) {
	p, err := s.store.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureDailyChallenges(p); err != nil {
		return nil, err
	}
	return p.DailyChallenges, nil
}

// RegenerateAllDailyChallenges rebuilds the challenge set for every active
// learner. Run by the nightly scheduler; the lazy path in
// ensureDailyChallenges covers learners it misses.
func (s *Service) RegenerateAllDailyChallenges() {
	ids, err := s.store.ActiveLearnerIDs()
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list learners for challenge refresh")
		return
	}

	today := s.clock.Today()
	refreshed := 0
	for _, id := range ids {
		p, err := s.store.Get(id)
		if err != nil {
			s.log.Error().Err(err).Int64("user_id", id).Msg("failed to load progression for refresh")
			continue
		}
		if !StaleChallengeDate(p, today) {
			continue
		}
		if err := CreateDailyChallenges(p, s.catalog.Challenges, today, s.rng); err != nil {
			s.log.Error().Err(err).Msg("failed to generate daily challenges")
			return
		}
		if err := s.store.Update(p); err != nil {
			s.log.Error().Err(err).Int64("user_id", id).Msg("failed to save refreshed challenges")
			continue
		}
		refreshed++
	}
	s.log.Info().Int("learners", refreshed).Msg("daily challenges refreshed")
}

// ensureDailyChallenges regenerates the learner's set when it is missing or
// stamped with an earlier date. Idempotent within a day. Learners who have
// not started the adventure get no challenges; the templates assume
// unlocked content.
func (s *Service) ensureDailyChallenges(p *models.Progression) error {
	if p.AdventureProgress == 0 {
		return nil
	}
	today := s.clock.Today()
	if !StaleChallengeDate(p, today) {
		return nil
	}
	if err := CreateDailyChallenges(p, s.catalog.Challenges, today, s.rng); err != nil {
		return err
	}
	return s.store.Update(p)
}

func (s *Service) env() (Env, error) {
	totals, err := s.lessons.CountryTotals()
	if err != nil {
		return Env{}, err
	}
	return Env{
		Today:         s.clock.Today(),
		Hour:          s.clock.Hour(),
		CountryTotals: totals,
	}, nil
}
