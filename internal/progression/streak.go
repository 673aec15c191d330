package progression

import (
	"sort"
	"time"

	"github.com/spantrek/backend/internal/models"
)

// RecordActivity marks today as an active day and recomputes the streak.
// Recording the same day twice is a no-op. Today is always the injected
// clock date; the engine never accepts backdated insertions, but the streak
// walk recomputes from the full sorted set so seeded historic days count.
func RecordActivity(p *models.Progression, today time.Time) {
	day := today.Format(dateLayout)
	if p.HasActivityOn(day) {
		return
	}

	p.ActivityDays = append(p.ActivityDays, day)
	t := today
	p.LastActivityDate = &t

	p.DaysStreak = streakLength(p.ActivityDays, today)
	if p.DaysStreak > p.HighestStreak {
		p.HighestStreak = p.DaysStreak
	}
}

// streakLength returns the length of the maximal run of consecutive days
// ending at today, or at yesterday when today has no recorded activity.
func streakLength(days []string, today time.Time) int {
	if len(days) == 0 {
		return 0
	}

	set := make(map[string]bool, len(days))
	dates := make([]time.Time, 0, len(days))
	for _, d := range days {
		t, err := time.Parse(dateLayout, d)
		if err != nil {
			continue
		}
		if !set[d] {
			set[d] = true
			dates = append(dates, t)
		}
	}
	if len(dates) == 0 {
		return 0
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	// Seed the run at today, or at the latest date if it is exactly
	// yesterday. Anything older means the streak is broken.
	var cursor time.Time
	switch {
	case set[today.Format(dateLayout)]:
		cursor = today
	case dates[len(dates)-1].Equal(today.AddDate(0, 0, -1)):
		cursor = dates[len(dates)-1]
	default:
		return 0
	}

	streak := 1
	for {
		prev := cursor.AddDate(0, 0, -1)
		if !set[prev.Format(dateLayout)] {
			break
		}
		streak++
		cursor = prev
	}
	return streak
}
