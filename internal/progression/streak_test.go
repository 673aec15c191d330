package progression

import (
	"testing"
	"time"

	"github.com/spantrek/backend/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRecordActivity_ConsecutiveDays(t *testing.T) {
	p := &models.Progression{
		ActivityDays: []string{"2024-01-01", "2024-01-02"},
	}

	RecordActivity(p, day("2024-01-03"))

	if p.DaysStreak != 3 {
		t.Errorf("expected streak 3, got %d", p.DaysStreak)
	}
	if p.HighestStreak != 3 {
		t.Errorf("expected highest streak 3, got %d", p.HighestStreak)
	}
	if p.LastActivityDate == nil || !p.LastActivityDate.Equal(day("2024-01-03")) {
		t.Errorf("expected last activity 2024-01-03, got %v", p.LastActivityDate)
	}
}

func TestRecordActivity_GapBreaksStreak(t *testing.T) {
	p := &models.Progression{
		ActivityDays: []string{"2024-01-01"},
	}

	RecordActivity(p, day("2024-01-03"))

	if p.DaysStreak != 1 {
		t.Errorf("expected streak 1 after gap, got %d", p.DaysStreak)
	}
}

func TestRecordActivity_Idempotent(t *testing.T) {
	p := &models.Progression{
		ActivityDays: []string{"2024-01-01", "2024-01-02"},
	}

	RecordActivity(p, day("2024-01-03"))
	streak := p.DaysStreak
	days := len(p.ActivityDays)

	RecordActivity(p, day("2024-01-03"))

	if p.DaysStreak != streak {
		t.Errorf("second call changed streak: %d -> %d", streak, p.DaysStreak)
	}
	if len(p.ActivityDays) != days {
		t.Errorf("second call changed activity days: %d -> %d", days, len(p.ActivityDays))
	}
}

func TestRecordActivity_HighestStreakPreserved(t *testing.T) {
	p := &models.Progression{
		ActivityDays:  []string{"2024-02-01"},
		HighestStreak: 10,
	}

	RecordActivity(p, day("2024-02-10"))

	if p.DaysStreak != 1 {
		t.Errorf("expected streak 1, got %d", p.DaysStreak)
	}
	if p.HighestStreak != 10 {
		t.Errorf("expected highest streak to stay 10, got %d", p.HighestStreak)
	}
}

func TestRecordActivity_FirstEver(t *testing.T) {
	p := &models.Progression{}

	RecordActivity(p, day("2024-06-15"))

	if p.DaysStreak != 1 {
		t.Errorf("expected streak 1 for first activity, got %d", p.DaysStreak)
	}
	if len(p.ActivityDays) != 1 {
		t.Errorf("expected 1 activity day, got %d", len(p.ActivityDays))
	}
}

func TestStreakLength(t *testing.T) {
	tests := []struct {
		name  string
		days  []string
		today string
		want  int
	}{
		{"three consecutive", []string{"2024-01-01", "2024-01-02", "2024-01-03"}, "2024-01-03", 3},
		{"gap breaks run", []string{"2024-01-01", "2024-01-03"}, "2024-01-03", 1},
		{"yesterday keeps streak alive", []string{"2024-01-01", "2024-01-02"}, "2024-01-03", 2},
		{"older than yesterday", []string{"2024-01-01"}, "2024-01-05", 0},
		{"empty", nil, "2024-01-05", 0},
		{"duplicates ignored", []string{"2024-01-02", "2024-01-02", "2024-01-03"}, "2024-01-03", 2},
		{"unsorted input", []string{"2024-01-03", "2024-01-01", "2024-01-02"}, "2024-01-03", 3},
		{"garbage dates skipped", []string{"not-a-date", "2024-01-03"}, "2024-01-03", 1},
		{"month boundary", []string{"2024-01-31", "2024-02-01"}, "2024-02-01", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := streakLength(tt.days, day(tt.today)); got != tt.want {
				t.Errorf("streakLength(%v, %s) = %d, want %d", tt.days, tt.today, got, tt.want)
			}
		})
	}
}
