package leaderboard

import "sort"

// DefaultWindowSize is how many rows a leaderboard view shows.
const DefaultWindowSize = 10

// Entry is one learner's standing input.
type Entry struct {
	UserID     int64  `json:"user_id"`
	Username   string `json:"username"`
	Experience int    `json:"experience"`
	Level      int    `json:"level"`
	DaysStreak int    `json:"days_streak"`
}

// RankedEntry is an Entry with its computed rank.
type RankedEntry struct {
	Rank int `json:"rank"`
	Entry
	IsCurrentUser bool `json:"is_current_user"`
}

// RankOf returns the 1-based rank of the learner among entries, counting
// only learners with experience. Equal totals share a rank. Returns 0 for
// learners with no experience.
func RankOf(entries []Entry, userID int64) int {
	var own int
	found := false
	for _, e := range entries {
		if e.UserID == userID {
			own = e.Experience
			found = true
			break
		}
	}
	if !found || own <= 0 {
		return 0
	}

	rank := 1
	for _, e := range entries {
		if e.Experience > own {
			rank++
		}
	}
	return rank
}

// Window returns up to size ranked rows centered on the learner's position.
// Learners with no experience are excluded; ties break on user id so the
// order is stable across requests. When the learner is unranked the top of
// the board is returned.
func Window(entries []Entry, userID int64, size int) []RankedEntry {
	if size <= 0 {
		size = DefaultWindowSize
	}

	ranked := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Experience > 0 {
			ranked = append(ranked, e)
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Experience != ranked[j].Experience {
			return ranked[i].Experience > ranked[j].Experience
		}
		return ranked[i].UserID < ranked[j].UserID
	})

	own := -1
	for i, e := range ranked {
		if e.UserID == userID {
			own = i
			break
		}
	}

	start := 0
	if own >= 0 {
		start = own - size/2
	}
	if start > len(ranked)-size {
		start = len(ranked) - size
	}
	if start < 0 {
		start = 0
	}

	end := start + size
	if end > len(ranked) {
		end = len(ranked)
	}

	out := make([]RankedEntry, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, RankedEntry{
			Rank:          rankAt(ranked, i),
			Entry:         ranked[i],
			IsCurrentUser: ranked[i].UserID == userID,
		})
	}
	return out
}

// rankAt returns the shared rank of position i in a sorted slice: one more
// than the count of strictly higher totals.
func rankAt(sorted []Entry, i int) int {
	rank := 1
	for j := 0; j < len(sorted); j++ {
		if sorted[j].Experience > sorted[i].Experience {
			rank++
		}
	}
	return rank
}
