package leaderboard

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/spantrek/backend/internal/models"
)

// maxWindowSize bounds the window query parameter.
const maxWindowSize = 100

type Handler struct {
	store *Store
	cache *Cache
}

func NewHandler(store *Store, cache *Cache) *Handler {
	return &Handler{store: store, cache: cache}
}

func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

// LeaderboardResponse is the window plus the learner's own standing, which
// may fall outside the window for unranked learners.
type LeaderboardResponse struct {
	Rank    int           `json:"rank"`
	Entries []RankedEntry `json:"entries"`
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	size := DefaultWindowSize
	if raw := r.URL.Query().Get("window"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxWindowSize {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid window size"})
			return
		}
		size = n
	}

	if window, ok := h.cache.Get(r.Context(), userID, size); ok {
		writeJSON(w, http.StatusOK, LeaderboardResponse{Rank: rankIn(window, userID), Entries: window})
		return
	}

	entries, err := h.store.AllEntries()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get leaderboard"})
		return
	}

	window := Window(entries, userID, size)
	h.cache.Set(r.Context(), userID, size, window)

	writeJSON(w, http.StatusOK, LeaderboardResponse{
		Rank:    RankOf(entries, userID),
		Entries: window,
	})
}

func rankIn(window []RankedEntry, userID int64) int {
	for _, e := range window {
		if e.UserID == userID {
			return e.Rank
		}
	}
	return 0
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
