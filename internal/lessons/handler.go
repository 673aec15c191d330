package lessons

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/spantrek/backend/internal/models"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) ListCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.store.ListCountries()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list countries"})
		return
	}
	writeJSON(w, http.StatusOK, countries)
}

func (h *Handler) ListCountryLessons(w http.ResponseWriter, r *http.Request) {
	country := mux.Vars(r)["country"]

	lessons, err := h.store.ListByCountry(country)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list lessons"})
		return
	}
	if len(lessons) == 0 {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Country not found"})
		return
	}
	writeJSON(w, http.StatusOK, lessons)
}

func (h *Handler) GetLesson(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid lesson id"})
		return
	}

	lesson, err := h.store.GetLesson(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Lesson not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get lesson"})
		return
	}
	writeJSON(w, http.StatusOK, lesson)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
