package lessons

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spantrek/backend/internal/models"
)

// ErrNotFound is returned when a lesson id does not exist.
var ErrNotFound = errors.New("lesson not found")

// Store reads and writes the lesson catalog.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// GetLesson loads one lesson with its full content.
func (s *Store) GetLesson(id int64) (*models.Lesson, error) {
	l := &models.Lesson{}
	var vocabulary, sentences, audio []byte

	err := s.db.QueryRow(`
		SELECT id, country, landmark, ord, title,
		       vocabulary, sentences, audio, use_of_spanish, created_at
		FROM lessons
		WHERE id = $1`, id).Scan(
		&l.ID, &l.Country, &l.Landmark, &l.Order, &l.Title,
		&vocabulary, &sentences, &audio, &l.UseOfSpanish, &l.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load lesson: %w", err)
	}

	if err := json.Unmarshal(vocabulary, &l.Vocabulary); err != nil {
		return nil, fmt.Errorf("failed to decode lesson vocabulary: %w", err)
	}
	if err := json.Unmarshal(sentences, &l.Sentences); err != nil {
		return nil, fmt.Errorf("failed to decode lesson sentences: %w", err)
	}
	if err := json.Unmarshal(audio, &l.Audio); err != nil {
		return nil, fmt.Errorf("failed to decode lesson audio: %w", err)
	}
	return l, nil
}

// TotalsFor returns how many lessons exist for the country and for the
// landmark within it.
func (s *Store) TotalsFor(country, landmark string) (int, int, error) {
	var countryTotal, landmarkTotal int
	err := s.db.QueryRow(`
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE landmark = $2)
		FROM lessons
		WHERE country = $1`, country, landmark).Scan(&countryTotal, &landmarkTotal)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count lessons: %w", err)
	}
	return countryTotal, landmarkTotal, nil
}

// CountryTotals returns the lesson count per country.
func (s *Store) CountryTotals() (map[string]int, error) {
	rows, err := s.db.Query(`
		SELECT country, COUNT(*)
		FROM lessons
		GROUP BY country`)
	if err != nil {
		return nil, fmt.Errorf("failed to count lessons by country: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]int)
	for rows.Next() {
		var country string
		var count int
		if err := rows.Scan(&country, &count); err != nil {
			return nil, fmt.Errorf("failed to scan country count: %w", err)
		}
		totals[country] = count
	}
	return totals, rows.Err()
}

// ListCountries returns every country with its landmarks in lesson order.
func (s *Store) ListCountries() ([]models.CountrySummary, error) {
	rows, err := s.db.Query(`
		SELECT country, landmark, COUNT(*)
		FROM lessons
		GROUP BY country, landmark
		ORDER BY country, MIN(ord)`)
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	defer rows.Close()

	var out []models.CountrySummary
	index := make(map[string]int)
	for rows.Next() {
		var country, landmark string
		var count int
		if err := rows.Scan(&country, &landmark, &count); err != nil {
			return nil, fmt.Errorf("failed to scan country row: %w", err)
		}

		i, ok := index[country]
		if !ok {
			i = len(out)
			index[country] = i
			out = append(out, models.CountrySummary{Name: country})
		}
		out[i].Landmarks = append(out[i].Landmarks, landmark)
		out[i].TotalLessons += count
	}
	return out, rows.Err()
}

// ListByCountry returns the lesson summaries for a country, landmark order
// then lesson order.
func (s *Store) ListByCountry(country string) ([]models.LessonSummary, error) {
	rows, err := s.db.Query(`
		SELECT id, country, landmark, ord, title
		FROM lessons
		WHERE country = $1
		ORDER BY landmark, ord`, country)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	defer rows.Close()

	var out []models.LessonSummary
	for rows.Next() {
		var l models.LessonSummary
		if err := rows.Scan(&l.ID, &l.Country, &l.Landmark, &l.Order, &l.Title); err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// InsertLesson writes one lesson; existing (country, landmark, ord) rows are
// replaced so the seeder can be re-run.
func (s *Store) InsertLesson(l *models.Lesson) error {
	vocabulary, err := json.Marshal(l.Vocabulary)
	if err != nil {
		return fmt.Errorf("failed to encode vocabulary: %w", err)
	}
	sentences, err := json.Marshal(l.Sentences)
	if err != nil {
		return fmt.Errorf("failed to encode sentences: %w", err)
	}
	audio, err := json.Marshal(l.Audio)
	if err != nil {
		return fmt.Errorf("failed to encode audio: %w", err)
	}

	return s.db.QueryRow(`
		INSERT INTO lessons (country, landmark, ord, title, vocabulary, sentences, audio, use_of_spanish)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (country, landmark, ord) DO UPDATE
		SET title = EXCLUDED.title,
		    vocabulary = EXCLUDED.vocabulary,
		    sentences = EXCLUDED.sentences,
		    audio = EXCLUDED.audio,
		    use_of_spanish = EXCLUDED.use_of_spanish
		RETURNING id`,
		l.Country, l.Landmark, l.Order, l.Title,
		vocabulary, sentences, audio, l.UseOfSpanish,
	).Scan(&l.ID)
}
