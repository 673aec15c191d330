package main

import (
	"context"
	"flag"
	"time"

	"github.com/spantrek/backend/internal/config"
	"github.com/spantrek/backend/internal/database"
	"github.com/spantrek/backend/internal/generator"
	"github.com/spantrek/backend/internal/lessons"
	"github.com/spantrek/backend/internal/models"
	"github.com/spantrek/backend/pkg/logger"
)

// stop is one landmark on the adventure route with themed lesson slots.
type stop struct {
	country  string
	landmark string
	themes   []string
}

// route is the full adventure map the seeder fills with content.
var route = []stop{
	{"poland", "szczecin", []string{"greetings and introductions", "asking for directions", "public transport"}},
	{"poland", "poznan", []string{"ordering food at a restaurant", "shopping at the market", "numbers and prices"}},
	{"poland", "warsaw", []string{"checking into a hotel", "talking about the weather", "making plans with friends"}},
	{"spain", "barcelona", []string{"at the beach", "museums and tickets", "tapas and drinks"}},
	{"spain", "madrid", []string{"asking locals for recommendations", "emergencies and the pharmacy", "football and free time"}},
	{"spain", "seville", []string{"flamenco and nightlife", "trains between cities", "saying goodbye"}},
}

func main() {
	useGenerator := flag.Bool("generate", false, "generate lesson content through the LLM instead of using the built-in sample set")
	country := flag.String("country", "", "limit seeding to one country")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Env)
	log := logger.With("seeder")

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	store := lessons.NewStore(db)

	seeded := 0
	for _, st := range route {
		if *country != "" && st.country != *country {
			continue
		}
		for order, theme := range st.themes {
			var lesson *models.Lesson
			if *useGenerator {
				generated, err := generateLesson(st, theme, order)
				if err != nil {
					log.Fatal().Err(err).Str("landmark", st.landmark).Int("order", order).Msg("failed to generate lesson")
				}
				lesson = generated
			} else {
				lesson = sampleLesson(st, theme, order)
			}

			if err := store.InsertLesson(lesson); err != nil {
				log.Fatal().Err(err).Str("landmark", st.landmark).Int("order", order).Msg("failed to insert lesson")
			}
			seeded++
			log.Info().Int64("id", lesson.ID).Str("country", st.country).Str("landmark", st.landmark).Int("order", order).Msg("lesson seeded")
		}
	}

	log.Info().Int("lessons", seeded).Msg("seeding complete")
}

func generateLesson(st stop, theme string, order int) (*models.Lesson, error) {
	gen := generator.NewGenerator()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	content, _, err := gen.GenerateLesson(ctx, st.country, st.landmark, theme, order)
	if err != nil {
		return nil, err
	}

	lesson := &models.Lesson{
		Country:      st.country,
		Landmark:     st.landmark,
		Order:        order,
		Title:        content.Title,
		UseOfSpanish: content.UseOfSpanish,
	}
	for _, v := range content.Vocabulary {
		lesson.Vocabulary = append(lesson.Vocabulary, models.VocabularyItem{
			Word:          v.Word,
			Translation:   v.Translation,
			Pronunciation: v.Pronunciation,
		})
	}
	for _, s := range content.Sentences {
		lesson.Sentences = append(lesson.Sentences, models.SentenceItem{
			Sentence:    s.Sentence,
			Translation: s.Translation,
		})
	}
	for _, a := range content.Audio {
		lesson.Audio = append(lesson.Audio, models.AudioItem{Text: a.Text})
	}
	return lesson, nil
}

// sampleLesson builds deterministic placeholder content so local stacks can
// run without an API key. One real-ish starter lesson per slot.
func sampleLesson(st stop, theme string, order int) *models.Lesson {
	starters := []models.VocabularyItem{
		{Word: "hola", Translation: "hello", Pronunciation: "OH-lah"},
		{Word: "gracias", Translation: "thank you", Pronunciation: "GRAH-syahs"},
		{Word: "por favor", Translation: "please", Pronunciation: "por fah-VOR"},
		{Word: "¿dónde?", Translation: "where?", Pronunciation: "DOHN-deh"},
		{Word: "la ciudad", Translation: "the city", Pronunciation: "lah syoo-DAHD"},
	}

	// Suffix the keys per slot so each lesson introduces distinct content
	// and the knowledge-set counters behave like real data.
	suffix := " (" + st.landmark + " " + string(rune('1'+order)) + ")"
	vocab := make([]models.VocabularyItem, len(starters))
	for i, v := range starters {
		vocab[i] = v
		vocab[i].Word = v.Word + suffix
	}

	return &models.Lesson{
		Country:    st.country,
		Landmark:   st.landmark,
		Order:      order,
		Title:      "Sample: " + theme,
		Vocabulary: vocab,
		Sentences: []models.SentenceItem{
			{Sentence: "Hola, ¿cómo estás?" + suffix, Translation: "Hello, how are you?"},
			{Sentence: "Muchas gracias por tu ayuda." + suffix, Translation: "Thank you very much for your help."},
			{Sentence: "¿Dónde está la estación?" + suffix, Translation: "Where is the station?"},
		},
		Audio: []models.AudioItem{
			{Text: "Bienvenidos a " + st.landmark + "."},
			{Text: "Hasta luego." + suffix},
		},
		UseOfSpanish: 3 + order,
	}
}
