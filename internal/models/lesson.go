package models

import "time"

// VocabularyItem is a single word introduced by a lesson.
type VocabularyItem struct {
	Word          string `json:"word"`
	Translation   string `json:"translation"`
	Pronunciation string `json:"pronunciation,omitempty"`
}

// SentenceItem is an example sentence introduced by a lesson.
type SentenceItem struct {
	Sentence    string `json:"sentence"`
	Translation string `json:"translation"`
}

// AudioItem is an audio clip; Text is the transcript the learner is
// tested on during listening practice.
type AudioItem struct {
	Text     string `json:"text"`
	AudioURL string `json:"audio_url,omitempty"`
}

// Lesson is a unit of adventure content, ordered within a landmark.
type Lesson struct {
	ID           int64            `json:"id"`
	Country      string           `json:"country"`
	Landmark     string           `json:"landmark"`
	Order        int              `json:"order"`
	Title        string           `json:"title"`
	Vocabulary   []VocabularyItem `json:"vocabulary"`
	Sentences    []SentenceItem   `json:"sentences"`
	Audio        []AudioItem      `json:"audio"`
	UseOfSpanish int              `json:"use_of_spanish"`
	CreatedAt    time.Time        `json:"created_at"`
}

// Words returns the distinct word keys introduced by the lesson.
func (l *Lesson) Words() []string {
	out := make([]string, 0, len(l.Vocabulary))
	for _, v := range l.Vocabulary {
		out = append(out, v.Word)
	}
	return out
}

// SentenceTexts returns the distinct sentence keys introduced by the lesson.
func (l *Lesson) SentenceTexts() []string {
	out := make([]string, 0, len(l.Sentences))
	for _, s := range l.Sentences {
		out = append(out, s.Sentence)
	}
	return out
}

// AudioTexts returns the distinct audio transcript keys introduced by the lesson.
func (l *Lesson) AudioTexts() []string {
	out := make([]string, 0, len(l.Audio))
	for _, a := range l.Audio {
		out = append(out, a.Text)
	}
	return out
}

// CountrySummary describes one country on the world map.
type CountrySummary struct {
	Name         string   `json:"name"`
	Landmarks    []string `json:"landmarks"`
	TotalLessons int      `json:"total_lessons"`
}

// LessonSummary is the list-view shape of a lesson.
type LessonSummary struct {
	ID       int64  `json:"id"`
	Country  string `json:"country"`
	Landmark string `json:"landmark"`
	Order    int    `json:"order"`
	Title    string `json:"title"`
}
