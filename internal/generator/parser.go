package generator

import (
	"encoding/json"
	"fmt"
	"strings"
)

// GeneratedLesson is the content shape the model is asked to produce. It
// maps directly onto models.Lesson content fields.
type GeneratedLesson struct {
	Title        string                `json:"title"`
	Vocabulary   []GeneratedVocabulary `json:"vocabulary"`
	Sentences    []GeneratedSentence   `json:"sentences"`
	Audio        []GeneratedAudio      `json:"audio"`
	UseOfSpanish int                   `json:"use_of_spanish"`
}

type GeneratedVocabulary struct {
	Word          string `json:"word"`
	Translation   string `json:"translation"`
	Pronunciation string `json:"pronunciation"`
}

type GeneratedSentence struct {
	Sentence    string `json:"sentence"`
	Translation string `json:"translation"`
}

type GeneratedAudio struct {
	Text string `json:"text"`
}

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

func ParseResponse(responseBody string) (*GeneratedLesson, error) {
	cleaned := stripCodeFences(responseBody)

	var lesson GeneratedLesson
	if err := json.Unmarshal([]byte(cleaned), &lesson); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateLesson(&lesson); err != nil {
		return nil, err
	}

	return &lesson, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

func validateLesson(lesson *GeneratedLesson) error {
	var errs []string

	if lesson.Title == "" {
		errs = append(errs, "empty title")
	}

	if len(lesson.Vocabulary) < 3 {
		errs = append(errs, fmt.Sprintf("expected at least 3 vocabulary items, got %d", len(lesson.Vocabulary)))
	}
	for i, v := range lesson.Vocabulary {
		if v.Word == "" {
			errs = append(errs, fmt.Sprintf("vocabulary %d: empty word", i+1))
		}
		if v.Translation == "" {
			errs = append(errs, fmt.Sprintf("vocabulary %d: empty translation", i+1))
		}
	}

	if len(lesson.Sentences) < 2 {
		errs = append(errs, fmt.Sprintf("expected at least 2 sentences, got %d", len(lesson.Sentences)))
	}
	for i, s := range lesson.Sentences {
		if s.Sentence == "" {
			errs = append(errs, fmt.Sprintf("sentence %d: empty sentence", i+1))
		}
		if s.Translation == "" {
			errs = append(errs, fmt.Sprintf("sentence %d: empty translation", i+1))
		}
	}

	if len(lesson.Audio) < 1 {
		errs = append(errs, "expected at least 1 audio line")
	}
	for i, a := range lesson.Audio {
		if a.Text == "" {
			errs = append(errs, fmt.Sprintf("audio %d: empty text", i+1))
		}
	}

	if lesson.UseOfSpanish < 1 || lesson.UseOfSpanish > 10 {
		errs = append(errs, fmt.Sprintf("use_of_spanish %d outside range [1, 10]", lesson.UseOfSpanish))
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
