package generator

import (
	"encoding/json"
	"errors"
	"testing"
)

func validLessonJSON() string {
	lesson := GeneratedLesson{
		Title: "Ordering Coffee at the Plaza",
		Vocabulary: []GeneratedVocabulary{
			{Word: "el café", Translation: "coffee", Pronunciation: "el kah-FEH"},
			{Word: "la cuenta", Translation: "the bill", Pronunciation: "lah KWEN-tah"},
			{Word: "la mesa", Translation: "table", Pronunciation: "lah MEH-sah"},
			{Word: "pedir", Translation: "to order", Pronunciation: "peh-DEER"},
		},
		Sentences: []GeneratedSentence{
			{Sentence: "Quisiera un café con leche.", Translation: "I would like a coffee with milk."},
			{Sentence: "¿Me trae la cuenta?", Translation: "Could you bring me the bill?"},
		},
		Audio: []GeneratedAudio{
			{Text: "Buenos días, ¿qué desea tomar?"},
		},
		UseOfSpanish: 5,
	}
	data, _ := json.Marshal(lesson)
	return string(data)
}

func TestParseResponse_ValidJSON(t *testing.T) {
	lesson, err := ParseResponse(validLessonJSON())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if lesson.Title == "" {
		t.Error("expected non-empty title")
	}
	if len(lesson.Vocabulary) != 4 {
		t.Errorf("expected 4 vocabulary items, got %d", len(lesson.Vocabulary))
	}
	if lesson.UseOfSpanish != 5 {
		t.Errorf("expected use_of_spanish 5, got %d", lesson.UseOfSpanish)
	}
}

func TestParseResponse_MarkdownFences(t *testing.T) {
	input := "```json\n" + validLessonJSON() + "\n```"

	lesson, err := ParseResponse(input)
	if err != nil {
		t.Fatalf("expected no error with markdown fences, got: %v", err)
	}
	if len(lesson.Sentences) != 2 {
		t.Errorf("expected 2 sentences, got %d", len(lesson.Sentences))
	}
}

func TestParseResponse_InvalidJSON(t *testing.T) {
	if _, err := ParseResponse("not json at all"); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestParseResponse_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GeneratedLesson)
	}{
		{"empty title", func(l *GeneratedLesson) { l.Title = "" }},
		{"too few vocabulary", func(l *GeneratedLesson) { l.Vocabulary = l.Vocabulary[:2] }},
		{"empty word", func(l *GeneratedLesson) { l.Vocabulary[0].Word = "" }},
		{"empty translation", func(l *GeneratedLesson) { l.Vocabulary[1].Translation = "" }},
		{"too few sentences", func(l *GeneratedLesson) { l.Sentences = l.Sentences[:1] }},
		{"no audio", func(l *GeneratedLesson) { l.Audio = nil }},
		{"use_of_spanish too low", func(l *GeneratedLesson) { l.UseOfSpanish = 0 }},
		{"use_of_spanish too high", func(l *GeneratedLesson) { l.UseOfSpanish = 11 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lesson GeneratedLesson
			if err := json.Unmarshal([]byte(validLessonJSON()), &lesson); err != nil {
				t.Fatalf("failed to build fixture: %v", err)
			}
			tt.mutate(&lesson)

			data, _ := json.Marshal(lesson)
			_, err := ParseResponse(string(data))
			if err == nil {
				t.Fatal("expected validation error")
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T: %v", err, err)
			}
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no fences", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}  ", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFences(tt.input); got != tt.want {
				t.Errorf("stripCodeFences(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMockClientProducesValidLesson(t *testing.T) {
	resp, err := NewMockClient().Generate(t.Context(), "system", "user")
	if err != nil {
		t.Fatalf("mock generate failed: %v", err)
	}

	lesson, err := ParseResponse(resp.Content)
	if err != nil {
		t.Fatalf("mock content failed validation: %v", err)
	}
	if len(lesson.Vocabulary) < 3 {
		t.Errorf("expected at least 3 vocabulary items, got %d", len(lesson.Vocabulary))
	}
}
