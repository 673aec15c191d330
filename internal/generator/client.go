package generator

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
	"github.com/rs/zerolog"

	"github.com/spantrek/backend/pkg/logger"
)

// LLMClient is the interface both generator implementations satisfy.
type LLMClient interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error)
}

// LLMResponse holds the raw response content and token usage.
type LLMResponse struct {
	Content      string
	PromptTokens int
	OutputTokens int
}

// Generator wraps an LLMClient and adds lesson-specific methods.
type Generator struct {
	llm   LLMClient
	model string
	log   zerolog.Logger
}

func NewGenerator() *Generator {
	var llm LLMClient
	model := "mock"
	log := logger.With("generator")

	if os.Getenv("MOCK_GENERATOR") == "true" {
		llm = NewMockClient()
		log.Info().Msg("generator using mock data")
	} else {
		model = os.Getenv("ANTHROPIC_MODEL")
		if model == "" {
			model = "claude-sonnet-4-20250514"
		}
		llm = NewAPIClient(model)
		log.Info().Str("model", model).Msg("generator using Anthropic API")
	}

	return &Generator{llm: llm, model: model, log: log}
}

func (g *Generator) ModelName() string {
	return g.model
}

// GenerateLesson produces one lesson's content for a landmark stop.
func (g *Generator) GenerateLesson(ctx context.Context, country, landmark, theme string, order int) (*GeneratedLesson, *LLMResponse, error) {
	systemPrompt := LessonSystemPrompt()
	userPrompt := BuildLessonUserPrompt(country, landmark, theme, order)

	resp, err := g.llm.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, nil, fmt.Errorf("generate lesson: %w", err)
	}

	lesson, err := ParseResponse(resp.Content)
	if err != nil {
		return nil, resp, fmt.Errorf("parse lesson response: %w", err)
	}

	return lesson, resp, nil
}

// ── APIClient — Anthropic SDK (Production) ─────────────────

type APIClient struct {
	client *anthropic.Client
	model  string
	log    zerolog.Logger
}

func NewAPIClient(model string) *APIClient {
	client := anthropic.NewClient(
		option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
	return &APIClient{client: &client, model: model, log: logger.With("generator")}
}

func (c *APIClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   8192,
		Temperature: param.NewOpt(0.8),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	message, err := c.callWithRetry(ctx, params)
	if err != nil {
		return nil, err
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return &LLMResponse{
		Content:      responseText,
		PromptTokens: int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
	}, nil
}

func (c *APIClient) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			sleepDuration := time.Duration(1<<uint(attempt)) * time.Second
			c.log.Warn().Dur("backoff", sleepDuration).Int("attempt", attempt+1).Msg("retrying Anthropic API call")
			time.Sleep(sleepDuration)
		}

		message, err := c.client.Messages.New(ctx, params)
		if err == nil {
			return message, nil
		}
		lastErr = err
		c.log.Error().Err(err).Int("attempt", attempt+1).Msg("Anthropic API call failed")
	}
	return nil, fmt.Errorf("anthropic API failed after retries: %w", lastErr)
}

// ── MockClient — Local Development ─────────────────────────

type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	return &LLMResponse{
		Content:      mockLessonJSON,
		PromptTokens: 800,
		OutputTokens: 1200,
	}, nil
}

const mockLessonJSON = `{
  "title": "[Mock] Ordering Coffee at the Plaza",
  "vocabulary": [
    {"word": "el café", "translation": "coffee", "pronunciation": "el kah-FEH"},
    {"word": "la cuenta", "translation": "the bill", "pronunciation": "lah KWEN-tah"},
    {"word": "el camarero", "translation": "waiter", "pronunciation": "el kah-mah-REH-roh"},
    {"word": "la mesa", "translation": "table", "pronunciation": "lah MEH-sah"},
    {"word": "pedir", "translation": "to order", "pronunciation": "peh-DEER"}
  ],
  "sentences": [
    {"sentence": "Quisiera un café con leche, por favor.", "translation": "I would like a coffee with milk, please."},
    {"sentence": "¿Me trae la cuenta?", "translation": "Could you bring me the bill?"},
    {"sentence": "¿Tienen una mesa para dos?", "translation": "Do you have a table for two?"}
  ],
  "audio": [
    {"text": "Buenos días, ¿qué desea tomar?"},
    {"text": "Un café solo, por favor."}
  ],
  "use_of_spanish": 5
}`
