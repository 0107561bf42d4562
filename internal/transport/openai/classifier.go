package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/unisearch/internal/domain"
	"github.com/kailas-cloud/unisearch/internal/domain/search/intent"
	"github.com/kailas-cloud/unisearch/internal/domain/search/mode"
)

const systemPrompt = `You classify search queries for a Minecraft community portal that indexes servers, resources (mods, maps, plugins, resource packs, shaders, skins), wiki guides, posts and collections. Queries are usually Korean, sometimes English.

Reply with one JSON object and nothing else:
{
  "category": "NAVIGATION" | "SERVER" | "RESOURCE" | "GUIDE" | "PROBLEM" | "GENERAL",
  "sub_category": "MODS" | "MAPS" | "PLUGINS" | "RESOURCEPACK" | "SHADERS" | "SKINS" | "NEWS" | "",
  "explanation": "one short sentence",
  "keywords": ["search terms that should match titles, tags or descriptions"],
  "filters": {"tags": ["tags implied by the query"]},
  "sort": "RELEVANCE" | "POPULARITY" | "LATEST" | ""
}

NAVIGATION: the user names a specific server or page. SERVER: looking for servers to join. RESOURCE: downloadable content. GUIDE: how-to questions. PROBLEM: errors, crashes, troubleshooting. GENERAL: anything else.
Only set sort when the query asks for it ("popular", "인기", "latest", "최신"). Keep keywords short and in the query's language.`

// Classifier is an intent classifier using the OpenAI-compatible chat API.
type Classifier struct {
	client   *openai.Client
	model    string
	provider string
	logger   *zap.Logger
}

// Config holds the classifier provider settings.
type Config struct {
	APIKey   string
	BaseURL  string
	Model    string
	Provider string
	Logger   *zap.Logger
}

// NewClassifier creates an OpenAI-compatible intent classifier.
func NewClassifier(cfg *Config) *Classifier {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Classifier{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    cfg.Model,
		provider: cfg.Provider,
		logger:   logger,
	}
}

// Model returns the configured model name.
func (c *Classifier) Model() string { return c.model }

// wireIntent is the JSON shape the model is asked to produce.
type wireIntent struct {
	Category    string   `json:"category"`
	SubCategory string   `json:"sub_category"`
	Explanation string   `json:"explanation"`
	Keywords    []string `json:"keywords"`
	Filters     struct {
		Tags []string `json:"tags"`
	} `json:"filters"`
	Sort string `json:"sort"`
}

// Classify asks the model for a structured intent.
// All failures wrap domain.ErrClassifierUnavailable.
func (c *Classifier) Classify(ctx context.Context, query string) (intent.Intent, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		// The client drops an exact zero temperature (omitempty).
		Temperature: math.SmallestNonzeroFloat32,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return intent.Intent{}, parseAPIError(err)
	}
	if len(resp.Choices) == 0 {
		return intent.Intent{}, fmt.Errorf("empty completion: %w", domain.ErrClassifierUnavailable)
	}

	in, err := parseIntent(resp.Choices[0].Message.Content)
	if err != nil {
		c.logger.Debug("Unparseable classifier output",
			zap.String("provider", c.provider),
			zap.String("model", c.model),
			zap.String("content", resp.Choices[0].Message.Content),
		)
		return intent.Intent{}, err
	}
	return in, nil
}

// parseIntent decodes the model output. Models sometimes wrap JSON in a
// markdown fence, which is stripped.
func parseIntent(content string) (intent.Intent, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var w wireIntent
	if err := json.Unmarshal([]byte(content), &w); err != nil {
		return intent.Intent{}, fmt.Errorf("decode intent: %w: %w", err, domain.ErrClassifierUnavailable)
	}
	if strings.TrimSpace(w.Category) == "" {
		return intent.Intent{}, fmt.Errorf("intent without category: %w", domain.ErrClassifierUnavailable)
	}

	in := intent.Intent{
		Category:    intent.Category(w.Category),
		SubCategory: w.SubCategory,
		Explanation: w.Explanation,
		Keywords:    w.Keywords,
		Filters:     intent.Filters{Tags: w.Filters.Tags},
		Sort:        mode.Mode(w.Sort),
	}
	return in.Normalize(), nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (c *Classifier) HealthCheck(ctx context.Context) error {
	if _, err := c.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError extracts a human-readable error from the API response.
func parseAPIError(err error) error {
	wrap := domain.ErrClassifierUnavailable

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("classifier request: %w: %w", err, wrap)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if detail := extractDetail(reqErr.Body); detail != "" {
			return fmt.Errorf("classifier API error %d: %s: %w", reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("classifier API error %d: %s: %w", reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("classifier API error %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("classifier request failed: %w: %w", err, wrap)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
