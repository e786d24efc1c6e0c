package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/1MindLabs/mivro-server/config"

	genai "google.golang.org/genai"
)

const geminiModel = "gemini-2.5-flash"

const lumiInstructions = `You are Lumi, a nutrition analysis assistant.
Given a food product's nutriments and ingredients plus the user's health
profile, classify each nutrient as positive or negative for the user and
flag risky ingredients. Respond with JSON only, in this exact shape:
{"positive_nutrient": [{"name": "...", "quantity": "..."}],
 "negative_nutrient": [{"name": "...", "quantity": "..."}],
 "ingredient_warnings": ["..."]}`

const swaprInstructions = `You are Swapr, a product swap assistant. Given a
food product's details, suggest one healthier alternative product available
in the same category. Respond with the product name only, no explanation.`

const savoraInstructions = `You are Savora, a friendly food and nutrition
assistant. Answer questions about food, nutrition, and healthy eating.
Keep answers short and practical.`

// BLOCK_NONE so that additive/ingredient data never trips content filters.
var safetySettings = []*genai.SafetySetting{
	{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockNone},
	{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockNone},
	{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockNone},
	{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockNone},
}

// GeminiService wraps the one-shot Gemini calls used for enrichment and
// chat. Enrichment calls never return errors: on any failure they degrade
// to a fixed fallback shape so the main search response is never blocked.
type GeminiService struct {
	client  *genai.Client
	model   string
	history *HistoryService
	events  *AnalyticsService
}

func NewGeminiService(ctx context.Context, history *HistoryService, events *AnalyticsService) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiService{client: client, model: geminiModel, history: history, events: events}, nil
}

func emptyNutrientAnalysis() map[string]any {
	return map[string]any{
		"positive_nutrient":   []any{},
		"negative_nutrient":   []any{},
		"ingredient_warnings": []any{},
	}
}

// AnalyzeNutrients sends the user's health profile and the minimal product
// payload (nutriments, ingredients) to Gemini and returns the structured
// analysis. One attempt, no retry; any failure returns the empty shape.
func (s *GeminiService) AnalyzeNutrients(ctx context.Context, email string, payload map[string]any) map[string]any {
	health := map[string]any{}
	if s.history != nil {
		health = s.history.HealthProfile(email)
	}

	healthJSON, _ := json.Marshal(health)
	payloadJSON, _ := json.Marshal(payload)
	message := fmt.Sprintf("Health Profile: %s\nProduct Data: %s", healthJSON, payloadJSON)

	text, err := s.generate(ctx, message, lumiInstructions, "application/json")
	if err != nil {
		s.events.RuntimeError("lumi", err, "email", email)
		return emptyNutrientAnalysis()
	}

	analysis := map[string]any{}
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		s.events.RuntimeError("lumi", fmt.Errorf("invalid analysis JSON: %w", err), "email", email)
		return emptyNutrientAnalysis()
	}

	// The model's shape is trusted but defensively defaulted.
	for _, key := range []string{"positive_nutrient", "negative_nutrient", "ingredient_warnings"} {
		if _, ok := analysis[key].([]any); !ok {
			analysis[key] = []any{}
		}
	}
	return analysis
}

// RecommendProduct asks Gemini for one healthier alternative product name.
// Any failure degrades to the "No recommendation available" sentinel.
func (s *GeminiService) RecommendProduct(ctx context.Context, email string, payload map[string]any) map[string]any {
	payloadJSON, _ := json.Marshal(payload)
	message := fmt.Sprintf("Product Data: %s", payloadJSON)

	text, err := s.generate(ctx, message, swaprInstructions, "")
	if err != nil {
		s.events.RuntimeError("swapr", err, "email", email)
		return map[string]any{"product_name": NoRecommendation}
	}

	name := cleanRecommendationText(text)
	if name == "" {
		return map[string]any{"product_name": NoRecommendation}
	}
	return map[string]any{"product_name": name}
}

// Chat sends a free-form user message, optionally with inline media, and
// returns the model's reply. Unlike enrichment, chat failures surface to
// the caller.
func (s *GeminiService) Chat(ctx context.Context, message, mimeType string, media []byte) (string, error) {
	parts := []*genai.Part{}
	if len(media) > 0 {
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: media}})
	}
	parts = append(parts, &genai.Part{Text: message})

	ctx, cancel := context.WithTimeout(ctx, config.GeminiTimeout)
	defer cancel()

	resp, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{Parts: parts}},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: savoraInstructions}}},
			SafetySettings:    safetySettings,
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to call Gemini: %w", err)
	}
	text, err := responseText(resp)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (s *GeminiService) generate(ctx context.Context, message, instructions, mimeType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, config.GeminiTimeout)
	defer cancel()

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: instructions}}},
		SafetySettings:    safetySettings,
	}
	if mimeType != "" {
		cfg.ResponseMIMEType = mimeType
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: message}}}},
		cfg,
	)
	if err != nil {
		return "", fmt.Errorf("failed to call Gemini: %w", err)
	}
	return responseText(resp)
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty response from Gemini")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// cleanRecommendationText strips quoting and markdown emphasis the model
// tends to wrap product names in.
func cleanRecommendationText(text string) string {
	text = strings.ReplaceAll(text, `"`, "")
	text = strings.ReplaceAll(text, "**", "")
	return strings.TrimSpace(text)
}
