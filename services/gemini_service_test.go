package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	genai "google.golang.org/genai"
)

// newGeminiTestService builds a GeminiService whose client talks to a local
// stand-in for the Gemini API.
func newGeminiTestService(t *testing.T, handler http.HandlerFunc) *GeminiService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL},
	})
	require.NoError(t, err)
	return &GeminiService{client: client, model: geminiModel, events: NewAnalyticsService(nil)}
}

func geminiTextResponse(text string) string {
	encoded, _ := json.Marshal(map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": text}},
				},
			},
		},
	})
	return string(encoded)
}

func TestAnalyzeNutrientsTransportFailure(t *testing.T) {
	svc := newGeminiTestService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"code": 500, "message": "internal"}}`, http.StatusInternalServerError)
	})

	analysis := svc.AnalyzeNutrients(context.Background(), "test@mivro.org", map[string]any{
		"nutriments": map[string]any{"sugars_100g": 22},
	})

	assert.Equal(t, emptyNutrientAnalysis(), analysis)
}

func TestAnalyzeNutrientsInvalidModelJSON(t *testing.T) {
	svc := newGeminiTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(geminiTextResponse("definitely not json")))
	})

	analysis := svc.AnalyzeNutrients(context.Background(), "test@mivro.org", map[string]any{})

	assert.Equal(t, emptyNutrientAnalysis(), analysis)
}

func TestAnalyzeNutrientsDefaultsMissingKeys(t *testing.T) {
	svc := newGeminiTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(geminiTextResponse(`{"positive_nutrient": [{"name": "Fiber", "quantity": "3 g"}]}`)))
	})

	analysis := svc.AnalyzeNutrients(context.Background(), "test@mivro.org", map[string]any{})

	assert.Len(t, analysis["positive_nutrient"], 1)
	assert.Equal(t, []any{}, analysis["negative_nutrient"])
	assert.Equal(t, []any{}, analysis["ingredient_warnings"])
}

func TestRecommendProductTransportFailure(t *testing.T) {
	svc := newGeminiTestService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"code": 503, "message": "unavailable"}}`, http.StatusServiceUnavailable)
	})

	rec := svc.RecommendProduct(context.Background(), "test@mivro.org", map[string]any{
		"product_name": "Oat Crunch",
	})

	assert.Equal(t, map[string]any{"product_name": NoRecommendation}, rec)
}

func TestRecommendProductCleansName(t *testing.T) {
	svc := newGeminiTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(geminiTextResponse("**\"Plain Oats\"**\n")))
	})

	rec := svc.RecommendProduct(context.Background(), "test@mivro.org", map[string]any{
		"product_name": "Oat Crunch",
	})

	assert.Equal(t, map[string]any{"product_name": "Plain Oats"}, rec)
}

func TestCleanRecommendationText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`"Plain Oats"`, "Plain Oats"},
		{"**Plain Oats**\n", "Plain Oats"},
		{"  Plain Oats  ", "Plain Oats"},
		{`**"Plain Oats"**`, "Plain Oats"},
		{"", ""},
		{`"**"`, ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, cleanRecommendationText(c.in), "input %q", c.in)
	}
}

func TestEmptyNutrientAnalysis(t *testing.T) {
	analysis := emptyNutrientAnalysis()

	assert.Equal(t, []any{}, analysis["positive_nutrient"])
	assert.Equal(t, []any{}, analysis["negative_nutrient"])
	assert.Equal(t, []any{}, analysis["ingredient_warnings"])
	assert.Len(t, analysis, 3)
}
