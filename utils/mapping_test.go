package utils

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestPrimaryScoreNutriscoreWins(t *testing.T) {
	product := map[string]any{
		"nutriscore_grade": "b",
		"nutriscore_score": float64(3),
		"ecoscore_grade":   "e",
		"ecoscore_score":   float64(80),
	}

	got := PrimaryScore(product)

	assert.Equal(t, "B", got["grade"])
	assert.Equal(t, "#8FD0FF", got["grade_color"])
	assert.Equal(t, "Good", got["assessment"])
	assert.Equal(t, float64(3), got["score"])
	assert.Equal(t, "nutriscore", got["type"])
}

func TestPrimaryScoreEcoscoreFallback(t *testing.T) {
	tests := []struct {
		name    string
		product map[string]any
	}{
		{"nutriscore absent", map[string]any{"ecoscore_grade": "D", "ecoscore_score": float64(30)}},
		{"nutriscore invalid", map[string]any{"nutriscore_grade": "unknown", "ecoscore_grade": "d", "ecoscore_score": float64(30)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := PrimaryScore(tc.product)
			assert.Equal(t, "D", got["grade"])
			assert.Equal(t, "ecoscore", got["type"])
			assert.Equal(t, float64(30), got["score"])
		})
	}
}

func TestPrimaryScoreNullRecord(t *testing.T) {
	tests := []struct {
		name    string
		product map[string]any
	}{
		{"empty product", map[string]any{}},
		{"both invalid", map[string]any{"nutriscore_grade": "x", "ecoscore_grade": "not-applicable"}},
		{"non-string grades", map[string]any{"nutriscore_grade": float64(2)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := PrimaryScore(tc.product)
			assert.Nil(t, got["grade"])
			assert.Equal(t, "#757575", got["grade_color"])
			assert.Equal(t, "Unknown", got["assessment"])
			assert.Nil(t, got["score"])
			assert.Nil(t, got["type"], "type is null exactly when grade is null")
		})
	}
}

func TestGradeColor(t *testing.T) {
	assert.Equal(t, "#8AC449", GradeColor("a"))
	assert.Equal(t, "#8AC449", GradeColor("A"))
	assert.Equal(t, "#DF5656", GradeColor("e"))
	assert.Equal(t, "gray", GradeColor(""))
	assert.Equal(t, "gray", GradeColor("f"))
}

func TestScoreAssessment(t *testing.T) {
	assert.Equal(t, "excellent", ScoreAssessment("a"))
	assert.Equal(t, "very poor", ScoreAssessment("E"))
	assert.Equal(t, "unknown", ScoreAssessment(""))
	assert.Equal(t, "unknown", ScoreAssessment("z"))
}

func TestNovaName(t *testing.T) {
	assert.Equal(t, "Unprocessed or minimally processed foods", NovaName(1))
	assert.Equal(t, "Ultra-processed food and drink products", NovaName(4))
	assert.Equal(t, "Unknown", NovaName(0))
	assert.Equal(t, "Unknown", NovaName(7))
}

func TestAdditiveNames(t *testing.T) {
	got := AdditiveNames([]any{"e330", "E322", "e999999"}, AdditiveNameTable)

	assert.Equal(t, []string{"Citric Acid", "Lecithins", "Unknown"}, got)
}

func TestFoodIcon(t *testing.T) {
	assert.Equal(t, "dairy", FoodIcon("Milk", FoodCategories))
	assert.Equal(t, "sweeteners", FoodIcon("Glucose Syrup", FoodCategories))
	assert.Equal(t, "star-anise", FoodIcon("Star Anise", FoodCategories))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Very Poor", TitleCase("very poor"))
	assert.Equal(t, "Wheat Flour", TitleCase("WHEAT FLOUR"))
	assert.Equal(t, "", TitleCase(""))
}

func TestTitleCaseNonASCII(t *testing.T) {
	// Ingredient texts come back in the product's locale, often with a
	// multi-byte first rune.
	assert.Equal(t, "Épices", TitleCase("épices"))
	assert.Equal(t, "Œufs Frais", TitleCase("œufs FRAIS"))
	for _, in := range []string{"épices", "œufs", "água"} {
		out := TitleCase(in)
		assert.True(t, utf8.ValidString(out), "TitleCase(%q) = %q is not valid UTF-8", in, out)
	}
}
