package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FilterAdditive drops additive tags ending in the "i" suffix, a marker
// for ambiguous entries that should not be resolved to names. Tags keep
// their locale prefix here; FilterData strips it later.
func FilterAdditive(additiveData []any) []any {
	tags := make([]any, 0, len(additiveData))
	for _, v := range additiveData {
		tag, ok := v.(string)
		if !ok || strings.HasSuffix(tag, "i") {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// FilterIngredient reshapes raw ingredient entries into display records.
// Entries with empty text or a zero/missing percent estimate are dropped.
func FilterIngredient(ingredientData []any) []map[string]any {
	ingredients := make([]map[string]any, 0, len(ingredientData))
	for _, v := range ingredientData {
		entry, ok := v.(map[string]any)
		if !ok {
			continue
		}
		text, _ := entry["text"].(string)
		percent := floatValue(entry["percent_estimate"])
		if text == "" || percent == 0 {
			continue
		}
		name := TitleCase(text)
		ingredients = append(ingredients, map[string]any{
			"name":       name,
			"icon":       FoodIcon(name, FoodCategories),
			"percentage": fmt.Sprintf("%.2f %%", math.Abs(percent)),
		})
	}
	return ingredients
}

// FilterNutriment attaches an icon to every positive/negative nutrient
// entry of an analysis result.
func FilterNutriment(nutrimentData map[string]any) map[string]any {
	for _, category := range []string{"negative_nutrient", "positive_nutrient"} {
		entries, ok := nutrimentData[category].([]any)
		if !ok {
			continue
		}
		for _, v := range entries {
			if nutrient, ok := v.(map[string]any); ok {
				name, _ := nutrient["name"].(string)
				nutrient["icon"] = FoodIcon(name, FoodCategories)
			}
		}
	}
	return nutrimentData
}

// FilterData projects a raw product record onto ProductSchema, stripping
// locale prefixes ("en:", "fr:", ...) from strings and list elements at
// every nesting level. Keys absent from the raw record are omitted, not
// null-filled.
func FilterData(productData map[string]any) map[string]any {
	filtered := make(map[string]any, len(ProductSchema))
	for _, key := range ProductSchema {
		if value, ok := productData[key]; ok {
			filtered[key] = cleanValue(value)
		}
	}
	return filtered
}

func cleanValue(value any) any {
	switch v := value.(type) {
	case string:
		return stripLocalePrefix(v)
	case []any:
		cleaned := make([]any, len(v))
		for i, item := range v {
			cleaned[i] = cleanValue(item)
		}
		return cleaned
	default:
		return value
	}
}

// stripLocalePrefix removes leading two-letter language-tag prefixes such
// as "en:". Repeats until none remain so the result is stable under
// re-normalization.
func stripLocalePrefix(s string) string {
	for len(s) >= 3 && s[2] == ':' && isLowerAlpha(s[0]) && isLowerAlpha(s[1]) {
		s = s[3:]
	}
	return s
}

func isLowerAlpha(b byte) bool { return b >= 'a' && b <= 'z' }

// FilterImage extracts a single representative per-language image map from
// the nested selected_images structure, probing image types in priority
// order and preferring display quality.
func FilterImage(imageData map[string]any) map[string]any {
	for _, imageType := range []string{"front", "ingredients", "nutrition"} {
		img, ok := imageData[imageType].(map[string]any)
		if !ok {
			continue
		}
		if display, ok := img["display"].(map[string]any); ok {
			return display
		}
		return img
	}
	return map[string]any{}
}

func floatValue(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
