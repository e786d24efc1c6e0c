package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var novaNames = map[int]string{
	1: "Unprocessed or minimally processed foods",
	2: "Processed culinary ingredients",
	3: "Processed foods",
	4: "Ultra-processed food and drink products",
}

var gradeColors = map[string]string{
	"a": "#8AC449",
	"b": "#8FD0FF",
	"c": "#FFD65A",
	"d": "#F8A72C",
	"e": "#DF5656",
}

var gradeAssessments = map[string]string{
	"a": "excellent",
	"b": "good",
	"c": "average",
	"d": "poor",
	"e": "very poor",
}

// NovaName maps the nova group number to a human-readable name.
func NovaName(novaGroup int) string {
	if name, ok := novaNames[novaGroup]; ok {
		return name
	}
	return "Unknown"
}

// GradeColor maps a nutriscore/ecoscore grade to a color code.
func GradeColor(grade string) string {
	if color, ok := gradeColors[strings.ToLower(grade)]; ok {
		return color
	}
	return "gray"
}

// ScoreAssessment maps a grade to a qualitative assessment label.
func ScoreAssessment(grade string) string {
	if a, ok := gradeAssessments[strings.ToLower(grade)]; ok {
		return a
	}
	return "unknown"
}

// AdditiveNames resolves additive codes to display names.
func AdditiveNames(tags []any, table map[string]string) []string {
	names := make([]string, 0, len(tags))
	for _, v := range tags {
		tag, _ := v.(string)
		if name, ok := table[strings.ToLower(tag)]; ok {
			names = append(names, name)
		} else {
			names = append(names, "Unknown")
		}
	}
	return names
}

// FoodIcon picks an icon slug for a food name by scanning the category map.
// Names outside every category fall back to a slug of the name itself.
func FoodIcon(name string, categories map[string][]string) string {
	for category, items := range categories {
		for _, item := range items {
			if item == name {
				return slugify(category)
			}
		}
	}
	return slugify(name)
}

func slugify(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}

func validGrade(grade string) bool {
	_, ok := gradeColors[grade]
	return ok
}

// PrimaryScore picks a single representative score for a product: the
// nutriscore when its grade is valid, the ecoscore as fallback, and a null
// record with a sentinel gray color when neither grade is usable.
func PrimaryScore(product map[string]any) map[string]any {
	nutriGrade := strings.ToLower(stringValue(product["nutriscore_grade"]))
	ecoGrade := strings.ToLower(stringValue(product["ecoscore_grade"]))

	if validGrade(nutriGrade) {
		return map[string]any{
			"grade":       strings.ToUpper(nutriGrade),
			"grade_color": GradeColor(nutriGrade),
			"assessment":  TitleCase(ScoreAssessment(nutriGrade)),
			"score":       product["nutriscore_score"],
			"type":        "nutriscore",
		}
	}
	if validGrade(ecoGrade) {
		return map[string]any{
			"grade":       strings.ToUpper(ecoGrade),
			"grade_color": GradeColor(ecoGrade),
			"assessment":  TitleCase(ScoreAssessment(ecoGrade)),
			"score":       product["ecoscore_score"],
			"type":        "ecoscore",
		}
	}
	return map[string]any{
		"grade":       nil,
		"grade_color": "#757575",
		"assessment":  "Unknown",
		"score":       nil,
		"type":        nil,
	}
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

// TitleCase upper-cases the first rune of each space-separated word and
// lower-cases the rest.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		first, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(first)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}
