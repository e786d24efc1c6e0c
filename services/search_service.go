package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/1MindLabs/mivro-server/utils"
)

// ErrProductNotFound means the upstream database has no matching product.
var ErrProductNotFound = errors.New("product not found")

// NoRecommendation is the sentinel name returned when the recommendation
// call fails or produces nothing usable.
const NoRecommendation = "No recommendation available"

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ProductSource is the external product database (Open Food Facts).
type ProductSource interface {
	GetProduct(ctx context.Context, barcode string, fields []string) (map[string]any, error)
	SearchProducts(ctx context.Context, query string, page, pageSize int, fields []string) ([]map[string]any, int, error)
}

// Enricher runs the best-effort AI sub-analyses. Implementations never
// return errors; they degrade to fixed fallback shapes.
type Enricher interface {
	AnalyzeNutrients(ctx context.Context, email string, payload map[string]any) map[string]any
	RecommendProduct(ctx context.Context, email string, payload map[string]any) map[string]any
}

// HistoryStore persists finished scans.
type HistoryStore interface {
	AppendScan(email, query string, result map[string]any) error
}

// EventRecorder stores analytics events.
type EventRecorder interface {
	ProductNotFound(searchType, term string)
	RuntimeError(operation string, err error, kv ...string)
}

// ScanNotifier pushes finished scans to connected clients.
type ScanNotifier interface {
	ScanCompleted(email string, result map[string]any)
}

// SearchService runs the fetch -> normalize -> enrich -> persist pipeline
// for barcode and text lookups.
type SearchService struct {
	products ProductSource
	ai       Enricher
	history  HistoryStore
	events   EventRecorder
	notifier ScanNotifier
}

func NewSearchService(products ProductSource, ai Enricher, history HistoryStore, events EventRecorder, notifier ScanNotifier) *SearchService {
	return &SearchService{products: products, ai: ai, history: history, events: events, notifier: notifier}
}

// SearchBarcode looks up a single product by barcode and returns the
// enriched result.
func (s *SearchService) SearchBarcode(ctx context.Context, email, barcode string) (map[string]any, error) {
	start := time.Now()

	raw, err := s.products.GetProduct(ctx, barcode, utils.ProductSchema)
	if err != nil {
		return nil, fmt.Errorf("barcode lookup for %q: %w", barcode, err)
	}
	if raw == nil {
		s.events.ProductNotFound("barcode", barcode)
		return nil, ErrProductNotFound
	}

	result := s.assemble(ctx, email, raw, barcode, "barcode", true, start)
	s.persist(email, barcode, result)
	return result, nil
}

// SearchText runs a paged free-text search. Only the top result is
// enriched; the rest carry empty enrichment placeholders to bound AI call
// volume.
func (s *SearchService) SearchText(ctx context.Context, email, query string, page, pageSize int) (map[string]any, error) {
	start := time.Now()

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	rawProducts, count, err := s.products.SearchProducts(ctx, query, page, pageSize, utils.ProductSchema)
	if err != nil {
		return nil, fmt.Errorf("text search for %q: %w", query, err)
	}
	if len(rawProducts) == 0 {
		s.events.ProductNotFound("text", query)
		return nil, ErrProductNotFound
	}

	products := make([]map[string]any, 0, len(rawProducts))
	for i, raw := range rawProducts {
		products = append(products, s.assemble(ctx, email, raw, query, "text", i == 0, start))
	}
	s.resolveRecommendation(ctx, email, products[0])

	now := time.Now()
	response := map[string]any{
		"products":        products,
		"count":           count,
		"page":            page,
		"page_size":       pageSize,
		"search_type":     "text",
		"search_response": "200 OK",
		"response_time":   fmt.Sprintf("%.2f seconds", time.Since(start).Seconds()),
		"response_size":   fmt.Sprintf("%.2f KB", approxSizeKB(products)),
		"search_date":     now.Format("2006-01-02"),
		"search_time":     now.Format("15:04:05"),
	}
	s.persist(email, query, response)
	return response, nil
}

// assemble normalizes one raw record and attaches enrichment and response
// metadata. The enrichment payloads are built from the normalized record
// before its ingredients are reshaped for display.
func (s *SearchService) assemble(ctx context.Context, email string, raw map[string]any, term, searchType string, enrich bool, start time.Time) map[string]any {
	if missing := missingSchemaFields(raw); len(missing) > 0 {
		log.Printf("Warning: missing fields for %q: %v", term, missing)
	}

	raw["additives_tags"] = utils.FilterAdditive(anySlice(raw["additives_tags"]))
	filtered := utils.FilterData(raw)

	elapsed := time.Since(start)
	size := approxSizeKB(filtered)

	var analysis, recommendation map[string]any
	if enrich {
		analysis = utils.FilterNutriment(s.ai.AnalyzeNutrients(ctx, email, map[string]any{
			"nutriments":  filtered["nutriments"],
			"ingredients": filtered["ingredients"],
		}))
		recommendation = s.ai.RecommendProduct(ctx, email, map[string]any{
			"product_name":   filtered["product_name"],
			"categories":     filtered["categories"],
			"brands":         filtered["brands"],
			"ingredients":    filtered["ingredients"],
			"additives_tags": filtered["additives_tags"],
			"nutriments":     filtered["nutriments"],
		})
	} else {
		analysis = emptyNutrientAnalysis()
		recommendation = map[string]any{"product_name": NoRecommendation}
	}

	nutriments := map[string]any{
		"positive_nutrient": analysis["positive_nutrient"],
		"negative_nutrient": analysis["negative_nutrient"],
	}
	healthRisk := map[string]any{
		"ingredient_warnings": analysis["ingredient_warnings"],
	}

	grade := stringField(filtered["nutriscore_grade"])
	now := time.Now()
	filtered["search_type"] = searchType
	filtered["search_response"] = "200 OK"
	filtered["response_time"] = fmt.Sprintf("%.2f seconds", elapsed.Seconds())
	filtered["response_size"] = fmt.Sprintf("%.2f KB", size)
	filtered["search_date"] = now.Format("2006-01-02")
	filtered["search_time"] = now.Format("15:04:05")
	filtered["additives_names"] = utils.AdditiveNames(anySlice(filtered["additives_tags"]), utils.AdditiveNameTable)
	filtered["ingredients"] = utils.FilterIngredient(anySlice(filtered["ingredients"]))
	filtered["nova_group_name"] = utils.NovaName(intField(filtered["nova_group"]))
	filtered["nutriments"] = nutriments
	filtered["total_nutriments"] = len(anySlice(nutriments["positive_nutrient"])) + len(anySlice(nutriments["negative_nutrient"]))
	filtered["nutriscore_grade_color"] = utils.GradeColor(grade)
	filtered["nutriscore_assessment"] = utils.TitleCase(utils.ScoreAssessment(grade))
	filtered["primary_score"] = utils.PrimaryScore(filtered)
	filtered["health_risk"] = healthRisk
	filtered["total_health_risks"] = len(anySlice(healthRisk["ingredient_warnings"]))
	filtered["selected_images"] = utils.FilterImage(anyMap(filtered["selected_images"]))
	filtered["recommended_product"] = recommendation
	return filtered
}

// resolveRecommendation attaches display data (images, score, category) to
// a usable recommendation via one secondary lookup. Failures degrade to the
// bare name; they are recorded, never propagated.
func (s *SearchService) resolveRecommendation(ctx context.Context, email string, product map[string]any) {
	rec, ok := product["recommended_product"].(map[string]any)
	if !ok {
		return
	}
	name := stringField(rec["product_name"])
	if name == "" || name == NoRecommendation {
		return
	}

	matches, _, err := s.products.SearchProducts(ctx, name, 1, 1, utils.ProductSchema)
	if err != nil {
		s.events.RuntimeError("recommendation_lookup", err, "email", email, "product_name", name)
		return
	}
	if len(matches) == 0 {
		return
	}

	match := utils.FilterData(matches[0])
	rec["categories"] = match["categories"]
	rec["selected_images"] = utils.FilterImage(anyMap(match["selected_images"]))
	rec["primary_score"] = utils.PrimaryScore(match)
}

// persist writes the result to scan history and notifies listeners. A
// failed history write is reported but never fails the search.
func (s *SearchService) persist(email, query string, result map[string]any) {
	if err := s.history.AppendScan(email, query, result); err != nil {
		s.events.RuntimeError("database_history", err, "email", email, "query", query)
	}
	if s.notifier != nil {
		s.notifier.ScanCompleted(email, result)
	}
}

func missingSchemaFields(raw map[string]any) []string {
	var missing []string
	for _, key := range utils.ProductSchema {
		if _, ok := raw[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

func approxSizeKB(v any) float64 {
	encoded, err := json.Marshal(v)
	if err != nil {
		return 0
	}
	return float64(len(encoded)) / 1024
}

func anySlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func anyMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func stringField(v any) string {
	s, _ := v.(string)
	return s
}

func intField(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}
