package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/1MindLabs/mivro-server/config"

	"golang.org/x/time/rate"
)

const defaultOFFBaseURL = "https://world.openfoodfacts.org"

// OpenFoodFactsService is the client for the Open Food Facts v2 API.
// Requests are rate limited to stay within the API's politeness guidelines.
type OpenFoodFactsService struct {
	baseURL   string
	userAgent string
	client    *http.Client
	limiter   *rate.Limiter
}

func NewOpenFoodFactsService() *OpenFoodFactsService {
	baseURL := os.Getenv("OFF_BASE_URL")
	if baseURL == "" {
		baseURL = defaultOFFBaseURL
	}
	return &OpenFoodFactsService{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: "Mivro/1.0",
		client:    &http.Client{Timeout: config.APITimeout},
		limiter:   rate.NewLimiter(rate.Limit(5), 10),
	}
}

// GetProduct fetches a single product by barcode, requesting only the given
// fields. Returns nil without error when the product does not exist.
func (s *OpenFoodFactsService) GetProduct(ctx context.Context, barcode string, fields []string) (map[string]any, error) {
	u := fmt.Sprintf("%s/api/v2/product/%s?fields=%s",
		s.baseURL, url.PathEscape(barcode), url.QueryEscape(strings.Join(fields, ",")),
	)

	body, status, err := s.get(ctx, u)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("open food facts product API error %d: %s", status, string(body))
	}

	var pr struct {
		Status  int            `json:"status"`
		Product map[string]any `json:"product"`
	}
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("failed to parse product JSON: %w", err)
	}
	if pr.Status == 0 || len(pr.Product) == 0 {
		return nil, nil
	}
	return pr.Product, nil
}

// SearchProducts runs a paged text search. Returns the matching products
// and the total match count.
func (s *OpenFoodFactsService) SearchProducts(ctx context.Context, query string, page, pageSize int, fields []string) ([]map[string]any, int, error) {
	u := fmt.Sprintf("%s/cgi/search.pl?search_terms=%s&search_simple=1&action=process&json=1&page=%d&page_size=%d&fields=%s",
		s.baseURL, url.QueryEscape(query), page, pageSize, url.QueryEscape(strings.Join(fields, ",")),
	)

	body, status, err := s.get(ctx, u)
	if err != nil {
		return nil, 0, err
	}
	if status != http.StatusOK {
		return nil, 0, fmt.Errorf("open food facts search API error %d: %s", status, string(body))
	}

	var sr struct {
		Count    int              `json:"count"`
		Products []map[string]any `json:"products"`
	}
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, 0, fmt.Errorf("failed to parse search JSON: %w", err)
	}
	return sr.Products, sr.Count, nil
}

func (s *OpenFoodFactsService) get(ctx context.Context, u string) ([]byte, int, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to call Open Food Facts API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read Open Food Facts response: %w", err)
	}
	return body, resp.StatusCode, nil
}
