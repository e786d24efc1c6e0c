package services

import (
	"encoding/json"
	"log"

	"github.com/1MindLabs/mivro-server/models"

	"gorm.io/gorm"
)

// AnalyticsService records operational events (missing products, runtime
// errors) for later analysis. Writes are best-effort: a failed insert is
// logged and otherwise ignored.
type AnalyticsService struct{ db *gorm.DB }

func NewAnalyticsService(db *gorm.DB) *AnalyticsService { return &AnalyticsService{db: db} }

func (s *AnalyticsService) ProductNotFound(searchType, term string) {
	log.Printf("Product not found (%s): %s", searchType, term)
	if s.db == nil {
		return
	}
	event := models.AnalyticsEvent{
		Kind:       "product_not_found",
		SearchType: searchType,
		Term:       term,
	}
	if err := s.db.Create(&event).Error; err != nil {
		log.Printf("Failed to store not-found event: %v", err)
	}
}

// RuntimeError logs and stores an error with its operation name and any
// correlating identifiers (email, query term) passed as key/value pairs.
func (s *AnalyticsService) RuntimeError(operation string, err error, kv ...string) {
	log.Printf("Runtime error in %s: %v %v", operation, err, kv)
	if s.db == nil {
		return
	}
	context := map[string]string{}
	for i := 0; i+1 < len(kv); i += 2 {
		context[kv[i]] = kv[i+1]
	}
	encoded, _ := json.Marshal(context)

	event := models.AnalyticsEvent{
		Kind:      "runtime_error",
		Operation: operation,
		Error:     err.Error(),
		Context:   string(encoded),
	}
	if dbErr := s.db.Create(&event).Error; dbErr != nil {
		log.Printf("Failed to store runtime error event: %v", dbErr)
	}
}
