package services

import (
	"encoding/json"
	"fmt"

	"github.com/1MindLabs/mivro-server/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistoryService reads user health profiles and appends scan and chat
// history, all keyed by the user's email.
type HistoryService struct{ db *gorm.DB }

func NewHistoryService(db *gorm.DB) *HistoryService { return &HistoryService{db: db} }

// HealthProfile returns the user's stored health profile, or an empty map
// when the user or profile is absent. Lookups never fail the caller: the
// profile only personalizes AI analysis.
func (s *HistoryService) HealthProfile(email string) map[string]any {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return map[string]any{}
	}

	profile := map[string]any{}
	if user.HealthProfile != "" {
		if err := json.Unmarshal([]byte(user.HealthProfile), &profile); err != nil {
			return map[string]any{}
		}
	}
	return profile
}

// AppendScan stores one finished search result under the user's email.
func (s *HistoryService) AppendScan(email, query string, result map[string]any) error {
	encoded, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode scan result: %w", err)
	}

	searchType, _ := result["search_type"].(string)
	entry := models.ScanHistory{
		ID:         uuid.NewString(),
		Email:      email,
		Query:      query,
		SearchType: searchType,
		Result:     string(encoded),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to store scan history: %w", err)
	}
	return nil
}

// ListScans returns the user's most recent scans, newest first.
func (s *HistoryService) ListScans(email string, limit int) ([]models.ScanHistory, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var entries []models.ScanHistory
	err := s.db.
		Where("email = ?", email).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// AppendChat stores one chat exchange under the user's email.
func (s *HistoryService) AppendChat(email string, entry models.ChatHistory) error {
	entry.Email = email
	if err := s.db.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to store chat history: %w", err)
	}
	return nil
}
