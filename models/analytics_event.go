package models

import "gorm.io/gorm"

// AnalyticsEvent captures operational events worth counting later:
// products missing upstream and runtime errors caught at the service
// boundary. Write-only from the application's point of view.
type AnalyticsEvent struct {
	gorm.Model
	Kind       string `gorm:"index;not null"` // product_not_found | runtime_error
	SearchType string
	Term       string
	Operation  string
	Error      string
	Context    string `gorm:"type:jsonb;default:'{}'"`
}
