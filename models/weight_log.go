package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WeightLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	WeightKg  float64   `gorm:"not null" json:"weight_kg"`
	LogDate   string    `gorm:"type:date;not null;index" json:"log_date"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

func (w *WeightLog) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

type CreateWeightLogInput struct {
	UserID   string   `json:"user_id"`
	WeightKg *float64 `json:"weight_kg"`
	LogDate  string   `json:"log_date"`
	Notes    *string  `json:"notes"`
}

type UpdateWeightLogInput struct {
	WeightKg *float64 `json:"weight_kg"`
	LogDate  *string  `json:"log_date"`
	Notes    *string  `json:"notes"`
}

type WeightLogFilter struct {
	UserID    string
	StartDate string
	EndDate   string
	Limit     int
	Offset    int
}

// WeightProgressSummary condenses a user's full weight history.
type WeightProgressSummary struct {
	UserID                 string  `json:"user_id"`
	CurrentWeight          float64 `json:"current_weight"`
	StartingWeight         float64 `json:"starting_weight"`
	WeightChange           float64 `json:"weight_change"`
	WeightChangePercentage float64 `json:"weight_change_percentage"`
	AverageWeeklyChange    float64 `json:"average_weekly_change"`
	LogsCount              int     `json:"logs_count"`
	FirstLogDate           string  `json:"first_log_date"`
	LastLogDate            string  `json:"last_log_date"`
}
