package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FoodItem stores nutrients per serving; everything downstream is scaled by
// amount / serving_size.
type FoodItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null;index" json:"name"`
	Calories    float64   `gorm:"not null" json:"calories"`
	ServingSize float64   `gorm:"not null" json:"serving_size"`
	ServingUnit string    `gorm:"not null" json:"serving_unit"`
	Protein     float64   `gorm:"default:0" json:"protein"`
	Carbs       float64   `gorm:"default:0" json:"carbs"`
	Fat         float64   `gorm:"default:0" json:"fat"`
	Fiber       float64   `gorm:"default:0" json:"fiber"`
	Sugar       float64   `gorm:"default:0" json:"sugar"`
	Category    *string   `json:"category"`
	Brand       *string   `json:"brand"`
	IsVerified  bool      `gorm:"default:false" json:"is_verified"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (f *FoodItem) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

type CreateFoodItemInput struct {
	Name        string   `json:"name"`
	Calories    *float64 `json:"calories"`
	ServingSize *float64 `json:"serving_size"`
	ServingUnit string   `json:"serving_unit"`
	Protein     float64  `json:"protein"`
	Carbs       float64  `json:"carbs"`
	Fat         float64  `json:"fat"`
	Fiber       float64  `json:"fiber"`
	Sugar       float64  `json:"sugar"`
	Category    *string  `json:"category"`
	Brand       *string  `json:"brand"`
	IsVerified  bool     `json:"is_verified"`
}

type UpdateFoodItemInput struct {
	Name        *string  `json:"name"`
	Calories    *float64 `json:"calories"`
	ServingSize *float64 `json:"serving_size"`
	ServingUnit *string  `json:"serving_unit"`
	Protein     *float64 `json:"protein"`
	Carbs       *float64 `json:"carbs"`
	Fat         *float64 `json:"fat"`
	Fiber       *float64 `json:"fiber"`
	Sugar       *float64 `json:"sugar"`
	Category    *string  `json:"category"`
	Brand       *string  `json:"brand"`
	IsVerified  *bool    `json:"is_verified"`
}

// FoodItemFilter is the fixed set of list query parameters.
type FoodItemFilter struct {
	Name        string
	Category    string
	Brand       string
	MinCalories *float64
	MaxCalories *float64
	Verified    *bool
	Limit       int
	Offset      int
	SortBy      string
	SortOrder   string
}
