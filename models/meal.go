package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnack     = "snack"
)

func ValidMealType(t string) bool {
	switch t {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return true
	}
	return false
}

type Meal struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description *string   `json:"description"`
	MealDate    string    `gorm:"type:date;not null;index" json:"meal_date"`
	MealTime    string    `gorm:"not null" json:"meal_time"`
	MealType    string    `gorm:"not null" json:"meal_type"`
	// TotalCalories is a denormalized aggregate; the meal service recomputes
	// it in the same transaction as every link mutation.
	TotalCalories int            `gorm:"default:0" json:"total_calories"`
	FoodItems     []MealFoodItem `gorm:"foreignKey:MealID" json:"food_items,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// MealFoodItem links a meal to a food item with the consumed amount,
// expressed in the food item's serving unit. (meal_id, food_item_id) is
// unique; adding an existing pair updates the amount instead.
type MealFoodItem struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MealID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_meal_food" json:"meal_id"`
	FoodItemID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_meal_food" json:"food_item_id"`
	Amount     float64   `gorm:"not null" json:"amount"`
	FoodItem   *FoodItem `gorm:"foreignKey:FoodItemID" json:"food_item,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (m *MealFoodItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type CreateMealInput struct {
	UserID      string                    `json:"user_id"`
	Name        string                    `json:"name"`
	Description *string                   `json:"description"`
	MealDate    string                    `json:"meal_date"`
	MealTime    string                    `json:"meal_time"`
	MealType    string                    `json:"meal_type"`
	FoodItems   []CreateMealFoodItemInput `json:"food_items"`
}

type UpdateMealInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	MealDate    *string `json:"meal_date"`
	MealTime    *string `json:"meal_time"`
	MealType    *string `json:"meal_type"`
}

type CreateMealFoodItemInput struct {
	FoodItemID string  `json:"food_item_id"`
	Amount     float64 `json:"amount"`
}

type UpdateMealFoodItemInput struct {
	Amount float64 `json:"amount"`
}

type MealFilter struct {
	UserID    string
	StartDate string
	EndDate   string
	MealType  string
	Limit     int
	Offset    int
}

// NutritionSummary is the aggregated nutrition block attached to meal and
// daily-summary responses.
type NutritionSummary struct {
	TotalCalories int     `json:"total_calories"`
	TotalProtein  float64 `json:"total_protein"`
	TotalCarbs    float64 `json:"total_carbs"`
	TotalFat      float64 `json:"total_fat"`
	TotalFiber    float64 `json:"total_fiber"`
	TotalSugar    float64 `json:"total_sugar"`
}
