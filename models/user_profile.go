package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivityLevels are the accepted TDEE multipliers.
var ActivityLevels = []float64{1.2, 1.375, 1.55, 1.725, 1.9}

func ValidActivityLevel(level float64) bool {
	for _, l := range ActivityLevels {
		if level == l {
			return true
		}
	}
	return false
}

// UserProfile shares its primary key with the owning user.
type UserProfile struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	HeightCm         *float64  `json:"height_cm"`
	WeightKg         *float64  `json:"weight_kg"`
	Age              *int      `json:"age"`
	Gender           *string   `json:"gender"`
	ActivityLevel    *float64  `json:"activity_level"`
	DailyCalorieGoal *float64  `json:"daily_calorie_goal"`
	DailyProteinGoal *float64  `json:"daily_protein_goal"`
	DailyCarbsGoal   *float64  `json:"daily_carbs_goal"`
	DailyFatGoal     *float64  `json:"daily_fat_goal"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type UpsertUserProfileInput struct {
	HeightCm         *float64 `json:"height_cm"`
	WeightKg         *float64 `json:"weight_kg"`
	Age              *int     `json:"age"`
	Gender           *string  `json:"gender"`
	ActivityLevel    *float64 `json:"activity_level"`
	DailyCalorieGoal *float64 `json:"daily_calorie_goal"`
	DailyProteinGoal *float64 `json:"daily_protein_goal"`
	DailyCarbsGoal   *float64 `json:"daily_carbs_goal"`
	DailyFatGoal     *float64 `json:"daily_fat_goal"`
}

type UpdateNutritionGoalsInput struct {
	DailyCalorieGoal *float64 `json:"daily_calorie_goal"`
	DailyProteinGoal *float64 `json:"daily_protein_goal"`
	DailyCarbsGoal   *float64 `json:"daily_carbs_goal"`
	DailyFatGoal     *float64 `json:"daily_fat_goal"`
}
