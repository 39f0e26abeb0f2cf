package utils

import (
	"math"
	"strings"

	"github.com/elvisxd/calorie-tracker-api/models"
)

// NutrientSet is the scaled nutrition for one consumed amount of a food.
type NutrientSet struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 { return round2(v) }

// ScaleNutrition scales a food item's per-serving nutrients to the given
// amount. Calories round to the nearest integer, every other nutrient to
// one decimal place. Callers must reject non-positive serving sizes before
// a food item is ever stored.
func ScaleNutrition(f *models.FoodItem, amount float64) NutrientSet {
	ratio := amount / f.ServingSize
	return NutrientSet{
		Calories: int(math.Round(f.Calories * ratio)),
		Protein:  round1(f.Protein * ratio),
		Carbs:    round1(f.Carbs * ratio),
		Fat:      round1(f.Fat * ratio),
		Fiber:    round1(f.Fiber * ratio),
		Sugar:    round1(f.Sugar * ratio),
	}
}

// AggregateNutrition sums nutrient sets component-wise. Each fractional
// field is re-rounded to one decimal after every addition; totals depend on
// that per-step rounding, so it must not be collapsed into a single final
// round.
func AggregateNutrition(sets []NutrientSet) NutrientSet {
	var total NutrientSet
	for _, s := range sets {
		total.Calories += s.Calories
		total.Protein = round1(total.Protein + s.Protein)
		total.Carbs = round1(total.Carbs + s.Carbs)
		total.Fat = round1(total.Fat + s.Fat)
		total.Fiber = round1(total.Fiber + s.Fiber)
		total.Sugar = round1(total.Sugar + s.Sugar)
	}
	return total
}

// CalculateBMI expects weight in kilograms and height in centimeters and
// returns the body mass index to one decimal place.
func CalculateBMI(weightKg, heightCm float64) float64 {
	h := heightCm / 100.0
	return round1(weightKg / (h * h))
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal"
	case bmi < 30.0:
		return "Overweight"
	default:
		return "Obese"
	}
}

// CalculateBMR estimates basal metabolic rate with the Mifflin-St Jeor
// equation. The formula only distinguishes "male" (case-insensitive) from
// everything else; gender itself stays an open string, the two branches are
// a limitation of the equation, not a data model statement.
func CalculateBMR(weightKg, heightCm float64, age int, gender string) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if strings.ToLower(gender) == "male" {
		return bmr + 5
	}
	return bmr - 161
}

// CalculateTDEE scales BMR by the activity multiplier.
func CalculateTDEE(bmr, activityLevel float64) float64 {
	return bmr * activityLevel
}

const (
	GoalMaintain = "maintain"
	GoalLose     = "lose"
	GoalGain     = "gain"
)

// GoalCalories adjusts TDEE for the weight goal: a flat 500 kcal deficit to
// lose, a flat 500 kcal surplus to gain.
func GoalCalories(tdee float64, goalType string) float64 {
	switch goalType {
	case GoalLose:
		return tdee - 500
	case GoalGain:
		return tdee + 500
	default:
		return tdee
	}
}

// MacroGoals is a calorie goal split into gram targets.
type MacroGoals struct {
	ProteinG float64 `json:"daily_protein_goal"`
	CarbsG   float64 `json:"daily_carbs_goal"`
	FatG     float64 `json:"daily_fat_goal"`
}

// MacroSplit divides a calorie goal 30/40/30 across protein, carbs and fat
// at 4, 4 and 9 kcal per gram, rounding each target to whole grams.
func MacroSplit(calorieGoal float64) MacroGoals {
	return MacroGoals{
		ProteinG: math.Round(calorieGoal * 0.3 / 4),
		CarbsG:   math.Round(calorieGoal * 0.4 / 4),
		FatG:     math.Round(calorieGoal * 0.3 / 9),
	}
}
