package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elvisxd/calorie-tracker-api/models"
)

func sampleFood() *models.FoodItem {
	return &models.FoodItem{
		Name:        "Chicken Breast",
		Calories:    165,
		ServingSize: 100,
		ServingUnit: "g",
		Protein:     31,
		Carbs:       0,
		Fat:         3.6,
		Fiber:       0,
		Sugar:       0,
	}
}

func TestScaleNutrition(t *testing.T) {
	got := ScaleNutrition(sampleFood(), 150)

	assert.Equal(t, 248, got.Calories)
	assert.Equal(t, 46.5, got.Protein)
	assert.Equal(t, 0.0, got.Carbs)
	assert.Equal(t, 5.4, got.Fat)
}

func TestScaleNutritionWholeServing(t *testing.T) {
	f := sampleFood()
	got := ScaleNutrition(f, f.ServingSize)

	assert.Equal(t, 165, got.Calories)
	assert.Equal(t, 31.0, got.Protein)
	assert.Equal(t, 3.6, got.Fat)
}

func TestAggregateNutritionRoundsPerStep(t *testing.T) {
	sets := []NutrientSet{
		{Calories: 100, Protein: 1.25, Fat: 0.04},
		{Calories: 200, Protein: 1.25, Fat: 0.04},
		{Calories: 50, Protein: 1.25, Fat: 0.04},
	}
	got := AggregateNutrition(sets)

	assert.Equal(t, 350, got.Calories)
	// 0 + 1.25 -> 1.3; 1.3 + 1.25 -> 2.6; 2.6 + 1.25 -> 3.9
	assert.Equal(t, 3.9, got.Protein)
	// each 0.04 rounds away at every step
	assert.Equal(t, 0.0, got.Fat)
}

func TestAggregateNutritionEmpty(t *testing.T) {
	assert.Equal(t, NutrientSet{}, AggregateNutrition(nil))
}

func TestCalculateBMI(t *testing.T) {
	assert.Equal(t, 22.9, CalculateBMI(70, 175))
	assert.Equal(t, 30.9, CalculateBMI(100, 180))
}

func TestBMICategory(t *testing.T) {
	assert.Equal(t, "Underweight", BMICategory(18.4))
	assert.Equal(t, "Normal", BMICategory(18.5))
	assert.Equal(t, "Normal", BMICategory(24.9))
	assert.Equal(t, "Overweight", BMICategory(25.0))
	assert.Equal(t, "Overweight", BMICategory(29.9))
	assert.Equal(t, "Obese", BMICategory(30.0))
}

func TestCalculateBMR(t *testing.T) {
	// 10*70 + 6.25*175 - 5*30 = 1643.75
	assert.Equal(t, 1648.75, CalculateBMR(70, 175, 30, "male"))
	assert.Equal(t, 1648.75, CalculateBMR(70, 175, 30, "Male"))
	assert.Equal(t, 1482.75, CalculateBMR(70, 175, 30, "female"))
	assert.Equal(t, 1482.75, CalculateBMR(70, 175, 30, "other"))
}

func TestCalculateTDEE(t *testing.T) {
	assert.Equal(t, 1980.0, CalculateTDEE(1650, 1.2))
}

func TestGoalCalories(t *testing.T) {
	assert.Equal(t, 2000.0, GoalCalories(2000, GoalMaintain))
	assert.Equal(t, 1500.0, GoalCalories(2000, GoalLose))
	assert.Equal(t, 2500.0, GoalCalories(2000, GoalGain))
	assert.Equal(t, 2000.0, GoalCalories(2000, "unknown"))
}

func TestMacroSplit(t *testing.T) {
	got := MacroSplit(2000)

	assert.Equal(t, 150.0, got.ProteinG)
	assert.Equal(t, 200.0, got.CarbsG)
	assert.Equal(t, 67.0, got.FatG)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.2345))
	assert.Equal(t, -0.57, Round2(-0.567))
}
