package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elvisxd/calorie-tracker-api/models"
)

func createFoodInput(name string, calories, servingSize float64) models.CreateFoodItemInput {
	return models.CreateFoodItemInput{
		Name:        name,
		Calories:    &calories,
		ServingSize: &servingSize,
		ServingUnit: "g",
	}
}

func TestCreateFoodItem(t *testing.T) {
	db := newTestDB(t)
	svc := NewFoodService(db, nop())
	ctx := context.Background()

	input := createFoodInput("Chicken Breast", 165, 100)
	input.Protein = 31
	cat := "meat"
	input.Category = &cat

	item, err := svc.Create(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "Chicken Breast", item.Name)
	assert.Equal(t, 165.0, item.Calories)
	assert.Equal(t, "meat", *item.Category)
	assert.False(t, item.IsVerified)
}

func TestCreateFoodItemValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewFoodService(db, nop())
	ctx := context.Background()

	_, err := svc.Create(ctx, models.CreateFoodItemInput{Name: "x", ServingUnit: "g"})
	assert.True(t, IsValidation(err))

	negative := -5.0
	serving := 100.0
	_, err = svc.Create(ctx, models.CreateFoodItemInput{
		Name: "x", Calories: &negative, ServingSize: &serving, ServingUnit: "g",
	})
	assert.True(t, IsValidation(err))

	calories := 100.0
	zero := 0.0
	_, err = svc.Create(ctx, models.CreateFoodItemInput{
		Name: "x", Calories: &calories, ServingSize: &zero, ServingUnit: "g",
	})
	assert.True(t, IsValidation(err))
}

func TestListFoodItemsFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewFoodService(db, nop())
	ctx := context.Background()

	seedFoodItem(t, db, "Chicken Breast", 165, 100, 31)
	seedFoodItem(t, db, "Chicken Thigh", 209, 100, 26)
	seedFoodItem(t, db, "White Rice", 130, 100, 2.7)

	items, total, err := svc.List(ctx, models.FoodItemFilter{Name: "chicken", Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)

	min := 150.0
	items, total, err = svc.List(ctx, models.FoodItemFilter{MinCalories: &min, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	items, total, err = svc.List(ctx, models.FoodItemFilter{
		SortBy: "calories", SortOrder: "desc", Limit: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Chicken Thigh", items[0].Name)

	// unrecognized sort fields fall back to the default name order
	items, _, err = svc.List(ctx, models.FoodItemFilter{
		SortBy: "protein; DROP TABLE food_items", Limit: 20,
	})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Chicken Breast", items[0].Name)
	assert.Equal(t, "Chicken Thigh", items[1].Name)
	assert.Equal(t, "White Rice", items[2].Name)
}

func TestSearchFoodItems(t *testing.T) {
	db := newTestDB(t)
	svc := NewFoodService(db, nop())
	ctx := context.Background()

	seedFoodItem(t, db, "Greek Yogurt", 59, 100, 10)
	seedFoodItem(t, db, "Yogurt Drink", 85, 100, 3)
	seedFoodItem(t, db, "Oats", 389, 100, 16.9)

	items, err := svc.Search(ctx, "yogurt", 10)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Greek Yogurt", items[0].Name)
}

func TestCategoriesAndBrands(t *testing.T) {
	db := newTestDB(t)
	svc := NewFoodService(db, nop())
	ctx := context.Background()

	dairy, meat, brand := "dairy", "meat", "Acme"
	for _, item := range []*models.FoodItem{
		{Name: "Milk", Calories: 42, ServingSize: 100, ServingUnit: "ml", Category: &dairy, Brand: &brand},
		{Name: "Cheese", Calories: 402, ServingSize: 100, ServingUnit: "g", Category: &dairy},
		{Name: "Beef", Calories: 250, ServingSize: 100, ServingUnit: "g", Category: &meat},
	} {
		require.NoError(t, db.Create(item).Error)
	}

	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"dairy", "meat"}, categories)

	brands, err := svc.Brands(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme"}, brands)
}

func TestBulkCreateFoodItems(t *testing.T) {
	db := newTestDB(t)
	svc := NewFoodService(db, nop())
	ctx := context.Background()

	items, err := svc.BulkCreate(ctx, []models.CreateFoodItemInput{
		createFoodInput("Apple", 52, 100),
		createFoodInput("Banana", 89, 100),
	})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	// one invalid entry rejects the whole batch
	_, err = svc.BulkCreate(ctx, []models.CreateFoodItemInput{
		createFoodInput("Pear", 57, 100),
		{Name: "", ServingUnit: "g"},
	})
	assert.True(t, IsValidation(err))

	var count int64
	require.NoError(t, db.Model(&models.FoodItem{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestUpdateFoodItemFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewFoodService(db, nop())
	ctx := context.Background()

	item := seedFoodItem(t, db, "Oats", 389, 100, 16.9)

	name := "Rolled Oats"
	verified := true
	updated, err := svc.Update(ctx, item.ID.String(), models.UpdateFoodItemInput{
		Name: &name, IsVerified: &verified,
	})
	require.NoError(t, err)
	assert.Equal(t, "Rolled Oats", updated.Name)
	assert.True(t, updated.IsVerified)
	assert.Equal(t, 389.0, updated.Calories)

	_, err = svc.Update(ctx, item.ID.String(), models.UpdateFoodItemInput{})
	assert.True(t, IsValidation(err))

	negative := -1.0
	_, err = svc.Update(ctx, item.ID.String(), models.UpdateFoodItemInput{Calories: &negative})
	assert.True(t, IsValidation(err))
}

func TestFoodItemNutrition(t *testing.T) {
	db := newTestDB(t)
	svc := NewFoodService(db, nop())
	ctx := context.Background()

	item := seedFoodItem(t, db, "Chicken Breast", 165, 100, 31)

	_, amount, nutrition, err := svc.Nutrition(ctx, item.ID.String(), 150)
	require.NoError(t, err)
	assert.Equal(t, 150.0, amount)
	assert.Equal(t, 248, nutrition.Calories)
	assert.Equal(t, 46.5, nutrition.Protein)

	// no amount falls back to one serving
	_, amount, nutrition, err = svc.Nutrition(ctx, item.ID.String(), 0)
	require.NoError(t, err)
	assert.Equal(t, 100.0, amount)
	assert.Equal(t, 165, nutrition.Calories)
}

func TestDeleteFoodItem(t *testing.T) {
	db := newTestDB(t)
	svc := NewFoodService(db, nop())
	ctx := context.Background()

	item := seedFoodItem(t, db, "Apple", 52, 100, 0.3)
	require.NoError(t, svc.Delete(ctx, item.ID.String()))

	_, err := svc.Get(ctx, item.ID.String())
	assert.ErrorIs(t, err, ErrFoodItemNotFound)
}
