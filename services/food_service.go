package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/elvisxd/calorie-tracker-api/models"
	"github.com/elvisxd/calorie-tracker-api/utils"
)

// foodSortFields whitelists sortable columns; anything else falls back to
// the default name ordering.
var foodSortFields = map[string]bool{
	"name":       true,
	"calories":   true,
	"created_at": true,
}

type FoodService struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewFoodService(db *gorm.DB, log zerolog.Logger) *FoodService {
	return &FoodService{db: db, log: log}
}

// List returns food items matching the filter plus the exact total count
// for pagination.
func (s *FoodService) List(ctx context.Context, filter models.FoodItemFilter) ([]models.FoodItem, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.FoodItem{})

	if filter.Name != "" {
		q = q.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Name+"%")
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Brand != "" {
		q = q.Where("brand = ?", filter.Brand)
	}
	if filter.MinCalories != nil {
		q = q.Where("calories >= ?", *filter.MinCalories)
	}
	if filter.MaxCalories != nil {
		q = q.Where("calories <= ?", *filter.MaxCalories)
	}
	if filter.Verified != nil {
		q = q.Where("is_verified = ?", *filter.Verified)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := filter.SortBy
	if !foodSortFields[sortBy] {
		sortBy = "name"
	}
	order := sortBy
	if filter.SortOrder == "desc" {
		order += " DESC"
	}

	var items []models.FoodItem
	err := q.Order(order).Limit(filter.Limit).Offset(filter.Offset).Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Search is the lightweight name lookup behind autocompletion.
func (s *FoodService) Search(ctx context.Context, query string, limit int) ([]models.FoodItem, error) {
	var items []models.FoodItem
	err := s.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?)", "%"+query+"%").
		Order("name").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (s *FoodService) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := s.db.WithContext(ctx).Model(&models.FoodItem{}).
		Where("category IS NOT NULL").
		Distinct().
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}

func (s *FoodService) Brands(ctx context.Context) ([]string, error) {
	var brands []string
	err := s.db.WithContext(ctx).Model(&models.FoodItem{}).
		Where("brand IS NOT NULL").
		Distinct().
		Order("brand").
		Pluck("brand", &brands).Error
	return brands, err
}

func (s *FoodService) Get(ctx context.Context, id string) (*models.FoodItem, error) {
	var item models.FoodItem
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFoodItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func validateFoodItemInput(input models.CreateFoodItemInput) error {
	if input.Name == "" || input.Calories == nil || input.ServingSize == nil || input.ServingUnit == "" {
		return validationErr("name, calories, serving size and serving unit are required")
	}
	if *input.Calories < 0 || *input.ServingSize <= 0 ||
		input.Protein < 0 || input.Carbs < 0 || input.Fat < 0 ||
		input.Fiber < 0 || input.Sugar < 0 {
		return validationErr("nutrient values must not be negative and serving size must be greater than zero")
	}
	return nil
}

func foodItemFromInput(input models.CreateFoodItemInput) models.FoodItem {
	return models.FoodItem{
		Name:        input.Name,
		Calories:    *input.Calories,
		ServingSize: *input.ServingSize,
		ServingUnit: input.ServingUnit,
		Protein:     input.Protein,
		Carbs:       input.Carbs,
		Fat:         input.Fat,
		Fiber:       input.Fiber,
		Sugar:       input.Sugar,
		Category:    input.Category,
		Brand:       input.Brand,
		IsVerified:  input.IsVerified,
	}
}

func (s *FoodService) Create(ctx context.Context, input models.CreateFoodItemInput) (*models.FoodItem, error) {
	if err := validateFoodItemInput(input); err != nil {
		return nil, err
	}
	item := foodItemFromInput(input)
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// BulkCreate validates every item before inserting any of them.
func (s *FoodService) BulkCreate(ctx context.Context, inputs []models.CreateFoodItemInput) ([]models.FoodItem, error) {
	if len(inputs) == 0 {
		return nil, validationErr("an array of food items is required")
	}
	items := make([]models.FoodItem, 0, len(inputs))
	for _, input := range inputs {
		if err := validateFoodItemInput(input); err != nil {
			return nil, err
		}
		items = append(items, foodItemFromInput(input))
	}
	if err := s.db.WithContext(ctx).Create(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *FoodService) Update(ctx context.Context, id string, input models.UpdateFoodItemInput) (*models.FoodItem, error) {
	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Calories != nil {
		if *input.Calories < 0 {
			return nil, validationErr("calories must not be negative")
		}
		updates["calories"] = *input.Calories
	}
	if input.ServingSize != nil {
		if *input.ServingSize <= 0 {
			return nil, validationErr("serving size must be greater than zero")
		}
		updates["serving_size"] = *input.ServingSize
	}
	if input.ServingUnit != nil {
		updates["serving_unit"] = *input.ServingUnit
	}
	for field, v := range map[string]*float64{
		"protein": input.Protein,
		"carbs":   input.Carbs,
		"fat":     input.Fat,
		"fiber":   input.Fiber,
		"sugar":   input.Sugar,
	} {
		if v != nil {
			if *v < 0 {
				return nil, validationErr("nutrient values must not be negative")
			}
			updates[field] = *v
		}
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.Brand != nil {
		updates["brand"] = *input.Brand
	}
	if input.IsVerified != nil {
		updates["is_verified"] = *input.IsVerified
	}

	if len(updates) == 0 {
		return nil, validationErr("no fields provided to update")
	}

	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(item).Updates(updates).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (s *FoodService) Delete(ctx context.Context, id string) error {
	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(item).Error
}

// Nutrition scales a food item's nutrients to the requested amount. An
// amount of zero or less falls back to the item's own serving size.
func (s *FoodService) Nutrition(ctx context.Context, id string, amount float64) (*models.FoodItem, float64, utils.NutrientSet, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, 0, utils.NutrientSet{}, err
	}
	if amount <= 0 {
		amount = item.ServingSize
	}
	return item, amount, utils.ScaleNutrition(item, amount), nil
}
