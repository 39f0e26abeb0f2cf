package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/elvisxd/calorie-tracker-api/models"
	"github.com/elvisxd/calorie-tracker-api/utils"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

type MealService struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewMealService(db *gorm.DB, log zerolog.Logger) *MealService {
	return &MealService{db: db, log: log}
}

// MealFoodItemDetail is a meal link annotated with its scaled nutrition.
type MealFoodItemDetail struct {
	models.MealFoodItem
	Nutrition utils.NutrientSet `json:"nutrition"`
}

// MealDetail is a meal with its links and the aggregated nutrition summary.
type MealDetail struct {
	models.Meal
	FoodItems        []MealFoodItemDetail    `json:"food_items"`
	NutritionSummary models.NutritionSummary `json:"nutrition_summary"`
}

func (s *MealService) List(ctx context.Context, filter models.MealFilter) ([]models.Meal, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Meal{}).Where("user_id = ?", filter.UserID)

	if filter.StartDate != "" {
		q = q.Where("meal_date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		q = q.Where("meal_date <= ?", filter.EndDate)
	}
	if filter.MealType != "" {
		q = q.Where("meal_type = ?", filter.MealType)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var meals []models.Meal
	err := q.Order("meal_date DESC").Order("meal_time DESC").
		Limit(filter.Limit).Offset(filter.Offset).
		Find(&meals).Error
	if err != nil {
		return nil, 0, err
	}
	return meals, total, nil
}

// Get loads a meal with its food items and computes per-item nutrition plus
// the meal-level aggregate.
func (s *MealService) Get(ctx context.Context, id string) (*MealDetail, error) {
	var meal models.Meal
	err := s.db.WithContext(ctx).
		Preload("FoodItems.FoodItem").
		First(&meal, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}

	details := make([]MealFoodItemDetail, 0, len(meal.FoodItems))
	sets := make([]utils.NutrientSet, 0, len(meal.FoodItems))
	for _, link := range meal.FoodItems {
		set := utils.ScaleNutrition(link.FoodItem, link.Amount)
		details = append(details, MealFoodItemDetail{MealFoodItem: link, Nutrition: set})
		sets = append(sets, set)
	}
	summary := utils.AggregateNutrition(sets)

	meal.FoodItems = nil
	return &MealDetail{
		Meal:      meal,
		FoodItems: details,
		NutritionSummary: models.NutritionSummary{
			TotalCalories: summary.Calories,
			TotalProtein:  summary.Protein,
			TotalCarbs:    summary.Carbs,
			TotalFat:      summary.Fat,
			TotalFiber:    summary.Fiber,
			TotalSugar:    summary.Sugar,
		},
	}, nil
}

func (s *MealService) Create(ctx context.Context, input models.CreateMealInput) (*models.Meal, error) {
	if input.UserID == "" || input.Name == "" || input.MealType == "" {
		return nil, validationErr("user id, name and meal type are required")
	}
	if !models.ValidMealType(input.MealType) {
		return nil, validationErr("meal type must be breakfast, lunch, dinner or snack")
	}

	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return nil, validationErr("invalid user id")
	}
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}

	now := time.Now()
	mealDate := input.MealDate
	if mealDate == "" {
		mealDate = now.Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, mealDate); err != nil {
		return nil, validationErr("meal date must be in YYYY-MM-DD format")
	}
	mealTime := input.MealTime
	if mealTime == "" {
		mealTime = now.Format(timeLayout)
	} else if _, err := time.Parse(timeLayout, mealTime); err != nil {
		return nil, validationErr("meal time must be in HH:MM:SS format")
	}

	for _, item := range input.FoodItems {
		if item.Amount <= 0 {
			return nil, validationErr("food item amount must be greater than zero")
		}
		if _, err := uuid.Parse(item.FoodItemID); err != nil {
			return nil, validationErr("invalid food item id")
		}
	}

	meal := models.Meal{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		MealDate:    mealDate,
		MealTime:    mealTime,
		MealType:    input.MealType,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&meal).Error; err != nil {
			return err
		}
		for _, item := range input.FoodItems {
			foodID := uuid.MustParse(item.FoodItemID)
			var food models.FoodItem
			if err := tx.First(&food, "id = ?", foodID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrFoodItemNotFound
				}
				return err
			}
			link := models.MealFoodItem{MealID: meal.ID, FoodItemID: foodID, Amount: item.Amount}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "meal_id"}, {Name: "food_item_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{"amount": item.Amount}),
			}).Create(&link).Error; err != nil {
				return err
			}
		}
		return s.recomputeTotal(tx, meal.ID)
	})
	if err != nil {
		return nil, err
	}

	return s.reload(ctx, meal.ID)
}

func (s *MealService) Update(ctx context.Context, id string, input models.UpdateMealInput) (*models.Meal, error) {
	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.MealDate != nil {
		if _, err := time.Parse(dateLayout, *input.MealDate); err != nil {
			return nil, validationErr("meal date must be in YYYY-MM-DD format")
		}
		updates["meal_date"] = *input.MealDate
	}
	if input.MealTime != nil {
		if _, err := time.Parse(timeLayout, *input.MealTime); err != nil {
			return nil, validationErr("meal time must be in HH:MM:SS format")
		}
		updates["meal_time"] = *input.MealTime
	}
	if input.MealType != nil {
		if !models.ValidMealType(*input.MealType) {
			return nil, validationErr("meal type must be breakfast, lunch, dinner or snack")
		}
		updates["meal_type"] = *input.MealType
	}
	if len(updates) == 0 {
		return nil, validationErr("no fields provided to update")
	}

	var meal models.Meal
	err := s.db.WithContext(ctx).First(&meal, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&meal).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

// Delete removes the meal's links and then the meal inside one transaction.
func (s *MealService) Delete(ctx context.Context, id string) error {
	var meal models.Meal
	err := s.db.WithContext(ctx).First(&meal, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMealNotFound
		}
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meal_id = ?", meal.ID).Delete(&models.MealFoodItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&meal).Error
	})
}

// AddFoodItem links a food item to a meal. The write is an upsert on
// (meal_id, food_item_id): a pair already present has its amount replaced
// instead of duplicating the row. The returned bool reports whether a new
// link was created.
func (s *MealService) AddFoodItem(ctx context.Context, mealID string, input models.CreateMealFoodItemInput) (*models.MealFoodItem, bool, *models.Meal, error) {
	if input.FoodItemID == "" || input.Amount <= 0 {
		return nil, false, nil, validationErr("food item id and an amount greater than zero are required")
	}

	meal, err := s.mealByID(ctx, mealID)
	if err != nil {
		return nil, false, nil, err
	}

	foodID, err := uuid.Parse(input.FoodItemID)
	if err != nil {
		return nil, false, nil, validationErr("invalid food item id")
	}
	var food models.FoodItem
	if err := s.db.WithContext(ctx).First(&food, "id = ?", foodID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil, ErrFoodItemNotFound
		}
		return nil, false, nil, err
	}

	link := models.MealFoodItem{MealID: meal.ID, FoodItemID: foodID, Amount: input.Amount}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "meal_id"}, {Name: "food_item_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"amount": input.Amount}),
		}).Create(&link).Error; err != nil {
			return err
		}
		return s.recomputeTotal(tx, meal.ID)
	})
	if err != nil {
		return nil, false, nil, err
	}

	var stored models.MealFoodItem
	err = s.db.WithContext(ctx).
		Where("meal_id = ? AND food_item_id = ?", meal.ID, foodID).
		First(&stored).Error
	if err != nil {
		return nil, false, nil, err
	}
	created := stored.ID == link.ID

	updated, err := s.reload(ctx, meal.ID)
	if err != nil {
		return nil, false, nil, err
	}
	return &stored, created, updated, nil
}

func (s *MealService) UpdateFoodItem(ctx context.Context, mealID, foodItemID string, amount float64) (*models.MealFoodItem, *models.Meal, error) {
	if amount <= 0 {
		return nil, nil, validationErr("amount must be greater than zero")
	}

	link, err := s.linkByPair(ctx, mealID, foodItemID)
	if err != nil {
		return nil, nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(link).Update("amount", amount).Error; err != nil {
			return err
		}
		return s.recomputeTotal(tx, link.MealID)
	})
	if err != nil {
		return nil, nil, err
	}

	meal, err := s.reload(ctx, link.MealID)
	if err != nil {
		return nil, nil, err
	}
	return link, meal, nil
}

func (s *MealService) RemoveFoodItem(ctx context.Context, mealID, foodItemID string) (*models.Meal, error) {
	link, err := s.linkByPair(ctx, mealID, foodItemID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(link).Error; err != nil {
			return err
		}
		return s.recomputeTotal(tx, link.MealID)
	})
	if err != nil {
		return nil, err
	}

	return s.reload(ctx, link.MealID)
}

// DailyMealSummary groups one day's meals by type with day-level nutrition.
type DailyMealSummary struct {
	Date          string                        `json:"date"`
	TotalCalories int                           `json:"total_calories"`
	Meals         map[string][]MealSummaryEntry `json:"meals"`
	Nutrition     models.NutritionSummary       `json:"nutrition"`
}

type MealSummaryEntry struct {
	MealID   uuid.UUID `json:"meal_id"`
	MealName string    `json:"meal_name"`
	Calories int       `json:"calories"`
}

func (s *MealService) DailySummary(ctx context.Context, userIDStr, date string) (*DailyMealSummary, error) {
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, validationErr("invalid user id")
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, validationErr("date must be in YYYY-MM-DD format")
	}

	var meals []models.Meal
	err = s.db.WithContext(ctx).
		Preload("FoodItems.FoodItem").
		Where("user_id = ? AND meal_date = ?", userID, date).
		Find(&meals).Error
	if err != nil {
		return nil, err
	}

	summary := &DailyMealSummary{
		Date: date,
		Meals: map[string][]MealSummaryEntry{
			models.MealTypeBreakfast: {},
			models.MealTypeLunch:     {},
			models.MealTypeDinner:    {},
			models.MealTypeSnack:     {},
		},
	}

	var daySets []utils.NutrientSet
	for _, meal := range meals {
		sets := make([]utils.NutrientSet, 0, len(meal.FoodItems))
		for _, link := range meal.FoodItems {
			sets = append(sets, utils.ScaleNutrition(link.FoodItem, link.Amount))
		}
		mealTotal := utils.AggregateNutrition(sets)
		daySets = append(daySets, mealTotal)

		summary.TotalCalories += meal.TotalCalories
		if bucket, ok := summary.Meals[meal.MealType]; ok {
			summary.Meals[meal.MealType] = append(bucket, MealSummaryEntry{
				MealID:   meal.ID,
				MealName: meal.Name,
				Calories: meal.TotalCalories,
			})
		}
	}

	dayTotal := utils.AggregateNutrition(daySets)
	summary.Nutrition = models.NutritionSummary{
		TotalCalories: dayTotal.Calories,
		TotalProtein:  dayTotal.Protein,
		TotalCarbs:    dayTotal.Carbs,
		TotalFat:      dayTotal.Fat,
		TotalFiber:    dayTotal.Fiber,
		TotalSugar:    dayTotal.Sugar,
	}
	return summary, nil
}

func (s *MealService) userExists(ctx context.Context, id uuid.UUID) error {
	var user models.User
	err := s.db.WithContext(ctx).Select("id").First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *MealService) mealByID(ctx context.Context, id string) (*models.Meal, error) {
	var meal models.Meal
	err := s.db.WithContext(ctx).First(&meal, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}
	return &meal, nil
}

func (s *MealService) linkByPair(ctx context.Context, mealID, foodItemID string) (*models.MealFoodItem, error) {
	var link models.MealFoodItem
	err := s.db.WithContext(ctx).
		Where("meal_id = ? AND food_item_id = ?", mealID, foodItemID).
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMealFoodItemNotFound
		}
		return nil, err
	}
	return &link, nil
}

func (s *MealService) reload(ctx context.Context, id uuid.UUID) (*models.Meal, error) {
	var meal models.Meal
	err := s.db.WithContext(ctx).
		Preload("FoodItems").
		First(&meal, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

// recomputeTotal refreshes the denormalized total_calories column from the
// meal's current links. It runs inside the same transaction as the link
// mutation so readers never observe a stale aggregate.
func (s *MealService) recomputeTotal(tx *gorm.DB, mealID uuid.UUID) error {
	var links []models.MealFoodItem
	if err := tx.Preload("FoodItem").Where("meal_id = ?", mealID).Find(&links).Error; err != nil {
		return err
	}

	total := 0
	for _, link := range links {
		total += utils.ScaleNutrition(link.FoodItem, link.Amount).Calories
	}
	return tx.Model(&models.Meal{}).Where("id = ?", mealID).
		Update("total_calories", total).Error
}
