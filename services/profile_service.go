package services

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/elvisxd/calorie-tracker-api/models"
	"github.com/elvisxd/calorie-tracker-api/utils"
)

type ProfileService struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewProfileService(db *gorm.DB, log zerolog.Logger) *ProfileService {
	return &ProfileService{db: db, log: log}
}

type MacrosDistribution struct {
	ProteinPercentage int `json:"protein_percentage"`
	CarbsPercentage   int `json:"carbs_percentage"`
	FatPercentage     int `json:"fat_percentage"`
}

// ProfileStats are the derived metabolic numbers, computed only when the
// profile has height, weight, age, gender and activity level.
type ProfileStats struct {
	BMI                float64            `json:"bmi"`
	BMICategory        string             `json:"bmi_category"`
	BMR                int                `json:"bmr"`
	TDEE               int                `json:"tdee"`
	MacrosDistribution MacrosDistribution `json:"macros_distribution"`
}

// ProfileDetail flattens the profile row and, when computable, its stats.
type ProfileDetail struct {
	models.UserProfile
	*ProfileStats
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*ProfileDetail, error) {
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}

	var profile models.UserProfile
	err := s.db.WithContext(ctx).First(&profile, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	detail := &ProfileDetail{UserProfile: profile}
	if profileComplete(&profile) {
		bmi := utils.CalculateBMI(*profile.WeightKg, *profile.HeightCm)
		bmr := utils.CalculateBMR(*profile.WeightKg, *profile.HeightCm, *profile.Age, *profile.Gender)
		tdee := utils.CalculateTDEE(bmr, *profile.ActivityLevel)

		detail.ProfileStats = &ProfileStats{
			BMI:                bmi,
			BMICategory:        utils.BMICategory(bmi),
			BMR:                int(math.Round(bmr)),
			TDEE:               int(math.Round(tdee)),
			MacrosDistribution: macrosDistribution(&profile),
		}
	}
	return detail, nil
}

// Upsert creates or partially updates the profile. The returned bool is
// true when a new profile row was created.
func (s *ProfileService) Upsert(ctx context.Context, userID string, input models.UpsertUserProfileInput) (*models.UserProfile, bool, error) {
	if err := s.userExists(ctx, userID); err != nil {
		return nil, false, err
	}
	if err := validateProfileInput(input); err != nil {
		return nil, false, err
	}

	id := uuid.MustParse(userID)

	var profile models.UserProfile
	err := s.db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	created := errors.Is(err, gorm.ErrRecordNotFound)

	if created {
		profile = models.UserProfile{ID: id}
	}
	applyProfileInput(&profile, input)

	if created {
		if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
			return nil, false, err
		}
	} else {
		if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
			return nil, false, err
		}
	}
	return &profile, created, nil
}

// NutritionGoals is the computed calorie and macro target set.
type NutritionGoals struct {
	DailyCalorieGoal float64 `json:"daily_calorie_goal"`
	DailyProteinGoal float64 `json:"daily_protein_goal"`
	DailyCarbsGoal   float64 `json:"daily_carbs_goal"`
	DailyFatGoal     float64 `json:"daily_fat_goal"`
	BMR              float64 `json:"bmr"`
	TDEE             float64 `json:"tdee"`
	GoalType         string  `json:"goal_type"`
}

// CalculateGoals derives daily targets from the profile's metabolic data.
func (s *ProfileService) CalculateGoals(ctx context.Context, userID, goalType string) (*NutritionGoals, error) {
	var profile models.UserProfile
	err := s.db.WithContext(ctx).First(&profile, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	if !profileComplete(&profile) {
		return nil, validationErr("height, weight, age, gender and activity level are required to calculate nutrition goals")
	}

	if goalType == "" {
		goalType = utils.GoalMaintain
	}

	bmr := utils.CalculateBMR(*profile.WeightKg, *profile.HeightCm, *profile.Age, *profile.Gender)
	tdee := utils.CalculateTDEE(bmr, *profile.ActivityLevel)
	calorieGoal := utils.GoalCalories(tdee, goalType)
	macros := utils.MacroSplit(calorieGoal)

	return &NutritionGoals{
		DailyCalorieGoal: math.Round(calorieGoal),
		DailyProteinGoal: macros.ProteinG,
		DailyCarbsGoal:   macros.CarbsG,
		DailyFatGoal:     macros.FatG,
		BMR:              math.Round(bmr),
		TDEE:             math.Round(tdee),
		GoalType:         goalType,
	}, nil
}

func (s *ProfileService) UpdateGoals(ctx context.Context, userID string, input models.UpdateNutritionGoalsInput) (*models.UserProfile, error) {
	if input.DailyCalorieGoal == nil || input.DailyProteinGoal == nil ||
		input.DailyCarbsGoal == nil || input.DailyFatGoal == nil {
		return nil, validationErr("all nutrition goals are required")
	}
	for _, v := range []*float64{input.DailyCalorieGoal, input.DailyProteinGoal, input.DailyCarbsGoal, input.DailyFatGoal} {
		if *v <= 0 {
			return nil, validationErr("nutrition goals must be greater than zero")
		}
	}

	var profile models.UserProfile
	err := s.db.WithContext(ctx).First(&profile, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	profile.DailyCalorieGoal = input.DailyCalorieGoal
	profile.DailyProteinGoal = input.DailyProteinGoal
	profile.DailyCarbsGoal = input.DailyCarbsGoal
	profile.DailyFatGoal = input.DailyFatGoal

	if err := s.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *ProfileService) userExists(ctx context.Context, userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return validationErr("invalid user id")
	}
	var user models.User
	err := s.db.WithContext(ctx).Select("id").First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func profileComplete(p *models.UserProfile) bool {
	return p.HeightCm != nil && p.WeightKg != nil && p.Age != nil &&
		p.Gender != nil && p.ActivityLevel != nil
}

// macrosDistribution reports the stored daily goals as percentages of the
// calorie goal; goals that are unset contribute zero.
func macrosDistribution(p *models.UserProfile) MacrosDistribution {
	var dist MacrosDistribution
	if p.DailyCalorieGoal == nil || *p.DailyCalorieGoal <= 0 {
		return dist
	}
	calories := *p.DailyCalorieGoal
	if p.DailyProteinGoal != nil {
		dist.ProteinPercentage = int(math.Round(*p.DailyProteinGoal * 4 / calories * 100))
	}
	if p.DailyCarbsGoal != nil {
		dist.CarbsPercentage = int(math.Round(*p.DailyCarbsGoal * 4 / calories * 100))
	}
	if p.DailyFatGoal != nil {
		dist.FatPercentage = int(math.Round(*p.DailyFatGoal * 9 / calories * 100))
	}
	return dist
}

func validateProfileInput(input models.UpsertUserProfileInput) error {
	if input.HeightCm != nil && *input.HeightCm <= 0 {
		return validationErr("height must be greater than zero")
	}
	if input.WeightKg != nil && *input.WeightKg <= 0 {
		return validationErr("weight must be greater than zero")
	}
	if input.Age != nil && *input.Age <= 0 {
		return validationErr("age must be greater than zero")
	}
	if input.ActivityLevel != nil && !models.ValidActivityLevel(*input.ActivityLevel) {
		return validationErr("invalid activity level")
	}
	for _, v := range []*float64{input.DailyCalorieGoal, input.DailyProteinGoal, input.DailyCarbsGoal, input.DailyFatGoal} {
		if v != nil && *v <= 0 {
			return validationErr("nutrition goals must be greater than zero")
		}
	}
	return nil
}

func applyProfileInput(p *models.UserProfile, input models.UpsertUserProfileInput) {
	if input.HeightCm != nil {
		p.HeightCm = input.HeightCm
	}
	if input.WeightKg != nil {
		p.WeightKg = input.WeightKg
	}
	if input.Age != nil {
		p.Age = input.Age
	}
	if input.Gender != nil {
		p.Gender = input.Gender
	}
	if input.ActivityLevel != nil {
		p.ActivityLevel = input.ActivityLevel
	}
	if input.DailyCalorieGoal != nil {
		p.DailyCalorieGoal = input.DailyCalorieGoal
	}
	if input.DailyProteinGoal != nil {
		p.DailyProteinGoal = input.DailyProteinGoal
	}
	if input.DailyCarbsGoal != nil {
		p.DailyCarbsGoal = input.DailyCarbsGoal
	}
	if input.DailyFatGoal != nil {
		p.DailyFatGoal = input.DailyFatGoal
	}
}
