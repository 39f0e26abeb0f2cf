package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/elvisxd/calorie-tracker-api/models"
)

type UserService struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewUserService(db *gorm.DB, log zerolog.Logger) *UserService {
	return &UserService{db: db, log: log}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("created_at").Find(&users).Error
	return users, err
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create inserts a user from an already-hashed password and seeds the
// associated empty profile row.
func (s *UserService) Create(ctx context.Context, input models.CreateUserInput) (*models.User, error) {
	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", input.Email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := models.User{
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		FullName:     input.FullName,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(&models.UserProfile{ID: user.ID}).Error; err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to create profile for new user")
	}

	return &user, nil
}

func (s *UserService) Update(ctx context.Context, id string, input models.UpdateUserInput) (*models.User, error) {
	if input.Email == nil && input.FullName == nil {
		return nil, validationErr("no fields provided to update")
	}

	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if input.Email != nil {
		var other models.User
		err := s.db.WithContext(ctx).
			Where("email = ? AND id <> ?", *input.Email, id).
			First(&other).Error
		if err == nil {
			return nil, ErrEmailTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *input.Email
	}
	if input.FullName != nil {
		user.FullName = input.FullName
	}

	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes the user and all dependent rows in one transaction.
func (s *UserService) Delete(ctx context.Context, id string) error {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var mealIDs []uuid.UUID
		if err := tx.Model(&models.Meal{}).Where("user_id = ?", user.ID).
			Pluck("id", &mealIDs).Error; err != nil {
			return err
		}
		if len(mealIDs) > 0 {
			if err := tx.Where("meal_id IN ?", mealIDs).Delete(&models.MealFoodItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", user.ID).Delete(&models.Meal{}).Error; err != nil {
				return err
			}
		}
		for _, m := range []interface{}{
			&models.WeightLog{},
			&models.RefreshToken{},
			&models.PasswordReset{},
		} {
			if err := tx.Where("user_id = ?", user.ID).Delete(m).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("id = ?", user.ID).Delete(&models.UserProfile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}
