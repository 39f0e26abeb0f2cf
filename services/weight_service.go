package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/elvisxd/calorie-tracker-api/models"
	"github.com/elvisxd/calorie-tracker-api/utils"
)

type WeightService struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewWeightService(db *gorm.DB, log zerolog.Logger) *WeightService {
	return &WeightService{db: db, log: log}
}

func (s *WeightService) List(ctx context.Context, filter models.WeightLogFilter) ([]models.WeightLog, int64, error) {
	if filter.UserID == "" {
		return nil, 0, validationErr("user_id is required")
	}
	if _, err := uuid.Parse(filter.UserID); err != nil {
		return nil, 0, validationErr("invalid user id")
	}

	query := s.db.WithContext(ctx).Model(&models.WeightLog{}).Where("user_id = ?", filter.UserID)
	if filter.StartDate != "" {
		query = query.Where("log_date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		query = query.Where("log_date <= ?", filter.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.WeightLog
	err := query.Order("log_date DESC").
		Limit(filter.Limit).Offset(filter.Offset).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (s *WeightService) Get(ctx context.Context, id string) (*models.WeightLog, error) {
	var log models.WeightLog
	err := s.db.WithContext(ctx).First(&log, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWeightLogNotFound
		}
		return nil, err
	}
	return &log, nil
}

func (s *WeightService) Create(ctx context.Context, input models.CreateWeightLogInput) (*models.WeightLog, error) {
	if input.UserID == "" {
		return nil, validationErr("user_id is required")
	}
	if input.WeightKg == nil {
		return nil, validationErr("weight_kg is required")
	}
	if *input.WeightKg <= 0 {
		return nil, validationErr("weight must be greater than zero")
	}
	if err := s.userExists(ctx, input.UserID); err != nil {
		return nil, err
	}

	logDate := input.LogDate
	if logDate == "" {
		logDate = time.Now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, logDate); err != nil {
		return nil, validationErr("log_date must be in YYYY-MM-DD format")
	}

	entry := models.WeightLog{
		UserID:   uuid.MustParse(input.UserID),
		WeightKg: *input.WeightKg,
		LogDate:  logDate,
		Notes:    input.Notes,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *WeightService) Update(ctx context.Context, id string, input models.UpdateWeightLogInput) (*models.WeightLog, error) {
	updates := map[string]any{}
	if input.WeightKg != nil {
		if *input.WeightKg <= 0 {
			return nil, validationErr("weight must be greater than zero")
		}
		updates["weight_kg"] = *input.WeightKg
	}
	if input.LogDate != nil {
		if _, err := time.Parse(dateLayout, *input.LogDate); err != nil {
			return nil, validationErr("log_date must be in YYYY-MM-DD format")
		}
		updates["log_date"] = *input.LogDate
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if len(updates) == 0 {
		return nil, validationErr("no fields to update")
	}

	entry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(entry).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *WeightService) Delete(ctx context.Context, id string) error {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(entry).Error
}

// Progress summarizes the full weight history of a user, oldest to newest.
func (s *WeightService) Progress(ctx context.Context, userID string) (*models.WeightProgressSummary, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, validationErr("invalid user id")
	}

	var logs []models.WeightLog
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("log_date ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, ErrNoWeightLogs
	}

	first := logs[0]
	last := logs[len(logs)-1]
	change := utils.Round2(last.WeightKg - first.WeightKg)

	var changePct float64
	if first.WeightKg != 0 {
		changePct = utils.Round2((last.WeightKg - first.WeightKg) / first.WeightKg * 100)
	}

	firstDate, _ := time.Parse(dateLayout, first.LogDate)
	lastDate, _ := time.Parse(dateLayout, last.LogDate)
	days := int(lastDate.Sub(firstDate).Hours() / 24)
	if days < 1 {
		days = 1
	}
	weeks := float64(days) / 7

	return &models.WeightProgressSummary{
		UserID:                 userID,
		CurrentWeight:          last.WeightKg,
		StartingWeight:         first.WeightKg,
		WeightChange:           change,
		WeightChangePercentage: changePct,
		AverageWeeklyChange:    utils.Round2((last.WeightKg - first.WeightKg) / weeks),
		LogsCount:              len(logs),
		FirstLogDate:           first.LogDate,
		LastLogDate:            last.LogDate,
	}, nil
}

func (s *WeightService) userExists(ctx context.Context, userID string) error {
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
