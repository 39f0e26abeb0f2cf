package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/elvisxd/calorie-tracker-api/config"
	"github.com/elvisxd/calorie-tracker-api/models"
	"github.com/elvisxd/calorie-tracker-api/services"
)

type MealController struct {
	svc *services.MealService
	cfg *config.Config
	log zerolog.Logger
}

func NewMealController(svc *services.MealService, cfg *config.Config, log zerolog.Logger) *MealController {
	return &MealController{svc: svc, cfg: cfg, log: log}
}

func (ctl *MealController) List(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		respondError(c, http.StatusBadRequest, "user_id is required")
		return
	}

	limit, offset := pagination(c, defaultLimit)
	filter := models.MealFilter{
		UserID:    userID,
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		MealType:  c.Query("meal_type"),
		Limit:     limit,
		Offset:    offset,
	}

	meals, total, err := ctl.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondList(c, meals, len(meals), total, limit, offset)
}

func (ctl *MealController) Get(c *gin.Context) {
	meal, err := ctl.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondData(c, http.StatusOK, meal)
}

func (ctl *MealController) Create(c *gin.Context) {
	var input models.CreateMealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	meal, err := ctl.svc.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondMessage(c, http.StatusCreated, meal, "meal created successfully")
}

func (ctl *MealController) Update(c *gin.Context) {
	var input models.UpdateMealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	meal, err := ctl.svc.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondMessage(c, http.StatusOK, meal, "meal updated successfully")
}

func (ctl *MealController) Delete(c *gin.Context) {
	if err := ctl.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondMessage(c, http.StatusOK, nil, "meal deleted successfully")
}

// AddFoodItem attaches a food item to a meal, or updates the amount when
// the pairing already exists.
func (ctl *MealController) AddFoodItem(c *gin.Context) {
	var input models.CreateMealFoodItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	link, created, meal, err := ctl.svc.AddFoodItem(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}

	status := http.StatusOK
	message := "food item amount updated in meal"
	if created {
		status = http.StatusCreated
		message = "food item added to meal"
	}
	respondMessage(c, status, gin.H{"meal_food_item": link, "meal": meal}, message)
}

func (ctl *MealController) UpdateFoodItem(c *gin.Context) {
	var input models.UpdateMealFoodItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	link, meal, err := ctl.svc.UpdateFoodItem(c.Request.Context(), c.Param("id"), c.Param("foodItemId"), input.Amount)
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondMessage(c, http.StatusOK, gin.H{"meal_food_item": link, "meal": meal}, "food item amount updated in meal")
}

func (ctl *MealController) RemoveFoodItem(c *gin.Context) {
	meal, err := ctl.svc.RemoveFoodItem(c.Request.Context(), c.Param("id"), c.Param("foodItemId"))
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondMessage(c, http.StatusOK, gin.H{"meal": meal}, "food item removed from meal")
}

func (ctl *MealController) DailySummary(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		respondError(c, http.StatusBadRequest, "user_id is required")
		return
	}

	summary, err := ctl.svc.DailySummary(c.Request.Context(), userID, c.Query("date"))
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondData(c, http.StatusOK, summary)
}
