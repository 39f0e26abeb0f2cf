package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/elvisxd/calorie-tracker-api/config"
	"github.com/elvisxd/calorie-tracker-api/models"
	"github.com/elvisxd/calorie-tracker-api/services"
)

type FoodItemController struct {
	svc *services.FoodService
	cfg *config.Config
	log zerolog.Logger
}

func NewFoodItemController(svc *services.FoodService, cfg *config.Config, log zerolog.Logger) *FoodItemController {
	return &FoodItemController{svc: svc, cfg: cfg, log: log}
}

func (ctl *FoodItemController) List(c *gin.Context) {
	limit, offset := pagination(c, defaultLimit)
	filter := models.FoodItemFilter{
		Name:      c.Query("name"),
		Category:  c.Query("category"),
		Brand:     c.Query("brand"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Limit:     limit,
		Offset:    offset,
	}
	if raw := c.Query("min_calories"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinCalories = &v
		}
	}
	if raw := c.Query("max_calories"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxCalories = &v
		}
	}
	if raw := c.Query("verified"); raw != "" {
		v := raw == "true"
		filter.Verified = &v
	}

	items, total, err := ctl.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondList(c, items, len(items), total, limit, offset)
}

func (ctl *FoodItemController) Search(c *gin.Context) {
	query := c.Query("q")
	if len(query) < 2 {
		respondError(c, http.StatusBadRequest, "search query must be at least 2 characters long")
		return
	}
	limit, _ := pagination(c, defaultSearchLimit)

	items, err := ctl.svc.Search(c.Request.Context(), query, limit)
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondData(c, http.StatusOK, items)
}

func (ctl *FoodItemController) Categories(c *gin.Context) {
	categories, err := ctl.svc.Categories(c.Request.Context())
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondData(c, http.StatusOK, categories)
}

func (ctl *FoodItemController) Brands(c *gin.Context) {
	brands, err := ctl.svc.Brands(c.Request.Context())
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondData(c, http.StatusOK, brands)
}

func (ctl *FoodItemController) Get(c *gin.Context) {
	item, err := ctl.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondData(c, http.StatusOK, item)
}

// Nutrition returns the item's nutrients scaled to the requested amount.
func (ctl *FoodItemController) Nutrition(c *gin.Context) {
	amount := 0.0
	if raw := c.Query("amount"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			respondError(c, http.StatusBadRequest, "amount must be a positive number")
			return
		}
		amount = v
	}

	item, amount, nutrition, err := ctl.svc.Nutrition(c.Request.Context(), c.Param("id"), amount)
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondData(c, http.StatusOK, gin.H{
		"food_item": item,
		"amount":    amount,
		"nutrition": nutrition,
	})
}

func (ctl *FoodItemController) Create(c *gin.Context) {
	var input models.CreateFoodItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := ctl.svc.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondMessage(c, http.StatusCreated, item, "food item created successfully")
}

func (ctl *FoodItemController) BulkCreate(c *gin.Context) {
	var body struct {
		Items []models.CreateFoodItemInput `json:"items"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(body.Items) == 0 {
		respondError(c, http.StatusBadRequest, "items array is required and must not be empty")
		return
	}

	items, err := ctl.svc.BulkCreate(c.Request.Context(), body.Items)
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondMessage(c, http.StatusCreated, items, "food items created successfully")
}

func (ctl *FoodItemController) Update(c *gin.Context) {
	var input models.UpdateFoodItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := ctl.svc.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondMessage(c, http.StatusOK, item, "food item updated successfully")
}

func (ctl *FoodItemController) Delete(c *gin.Context) {
	if err := ctl.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondMessage(c, http.StatusOK, nil, "food item deleted successfully")
}
