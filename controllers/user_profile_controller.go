package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/elvisxd/calorie-tracker-api/config"
	"github.com/elvisxd/calorie-tracker-api/models"
	"github.com/elvisxd/calorie-tracker-api/services"
)

type UserProfileController struct {
	svc *services.ProfileService
	cfg *config.Config
	log zerolog.Logger
}

func NewUserProfileController(svc *services.ProfileService, cfg *config.Config, log zerolog.Logger) *UserProfileController {
	return &UserProfileController{svc: svc, cfg: cfg, log: log}
}

func (ctl *UserProfileController) Get(c *gin.Context) {
	profile, err := ctl.svc.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondData(c, http.StatusOK, profile)
}

func (ctl *UserProfileController) Upsert(c *gin.Context) {
	var input models.UpsertUserProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, created, err := ctl.svc.Upsert(c.Request.Context(), c.Param("userId"), input)
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}

	status := http.StatusOK
	message := "profile updated successfully"
	if created {
		status = http.StatusCreated
		message = "profile created successfully"
	}
	respondMessage(c, status, profile, message)
}

// CalculateGoals derives daily calorie and macro targets from the profile
// without persisting them.
func (ctl *UserProfileController) CalculateGoals(c *gin.Context) {
	goals, err := ctl.svc.CalculateGoals(c.Request.Context(), c.Param("userId"), c.Query("goal_type"))
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondData(c, http.StatusOK, goals)
}

func (ctl *UserProfileController) UpdateGoals(c *gin.Context) {
	var input models.UpdateNutritionGoalsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := ctl.svc.UpdateGoals(c.Request.Context(), c.Param("userId"), input)
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondMessage(c, http.StatusOK, profile, "nutrition goals updated successfully")
}
