package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/elvisxd/calorie-tracker-api/config"
	"github.com/elvisxd/calorie-tracker-api/models"
	"github.com/elvisxd/calorie-tracker-api/services"
)

type WeightLogController struct {
	svc *services.WeightService
	cfg *config.Config
	log zerolog.Logger
}

func NewWeightLogController(svc *services.WeightService, cfg *config.Config, log zerolog.Logger) *WeightLogController {
	return &WeightLogController{svc: svc, cfg: cfg, log: log}
}

func (ctl *WeightLogController) List(c *gin.Context) {
	limit, offset := pagination(c, defaultLimit)
	filter := models.WeightLogFilter{
		UserID:    c.Query("user_id"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Limit:     limit,
		Offset:    offset,
	}

	logs, total, err := ctl.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondList(c, logs, len(logs), total, limit, offset)
}

func (ctl *WeightLogController) Get(c *gin.Context) {
	entry, err := ctl.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondData(c, http.StatusOK, entry)
}

func (ctl *WeightLogController) Create(c *gin.Context) {
	var input models.CreateWeightLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := ctl.svc.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondMessage(c, http.StatusCreated, entry, "weight log created successfully")
}

func (ctl *WeightLogController) Update(c *gin.Context) {
	var input models.UpdateWeightLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := ctl.svc.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondMessage(c, http.StatusOK, entry, "weight log updated successfully")
}

func (ctl *WeightLogController) Delete(c *gin.Context) {
	if err := ctl.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondMessage(c, http.StatusOK, nil, "weight log deleted successfully")
}

func (ctl *WeightLogController) Progress(c *gin.Context) {
	summary, err := ctl.svc.Progress(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondData(c, http.StatusOK, summary)
}
