package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/elvisxd/calorie-tracker-api/config"
	"github.com/elvisxd/calorie-tracker-api/models"
	"github.com/elvisxd/calorie-tracker-api/services"
)

type UserController struct {
	svc *services.UserService
	cfg *config.Config
	log zerolog.Logger
}

func NewUserController(svc *services.UserService, cfg *config.Config, log zerolog.Logger) *UserController {
	return &UserController{svc: svc, cfg: cfg, log: log}
}

func (ctl *UserController) List(c *gin.Context) {
	users, err := ctl.svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondData(c, http.StatusOK, users)
}

func (ctl *UserController) Get(c *gin.Context) {
	user, err := ctl.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondData(c, http.StatusOK, user)
}

func (ctl *UserController) Create(c *gin.Context) {
	var input models.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Email == "" || input.PasswordHash == "" {
		respondError(c, http.StatusBadRequest, "email and password_hash are required")
		return
	}

	user, err := ctl.svc.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondMessage(c, http.StatusCreated, user, "user created successfully")
}

func (ctl *UserController) Update(c *gin.Context) {
	var input models.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := ctl.svc.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondMessage(c, http.StatusOK, user, "user updated successfully")
}

func (ctl *UserController) Delete(c *gin.Context) {
	if err := ctl.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondMessage(c, http.StatusOK, nil, "user deleted successfully")
}
