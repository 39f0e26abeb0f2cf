package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/elvisxd/calorie-tracker-api/config"
	"github.com/elvisxd/calorie-tracker-api/services"
)

type AuthController struct {
	svc *services.AuthService
	cfg *config.Config
	log zerolog.Logger
}

func NewAuthController(svc *services.AuthService, cfg *config.Config, log zerolog.Logger) *AuthController {
	return &AuthController{svc: svc, cfg: cfg, log: log}
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterInput struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name"`
}

type RefreshInput struct {
	RefreshToken string `json:"refreshToken"`
}

type ForgotPasswordInput struct {
	Email string `json:"email"`
}

type ResetPasswordInput struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

func (ctl *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Email == "" || input.Password == "" {
		respondError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	result, err := ctl.svc.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondData(c, http.StatusOK, result)
}

func (ctl *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Email == "" || input.Password == "" {
		respondError(c, http.StatusBadRequest, "email and password are required")
		return
	}
	if len(input.Password) < 6 {
		respondError(c, http.StatusBadRequest, "password must be at least 6 characters long")
		return
	}

	result, err := ctl.svc.Register(c.Request.Context(), input.Email, input.Password, input.FullName)
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondMessage(c, http.StatusCreated, result, "user registered successfully")
}

func (ctl *AuthController) Refresh(c *gin.Context) {
	var input RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil || input.RefreshToken == "" {
		respondError(c, http.StatusBadRequest, "refresh token is required")
		return
	}

	result, err := ctl.svc.Refresh(c.Request.Context(), input.RefreshToken)
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondData(c, http.StatusOK, result)
}

func (ctl *AuthController) Logout(c *gin.Context) {
	var input RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil || input.RefreshToken == "" {
		respondError(c, http.StatusBadRequest, "refresh token is required")
		return
	}

	if err := ctl.svc.Logout(c.Request.Context(), input.RefreshToken); err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondMessage(c, http.StatusOK, nil, "logged out successfully")
}

// ForgotPassword always reports success so callers cannot probe which
// emails are registered.
func (ctl *AuthController) ForgotPassword(c *gin.Context) {
	var input ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" {
		respondError(c, http.StatusBadRequest, "email is required")
		return
	}

	token, err := ctl.svc.ForgotPassword(c.Request.Context(), input.Email)
	if err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}

	// outside production the minted token rides along for testing
	var data any
	if !ctl.cfg.IsProduction() && token != "" {
		data = gin.H{"reset_token": token}
	}
	respondMessage(c, http.StatusOK, data, "if the email is registered, a reset link has been sent")
}

func (ctl *AuthController) ResetPassword(c *gin.Context) {
	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Token == "" || input.NewPassword == "" {
		respondError(c, http.StatusBadRequest, "token and new password are required")
		return
	}
	if len(input.NewPassword) < 6 {
		respondError(c, http.StatusBadRequest, "password must be at least 6 characters long")
		return
	}

	if err := ctl.svc.ResetPassword(c.Request.Context(), input.Token, input.NewPassword); err != nil {
		respondServiceError(c, ctl.log, ctl.cfg.IsProduction(), err)
		return
	}
	respondMessage(c, http.StatusOK, nil, "password has been reset successfully")
}
