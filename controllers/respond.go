package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/elvisxd/calorie-tracker-api/services"
)

const (
	defaultLimit       = 20
	defaultSearchLimit = 10
)

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{"success": true, "data": data, "message": message})
}

func respondList(c *gin.Context, data any, count int, total int64, limit, offset int) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"pagination": gin.H{
			"count":  count,
			"total":  total,
			"limit":  limit,
			"offset": offset,
		},
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// respondServiceError translates service errors into the HTTP taxonomy.
// Unexpected errors are logged and hidden behind a generic message when
// running in production.
func respondServiceError(c *gin.Context, log zerolog.Logger, production bool, err error) {
	switch {
	case services.IsValidation(err):
		respondError(c, http.StatusBadRequest, err.Error())
	case services.IsAuthError(err):
		respondError(c, http.StatusUnauthorized, err.Error())
	case services.IsNotFound(err):
		respondError(c, http.StatusNotFound, err.Error())
	case services.IsConflict(err):
		respondError(c, http.StatusConflict, err.Error())
	default:
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("request failed")
		msg := err.Error()
		if production {
			msg = "internal server error"
		}
		respondError(c, http.StatusInternalServerError, msg)
	}
}

// pagination reads limit and offset query params, falling back to defaults
// and clamping negatives.
func pagination(c *gin.Context, fallbackLimit int) (limit, offset int) {
	limit = fallbackLimit
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}
	return limit, offset
}
