package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/elvisxd/calorie-tracker-api/config"
	"github.com/elvisxd/calorie-tracker-api/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	cfg := &config.Config{
		Env:              "test",
		JWTSecret:        "access-secret",
		JWTRefreshSecret: "refresh-secret",
		AccessTokenTTL:   time.Hour,
		RefreshTokenTTL:  168 * time.Hour,
		ResetTokenTTL:    time.Hour,
	}
	log := zerolog.Nop()
	return SetupRouter(cfg, db, services.NoopMailer{Log: log}, log)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func registerUser(t *testing.T, r *gin.Engine) (token string, userID string) {
	t.Helper()

	w, body := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    "jane@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	data := body["data"].(map[string]any)
	user := data["user"].(map[string]any)
	return data["accessToken"].(string), user["id"].(string)
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w, body := doJSON(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestRegisterLoginAndEnvelope(t *testing.T) {
	r := newTestRouter(t)
	registerUser(t, r)

	w, body := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "jane@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["data"].(map[string]any)["refreshToken"])

	w, body = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "jane@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t)
	token, userID := registerUser(t, r)

	w, _ := doJSON(t, r, http.MethodGet, "/api/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/users", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body := doJSON(t, r, http.MethodGet, "/api/users/"+userID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jane@example.com", body["data"].(map[string]any)["email"])
}

func TestFoodItemsArePublic(t *testing.T) {
	r := newTestRouter(t)

	w, body := doJSON(t, r, http.MethodPost, "/api/food-items", "", gin.H{
		"name":         "Chicken Breast",
		"calories":     165,
		"serving_size": 100,
		"serving_unit": "g",
		"protein":      31,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	itemID := body["data"].(map[string]any)["id"].(string)

	w, body = doJSON(t, r, http.MethodGet, "/api/food-items?name=chicken", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, float64(1), pagination["total"])
	assert.Equal(t, float64(20), pagination["limit"])

	w, body = doJSON(t, r, http.MethodGet, "/api/food-items/"+itemID+"/nutrition?amount=150", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	nutrition := body["data"].(map[string]any)["nutrition"].(map[string]any)
	assert.Equal(t, float64(248), nutrition["calories"])
}

func TestNotFoundEnvelope(t *testing.T) {
	r := newTestRouter(t)

	w, body := doJSON(t, r, http.MethodGet, "/api/food-items/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "food item not found", body["error"])
}

func TestForgotPasswordExposesTokenOutsideProduction(t *testing.T) {
	r := newTestRouter(t)
	registerUser(t, r)

	w, body := doJSON(t, r, http.MethodPost, "/api/auth/forgot-password", "", gin.H{
		"email": "jane@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token := body["data"].(map[string]any)["reset_token"].(string)
	require.NotEmpty(t, token)

	w, _ = doJSON(t, r, http.MethodPost, "/api/auth/reset-password", "", gin.H{
		"token":       token,
		"newPassword": "brand-new-pass",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// unknown email gets the same outward message and no token
	w, body = doJSON(t, r, http.MethodPost, "/api/auth/forgot-password", "", gin.H{
		"email": "nobody@example.com",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, body["data"])
}

func TestResetTokenIsNotABearerToken(t *testing.T) {
	r := newTestRouter(t)
	registerUser(t, r)

	w, body := doJSON(t, r, http.MethodPost, "/api/auth/forgot-password", "", gin.H{
		"email": "jane@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token := body["data"].(map[string]any)["reset_token"].(string)

	w, _ = doJSON(t, r, http.MethodGet, "/api/users", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMealFlowOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	token, userID := registerUser(t, r)

	w, body := doJSON(t, r, http.MethodPost, "/api/food-items", "", gin.H{
		"name":         "Oats",
		"calories":     389,
		"serving_size": 100,
		"serving_unit": "g",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	foodID := body["data"].(map[string]any)["id"].(string)

	w, body = doJSON(t, r, http.MethodPost, "/api/meals", token, gin.H{
		"user_id":   userID,
		"name":      "Breakfast",
		"meal_type": "breakfast",
		"meal_date": "2026-08-30",
		"food_items": []gin.H{
			{"food_item_id": foodID, "amount": 50},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	meal := body["data"].(map[string]any)
	assert.Equal(t, float64(195), meal["total_calories"])
	mealID := meal["id"].(string)

	w, body = doJSON(t, r, http.MethodGet, "/api/meals/daily-summary?user_id="+userID+"&date=2026-08-30", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	summary := body["data"].(map[string]any)
	assert.Equal(t, float64(195), summary["total_calories"])

	w, _ = doJSON(t, r, http.MethodDelete, "/api/meals/"+mealID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
