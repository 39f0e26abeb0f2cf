package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/elvisxd/calorie-tracker-api/config"
	"github.com/elvisxd/calorie-tracker-api/controllers"
	"github.com/elvisxd/calorie-tracker-api/middlewares"
	"github.com/elvisxd/calorie-tracker-api/services"
)

// SetupRouter wires services, controllers and middleware into the HTTP API.
func SetupRouter(cfg *config.Config, db *gorm.DB, mailer services.Mailer, log zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	authSvc := services.NewAuthService(db, cfg, mailer, log)
	userSvc := services.NewUserService(db, log)
	foodSvc := services.NewFoodService(db, log)
	mealSvc := services.NewMealService(db, log)
	profileSvc := services.NewProfileService(db, log)
	weightSvc := services.NewWeightService(db, log)

	authCtl := controllers.NewAuthController(authSvc, cfg, log)
	userCtl := controllers.NewUserController(userSvc, cfg, log)
	foodCtl := controllers.NewFoodItemController(foodSvc, cfg, log)
	mealCtl := controllers.NewMealController(mealSvc, cfg, log)
	profileCtl := controllers.NewUserProfileController(profileSvc, cfg, log)
	weightCtl := controllers.NewWeightLogController(weightSvc, cfg, log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", authCtl.Login)
		auth.POST("/register", authCtl.Register)
		auth.POST("/refresh-token", authCtl.Refresh)
		auth.POST("/logout", authCtl.Logout)
		auth.POST("/forgot-password", authCtl.ForgotPassword)
		auth.POST("/reset-password", authCtl.ResetPassword)
	}

	foodItems := api.Group("/food-items")
	{
		foodItems.GET("", foodCtl.List)
		foodItems.GET("/search", foodCtl.Search)
		foodItems.GET("/categories", foodCtl.Categories)
		foodItems.GET("/brands", foodCtl.Brands)
		foodItems.GET("/:id", foodCtl.Get)
		foodItems.GET("/:id/nutrition", foodCtl.Nutrition)
		foodItems.POST("", foodCtl.Create)
		foodItems.POST("/bulk", foodCtl.BulkCreate)
		foodItems.PUT("/:id", foodCtl.Update)
		foodItems.DELETE("/:id", foodCtl.Delete)
	}

	authRequired := middlewares.RequireAuth(cfg.JWTSecret)

	users := api.Group("/users", authRequired)
	{
		users.GET("", userCtl.List)
		users.GET("/:id", userCtl.Get)
		users.POST("", userCtl.Create)
		users.PUT("/:id", userCtl.Update)
		users.DELETE("/:id", userCtl.Delete)
	}

	meals := api.Group("/meals", authRequired)
	{
		meals.GET("", mealCtl.List)
		meals.GET("/daily-summary", mealCtl.DailySummary)
		meals.GET("/:id", mealCtl.Get)
		meals.POST("", mealCtl.Create)
		meals.PUT("/:id", mealCtl.Update)
		meals.DELETE("/:id", mealCtl.Delete)
		meals.POST("/:id/food-items", mealCtl.AddFoodItem)
		meals.PUT("/:id/food-items/:foodItemId", mealCtl.UpdateFoodItem)
		meals.DELETE("/:id/food-items/:foodItemId", mealCtl.RemoveFoodItem)
	}

	profiles := api.Group("/user-profiles", authRequired)
	{
		profiles.GET("/:userId", profileCtl.Get)
		profiles.PUT("/:userId", profileCtl.Upsert)
		profiles.GET("/:userId/nutrition-goals", profileCtl.CalculateGoals)
		profiles.PUT("/:userId/nutrition-goals", profileCtl.UpdateGoals)
	}

	weightLogs := api.Group("/weight-logs", authRequired)
	{
		weightLogs.GET("", weightCtl.List)
		weightLogs.GET("/progress/:userId", weightCtl.Progress)
		weightLogs.GET("/:id", weightCtl.Get)
		weightLogs.POST("", weightCtl.Create)
		weightLogs.PUT("/:id", weightCtl.Update)
		weightLogs.DELETE("/:id", weightCtl.Delete)
	}

	return r
}
