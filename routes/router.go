package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rafiqapp/rafiq/config"
	"github.com/rafiqapp/rafiq/controllers"
	"github.com/rafiqapp/rafiq/middleware"
	"github.com/rafiqapp/rafiq/services"
	"github.com/rafiqapp/rafiq/utils"
)

// SetupRouter wires routes, middlewares, services and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(utils.GinLogger())
	r.Use(utils.GinRecovery())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	leaderboardService := services.NewLeaderboardService(db)
	activityService := services.NewActivityService(db, services.NewRedisNotifier(leaderboardService))
	friendService := services.NewFriendService(db)

	authController := controllers.NewAuthController(db)
	activityController := controllers.NewActivityController(db, activityService, leaderboardService)
	friendController := controllers.NewFriendController(friendService, leaderboardService)

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)
	authGroup.PATCH("/profile", middleware.AuthRequired(), authController.UpdateProfile)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())

	protected.GET("/activity/today", activityController.Today)
	protected.GET("/activity/dashboard", activityController.Dashboard)
	protected.GET("/activity/stream", activityController.Stream)
	protected.POST("/activity/prayers/:prayer", activityController.CompletePrayer)
	protected.POST("/activity/quran", activityController.SaveQuran)
	protected.POST("/activity/tasbeeh", activityController.SaveTasbeeh)

	protected.GET("/friends", friendController.Leaderboard)
	protected.POST("/friends", friendController.AddFriend)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
