package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rafiqapp/rafiq/models"
	"github.com/rafiqapp/rafiq/scoring"
	"github.com/rafiqapp/rafiq/services"
	"github.com/rafiqapp/rafiq/utils"
)

// ActivityController exposes the daily devotional tracking endpoints.
type ActivityController struct {
	db          *gorm.DB
	activity    *services.ActivityService
	leaderboard *services.LeaderboardService
}

// NewActivityController creates a new controller instance.
func NewActivityController(db *gorm.DB, activity *services.ActivityService, leaderboard *services.LeaderboardService) *ActivityController {
	return &ActivityController{db: db, activity: activity, leaderboard: leaderboard}
}

// Today returns today's activity record, defaulting to zero counters when
// no action has happened yet.
func (c *ActivityController) Today(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	rec, err := c.activity.Today(ctx.Request.Context(), userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to load activity")
		return
	}

	utils.Success(ctx, gin.H{
		"activity":         rec,
		"progress_units":   scoring.ProgressUnits(&rec),
		"progress_percent": scoring.ProgressPercent(&rec),
	})
}

// Dashboard aggregates today's counters, level math and the top of the
// friends leaderboard into one payload.
func (c *ActivityController) Dashboard(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var user models.User
	if err := c.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to load user")
		return
	}

	rec, err := c.activity.Today(ctx.Request.Context(), userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to load activity")
		return
	}

	entries, rank, err := c.leaderboard.Compose(ctx.Request.Context(), userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to compose leaderboard")
		return
	}
	if len(entries) > 3 {
		entries = entries[:3]
	}

	utils.Success(ctx, gin.H{
		"activity":             rec,
		"progress_units":       scoring.ProgressUnits(&rec),
		"progress_percent":     scoring.ProgressPercent(&rec),
		"total_points":         user.TotalPoints,
		"streak":               user.Streak,
		"level":                scoring.Level(user.TotalPoints),
		"points_to_next_level": scoring.PointsToNextLevel(user.TotalPoints),
		"rank":                 rank,
		"leaderboard":          entries,
	})
}

// CompletePrayer marks one of the five prayers done for today.
func (c *ActivityController) CompletePrayer(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	prayer, err := scoring.ParsePrayer(ctx.Param("prayer"))
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "unknown prayer")
		return
	}

	result, err := c.activity.CompletePrayer(ctx.Request.Context(), userID, prayer)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to record prayer")
		return
	}
	utils.Success(ctx, result)
}

// SaveQuran adds a batch of read pages to today's total.
func (c *ActivityController) SaveQuran(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Pages int `json:"pages"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid request payload")
		return
	}

	result, err := c.activity.SavePages(ctx.Request.Context(), userID, req.Pages)
	if err != nil {
		if errors.Is(err, scoring.ErrNegativeQuantity) {
			utils.Error(ctx, http.StatusBadRequest, 40022, "pages must not be negative")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to save reading")
		return
	}
	utils.Success(ctx, result)
}

// SaveTasbeeh adds a batch of dhikr repetitions to today's total.
func (c *ActivityController) SaveTasbeeh(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Count int `json:"count"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40023, "invalid request payload")
		return
	}

	result, err := c.activity.SaveTasbeeh(ctx.Request.Context(), userID, req.Count)
	if err != nil {
		if errors.Is(err, scoring.ErrNegativeQuantity) {
			utils.Error(ctx, http.StatusBadRequest, 40024, "count must not be negative")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to save tasbeeh")
		return
	}
	utils.Success(ctx, result)
}

// Stream pushes change notifications for the authenticated user as
// server-sent events. Clients re-fetch their dashboard on every event; the
// payload is only an invalidation signal.
func (c *ActivityController) Stream(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	sub := utils.SubscribeActivityChanges(ctx.Request.Context(), userID)
	defer sub.Close()

	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Writer.Header().Set("Connection", "keep-alive")

	ch := sub.Channel()
	ctx.Stream(func(w io.Writer) bool {
		select {
		case msg, open := <-ch:
			if !open {
				return false
			}
			ctx.SSEvent("activity", msg.Payload)
			return true
		case <-ctx.Request.Context().Done():
			return false
		}
	})
}
