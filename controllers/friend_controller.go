package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafiqapp/rafiq/services"
	"github.com/rafiqapp/rafiq/utils"
)

// FriendController handles invite-code friend links and the leaderboard.
type FriendController struct {
	friends     *services.FriendService
	leaderboard *services.LeaderboardService
}

// NewFriendController creates a new controller instance.
func NewFriendController(friends *services.FriendService, leaderboard *services.LeaderboardService) *FriendController {
	return &FriendController{friends: friends, leaderboard: leaderboard}
}

// Leaderboard returns the user's friends plus the user ranked by points.
func (f *FriendController) Leaderboard(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	entries, rank, err := f.leaderboard.Compose(ctx.Request.Context(), userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to compose leaderboard")
		return
	}

	utils.Success(ctx, gin.H{
		"leaderboard": entries,
		"rank":        rank,
	})
}

// AddFriend links two accounts symmetrically from an invite code.
func (f *FriendController) AddFriend(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		InviteCode string `json:"invite_code" binding:"required,len=6"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}

	friend, err := f.friends.AddByCode(ctx.Request.Context(), userID, req.InviteCode)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCodeNotFound):
			utils.Error(ctx, http.StatusNotFound, 40420, "invalid invite code")
		case errors.Is(err, services.ErrSelfFriend):
			utils.Error(ctx, http.StatusBadRequest, 40031, "cannot add yourself")
		case errors.Is(err, services.ErrAlreadyFriends):
			utils.Error(ctx, http.StatusConflict, 40902, "already friends")
		default:
			utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to add friend")
		}
		return
	}

	f.leaderboard.Invalidate(ctx.Request.Context(), userID)

	utils.Success(ctx, gin.H{
		"friend": gin.H{
			"id":       friend.ID,
			"username": friend.Username,
		},
	})
}
