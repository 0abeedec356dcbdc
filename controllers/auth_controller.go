package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rafiqapp/rafiq/models"
	"github.com/rafiqapp/rafiq/scoring"
	"github.com/rafiqapp/rafiq/utils"
)

const tokenLifetime = 72 * time.Hour

// AuthController handles registration, login and profile endpoints.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates a new controller instance.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

// Register creates an account with a bcrypt password hash and a fresh
// invite code, then issues a JWT.
func (a *AuthController) Register(ctx *gin.Context) {
	type request struct {
		Username string `json:"username" binding:"required,min=2,max=32"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6,max=64"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if !validUsername(req.Username) {
		utils.Error(ctx, http.StatusBadRequest, 40002, "username may only contain letters, digits and '-'")
		return
	}

	var existing models.User
	if err := a.db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		utils.Error(ctx, http.StatusConflict, 40901, "username already exists")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to hash password")
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
		Level:        1,
	}

	// The unique index on invite_code backs uniqueness; regenerate on the
	// rare collision.
	for attempt := 0; attempt < 5; attempt++ {
		code, err := utils.GenerateInviteCode()
		if err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to generate invite code")
			return
		}
		user.InviteCode = code
		if err := a.db.Create(&user).Error; err == nil {
			break
		} else if attempt == 4 {
			utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to create user")
			return
		}
	}

	token, err := utils.GenerateToken(user.ID, user.Username, tokenLifetime)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to generate token")
		return
	}

	utils.Success(ctx, gin.H{
		"token": token,
		"user":  user,
	})
}

// Login verifies user credentials and issues a JWT.
func (a *AuthController) Login(ctx *gin.Context) {
	type request struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40003, "invalid request payload")
		return
	}

	var user models.User
	if err := a.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid username or password")
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid username or password")
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username, tokenLifetime)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to generate token")
		return
	}

	utils.Success(ctx, gin.H{
		"token": token,
		"user":  user,
	})
}

// Logout invalidates the token by blacklisting it until expiration.
func (a *AuthController) Logout(ctx *gin.Context) {
	authHeader := ctx.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		utils.Error(ctx, http.StatusUnauthorized, 40107, "invalid authorization header")
		return
	}

	token := strings.TrimSpace(parts[1])
	claims, err := utils.ParseToken(token)
	if err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
		return
	}

	expiresAt := time.Now().Add(tokenLifetime)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	utils.BlacklistToken(token, expiresAt)

	utils.Success(ctx, gin.H{"message": "logged out"})
}

// Me returns the authenticated user's profile with derived level math.
func (a *AuthController) Me(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var user models.User
	if err := a.db.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to load user")
		return
	}

	utils.Success(ctx, gin.H{
		"user":                 user,
		"level":                scoring.Level(user.TotalPoints),
		"points_to_next_level": scoring.PointsToNextLevel(user.TotalPoints),
	})
}

// UpdateProfile changes the username.
func (a *AuthController) UpdateProfile(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Username string `json:"username" binding:"required,min=2,max=32"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40004, "invalid request payload")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if !validUsername(req.Username) {
		utils.Error(ctx, http.StatusBadRequest, 40002, "username may only contain letters, digits and '-'")
		return
	}

	var taken models.User
	if err := a.db.Where("username = ? AND id <> ?", req.Username, userID).First(&taken).Error; err == nil {
		utils.Error(ctx, http.StatusConflict, 40901, "username already exists")
		return
	}

	if err := a.db.Model(&models.User{}).Where("id = ?", userID).Update("username", req.Username).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to update profile")
		return
	}

	var user models.User
	if err := a.db.First(&user, userID).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to load user")
		return
	}
	utils.Success(ctx, gin.H{"user": user})
}

func validUsername(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '-' {
			continue
		}
		return false
	}
	return true
}
