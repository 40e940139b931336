package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trackline-dev/trackline/internal/apperrors"
	"github.com/trackline-dev/trackline/internal/logger"
	"github.com/trackline-dev/trackline/internal/store"
	"github.com/trackline-dev/trackline/internal/utils"
	"go.uber.org/zap"
)

type LoginRequest struct {
	SecretKey string `json:"secretKey"`
}

type UserResponse struct {
	SecretKey string `json:"secret_key"`
	UserName  string `json:"user_name"`
	UserType  string `json:"user_type"`
}

type LoginResponse struct {
	User            UserResponse `json:"user"`
	Accounts        []uint       `json:"accounts"`
	Projects        []uint       `json:"projects"`
	TasksAssignedTo []uint       `json:"tasks_assigned_to"`
	TasksCreatedBy  []uint       `json:"tasks_created_by"`
	Updates         []uint       `json:"updates"`
}

// Login resolves the secret key and answers with the user's full aggregate:
// every account, project, task and update id attributed to them. Login is the
// one endpoint that echoes the backend failure into the response body.
func Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.ShouldBindJSON(&req); err != nil || req.SecretKey == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Secret key is required."})
		return
	}

	user, err := store.GetUserBySecretKey(req.SecretKey)

	if err != nil {
		if apperrors.IsNotFound(err) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found."})
			return
		}
		logger.Get().Error("login lookup failed", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error", "details": err.Error()})
		return
	}

	aggregate, err := store.GetUserAggregate(ctx.Request.Context(), user.ID)

	if err != nil {
		logger.Get().Error("login aggregate failed", zap.Error(err), zap.Uint("user_id", user.ID))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error", "details": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, LoginResponse{
		User: UserResponse{
			SecretKey: user.SecretKey,
			UserName:  user.UserName,
			UserType:  user.UserType,
		},
		Accounts:        aggregate.Accounts,
		Projects:        aggregate.Projects,
		TasksAssignedTo: aggregate.TasksAssignedTo,
		TasksCreatedBy:  aggregate.TasksCreatedBy,
		Updates:         aggregate.Updates,
	})
}

// Me answers with the authenticated caller's identity.
func Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user": UserResponse{
			SecretKey: currentUser.SecretKey,
			UserName:  currentUser.UserName,
			UserType:  currentUser.UserType,
		},
	})
}

// Verify is the role probe the client router uses for its admin redirect.
func Verify(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.ShouldBindJSON(&req); err != nil || req.SecretKey == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Secret key is required for verification."})
		return
	}

	user, err := store.GetUserBySecretKey(req.SecretKey)

	if err != nil {
		if apperrors.IsNotFound(err) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found in database."})
			return
		}
		respondStoreError(ctx, err, "Server error during user verification.")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user_type": user.UserType})
}
