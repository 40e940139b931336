package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trackline-dev/trackline/internal/store"
)

// The admin surface mirrors the user endpoints without tenant scoping: every
// row across every tenant. RequireAdmin gates the whole subtree.

type AdminUserSummary struct {
	ID        uint   `json:"id"`
	SecretKey string `json:"secret_key"`
	UserName  string `json:"user_name"`
	UserType  string `json:"user_type"`
}

func AdminListUsers(ctx *gin.Context) {
	users, err := store.ListUsers()

	if err != nil {
		respondStoreError(ctx, err, "Failed to fetch users")
		return
	}

	summaries := make([]AdminUserSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, AdminUserSummary{
			ID:        user.ID,
			SecretKey: user.SecretKey,
			UserName:  user.UserName,
			UserType:  user.UserType,
		})
	}

	ctx.JSON(http.StatusOK, summaries)
}

func AdminListAccounts(ctx *gin.Context) {
	accounts, err := store.ListAccounts()

	if err != nil {
		respondStoreError(ctx, err, "Failed to fetch accounts")
		return
	}

	ctx.JSON(http.StatusOK, accounts)
}

func AdminListProjects(ctx *gin.Context) {
	projects, err := store.ListProjects()

	if err != nil {
		respondStoreError(ctx, err, "Failed to fetch projects")
		return
	}

	ctx.JSON(http.StatusOK, projects)
}

func AdminListTasks(ctx *gin.Context) {
	tasks, err := store.ListTasks()

	if err != nil {
		respondStoreError(ctx, err, "Failed to fetch tasks")
		return
	}

	ctx.JSON(http.StatusOK, tasks)
}

func AdminListUpdates(ctx *gin.Context) {
	updates, err := store.ListUpdates()

	if err != nil {
		respondStoreError(ctx, err, "Failed to fetch updates")
		return
	}

	ctx.JSON(http.StatusOK, updates)
}
