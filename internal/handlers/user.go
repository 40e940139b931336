package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trackline-dev/trackline/internal/fieldmap"
	"github.com/trackline-dev/trackline/internal/store"
)

type UserSummary struct {
	ID        uint   `json:"id"`
	SecretKey string `json:"secret_key"`
	UserName  string `json:"user_name"`
}

type UserWithAggregate struct {
	ID        uint   `json:"id"`
	SecretKey string `json:"secret_key"`
	UserName  string `json:"user_name"`
	store.UserAggregate
}

// GetUserBySecretKey answers with the user row plus the id arrays of
// everything attributed to them, matching the login aggregate.
func GetUserBySecretKey(ctx *gin.Context) {
	key := ctx.Param("key")

	user, err := store.GetUserBySecretKey(key)

	if err != nil {
		respondStoreError(ctx, err, "Failed to fetch user.")
		return
	}

	aggregate, err := store.GetUserAggregate(ctx.Request.Context(), user.ID)

	if err != nil {
		respondStoreError(ctx, err, "Failed to fetch user.")
		return
	}

	if wantsFields(ctx) {
		ctx.JSON(http.StatusOK, fieldmap.UserRecord(user.SecretKey, user.UserName, *aggregate))
		return
	}

	ctx.JSON(http.StatusOK, UserWithAggregate{
		ID:            user.ID,
		SecretKey:     user.SecretKey,
		UserName:      user.UserName,
		UserAggregate: *aggregate,
	})
}

func ListUsers(ctx *gin.Context) {
	users, err := store.ListUsers()

	if err != nil {
		respondStoreError(ctx, err, "Failed to fetch all users.")
		return
	}

	summaries := make([]UserSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, UserSummary{
			ID:        user.ID,
			SecretKey: user.SecretKey,
			UserName:  user.UserName,
		})
	}

	ctx.JSON(http.StatusOK, summaries)
}

// wantsFields reports whether the caller asked for the legacy {id, fields}
// presentation shape.
func wantsFields(ctx *gin.Context) bool {
	return ctx.Query("format") == "fields"
}
