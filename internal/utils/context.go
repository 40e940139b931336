package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/trackline-dev/trackline/internal/middleware"
	"github.com/trackline-dev/trackline/internal/types"
)

// ErrNoCurrentUser means the request never passed the auth middleware.
var ErrNoCurrentUser = errors.New("no authenticated user in request context")

// GetCurrentUser returns the caller the auth middleware resolved from the
// bearer secret key.
func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	value, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedUser{}, ErrNoCurrentUser
	}

	currentUser, ok := value.(middleware.AuthenticatedUser)

	if !ok {
		return middleware.AuthenticatedUser{}, ErrNoCurrentUser
	}

	return currentUser, nil
}

// GetCurrentUserID is a shortcut for handlers that only need the caller's id.
func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	currentUser, err := GetCurrentUser(ctx)

	if err != nil {
		return 0, err
	}

	return currentUser.ID, nil
}
