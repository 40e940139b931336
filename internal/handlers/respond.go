package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trackline-dev/trackline/internal/apperrors"
	"github.com/trackline-dev/trackline/internal/logger"
	"go.uber.org/zap"
)

// respondStoreError is the single translation point from store failures to
// HTTP statuses. Backend failures are logged with the real error and answered
// with the generic message only.
func respondStoreError(ctx *gin.Context, err error, message string) {
	switch {
	case apperrors.IsValidation(err):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.IsNotFound(err):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.IsForbidden(err):
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	default:
		logger.Get().Error(message, zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}
