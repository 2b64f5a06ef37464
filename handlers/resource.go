package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/imovelhub/agent_backend/cache"
	"github.com/imovelhub/agent_backend/config"
	"github.com/imovelhub/agent_backend/models"
	"github.com/imovelhub/agent_backend/utils"
)

// state is the envelope every resource endpoint returns. It mirrors the
// cache surface: the collection plus the loading, error and fallback flags.
func state[T cache.Entity, P cache.Patch[T]](c *cache.ResourceCache[T, P]) gin.H {
	var lastError *string
	if err := c.LastError(); err != nil {
		msg := err.Error()
		lastError = &msg
	}
	return gin.H{
		"items":             c.Items(),
		"isLoading":         c.IsLoading(),
		"lastError":         lastError,
		"usingFallbackData": c.UsingFallbackData(),
	}
}

func respondError(gc *gin.Context, err error) {
	var vErrs validator.ValidationErrors
	switch {
	case errors.As(err, &vErrs):
		gc.JSON(http.StatusBadRequest, gin.H{"error": utils.ProcessValidationErrors(vErrs)})
	case errors.Is(err, utils.ErrorNotAuthenticated):
		gc.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, utils.ErrorRecordNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		gc.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		gc.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	}
}

// ownerLock serializes create bursts from the same agent across instances.
// A no-op without a session (the cache rejects the create anyway) or when
// redis is not configured.
func (h *Handler) ownerLock(ctx context.Context, lockType string, funcName string) (func(), error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok {
		return func() {}, nil
	}
	return utils.OwnerLock(ctx, userId, lockType, "handlers", funcName)
}

// recordHistory is best effort: a failed audit write never fails the
// mutation that already succeeded.
func recordHistory(gc *gin.Context, action string, referenceId string, referenceType string, before any, after any, description string) {
	db := config.GetDB()
	if db == nil {
		return
	}
	ctx := gc.Request.Context()
	err := models.RecordHistory(ctx, db, action, referenceId, referenceType, before, after, description)
	if err != nil {
		config.LogError(config.GetLogger(), "handlers", "recordHistory", action, referenceId, err)
	}
}
