package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imovelhub/agent_backend/models"
	"github.com/imovelhub/agent_backend/utils"
)

func (h *Handler) ListCheckIns(gc *gin.Context) {
	ctx := gc.Request.Context()
	caches := h.registry.For(ctx)
	caches.freshCheckIns(ctx)
	gc.JSON(http.StatusOK, state(caches.CheckIns))
}

func (h *Handler) RefreshCheckIns(gc *gin.Context) {
	ctx := gc.Request.Context()
	caches := h.registry.For(ctx)
	if err := caches.CheckIns.Refresh(ctx); err != nil {
		respondError(gc, err)
		return
	}
	gc.JSON(http.StatusOK, state(caches.CheckIns))
}

func (h *Handler) CreateCheckIn(gc *gin.Context) {
	ctx := gc.Request.Context()

	var input models.NewCheckIn
	if err := gc.ShouldBindJSON(&input); err != nil {
		respondError(gc, err)
		return
	}
	if err := input.Validate(ctx); err != nil {
		respondError(gc, err)
		return
	}

	release, err := h.ownerLock(ctx, "checkins", "CreateCheckIn")
	if err != nil {
		respondError(gc, err)
		return
	}
	defer release()

	caches := h.registry.For(ctx)
	created, err := caches.CheckIns.Create(ctx, input.Model())
	if err != nil {
		respondError(gc, err)
		return
	}
	recordHistory(gc, models.HistoryActionCreate, created.ID, "checkins", nil, created,
		"check-in recorded for appointment "+created.AppointmentId)

	gc.JSON(http.StatusCreated, gin.H{"item": created})
}

func (h *Handler) UpdateCheckIn(gc *gin.Context) {
	ctx := gc.Request.Context()
	id := gc.Param("id")

	var patch models.CheckInPatch
	if err := gc.ShouldBindJSON(&patch); err != nil {
		respondError(gc, err)
		return
	}

	caches := h.registry.For(ctx)
	prev, _ := caches.CheckIns.Find(id)
	updated, err := caches.CheckIns.Update(ctx, id, patch)
	if err != nil {
		respondError(gc, err)
		return
	}
	recordHistory(gc, models.HistoryActionUpdate, id, "checkins", prev, updated, "check-in updated")

	gc.JSON(http.StatusOK, gin.H{"item": updated})
}

func (h *Handler) DeleteCheckIn(gc *gin.Context) {
	ctx := gc.Request.Context()
	id := gc.Param("id")

	caches := h.registry.For(ctx)
	prev, _ := caches.CheckIns.Find(id)
	if err := caches.CheckIns.Delete(ctx, id); err != nil {
		respondError(gc, err)
		return
	}
	if _, authenticated := utils.GetUserIdFromContext(ctx); authenticated {
		recordHistory(gc, models.HistoryActionDelete, id, "checkins", prev, nil, "check-in deleted")
	}

	gc.Status(http.StatusNoContent)
}
