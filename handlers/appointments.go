package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imovelhub/agent_backend/models"
	"github.com/imovelhub/agent_backend/utils"
)

func (h *Handler) ListAppointments(gc *gin.Context) {
	ctx := gc.Request.Context()
	caches := h.registry.For(ctx)
	caches.freshAppointments(ctx)
	gc.JSON(http.StatusOK, state(caches.Appointments))
}

func (h *Handler) RefreshAppointments(gc *gin.Context) {
	ctx := gc.Request.Context()
	caches := h.registry.For(ctx)
	if err := caches.Appointments.Refresh(ctx); err != nil {
		respondError(gc, err)
		return
	}
	gc.JSON(http.StatusOK, state(caches.Appointments))
}

func (h *Handler) CreateAppointment(gc *gin.Context) {
	ctx := gc.Request.Context()

	var input models.NewAppointment
	if err := gc.ShouldBindJSON(&input); err != nil {
		respondError(gc, err)
		return
	}
	if err := input.Validate(ctx); err != nil {
		respondError(gc, err)
		return
	}

	release, err := h.ownerLock(ctx, "compromissos", "CreateAppointment")
	if err != nil {
		respondError(gc, err)
		return
	}
	defer release()

	caches := h.registry.For(ctx)
	created, err := caches.Appointments.Create(ctx, input.Model())
	if err != nil {
		respondError(gc, err)
		return
	}
	recordHistory(gc, models.HistoryActionCreate, created.ID, "compromissos", nil, created,
		"appointment created for "+created.ClientName+" on "+created.Date)

	gc.JSON(http.StatusCreated, gin.H{"item": created})
}

func (h *Handler) UpdateAppointment(gc *gin.Context) {
	ctx := gc.Request.Context()
	id := gc.Param("id")

	var patch models.AppointmentPatch
	if err := gc.ShouldBindJSON(&patch); err != nil {
		respondError(gc, err)
		return
	}

	caches := h.registry.For(ctx)
	prev, _ := caches.Appointments.Find(id)
	updated, err := caches.Appointments.Update(ctx, id, patch)
	if err != nil {
		respondError(gc, err)
		return
	}
	recordHistory(gc, models.HistoryActionUpdate, id, "compromissos", prev, updated, "appointment updated")

	gc.JSON(http.StatusOK, gin.H{"item": updated})
}

func (h *Handler) DeleteAppointment(gc *gin.Context) {
	ctx := gc.Request.Context()
	id := gc.Param("id")

	caches := h.registry.For(ctx)
	prev, _ := caches.Appointments.Find(id)
	if err := caches.Appointments.Delete(ctx, id); err != nil {
		respondError(gc, err)
		return
	}
	if _, authenticated := utils.GetUserIdFromContext(ctx); authenticated {
		recordHistory(gc, models.HistoryActionDelete, id, "compromissos", prev, nil, "appointment deleted")
	}

	gc.Status(http.StatusNoContent)
}
