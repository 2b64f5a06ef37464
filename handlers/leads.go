package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imovelhub/agent_backend/models"
	"github.com/imovelhub/agent_backend/utils"
)

func (h *Handler) ListLeads(gc *gin.Context) {
	ctx := gc.Request.Context()
	caches := h.registry.For(ctx)
	caches.freshLeads(ctx)
	gc.JSON(http.StatusOK, state(caches.Leads))
}

func (h *Handler) RefreshLeads(gc *gin.Context) {
	ctx := gc.Request.Context()
	caches := h.registry.For(ctx)
	if err := caches.Leads.Refresh(ctx); err != nil {
		respondError(gc, err)
		return
	}
	gc.JSON(http.StatusOK, state(caches.Leads))
}

func (h *Handler) CreateLead(gc *gin.Context) {
	ctx := gc.Request.Context()

	var input models.NewLead
	if err := gc.ShouldBindJSON(&input); err != nil {
		respondError(gc, err)
		return
	}
	if err := input.Validate(ctx); err != nil {
		respondError(gc, err)
		return
	}

	release, err := h.ownerLock(ctx, "leads", "CreateLead")
	if err != nil {
		respondError(gc, err)
		return
	}
	defer release()

	caches := h.registry.For(ctx)
	created, err := caches.Leads.Create(ctx, input.Model())
	if err != nil {
		respondError(gc, err)
		return
	}
	recordHistory(gc, models.HistoryActionCreate, created.ID, "leads", nil, created, "lead created: "+created.Name)

	gc.JSON(http.StatusCreated, gin.H{"item": created})
}

func (h *Handler) UpdateLead(gc *gin.Context) {
	ctx := gc.Request.Context()
	id := gc.Param("id")

	var patch models.LeadPatch
	if err := gc.ShouldBindJSON(&patch); err != nil {
		respondError(gc, err)
		return
	}

	caches := h.registry.For(ctx)
	prev, _ := caches.Leads.Find(id)
	updated, err := caches.Leads.Update(ctx, id, patch)
	if err != nil {
		respondError(gc, err)
		return
	}
	recordHistory(gc, models.HistoryActionUpdate, id, "leads", prev, updated, "lead updated")

	gc.JSON(http.StatusOK, gin.H{"item": updated})
}

func (h *Handler) DeleteLead(gc *gin.Context) {
	ctx := gc.Request.Context()
	id := gc.Param("id")

	caches := h.registry.For(ctx)
	prev, _ := caches.Leads.Find(id)
	if err := caches.Leads.Delete(ctx, id); err != nil {
		respondError(gc, err)
		return
	}
	if _, authenticated := utils.GetUserIdFromContext(ctx); authenticated {
		recordHistory(gc, models.HistoryActionDelete, id, "leads", prev, nil, "lead deleted")
	}

	gc.Status(http.StatusNoContent)
}
