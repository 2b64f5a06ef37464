package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imovelhub/agent_backend/models"
	"github.com/imovelhub/agent_backend/utils"
)

func (h *Handler) ListProposals(gc *gin.Context) {
	ctx := gc.Request.Context()
	caches := h.registry.For(ctx)
	caches.freshProposals(ctx)
	gc.JSON(http.StatusOK, state(caches.Proposals))
}

func (h *Handler) RefreshProposals(gc *gin.Context) {
	ctx := gc.Request.Context()
	caches := h.registry.For(ctx)
	if err := caches.Proposals.Refresh(ctx); err != nil {
		respondError(gc, err)
		return
	}
	gc.JSON(http.StatusOK, state(caches.Proposals))
}

func (h *Handler) CreateProposal(gc *gin.Context) {
	ctx := gc.Request.Context()

	var input models.NewProposal
	if err := gc.ShouldBindJSON(&input); err != nil {
		respondError(gc, err)
		return
	}
	if err := input.Validate(ctx); err != nil {
		respondError(gc, err)
		return
	}

	release, err := h.ownerLock(ctx, "propostas", "CreateProposal")
	if err != nil {
		respondError(gc, err)
		return
	}
	defer release()

	caches := h.registry.For(ctx)
	created, err := caches.Proposals.Create(ctx, input.Model())
	if err != nil {
		respondError(gc, err)
		return
	}
	recordHistory(gc, models.HistoryActionCreate, created.ID, "propostas", nil, created,
		"proposal created for lead "+created.LeadId)

	gc.JSON(http.StatusCreated, gin.H{"item": created})
}

func (h *Handler) UpdateProposal(gc *gin.Context) {
	ctx := gc.Request.Context()
	id := gc.Param("id")

	var patch models.ProposalPatch
	if err := gc.ShouldBindJSON(&patch); err != nil {
		respondError(gc, err)
		return
	}

	caches := h.registry.For(ctx)
	prev, _ := caches.Proposals.Find(id)
	updated, err := caches.Proposals.Update(ctx, id, patch)
	if err != nil {
		respondError(gc, err)
		return
	}
	recordHistory(gc, models.HistoryActionUpdate, id, "propostas", prev, updated, "proposal updated")

	gc.JSON(http.StatusOK, gin.H{"item": updated})
}

func (h *Handler) DeleteProposal(gc *gin.Context) {
	ctx := gc.Request.Context()
	id := gc.Param("id")

	caches := h.registry.For(ctx)
	prev, _ := caches.Proposals.Find(id)
	if err := caches.Proposals.Delete(ctx, id); err != nil {
		respondError(gc, err)
		return
	}
	if _, authenticated := utils.GetUserIdFromContext(ctx); authenticated {
		recordHistory(gc, models.HistoryActionDelete, id, "propostas", prev, nil, "proposal deleted")
	}

	gc.Status(http.StatusNoContent)
}
