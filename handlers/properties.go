package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imovelhub/agent_backend/models"
	"github.com/imovelhub/agent_backend/utils"
)

func (h *Handler) ListProperties(gc *gin.Context) {
	ctx := gc.Request.Context()
	caches := h.registry.For(ctx)
	caches.freshProperties(ctx)
	gc.JSON(http.StatusOK, state(caches.Properties))
}

func (h *Handler) RefreshProperties(gc *gin.Context) {
	ctx := gc.Request.Context()
	caches := h.registry.For(ctx)
	if err := caches.Properties.Refresh(ctx); err != nil {
		respondError(gc, err)
		return
	}
	gc.JSON(http.StatusOK, state(caches.Properties))
}

func (h *Handler) CreateProperty(gc *gin.Context) {
	ctx := gc.Request.Context()

	var input models.NewProperty
	if err := gc.ShouldBindJSON(&input); err != nil {
		respondError(gc, err)
		return
	}
	if err := input.Validate(ctx); err != nil {
		respondError(gc, err)
		return
	}

	release, err := h.ownerLock(ctx, "imoveis", "CreateProperty")
	if err != nil {
		respondError(gc, err)
		return
	}
	defer release()

	caches := h.registry.For(ctx)
	created, err := caches.Properties.Create(ctx, input.Model())
	if err != nil {
		respondError(gc, err)
		return
	}
	recordHistory(gc, models.HistoryActionCreate, created.ID, "imoveis", nil, created, "property created: "+created.Title)

	gc.JSON(http.StatusCreated, gin.H{"item": created})
}

func (h *Handler) UpdateProperty(gc *gin.Context) {
	ctx := gc.Request.Context()
	id := gc.Param("id")

	var patch models.PropertyPatch
	if err := gc.ShouldBindJSON(&patch); err != nil {
		respondError(gc, err)
		return
	}

	caches := h.registry.For(ctx)
	prev, _ := caches.Properties.Find(id)
	updated, err := caches.Properties.Update(ctx, id, patch)
	if err != nil {
		respondError(gc, err)
		return
	}
	recordHistory(gc, models.HistoryActionUpdate, id, "imoveis", prev, updated, "property updated")

	gc.JSON(http.StatusOK, gin.H{"item": updated})
}

// ToggleFavorite flips the favorite flag without the caller having to know
// its current value.
func (h *Handler) ToggleFavorite(gc *gin.Context) {
	ctx := gc.Request.Context()
	id := gc.Param("id")

	caches := h.registry.For(ctx)
	prev, ok := caches.Properties.Find(id)
	if !ok {
		respondError(gc, utils.ErrorRecordNotFound)
		return
	}
	next := prev.Favorite == nil || !*prev.Favorite
	patch := models.PropertyPatch{Favorite: &next}

	updated, err := caches.Properties.Update(ctx, id, patch)
	if err != nil {
		respondError(gc, err)
		return
	}
	recordHistory(gc, models.HistoryActionUpdate, id, "imoveis", prev, updated, "property favorite toggled")

	gc.JSON(http.StatusOK, gin.H{"item": updated})
}

func (h *Handler) DeleteProperty(gc *gin.Context) {
	ctx := gc.Request.Context()
	id := gc.Param("id")

	caches := h.registry.For(ctx)
	prev, _ := caches.Properties.Find(id)
	if err := caches.Properties.Delete(ctx, id); err != nil {
		respondError(gc, err)
		return
	}
	if _, authenticated := utils.GetUserIdFromContext(ctx); authenticated {
		recordHistory(gc, models.HistoryActionDelete, id, "imoveis", prev, nil, "property deleted")
	}

	gc.Status(http.StatusNoContent)
}
