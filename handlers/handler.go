package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/imovelhub/agent_backend/gateway"
	"github.com/imovelhub/agent_backend/models"
)

type Handler struct {
	registry *Registry
}

func NewHandler(gw gateway.Gateway) *Handler {
	return &Handler{registry: NewRegistry(gw)}
}

// RegisterRoutes wires every resource under /api. Reads work without a
// session (seed-backed resources show their seed rows); mutations other
// than seed deletes require one.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	leads := api.Group("/leads")
	leads.GET("", h.ListLeads)
	leads.POST("", h.CreateLead)
	leads.POST("/refresh", h.RefreshLeads)
	leads.PATCH("/:id", h.UpdateLead)
	leads.DELETE("/:id", h.DeleteLead)

	properties := api.Group("/properties")
	properties.GET("", h.ListProperties)
	properties.POST("", h.CreateProperty)
	properties.POST("/refresh", h.RefreshProperties)
	properties.PATCH("/:id", h.UpdateProperty)
	properties.PATCH("/:id/favorite", h.ToggleFavorite)
	properties.DELETE("/:id", h.DeleteProperty)

	appointments := api.Group("/appointments")
	appointments.GET("", h.ListAppointments)
	appointments.POST("", h.CreateAppointment)
	appointments.POST("/refresh", h.RefreshAppointments)
	appointments.PATCH("/:id", h.UpdateAppointment)
	appointments.DELETE("/:id", h.DeleteAppointment)

	proposals := api.Group("/proposals")
	proposals.GET("", h.ListProposals)
	proposals.POST("", h.CreateProposal)
	proposals.POST("/refresh", h.RefreshProposals)
	proposals.PATCH("/:id", h.UpdateProposal)
	proposals.DELETE("/:id", h.DeleteProposal)

	checkins := api.Group("/checkins")
	checkins.GET("", h.ListCheckIns)
	checkins.POST("", h.CreateCheckIn)
	checkins.POST("/refresh", h.RefreshCheckIns)
	checkins.PATCH("/:id", h.UpdateCheckIn)
	checkins.DELETE("/:id", h.DeleteCheckIn)

	api.GET("/history", h.ListHistory)
}

func (h *Handler) ListHistory(gc *gin.Context) {
	ctx := gc.Request.Context()
	limit, _ := strconv.Atoi(gc.DefaultQuery("limit", "50"))
	histories, err := models.ListHistory(ctx, limit)
	if err != nil {
		respondError(gc, err)
		return
	}
	gc.JSON(http.StatusOK, gin.H{"items": histories})
}
