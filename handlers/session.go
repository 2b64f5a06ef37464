// Package handlers binds the resource caches to the HTTP surface. Each
// authenticated agent gets one set of caches for the lifetime of the
// process (created on first request, refreshed once on creation and again
// on demand); anonymous requests get a throwaway seed-backed set so the
// app is never empty before login.
package handlers

import (
	"context"
	"sync"

	"github.com/imovelhub/agent_backend/cache"
	"github.com/imovelhub/agent_backend/gateway"
	"github.com/imovelhub/agent_backend/models"
	"github.com/imovelhub/agent_backend/utils"
)

type Caches struct {
	Leads        *cache.ResourceCache[models.Lead, models.LeadPatch]
	Properties   *cache.ResourceCache[models.Property, models.PropertyPatch]
	Appointments *cache.ResourceCache[models.Appointment, models.AppointmentPatch]
	Proposals    *cache.ResourceCache[models.Proposal, models.ProposalPatch]
	CheckIns     *cache.ResourceCache[models.CheckIn, models.CheckInPatch]

	leadsOnce        sync.Once
	propertiesOnce   sync.Once
	appointmentsOnce sync.Once
	proposalsOnce    sync.Once
	checkInsOnce     sync.Once
}

func NewCaches(gw gateway.Gateway) *Caches {
	return &Caches{
		Leads:        cache.NewLeadCache(gw),
		Properties:   cache.NewPropertyCache(gw),
		Appointments: cache.NewAppointmentCache(gw),
		Proposals:    cache.NewProposalCache(gw),
		CheckIns:     cache.NewCheckInCache(gw),
	}
}

// The initial fetch happens once per cache; later reads serve the
// in-memory collection until an explicit refresh.

func (c *Caches) freshLeads(ctx context.Context) {
	c.leadsOnce.Do(func() { _ = c.Leads.Refresh(ctx) })
}

func (c *Caches) freshProperties(ctx context.Context) {
	c.propertiesOnce.Do(func() { _ = c.Properties.Refresh(ctx) })
}

func (c *Caches) freshAppointments(ctx context.Context) {
	c.appointmentsOnce.Do(func() { _ = c.Appointments.Refresh(ctx) })
}

func (c *Caches) freshProposals(ctx context.Context) {
	c.proposalsOnce.Do(func() { _ = c.Proposals.Refresh(ctx) })
}

func (c *Caches) freshCheckIns(ctx context.Context) {
	c.checkInsOnce.Do(func() { _ = c.CheckIns.Refresh(ctx) })
}

// Registry hands out the per-agent cache set.
type Registry struct {
	gw gateway.Gateway

	mu     sync.Mutex
	byUser map[string]*Caches
}

func NewRegistry(gw gateway.Gateway) *Registry {
	return &Registry{gw: gw, byUser: make(map[string]*Caches)}
}

func (r *Registry) For(ctx context.Context) *Caches {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok {
		// Anonymous sessions see the seed data only; each request gets
		// its own set so local seed deletes never leak across clients.
		return NewCaches(r.gw)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	caches, exists := r.byUser[userId]
	if !exists {
		caches = NewCaches(r.gw)
		r.byUser[userId] = caches
	}
	return caches
}
