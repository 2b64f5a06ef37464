package cache

import (
	"context"
	"time"

	"github.com/imovelhub/agent_backend/gateway"
	"github.com/imovelhub/agent_backend/middlewares"
	"github.com/imovelhub/agent_backend/models"
	"github.com/imovelhub/agent_backend/utils"
)

// The five resource caches. Each is a thin configuration of the generic
// primitive: table name, ordering, optional seed fallback, insertion order
// for created rows, and the relationship join.

func NewLeadCache(gw gateway.Gateway) *ResourceCache[models.Lead, models.LeadPatch] {
	return New(gw, Config[models.Lead, models.LeadPatch]{
		Table:    models.Lead{}.TableName(),
		Orders:   []gateway.Order{{Column: "created_at", Desc: true}},
		Fallback: models.SeedLeads,
	})
}

func NewPropertyCache(gw gateway.Gateway) *ResourceCache[models.Property, models.PropertyPatch] {
	return New(gw, Config[models.Property, models.PropertyPatch]{
		Table:    models.Property{}.TableName(),
		Orders:   []gateway.Order{{Column: "created_at", Desc: true}},
		Fallback: models.SeedProperties,
	})
}

func NewAppointmentCache(gw gateway.Gateway) *ResourceCache[models.Appointment, models.AppointmentPatch] {
	return New(gw, Config[models.Appointment, models.AppointmentPatch]{
		Table: models.Appointment{}.TableName(),
		Orders: []gateway.Order{
			{Column: "date"},
			{Column: "time"},
		},
		Less: models.Appointment.Before,
		Join: joinAppointmentLeads,
	})
}

func NewProposalCache(gw gateway.Gateway) *ResourceCache[models.Proposal, models.ProposalPatch] {
	return New(gw, Config[models.Proposal, models.ProposalPatch]{
		Table:  models.Proposal{}.TableName(),
		Orders: []gateway.Order{{Column: "created_at", Desc: true}},
		Join:   joinProposalRelations,
	})
}

func NewCheckInCache(gw gateway.Gateway) *ResourceCache[models.CheckIn, models.CheckInPatch] {
	return New(gw, Config[models.CheckIn, models.CheckInPatch]{
		Table:  models.CheckIn{}.TableName(),
		Orders: []gateway.Order{{Column: "created_at", Desc: true}},
		Join:   joinCheckInAppointments,
	})
}

// fetchLeadSummaries resolves lead ids to summaries, through the request's
// dataloaders when present (HTTP path) or a single bulk select otherwise.
func fetchLeadSummaries(ctx context.Context, gw gateway.Gateway, ids []string) (map[string]models.LeadSummary, error) {
	ids = utils.UniqueSlice(ids)
	byId := make(map[string]models.LeadSummary, len(ids))
	if len(ids) == 0 {
		return byId, nil
	}

	if loaders := middlewares.For(ctx); loaders != nil {
		leads, errs := middlewares.GetLeads(ctx, ids)
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
		for _, l := range leads {
			if l != nil {
				byId[l.ID] = l.Summary()
			}
		}
		return byId, nil
	}

	var leads []models.Lead
	if err := gw.Select(ctx, models.Lead{}.TableName(), map[string]any{"id": ids}, nil, &leads); err != nil {
		return nil, err
	}
	for _, l := range leads {
		byId[l.ID] = l.Summary()
	}
	return byId, nil
}

func fetchPropertySummaries(ctx context.Context, gw gateway.Gateway, ids []string) (map[string]models.PropertySummary, error) {
	ids = utils.UniqueSlice(ids)
	byId := make(map[string]models.PropertySummary, len(ids))
	if len(ids) == 0 {
		return byId, nil
	}

	if loaders := middlewares.For(ctx); loaders != nil {
		props, errs := middlewares.GetProperties(ctx, ids)
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
		for _, p := range props {
			if p != nil {
				byId[p.ID] = p.Summary()
			}
		}
		return byId, nil
	}

	var props []models.Property
	if err := gw.Select(ctx, models.Property{}.TableName(), map[string]any{"id": ids}, nil, &props); err != nil {
		return nil, err
	}
	for _, p := range props {
		byId[p.ID] = p.Summary()
	}
	return byId, nil
}

func fetchAppointmentSummaries(ctx context.Context, gw gateway.Gateway, ids []string) (map[string]models.AppointmentSummary, error) {
	ids = utils.UniqueSlice(ids)
	byId := make(map[string]models.AppointmentSummary, len(ids))
	if len(ids) == 0 {
		return byId, nil
	}

	if loaders := middlewares.For(ctx); loaders != nil {
		appointments, errs := middlewares.GetAppointments(ctx, ids)
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
		for _, a := range appointments {
			if a != nil {
				byId[a.ID] = a.Summary()
			}
		}
		return byId, nil
	}

	var appointments []models.Appointment
	if err := gw.Select(ctx, models.Appointment{}.TableName(), map[string]any{"id": ids}, nil, &appointments); err != nil {
		return nil, err
	}
	for _, a := range appointments {
		byId[a.ID] = a.Summary()
	}
	return byId, nil
}

func joinAppointmentLeads(ctx context.Context, gw gateway.Gateway, items []models.Appointment) error {
	var ids []string
	for i := range items {
		if items[i].LeadId != nil && *items[i].LeadId != "" {
			ids = append(ids, *items[i].LeadId)
		}
	}
	byId, err := fetchLeadSummaries(ctx, gw, ids)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].LeadId == nil {
			continue
		}
		if summary, ok := byId[*items[i].LeadId]; ok {
			s := summary
			items[i].Lead = &s
		}
	}
	return nil
}

func joinProposalRelations(ctx context.Context, gw gateway.Gateway, items []models.Proposal) error {
	now := time.Now()
	var leadIds, propertyIds []string
	for i := range items {
		leadIds = append(leadIds, items[i].LeadId)
		propertyIds = append(propertyIds, items[i].PropertyId)
	}

	leadsById, err := fetchLeadSummaries(ctx, gw, leadIds)
	if err != nil {
		return err
	}
	propsById, err := fetchPropertySummaries(ctx, gw, propertyIds)
	if err != nil {
		return err
	}

	for i := range items {
		if summary, ok := leadsById[items[i].LeadId]; ok {
			s := summary
			items[i].Lead = &s
		}
		if summary, ok := propsById[items[i].PropertyId]; ok {
			s := summary
			items[i].Property = &s
		}
		// Expiration is projected at read time; the stored row keeps its
		// persisted status.
		items[i].Status = items[i].EffectiveStatus(now)
	}
	return nil
}

func joinCheckInAppointments(ctx context.Context, gw gateway.Gateway, items []models.CheckIn) error {
	var ids []string
	for i := range items {
		ids = append(ids, items[i].AppointmentId)
	}
	byId, err := fetchAppointmentSummaries(ctx, gw, ids)
	if err != nil {
		return err
	}
	for i := range items {
		if summary, ok := byId[items[i].AppointmentId]; ok {
			s := summary
			items[i].Appointment = &s
		}
	}
	return nil
}
