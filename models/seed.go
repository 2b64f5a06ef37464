package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Seed datasets shown before the remote store has any rows for the agent
// (or when the request is unauthenticated). Seed rows have no owner and are
// never written back to the store; deleting one is a purely local removal.
//
// SeedLeads and SeedProperties return fresh copies so callers can never
// mutate the canonical set.

func SeedLeads() []Lead {
	base := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	contact1 := base.AddDate(0, 0, 2)
	contact2 := base.AddDate(0, 0, 5)
	leads := []Lead{
		{
			ID:            "seed-lead-1",
			Name:          "Carlos Oliveira",
			Phone:         "+55 11 98765-4321",
			Email:         "carlos.oliveira@example.com",
			Source:        "indicacao",
			Interest:      "Apartamento 2 quartos, Zona Sul",
			Status:        LeadStatusHot,
			LastContactAt: &contact1,
			CreatedAt:     base,
		},
		{
			ID:        "seed-lead-2",
			Name:      "Ana Paula Souza",
			Phone:     "+55 11 91234-5678",
			Email:     "ana.souza@example.com",
			Source:    "portal",
			Interest:  "Casa com quintal, ate R$ 650 mil",
			Status:    LeadStatusWarm,
			CreatedAt: base.AddDate(0, 0, 1),
		},
		{
			ID:            "seed-lead-3",
			Name:          "Roberto Lima",
			Phone:         "+55 21 99876-1122",
			Email:         "roberto.lima@example.com",
			Source:        "instagram",
			Interest:      "Cobertura para investimento",
			Status:        LeadStatusNegotiating,
			LastContactAt: &contact2,
			CreatedAt:     base.AddDate(0, 0, 3),
		},
		{
			ID:        "seed-lead-4",
			Name:      "Fernanda Castro",
			Email:     "fernanda.castro@example.com",
			Source:    "plantao",
			Interest:  "Aluguel proximo ao metro",
			Status:    LeadStatusNew,
			CreatedAt: base.AddDate(0, 0, 4),
		},
	}
	out := make([]Lead, len(leads))
	copy(out, leads)
	return out
}

func SeedProperties() []Property {
	base := time.Date(2025, time.March, 8, 12, 0, 0, 0, time.UTC)
	props := []Property{
		{
			ID:           "seed-imovel-1",
			Title:        "Apartamento 3 quartos - Jardins",
			Mode:         ListingModeSale,
			Price:        decimal.NewFromInt(890000),
			Address:      "Rua Haddock Lobo, 1240",
			Neighborhood: "Jardins",
			City:         "Sao Paulo",
			Rooms:        3,
			Bathrooms:    2,
			ParkingSpots: 2,
			Area:         112,
			Photos:       []string{"seed/apto-jardins-01.jpg", "seed/apto-jardins-02.jpg"},
			Favorite:     boolPtr(true),
			Description:  "Reformado, andar alto, face norte.",
			CreatedAt:    base,
		},
		{
			ID:           "seed-imovel-2",
			Title:        "Casa terrea com quintal - Vila Mariana",
			Mode:         ListingModeSale,
			Price:        decimal.NewFromInt(645000),
			Address:      "Rua Joaquim Tavora, 815",
			Neighborhood: "Vila Mariana",
			City:         "Sao Paulo",
			Rooms:        2,
			Bathrooms:    2,
			ParkingSpots: 1,
			Area:         140,
			Photos:       []string{"seed/casa-vm-01.jpg"},
			Favorite:     boolPtr(false),
			Description:  "Quintal amplo, proxima ao parque.",
			CreatedAt:    base.AddDate(0, 0, 1),
		},
		{
			ID:           "seed-imovel-3",
			Title:        "Studio mobiliado - Pinheiros",
			Mode:         ListingModeRental,
			Price:        decimal.NewFromInt(3800),
			Address:      "Rua dos Pinheiros, 572",
			Neighborhood: "Pinheiros",
			City:         "Sao Paulo",
			Rooms:        1,
			Bathrooms:    1,
			ParkingSpots: 0,
			Area:         34,
			Photos:       []string{"seed/studio-pinheiros-01.jpg"},
			Favorite:     boolPtr(false),
			Description:  "Pronto para morar, a 400m do metro.",
			CreatedAt:    base.AddDate(0, 0, 2),
		},
	}
	out := make([]Property, len(props))
	for i, p := range props {
		p.Photos = append([]string(nil), p.Photos...)
		if p.Favorite != nil {
			v := *p.Favorite
			p.Favorite = &v
		}
		out[i] = p
	}
	return out
}

func boolPtr(b bool) *bool { return &b }
