package models

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Property struct {
	ID           string          `gorm:"primaryKey;size:36" json:"id"`
	UserId       string          `gorm:"index;size:36" json:"user_id"`
	Title        string          `gorm:"size:150;not null" json:"title" binding:"required"`
	Mode         ListingMode     `gorm:"type:enum('venda','aluguel','lancamento','temporada');not null;default:'venda'" json:"mode"`
	Price        decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"price"`
	Address      string          `gorm:"size:255" json:"address"`
	Neighborhood string          `gorm:"size:100" json:"neighborhood"`
	City         string          `gorm:"size:100" json:"city"`
	Rooms        int             `gorm:"default:0" json:"rooms"`
	Bathrooms    int             `gorm:"default:0" json:"bathrooms"`
	ParkingSpots int             `gorm:"default:0" json:"parking_spots"`
	Area         float64         `gorm:"default:0" json:"area"`
	Photos       []string        `gorm:"serializer:json" json:"photos"`
	Favorite     *bool           `gorm:"not null;default:false" json:"favorite"`
	Description  string          `gorm:"type:text" json:"description"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Property) TableName() string { return "imoveis" }

func (p Property) EntityID() string { return p.ID }

// PropertySummary is the projection joined onto proposals.
type PropertySummary struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Mode         ListingMode     `json:"mode"`
	Price        decimal.Decimal `json:"price"`
	Neighborhood string          `json:"neighborhood"`
	City         string          `json:"city"`
}

func (p Property) Summary() PropertySummary {
	return PropertySummary{
		ID:           p.ID,
		Title:        p.Title,
		Mode:         p.Mode,
		Price:        p.Price,
		Neighborhood: p.Neighborhood,
		City:         p.City,
	}
}

type NewProperty struct {
	Title        string          `json:"title" binding:"required"`
	Mode         ListingMode     `json:"mode"`
	Price        decimal.Decimal `json:"price"`
	Address      string          `json:"address"`
	Neighborhood string          `json:"neighborhood"`
	City         string          `json:"city"`
	Rooms        int             `json:"rooms"`
	Bathrooms    int             `json:"bathrooms"`
	ParkingSpots int             `json:"parking_spots"`
	Area         float64         `json:"area"`
	Photos       []string        `json:"photos"`
	Description  string          `json:"description"`
}

func (input *NewProperty) Validate(ctx context.Context) error {
	if input.Mode != "" && !input.Mode.Valid() {
		return errors.New("invalid listing mode")
	}
	if input.Price.IsNegative() {
		return errors.New("price cannot be negative")
	}
	return nil
}

func (input *NewProperty) Model() Property {
	mode := input.Mode
	if mode == "" {
		mode = ListingModeSale
	}
	return Property{
		Title:        input.Title,
		Mode:         mode,
		Price:        input.Price,
		Address:      input.Address,
		Neighborhood: input.Neighborhood,
		City:         input.City,
		Rooms:        input.Rooms,
		Bathrooms:    input.Bathrooms,
		ParkingSpots: input.ParkingSpots,
		Area:         input.Area,
		Photos:       input.Photos,
		Description:  input.Description,
	}
}

// PropertyPatch is the statically known set of mutable property fields.
type PropertyPatch struct {
	Title        *string          `json:"title"`
	Mode         *ListingMode     `json:"mode"`
	Price        *decimal.Decimal `json:"price"`
	Address      *string          `json:"address"`
	Neighborhood *string          `json:"neighborhood"`
	City         *string          `json:"city"`
	Rooms        *int             `json:"rooms"`
	Bathrooms    *int             `json:"bathrooms"`
	ParkingSpots *int             `json:"parking_spots"`
	Area         *float64         `json:"area"`
	Photos       *[]string        `json:"photos"`
	Favorite     *bool            `json:"favorite"`
	Description  *string          `json:"description"`
}

func (p PropertyPatch) Validate(prev Property) error {
	if p.Mode != nil && !p.Mode.Valid() {
		return errors.New("invalid listing mode")
	}
	if p.Price != nil && p.Price.IsNegative() {
		return errors.New("price cannot be negative")
	}
	return nil
}

func (p PropertyPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Title != nil {
		cols["Title"] = *p.Title
	}
	if p.Mode != nil {
		cols["Mode"] = *p.Mode
	}
	if p.Price != nil {
		cols["Price"] = *p.Price
	}
	if p.Address != nil {
		cols["Address"] = *p.Address
	}
	if p.Neighborhood != nil {
		cols["Neighborhood"] = *p.Neighborhood
	}
	if p.City != nil {
		cols["City"] = *p.City
	}
	if p.Rooms != nil {
		cols["Rooms"] = *p.Rooms
	}
	if p.Bathrooms != nil {
		cols["Bathrooms"] = *p.Bathrooms
	}
	if p.ParkingSpots != nil {
		cols["ParkingSpots"] = *p.ParkingSpots
	}
	if p.Area != nil {
		cols["Area"] = *p.Area
	}
	if p.Photos != nil {
		cols["Photos"] = *p.Photos
	}
	if p.Favorite != nil {
		cols["Favorite"] = *p.Favorite
	}
	if p.Description != nil {
		cols["Description"] = *p.Description
	}
	return cols
}

func (p PropertyPatch) Apply(prop *Property) {
	if p.Title != nil {
		prop.Title = *p.Title
	}
	if p.Mode != nil {
		prop.Mode = *p.Mode
	}
	if p.Price != nil {
		prop.Price = *p.Price
	}
	if p.Address != nil {
		prop.Address = *p.Address
	}
	if p.Neighborhood != nil {
		prop.Neighborhood = *p.Neighborhood
	}
	if p.City != nil {
		prop.City = *p.City
	}
	if p.Rooms != nil {
		prop.Rooms = *p.Rooms
	}
	if p.Bathrooms != nil {
		prop.Bathrooms = *p.Bathrooms
	}
	if p.ParkingSpots != nil {
		prop.ParkingSpots = *p.ParkingSpots
	}
	if p.Area != nil {
		prop.Area = *p.Area
	}
	if p.Photos != nil {
		prop.Photos = append([]string(nil), (*p.Photos)...)
	}
	if p.Favorite != nil {
		v := *p.Favorite
		prop.Favorite = &v
	}
	if p.Description != nil {
		prop.Description = *p.Description
	}
}
