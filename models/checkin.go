package models

import (
	"context"
	"errors"
	"time"
)

type CheckIn struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	UserId        string    `gorm:"index;size:36" json:"user_id"`
	AppointmentId string    `gorm:"size:36;not null;index" json:"appointment_id" binding:"required"`
	Latitude      float64   `gorm:"not null" json:"latitude"`
	Longitude     float64   `gorm:"not null" json:"longitude"`
	Address       string    `gorm:"size:255" json:"address"`
	Notes         string    `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Read-only projection of the linked appointment, filled on fetch.
	Appointment *AppointmentSummary `gorm:"-" json:"appointment,omitempty"`
}

func (CheckIn) TableName() string { return "checkins" }

func (c CheckIn) EntityID() string { return c.ID }

type NewCheckIn struct {
	AppointmentId string  `json:"appointment_id" binding:"required"`
	Latitude      float64 `json:"latitude" binding:"required"`
	Longitude     float64 `json:"longitude" binding:"required"`
	Address       string  `json:"address"`
	Notes         string  `json:"notes"`
}

func (input *NewCheckIn) Validate(ctx context.Context) error {
	if input.Latitude < -90 || input.Latitude > 90 {
		return errors.New("latitude out of range")
	}
	if input.Longitude < -180 || input.Longitude > 180 {
		return errors.New("longitude out of range")
	}
	return nil
}

func (input *NewCheckIn) Model() CheckIn {
	return CheckIn{
		AppointmentId: input.AppointmentId,
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
		Address:       input.Address,
		Notes:         input.Notes,
	}
}

// CheckInPatch covers the two fields that can change after capture: the
// confirmed address and the visit notes.
type CheckInPatch struct {
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

func (p CheckInPatch) Validate(prev CheckIn) error { return nil }

func (p CheckInPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Address != nil {
		cols["Address"] = *p.Address
	}
	if p.Notes != nil {
		cols["Notes"] = *p.Notes
	}
	return cols
}

func (p CheckInPatch) Apply(c *CheckIn) {
	if p.Address != nil {
		c.Address = *p.Address
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
}
