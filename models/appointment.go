package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/imovelhub/agent_backend/utils"
)

type Appointment struct {
	ID         string            `gorm:"primaryKey;size:36" json:"id"`
	UserId     string            `gorm:"index;size:36" json:"user_id"`
	Type       AppointmentType   `gorm:"type:enum('visita','ligacao','reuniao');not null" json:"type" binding:"required"`
	Date       string            `gorm:"size:10;not null;index:idx_compromissos_schedule" json:"date" binding:"required"`
	Time       string            `gorm:"size:5;not null;index:idx_compromissos_schedule" json:"time" binding:"required"`
	ClientName string            `gorm:"size:100;not null" json:"client_name" binding:"required"`
	LeadId     *string           `gorm:"size:36;index" json:"lead_id"`
	Location   string            `gorm:"size:255" json:"location"`
	Phone      string            `gorm:"size:20" json:"phone"`
	Notes      string            `gorm:"type:text" json:"notes"`
	Status     AppointmentStatus `gorm:"type:enum('pendente','confirmado','cancelado','concluido');not null;default:'pendente'" json:"status"`
	CreatedAt  time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Read-only projection of the linked lead, filled on fetch. Never persisted.
	Lead *LeadSummary `gorm:"-" json:"lead,omitempty"`
}

func (Appointment) TableName() string { return "compromissos" }

func (a Appointment) EntityID() string { return a.ID }

// Before reports schedule ordering (date asc, then time asc). Date and time
// are stored as "2006-01-02" / "15:04", so lexicographic compare is
// chronological.
func (a Appointment) Before(other Appointment) bool {
	if a.Date != other.Date {
		return a.Date < other.Date
	}
	return a.Time < other.Time
}

// AppointmentSummary is the projection joined onto check-ins.
type AppointmentSummary struct {
	ID         string            `json:"id"`
	Type       AppointmentType   `json:"type"`
	Date       string            `json:"date"`
	Time       string            `json:"time"`
	ClientName string            `json:"client_name"`
	Status     AppointmentStatus `json:"status"`
}

func (a Appointment) Summary() AppointmentSummary {
	return AppointmentSummary{
		ID:         a.ID,
		Type:       a.Type,
		Date:       a.Date,
		Time:       a.Time,
		ClientName: a.ClientName,
		Status:     a.Status,
	}
}

type NewAppointment struct {
	Type       AppointmentType `json:"type" binding:"required"`
	Date       string          `json:"date" binding:"required"`
	Time       string          `json:"time" binding:"required"`
	ClientName string          `json:"client_name" binding:"required"`
	LeadId     *string         `json:"lead_id"`
	Location   string          `json:"location"`
	Phone      string          `json:"phone"`
	Notes      string          `json:"notes"`
}

func (input *NewAppointment) Validate(ctx context.Context) error {
	if !input.Type.Valid() {
		return errors.New("invalid appointment type")
	}
	if err := validateScheduleFields(input.Date, input.Time); err != nil {
		return err
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return errors.New("invalid phone number")
		}
	}
	return nil
}

func (input *NewAppointment) Model() Appointment {
	return Appointment{
		Type:       input.Type,
		Date:       input.Date,
		Time:       input.Time,
		ClientName: input.ClientName,
		LeadId:     input.LeadId,
		Location:   input.Location,
		Phone:      input.Phone,
		Notes:      input.Notes,
		Status:     AppointmentStatusPending,
	}
}

func validateScheduleFields(date string, timeOfDay string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date %q, want YYYY-MM-DD", date)
	}
	if _, err := time.Parse("15:04", timeOfDay); err != nil {
		return fmt.Errorf("invalid time %q, want HH:MM", timeOfDay)
	}
	return nil
}

// AppointmentPatch is the statically known set of mutable appointment
// fields. Status changes and reschedules go through the transition guard in
// Validate before any remote call is made.
type AppointmentPatch struct {
	Status     *AppointmentStatus `json:"status"`
	Date       *string            `json:"date"`
	Time       *string            `json:"time"`
	ClientName *string            `json:"client_name"`
	LeadId     *string            `json:"lead_id"`
	Location   *string            `json:"location"`
	Phone      *string            `json:"phone"`
	Notes      *string            `json:"notes"`
}

func (p AppointmentPatch) Validate(prev Appointment) error {
	if p.Status != nil {
		if !p.Status.Valid() {
			return errors.New("invalid appointment status")
		}
		if *p.Status != prev.Status && !prev.Status.CanTransitionTo(*p.Status) {
			return fmt.Errorf("cannot change appointment from %s to %s", prev.Status, *p.Status)
		}
	}
	if p.Date != nil || p.Time != nil {
		if !prev.Status.Reschedulable() {
			return fmt.Errorf("cannot reschedule a %s appointment", prev.Status)
		}
		date := prev.Date
		if p.Date != nil {
			date = *p.Date
		}
		timeOfDay := prev.Time
		if p.Time != nil {
			timeOfDay = *p.Time
		}
		if err := validateScheduleFields(date, timeOfDay); err != nil {
			return err
		}
	}
	return nil
}

func (p AppointmentPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Status != nil {
		cols["Status"] = *p.Status
	}
	if p.Date != nil {
		cols["Date"] = *p.Date
	}
	if p.Time != nil {
		cols["Time"] = *p.Time
	}
	if p.ClientName != nil {
		cols["ClientName"] = *p.ClientName
	}
	if p.LeadId != nil {
		cols["LeadId"] = *p.LeadId
	}
	if p.Location != nil {
		cols["Location"] = *p.Location
	}
	if p.Phone != nil {
		cols["Phone"] = *p.Phone
	}
	if p.Notes != nil {
		cols["Notes"] = *p.Notes
	}
	return cols
}

func (p AppointmentPatch) Apply(a *Appointment) {
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.Date != nil {
		a.Date = *p.Date
	}
	if p.Time != nil {
		a.Time = *p.Time
	}
	if p.ClientName != nil {
		a.ClientName = *p.ClientName
	}
	if p.LeadId != nil {
		v := *p.LeadId
		a.LeadId = &v
	}
	if p.Location != nil {
		a.Location = *p.Location
	}
	if p.Phone != nil {
		a.Phone = *p.Phone
	}
	if p.Notes != nil {
		a.Notes = *p.Notes
	}
}
