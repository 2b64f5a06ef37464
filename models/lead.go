package models

import (
	"context"
	"errors"
	"time"

	"github.com/imovelhub/agent_backend/utils"
)

type Lead struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	UserId        string     `gorm:"index;size:36" json:"user_id"`
	Name          string     `gorm:"size:100;not null" json:"name" binding:"required"`
	Phone         string     `gorm:"size:20" json:"phone"`
	Email         string     `gorm:"size:100" json:"email"`
	Source        string     `gorm:"size:50" json:"source"`
	Interest      string     `gorm:"type:text" json:"interest"`
	Status        LeadStatus `gorm:"type:enum('novo','quente','morno','frio','negociando','fechado','perdido');not null;default:'novo'" json:"status"`
	Notes         string     `gorm:"type:text" json:"notes"`
	LastContactAt *time.Time `json:"last_contact_at"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Lead) TableName() string { return "leads" }

func (l Lead) EntityID() string { return l.ID }

// LeadSummary is the projection joined onto appointments and proposals.
type LeadSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

func (l Lead) Summary() LeadSummary {
	return LeadSummary{ID: l.ID, Name: l.Name, Phone: l.Phone, Email: l.Email}
}

type NewLead struct {
	Name     string     `json:"name" binding:"required"`
	Phone    string     `json:"phone"`
	Email    string     `json:"email"`
	Source   string     `json:"source"`
	Interest string     `json:"interest"`
	Status   LeadStatus `json:"status"`
	Notes    string     `json:"notes"`
}

func (input *NewLead) Validate(ctx context.Context) error {
	if input.Status != "" && !input.Status.Valid() {
		return errors.New("invalid lead status")
	}
	if input.Phone != "" {
		if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
			return errors.New("invalid phone number")
		}
	}
	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return errors.New("invalid email")
	}
	return nil
}

// Model builds the row to insert; identifier and owner are assigned by the
// gateway.
func (input *NewLead) Model() Lead {
	status := input.Status
	if status == "" {
		status = LeadStatusNew
	}
	return Lead{
		Name:     input.Name,
		Phone:    input.Phone,
		Email:    input.Email,
		Source:   input.Source,
		Interest: input.Interest,
		Status:   status,
		Notes:    input.Notes,
	}
}

// LeadPatch is the statically known set of mutable lead fields. Nil fields
// are left untouched.
type LeadPatch struct {
	Name          *string     `json:"name"`
	Phone         *string     `json:"phone"`
	Email         *string     `json:"email"`
	Source        *string     `json:"source"`
	Interest      *string     `json:"interest"`
	Status        *LeadStatus `json:"status"`
	Notes         *string     `json:"notes"`
	LastContactAt *time.Time  `json:"last_contact_at"`
}

func (p LeadPatch) Validate(prev Lead) error {
	if p.Status != nil && !p.Status.Valid() {
		return errors.New("invalid lead status")
	}
	return nil
}

func (p LeadPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Name != nil {
		cols["Name"] = *p.Name
	}
	if p.Phone != nil {
		cols["Phone"] = *p.Phone
	}
	if p.Email != nil {
		cols["Email"] = *p.Email
	}
	if p.Source != nil {
		cols["Source"] = *p.Source
	}
	if p.Interest != nil {
		cols["Interest"] = *p.Interest
	}
	if p.Status != nil {
		cols["Status"] = *p.Status
	}
	if p.Notes != nil {
		cols["Notes"] = *p.Notes
	}
	if p.LastContactAt != nil {
		cols["LastContactAt"] = *p.LastContactAt
	}
	return cols
}

func (p LeadPatch) Apply(l *Lead) {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Phone != nil {
		l.Phone = *p.Phone
	}
	if p.Email != nil {
		l.Email = *p.Email
	}
	if p.Source != nil {
		l.Source = *p.Source
	}
	if p.Interest != nil {
		l.Interest = *p.Interest
	}
	if p.Status != nil {
		l.Status = *p.Status
	}
	if p.Notes != nil {
		l.Notes = *p.Notes
	}
	if p.LastContactAt != nil {
		t := *p.LastContactAt
		l.LastContactAt = &t
	}
}
