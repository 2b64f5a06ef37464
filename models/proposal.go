package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Proposal struct {
	ID         string          `gorm:"primaryKey;size:36" json:"id"`
	UserId     string          `gorm:"index;size:36" json:"user_id"`
	LeadId     string          `gorm:"size:36;not null;index" json:"lead_id" binding:"required"`
	PropertyId string          `gorm:"size:36;not null;index" json:"property_id" binding:"required"`
	Amount     decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Status     ProposalStatus  `gorm:"type:enum('pendente','aceita','recusada','contraproposta','expirada');not null;default:'pendente'" json:"status"`
	ValidUntil *time.Time      `json:"valid_until"`
	Notes      string          `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Read-only projections, filled on fetch. Never persisted.
	Lead     *LeadSummary     `gorm:"-" json:"lead,omitempty"`
	Property *PropertySummary `gorm:"-" json:"property,omitempty"`
}

func (Proposal) TableName() string { return "propostas" }

func (p Proposal) EntityID() string { return p.ID }

// EffectiveStatus projects expiration lazily: a pendente proposal whose
// validity date has passed reads as expirada. The stored row is never
// rewritten.
func (p Proposal) EffectiveStatus(now time.Time) ProposalStatus {
	if p.Status == ProposalStatusPending && p.ValidUntil != nil && p.ValidUntil.Before(now) {
		return ProposalStatusExpired
	}
	return p.Status
}

type NewProposal struct {
	LeadId     string          `json:"lead_id" binding:"required"`
	PropertyId string          `json:"property_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	ValidUntil *time.Time      `json:"valid_until"`
	Notes      string          `json:"notes"`
}

func (input *NewProposal) Validate(ctx context.Context) error {
	if input.Amount.IsNegative() || input.Amount.IsZero() {
		return errors.New("amount must be positive")
	}
	return nil
}

func (input *NewProposal) Model() Proposal {
	return Proposal{
		LeadId:     input.LeadId,
		PropertyId: input.PropertyId,
		Amount:     input.Amount,
		Status:     ProposalStatusPending,
		ValidUntil: input.ValidUntil,
		Notes:      input.Notes,
	}
}

// ProposalPatch is the statically known set of mutable proposal fields.
type ProposalPatch struct {
	Status     *ProposalStatus  `json:"status"`
	Amount     *decimal.Decimal `json:"amount"`
	ValidUntil *time.Time       `json:"valid_until"`
	Notes      *string          `json:"notes"`
}

func (p ProposalPatch) Validate(prev Proposal) error {
	if p.Status != nil {
		if !p.Status.Valid() {
			return errors.New("invalid proposal status")
		}
		if *p.Status != prev.Status && !prev.Status.CanTransitionTo(*p.Status) {
			return fmt.Errorf("cannot change proposal from %s to %s", prev.Status, *p.Status)
		}
	}
	if p.Amount != nil && (p.Amount.IsNegative() || p.Amount.IsZero()) {
		return errors.New("amount must be positive")
	}
	return nil
}

func (p ProposalPatch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Status != nil {
		cols["Status"] = *p.Status
	}
	if p.Amount != nil {
		cols["Amount"] = *p.Amount
	}
	if p.ValidUntil != nil {
		cols["ValidUntil"] = *p.ValidUntil
	}
	if p.Notes != nil {
		cols["Notes"] = *p.Notes
	}
	return cols
}

func (p ProposalPatch) Apply(prop *Proposal) {
	if p.Status != nil {
		prop.Status = *p.Status
	}
	if p.Amount != nil {
		prop.Amount = *p.Amount
	}
	if p.ValidUntil != nil {
		t := *p.ValidUntil
		prop.ValidUntil = &t
	}
	if p.Notes != nil {
		prop.Notes = *p.Notes
	}
}
