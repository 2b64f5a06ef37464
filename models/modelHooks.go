package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Identifiers are assigned on insert, never by callers. Owner assignment
// goes through SetOwner so the cache layer can stamp the session's agent
// onto a row without knowing its concrete type.

func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

func (l *Lead) SetOwner(userId string) { l.UserId = userId }

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (p *Property) SetOwner(userId string) { p.UserId = userId }

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func (a *Appointment) SetOwner(userId string) { a.UserId = userId }

func (p *Proposal) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (p *Proposal) SetOwner(userId string) { p.UserId = userId }

func (c *CheckIn) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (c *CheckIn) SetOwner(userId string) { c.UserId = userId }
