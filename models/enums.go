package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "novo"
	LeadStatusHot         LeadStatus = "quente"
	LeadStatusWarm        LeadStatus = "morno"
	LeadStatusCold        LeadStatus = "frio"
	LeadStatusNegotiating LeadStatus = "negociando"
	LeadStatusClosed      LeadStatus = "fechado"
	LeadStatusLost        LeadStatus = "perdido"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusHot, LeadStatusWarm, LeadStatusCold,
		LeadStatusNegotiating, LeadStatusClosed, LeadStatusLost:
		return true
	}
	return false
}

func (s *LeadStatus) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return errors.New("lead status must be string")
	}
	v := LeadStatus(str)
	if !v.Valid() {
		return fmt.Errorf("invalid lead status %q", str)
	}
	*s = v
	return nil
}

type AppointmentType string

const (
	AppointmentTypeVisit   AppointmentType = "visita"
	AppointmentTypeCall    AppointmentType = "ligacao"
	AppointmentTypeMeeting AppointmentType = "reuniao"
)

func (t AppointmentType) Valid() bool {
	switch t {
	case AppointmentTypeVisit, AppointmentTypeCall, AppointmentTypeMeeting:
		return true
	}
	return false
}

func (t *AppointmentType) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return errors.New("appointment type must be string")
	}
	v := AppointmentType(str)
	if !v.Valid() {
		return fmt.Errorf("invalid appointment type %q", str)
	}
	*t = v
	return nil
}

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pendente"
	AppointmentStatusConfirmed AppointmentStatus = "confirmado"
	AppointmentStatusCancelled AppointmentStatus = "cancelado"
	AppointmentStatusDone      AppointmentStatus = "concluido"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCancelled, AppointmentStatusDone:
		return true
	}
	return false
}

func (s *AppointmentStatus) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return errors.New("appointment status must be string")
	}
	v := AppointmentStatus(str)
	if !v.Valid() {
		return fmt.Errorf("invalid appointment status %q", str)
	}
	*s = v
	return nil
}

// CanTransitionTo reports whether the appointment status machine allows
// moving from s to next. pendente -> confirmado|cancelado,
// confirmado -> concluido|cancelado; cancelado and concluido are terminal.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case AppointmentStatusPending:
		return next == AppointmentStatusConfirmed || next == AppointmentStatusCancelled
	case AppointmentStatusConfirmed:
		return next == AppointmentStatusDone || next == AppointmentStatusCancelled
	}
	return false
}

// Reschedulable reports whether date/time changes are still allowed.
func (s AppointmentStatus) Reschedulable() bool {
	return s == AppointmentStatusPending || s == AppointmentStatusConfirmed
}

type ListingMode string

const (
	ListingModeSale     ListingMode = "venda"
	ListingModeRental   ListingMode = "aluguel"
	ListingModeLaunch   ListingMode = "lancamento"
	ListingModeSeasonal ListingMode = "temporada"
)

func (m ListingMode) Valid() bool {
	switch m {
	case ListingModeSale, ListingModeRental, ListingModeLaunch, ListingModeSeasonal:
		return true
	}
	return false
}

func (m *ListingMode) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return errors.New("listing mode must be string")
	}
	v := ListingMode(str)
	if !v.Valid() {
		return fmt.Errorf("invalid listing mode %q", str)
	}
	*m = v
	return nil
}

type ProposalStatus string

const (
	ProposalStatusPending      ProposalStatus = "pendente"
	ProposalStatusAccepted     ProposalStatus = "aceita"
	ProposalStatusRejected     ProposalStatus = "recusada"
	ProposalStatusCounterOffer ProposalStatus = "contraproposta"
	ProposalStatusExpired      ProposalStatus = "expirada"
)

func (s ProposalStatus) Valid() bool {
	switch s {
	case ProposalStatusPending, ProposalStatusAccepted, ProposalStatusRejected,
		ProposalStatusCounterOffer, ProposalStatusExpired:
		return true
	}
	return false
}

func (s *ProposalStatus) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return errors.New("proposal status must be string")
	}
	v := ProposalStatus(str)
	if !v.Valid() {
		return fmt.Errorf("invalid proposal status %q", str)
	}
	*s = v
	return nil
}

// CanTransitionTo reports whether the proposal status machine allows moving
// from s to next. Only pendente has outgoing transitions; everything it
// reaches is terminal.
func (s ProposalStatus) CanTransitionTo(next ProposalStatus) bool {
	if s != ProposalStatusPending {
		return false
	}
	switch next {
	case ProposalStatusAccepted, ProposalStatusRejected, ProposalStatusCounterOffer:
		return true
	}
	return false
}
