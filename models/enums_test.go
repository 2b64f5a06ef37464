package models

import (
	"encoding/json"
	"testing"
)

func TestLeadStatusUnmarshalRejectsUnknownValue(t *testing.T) {
	var status LeadStatus
	if err := json.Unmarshal([]byte(`"quente"`), &status); err != nil {
		t.Fatalf("expected quente accepted, got %v", err)
	}
	if status != LeadStatusHot {
		t.Fatalf("expected quente, got %q", status)
	}
	if err := json.Unmarshal([]byte(`"hot"`), &status); err == nil {
		t.Fatal("expected english value to be rejected")
	}
}

func TestAppointmentStatusTransitions(t *testing.T) {
	cases := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{AppointmentStatusPending, AppointmentStatusConfirmed, true},
		{AppointmentStatusPending, AppointmentStatusCancelled, true},
		{AppointmentStatusPending, AppointmentStatusDone, false},
		{AppointmentStatusConfirmed, AppointmentStatusDone, true},
		{AppointmentStatusConfirmed, AppointmentStatusCancelled, true},
		{AppointmentStatusConfirmed, AppointmentStatusPending, false},
		{AppointmentStatusDone, AppointmentStatusConfirmed, false},
		{AppointmentStatusCancelled, AppointmentStatusPending, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestAppointmentReschedulable(t *testing.T) {
	if !AppointmentStatusPending.Reschedulable() || !AppointmentStatusConfirmed.Reschedulable() {
		t.Fatal("expected pendente and confirmado to be reschedulable")
	}
	if AppointmentStatusDone.Reschedulable() || AppointmentStatusCancelled.Reschedulable() {
		t.Fatal("expected concluido and cancelado to not be reschedulable")
	}
}

func TestProposalStatusTransitions(t *testing.T) {
	terminal := []ProposalStatus{
		ProposalStatusAccepted, ProposalStatusRejected, ProposalStatusCounterOffer,
	}
	for _, to := range terminal {
		if !ProposalStatusPending.CanTransitionTo(to) {
			t.Fatalf("expected pendente -> %s allowed", to)
		}
		if to.CanTransitionTo(ProposalStatusPending) {
			t.Fatalf("expected %s -> pendente rejected", to)
		}
	}
	if ProposalStatusPending.CanTransitionTo(ProposalStatusExpired) {
		t.Fatal("expected expirada to be a projection, never a requested transition")
	}
}
