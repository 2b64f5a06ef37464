package models

import (
	"context"
	"testing"
)

func TestAppointmentBefore(t *testing.T) {
	a := Appointment{Date: "2025-04-01", Time: "09:00"}
	b := Appointment{Date: "2025-04-01", Time: "14:30"}
	c := Appointment{Date: "2025-04-02", Time: "08:00"}

	if !a.Before(b) || !b.Before(c) || c.Before(a) {
		t.Fatal("expected chronological ordering by date then time")
	}
}

func TestNewAppointmentValidatesSchedule(t *testing.T) {
	input := NewAppointment{Type: AppointmentTypeVisit, Date: "01/04/2025", Time: "09:00", ClientName: "Carlos"}
	if err := input.Validate(context.Background()); err == nil {
		t.Fatal("expected non ISO date rejected")
	}
	input.Date = "2025-04-01"
	input.Time = "9am"
	if err := input.Validate(context.Background()); err == nil {
		t.Fatal("expected invalid time rejected")
	}
	input.Time = "09:00"
	if err := input.Validate(context.Background()); err != nil {
		t.Fatalf("expected valid schedule accepted, got %v", err)
	}
	if got := input.Model().Status; got != AppointmentStatusPending {
		t.Fatalf("expected new appointment pendente, got %q", got)
	}
}

func TestAppointmentPatchRejectsRescheduleOfDoneAppointment(t *testing.T) {
	prev := Appointment{ID: "A1", Date: "2025-04-01", Time: "09:00", Status: AppointmentStatusDone}
	date := "2025-04-10"
	if err := (AppointmentPatch{Date: &date}).Validate(prev); err == nil {
		t.Fatal("expected reschedule of concluido appointment rejected")
	}

	prev.Status = AppointmentStatusConfirmed
	if err := (AppointmentPatch{Date: &date}).Validate(prev); err != nil {
		t.Fatalf("expected reschedule of confirmado appointment allowed, got %v", err)
	}
}

func TestCheckInCoordinateValidation(t *testing.T) {
	input := NewCheckIn{AppointmentId: "A1", Latitude: -91, Longitude: 0}
	if err := input.Validate(context.Background()); err == nil {
		t.Fatal("expected out of range latitude rejected")
	}
	input.Latitude = -23.561
	input.Longitude = -200
	if err := input.Validate(context.Background()); err == nil {
		t.Fatal("expected out of range longitude rejected")
	}
	input.Longitude = -46.655
	if err := input.Validate(context.Background()); err != nil {
		t.Fatalf("expected valid coordinates accepted, got %v", err)
	}
}
