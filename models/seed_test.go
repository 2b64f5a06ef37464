package models

import "testing"

func TestSeedLeadsReturnsFreshCopies(t *testing.T) {
	first := SeedLeads()
	first[0].Name = "mutated"
	first[0].LastContactAt = nil

	second := SeedLeads()
	if second[0].Name == "mutated" {
		t.Fatal("expected seed leads to be isolated between calls")
	}
	if second[0].LastContactAt == nil {
		t.Fatal("expected seed lead LastContactAt restored on a fresh copy")
	}
	for _, l := range second {
		if l.UserId != "" {
			t.Fatalf("seed lead %s must not carry an owner", l.ID)
		}
		if !l.Status.Valid() {
			t.Fatalf("seed lead %s has invalid status %q", l.ID, l.Status)
		}
	}
}

func TestSeedPropertiesReturnsFreshCopies(t *testing.T) {
	first := SeedProperties()
	first[0].Photos[0] = "mutated.jpg"
	*first[0].Favorite = false

	second := SeedProperties()
	if second[0].Photos[0] == "mutated.jpg" {
		t.Fatal("expected seed property photos to be deep-copied")
	}
	if !*second[0].Favorite {
		t.Fatal("expected seed property favorite flag to be deep-copied")
	}
	for _, p := range second {
		if !p.Mode.Valid() {
			t.Fatalf("seed property %s has invalid mode %q", p.ID, p.Mode)
		}
	}
}
