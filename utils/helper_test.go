package utils

import "testing"

func TestIsValidEmail(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
	}{
		{"maria@example.com", true},
		{"carlos.oliveira@imobiliaria.com.br", true},
		{"sem-arroba.com", false},
		{"@example.com", false},
		{"maria@", false},
	}
	for _, tc := range cases {
		if got := IsValidEmail(tc.in); got != tc.valid {
			t.Fatalf("IsValidEmail(%q) expected %v, got %v", tc.in, tc.valid, got)
		}
	}
}

func TestValidatePhoneNumberBR(t *testing.T) {
	if err := ValidatePhoneNumber("+55 11 98765-4321", "BR"); err != nil {
		t.Fatalf("expected valid BR mobile, got %v", err)
	}
	if err := ValidatePhoneNumber("123", "BR"); err == nil {
		t.Fatal("expected short number rejected")
	}
}

func TestUniqueSlice(t *testing.T) {
	got := UniqueSlice([]string{"a", "b", "a", "c", "b"})
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("expected deduped slice in first-seen order, got %v", got)
	}
}

func TestParseDecimal(t *testing.T) {
	d, err := ParseDecimal(" 450000.50 ")
	if err != nil {
		t.Fatalf("ParseDecimal error: %v", err)
	}
	if d.String() != "450000.5" {
		t.Fatalf("expected 450000.5, got %s", d.String())
	}
	if _, err := ParseDecimal(""); err == nil {
		t.Fatal("expected empty string rejected")
	}
}
