package utils

import "testing"

func TestJwtRoundTrip(t *testing.T) {
	token, err := JwtGenerate("agent-123", "Maria Corretor")
	if err != nil {
		t.Fatalf("JwtGenerate error: %v", err)
	}

	parsed, err := JwtValidate(token)
	if err != nil {
		t.Fatalf("JwtValidate error: %v", err)
	}
	if !parsed.Valid {
		t.Fatal("expected token to be valid")
	}
	claims, ok := parsed.Claims.(*JwtCustomClaim)
	if !ok {
		t.Fatalf("unexpected claims type %T", parsed.Claims)
	}
	if claims.UserId != "agent-123" || claims.Name != "Maria Corretor" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestJwtValidateRejectsGarbage(t *testing.T) {
	if _, err := JwtValidate("not-a-token"); err == nil {
		t.Fatal("expected parse error for malformed token")
	}
}
