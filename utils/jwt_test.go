package utils

import (
	"testing"
	"time"
)

func TestExtractClaims(t *testing.T) {
	tok, err := GenerateToken("secret", "admin-1", RoleAdmin, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims, err := ExtractClaims("secret", tok)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != "admin-1" || claims.Role != RoleAdmin {
		t.Fatalf("unexpected claims %+v", claims)
	}

	if _, err := ExtractClaims("other", tok); err == nil {
		t.Fatal("expected signature mismatch to fail")
	}

	expired, _ := GenerateToken("secret", "admin-1", RoleAdmin, -time.Minute)
	if _, err := ExtractClaims("secret", expired); err == nil {
		t.Fatal("expected expired token to fail")
	}

	if _, err := GenerateToken("", "admin-1", "", time.Minute); err == nil {
		t.Fatal("expected empty secret to be refused")
	}
}
