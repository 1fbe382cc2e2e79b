package auth

import (
	"testing"
	"time"
)

const testSecret = "test-secret-key"

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(testSecret, "acct-1", RoleStaff, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Sub != "acct-1" {
		t.Errorf("sub = %s, want acct-1", claims.Sub)
	}
	if claims.Role != RoleStaff {
		t.Errorf("role = %s, want %s", claims.Role, RoleStaff)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, "acct-1", RoleAuditor, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseToken("other-secret", token); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken(testSecret, "acct-1", RoleStaff, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseToken(testSecret, token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestParseToken_Garbage(t *testing.T) {
	if _, err := ParseToken(testSecret, "not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
}
