package auth

import (
	"testing"
	"time"

	"github.com/sweetdelights/backend/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	user := &models.User{ID: "u1", Email: "u1@example.com", Role: models.RoleAdmin}

	token, err := m.IssueToken(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "u1@example.com" || claims.Role != models.RoleAdmin {
		t.Errorf("claims mismatch: %+v", claims)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	issuer := NewManager("secret-a", time.Hour)
	verifier := NewManager("secret-b", time.Hour)

	token, err := issuer.IssueToken(&models.User{ID: "u1"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}

func TestParseToken_Expired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)
	token, err := m.IssueToken(&models.User{ID: "u1"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := m.ParseToken(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("halwa123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if !CheckPassword(hash, "halwa123") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "barfi456") {
		t.Error("wrong password accepted")
	}
}
