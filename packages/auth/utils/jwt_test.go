package utils

import (
	"testing"

	"auth/models"
)

func TestGenerateAndValidateToken(t *testing.T) {
	user := models.User{ID: 7, Email: "player@futmatch.es"}

	token, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("expected user id 7, got %d", claims.UserID)
	}
	if claims.Email != "player@futmatch.es" {
		t.Errorf("expected email to round-trip, got %q", claims.Email)
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	if _, err := ValidateToken("not-a-token"); err == nil {
		t.Error("garbage input should not validate")
	}
}

func TestValidateToken_Tampered(t *testing.T) {
	token, err := GenerateToken(models.User{ID: 1, Email: "a@b.c"})
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := ValidateToken(tampered); err == nil {
		t.Error("tampered signature should not validate")
	}
}
