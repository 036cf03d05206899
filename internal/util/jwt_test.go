package util

import (
	"testing"
	"time"

	"quest_nos_backend/internal/model"
)

func testAdmin() *model.AdminUser {
	admin := &model.AdminUser{
		Email: "admin@example.com",
		Role:  model.SuperAdmin,
	}
	admin.ID = "admin-1"
	return admin
}

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT(testAdmin(), "segredo-de-teste", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT returned error: %v", err)
	}

	claims, err := ParseJWT(token, "segredo-de-teste")
	if err != nil {
		t.Fatalf("ParseJWT returned error: %v", err)
	}
	if claims.AdminID != "admin-1" {
		t.Errorf("AdminID = %q, want admin-1", claims.AdminID)
	}
	if claims.Email != "admin@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.Role != model.SuperAdmin {
		t.Errorf("Role = %q, want super_admin", claims.Role)
	}
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(testAdmin(), "segredo-de-teste", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT returned error: %v", err)
	}
	if _, err := ParseJWT(token, "outro-segredo"); err == nil {
		t.Fatal("token signed with a different secret must not parse")
	}
}

func TestParseJWTExpired(t *testing.T) {
	token, err := GenerateJWT(testAdmin(), "segredo-de-teste", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT returned error: %v", err)
	}
	if _, err := ParseJWT(token, "segredo-de-teste"); err == nil {
		t.Fatal("expired token must not parse")
	}
}

func TestParseJWTGarbage(t *testing.T) {
	if _, err := ParseJWT("not.a.token", "segredo-de-teste"); err == nil {
		t.Fatal("garbage must not parse")
	}
}
