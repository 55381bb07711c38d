package utils_test

import (
	"testing"

	"github.com/boobalan-mca23/jeevagold/config"
	"github.com/boobalan-mca23/jeevagold/internal/utils"
)

func TestTokenRoundTrip(t *testing.T) {
	config.AppConfig = &config.Config{}
	config.AppConfig.Server.JWTSecret = "test-secret"
	config.AppConfig.Server.JWTExpirationHours = 1

	token, err := utils.GenerateToken(7, "admin")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := utils.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 7 || claims.Role != "admin" {
		t.Errorf("claims = %d/%s, want 7/admin", claims.UserID, claims.Role)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	config.AppConfig = &config.Config{}
	config.AppConfig.Server.JWTSecret = "secret-a"
	token, err := utils.GenerateToken(1, "user")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	config.AppConfig.Server.JWTSecret = "secret-b"
	if _, err := utils.ValidateToken(token); err == nil {
		t.Error("expected validation failure with wrong secret")
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := utils.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !utils.CheckPasswordHash("s3cret-pass", hash) {
		t.Error("correct password rejected")
	}
	if utils.CheckPasswordHash("wrong", hash) {
		t.Error("wrong password accepted")
	}
}
