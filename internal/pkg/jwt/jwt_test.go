package jwt

import (
	"errors"
	"testing"
)

const testSecret = "test-secret"

func TestGenerateAndValidate(t *testing.T) {
	token, err := GenerateSessionToken(7, "alice", "MANAGER", testSecret, 24)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateSessionToken(token, testSecret)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "alice" || claims.Role != "MANAGER" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.ID == "" {
		t.Error("expected a token id")
	}
}

func TestValidateWrongSecret(t *testing.T) {
	token, err := GenerateSessionToken(1, "bob", "USER", testSecret, 24)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ValidateSessionToken(token, "other-secret"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestValidateExpired(t *testing.T) {
	token, err := GenerateSessionToken(1, "bob", "USER", testSecret, -1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ValidateSessionToken(token, testSecret); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("err = %v, want ErrTokenExpired", err)
	}
}

func TestValidateGarbage(t *testing.T) {
	if _, err := ValidateSessionToken("not.a.token", testSecret); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}
