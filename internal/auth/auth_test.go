package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	tok, err := MakeToken("user-1", "secret", 15*time.Minute)
	if err != nil {
		t.Fatalf("make token: %v", err)
	}

	claims, err := ParseToken(tok, "secret")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("uid: got %s", claims.UserID)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	tok, _ := MakeToken("user-1", "secret", 15*time.Minute)
	if _, err := ParseToken(tok, "other"); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestTokenExpired(t *testing.T) {
	tok, _ := MakeToken("user-1", "secret", -time.Minute)
	if _, err := ParseToken(tok, "secret"); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "hunter22") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "hunter23") {
		t.Error("wrong password accepted")
	}
}

func TestRefreshTokenHash(t *testing.T) {
	raw, hash, err := GenerateRefreshToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if HashRefreshToken(raw) != hash {
		t.Error("hash mismatch for generated token")
	}
}
