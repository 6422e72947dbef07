package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testKey() []byte {
	return []byte("0123456789abcdef0123456789abcdef")
}

func TestNewPasetoService_KeyLength(t *testing.T) {
	if _, err := NewPasetoService([]byte("too-short")); err == nil {
		t.Error("expected error for short key")
	}
	if _, err := NewPasetoService(testKey()); err != nil {
		t.Errorf("unexpected error for 32-byte key: %v", err)
	}
}

func TestPasetoService_RoundTrip(t *testing.T) {
	svc, err := NewPasetoService(testKey())
	if err != nil {
		t.Fatalf("NewPasetoService: %v", err)
	}

	companyID := uuid.New()
	token, err := svc.CreateToken(companyID, "a@acme.com", 24*time.Hour)
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}

	if claims.CompanyID != companyID.String() {
		t.Errorf("company id claim = %s, want %s", claims.CompanyID, companyID)
	}
	if claims.Email != "a@acme.com" {
		t.Errorf("email claim = %s", claims.Email)
	}
	if !claims.ExpiresAt.After(claims.IssuedAt) {
		t.Error("expiry is not after issuance")
	}
}

func TestPasetoService_TamperedToken(t *testing.T) {
	svc, err := NewPasetoService(testKey())
	if err != nil {
		t.Fatalf("NewPasetoService: %v", err)
	}

	token, err := svc.CreateToken(uuid.New(), "a@acme.com", time.Hour)
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	// Flip a character in the ciphertext
	tampered := token[:len(token)-2] + strings.Repeat("x", 2)
	if _, err := svc.VerifyToken(tampered); err == nil {
		t.Error("tampered token verified")
	}

	if _, err := svc.VerifyToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for garbage, got %v", err)
	}
}

func TestPasetoService_WrongKey(t *testing.T) {
	svc1, err := NewPasetoService(testKey())
	if err != nil {
		t.Fatalf("NewPasetoService: %v", err)
	}
	svc2, err := NewPasetoService([]byte("fedcba9876543210fedcba9876543210"))
	if err != nil {
		t.Fatalf("NewPasetoService: %v", err)
	}

	token, err := svc1.CreateToken(uuid.New(), "a@acme.com", time.Hour)
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	if _, err := svc2.VerifyToken(token); err == nil {
		t.Error("token verified with a different key")
	}
}

func TestPasetoService_ExpiredToken(t *testing.T) {
	svc, err := NewPasetoService(testKey())
	if err != nil {
		t.Fatalf("NewPasetoService: %v", err)
	}

	token, err := svc.CreateToken(uuid.New(), "a@acme.com", -time.Minute)
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	if _, err := svc.VerifyToken(token); err == nil {
		t.Error("expired token verified")
	}
}
