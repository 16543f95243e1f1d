package utils

import (
	"strings"
	"testing"
)

func TestClaimTokenRoundTrip(t *testing.T) {
	tokens := NewClaimToken(&Config{SigningKey: "test-key"})

	signed, err := tokens.CreateToken(ClaimObject{CardID: "42", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("CreateToken() unexpected error: %v", err)
	}
	if signed == "" {
		t.Fatal("CreateToken() returned an empty token")
	}

	claim, err := tokens.VerifyToken(signed)
	if err != nil {
		t.Fatalf("VerifyToken() unexpected error: %v", err)
	}
	if claim.CardID != "42" || claim.Email != "ada@example.com" {
		t.Fatalf("VerifyToken() = %+v", claim)
	}
}

func TestClaimTokenWrongKey(t *testing.T) {
	signer := NewClaimToken(&Config{SigningKey: "key-one"})
	verifier := NewClaimToken(&Config{SigningKey: "key-two"})

	signed, err := signer.CreateToken(ClaimObject{CardID: "42", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("CreateToken() unexpected error: %v", err)
	}

	if _, err := verifier.VerifyToken(signed); err == nil {
		t.Fatal("VerifyToken() should reject a token signed with another key")
	}
}

func TestClaimTokenGarbage(t *testing.T) {
	tokens := NewClaimToken(&Config{SigningKey: "test-key"})

	for _, bad := range []string{"", "garbage", "a.b.c"} {
		if _, err := tokens.VerifyToken(bad); err == nil {
			t.Errorf("VerifyToken(%q) should fail", bad)
		}
	}
}

func TestClaimTokenTampered(t *testing.T) {
	tokens := NewClaimToken(&Config{SigningKey: "test-key"})

	signed, err := tokens.CreateToken(ClaimObject{CardID: "42", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("CreateToken() unexpected error: %v", err)
	}

	parts := strings.Split(signed, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", signed)
	}
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	if _, err := tokens.VerifyToken(tampered); err == nil {
		t.Fatal("VerifyToken() should reject a tampered signature")
	}
}
