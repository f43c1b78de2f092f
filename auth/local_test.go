package auth

import (
	"context"
	"errors"
	"testing"
)

func TestLocalProviderRoundtrip(t *testing.T) {
	provider := NewLocalProvider("test-secret")
	ctx := context.Background()

	if err := provider.SignUp(ctx, "ana@school.nl", "wachtwoord123", "Ana"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	identity, token, err := provider.SignIn(ctx, "ana@school.nl", "wachtwoord123")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if identity.Email != "ana@school.nl" || identity.Name != "Ana" {
		t.Errorf("unexpected identity: %+v", identity)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	verified, err := provider.Verify(ctx, token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if verified.Email != "ana@school.nl" {
		t.Errorf("Verify returned %q, want ana@school.nl", verified.Email)
	}
}

func TestLocalProviderRejectsWrongPassword(t *testing.T) {
	provider := NewLocalProvider("test-secret")
	ctx := context.Background()

	if err := provider.SignUp(ctx, "ana@school.nl", "wachtwoord123", "Ana"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if _, _, err := provider.SignIn(ctx, "ana@school.nl", "fout"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := provider.SignIn(ctx, "onbekend@school.nl", "wachtwoord123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLocalProviderRejectsDuplicateSignUp(t *testing.T) {
	provider := NewLocalProvider("test-secret")
	ctx := context.Background()

	if err := provider.SignUp(ctx, "ana@school.nl", "wachtwoord123", "Ana"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if err := provider.SignUp(ctx, "Ana@School.nl", "anders456", "Ana"); !errors.Is(err, ErrAccountExists) {
		t.Fatalf("err = %v, want ErrAccountExists", err)
	}
}

func TestVerifyRejectsGarbageAndForeignTokens(t *testing.T) {
	provider := NewLocalProvider("test-secret")
	ctx := context.Background()

	if _, err := provider.Verify(ctx, "not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}

	other := NewLocalProvider("other-secret")
	if err := other.SignUp(ctx, "ana@school.nl", "wachtwoord123", "Ana"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	_, token, err := other.SignIn(ctx, "ana@school.nl", "wachtwoord123")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if _, err := provider.Verify(ctx, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken for token signed with another secret", err)
	}
}
