package services

import (
	"context"
	"errors"
	"testing"

	"github.com/LucasDG1/vraag-en-aanbod/auth"
	"github.com/LucasDG1/vraag-en-aanbod/repositories"
)

func newAdminService() *AdminService {
	repo := repositories.NewMemoryAdminRepo()
	provider := auth.NewLocalProvider("test-secret")
	return NewAdminService(repo, provider)
}

func TestSubmitRequestRejectsDuplicateEmail(t *testing.T) {
	svc := newAdminService()
	ctx := context.Background()

	if _, err := svc.SubmitRequest(ctx, "Ana", "ana@school.nl", "wachtwoord123"); err != nil {
		t.Fatalf("SubmitRequest: %v", err)
	}
	_, err := svc.SubmitRequest(ctx, "Ana", "ana@school.nl", "wachtwoord123")
	if !errors.Is(err, auth.ErrAccountExists) {
		t.Fatalf("err = %v, want ErrAccountExists", err)
	}
}

func TestApproveUnknownRequest(t *testing.T) {
	svc := newAdminService()
	_, err := svc.Approve(context.Background(), "missing", "beheer@school.nl")
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestApproveIsIdempotent(t *testing.T) {
	svc := newAdminService()
	ctx := context.Background()

	request, err := svc.SubmitRequest(ctx, "Ana", "ana@school.nl", "wachtwoord123")
	if err != nil {
		t.Fatalf("SubmitRequest: %v", err)
	}

	first, err := svc.Approve(ctx, request.ID, "beheer@school.nl")
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if !first.Approved || first.ApprovedAt == nil || first.ApprovedBy != "beheer@school.nl" {
		t.Fatalf("request not stamped on approval: %+v", first)
	}

	admin, err := svc.AdminByEmail(ctx, "ana@school.nl")
	if err != nil {
		t.Fatalf("AdminByEmail: %v", err)
	}

	second, err := svc.Approve(ctx, request.ID, "iemand-anders@school.nl")
	if err != nil {
		t.Fatalf("second Approve: %v", err)
	}
	if !second.ApprovedAt.Equal(*first.ApprovedAt) || second.ApprovedBy != first.ApprovedBy {
		t.Errorf("second approval changed the stamp: %+v vs %+v", second, first)
	}

	adminAfter, err := svc.AdminByEmail(ctx, "ana@school.nl")
	if err != nil {
		t.Fatalf("AdminByEmail after second approve: %v", err)
	}
	if !adminAfter.ApprovedAt.Equal(admin.ApprovedAt) || adminAfter.ApprovedBy != admin.ApprovedBy {
		t.Errorf("admin user rewritten by duplicate approval: %+v vs %+v", adminAfter, admin)
	}

	pending, err := svc.ListPending(ctx)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("approved request still pending: %+v", pending)
	}
}

func TestLogin(t *testing.T) {
	svc := newAdminService()
	ctx := context.Background()

	if err := svc.EnsureSeedAdmin(ctx, "beheer@school.nl", "Beheerder", "wachtwoord123"); err != nil {
		t.Fatalf("EnsureSeedAdmin: %v", err)
	}

	// Wrong password.
	if _, err := svc.Login(ctx, "beheer@school.nl", "fout"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}

	// Valid account that is not an approved admin.
	if _, err := svc.SubmitRequest(ctx, "Ana", "ana@school.nl", "wachtwoord123"); err != nil {
		t.Fatalf("SubmitRequest: %v", err)
	}
	if _, err := svc.Login(ctx, "ana@school.nl", "wachtwoord123"); !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("err = %v, want ErrNotAdmin", err)
	}

	// Seeded admin.
	result, err := svc.Login(ctx, "beheer@school.nl", "wachtwoord123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a token")
	}
	if result.Admin.Email != "beheer@school.nl" || !result.Admin.Approved {
		t.Errorf("unexpected admin in login result: %+v", result.Admin)
	}
}

func TestEnsureSeedAdminIsIdempotent(t *testing.T) {
	svc := newAdminService()
	ctx := context.Background()

	if err := svc.EnsureSeedAdmin(ctx, "beheer@school.nl", "Beheerder", "wachtwoord123"); err != nil {
		t.Fatalf("EnsureSeedAdmin: %v", err)
	}
	first, err := svc.AdminByEmail(ctx, "beheer@school.nl")
	if err != nil {
		t.Fatalf("AdminByEmail: %v", err)
	}

	if err := svc.EnsureSeedAdmin(ctx, "beheer@school.nl", "Beheerder", "wachtwoord123"); err != nil {
		t.Fatalf("second EnsureSeedAdmin: %v", err)
	}
	second, err := svc.AdminByEmail(ctx, "beheer@school.nl")
	if err != nil {
		t.Fatalf("AdminByEmail: %v", err)
	}
	if !second.ApprovedAt.Equal(first.ApprovedAt) {
		t.Errorf("seed admin rewritten on restart: %v vs %v", second.ApprovedAt, first.ApprovedAt)
	}
}
