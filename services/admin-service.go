package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/LucasDG1/vraag-en-aanbod/auth"
	"github.com/LucasDG1/vraag-en-aanbod/logging"
	"github.com/LucasDG1/vraag-en-aanbod/models"
	"github.com/LucasDG1/vraag-en-aanbod/repositories"
	"github.com/LucasDG1/vraag-en-aanbod/utils"
)

// ErrNotAdmin is returned when credentials check out at the provider
// but the identity is not in the approved-admin set.
var ErrNotAdmin = errors.New("not an approved admin")

// AdminRepository is the storage contract for admin requests and the
// approved-admin set.
type AdminRepository interface {
	InsertRequest(ctx context.Context, request models.AdminRequest) error
	GetRequest(ctx context.Context, id string) (models.AdminRequest, error)
	PendingRequests(ctx context.Context) ([]models.AdminRequest, error)
	MarkRequestApproved(ctx context.Context, id, approvedBy string, approvedAt time.Time) error
	UpsertAdminUser(ctx context.Context, admin models.AdminUser) error
	GetAdminUser(ctx context.Context, email string) (models.AdminUser, error)
}

type AdminService struct {
	repo     AdminRepository
	provider auth.Provider
}

func NewAdminService(repo AdminRepository, provider auth.Provider) *AdminService {
	return &AdminService{repo: repo, provider: provider}
}

// SubmitRequest creates the account at the auth provider first; when
// the provider rejects it (duplicate email, weak password) the whole
// operation fails and no request record is written.
func (s *AdminService) SubmitRequest(ctx context.Context, name, email, password string) (models.AdminRequest, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.provider.SignUp(ctx, email, password, name); err != nil {
		logging.Logger.Warnf("Event ID: ADMIN_REQUEST_SIGNUP_FAILED, Description: Account creation for %s rejected by auth provider: %v", email, err)
		return models.AdminRequest{}, err
	}

	request := models.AdminRequest{
		ID:        utils.NewID(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
		Approved:  false,
	}
	if err := s.repo.InsertRequest(ctx, request); err != nil {
		return models.AdminRequest{}, fmt.Errorf("failed to save admin request: %v", err)
	}
	logging.Logger.Infof("Event ID: ADMIN_REQUEST_CREATED, Description: Pending admin request %s for %s", request.ID, email)
	return request, nil
}

func (s *AdminService) ListPending(ctx context.Context) ([]models.AdminRequest, error) {
	return s.repo.PendingRequests(ctx)
}

// Approve flips the request to approved and adds the admin user.
// Approving the same request twice is a no-op for the admin set: the
// user is keyed by email and upserted, never appended.
func (s *AdminService) Approve(ctx context.Context, id, approvedBy string) (models.AdminRequest, error) {
	request, err := s.repo.GetRequest(ctx, id)
	if err != nil {
		return models.AdminRequest{}, err
	}

	if !request.Approved {
		now := time.Now().UTC()
		if err := s.repo.MarkRequestApproved(ctx, id, approvedBy, now); err != nil {
			return models.AdminRequest{}, err
		}
		request.Approved = true
		request.ApprovedAt = &now
		request.ApprovedBy = approvedBy
	}

	approvedAt := time.Now().UTC()
	if request.ApprovedAt != nil {
		approvedAt = *request.ApprovedAt
	}
	admin := models.AdminUser{
		Email:      request.Email,
		Name:       request.Name,
		Approved:   true,
		ApprovedAt: approvedAt,
		ApprovedBy: request.ApprovedBy,
	}
	if err := s.repo.UpsertAdminUser(ctx, admin); err != nil {
		return models.AdminRequest{}, err
	}
	logging.Logger.Infof("Event ID: ADMIN_REQUEST_APPROVED, Description: Request %s approved by %s, admin %s active", id, approvedBy, request.Email)
	return request, nil
}

type LoginResult struct {
	Token string           `json:"token"`
	Admin models.AdminUser `json:"admin"`
}

// Login forwards the credentials to the auth provider and then checks
// the resulting identity against the approved-admin set.
func (s *AdminService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	identity, token, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return LoginResult{}, err
	}

	admin, err := s.repo.GetAdminUser(ctx, strings.ToLower(identity.Email))
	if errors.Is(err, repositories.ErrNotFound) {
		logging.Logger.Warnf("Event ID: ADMIN_LOGIN_FORBIDDEN, Description: %s authenticated but is not an approved admin", identity.Email)
		return LoginResult{}, ErrNotAdmin
	}
	if err != nil {
		return LoginResult{}, err
	}
	logging.Logger.Infof("Event ID: ADMIN_LOGIN, Description: Admin %s logged in", admin.Email)
	return LoginResult{Token: token, Admin: admin}, nil
}

// AdminByEmail resolves an approved admin; used by the auth middleware.
func (s *AdminService) AdminByEmail(ctx context.Context, email string) (models.AdminUser, error) {
	return s.repo.GetAdminUser(ctx, strings.ToLower(email))
}

// EnsureSeedAdmin guarantees the bootstrap administrator exists so the
// first pending request can ever be approved. Safe to call on every
// start.
func (s *AdminService) EnsureSeedAdmin(ctx context.Context, email, name, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.repo.GetAdminUser(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	if err := s.provider.SignUp(ctx, email, password, name); err != nil && !errors.Is(err, auth.ErrAccountExists) {
		return fmt.Errorf("failed to create seed admin account: %v", err)
	}

	admin := models.AdminUser{
		Email:      email,
		Name:       name,
		Approved:   true,
		ApprovedAt: time.Now().UTC(),
		ApprovedBy: "bootstrap",
	}
	if err := s.repo.UpsertAdminUser(ctx, admin); err != nil {
		return err
	}
	logging.Logger.Infof("Event ID: ADMIN_SEEDED, Description: Bootstrap admin %s ensured", email)
	return nil
}
