package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LucasDG1/vraag-en-aanbod/auth"
	"github.com/LucasDG1/vraag-en-aanbod/logging"
	"github.com/LucasDG1/vraag-en-aanbod/middleware"
	"github.com/LucasDG1/vraag-en-aanbod/repositories"
	"github.com/LucasDG1/vraag-en-aanbod/services"

	"github.com/gorilla/mux"
)

type AdminHandler struct {
	Service *services.AdminService
}

func NewAdminHandler(service *services.AdminService) *AdminHandler {
	return &AdminHandler{Service: service}
}

type adminRequestPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SubmitRequest handles POST /admin/request, the public form. The
// account is created at the auth provider first; a rejected signup
// fails the whole operation.
func (h *AdminHandler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	var payload adminRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if payload.Email == "" || payload.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	request, err := h.Service.SubmitRequest(r.Context(), payload.Name, payload.Email, payload.Password)
	if errors.Is(err, auth.ErrAccountExists) {
		http.Error(w, "Account creation rejected by auth provider", http.StatusBadGateway)
		return
	}
	if err != nil {
		logging.Logger.Errorf("Event ID: ADMIN_REQUEST_FAILED, Description: Failed to submit admin request: %v", err)
		http.Error(w, "Failed to submit admin request", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(request)
}

// ListRequests handles GET /admin/requests and returns only pending
// entries.
func (h *AdminHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Service.ListPending(r.Context())
	if err != nil {
		logging.Logger.Errorf("Event ID: ADMIN_REQUEST_LIST_FAILED, Description: Failed to list admin requests: %v", err)
		http.Error(w, "Failed to fetch admin requests", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requests)
}

// ApproveRequest handles PUT /admin/requests/{id}/approve. The
// approver comes from the bearer token on the request.
func (h *AdminHandler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	approvedBy := middleware.AdminEmail(r)

	request, err := h.Service.Approve(r.Context(), id, approvedBy)
	if errors.Is(err, repositories.ErrNotFound) {
		http.Error(w, "Admin request not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logging.Logger.Errorf("Event ID: ADMIN_APPROVE_FAILED, Description: Failed to approve request %s: %v", id, err)
		http.Error(w, "Failed to approve admin request", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(request)
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /admin/login: credentials go to the auth provider,
// the identity is cross-checked against the approved-admin set.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	result, err := h.Service.Login(r.Context(), payload.Email, payload.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	if errors.Is(err, services.ErrNotAdmin) {
		http.Error(w, "access forbidden: not an approved admin", http.StatusForbidden)
		return
	}
	if err != nil {
		logging.Logger.Errorf("Event ID: ADMIN_LOGIN_FAILED, Description: Login for %s failed: %v", payload.Email, err)
		http.Error(w, "Login failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
