package handlers

import (
	"net/http"

	"github.com/LucasDG1/vraag-en-aanbod/auth"
	"github.com/LucasDG1/vraag-en-aanbod/middleware"

	"github.com/gorilla/mux"
)

// NewRouter wires every endpoint. Browsing and submitting projects is
// public; mutations and the approval workflow sit behind the admin
// bearer-token middleware.
func NewRouter(
	projects *ProjectHandler,
	admins *AdminHandler,
	catalog *CatalogHandler,
	health *HealthHandler,
	provider auth.Provider,
	checker middleware.AdminChecker,
	requestLimiter *middleware.RateLimiter,
) *mux.Router {
	r := mux.NewRouter()

	adminOnly := middleware.AdminAuth(provider, checker)

	// Public.
	r.HandleFunc("/projects", projects.ListProjects).Methods(http.MethodGet)
	r.HandleFunc("/projects", projects.CreateProject).Methods(http.MethodPost)
	r.HandleFunc("/projects/{id}", projects.GetProject).Methods(http.MethodGet)
	r.HandleFunc("/categories", catalog.Categories).Methods(http.MethodGet)
	r.HandleFunc("/skills", catalog.Skills).Methods(http.MethodGet)
	r.HandleFunc("/health", health.Health).Methods(http.MethodGet)
	r.HandleFunc("/admin/login", admins.Login).Methods(http.MethodPost)
	r.Handle("/admin/request", requestLimiter.Middleware(http.HandlerFunc(admins.SubmitRequest))).Methods(http.MethodPost)

	// Admin only.
	r.Handle("/projects/{id}", adminOnly(http.HandlerFunc(projects.UpdateProject))).Methods(http.MethodPut)
	r.Handle("/projects/{id}", adminOnly(http.HandlerFunc(projects.DeleteProject))).Methods(http.MethodDelete)
	r.Handle("/projects/{id}/image", adminOnly(http.HandlerFunc(projects.UploadImage))).Methods(http.MethodPost)
	r.Handle("/admin/requests", adminOnly(http.HandlerFunc(admins.ListRequests))).Methods(http.MethodGet)
	r.Handle("/admin/requests/{id}/approve", adminOnly(http.HandlerFunc(admins.ApproveRequest))).Methods(http.MethodPut)
	r.Handle("/admin/sweep", adminOnly(http.HandlerFunc(projects.SweepExpired))).Methods(http.MethodPost)

	r.Use(middleware.RequestLogger)

	return r
}
