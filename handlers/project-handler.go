package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/LucasDG1/vraag-en-aanbod/logging"
	"github.com/LucasDG1/vraag-en-aanbod/models"
	"github.com/LucasDG1/vraag-en-aanbod/repositories"
	"github.com/LucasDG1/vraag-en-aanbod/services"
	"github.com/LucasDG1/vraag-en-aanbod/utils"

	"github.com/gorilla/mux"
)

type ProjectHandler struct {
	Service *services.ProjectService
}

func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{Service: service}
}

// ListProjects handles GET /projects with optional category, skill,
// urgency and search query parameters.
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	filter := models.ProjectFilter{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
		Skill:    r.URL.Query().Get("skill"),
		Urgency:  r.URL.Query().Get("urgency"),
	}

	projects, err := h.Service.ListProjects(r.Context(), filter)
	if err != nil {
		logging.Logger.Errorf("Event ID: PROJECT_LIST_FAILED, Description: Failed to list projects: %v", err)
		http.Error(w, "Failed to fetch projects", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(projects)
}

func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	project, err := h.Service.GetProject(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logging.Logger.Errorf("Event ID: PROJECT_GET_FAILED, Description: Failed to fetch project %s: %v", id, err)
		http.Error(w, "Failed to fetch project", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(project)
}

// CreateProject handles POST /projects. Field validation is the
// submission form's job; the server only rejects an empty payload.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var project models.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if project.Title == "" && project.Description == "" && project.StudentName == "" {
		http.Error(w, "Empty project payload", http.StatusBadRequest)
		return
	}

	created, err := h.Service.CreateProject(r.Context(), project)
	if err != nil {
		logging.Logger.Errorf("Event ID: PROJECT_CREATE_FAILED, Description: Failed to create project: %v", err)
		http.Error(w, "Failed to create project", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// UpdateProject handles PUT /projects/{id}: a shallow merge of the
// supplied fields over the stored record.
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var patch models.ProjectPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	updated, err := h.Service.UpdateProject(r.Context(), id, patch)
	if errors.Is(err, repositories.ErrNotFound) {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logging.Logger.Errorf("Event ID: PROJECT_UPDATE_FAILED, Description: Failed to update project %s: %v", id, err)
		http.Error(w, "Failed to update project", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	err := h.Service.DeleteProject(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logging.Logger.Errorf("Event ID: PROJECT_DELETE_FAILED, Description: Failed to delete project %s: %v", id, err)
		http.Error(w, "Failed to delete project", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadImage handles POST /projects/{id}/image: stores the multipart
// "image" file at Cloudinary and writes the URL on the project.
func (h *ProjectHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	file, fileHeader, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	url, err := utils.UploadProjectImage(file, fileHeader)
	if err != nil {
		logging.Logger.Errorf("Event ID: PROJECT_IMAGE_UPLOAD_FAILED, Description: Image upload for project %s failed: %v", id, err)
		http.Error(w, "Image upload failed", http.StatusInternalServerError)
		return
	}

	updated, err := h.Service.SetImageURL(r.Context(), id, url)
	if errors.Is(err, repositories.ErrNotFound) {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}
	if err != nil {
		logging.Logger.Errorf("Event ID: PROJECT_IMAGE_SAVE_FAILED, Description: Failed to save image url on project %s: %v", id, err)
		http.Error(w, "Failed to update project", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// SweepExpired handles POST /admin/sweep for an on-demand run of the
// deadline sweep.
func (h *ProjectHandler) SweepExpired(w http.ResponseWriter, r *http.Request) {
	removed, err := h.Service.SweepExpired(r.Context(), time.Now().UTC())
	if err != nil {
		logging.Logger.Errorf("Event ID: PROJECT_SWEEP_FAILED, Description: Deadline sweep failed: %v", err)
		http.Error(w, "Sweep failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int64{"removed": removed})
}
