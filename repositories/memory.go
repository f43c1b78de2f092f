package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/LucasDG1/vraag-en-aanbod/models"
)

// MemoryProjectRepo keeps projects in process memory. It backs the
// service when no MongoDB is configured and is what the tests run
// against.
type MemoryProjectRepo struct {
	mu       sync.RWMutex
	projects map[string]models.Project
}

func NewMemoryProjectRepo() *MemoryProjectRepo {
	return &MemoryProjectRepo{projects: make(map[string]models.Project)}
}

func (r *MemoryProjectRepo) Insert(_ context.Context, project models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[project.ID] = project
	return nil
}

func (r *MemoryProjectRepo) GetByID(_ context.Context, id string) (models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	project, ok := r.projects[id]
	if !ok {
		return models.Project{}, ErrNotFound
	}
	return project, nil
}

func (r *MemoryProjectRepo) GetAll(_ context.Context) ([]models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	projects := make([]models.Project, 0, len(r.projects))
	for _, p := range r.projects {
		projects = append(projects, p)
	}
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
	return projects, nil
}

func (r *MemoryProjectRepo) Update(_ context.Context, project models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[project.ID]; !ok {
		return ErrNotFound
	}
	r.projects[project.ID] = project
	return nil
}

func (r *MemoryProjectRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return ErrNotFound
	}
	delete(r.projects, id)
	return nil
}

func (r *MemoryProjectRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for id, p := range r.projects {
		if p.Deadline != nil && p.Deadline.Before(now) {
			delete(r.projects, id)
			removed++
		}
	}
	return removed, nil
}

// MemoryAdminRepo is the in-memory counterpart of AdminRepo. Admin
// users are keyed by email, matching the Mongo collection layout.
type MemoryAdminRepo struct {
	mu       sync.RWMutex
	requests map[string]models.AdminRequest
	admins   map[string]models.AdminUser
}

func NewMemoryAdminRepo() *MemoryAdminRepo {
	return &MemoryAdminRepo{
		requests: make(map[string]models.AdminRequest),
		admins:   make(map[string]models.AdminUser),
	}
}

func (r *MemoryAdminRepo) InsertRequest(_ context.Context, request models.AdminRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[request.ID] = request
	return nil
}

func (r *MemoryAdminRepo) GetRequest(_ context.Context, id string) (models.AdminRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	request, ok := r.requests[id]
	if !ok {
		return models.AdminRequest{}, ErrNotFound
	}
	return request, nil
}

func (r *MemoryAdminRepo) PendingRequests(_ context.Context) ([]models.AdminRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pending := []models.AdminRequest{}
	for _, req := range r.requests {
		if !req.Approved {
			pending = append(pending, req)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].CreatedAt.After(pending[j].CreatedAt)
	})
	return pending, nil
}

func (r *MemoryAdminRepo) MarkRequestApproved(_ context.Context, id, approvedBy string, approvedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[id]
	if !ok || request.Approved {
		return nil
	}
	request.Approved = true
	request.ApprovedAt = &approvedAt
	request.ApprovedBy = approvedBy
	r.requests[id] = request
	return nil
}

func (r *MemoryAdminRepo) UpsertAdminUser(_ context.Context, admin models.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.admins[admin.Email]; ok {
		return nil
	}
	r.admins[admin.Email] = admin
	return nil
}

func (r *MemoryAdminRepo) GetAdminUser(_ context.Context, email string) (models.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	admin, ok := r.admins[email]
	if !ok {
		return models.AdminUser{}, ErrNotFound
	}
	return admin, nil
}

// MemoryCatalogRepo holds the reference lists in memory.
type MemoryCatalogRepo struct {
	mu         sync.RWMutex
	categories []string
	skills     []string
}

func NewMemoryCatalogRepo() *MemoryCatalogRepo {
	return &MemoryCatalogRepo{}
}

func (r *MemoryCatalogRepo) Categories(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string{}, r.categories...), nil
}

func (r *MemoryCatalogRepo) Skills(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string{}, r.skills...), nil
}

func (r *MemoryCatalogRepo) SeedDefaults(_ context.Context, categories, skills []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.categories) == 0 {
		r.categories = append([]string{}, categories...)
	}
	if len(r.skills) == 0 {
		r.skills = append([]string{}, skills...)
	}
	return nil
}
