package services

import (
	"context"
	"time"

	"github.com/LucasDG1/vraag-en-aanbod/logging"
	"github.com/LucasDG1/vraag-en-aanbod/models"
	"github.com/LucasDG1/vraag-en-aanbod/utils"
)

// ProjectRepository is the storage contract the project service needs.
// Both the Mongo and the in-memory repositories satisfy it.
type ProjectRepository interface {
	Insert(ctx context.Context, project models.Project) error
	GetByID(ctx context.Context, id string) (models.Project, error)
	GetAll(ctx context.Context) ([]models.Project, error)
	Update(ctx context.Context, project models.Project) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type ProjectService struct {
	repo ProjectRepository
}

func NewProjectService(repo ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

// CreateProject assigns the id and timestamps and persists the record.
func (s *ProjectService) CreateProject(ctx context.Context, project models.Project) (models.Project, error) {
	now := time.Now().UTC()
	project.ID = utils.NewID()
	project.CreatedAt = now
	project.UpdatedAt = now

	if err := s.repo.Insert(ctx, project); err != nil {
		return models.Project{}, err
	}
	logging.Logger.Infof("Event ID: PROJECT_CREATED, Description: Project '%s' created with id %s", project.Title, project.ID)
	return project, nil
}

// ListProjects returns every project matching the filter, newest first.
// The repository already sorts by createdAt descending and the filter
// preserves order.
func (s *ProjectService) ListProjects(ctx context.Context, filter models.ProjectFilter) ([]models.Project, error) {
	projects, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return models.FilterProjects(projects, filter), nil
}

func (s *ProjectService) GetProject(ctx context.Context, id string) (models.Project, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProject merges the patch over the stored record. The id and
// createdAt never change; updatedAt always moves forward, even against
// a skewed clock.
func (s *ProjectService) UpdateProject(ctx context.Context, id string, patch models.ProjectPatch) (models.Project, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Project{}, err
	}

	existing.Apply(patch)

	now := time.Now().UTC()
	if !now.After(existing.UpdatedAt) {
		now = existing.UpdatedAt.Add(time.Millisecond)
	}
	existing.UpdatedAt = now

	if err := s.repo.Update(ctx, existing); err != nil {
		return models.Project{}, err
	}
	return existing, nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logging.Logger.Infof("Event ID: PROJECT_DELETED, Description: Project %s deleted", id)
	return nil
}

// SetImageURL attaches an uploaded image to an existing project.
func (s *ProjectService) SetImageURL(ctx context.Context, id, imageURL string) (models.Project, error) {
	return s.UpdateProject(ctx, id, models.ProjectPatch{ImageURL: &imageURL})
}

// SweepExpired removes every project whose deadline has passed. It is
// scheduled from main and reachable through an admin endpoint; the list
// endpoint never triggers it.
func (s *ProjectService) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	removed, err := s.repo.DeleteExpired(ctx, now)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		logging.Logger.Infof("Event ID: PROJECT_SWEEP, Description: Removed %d project(s) past their deadline", removed)
	}
	return removed, nil
}
