package services

import "context"

// DefaultCategories and DefaultSkills seed the reference lists on first
// start; after that the stored lists are authoritative.
var (
	DefaultCategories = []string{"Design", "Techniek", "Media", "Onderzoek", "Evenementen", "Bijles"}
	DefaultSkills     = []string{"Illustrator", "Photoshop", "React", "Go", "Python", "Video Editing", "Copywriting", "3D Printen"}
)

type CatalogRepository interface {
	Categories(ctx context.Context) ([]string, error)
	Skills(ctx context.Context) ([]string, error)
	SeedDefaults(ctx context.Context, categories, skills []string) error
}

type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

func (s *CatalogService) Skills(ctx context.Context) ([]string, error) {
	return s.repo.Skills(ctx)
}

func (s *CatalogService) SeedDefaults(ctx context.Context) error {
	return s.repo.SeedDefaults(ctx, DefaultCategories, DefaultSkills)
}
