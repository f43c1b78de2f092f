package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LucasDG1/vraag-en-aanbod/models"
	"github.com/LucasDG1/vraag-en-aanbod/repositories"
)

func newProjectService() (*ProjectService, *repositories.MemoryProjectRepo) {
	repo := repositories.NewMemoryProjectRepo()
	return NewProjectService(repo), repo
}

func TestCreateProjectAssignsIDAndTimestamps(t *testing.T) {
	svc, _ := newProjectService()
	ctx := context.Background()

	first, err := svc.CreateProject(ctx, models.Project{Title: "Logo", StudentName: "Ana"})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	second, err := svc.CreateProject(ctx, models.Project{Title: "Poster", StudentName: "Bram"})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	if first.ID == "" || second.ID == "" {
		t.Fatal("expected non-empty ids")
	}
	if first.ID == second.ID {
		t.Fatalf("ids not unique: %s", first.ID)
	}
	if !first.CreatedAt.Equal(first.UpdatedAt) {
		t.Errorf("createdAt %v != updatedAt %v on fresh project", first.CreatedAt, first.UpdatedAt)
	}
}

func TestListProjectsNewestFirst(t *testing.T) {
	svc, repo := newProjectService()
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, title := range []string{"oldest", "middle", "newest"} {
		p := models.Project{ID: title, Title: title, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		p.UpdatedAt = p.CreatedAt
		if err := repo.Insert(ctx, p); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	projects, err := svc.ListProjects(ctx, models.ProjectFilter{})
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(projects) != 3 {
		t.Fatalf("got %d projects, want 3", len(projects))
	}
	if projects[0].ID != "newest" || projects[2].ID != "oldest" {
		t.Errorf("not sorted newest-first: %s, %s, %s", projects[0].ID, projects[1].ID, projects[2].ID)
	}
}

func TestUpdateProjectNotFound(t *testing.T) {
	svc, _ := newProjectService()
	_, err := svc.UpdateProject(context.Background(), "missing", models.ProjectPatch{})
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateProjectMergesAndBumpsUpdatedAt(t *testing.T) {
	svc, _ := newProjectService()
	ctx := context.Background()

	created, err := svc.CreateProject(ctx, models.Project{Title: "Logo", Description: "need a logo", StudentName: "Ana"})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	newTitle := "Logo en huisstijl"
	updated, err := svc.UpdateProject(ctx, created.ID, models.ProjectPatch{Title: &newTitle})
	if err != nil {
		t.Fatalf("UpdateProject: %v", err)
	}

	if updated.Title != newTitle {
		t.Errorf("Title = %q, want %q", updated.Title, newTitle)
	}
	if updated.Description != "need a logo" || updated.StudentName != "Ana" {
		t.Errorf("unsupplied fields changed: %+v", updated)
	}
	if updated.ID != created.ID {
		t.Errorf("id changed on update")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("createdAt changed on update")
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("updatedAt did not move forward: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	}
}

func TestDeleteProject(t *testing.T) {
	svc, _ := newProjectService()
	ctx := context.Background()

	if err := svc.DeleteProject(ctx, "missing"); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	created, err := svc.CreateProject(ctx, models.Project{Title: "Logo"})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if err := svc.DeleteProject(ctx, created.ID); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}

	projects, err := svc.ListProjects(ctx, models.ProjectFilter{})
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	for _, p := range projects {
		if p.ID == created.ID {
			t.Fatal("deleted project still listed")
		}
	}
}

func TestSweepExpiredRemovesOnlyPastDeadlines(t *testing.T) {
	svc, _ := newProjectService()
	ctx := context.Background()
	now := time.Now().UTC()

	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	expired, _ := svc.CreateProject(ctx, models.Project{Title: "expired", Deadline: &past})
	open, _ := svc.CreateProject(ctx, models.Project{Title: "open", Deadline: &future})
	noDeadline, _ := svc.CreateProject(ctx, models.Project{Title: "no deadline"})

	removed, err := svc.SweepExpired(ctx, now)
	if err != nil {
		t.Fatalf("SweepExpired: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}

	if _, err := svc.GetProject(ctx, expired.ID); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("expired project still present")
	}
	if _, err := svc.GetProject(ctx, open.ID); err != nil {
		t.Errorf("future-deadline project removed: %v", err)
	}
	if _, err := svc.GetProject(ctx, noDeadline.ID); err != nil {
		t.Errorf("deadline-less project removed: %v", err)
	}
}
