package models

import (
	"testing"
	"time"
)

func sampleProjects() []Project {
	return []Project{
		{ID: "1", Title: "Logo ontwerp", Description: "need a logo", Category: "Design", Skills: []string{"Illustrator"}, Urgency: UrgencyNormal, StudentName: "Ana"},
		{ID: "2", Title: "Website bouwen", Description: "school club site", Category: "Techniek", Skills: []string{"React", "Go"}, Urgency: UrgencyUrgent, StudentName: "Bram"},
		{ID: "3", Title: "Aftermovie", Description: "edit the sports day video", Category: "Media", Skills: []string{"Video Editing"}, Urgency: UrgencyNormal, StudentName: "Carla"},
	}
}

func ids(projects []Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.ID
	}
	return out
}

func TestFilterProjects(t *testing.T) {
	tests := []struct {
		name   string
		filter ProjectFilter
		want   []string
	}{
		{"no filters", ProjectFilter{}, []string{"1", "2", "3"}},
		{"all sentinels", ProjectFilter{Category: "all", Skill: "all", Urgency: "all"}, []string{"1", "2", "3"}},
		{"category exact", ProjectFilter{Category: "Design"}, []string{"1"}},
		{"skill exact", ProjectFilter{Skill: "Go"}, []string{"2"}},
		{"urgency exact", ProjectFilter{Urgency: "urgent"}, []string{"2"}},
		{"search in title", ProjectFilter{Search: "website"}, []string{"2"}},
		{"search in description", ProjectFilter{Search: "sports day"}, []string{"3"}},
		{"search in skills case-insensitive", ProjectFilter{Search: "react"}, []string{"2"}},
		{"search in student name", ProjectFilter{Search: "ana"}, []string{"1"}},
		{"search in category", ProjectFilter{Search: "media"}, []string{"3"}},
		{"and semantics", ProjectFilter{Search: "react", Urgency: "normal"}, []string{}},
		{"and semantics match", ProjectFilter{Search: "react", Urgency: "urgent", Category: "Techniek"}, []string{"2"}},
		{"no match", ProjectFilter{Search: "zeppelin"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(FilterProjects(sampleProjects(), tt.filter))
			if len(got) != len(tt.want) {
				t.Fatalf("FilterProjects() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("FilterProjects() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	projects := sampleProjects()
	got := FilterProjects(projects, ProjectFilter{Urgency: "normal"})
	want := []string{"1", "3"}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("order not preserved: got %v, want %v", ids(got), want)
		}
	}
}

func TestFilterResultIsSubset(t *testing.T) {
	projects := sampleProjects()
	filter := ProjectFilter{Search: "e"}
	for _, p := range FilterProjects(projects, filter) {
		if !filter.Matches(p) {
			t.Fatalf("filtered result contains non-matching project %s", p.ID)
		}
	}
}

func TestApplyMergesOnlySetFields(t *testing.T) {
	deadline := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	project := Project{
		ID:          "1",
		Title:       "Old title",
		Description: "Old description",
		Category:    "Design",
		Urgency:     UrgencyNormal,
		StudentName: "Ana",
	}

	newTitle := "New title"
	urgent := UrgencyUrgent
	project.Apply(ProjectPatch{Title: &newTitle, Urgency: &urgent, Deadline: &deadline})

	if project.Title != "New title" {
		t.Errorf("Title = %q, want %q", project.Title, "New title")
	}
	if project.Urgency != UrgencyUrgent {
		t.Errorf("Urgency = %q, want urgent", project.Urgency)
	}
	if project.Deadline == nil || !project.Deadline.Equal(deadline) {
		t.Errorf("Deadline not applied")
	}
	if project.Description != "Old description" || project.Category != "Design" || project.StudentName != "Ana" {
		t.Errorf("untouched fields changed: %+v", project)
	}
	if project.ID != "1" {
		t.Errorf("ID changed to %q", project.ID)
	}
}
