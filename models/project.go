package models

import (
	"strings"
	"time"
)

type Urgency string

const (
	UrgencyNormal Urgency = "normal"
	UrgencyUrgent Urgency = "urgent"
)

type Project struct {
	ID          string     `bson:"_id,omitempty" json:"id"`
	Title       string     `bson:"title" json:"title"`
	Description string     `bson:"description" json:"description"`
	Category    string     `bson:"category" json:"category"`
	Skills      []string   `bson:"skills" json:"skills"`
	Urgency     Urgency    `bson:"urgency" json:"urgency"`
	StudentName string     `bson:"studentName" json:"studentName"`
	ContactInfo string     `bson:"contactInfo" json:"contactInfo"`
	ImageURL    string     `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Deadline    *time.Time `bson:"deadline,omitempty" json:"deadline,omitempty"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// ProjectPatch carries the fields an edit may change. Nil fields are
// left untouched on the stored record.
type ProjectPatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	Skills      *[]string  `json:"skills"`
	Urgency     *Urgency   `json:"urgency"`
	StudentName *string    `json:"studentName"`
	ContactInfo *string    `json:"contactInfo"`
	ImageURL    *string    `json:"imageUrl"`
	Deadline    *time.Time `json:"deadline"`
}

// Apply merges the patch over the project. ID and CreatedAt are never
// touched; UpdatedAt is the caller's responsibility.
func (p *Project) Apply(patch ProjectPatch) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Skills != nil {
		p.Skills = *patch.Skills
	}
	if patch.Urgency != nil {
		p.Urgency = *patch.Urgency
	}
	if patch.StudentName != nil {
		p.StudentName = *patch.StudentName
	}
	if patch.ContactInfo != nil {
		p.ContactInfo = *patch.ContactInfo
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	if patch.Deadline != nil {
		p.Deadline = patch.Deadline
	}
}

// FilterAll is the sentinel meaning "no restriction" for the category,
// skill and urgency filters. An empty string is treated the same way.
const FilterAll = "all"

type ProjectFilter struct {
	Search   string
	Category string
	Skill    string
	Urgency  string
}

func filterActive(value string) bool {
	return value != "" && value != FilterAll
}

// Matches reports whether the project satisfies every active predicate.
// The free-text search is a case-insensitive substring match over title,
// description, category, skills and student name; the remaining three
// filters require an exact match.
func (f ProjectFilter) Matches(p Project) bool {
	if filterActive(f.Category) && p.Category != f.Category {
		return false
	}
	if filterActive(f.Urgency) && string(p.Urgency) != f.Urgency {
		return false
	}
	if filterActive(f.Skill) {
		found := false
		for _, s := range p.Skills {
			if s == f.Skill {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Title), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) &&
			!strings.Contains(strings.ToLower(p.Category), term) &&
			!strings.Contains(strings.ToLower(p.StudentName), term) &&
			!skillsContain(p.Skills, term) {
			return false
		}
	}
	return true
}

func skillsContain(skills []string, lowerTerm string) bool {
	for _, s := range skills {
		if strings.Contains(strings.ToLower(s), lowerTerm) {
			return true
		}
	}
	return false
}

// FilterProjects returns the projects matching the filter, preserving
// the order of the input slice.
func FilterProjects(projects []Project, f ProjectFilter) []Project {
	filtered := make([]Project, 0, len(projects))
	for _, p := range projects {
		if f.Matches(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
