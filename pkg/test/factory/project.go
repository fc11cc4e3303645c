package factory

import (
	"fmt"
	"time"

	"projecthub/internal/core/domain"
)

func NewProjectRecord(customData ...map[string]any) domain.ProjectRecord {
	n := Sequence()

	defaults := map[string]any{
		"ID":          int(n),
		"Name":        fmt.Sprintf("Project %d", n),
		"Description": (*string)(nil),
		"Slug":        fmt.Sprintf("project-%d", n),
		"CreatedByID": 1,
		"MemberIDs":   []int{1},
		"TaskIDs":     []int{},
		"DeletedAt":   (*time.Time)(nil),
		"CreatedAt":   time.Now(),
		"UpdatedAt":   time.Now(),
	}

	return build[domain.ProjectRecord](defaults, customData)
}

func NewProject(customData ...map[string]any) *domain.Project {
	rec := NewProjectRecord(customData...)

	project, err := domain.ReconstituteProject(rec)
	if err != nil {
		panic(err)
	}

	return project
}
