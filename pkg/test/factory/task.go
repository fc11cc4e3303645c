package factory

import (
	"fmt"
	"time"

	"projecthub/internal/core/domain"
)

func NewTaskRecord(customData ...map[string]any) domain.TaskRecord {
	n := Sequence()

	defaults := map[string]any{
		"ID":              int(n),
		"Name":            fmt.Sprintf("Task %d", n),
		"Description":     (*string)(nil),
		"Status":          domain.TaskStatusPending,
		"Priority":        domain.TaskPriorityLow,
		"ProjectID":       1,
		"AssignedUserIDs": []int{},
		"DeletedAt":       (*time.Time)(nil),
		"CreatedAt":       time.Now(),
		"UpdatedAt":       time.Now(),
	}

	return build[domain.TaskRecord](defaults, customData)
}

func NewTask(customData ...map[string]any) *domain.Task {
	rec := NewTaskRecord(customData...)

	task, err := domain.ReconstituteTask(rec)
	if err != nil {
		panic(err)
	}

	return task
}
