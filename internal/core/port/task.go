package port

import (
	"context"

	"projecthub/internal/core/domain"
)

type TaskFilter struct {
	Offset int
	Limit  int

	ProjectID      *int
	Status         *domain.TaskStatus
	Priority       *domain.TaskPriority
	AssignedUserID *int
	IncludeDeleted bool
	OnlyDeleted    bool

	SortBy    string
	SortOrder SortOrder
}

type TaskFilterResult struct {
	Tasks []*domain.Task
	Total int
}

// TaskRepository persists tasks including their assignment sets.
// Assignments change only through the entity and Save, mirroring
// ProjectRepository.
type TaskRepository interface {
	FindByID(ctx context.Context, id int) (*domain.Task, error)
	FindAll(ctx context.Context, filter TaskFilter) (*TaskFilterResult, error)
	Save(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Delete(ctx context.Context, id int) error

	ExistsByID(ctx context.Context, id int) (bool, error)
	ExistsByName(ctx context.Context, name string, projectId int, excludeId int) (bool, error)
}
