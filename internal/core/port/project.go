package port

import (
	"context"

	"projecthub/internal/core/domain"
)

type ProjectFilter struct {
	Offset int
	Limit  int

	CreatorID      *int
	MemberID       *int
	IncludeDeleted bool

	SortBy    string
	SortOrder SortOrder
}

type ProjectFilterResult struct {
	Projects []*domain.Project
	Total    int
}

// ProjectRepository persists projects including their member and task
// id sets. Membership changes flow exclusively through the entity and
// Save; there are no point-mutation shortcuts that could bypass the
// entity invariants.
type ProjectRepository interface {
	FindByID(ctx context.Context, id int) (*domain.Project, error)
	FindAll(ctx context.Context, filter ProjectFilter) (*ProjectFilterResult, error)
	Save(ctx context.Context, project *domain.Project) (*domain.Project, error)

	ExistsByID(ctx context.Context, id int) (bool, error)
	ExistsByName(ctx context.Context, name string, excludeId int) (bool, error)
}
