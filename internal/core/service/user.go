package service

import (
	"context"
	"log/slog"

	"projecthub/internal/core/domain"
	"projecthub/internal/core/model/request"
	"projecthub/internal/core/model/response"
	"projecthub/internal/core/port"
)

type UserService struct {
	users    port.UserRepository
	projects port.ProjectRepository
	tasks    port.TaskRepository
}

func NewUserService(users port.UserRepository, projects port.ProjectRepository, tasks port.TaskRepository) *UserService {
	return &UserService{
		users:    users,
		projects: projects,
		tasks:    tasks,
	}
}

func (s *UserService) List(ctx context.Context, query *request.ListUsersQuery) (*response.ListUsersResponse, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 10
	}

	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}

	sortOrder := port.SortOrder(query.SortOrder)
	if sortOrder == "" {
		sortOrder = port.SortDesc
	}

	result, err := s.users.FindAll(ctx, port.UserFilter{
		Limit:     limit,
		Offset:    query.Offset,
		Email:     query.Search,
		SortBy:    sortBy,
		SortOrder: sortOrder,
	})

	if err != nil {
		slog.Error("User#List", "find_all", err)
		return nil, err
	}

	users := make([]response.UserSummaryResponse, 0, len(result.Users))

	for _, user := range result.Users {
		users = append(users, response.UserSummaryResponse{
			Email:     user.Email(),
			Username:  user.Username(),
			FirstName: user.FirstName(),
			LastName:  user.LastName(),
			FullName:  user.FullName(),
		})
	}

	return &response.ListUsersResponse{
		Users: users,
		Total: result.Total,
	}, nil
}

// Stats counts only what the user can see: projects they belong to and
// tasks assigned to them.
func (s *UserService) Stats(ctx context.Context, userId int) (*response.UserStatsResponse, error) {
	user, err := s.users.FindByID(ctx, userId)

	if err != nil {
		return nil, err
	}

	if user == nil || user.IsDeleted() {
		return nil, domain.NewNotFoundError("User not found")
	}

	memberId := userId

	projects, err := s.projects.FindAll(ctx, port.ProjectFilter{
		Limit:    1,
		MemberID: &memberId,
	})

	if err != nil {
		return nil, err
	}

	pending := domain.TaskStatusPending

	pendingTasks, err := s.tasks.FindAll(ctx, port.TaskFilter{
		Limit:          1,
		AssignedUserID: &memberId,
		Status:         &pending,
	})

	if err != nil {
		return nil, err
	}

	inProgress := domain.TaskStatusInProgress

	inProgressTasks, err := s.tasks.FindAll(ctx, port.TaskFilter{
		Limit:          1,
		AssignedUserID: &memberId,
		Status:         &inProgress,
	})

	if err != nil {
		return nil, err
	}

	return &response.UserStatsResponse{
		ProjectsCount:        projects.Total,
		PendingTasksCount:    pendingTasks.Total,
		InProgressTasksCount: inProgressTasks.Total,
	}, nil
}
