package service

import (
	"context"
	"log/slog"

	"projecthub/internal/core/domain"
	"projecthub/internal/core/model/request"
	"projecthub/internal/core/model/response"
	"projecthub/internal/core/port"
)

// TaskService gates every task operation on the owning project's
// authorization predicates. View access covers create/update/assign;
// only the project creator may delete tasks.
type TaskService struct {
	tasks    port.TaskRepository
	projects port.ProjectRepository
	users    port.UserRepository
}

func NewTaskService(tasks port.TaskRepository, projects port.ProjectRepository, users port.UserRepository) *TaskService {
	return &TaskService{
		tasks:    tasks,
		projects: projects,
		users:    users,
	}
}

// loadTask resolves the task and its owning project, reporting absent
// or soft-deleted rows as not-found before any permission check runs.
func (s *TaskService) loadTask(ctx context.Context, taskId int) (*domain.Task, *domain.Project, error) {
	task, err := s.tasks.FindByID(ctx, taskId)

	if err != nil {
		return nil, nil, err
	}

	if task == nil || task.IsDeleted() {
		return nil, nil, domain.NewNotFoundError("Task not found")
	}

	project, err := s.projects.FindByID(ctx, task.ProjectID())

	if err != nil {
		return nil, nil, err
	}

	if project == nil || project.IsDeleted() {
		return nil, nil, domain.NewNotFoundError("Project not found")
	}

	return task, project, nil
}

// resolveAssignees maps usernames to users, dropping unknown names the
// way the original lookup does, and rejects any resolved user who is
// not a member of the project.
func (s *TaskService) resolveAssignees(ctx context.Context, project *domain.Project, assignTo []request.AssignToRequest) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(assignTo))

	for _, assignee := range assignTo {
		user, err := s.users.FindByUsername(ctx, assignee.Username)

		if err != nil {
			return nil, err
		}

		if user == nil {
			continue
		}

		if !project.CanUserView(user.ID()) {
			return nil, domain.NewBadRequestError("All assigned users must be members of the project")
		}

		users = append(users, user)
	}

	return users, nil
}

func (s *TaskService) Create(ctx context.Context, req *request.CreateTaskRequest, userId int) (*response.TaskResponse, error) {
	project, err := s.projects.FindByID(ctx, req.ProjectID)

	if err != nil {
		return nil, err
	}

	if project == nil || project.IsDeleted() {
		return nil, domain.NewNotFoundError("Project not found")
	}

	if !project.CanUserView(userId) {
		return nil, domain.NewForbiddenError("You do not have access to this project")
	}

	assignees, err := s.resolveAssignees(ctx, project, req.AssignTo)

	if err != nil {
		return nil, err
	}

	assignedIds := make([]int, 0, len(assignees))
	for _, user := range assignees {
		assignedIds = append(assignedIds, user.ID())
	}

	status := domain.TaskStatus(req.Status)
	if req.Status == "" {
		status = domain.TaskStatusPending
	}

	priority := domain.TaskPriority(req.Priority)
	if req.Priority == "" {
		priority = domain.TaskPriorityLow
	}

	task, err := domain.NewTask(req.Name, req.Description, status, priority, req.ProjectID, assignedIds)

	if err != nil {
		return nil, err
	}

	saved, err := s.tasks.Save(ctx, task)

	if err != nil {
		slog.Error("Task#Create", "save", err)
		return nil, err
	}

	// Keep the project's denormalized task list in sync.
	if err := project.AddTask(saved.ID()); err != nil {
		return nil, err
	}

	if _, err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}

	assignedMembers := make([]response.AssignedMemberResponse, 0, len(assignees))
	for _, user := range assignees {
		assignedMembers = append(assignedMembers, response.AssignedMemberResponse{Username: user.Username()})
	}

	return &response.TaskResponse{
		ID:              saved.ID(),
		Name:            saved.Name(),
		Description:     saved.Description(),
		Status:          string(saved.Status()),
		Priority:        string(saved.Priority()),
		CreatedAt:       saved.CreatedAt(),
		UpdatedAt:       saved.UpdatedAt(),
		AssignedMembers: assignedMembers,
	}, nil
}

func (s *TaskService) List(ctx context.Context, query *request.ListTasksQuery, userId int) (*response.ListTasksResponse, error) {
	if query.ProjectID != nil {
		project, err := s.projects.FindByID(ctx, *query.ProjectID)

		if err != nil {
			return nil, err
		}

		if project == nil || project.IsDeleted() {
			return nil, domain.NewNotFoundError("Project not found")
		}

		if !project.CanUserView(userId) {
			return nil, domain.NewForbiddenError("You do not have access to this project")
		}
	}

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

	filter := port.TaskFilter{
		Limit:          limit,
		Offset:         query.Offset,
		ProjectID:      query.ProjectID,
		AssignedUserID: query.AssignedUserID,
		SortBy:         sortBy,
		SortOrder:      sortOrder,
	}

	if query.Status != nil {
		status := domain.TaskStatus(*query.Status)
		filter.Status = &status
	}

	if query.Priority != nil {
		priority := domain.TaskPriority(*query.Priority)
		filter.Priority = &priority
	}

	result, err := s.tasks.FindAll(ctx, filter)

	if err != nil {
		return nil, err
	}

	tasks := make([]response.TaskSummaryResponse, 0, len(result.Tasks))

	for _, task := range result.Tasks {
		tasks = append(tasks, response.TaskSummaryResponse{
			ID:                task.ID(),
			Name:              task.Name(),
			Description:       task.Description(),
			Status:            string(task.Status()),
			Priority:          string(task.Priority()),
			AssignedUserCount: task.AssignedUserCount(),
			CreatedAt:         task.CreatedAt(),
			UpdatedAt:         task.UpdatedAt(),
		})
	}

	return &response.ListTasksResponse{
		Tasks: tasks,
		Total: result.Total,
	}, nil
}

func (s *TaskService) GetByID(ctx context.Context, taskId, userId int) (*response.TaskSummaryResponse, error) {
	task, project, err := s.loadTask(ctx, taskId)

	if err != nil {
		return nil, err
	}

	if !project.CanUserView(userId) {
		return nil, domain.NewForbiddenError("You do not have access to this task")
	}

	return &response.TaskSummaryResponse{
		ID:                task.ID(),
		Name:              task.Name(),
		Description:       task.Description(),
		Status:            string(task.Status()),
		Priority:          string(task.Priority()),
		AssignedUserCount: task.AssignedUserCount(),
		CreatedAt:         task.CreatedAt(),
		UpdatedAt:         task.UpdatedAt(),
	}, nil
}

func (s *TaskService) Update(ctx context.Context, taskId int, req *request.UpdateTaskRequest, userId int) (*response.TaskResponse, error) {
	task, project, err := s.loadTask(ctx, taskId)

	if err != nil {
		return nil, err
	}

	if !project.CanUserView(userId) {
		return nil, domain.NewForbiddenError("You do not have access to this task")
	}

	if req.Name != nil {
		if err := task.UpdateName(*req.Name); err != nil {
			return nil, err
		}
	}

	if req.Description != nil {
		if err := task.UpdateDescription(req.Description); err != nil {
			return nil, err
		}
	}

	if req.Status != nil {
		if err := task.UpdateStatus(domain.TaskStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if req.Priority != nil {
		if err := task.UpdatePriority(domain.TaskPriority(*req.Priority)); err != nil {
			return nil, err
		}
	}

	assignedMembers := make([]response.AssignedMemberResponse, 0)

	if len(req.AssignTo) > 0 {
		assignees, err := s.resolveAssignees(ctx, project, req.AssignTo)

		if err != nil {
			return nil, err
		}

		for _, user := range assignees {
			if err := task.AssignUser(user.ID()); err != nil {
				return nil, err
			}

			assignedMembers = append(assignedMembers, response.AssignedMemberResponse{Username: user.Username()})
		}
	}

	saved, err := s.tasks.Save(ctx, task)

	if err != nil {
		return nil, err
	}

	return &response.TaskResponse{
		ID:              saved.ID(),
		Name:            saved.Name(),
		Description:     saved.Description(),
		Status:          string(saved.Status()),
		Priority:        string(saved.Priority()),
		CreatedAt:       saved.CreatedAt(),
		UpdatedAt:       saved.UpdatedAt(),
		AssignedMembers: assignedMembers,
	}, nil
}

func (s *TaskService) Delete(ctx context.Context, taskId, userId int) (*response.MessageResponse, error) {
	task, project, err := s.loadTask(ctx, taskId)

	if err != nil {
		return nil, err
	}

	// Deleting is stricter than updating: creator only.
	if !project.CanUserEdit(userId) {
		return nil, domain.NewForbiddenError("Only the project creator can delete tasks")
	}

	if err := task.Delete(); err != nil {
		return nil, err
	}

	if _, err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}

	return &response.MessageResponse{
		ID:      task.ID(),
		Message: "Task deleted successfully",
	}, nil
}

func (s *TaskService) AssignUser(ctx context.Context, taskId int, req *request.MemberRequest, userId int) (*response.MessageResponse, error) {
	task, project, err := s.loadTask(ctx, taskId)

	if err != nil {
		return nil, err
	}

	if !project.CanUserView(userId) {
		return nil, domain.NewForbiddenError("You do not have access to this project")
	}

	user, err := s.users.FindByEmail(ctx, req.Email)

	if err != nil {
		return nil, err
	}

	if user == nil || user.IsDeleted() {
		return nil, domain.NewNotFoundError("User not found")
	}

	// Membership is checked at assignment time only; removing the
	// member later does not unassign them.
	if !project.CanUserView(user.ID()) {
		return nil, domain.NewBadRequestError("User must be a member of the project to be assigned to tasks")
	}

	if err := task.AssignUser(user.ID()); err != nil {
		return nil, err
	}

	if _, err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}

	return &response.MessageResponse{
		ID:      task.ID(),
		Message: "User assigned to task successfully",
	}, nil
}

func (s *TaskService) UnassignUser(ctx context.Context, taskId int, req *request.MemberRequest, userId int) (*response.MessageResponse, error) {
	task, project, err := s.loadTask(ctx, taskId)

	if err != nil {
		return nil, err
	}

	if !project.CanUserView(userId) {
		return nil, domain.NewForbiddenError("You do not have access to this project")
	}

	user, err := s.users.FindByEmail(ctx, req.Email)

	if err != nil {
		return nil, err
	}

	if user == nil || user.IsDeleted() {
		return nil, domain.NewNotFoundError("User not found")
	}

	if err := task.UnassignUser(user.ID()); err != nil {
		return nil, err
	}

	if _, err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}

	return &response.MessageResponse{
		ID:      task.ID(),
		Message: "User unassigned from task successfully",
	}, nil
}

func (s *TaskService) AssignedUsers(ctx context.Context, taskId, userId int) (*response.AssignedUsersResponse, error) {
	task, project, err := s.loadTask(ctx, taskId)

	if err != nil {
		return nil, err
	}

	if !project.CanUserView(userId) {
		return nil, domain.NewForbiddenError("You do not have access to this project")
	}

	users := make([]response.UserSummaryResponse, 0, task.AssignedUserCount())

	for _, assignedId := range task.AssignedUserIDs() {
		user, err := s.users.FindByID(ctx, assignedId)

		if err != nil {
			return nil, err
		}

		if user == nil || user.IsDeleted() {
			continue
		}

		fullName := user.FullName()
		if fullName == "" {
			fullName = user.Username()
		}

		users = append(users, response.UserSummaryResponse{
			Email:     user.Email(),
			Username:  user.Username(),
			FirstName: user.FirstName(),
			LastName:  user.LastName(),
			FullName:  fullName,
		})
	}

	return &response.AssignedUsersResponse{Users: users}, nil
}
