package service

import (
	"context"
	"log/slog"

	"projecthub/internal/core/domain"
	"projecthub/internal/core/model/request"
	"projecthub/internal/core/model/response"
	"projecthub/internal/core/port"
)

// ProjectService sequences entity calls for every project operation.
// Ordering is fixed: not-found before forbidden before business rule,
// so that a soft-deleted project is indistinguishable from an absent
// one.
type ProjectService struct {
	projects port.ProjectRepository
	users    port.UserRepository
}

func NewProjectService(projects port.ProjectRepository, users port.UserRepository) *ProjectService {
	return &ProjectService{
		projects: projects,
		users:    users,
	}
}

// loadProject applies the not-found-before-forbidden rule shared by
// every operation below.
func (s *ProjectService) loadProject(ctx context.Context, projectId int) (*domain.Project, error) {
	project, err := s.projects.FindByID(ctx, projectId)

	if err != nil {
		return nil, err
	}

	if project == nil || project.IsDeleted() {
		return nil, domain.NewNotFoundError("Project not found")
	}

	return project, nil
}

func (s *ProjectService) Create(ctx context.Context, req *request.CreateProjectRequest, userId int) (*response.ProjectResponse, error) {
	project, err := domain.NewProject(req.Name, req.Slug, req.Description, userId)

	if err != nil {
		return nil, err
	}

	saved, err := s.projects.Save(ctx, project)

	if err != nil {
		slog.Error("Project#Create", "save", err)
		return nil, err
	}

	return &response.ProjectResponse{
		ID:          saved.ID(),
		Name:        saved.Name(),
		Slug:        saved.Slug(),
		Description: saved.Description(),
	}, nil
}

func (s *ProjectService) List(ctx context.Context, query *request.ListProjectsQuery, userId int) (*response.ListProjectsResponse, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 20
	}

	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}

	sortOrder := port.SortOrder(query.SortOrder)
	if sortOrder == "" {
		sortOrder = port.SortDesc
	}

	result, err := s.projects.FindAll(ctx, port.ProjectFilter{
		Limit:          limit,
		Offset:         query.Offset,
		MemberID:       &userId,
		IncludeDeleted: query.IncludeDeleted,
		SortBy:         sortBy,
		SortOrder:      sortOrder,
	})

	if err != nil {
		return nil, err
	}

	projects := make([]response.ProjectSummaryResponse, 0, len(result.Projects))

	for _, project := range result.Projects {
		projects = append(projects, response.ProjectSummaryResponse{
			ID:          project.ID(),
			Name:        project.Name(),
			Slug:        project.Slug(),
			Description: project.Description(),
			MemberCount: project.MemberCount(),
			TaskCount:   project.TaskCount(),
			CreatedAt:   project.CreatedAt(),
			UpdatedAt:   project.UpdatedAt(),
		})
	}

	return &response.ListProjectsResponse{
		Projects: projects,
		Total:    result.Total,
	}, nil
}

func (s *ProjectService) GetByID(ctx context.Context, projectId, userId int) (*response.ProjectDetailResponse, error) {
	project, err := s.loadProject(ctx, projectId)

	if err != nil {
		return nil, err
	}

	if !project.CanUserView(userId) {
		return nil, domain.NewForbiddenError("You do not have permission to view this project")
	}

	return &response.ProjectDetailResponse{
		ID:          project.ID(),
		Name:        project.Name(),
		Slug:        project.Slug(),
		Description: project.Description(),
		MemberCount: project.MemberCount(),
		CreatedAt:   project.CreatedAt(),
		UpdatedAt:   project.UpdatedAt(),
	}, nil
}

func (s *ProjectService) Update(ctx context.Context, projectId int, req *request.UpdateProjectRequest, userId int) (*response.ProjectResponse, error) {
	project, err := s.loadProject(ctx, projectId)

	if err != nil {
		return nil, err
	}

	if !project.CanUserEdit(userId) {
		return nil, domain.NewForbiddenError("You do not have permission to edit this project")
	}

	if req.Name != nil {
		if err := project.UpdateName(*req.Name); err != nil {
			return nil, err
		}
	}

	if req.Description != nil {
		if err := project.UpdateDescription(req.Description); err != nil {
			return nil, err
		}
	}

	saved, err := s.projects.Save(ctx, project)

	if err != nil {
		return nil, err
	}

	return &response.ProjectResponse{
		ID:          saved.ID(),
		Name:        saved.Name(),
		Slug:        saved.Slug(),
		Description: saved.Description(),
	}, nil
}

func (s *ProjectService) Delete(ctx context.Context, projectId, userId int) (*response.MessageResponse, error) {
	project, err := s.loadProject(ctx, projectId)

	if err != nil {
		return nil, err
	}

	if !project.CanUserDelete(userId) {
		return nil, domain.NewForbiddenError("You do not have permission to delete this project")
	}

	if err := project.Delete(); err != nil {
		return nil, err
	}

	if _, err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}

	return &response.MessageResponse{
		ID:      project.ID(),
		Message: "Project deleted successfully",
	}, nil
}

func (s *ProjectService) AddMember(ctx context.Context, projectId int, req *request.MemberRequest, userId int) (*response.MessageResponse, error) {
	project, err := s.loadProject(ctx, projectId)

	if err != nil {
		return nil, err
	}

	if !project.CanUserEdit(userId) {
		return nil, domain.NewForbiddenError("Only the project creator can add members")
	}

	user, err := s.users.FindByEmail(ctx, req.Email)

	if err != nil {
		return nil, err
	}

	if user == nil || user.IsDeleted() {
		return nil, domain.NewNotFoundError("User not found")
	}

	if user.ID() == project.CreatedByID() {
		return nil, domain.NewBadRequestError("Cannot add the project creator as a member")
	}

	if project.HasMember(user.ID()) {
		return nil, domain.NewBadRequestError("User is already a member of this project")
	}

	if err := project.AddMember(user.ID()); err != nil {
		return nil, err
	}

	if _, err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}

	return &response.MessageResponse{
		ID:      project.ID(),
		Message: "Member added successfully",
	}, nil
}

func (s *ProjectService) RemoveMember(ctx context.Context, projectId int, req *request.MemberRequest, userId int) (*response.MessageResponse, error) {
	project, err := s.loadProject(ctx, projectId)

	if err != nil {
		return nil, err
	}

	if !project.CanUserEdit(userId) {
		return nil, domain.NewForbiddenError("Only the project creator can remove members")
	}

	user, err := s.users.FindByEmail(ctx, req.Email)

	if err != nil {
		return nil, err
	}

	if user == nil || user.IsDeleted() {
		return nil, domain.NewNotFoundError("User not found")
	}

	if !project.HasMember(user.ID()) {
		return nil, domain.NewBadRequestError("User is not a member of this project")
	}

	// RemoveMember rejects removing the creator.
	if err := project.RemoveMember(user.ID()); err != nil {
		return nil, err
	}

	if _, err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}

	return &response.MessageResponse{
		ID:      project.ID(),
		Message: "Member removed successfully",
	}, nil
}

func (s *ProjectService) Members(ctx context.Context, projectId, userId int) ([]response.UserSummaryResponse, error) {
	project, err := s.loadProject(ctx, projectId)

	if err != nil {
		return nil, err
	}

	if !project.CanUserView(userId) {
		return nil, domain.NewForbiddenError("You do not have access to view this project")
	}

	members := make([]response.UserSummaryResponse, 0, project.MemberCount())

	for _, memberId := range project.MemberIDs() {
		user, err := s.users.FindByID(ctx, memberId)

		if err != nil {
			return nil, err
		}

		if user == nil || user.IsDeleted() {
			continue
		}

		members = append(members, response.UserSummaryResponse{
			Email:     user.Email(),
			Username:  user.Username(),
			FirstName: user.FirstName(),
			LastName:  user.LastName(),
			FullName:  user.FullName(),
		})
	}

	return members, nil
}
