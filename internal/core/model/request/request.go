package request

type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,min=1,max=100"`
	LastName  string `json:"lastName" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Password  string `json:"password" validate:"required,min=8,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=100"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type CreateProjectRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=255"`
	Slug        string  `json:"slug" validate:"required,min=1,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
}

type MemberRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

type AssignToRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
}

type CreateTaskRequest struct {
	Name        string            `json:"name" validate:"required,min=1,max=255"`
	Description *string           `json:"description,omitempty" validate:"omitempty,min=1,max=5000"`
	Status      string            `json:"status,omitempty" validate:"omitempty,oneof=pending in_progress reviewing completed archived"`
	Priority    string            `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	ProjectID   int               `json:"projectId" validate:"required,min=1"`
	AssignTo    []AssignToRequest `json:"assignTo,omitempty" validate:"omitempty,dive"`
}

type UpdateTaskRequest struct {
	Name        *string           `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string           `json:"description,omitempty" validate:"omitempty,min=1,max=5000"`
	Status      *string           `json:"status,omitempty" validate:"omitempty,oneof=pending in_progress reviewing completed archived"`
	Priority    *string           `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	AssignTo    []AssignToRequest `json:"assignTo,omitempty" validate:"omitempty,dive"`
}

type ListProjectsQuery struct {
	Limit          int    `form:"limit"`
	Offset         int    `form:"offset"`
	SortBy         string `form:"sortBy" validate:"omitempty,oneof=name createdAt updatedAt"`
	SortOrder      string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
	IncludeDeleted bool   `form:"includeDeleted"`
}

type ListTasksQuery struct {
	ProjectID      *int    `form:"projectId"`
	Status         *string `form:"status" validate:"omitempty,oneof=pending in_progress reviewing completed archived"`
	Priority       *string `form:"priority" validate:"omitempty,oneof=low medium high"`
	AssignedUserID *int    `form:"assignedUserId"`
	Limit          int     `form:"limit"`
	Offset         int     `form:"offset"`
	SortBy         string  `form:"sortBy" validate:"omitempty,oneof=name priority status createdAt updatedAt"`
	SortOrder      string  `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

type ListUsersQuery struct {
	Limit     int    `form:"limit"`
	Offset    int    `form:"offset"`
	SortBy    string `form:"sortBy" validate:"omitempty,oneof=username email createdAt updatedAt"`
	SortOrder string `form:"sortOrder" validate:"omitempty,oneof=asc desc"`
	Search    string `form:"search" validate:"omitempty,max=255"`
}
