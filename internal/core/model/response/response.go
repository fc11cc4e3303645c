package response

import "time"

type AuthUserResponse struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

type LoginResponse struct {
	AccessToken  string           `json:"accessToken"`
	RefreshToken string           `json:"refreshToken"`
	User         AuthUserResponse `json:"user"`
}

type RegisterResponse struct {
	AccessToken  string           `json:"accessToken"`
	RefreshToken string           `json:"refreshToken"`
	User         AuthUserResponse `json:"user"`
}

type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

type UserSummaryResponse struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	FullName  string `json:"fullName,omitempty"`
}

type ListUsersResponse struct {
	Users []UserSummaryResponse `json:"users"`
	Total int                   `json:"total"`
}

type UserStatsResponse struct {
	ProjectsCount        int `json:"projectsCount"`
	PendingTasksCount    int `json:"pendingTasksCount"`
	InProgressTasksCount int `json:"inProgressTasksCount"`
}

type ProjectResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
}

type ProjectSummaryResponse struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	MemberCount int       `json:"memberCount"`
	TaskCount   int       `json:"taskCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ListProjectsResponse struct {
	Projects []ProjectSummaryResponse `json:"projects"`
	Total    int                      `json:"total"`
}

type ProjectDetailResponse struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	MemberCount int       `json:"memberCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MessageResponse is the shape for mutations that only acknowledge.
type MessageResponse struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}

type AssignedMemberResponse struct {
	Username string `json:"username"`
}

type TaskResponse struct {
	ID              int                      `json:"id"`
	Name            string                   `json:"name"`
	Description     *string                  `json:"description"`
	Status          string                   `json:"status"`
	Priority        string                   `json:"priority"`
	CreatedAt       time.Time                `json:"createdAt"`
	UpdatedAt       time.Time                `json:"updatedAt"`
	AssignedMembers []AssignedMemberResponse `json:"assignedMembers"`
}

type TaskSummaryResponse struct {
	ID                int       `json:"id"`
	Name              string    `json:"name"`
	Description       *string   `json:"description"`
	Status            string    `json:"status"`
	Priority          string    `json:"priority"`
	AssignedUserCount int       `json:"assignedUserCount"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type ListTasksResponse struct {
	Tasks []TaskSummaryResponse `json:"tasks"`
	Total int                   `json:"total"`
}

type AssignedUsersResponse struct {
	Users []UserSummaryResponse `json:"users"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ResponseError struct {
	Code    string            `json:"code"`
	Errors  []ValidationError `json:"errors"`
	Details any               `json:"details,omitempty"`
}

type SuccessResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error ResponseError `json:"error"`
}
