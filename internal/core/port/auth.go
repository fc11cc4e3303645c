package port

import (
	"context"

	"projecthub/internal/core/model/request"
	"projecthub/internal/core/model/response"
)

// PasswordHasher abstracts the slow salted hash used for credentials.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Compare(plaintext, hash string) bool
}

type AccessTokenPayload struct {
	UserID int
	Email  string
}

type RefreshTokenPayload struct {
	UserID int
}

// TokenService issues and verifies the stateless JWT pair. There is no
// server-side revocation; logout is a client-side no-op.
type TokenService interface {
	GenerateAccessToken(userId int, email string) (string, error)
	GenerateRefreshToken(userId int) (string, error)
	VerifyAccessToken(token string) (*AccessTokenPayload, error)
	VerifyRefreshToken(token string) (*RefreshTokenPayload, error)
}

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.RegisterResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error)
	Refresh(ctx context.Context, req *request.RefreshRequest) (*response.RefreshResponse, error)
	CurrentUser(ctx context.Context, userId int) (*response.AuthUserResponse, error)
}

type ProjectService interface {
	Create(ctx context.Context, req *request.CreateProjectRequest, userId int) (*response.ProjectResponse, error)
	List(ctx context.Context, query *request.ListProjectsQuery, userId int) (*response.ListProjectsResponse, error)
	GetByID(ctx context.Context, projectId, userId int) (*response.ProjectDetailResponse, error)
	Update(ctx context.Context, projectId int, req *request.UpdateProjectRequest, userId int) (*response.ProjectResponse, error)
	Delete(ctx context.Context, projectId, userId int) (*response.MessageResponse, error)
	AddMember(ctx context.Context, projectId int, req *request.MemberRequest, userId int) (*response.MessageResponse, error)
	RemoveMember(ctx context.Context, projectId int, req *request.MemberRequest, userId int) (*response.MessageResponse, error)
	Members(ctx context.Context, projectId, userId int) ([]response.UserSummaryResponse, error)
}

type TaskService interface {
	Create(ctx context.Context, req *request.CreateTaskRequest, userId int) (*response.TaskResponse, error)
	List(ctx context.Context, query *request.ListTasksQuery, userId int) (*response.ListTasksResponse, error)
	GetByID(ctx context.Context, taskId, userId int) (*response.TaskSummaryResponse, error)
	Update(ctx context.Context, taskId int, req *request.UpdateTaskRequest, userId int) (*response.TaskResponse, error)
	Delete(ctx context.Context, taskId, userId int) (*response.MessageResponse, error)
	AssignUser(ctx context.Context, taskId int, req *request.MemberRequest, userId int) (*response.MessageResponse, error)
	UnassignUser(ctx context.Context, taskId int, req *request.MemberRequest, userId int) (*response.MessageResponse, error)
	AssignedUsers(ctx context.Context, taskId, userId int) (*response.AssignedUsersResponse, error)
}

type UserService interface {
	List(ctx context.Context, query *request.ListUsersQuery) (*response.ListUsersResponse, error)
	Stats(ctx context.Context, userId int) (*response.UserStatsResponse, error)
}
