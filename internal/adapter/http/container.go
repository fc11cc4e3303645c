package http

import (
	"projecthub/internal/adapter/database"
	"projecthub/internal/adapter/database/repository"
	"projecthub/internal/adapter/http/handler"
	"projecthub/internal/core/port"
	"projecthub/internal/core/service"
	"projecthub/internal/core/util"
	"projecthub/pkg/auth"
	"projecthub/pkg/config"
)

type Container struct {
	PersonRepo  port.PersonRepository
	UserRepo    port.UserRepository
	ProjectRepo port.ProjectRepository
	TaskRepo    port.TaskRepository

	Tokens port.TokenService

	AuthUseCase    port.AuthService
	ProjectUseCase port.ProjectService
	TaskUseCase    port.TaskService
	UserUseCase    port.UserService

	AuthHandler    *handler.AuthHandler
	ProjectHandler *handler.ProjectHandler
	TaskHandler    *handler.TaskHandler
	UserHandler    *handler.UserHandler
}

func NewContainer(db *database.DB, appConfig *config.AppConfig, telemetry port.Telemetry) *Container {
	personRepo := repository.NewPersonRepository(db, telemetry)
	userRepo := repository.NewUserRepository(db, telemetry)
	projectRepo := repository.NewProjectRepository(db, telemetry)
	taskRepo := repository.NewTaskRepository(db, telemetry)

	tokens := auth.NewJWT(
		appConfig.JWTAccessSecret,
		appConfig.JWTRefreshSecret,
		appConfig.AccessExpiry,
		appConfig.RefreshExpiry,
	)
	hasher := util.NewBcryptHasher()

	authSvc := service.NewAuthService(userRepo, personRepo, hasher, tokens)
	projectSvc := service.NewProjectService(projectRepo, userRepo)
	taskSvc := service.NewTaskService(taskRepo, projectRepo, userRepo)
	userSvc := service.NewUserService(userRepo, projectRepo, taskRepo)

	return &Container{
		PersonRepo:  personRepo,
		UserRepo:    userRepo,
		ProjectRepo: projectRepo,
		TaskRepo:    taskRepo,

		Tokens: tokens,

		AuthUseCase:    authSvc,
		ProjectUseCase: projectSvc,
		TaskUseCase:    taskSvc,
		UserUseCase:    userSvc,

		AuthHandler:    handler.NewAuthHandler(authSvc),
		ProjectHandler: handler.NewProjectHandler(projectSvc),
		TaskHandler:    handler.NewTaskHandler(taskSvc),
		UserHandler:    handler.NewUserHandler(userSvc),
	}
}
