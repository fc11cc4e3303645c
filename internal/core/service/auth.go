package service

import (
	"context"
	"log/slog"

	"projecthub/internal/core/domain"
	"projecthub/internal/core/model/request"
	"projecthub/internal/core/model/response"
	"projecthub/internal/core/port"
)

type AuthService struct {
	users   port.UserRepository
	persons port.PersonRepository
	hasher  port.PasswordHasher
	tokens  port.TokenService
}

func NewAuthService(users port.UserRepository, persons port.PersonRepository, hasher port.PasswordHasher, tokens port.TokenService) *AuthService {
	return &AuthService{
		users:   users,
		persons: persons,
		hasher:  hasher,
		tokens:  tokens,
	}
}

func (s *AuthService) Register(ctx context.Context, req *request.RegisterRequest) (*response.RegisterResponse, error) {
	emailTaken, err := s.users.ExistsByEmail(ctx, req.Email, 0)

	if err != nil {
		return nil, err
	}

	if emailTaken {
		return nil, domain.NewBadRequestError("Email already in use")
	}

	usernameTaken, err := s.users.ExistsByUsername(ctx, req.Username, 0)

	if err != nil {
		return nil, err
	}

	if usernameTaken {
		return nil, domain.NewBadRequestError("Username already in use")
	}

	hashed, err := s.hasher.Hash(req.Password)

	if err != nil {
		slog.Error("Auth#Register", "hash", err)
		return nil, err
	}

	person, err := domain.NewPerson(req.FirstName, req.LastName)

	if err != nil {
		return nil, err
	}

	savedPerson, err := s.persons.Save(ctx, person)

	if err != nil {
		return nil, err
	}

	user, err := domain.NewUser(req.Email, req.Username, hashed, savedPerson.ID())

	if err != nil {
		return nil, err
	}

	savedUser, err := s.users.Save(ctx, user)

	if err != nil {
		return nil, err
	}

	accessToken, err := s.tokens.GenerateAccessToken(savedUser.ID(), savedUser.Email())

	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(savedUser.ID())

	if err != nil {
		return nil, err
	}

	return &response.RegisterResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: response.AuthUserResponse{
			ID:        savedUser.ID(),
			Email:     savedUser.Email(),
			Username:  savedUser.Username(),
			FirstName: savedPerson.FirstName(),
			LastName:  savedPerson.LastName(),
		},
	}, nil
}

// Login deliberately reports every failure mode with the same message
// so that account existence never leaks through error text.
func (s *AuthService) Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)

	if err != nil {
		return nil, err
	}

	if user == nil || user.IsDeleted() {
		return nil, domain.NewUnauthorizedError("Invalid credentials")
	}

	if !s.hasher.Compare(req.Password, user.Password()) {
		return nil, domain.NewUnauthorizedError("Invalid credentials")
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID(), user.Email())

	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(user.ID())

	if err != nil {
		return nil, err
	}

	return &response.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: response.AuthUserResponse{
			ID:        user.ID(),
			Email:     user.Email(),
			Username:  user.Username(),
			FirstName: user.FirstName(),
			LastName:  user.LastName(),
		},
	}, nil
}

func (s *AuthService) Refresh(ctx context.Context, req *request.RefreshRequest) (*response.RefreshResponse, error) {
	payload, err := s.tokens.VerifyRefreshToken(req.RefreshToken)

	if err != nil {
		return nil, domain.NewUnauthorizedError("Invalid or expired refresh token")
	}

	user, err := s.users.FindByID(ctx, payload.UserID)

	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, domain.NewNotFoundError("User not found")
	}

	if user.IsDeleted() {
		return nil, domain.NewUnauthorizedError("User account is deleted")
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID(), user.Email())

	if err != nil {
		return nil, err
	}

	return &response.RefreshResponse{AccessToken: accessToken}, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userId int) (*response.AuthUserResponse, error) {
	user, err := s.users.FindByID(ctx, userId)

	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, domain.NewUnauthorizedError("User not found")
	}

	if user.IsDeleted() {
		return nil, domain.NewUnauthorizedError("User account is inactive")
	}

	return &response.AuthUserResponse{
		ID:        user.ID(),
		Email:     user.Email(),
		Username:  user.Username(),
		FirstName: user.FirstName(),
		LastName:  user.LastName(),
	}, nil
}
