package service_test

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	. "projecthub/pkg/test"

	"projecthub/internal/adapter/database/repository"
	"projecthub/internal/core/domain"
	"projecthub/internal/core/model/request"
	"projecthub/internal/core/port"
	"projecthub/internal/core/service"
	"projecthub/internal/core/util"
	"projecthub/pkg/auth"
)

type AuthUseCaseTestSuite struct {
	suite.Suite
	UseCase port.AuthService
	users   port.UserRepository
}

func (s *AuthUseCaseTestSuite) SetupTest() {
	db := InitTestDB()

	users := repository.NewUserRepository(db, nil)
	persons := repository.NewPersonRepository(db, nil)
	tokens := auth.NewJWT("access-secret", "refresh-secret", 0, 0)

	s.UseCase = service.NewAuthService(users, persons, util.NewBcryptHasher(), tokens)
	s.users = users
}

func TestAuthUseCaseTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(AuthUseCaseTestSuite))
}

func registerRequest() *request.RegisterRequest {
	return &request.RegisterRequest{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@example.com",
		Username:  "grace",
		Password:  "password1234",
	}
}

func (s *AuthUseCaseTestSuite) TestUseCase_Register_Success() {
	resp, err := s.UseCase.Register(context.Background(), registerRequest())

	assert.NoError(s.T(), err)
	assert.NotNil(s.T(), resp)
	assert.NotEmpty(s.T(), resp.AccessToken)
	assert.NotEmpty(s.T(), resp.RefreshToken)
	assert.Equal(s.T(), "grace@example.com", resp.User.Email)
	assert.Equal(s.T(), "Grace", resp.User.FirstName)
	assert.NotZero(s.T(), resp.User.ID)
}

func (s *AuthUseCaseTestSuite) TestUseCase_Register_EmailAlreadyInUse() {
	_, err := s.UseCase.Register(context.Background(), registerRequest())
	assert.NoError(s.T(), err)

	dup := registerRequest()
	dup.Username = "different"

	_, err = s.UseCase.Register(context.Background(), dup)

	assert.Error(s.T(), err)
	assert.True(s.T(), domain.IsBadRequest(err))
	assert.Contains(s.T(), err.Error(), "Email already in use")
}

func (s *AuthUseCaseTestSuite) TestUseCase_Register_UsernameAlreadyInUse() {
	_, err := s.UseCase.Register(context.Background(), registerRequest())
	assert.NoError(s.T(), err)

	dup := registerRequest()
	dup.Email = "different@example.com"

	_, err = s.UseCase.Register(context.Background(), dup)

	assert.Error(s.T(), err)
	assert.Contains(s.T(), err.Error(), "Username already in use")
}

func (s *AuthUseCaseTestSuite) TestUseCase_Login_Success() {
	registered, err := s.UseCase.Register(context.Background(), registerRequest())
	assert.NoError(s.T(), err)

	resp, err := s.UseCase.Login(context.Background(), &request.LoginRequest{
		Email:    "grace@example.com",
		Password: "password1234",
	})

	assert.NoError(s.T(), err)
	assert.NotEmpty(s.T(), resp.AccessToken)
	assert.Equal(s.T(), registered.User.ID, resp.User.ID)
	assert.Equal(s.T(), "Grace", resp.User.FirstName)
}

func (s *AuthUseCaseTestSuite) TestUseCase_Login_WrongPassword() {
	_, err := s.UseCase.Register(context.Background(), registerRequest())
	assert.NoError(s.T(), err)

	_, err = s.UseCase.Login(context.Background(), &request.LoginRequest{
		Email:    "grace@example.com",
		Password: "wrong-password",
	})

	assert.Error(s.T(), err)
	assert.True(s.T(), domain.IsUnauthorized(err))
	assert.Contains(s.T(), err.Error(), "Invalid credentials")
}

func (s *AuthUseCaseTestSuite) TestUseCase_Login_UnknownEmail() {
	_, err := s.UseCase.Login(context.Background(), &request.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password1234",
	})

	assert.Error(s.T(), err)
	// Unknown account and wrong password are indistinguishable.
	assert.Contains(s.T(), err.Error(), "Invalid credentials")
}

func (s *AuthUseCaseTestSuite) TestUseCase_Login_DeletedUser() {
	registered, err := s.UseCase.Register(context.Background(), registerRequest())
	assert.NoError(s.T(), err)

	user, err := s.users.FindByID(context.Background(), registered.User.ID)
	assert.NoError(s.T(), err)
	assert.NoError(s.T(), user.Delete())

	_, err = s.users.Save(context.Background(), user)
	assert.NoError(s.T(), err)

	_, err = s.UseCase.Login(context.Background(), &request.LoginRequest{
		Email:    "grace@example.com",
		Password: "password1234",
	})

	assert.Error(s.T(), err)
	assert.Contains(s.T(), err.Error(), "Invalid credentials")
}

func (s *AuthUseCaseTestSuite) TestUseCase_Refresh_Success() {
	registered, err := s.UseCase.Register(context.Background(), registerRequest())
	assert.NoError(s.T(), err)

	resp, err := s.UseCase.Refresh(context.Background(), &request.RefreshRequest{
		RefreshToken: registered.RefreshToken,
	})

	assert.NoError(s.T(), err)
	assert.NotEmpty(s.T(), resp.AccessToken)
}

func (s *AuthUseCaseTestSuite) TestUseCase_Refresh_InvalidToken() {
	_, err := s.UseCase.Refresh(context.Background(), &request.RefreshRequest{
		RefreshToken: "not-a-token",
	})

	assert.Error(s.T(), err)
	assert.True(s.T(), domain.IsUnauthorized(err))
	assert.Contains(s.T(), err.Error(), "Invalid or expired refresh token")
}

func (s *AuthUseCaseTestSuite) TestUseCase_Refresh_AccessTokenRejected() {
	registered, err := s.UseCase.Register(context.Background(), registerRequest())
	assert.NoError(s.T(), err)

	// The pair uses separate secrets, so an access token never verifies
	// as a refresh token.
	_, err = s.UseCase.Refresh(context.Background(), &request.RefreshRequest{
		RefreshToken: registered.AccessToken,
	})

	assert.Error(s.T(), err)
}

func (s *AuthUseCaseTestSuite) TestUseCase_Refresh_DeletedUser() {
	registered, err := s.UseCase.Register(context.Background(), registerRequest())
	assert.NoError(s.T(), err)

	user, err := s.users.FindByID(context.Background(), registered.User.ID)
	assert.NoError(s.T(), err)
	assert.NoError(s.T(), user.Delete())

	_, err = s.users.Save(context.Background(), user)
	assert.NoError(s.T(), err)

	_, err = s.UseCase.Refresh(context.Background(), &request.RefreshRequest{
		RefreshToken: registered.RefreshToken,
	})

	assert.Error(s.T(), err)
	assert.Contains(s.T(), err.Error(), "User account is deleted")
}

func (s *AuthUseCaseTestSuite) TestUseCase_CurrentUser_Success() {
	registered, err := s.UseCase.Register(context.Background(), registerRequest())
	assert.NoError(s.T(), err)

	resp, err := s.UseCase.CurrentUser(context.Background(), registered.User.ID)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "grace@example.com", resp.Email)
	assert.Equal(s.T(), "Grace Hopper", resp.FirstName+" "+resp.LastName)
}

func (s *AuthUseCaseTestSuite) TestUseCase_CurrentUser_NotFound() {
	_, err := s.UseCase.CurrentUser(context.Background(), 9999)

	assert.Error(s.T(), err)
	assert.True(s.T(), domain.IsUnauthorized(err))
}

func (s *AuthUseCaseTestSuite) TestUseCase_CurrentUser_DeletedUser() {
	registered, err := s.UseCase.Register(context.Background(), registerRequest())
	assert.NoError(s.T(), err)

	user, err := s.users.FindByID(context.Background(), registered.User.ID)
	assert.NoError(s.T(), err)
	assert.NoError(s.T(), user.Delete())

	_, err = s.users.Save(context.Background(), user)
	assert.NoError(s.T(), err)

	_, err = s.UseCase.CurrentUser(context.Background(), registered.User.ID)

	assert.Error(s.T(), err)
	assert.Contains(s.T(), err.Error(), "User account is inactive")
}
