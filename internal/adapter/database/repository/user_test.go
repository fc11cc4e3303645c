package repository_test

import (
	"context"
	"testing"

	. "projecthub/pkg/test"

	"projecthub/internal/adapter/database/repository"
	"projecthub/internal/core/domain"
	"projecthub/internal/core/port"
	"projecthub/internal/core/telemetry"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type UserRepositoryTestSuite struct {
	suite.Suite
	repo    port.UserRepository
	persons port.PersonRepository
}

func (s *UserRepositoryTestSuite) SetupTest() {
	db := InitTestDB()
	probe := telemetry.NewNoOpProbe()

	s.repo = repository.NewUserRepository(db, probe)
	s.persons = repository.NewPersonRepository(db, probe)
}

func TestUserRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(UserRepositoryTestSuite))
}

func (s *UserRepositoryTestSuite) saveUser(email, username string) *domain.User {
	person, err := domain.NewPerson("Grace", "Hopper")
	assert.NoError(s.T(), err)

	savedPerson, err := s.persons.Save(context.Background(), person)
	assert.NoError(s.T(), err)

	user, err := domain.NewUser(email, username, "hashed-password", savedPerson.ID())
	assert.NoError(s.T(), err)

	saved, err := s.repo.Save(context.Background(), user)
	assert.NoError(s.T(), err)

	return saved
}

func (s *UserRepositoryTestSuite) TestRepository_Save_InsertAssignsID() {
	saved := s.saveUser("grace@example.com", "grace")

	assert.NotZero(s.T(), saved.ID())
	assert.Equal(s.T(), "grace@example.com", saved.Email())
}

func (s *UserRepositoryTestSuite) TestRepository_FindByID_AttachesPerson() {
	saved := s.saveUser("grace@example.com", "grace")

	found, err := s.repo.FindByID(context.Background(), saved.ID())

	assert.NoError(s.T(), err)
	assert.NotNil(s.T(), found.Person())
	assert.Equal(s.T(), "Grace Hopper", found.FullName())
}

func (s *UserRepositoryTestSuite) TestRepository_FindByEmail() {
	s.saveUser("grace@example.com", "grace")

	found, err := s.repo.FindByEmail(context.Background(), "grace@example.com")
	assert.NoError(s.T(), err)
	assert.NotNil(s.T(), found)

	missing, err := s.repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.NoError(s.T(), err)
	assert.Nil(s.T(), missing)
}

func (s *UserRepositoryTestSuite) TestRepository_FindByUsername() {
	s.saveUser("grace@example.com", "grace")

	found, err := s.repo.FindByUsername(context.Background(), "grace")
	assert.NoError(s.T(), err)
	assert.NotNil(s.T(), found)
	assert.Equal(s.T(), "grace@example.com", found.Email())
}

func (s *UserRepositoryTestSuite) TestRepository_FindByEmail_ReturnsDeletedRows() {
	saved := s.saveUser("grace@example.com", "grace")

	assert.NoError(s.T(), saved.Delete())
	_, err := s.repo.Save(context.Background(), saved)
	assert.NoError(s.T(), err)

	// Lookups return soft-deleted users; services decide how to treat
	// them.
	found, err := s.repo.FindByEmail(context.Background(), "grace@example.com")
	assert.NoError(s.T(), err)
	assert.NotNil(s.T(), found)
	assert.True(s.T(), found.IsDeleted())
}

func (s *UserRepositoryTestSuite) TestRepository_Save_UpdatePersists() {
	saved := s.saveUser("grace@example.com", "grace")

	assert.NoError(s.T(), saved.UpdateEmail("hopper@example.com"))

	_, err := s.repo.Save(context.Background(), saved)
	assert.NoError(s.T(), err)

	found, err := s.repo.FindByID(context.Background(), saved.ID())
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "hopper@example.com", found.Email())
}

func (s *UserRepositoryTestSuite) TestRepository_ExistsByEmail_ExcludesSelf() {
	saved := s.saveUser("grace@example.com", "grace")

	taken, err := s.repo.ExistsByEmail(context.Background(), "grace@example.com", 0)
	assert.NoError(s.T(), err)
	assert.True(s.T(), taken)

	taken, err = s.repo.ExistsByEmail(context.Background(), "grace@example.com", saved.ID())
	assert.NoError(s.T(), err)
	assert.False(s.T(), taken)
}

func (s *UserRepositoryTestSuite) TestRepository_ExistsByUsername() {
	s.saveUser("grace@example.com", "grace")

	taken, err := s.repo.ExistsByUsername(context.Background(), "grace", 0)
	assert.NoError(s.T(), err)
	assert.True(s.T(), taken)

	taken, err = s.repo.ExistsByUsername(context.Background(), "someone-else", 0)
	assert.NoError(s.T(), err)
	assert.False(s.T(), taken)
}

func (s *UserRepositoryTestSuite) TestRepository_FindAll_EmailSubstring() {
	s.saveUser("grace@example.com", "grace")
	s.saveUser("ada@other.org", "ada")

	result, err := s.repo.FindAll(context.Background(), port.UserFilter{
		Limit: 10,
		Email: "example.com",
	})

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), 1, result.Total)
	assert.Equal(s.T(), "grace", result.Users[0].Username())
}

func (s *UserRepositoryTestSuite) TestRepository_Delete_RemovesRow() {
	saved := s.saveUser("grace@example.com", "grace")

	err := s.repo.Delete(context.Background(), saved.ID())
	assert.NoError(s.T(), err)

	found, err := s.repo.FindByID(context.Background(), saved.ID())
	assert.NoError(s.T(), err)
	assert.Nil(s.T(), found)

	err = s.repo.Delete(context.Background(), saved.ID())
	assert.Error(s.T(), err)
	assert.True(s.T(), domain.IsNotFound(err))
}
