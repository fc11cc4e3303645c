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
	"projecthub/pkg/test/factory"
)

type ProjectUseCaseTestSuite struct {
	suite.Suite
	UseCase  port.ProjectService
	projects port.ProjectRepository
	users    port.UserRepository
	persons  port.PersonRepository

	creator *domain.User
	member  *domain.User
	outside *domain.User
}

func (s *ProjectUseCaseTestSuite) SetupTest() {
	db := InitTestDB()

	s.projects = repository.NewProjectRepository(db, nil)
	s.users = repository.NewUserRepository(db, nil)
	s.persons = repository.NewPersonRepository(db, nil)

	s.UseCase = service.NewProjectService(s.projects, s.users)

	s.creator = s.createUser("creator@example.com", "creator")
	s.member = s.createUser("member@example.com", "member")
	s.outside = s.createUser("outside@example.com", "outside")
}

func (s *ProjectUseCaseTestSuite) createUser(email, username string) *domain.User {
	person, err := s.persons.Save(context.Background(), factory.NewPerson(map[string]any{"ID": 0}))
	assert.NoError(s.T(), err)

	user := factory.NewUser(map[string]any{
		"ID":       0,
		"Email":    email,
		"Username": username,
		"PersonID": person.ID(),
	})

	saved, err := s.users.Save(context.Background(), user)
	assert.NoError(s.T(), err)

	return saved
}

func (s *ProjectUseCaseTestSuite) createProject(name, slug string, creatorId int) int {
	resp, err := s.UseCase.Create(context.Background(), &request.CreateProjectRequest{
		Name: name,
		Slug: slug,
	}, creatorId)
	assert.NoError(s.T(), err)

	return resp.ID
}

func TestProjectUseCaseTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(ProjectUseCaseTestSuite))
}

func (s *ProjectUseCaseTestSuite) TestUseCase_Create_Success() {
	resp, err := s.UseCase.Create(context.Background(), &request.CreateProjectRequest{
		Name: "Apollo",
		Slug: "apollo",
	}, s.creator.ID())

	assert.NoError(s.T(), err)
	assert.NotZero(s.T(), resp.ID)
	assert.Equal(s.T(), "Apollo", resp.Name)
	assert.Equal(s.T(), "apollo", resp.Slug)

	project, err := s.projects.FindByID(context.Background(), resp.ID)
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), []int{s.creator.ID()}, project.MemberIDs())
}

func (s *ProjectUseCaseTestSuite) TestUseCase_GetByID_NotFoundBeforeForbidden() {
	_, err := s.UseCase.GetByID(context.Background(), 9999, s.outside.ID())

	assert.Error(s.T(), err)
	assert.True(s.T(), domain.IsNotFound(err))
}

func (s *ProjectUseCaseTestSuite) TestUseCase_GetByID_ForbiddenForOutsider() {
	projectId := s.createProject("Apollo", "apollo", s.creator.ID())

	_, err := s.UseCase.GetByID(context.Background(), projectId, s.outside.ID())

	assert.Error(s.T(), err)
	assert.True(s.T(), domain.IsForbidden(err))
}

func (s *ProjectUseCaseTestSuite) TestUseCase_GetByID_DeletedLooksAbsent() {
	projectId := s.createProject("Apollo", "apollo", s.creator.ID())

	_, err := s.UseCase.Delete(context.Background(), projectId, s.creator.ID())
	assert.NoError(s.T(), err)

	_, err = s.UseCase.GetByID(context.Background(), projectId, s.creator.ID())

	assert.Error(s.T(), err)
	assert.True(s.T(), domain.IsNotFound(err))
}

func (s *ProjectUseCaseTestSuite) TestUseCase_Update_OnlyCreator() {
	projectId := s.createProject("Apollo", "apollo", s.creator.ID())

	s.addMember(projectId, s.member.Email())

	name := "Gemini"

	_, err := s.UseCase.Update(context.Background(), projectId, &request.UpdateProjectRequest{Name: &name}, s.member.ID())
	assert.True(s.T(), domain.IsForbidden(err))

	resp, err := s.UseCase.Update(context.Background(), projectId, &request.UpdateProjectRequest{Name: &name}, s.creator.ID())
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "Gemini", resp.Name)
}

func (s *ProjectUseCaseTestSuite) addMember(projectId int, email string) {
	_, err := s.UseCase.AddMember(context.Background(), projectId, &request.MemberRequest{Email: email}, s.creator.ID())
	assert.NoError(s.T(), err)
}

func (s *ProjectUseCaseTestSuite) TestUseCase_AddMember_Success() {
	projectId := s.createProject("Apollo", "apollo", s.creator.ID())

	resp, err := s.UseCase.AddMember(context.Background(), projectId, &request.MemberRequest{
		Email: s.member.Email(),
	}, s.creator.ID())

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "Member added successfully", resp.Message)

	project, err := s.projects.FindByID(context.Background(), projectId)
	assert.NoError(s.T(), err)
	assert.True(s.T(), project.HasMember(s.member.ID()))
}

func (s *ProjectUseCaseTestSuite) TestUseCase_AddMember_OnlyCreator() {
	projectId := s.createProject("Apollo", "apollo", s.creator.ID())
	s.addMember(projectId, s.member.Email())

	_, err := s.UseCase.AddMember(context.Background(), projectId, &request.MemberRequest{
		Email: s.outside.Email(),
	}, s.member.ID())

	assert.Error(s.T(), err)
	assert.True(s.T(), domain.IsForbidden(err))
	assert.Contains(s.T(), err.Error(), "Only the project creator can add members")
}

func (s *ProjectUseCaseTestSuite) TestUseCase_AddMember_UnknownUser() {
	projectId := s.createProject("Apollo", "apollo", s.creator.ID())

	_, err := s.UseCase.AddMember(context.Background(), projectId, &request.MemberRequest{
		Email: "nobody@example.com",
	}, s.creator.ID())

	assert.Error(s.T(), err)
	assert.True(s.T(), domain.IsNotFound(err))
	assert.Contains(s.T(), err.Error(), "User not found")
}

func (s *ProjectUseCaseTestSuite) TestUseCase_AddMember_CreatorRejected() {
	projectId := s.createProject("Apollo", "apollo", s.creator.ID())

	_, err := s.UseCase.AddMember(context.Background(), projectId, &request.MemberRequest{
		Email: s.creator.Email(),
	}, s.creator.ID())

	assert.Error(s.T(), err)
	assert.True(s.T(), domain.IsBadRequest(err))
}

func (s *ProjectUseCaseTestSuite) TestUseCase_AddMember_DuplicateRejected() {
	projectId := s.createProject("Apollo", "apollo", s.creator.ID())
	s.addMember(projectId, s.member.Email())

	_, err := s.UseCase.AddMember(context.Background(), projectId, &request.MemberRequest{
		Email: s.member.Email(),
	}, s.creator.ID())

	assert.Error(s.T(), err)
	assert.Contains(s.T(), err.Error(), "already a member")
}

func (s *ProjectUseCaseTestSuite) TestUseCase_RemoveMember_Success() {
	projectId := s.createProject("Apollo", "apollo", s.creator.ID())
	s.addMember(projectId, s.member.Email())

	resp, err := s.UseCase.RemoveMember(context.Background(), projectId, &request.MemberRequest{
		Email: s.member.Email(),
	}, s.creator.ID())

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "Member removed successfully", resp.Message)

	project, err := s.projects.FindByID(context.Background(), projectId)
	assert.NoError(s.T(), err)
	assert.False(s.T(), project.HasMember(s.member.ID()))
}

func (s *ProjectUseCaseTestSuite) TestUseCase_RemoveMember_CreatorUnremovable() {
	projectId := s.createProject("Apollo", "apollo", s.creator.ID())

	_, err := s.UseCase.RemoveMember(context.Background(), projectId, &request.MemberRequest{
		Email: s.creator.Email(),
	}, s.creator.ID())

	assert.Error(s.T(), err)
	assert.Contains(s.T(), err.Error(), "creator must always be a member")
}

func (s *ProjectUseCaseTestSuite) TestUseCase_Members_ListsActiveMembers() {
	projectId := s.createProject("Apollo", "apollo", s.creator.ID())
	s.addMember(projectId, s.member.Email())

	members, err := s.UseCase.Members(context.Background(), projectId, s.member.ID())

	assert.NoError(s.T(), err)
	assert.Len(s.T(), members, 2)
}

func (s *ProjectUseCaseTestSuite) TestUseCase_Delete_OnlyCreator() {
	projectId := s.createProject("Apollo", "apollo", s.creator.ID())
	s.addMember(projectId, s.member.Email())

	_, err := s.UseCase.Delete(context.Background(), projectId, s.member.ID())
	assert.True(s.T(), domain.IsForbidden(err))

	resp, err := s.UseCase.Delete(context.Background(), projectId, s.creator.ID())
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "Project deleted successfully", resp.Message)
}

func (s *ProjectUseCaseTestSuite) TestUseCase_List_ScopedToMembership() {
	s.createProject("Mine", "mine", s.creator.ID())
	s.createProject("Theirs", "theirs", s.outside.ID())

	resp, err := s.UseCase.List(context.Background(), &request.ListProjectsQuery{}, s.creator.ID())

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), 1, resp.Total)
	assert.Len(s.T(), resp.Projects, 1)
	assert.Equal(s.T(), "Mine", resp.Projects[0].Name)
}
