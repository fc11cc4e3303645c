package memory_test

import (
	"context"
	"testing"

	"projecthub/internal/adapter/database/memory"
	"projecthub/internal/core/domain"
	"projecthub/pkg/test/factory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	store *memory.Store
}

func (s *StoreTestSuite) SetupTest() {
	s.store = memory.NewStore()
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) saveProjectAndTask() (*domain.Project, *domain.Task) {
	project, err := s.store.Projects().Save(context.Background(), factory.NewProject(map[string]any{"ID": 0}))
	assert.NoError(s.T(), err)

	task, err := s.store.Tasks().Save(context.Background(), factory.NewTask(map[string]any{
		"ID":        0,
		"ProjectID": project.ID(),
	}))
	assert.NoError(s.T(), err)

	return project, task
}

func (s *StoreTestSuite) TestTaskStore_Save_AddsTaskToProject() {
	project, task := s.saveProjectAndTask()

	found, err := s.store.Projects().FindByID(context.Background(), project.ID())
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), []int{task.ID()}, found.TaskIDs())
}

func (s *StoreTestSuite) TestTaskStore_Save_SoftDeleteDropsTaskFromProject() {
	project, task := s.saveProjectAndTask()

	assert.NoError(s.T(), task.Delete())

	_, err := s.store.Tasks().Save(context.Background(), task)
	assert.NoError(s.T(), err)

	found, err := s.store.Projects().FindByID(context.Background(), project.ID())
	assert.NoError(s.T(), err)
	assert.Empty(s.T(), found.TaskIDs())
}

func (s *StoreTestSuite) TestTaskStore_Save_RestoreReturnsTaskToProject() {
	project, task := s.saveProjectAndTask()

	assert.NoError(s.T(), task.Delete())
	_, err := s.store.Tasks().Save(context.Background(), task)
	assert.NoError(s.T(), err)

	assert.NoError(s.T(), task.Restore())
	_, err = s.store.Tasks().Save(context.Background(), task)
	assert.NoError(s.T(), err)

	found, err := s.store.Projects().FindByID(context.Background(), project.ID())
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), []int{task.ID()}, found.TaskIDs())
}

func (s *StoreTestSuite) TestTaskStore_Delete_DropsTaskFromProject() {
	project, task := s.saveProjectAndTask()

	assert.NoError(s.T(), s.store.Tasks().Delete(context.Background(), task.ID()))

	found, err := s.store.Projects().FindByID(context.Background(), project.ID())
	assert.NoError(s.T(), err)
	assert.Empty(s.T(), found.TaskIDs())
}
