package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"projecthub/internal/core/domain"
	"projecthub/internal/core/port"
)

// Store holds every repository over shared in-process maps. It backs
// the service tests and makes a zero-dependency dev mode possible.
type Store struct {
	mu sync.RWMutex

	persons  map[int]domain.PersonRecord
	users    map[int]domain.UserRecord
	projects map[int]domain.ProjectRecord
	tasks    map[int]domain.TaskRecord

	nextPersonID  int
	nextUserID    int
	nextProjectID int
	nextTaskID    int
}

func NewStore() *Store {
	return &Store{
		persons:       map[int]domain.PersonRecord{},
		users:         map[int]domain.UserRecord{},
		projects:      map[int]domain.ProjectRecord{},
		tasks:         map[int]domain.TaskRecord{},
		nextPersonID:  1,
		nextUserID:    1,
		nextProjectID: 1,
		nextTaskID:    1,
	}
}

func (s *Store) Persons() port.PersonRepository   { return &personStore{s} }
func (s *Store) Users() port.UserRepository       { return &userStore{s} }
func (s *Store) Projects() port.ProjectRepository { return &projectStore{s} }
func (s *Store) Tasks() port.TaskRepository       { return &taskStore{s} }

func sortedKeys[T any](m map[int]T) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}

	items = items[offset:]

	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}

	return items
}

type personStore struct{ s *Store }

func (ps *personStore) FindByID(ctx context.Context, id int) (*domain.Person, error) {
	ps.s.mu.RLock()
	defer ps.s.mu.RUnlock()

	rec, ok := ps.s.persons[id]

	if !ok {
		return nil, nil
	}

	return domain.ReconstitutePerson(rec)
}

func (ps *personStore) FindAll(ctx context.Context, filter port.PersonFilter) (*port.PersonFilterResult, error) {
	ps.s.mu.RLock()
	defer ps.s.mu.RUnlock()

	matched := []*domain.Person{}

	for _, id := range sortedKeys(ps.s.persons) {
		rec := ps.s.persons[id]

		if rec.DeletedAt != nil && !filter.IncludeDeleted && !filter.OnlyDeleted {
			continue
		}

		if filter.OnlyDeleted && rec.DeletedAt == nil {
			continue
		}

		person, err := domain.ReconstitutePerson(rec)

		if err != nil {
			return nil, err
		}

		matched = append(matched, person)
	}

	total := len(matched)

	return &port.PersonFilterResult{
		Persons: paginate(matched, filter.Limit, filter.Offset),
		Total:   total,
	}, nil
}

func (ps *personStore) Save(ctx context.Context, person *domain.Person) (*domain.Person, error) {
	ps.s.mu.Lock()
	defer ps.s.mu.Unlock()

	rec := person.Record()

	if rec.ID == 0 {
		rec.ID = ps.s.nextPersonID
		ps.s.nextPersonID++
	}

	ps.s.persons[rec.ID] = rec

	return domain.ReconstitutePerson(rec)
}

func (ps *personStore) ExistsByID(ctx context.Context, id int) (bool, error) {
	ps.s.mu.RLock()
	defer ps.s.mu.RUnlock()

	_, ok := ps.s.persons[id]
	return ok, nil
}

type userStore struct{ s *Store }

func (us *userStore) toDomain(rec domain.UserRecord) (*domain.User, error) {
	if personRec, ok := us.s.persons[rec.PersonID]; ok {
		person, err := domain.ReconstitutePerson(personRec)

		if err != nil {
			return nil, err
		}

		rec.Person = person
	}

	return domain.ReconstituteUser(rec)
}

func (us *userStore) FindByID(ctx context.Context, id int) (*domain.User, error) {
	us.s.mu.RLock()
	defer us.s.mu.RUnlock()

	rec, ok := us.s.users[id]

	if !ok {
		return nil, nil
	}

	return us.toDomain(rec)
}

func (us *userStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	us.s.mu.RLock()
	defer us.s.mu.RUnlock()

	for _, id := range sortedKeys(us.s.users) {
		if us.s.users[id].Email == email {
			return us.toDomain(us.s.users[id])
		}
	}

	return nil, nil
}

func (us *userStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	us.s.mu.RLock()
	defer us.s.mu.RUnlock()

	for _, id := range sortedKeys(us.s.users) {
		if us.s.users[id].Username == username {
			return us.toDomain(us.s.users[id])
		}
	}

	return nil, nil
}

func (us *userStore) FindAll(ctx context.Context, filter port.UserFilter) (*port.UserFilterResult, error) {
	us.s.mu.RLock()
	defer us.s.mu.RUnlock()

	matched := []*domain.User{}

	for _, id := range sortedKeys(us.s.users) {
		rec := us.s.users[id]

		if rec.DeletedAt != nil && !filter.IncludeDeleted && !filter.OnlyDeleted {
			continue
		}

		if filter.OnlyDeleted && rec.DeletedAt == nil {
			continue
		}

		if filter.Email != "" && !strings.Contains(rec.Email, filter.Email) {
			continue
		}

		if filter.Username != "" && !strings.Contains(rec.Username, filter.Username) {
			continue
		}

		if filter.PersonID != nil && rec.PersonID != *filter.PersonID {
			continue
		}

		user, err := us.toDomain(rec)

		if err != nil {
			return nil, err
		}

		matched = append(matched, user)
	}

	total := len(matched)

	return &port.UserFilterResult{
		Users: paginate(matched, filter.Limit, filter.Offset),
		Total: total,
	}, nil
}

func (us *userStore) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	us.s.mu.Lock()
	defer us.s.mu.Unlock()

	rec := user.Record()
	rec.Person = nil

	if rec.ID == 0 {
		rec.ID = us.s.nextUserID
		us.s.nextUserID++
	}

	us.s.users[rec.ID] = rec

	return us.toDomain(rec)
}

func (us *userStore) Delete(ctx context.Context, id int) error {
	us.s.mu.Lock()
	defer us.s.mu.Unlock()

	if _, ok := us.s.users[id]; !ok {
		return domain.NewNotFoundError("User not found")
	}

	delete(us.s.users, id)
	return nil
}

func (us *userStore) ExistsByID(ctx context.Context, id int) (bool, error) {
	us.s.mu.RLock()
	defer us.s.mu.RUnlock()

	_, ok := us.s.users[id]
	return ok, nil
}

func (us *userStore) ExistsByEmail(ctx context.Context, email string, excludeId int) (bool, error) {
	us.s.mu.RLock()
	defer us.s.mu.RUnlock()

	for id, rec := range us.s.users {
		if rec.Email == email && id != excludeId {
			return true, nil
		}
	}

	return false, nil
}

func (us *userStore) ExistsByUsername(ctx context.Context, username string, excludeId int) (bool, error) {
	us.s.mu.RLock()
	defer us.s.mu.RUnlock()

	for id, rec := range us.s.users {
		if rec.Username == username && id != excludeId {
			return true, nil
		}
	}

	return false, nil
}

type projectStore struct{ s *Store }

func (ps *projectStore) FindByID(ctx context.Context, id int) (*domain.Project, error) {
	ps.s.mu.RLock()
	defer ps.s.mu.RUnlock()

	rec, ok := ps.s.projects[id]

	if !ok {
		return nil, nil
	}

	return domain.ReconstituteProject(rec)
}

func (ps *projectStore) FindAll(ctx context.Context, filter port.ProjectFilter) (*port.ProjectFilterResult, error) {
	ps.s.mu.RLock()
	defer ps.s.mu.RUnlock()

	matched := []*domain.Project{}

	for _, id := range sortedKeys(ps.s.projects) {
		rec := ps.s.projects[id]

		if rec.DeletedAt != nil && !filter.IncludeDeleted {
			continue
		}

		if filter.CreatorID != nil && rec.CreatedByID != *filter.CreatorID {
			continue
		}

		if filter.MemberID != nil && !containsID(rec.MemberIDs, *filter.MemberID) {
			continue
		}

		project, err := domain.ReconstituteProject(rec)

		if err != nil {
			return nil, err
		}

		matched = append(matched, project)
	}

	total := len(matched)

	return &port.ProjectFilterResult{
		Projects: paginate(matched, filter.Limit, filter.Offset),
		Total:    total,
	}, nil
}

func (ps *projectStore) Save(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	ps.s.mu.Lock()
	defer ps.s.mu.Unlock()

	rec := project.Record()

	if rec.ID == 0 {
		rec.ID = ps.s.nextProjectID
		ps.s.nextProjectID++
	}

	ps.s.projects[rec.ID] = rec

	return domain.ReconstituteProject(rec)
}

func (ps *projectStore) ExistsByID(ctx context.Context, id int) (bool, error) {
	ps.s.mu.RLock()
	defer ps.s.mu.RUnlock()

	_, ok := ps.s.projects[id]
	return ok, nil
}

func (ps *projectStore) ExistsByName(ctx context.Context, name string, excludeId int) (bool, error) {
	ps.s.mu.RLock()
	defer ps.s.mu.RUnlock()

	for id, rec := range ps.s.projects {
		if rec.Name == name && id != excludeId {
			return true, nil
		}
	}

	return false, nil
}

type taskStore struct{ s *Store }

func (ts *taskStore) FindByID(ctx context.Context, id int) (*domain.Task, error) {
	ts.s.mu.RLock()
	defer ts.s.mu.RUnlock()

	rec, ok := ts.s.tasks[id]

	if !ok {
		return nil, nil
	}

	return domain.ReconstituteTask(rec)
}

func (ts *taskStore) FindAll(ctx context.Context, filter port.TaskFilter) (*port.TaskFilterResult, error) {
	ts.s.mu.RLock()
	defer ts.s.mu.RUnlock()

	matched := []*domain.Task{}

	for _, id := range sortedKeys(ts.s.tasks) {
		rec := ts.s.tasks[id]

		if rec.DeletedAt != nil && !filter.IncludeDeleted && !filter.OnlyDeleted {
			continue
		}

		if filter.OnlyDeleted && rec.DeletedAt == nil {
			continue
		}

		if filter.ProjectID != nil && rec.ProjectID != *filter.ProjectID {
			continue
		}

		if filter.Status != nil && rec.Status != *filter.Status {
			continue
		}

		if filter.Priority != nil && rec.Priority != *filter.Priority {
			continue
		}

		if filter.AssignedUserID != nil && !containsID(rec.AssignedUserIDs, *filter.AssignedUserID) {
			continue
		}

		task, err := domain.ReconstituteTask(rec)

		if err != nil {
			return nil, err
		}

		matched = append(matched, task)
	}

	total := len(matched)

	return &port.TaskFilterResult{
		Tasks: paginate(matched, filter.Limit, filter.Offset),
		Total: total,
	}, nil
}

func (ts *taskStore) Save(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	ts.s.mu.Lock()
	defer ts.s.mu.Unlock()

	rec := task.Record()

	if rec.ID == 0 {
		rec.ID = ts.s.nextTaskID
		ts.s.nextTaskID++
	}

	ts.s.tasks[rec.ID] = rec

	// Keep the owning project's task list in step with the row.
	// Soft-deleted tasks drop out of the list, mirroring the SQL view.
	if projectRec, ok := ts.s.projects[rec.ProjectID]; ok {
		if rec.DeletedAt == nil {
			if !containsID(projectRec.TaskIDs, rec.ID) {
				projectRec.TaskIDs = append(projectRec.TaskIDs, rec.ID)
			}
		} else {
			projectRec.TaskIDs = removeID(projectRec.TaskIDs, rec.ID)
		}
		ts.s.projects[rec.ProjectID] = projectRec
	}

	return domain.ReconstituteTask(rec)
}

func (ts *taskStore) Delete(ctx context.Context, id int) error {
	ts.s.mu.Lock()
	defer ts.s.mu.Unlock()

	rec, ok := ts.s.tasks[id]

	if !ok {
		return domain.NewNotFoundError("Task not found")
	}

	delete(ts.s.tasks, id)

	if projectRec, ok := ts.s.projects[rec.ProjectID]; ok {
		projectRec.TaskIDs = removeID(projectRec.TaskIDs, id)
		ts.s.projects[rec.ProjectID] = projectRec
	}

	return nil
}

func (ts *taskStore) ExistsByID(ctx context.Context, id int) (bool, error) {
	ts.s.mu.RLock()
	defer ts.s.mu.RUnlock()

	_, ok := ts.s.tasks[id]
	return ok, nil
}

func (ts *taskStore) ExistsByName(ctx context.Context, name string, projectId int, excludeId int) (bool, error) {
	ts.s.mu.RLock()
	defer ts.s.mu.RUnlock()

	for id, rec := range ts.s.tasks {
		if rec.Name == name && rec.ProjectID == projectId && id != excludeId {
			return true, nil
		}
	}

	return false, nil
}

func removeID(ids []int, target int) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

func containsID(ids []int, target int) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}
