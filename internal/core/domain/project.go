package domain

import (
	"strings"
	"time"
)

const (
	maxProjectNameLength        = 255
	maxProjectDescriptionLength = 5000
	maxProjectMembers           = 20
)

// Project owns the authorization model: every use case asks the project
// whether a user may view, edit or delete before touching anything else.
type Project struct {
	id          int
	name        string
	description *string
	slug        string
	createdById int
	memberIds   []int
	taskIds     []int
	deletedAt   *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

type ProjectRecord struct {
	ID          int
	Name        string
	Description *string
	Slug        string
	CreatedByID int
	MemberIDs   []int
	TaskIDs     []int
	DeletedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProject creates an unsaved project. The creator is the sole member
// and can never be removed from membership.
func NewProject(name, slug string, description *string, createdById int) (*Project, error) {
	now := time.Now()

	p := &Project{
		id:          0,
		name:        name,
		description: description,
		slug:        slug,
		createdById: createdById,
		memberIds:   []int{createdById},
		taskIds:     []int{},
		createdAt:   now,
		updatedAt:   now,
	}

	if err := p.validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// ReconstituteProject rehydrates a project from storage. Missing member
// and task id lists default to empty.
func ReconstituteProject(rec ProjectRecord) (*Project, error) {
	memberIds := rec.MemberIDs
	if memberIds == nil {
		memberIds = []int{}
	}

	taskIds := rec.TaskIDs
	if taskIds == nil {
		taskIds = []int{}
	}

	p := &Project{
		id:          rec.ID,
		name:        rec.Name,
		description: rec.Description,
		slug:        rec.Slug,
		createdById: rec.CreatedByID,
		memberIds:   memberIds,
		taskIds:     taskIds,
		deletedAt:   rec.DeletedAt,
		createdAt:   rec.CreatedAt,
		updatedAt:   rec.UpdatedAt,
	}

	if err := p.validate(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Project) validate() error {
	if p.id < 0 {
		return NewValidationError("ID must be a non-negative integer")
	}

	if err := validateProjectName(p.name); err != nil {
		return err
	}

	if err := validateProjectDescription(p.description); err != nil {
		return err
	}

	if p.createdById < 0 {
		return NewValidationError("Creator ID must be a non-negative integer")
	}

	return nil
}

func validateProjectName(value string) error {
	name := strings.TrimSpace(value)

	if name == "" {
		return NewValidationError("Project name is required")
	}

	if len(name) > maxProjectNameLength {
		return NewValidationError("Project name cannot exceed %d characters", maxProjectNameLength)
	}

	return nil
}

func validateProjectDescription(value *string) error {
	if value == nil {
		return nil
	}

	if len(strings.TrimSpace(*value)) > maxProjectDescriptionLength {
		return NewValidationError("Project description cannot exceed %d characters", maxProjectDescriptionLength)
	}

	return nil
}

func (p *Project) ID() int               { return p.id }
func (p *Project) Name() string          { return p.name }
func (p *Project) Slug() string          { return p.slug }
func (p *Project) Description() *string  { return p.description }
func (p *Project) CreatedByID() int      { return p.createdById }
func (p *Project) CreatedAt() time.Time  { return p.createdAt }
func (p *Project) UpdatedAt() time.Time  { return p.updatedAt }
func (p *Project) DeletedAt() *time.Time { return p.deletedAt }

// MemberIDs returns a copy; membership only changes through AddMember
// and RemoveMember.
func (p *Project) MemberIDs() []int {
	return append([]int{}, p.memberIds...)
}

func (p *Project) TaskIDs() []int {
	return append([]int{}, p.taskIds...)
}

func (p *Project) MemberCount() int {
	return len(p.memberIds)
}

func (p *Project) TaskCount() int {
	return len(p.taskIds)
}

func (p *Project) IsDeleted() bool {
	return p.deletedAt != nil
}

func (p *Project) IsCreator(userId int) bool {
	return p.createdById == userId
}

func (p *Project) HasMember(userId int) bool {
	for _, id := range p.memberIds {
		if id == userId {
			return true
		}
	}
	return false
}

func (p *Project) CanUserEdit(userId int) bool {
	return p.IsCreator(userId)
}

func (p *Project) CanUserDelete(userId int) bool {
	return p.IsCreator(userId)
}

func (p *Project) CanUserView(userId int) bool {
	return p.IsCreator(userId) || p.HasMember(userId)
}

func (p *Project) CanAddMember() bool {
	return len(p.memberIds) < maxProjectMembers
}

func (p *Project) AddMember(userId int) error {
	if p.IsDeleted() {
		return NewValidationError("Cannot update deleted project")
	}

	if p.HasMember(userId) {
		return NewValidationError("User is already a member")
	}

	if !p.CanAddMember() {
		return NewValidationError("Project has reached maximum member limit")
	}

	p.memberIds = append(p.memberIds, userId)
	p.updatedAt = time.Now()

	return nil
}

func (p *Project) RemoveMember(userId int) error {
	if p.IsDeleted() {
		return NewValidationError("Cannot update deleted project")
	}

	if !p.HasMember(userId) {
		return NewValidationError("User is not a member")
	}

	if p.createdById == userId {
		return NewValidationError("Project creator must always be a member")
	}

	p.memberIds = removeID(p.memberIds, userId)
	p.updatedAt = time.Now()

	return nil
}

func (p *Project) AddTask(taskId int) error {
	if p.IsDeleted() {
		return NewValidationError("Cannot update deleted project")
	}

	for _, id := range p.taskIds {
		if id == taskId {
			return NewValidationError("Task already belongs to this project")
		}
	}

	p.taskIds = append(p.taskIds, taskId)
	p.updatedAt = time.Now()

	return nil
}

// RemoveTask drops the task id from the denormalized list. Removing an
// absent id is not an error.
func (p *Project) RemoveTask(taskId int) error {
	if p.IsDeleted() {
		return NewValidationError("Cannot update deleted project")
	}

	p.taskIds = removeID(p.taskIds, taskId)
	p.updatedAt = time.Now()

	return nil
}

func (p *Project) UpdateName(name string) error {
	if p.IsDeleted() {
		return NewValidationError("Cannot update deleted project")
	}

	if err := validateProjectName(name); err != nil {
		return err
	}

	p.name = name
	p.updatedAt = time.Now()

	return nil
}

func (p *Project) UpdateDescription(description *string) error {
	if p.IsDeleted() {
		return NewValidationError("Cannot update deleted project")
	}

	if err := validateProjectDescription(description); err != nil {
		return err
	}

	p.description = description
	p.updatedAt = time.Now()

	return nil
}

func (p *Project) Delete() error {
	if p.IsDeleted() {
		return NewValidationError("Project is already deleted")
	}

	now := time.Now()
	p.deletedAt = &now
	p.updatedAt = now

	return nil
}

func (p *Project) Record() ProjectRecord {
	return ProjectRecord{
		ID:          p.id,
		Name:        p.name,
		Description: p.description,
		Slug:        p.slug,
		CreatedByID: p.createdById,
		MemberIDs:   p.MemberIDs(),
		TaskIDs:     p.TaskIDs(),
		DeletedAt:   p.deletedAt,
		CreatedAt:   p.createdAt,
		UpdatedAt:   p.updatedAt,
	}
}

func removeID(ids []int, target int) []int {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}
