package domain

import (
	"strings"
	"time"
)

const (
	maxTaskNameLength        = 255
	maxTaskDescriptionLength = 5000
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusReviewing  TaskStatus = "reviewing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusArchived   TaskStatus = "archived"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusReviewing, TaskStatusCompleted, TaskStatusArchived:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task carries the status state machine. Archived tasks are frozen:
// every mutator except Unarchive rejects them, and UpdateStatus cannot
// move a task out of archived either. That asymmetry is contractual.
type Task struct {
	id              int
	name            string
	description     *string
	status          TaskStatus
	priority        TaskPriority
	projectId       int
	assignedUserIds []int
	deletedAt       *time.Time
	createdAt       time.Time
	updatedAt       time.Time
}

type TaskRecord struct {
	ID              int
	Name            string
	Description     *string
	Status          TaskStatus
	Priority        TaskPriority
	ProjectID       int
	AssignedUserIDs []int
	DeletedAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewTask creates an unsaved task.
func NewTask(name string, description *string, status TaskStatus, priority TaskPriority, projectId int, assignedUserIds []int) (*Task, error) {
	if assignedUserIds == nil {
		assignedUserIds = []int{}
	}

	now := time.Now()

	t := &Task{
		id:              0,
		name:            name,
		description:     description,
		status:          status,
		priority:        priority,
		projectId:       projectId,
		assignedUserIds: assignedUserIds,
		createdAt:       now,
		updatedAt:       now,
	}

	if err := t.validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// ReconstituteTask rehydrates a task from storage.
func ReconstituteTask(rec TaskRecord) (*Task, error) {
	assigned := rec.AssignedUserIDs
	if assigned == nil {
		assigned = []int{}
	}

	t := &Task{
		id:              rec.ID,
		name:            rec.Name,
		description:     rec.Description,
		status:          rec.Status,
		priority:        rec.Priority,
		projectId:       rec.ProjectID,
		assignedUserIds: assigned,
		deletedAt:       rec.DeletedAt,
		createdAt:       rec.CreatedAt,
		updatedAt:       rec.UpdatedAt,
	}

	if err := t.validate(); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Task) validate() error {
	if t.id < 0 {
		return NewValidationError("ID must be a non-negative integer")
	}

	if err := validateTaskName(t.name); err != nil {
		return err
	}

	if err := validateTaskDescription(t.description); err != nil {
		return err
	}

	if !t.status.IsValid() {
		return NewValidationError("Invalid task status")
	}

	if !t.priority.IsValid() {
		return NewValidationError("Invalid task priority")
	}

	if t.projectId < 0 {
		return NewValidationError("Project ID must be a non-negative integer")
	}

	return nil
}

func validateTaskName(value string) error {
	name := strings.TrimSpace(value)

	if name == "" {
		return NewValidationError("Task name is required")
	}

	if len(name) > maxTaskNameLength {
		return NewValidationError("Task name cannot exceed %d characters", maxTaskNameLength)
	}

	return nil
}

func validateTaskDescription(value *string) error {
	if value == nil {
		return nil
	}

	description := strings.TrimSpace(*value)

	if description == "" {
		return NewValidationError("Task description is required")
	}

	if len(description) > maxTaskDescriptionLength {
		return NewValidationError("Task description cannot exceed %d characters", maxTaskDescriptionLength)
	}

	return nil
}

func (t *Task) ID() int                { return t.id }
func (t *Task) Name() string           { return t.name }
func (t *Task) Description() *string   { return t.description }
func (t *Task) Status() TaskStatus     { return t.status }
func (t *Task) Priority() TaskPriority { return t.priority }
func (t *Task) ProjectID() int         { return t.projectId }
func (t *Task) CreatedAt() time.Time   { return t.createdAt }
func (t *Task) UpdatedAt() time.Time   { return t.updatedAt }
func (t *Task) DeletedAt() *time.Time  { return t.deletedAt }

func (t *Task) AssignedUserIDs() []int {
	return append([]int{}, t.assignedUserIds...)
}

func (t *Task) AssignedUserCount() int {
	return len(t.assignedUserIds)
}

func (t *Task) IsDeleted() bool    { return t.deletedAt != nil }
func (t *Task) IsPending() bool    { return t.status == TaskStatusPending }
func (t *Task) IsInProgress() bool { return t.status == TaskStatusInProgress }
func (t *Task) IsReviewing() bool  { return t.status == TaskStatusReviewing }
func (t *Task) IsCompleted() bool  { return t.status == TaskStatusCompleted }
func (t *Task) IsArchived() bool   { return t.status == TaskStatusArchived }

func (t *Task) IsHighPriority() bool   { return t.priority == TaskPriorityHigh }
func (t *Task) IsMediumPriority() bool { return t.priority == TaskPriorityMedium }
func (t *Task) IsLowPriority() bool    { return t.priority == TaskPriorityLow }

func (t *Task) IsAssignedToUser(userId int) bool {
	for _, id := range t.assignedUserIds {
		if id == userId {
			return true
		}
	}
	return false
}

func (t *Task) CanBeStarted() bool {
	return t.status == TaskStatusPending && !t.IsDeleted()
}

func (t *Task) CanBeCompleted() bool {
	return (t.status == TaskStatusInProgress || t.status == TaskStatusReviewing) && !t.IsDeleted()
}

func (t *Task) CanBeArchived() bool {
	return t.status == TaskStatusCompleted && !t.IsDeleted()
}

// guardMutable rejects mutations on deleted or archived tasks.
func (t *Task) guardMutable() error {
	if t.IsDeleted() {
		return NewValidationError("Cannot update deleted task")
	}

	if t.IsArchived() {
		return NewValidationError("Cannot update archived task")
	}

	return nil
}

func (t *Task) AssignUser(userId int) error {
	if err := t.guardMutable(); err != nil {
		return err
	}

	if t.IsAssignedToUser(userId) {
		return NewValidationError("User is already assigned to this task")
	}

	t.assignedUserIds = append(t.assignedUserIds, userId)
	t.updatedAt = time.Now()

	return nil
}

func (t *Task) UnassignUser(userId int) error {
	if err := t.guardMutable(); err != nil {
		return err
	}

	if !t.IsAssignedToUser(userId) {
		return NewValidationError("User is not assigned to this task")
	}

	t.assignedUserIds = removeID(t.assignedUserIds, userId)
	t.updatedAt = time.Now()

	return nil
}

func (t *Task) UpdateName(name string) error {
	if err := t.guardMutable(); err != nil {
		return err
	}

	if err := validateTaskName(name); err != nil {
		return err
	}

	t.name = name
	t.updatedAt = time.Now()

	return nil
}

func (t *Task) UpdateDescription(description *string) error {
	if err := t.guardMutable(); err != nil {
		return err
	}

	if err := validateTaskDescription(description); err != nil {
		return err
	}

	t.description = description
	t.updatedAt = time.Now()

	return nil
}

// UpdateStatus allows arbitrary jumps between statuses, with one
// exception: an archived task can only be "updated" to archived again.
// Leaving archived requires Unarchive.
func (t *Task) UpdateStatus(status TaskStatus) error {
	if t.IsDeleted() {
		return NewValidationError("Cannot update deleted task")
	}

	if t.IsArchived() && status != TaskStatusArchived {
		return NewValidationError("Cannot change status of archived task. Unarchive first.")
	}

	if !status.IsValid() {
		return NewValidationError("Invalid task status")
	}

	t.status = status
	t.updatedAt = time.Now()

	return nil
}

func (t *Task) UpdatePriority(priority TaskPriority) error {
	if err := t.guardMutable(); err != nil {
		return err
	}

	if !priority.IsValid() {
		return NewValidationError("Invalid task priority")
	}

	t.priority = priority
	t.updatedAt = time.Now()

	return nil
}

func (t *Task) Start() error {
	if !t.CanBeStarted() {
		return NewValidationError("Task cannot be started")
	}

	t.status = TaskStatusInProgress
	t.updatedAt = time.Now()

	return nil
}

func (t *Task) MoveToReview() error {
	if t.status != TaskStatusInProgress {
		return NewValidationError("Only in-progress tasks can be moved to review")
	}

	if t.IsDeleted() {
		return NewValidationError("Cannot update deleted task")
	}

	t.status = TaskStatusReviewing
	t.updatedAt = time.Now()

	return nil
}

func (t *Task) Complete() error {
	if !t.CanBeCompleted() {
		return NewValidationError("Task cannot be completed")
	}

	t.status = TaskStatusCompleted
	t.updatedAt = time.Now()

	return nil
}

func (t *Task) Archive() error {
	if !t.CanBeArchived() {
		return NewValidationError("Only completed tasks can be archived")
	}

	t.status = TaskStatusArchived
	t.updatedAt = time.Now()

	return nil
}

func (t *Task) Unarchive() error {
	if !t.IsArchived() {
		return NewValidationError("Task is not archived")
	}

	if t.IsDeleted() {
		return NewValidationError("Cannot unarchive deleted task")
	}

	t.status = TaskStatusCompleted
	t.updatedAt = time.Now()

	return nil
}

func (t *Task) Delete() error {
	if t.IsDeleted() {
		return NewValidationError("Task is already deleted")
	}

	now := time.Now()
	t.deletedAt = &now
	t.updatedAt = now

	return nil
}

func (t *Task) Restore() error {
	if !t.IsDeleted() {
		return NewValidationError("Task is not deleted")
	}

	t.deletedAt = nil
	t.updatedAt = time.Now()

	return nil
}

func (t *Task) Record() TaskRecord {
	return TaskRecord{
		ID:              t.id,
		Name:            t.name,
		Description:     t.description,
		Status:          t.status,
		Priority:        t.priority,
		ProjectID:       t.projectId,
		AssignedUserIDs: t.AssignedUserIDs(),
		DeletedAt:       t.deletedAt,
		CreatedAt:       t.createdAt,
		UpdatedAt:       t.updatedAt,
	}
}
