package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTask(t *testing.T) {
	t.Run("creates a task with nil assignees defaulted to empty", func(t *testing.T) {
		task, err := NewTask("Ship it", nil, TaskStatusPending, TaskPriorityLow, 1, nil)

		assert.NoError(t, err)
		assert.Equal(t, []int{}, task.AssignedUserIDs())
		assert.True(t, task.IsPending())
		assert.True(t, task.IsLowPriority())
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := NewTask("  ", nil, TaskStatusPending, TaskPriorityLow, 1, nil)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Task name is required")
	})

	t.Run("accepts name of exactly 255 characters", func(t *testing.T) {
		_, err := NewTask(strings.Repeat("a", 255), nil, TaskStatusPending, TaskPriorityLow, 1, nil)

		assert.NoError(t, err)
	})

	t.Run("rejects name over 255 characters", func(t *testing.T) {
		_, err := NewTask(strings.Repeat("a", 256), nil, TaskStatusPending, TaskPriorityLow, 1, nil)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed 255 characters")
	})

	t.Run("rejects blank description when present", func(t *testing.T) {
		blank := "   "

		_, err := NewTask("Ship it", &blank, TaskStatusPending, TaskPriorityLow, 1, nil)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Task description is required")
	})

	t.Run("rejects unknown status and priority", func(t *testing.T) {
		_, err := NewTask("Ship it", nil, TaskStatus("bogus"), TaskPriorityLow, 1, nil)
		assert.Error(t, err)

		_, err = NewTask("Ship it", nil, TaskStatusPending, TaskPriority("urgent"), 1, nil)
		assert.Error(t, err)
	})
}

func TestTask_Lifecycle(t *testing.T) {
	t.Run("pending to in_progress to reviewing to completed to archived", func(t *testing.T) {
		task, _ := NewTask("Ship it", nil, TaskStatusPending, TaskPriorityMedium, 1, nil)

		assert.True(t, task.CanBeStarted())
		assert.NoError(t, task.Start())
		assert.True(t, task.IsInProgress())

		assert.NoError(t, task.MoveToReview())
		assert.True(t, task.IsReviewing())

		assert.True(t, task.CanBeCompleted())
		assert.NoError(t, task.Complete())
		assert.True(t, task.IsCompleted())

		assert.True(t, task.CanBeArchived())
		assert.NoError(t, task.Archive())
		assert.True(t, task.IsArchived())
	})

	t.Run("only pending tasks can be started", func(t *testing.T) {
		task, _ := NewTask("Ship it", nil, TaskStatusCompleted, TaskPriorityLow, 1, nil)

		assert.Error(t, task.Start())
	})

	t.Run("only in-progress tasks move to review", func(t *testing.T) {
		task, _ := NewTask("Ship it", nil, TaskStatusPending, TaskPriorityLow, 1, nil)

		err := task.MoveToReview()

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only in-progress tasks")
	})

	t.Run("only completed tasks can be archived", func(t *testing.T) {
		task, _ := NewTask("Ship it", nil, TaskStatusPending, TaskPriorityLow, 1, nil)

		err := task.Archive()

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only completed tasks")
	})

	t.Run("unarchive returns the task to completed", func(t *testing.T) {
		task, _ := NewTask("Ship it", nil, TaskStatusArchived, TaskPriorityLow, 1, nil)

		assert.NoError(t, task.Unarchive())
		assert.True(t, task.IsCompleted())

		assert.Error(t, task.Unarchive())
	})
}

func TestTask_UpdateStatus(t *testing.T) {
	t.Run("allows arbitrary jumps between active statuses", func(t *testing.T) {
		task, _ := NewTask("Ship it", nil, TaskStatusPending, TaskPriorityLow, 1, nil)

		assert.NoError(t, task.UpdateStatus(TaskStatusCompleted))
		assert.NoError(t, task.UpdateStatus(TaskStatusReviewing))
		assert.NoError(t, task.UpdateStatus(TaskStatusArchived))
	})

	t.Run("cannot leave archived through UpdateStatus", func(t *testing.T) {
		task, _ := NewTask("Ship it", nil, TaskStatusArchived, TaskPriorityLow, 1, nil)

		err := task.UpdateStatus(TaskStatusPending)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Unarchive first")

		// Archived to archived is still accepted.
		assert.NoError(t, task.UpdateStatus(TaskStatusArchived))
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		task, _ := NewTask("Ship it", nil, TaskStatusPending, TaskPriorityLow, 1, nil)

		assert.Error(t, task.UpdateStatus(TaskStatus("bogus")))
	})
}

func TestTask_ArchivedIsFrozen(t *testing.T) {
	task, _ := NewTask("Ship it", nil, TaskStatusArchived, TaskPriorityLow, 1, nil)

	assert.Error(t, task.UpdateName("Rename"))
	assert.Error(t, task.UpdateDescription(nil))
	assert.Error(t, task.UpdatePriority(TaskPriorityHigh))
	assert.Error(t, task.AssignUser(2))
	assert.Error(t, task.UnassignUser(2))
}

func TestTask_Assignment(t *testing.T) {
	t.Run("assigns and unassigns users", func(t *testing.T) {
		task, _ := NewTask("Ship it", nil, TaskStatusPending, TaskPriorityLow, 1, nil)

		assert.NoError(t, task.AssignUser(2))
		assert.True(t, task.IsAssignedToUser(2))
		assert.Equal(t, 1, task.AssignedUserCount())

		assert.NoError(t, task.UnassignUser(2))
		assert.False(t, task.IsAssignedToUser(2))
	})

	t.Run("rejects duplicate assignment", func(t *testing.T) {
		task, _ := NewTask("Ship it", nil, TaskStatusPending, TaskPriorityLow, 1, nil)
		assert.NoError(t, task.AssignUser(2))

		err := task.AssignUser(2)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already assigned")
	})

	t.Run("rejects unassigning a user who is not assigned", func(t *testing.T) {
		task, _ := NewTask("Ship it", nil, TaskStatusPending, TaskPriorityLow, 1, nil)

		err := task.UnassignUser(7)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not assigned")
	})
}

func TestTask_DeleteAndRestore(t *testing.T) {
	task, _ := NewTask("Ship it", nil, TaskStatusPending, TaskPriorityLow, 1, nil)

	assert.NoError(t, task.Delete())
	assert.True(t, task.IsDeleted())
	assert.Error(t, task.Delete())

	t.Run("deleted task rejects mutations", func(t *testing.T) {
		assert.Error(t, task.UpdateName("Rename"))
		assert.Error(t, task.UpdateStatus(TaskStatusCompleted))
		assert.Error(t, task.AssignUser(2))
	})

	assert.NoError(t, task.Restore())
	assert.False(t, task.IsDeleted())
	assert.Error(t, task.Restore())
}

func TestReconstituteTask(t *testing.T) {
	task, _ := NewTask("Ship it", nil, TaskStatusInProgress, TaskPriorityHigh, 3, []int{2, 4})

	rec := task.Record()
	restored, err := ReconstituteTask(rec)

	assert.NoError(t, err)
	assert.Equal(t, task.Status(), restored.Status())
	assert.Equal(t, task.Priority(), restored.Priority())
	assert.Equal(t, task.ProjectID(), restored.ProjectID())
	assert.Equal(t, task.AssignedUserIDs(), restored.AssignedUserIDs())
}
