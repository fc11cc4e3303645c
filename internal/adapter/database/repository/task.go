package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"

	"projecthub/internal/adapter/database"
	"projecthub/internal/core/domain"
	"projecthub/internal/core/port"
	tel "projecthub/internal/core/telemetry"
)

type taskRow struct {
	ID          int        `db:"id"`
	Name        string     `db:"name"`
	Description *string    `db:"description"`
	Status      string     `db:"status"`
	Priority    string     `db:"priority"`
	ProjectID   int        `db:"project_id"`
	DeletedAt   *time.Time `db:"deleted_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

type TaskRepository struct {
	db        *database.DB
	scanner   *database.Scanner
	telemetry port.Telemetry
}

func NewTaskRepository(db *database.DB, telemetry port.Telemetry) port.TaskRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &TaskRepository{
		db:        db,
		scanner:   database.NewScanner(),
		telemetry: telemetry,
	}
}

func (tr *TaskRepository) toDomain(ctx context.Context, row taskRow) (*domain.Task, error) {
	assignedIds, err := tr.assignedUserIDs(ctx, row.ID)

	if err != nil {
		return nil, err
	}

	return domain.ReconstituteTask(domain.TaskRecord{
		ID:              row.ID,
		Name:            row.Name,
		Description:     row.Description,
		Status:          domain.TaskStatus(row.Status),
		Priority:        domain.TaskPriority(row.Priority),
		ProjectID:       row.ProjectID,
		AssignedUserIDs: assignedIds,
		DeletedAt:       row.DeletedAt,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	})
}

func (tr *TaskRepository) assignedUserIDs(ctx context.Context, taskId int) ([]int, error) {
	query := tr.db.QueryBuilder.Select("user_id").
		From("task_assignments").
		Where(sq.Eq{"task_id": taskId}).
		OrderBy("created_at ASC, user_id ASC")

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := tr.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	ids := []int{}

	for rows.Next() {
		var id int

		if err := rows.Scan(&id); err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (tr *TaskRepository) FindByID(ctx context.Context, id int) (*domain.Task, error) {
	query := tr.db.QueryBuilder.Select("*").
		From("tasks").
		Where(sq.Eq{"id": id}).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := tr.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var row taskRow

	if err := tr.scanner.ScanRowToStruct(rows, &row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return tr.toDomain(ctx, row)
}

func (tr *TaskRepository) FindAll(ctx context.Context, filter port.TaskFilter) (*port.TaskFilterResult, error) {
	ctx, span := tr.telemetry.StartRepositorySpan(ctx, "FindAll", "task", map[string]interface{}{
		"filter.limit":  filter.Limit,
		"filter.offset": filter.Offset,
	})
	defer span.End()

	column := sortColumn(filter.SortBy, map[string]string{
		"name":      "tasks.name",
		"status":    "tasks.status",
		"priority":  "tasks.priority",
		"createdAt": "tasks.created_at",
		"updatedAt": "tasks.updated_at",
	})
	if column == "created_at" {
		column = "tasks.created_at"
	}

	query := tr.db.QueryBuilder.Select("tasks.*").From("tasks")
	countQuery := tr.db.QueryBuilder.Select("COUNT(DISTINCT tasks.id)").From("tasks")

	if filter.AssignedUserID != nil {
		join := "task_assignments ON task_assignments.task_id = tasks.id"
		cond := sq.Eq{"task_assignments.user_id": *filter.AssignedUserID}

		query = query.Join(join).Where(cond).GroupBy("tasks.id")
		countQuery = countQuery.Join(join).Where(cond)
	}

	if filter.ProjectID != nil {
		cond := sq.Eq{"tasks.project_id": *filter.ProjectID}
		query = query.Where(cond)
		countQuery = countQuery.Where(cond)
	}

	if filter.Status != nil {
		cond := sq.Eq{"tasks.status": string(*filter.Status)}
		query = query.Where(cond)
		countQuery = countQuery.Where(cond)
	}

	if filter.Priority != nil {
		cond := sq.Eq{"tasks.priority": string(*filter.Priority)}
		query = query.Where(cond)
		countQuery = countQuery.Where(cond)
	}

	if filter.OnlyDeleted {
		query = query.Where("tasks.deleted_at IS NOT NULL")
		countQuery = countQuery.Where("tasks.deleted_at IS NOT NULL")
	} else if !filter.IncludeDeleted {
		query = query.Where("tasks.deleted_at IS NULL")
		countQuery = countQuery.Where("tasks.deleted_at IS NULL")
	}

	query = query.OrderBy(orderClause(column, filter.SortOrder))

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	tr.telemetry.RecordRepositoryQuery(ctx, "FindAll", "task", stmt, args)

	rows, err := tr.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	defer rows.Close()

	var dbRows []taskRow

	if err := tr.scanner.ScanRowsToSlice(rows, &dbRows); err != nil {
		return nil, err
	}

	tasks := make([]*domain.Task, 0, len(dbRows))

	for _, row := range dbRows {
		task, err := tr.toDomain(ctx, row)

		if err != nil {
			return nil, err
		}

		tasks = append(tasks, task)
	}

	total, err := countRows(ctx, tr.db, countQuery)

	if err != nil {
		return nil, err
	}

	return &port.TaskFilterResult{
		Tasks: tasks,
		Total: total,
	}, nil
}

func (tr *TaskRepository) Save(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	ctx, span := tr.telemetry.StartRepositorySpan(ctx, "Save", "task", map[string]interface{}{
		"task.id": task.ID(),
	})
	defer span.End()

	rec := task.Record()

	tx, err := tr.db.BeginTx(ctx, nil)

	if err != nil {
		slog.Error("Task#Save", "begin_tx", err)
		return nil, err
	}

	defer tx.Rollback()

	id := rec.ID

	if id == 0 {
		query := tr.db.QueryBuilder.Insert("tasks").
			Columns("name", "description", "status", "priority", "project_id", "deleted_at", "created_at", "updated_at").
			Values(rec.Name, rec.Description, string(rec.Status), string(rec.Priority), rec.ProjectID, rec.DeletedAt, rec.CreatedAt, rec.UpdatedAt).
			Suffix("RETURNING id")

		stmt, args, err := query.ToSql()

		if err != nil {
			return nil, err
		}

		if err := tx.QueryRowContext(ctx, stmt, args...).Scan(&id); err != nil {
			span.RecordError(err)
			slog.Error("Task#Save", "insert", err)
			return nil, err
		}
	} else {
		query := tr.db.QueryBuilder.Update("tasks").
			Set("name", rec.Name).
			Set("description", rec.Description).
			Set("status", string(rec.Status)).
			Set("priority", string(rec.Priority)).
			Set("deleted_at", rec.DeletedAt).
			Set("updated_at", rec.UpdatedAt).
			Where(sq.Eq{"id": id})

		stmt, args, err := query.ToSql()

		if err != nil {
			return nil, err
		}

		if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
			span.RecordError(err)
			slog.Error("Task#Save", "update", err)
			return nil, err
		}
	}

	if err := tr.syncAssignments(ctx, tx, id, rec.AssignedUserIDs); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return tr.FindByID(ctx, id)
}

func (tr *TaskRepository) syncAssignments(ctx context.Context, tx *sql.Tx, taskId int, userIds []int) error {
	deleteQuery := tr.db.QueryBuilder.Delete("task_assignments").
		Where(sq.Eq{"task_id": taskId})

	stmt, args, err := deleteQuery.ToSql()

	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
		return err
	}

	if len(userIds) == 0 {
		return nil
	}

	insertQuery := tr.db.QueryBuilder.Insert("task_assignments").
		Columns("task_id", "user_id")

	for _, userId := range userIds {
		insertQuery = insertQuery.Values(taskId, userId)
	}

	stmt, args, err = insertQuery.ToSql()

	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, stmt, args...)

	return err
}

func (tr *TaskRepository) Delete(ctx context.Context, id int) error {
	query := tr.db.QueryBuilder.Delete("tasks").Where(sq.Eq{"id": id})

	stmt, args, err := query.ToSql()

	if err != nil {
		return err
	}

	result, err := tr.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("Task#Delete", "exec", err)
		return err
	}

	affected, err := result.RowsAffected()

	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.NewNotFoundError("Task not found")
	}

	return nil
}

func (tr *TaskRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	return existsWhere(ctx, tr.db, "tasks", sq.Eq{"id": id})
}

func (tr *TaskRepository) ExistsByName(ctx context.Context, name string, projectId int, excludeId int) (bool, error) {
	conds := []sq.Sqlizer{
		sq.Eq{"name": name},
		sq.Eq{"project_id": projectId},
	}

	if excludeId > 0 {
		conds = append(conds, sq.NotEq{"id": excludeId})
	}

	return existsWhere(ctx, tr.db, "tasks", conds...)
}
