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

type projectRow struct {
	ID          int        `db:"id"`
	Name        string     `db:"name"`
	Slug        string     `db:"slug"`
	Description *string    `db:"description"`
	CreatedByID int        `db:"created_by_id"`
	DeletedAt   *time.Time `db:"deleted_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// ProjectRepository persists the project row and its membership set.
// Task ids are derived from the tasks table, so Save never writes them.
type ProjectRepository struct {
	db        *database.DB
	scanner   *database.Scanner
	telemetry port.Telemetry
}

func NewProjectRepository(db *database.DB, telemetry port.Telemetry) port.ProjectRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &ProjectRepository{
		db:        db,
		scanner:   database.NewScanner(),
		telemetry: telemetry,
	}
}

func (pr *ProjectRepository) toDomain(ctx context.Context, row projectRow) (*domain.Project, error) {
	memberIds, err := pr.memberIDs(ctx, row.ID)

	if err != nil {
		return nil, err
	}

	taskIds, err := pr.taskIDs(ctx, row.ID)

	if err != nil {
		return nil, err
	}

	return domain.ReconstituteProject(domain.ProjectRecord{
		ID:          row.ID,
		Name:        row.Name,
		Slug:        row.Slug,
		Description: row.Description,
		CreatedByID: row.CreatedByID,
		MemberIDs:   memberIds,
		TaskIDs:     taskIds,
		DeletedAt:   row.DeletedAt,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	})
}

func (pr *ProjectRepository) memberIDs(ctx context.Context, projectId int) ([]int, error) {
	query := pr.db.QueryBuilder.Select("user_id").
		From("project_members").
		Where(sq.Eq{"project_id": projectId}).
		OrderBy("position ASC")

	return pr.intColumn(ctx, query)
}

func (pr *ProjectRepository) taskIDs(ctx context.Context, projectId int) ([]int, error) {
	query := pr.db.QueryBuilder.Select("id").
		From("tasks").
		Where(sq.Eq{"project_id": projectId}).
		Where("deleted_at IS NULL").
		OrderBy("id ASC")

	return pr.intColumn(ctx, query)
}

func (pr *ProjectRepository) intColumn(ctx context.Context, query sq.SelectBuilder) ([]int, error) {
	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := pr.db.QueryContext(ctx, stmt, args...)

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

func (pr *ProjectRepository) FindByID(ctx context.Context, id int) (*domain.Project, error) {
	query := pr.db.QueryBuilder.Select("*").
		From("projects").
		Where(sq.Eq{"id": id}).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := pr.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var row projectRow

	if err := pr.scanner.ScanRowToStruct(rows, &row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return pr.toDomain(ctx, row)
}

func (pr *ProjectRepository) FindAll(ctx context.Context, filter port.ProjectFilter) (*port.ProjectFilterResult, error) {
	ctx, span := pr.telemetry.StartRepositorySpan(ctx, "FindAll", "project", map[string]interface{}{
		"filter.limit":  filter.Limit,
		"filter.offset": filter.Offset,
	})
	defer span.End()

	column := sortColumn(filter.SortBy, map[string]string{
		"name":      "projects.name",
		"createdAt": "projects.created_at",
		"updatedAt": "projects.updated_at",
	})
	if column == "created_at" {
		column = "projects.created_at"
	}

	query := pr.db.QueryBuilder.Select("projects.*").From("projects")
	countQuery := pr.db.QueryBuilder.Select("COUNT(DISTINCT projects.id)").From("projects")

	if filter.MemberID != nil {
		join := "project_members ON project_members.project_id = projects.id"
		cond := sq.Eq{"project_members.user_id": *filter.MemberID}

		query = query.Join(join).Where(cond).GroupBy("projects.id")
		countQuery = countQuery.Join(join).Where(cond)
	}

	if filter.CreatorID != nil {
		cond := sq.Eq{"projects.created_by_id": *filter.CreatorID}
		query = query.Where(cond)
		countQuery = countQuery.Where(cond)
	}

	if !filter.IncludeDeleted {
		query = query.Where("projects.deleted_at IS NULL")
		countQuery = countQuery.Where("projects.deleted_at IS NULL")
	}

	query = query.OrderBy(orderClause(column, filter.SortOrder))

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	pr.telemetry.RecordRepositoryQuery(ctx, "FindAll", "project", stmt, args)

	rows, err := pr.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	defer rows.Close()

	var dbRows []projectRow

	if err := pr.scanner.ScanRowsToSlice(rows, &dbRows); err != nil {
		return nil, err
	}

	projects := make([]*domain.Project, 0, len(dbRows))

	for _, row := range dbRows {
		project, err := pr.toDomain(ctx, row)

		if err != nil {
			return nil, err
		}

		projects = append(projects, project)
	}

	total, err := countRows(ctx, pr.db, countQuery)

	if err != nil {
		return nil, err
	}

	return &port.ProjectFilterResult{
		Projects: projects,
		Total:    total,
	}, nil
}

func (pr *ProjectRepository) Save(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	ctx, span := pr.telemetry.StartRepositorySpan(ctx, "Save", "project", map[string]interface{}{
		"project.id": project.ID(),
	})
	defer span.End()

	rec := project.Record()

	tx, err := pr.db.BeginTx(ctx, nil)

	if err != nil {
		slog.Error("Project#Save", "begin_tx", err)
		return nil, err
	}

	defer tx.Rollback()

	id := rec.ID

	if id == 0 {
		query := pr.db.QueryBuilder.Insert("projects").
			Columns("name", "slug", "description", "created_by_id", "deleted_at", "created_at", "updated_at").
			Values(rec.Name, rec.Slug, rec.Description, rec.CreatedByID, rec.DeletedAt, rec.CreatedAt, rec.UpdatedAt).
			Suffix("RETURNING id")

		stmt, args, err := query.ToSql()

		if err != nil {
			return nil, err
		}

		if err := tx.QueryRowContext(ctx, stmt, args...).Scan(&id); err != nil {
			span.RecordError(err)
			slog.Error("Project#Save", "insert", err)
			return nil, err
		}
	} else {
		query := pr.db.QueryBuilder.Update("projects").
			Set("name", rec.Name).
			Set("description", rec.Description).
			Set("deleted_at", rec.DeletedAt).
			Set("updated_at", rec.UpdatedAt).
			Where(sq.Eq{"id": id})

		stmt, args, err := query.ToSql()

		if err != nil {
			return nil, err
		}

		if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
			span.RecordError(err)
			slog.Error("Project#Save", "update", err)
			return nil, err
		}
	}

	if err := pr.syncMembers(ctx, tx, id, rec.MemberIDs); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return pr.FindByID(ctx, id)
}

// syncMembers replaces the membership rows with the entity's list. The
// list is small (capped at twenty) so a full rewrite is fine. Each row
// carries the list index so the order survives a reload.
func (pr *ProjectRepository) syncMembers(ctx context.Context, tx *sql.Tx, projectId int, memberIds []int) error {
	deleteQuery := pr.db.QueryBuilder.Delete("project_members").
		Where(sq.Eq{"project_id": projectId})

	stmt, args, err := deleteQuery.ToSql()

	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
		return err
	}

	if len(memberIds) == 0 {
		return nil
	}

	insertQuery := pr.db.QueryBuilder.Insert("project_members").
		Columns("project_id", "user_id", "position")

	for position, userId := range memberIds {
		insertQuery = insertQuery.Values(projectId, userId, position)
	}

	stmt, args, err = insertQuery.ToSql()

	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, stmt, args...)

	return err
}

func (pr *ProjectRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	return existsWhere(ctx, pr.db, "projects", sq.Eq{"id": id})
}

func (pr *ProjectRepository) ExistsByName(ctx context.Context, name string, excludeId int) (bool, error) {
	conds := []sq.Sqlizer{sq.Eq{"name": name}}

	if excludeId > 0 {
		conds = append(conds, sq.NotEq{"id": excludeId})
	}

	return existsWhere(ctx, pr.db, "projects", conds...)
}
