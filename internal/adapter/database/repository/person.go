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

type personRow struct {
	ID        int        `db:"id"`
	FirstName string     `db:"first_name"`
	LastName  string     `db:"last_name"`
	DeletedAt *time.Time `db:"deleted_at"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
}

func (r personRow) toDomain() (*domain.Person, error) {
	return domain.ReconstitutePerson(domain.PersonRecord{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		DeletedAt: r.DeletedAt,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	})
}

type PersonRepository struct {
	db        *database.DB
	scanner   *database.Scanner
	telemetry port.Telemetry
}

func NewPersonRepository(db *database.DB, telemetry port.Telemetry) port.PersonRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &PersonRepository{
		db:        db,
		scanner:   database.NewScanner(),
		telemetry: telemetry,
	}
}

func (pr *PersonRepository) FindByID(ctx context.Context, id int) (*domain.Person, error) {
	query := pr.db.QueryBuilder.Select("*").
		From("persons").
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

	var row personRow

	if err := pr.scanner.ScanRowToStruct(rows, &row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		slog.Error("Person#FindByID", "scan", err)
		return nil, err
	}

	return row.toDomain()
}

func (pr *PersonRepository) FindAll(ctx context.Context, filter port.PersonFilter) (*port.PersonFilterResult, error) {
	column := sortColumn(filter.SortBy, map[string]string{
		"firstName": "first_name",
		"lastName":  "last_name",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	})

	query := pr.db.QueryBuilder.Select("*").From("persons")
	countQuery := pr.db.QueryBuilder.Select("COUNT(*)").From("persons")

	query, countQuery = applyPersonFilter(query, countQuery, filter)

	query = query.OrderBy(orderClause(column, filter.SortOrder))

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := pr.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var dbRows []personRow

	if err := pr.scanner.ScanRowsToSlice(rows, &dbRows); err != nil {
		return nil, err
	}

	persons := make([]*domain.Person, 0, len(dbRows))

	for _, row := range dbRows {
		person, err := row.toDomain()

		if err != nil {
			return nil, err
		}

		persons = append(persons, person)
	}

	total, err := countRows(ctx, pr.db, countQuery)

	if err != nil {
		return nil, err
	}

	return &port.PersonFilterResult{
		Persons: persons,
		Total:   total,
	}, nil
}

func applyPersonFilter(query, countQuery sq.SelectBuilder, filter port.PersonFilter) (sq.SelectBuilder, sq.SelectBuilder) {
	if filter.FirstName != "" {
		cond := sq.Like{"first_name": "%" + filter.FirstName + "%"}
		query = query.Where(cond)
		countQuery = countQuery.Where(cond)
	}

	if filter.LastName != "" {
		cond := sq.Like{"last_name": "%" + filter.LastName + "%"}
		query = query.Where(cond)
		countQuery = countQuery.Where(cond)
	}

	if filter.OnlyDeleted {
		query = query.Where("deleted_at IS NOT NULL")
		countQuery = countQuery.Where("deleted_at IS NOT NULL")
	} else if !filter.IncludeDeleted {
		query = query.Where("deleted_at IS NULL")
		countQuery = countQuery.Where("deleted_at IS NULL")
	}

	return query, countQuery
}

func (pr *PersonRepository) Save(ctx context.Context, person *domain.Person) (*domain.Person, error) {
	ctx, span := pr.telemetry.StartRepositorySpan(ctx, "Save", "person", map[string]interface{}{
		"person.id": person.ID(),
	})
	defer span.End()

	rec := person.Record()

	if rec.ID == 0 {
		query := pr.db.QueryBuilder.Insert("persons").
			Columns("first_name", "last_name", "deleted_at", "created_at", "updated_at").
			Values(rec.FirstName, rec.LastName, rec.DeletedAt, rec.CreatedAt, rec.UpdatedAt).
			Suffix("RETURNING id")

		stmt, args, err := query.ToSql()

		if err != nil {
			return nil, err
		}

		var id int

		if err := pr.db.QueryRowContext(ctx, stmt, args...).Scan(&id); err != nil {
			span.RecordError(err)
			slog.Error("Person#Save", "insert", err)
			return nil, err
		}

		return pr.FindByID(ctx, id)
	}

	query := pr.db.QueryBuilder.Update("persons").
		Set("first_name", rec.FirstName).
		Set("last_name", rec.LastName).
		Set("deleted_at", rec.DeletedAt).
		Set("updated_at", rec.UpdatedAt).
		Where(sq.Eq{"id": rec.ID})

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	if _, err := pr.db.ExecContext(ctx, stmt, args...); err != nil {
		span.RecordError(err)
		slog.Error("Person#Save", "update", err)
		return nil, err
	}

	return pr.FindByID(ctx, rec.ID)
}

func (pr *PersonRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	return existsWhere(ctx, pr.db, "persons", sq.Eq{"id": id})
}
