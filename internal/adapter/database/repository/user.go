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

type userRow struct {
	ID                int        `db:"id"`
	Email             string     `db:"email"`
	Username          string     `db:"username"`
	EncryptedPassword string     `db:"encrypted_password"`
	PersonID          int        `db:"person_id"`
	DeletedAt         *time.Time `db:"deleted_at"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         *time.Time `db:"updated_at"`
}

type UserRepository struct {
	db        *database.DB
	persons   port.PersonRepository
	scanner   *database.Scanner
	telemetry port.Telemetry
}

func NewUserRepository(db *database.DB, telemetry port.Telemetry) port.UserRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &UserRepository{
		db:        db,
		persons:   NewPersonRepository(db, telemetry),
		scanner:   database.NewScanner(),
		telemetry: telemetry,
	}
}

// toDomain rehydrates the user together with its person so callers can
// read names without a second round trip.
func (ur *UserRepository) toDomain(ctx context.Context, row userRow) (*domain.User, error) {
	person, err := ur.persons.FindByID(ctx, row.PersonID)

	if err != nil {
		return nil, err
	}

	return domain.ReconstituteUser(domain.UserRecord{
		ID:        row.ID,
		Email:     row.Email,
		Username:  row.Username,
		Password:  row.EncryptedPassword,
		PersonID:  row.PersonID,
		Person:    person,
		DeletedAt: row.DeletedAt,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	})
}

func (ur *UserRepository) findOne(ctx context.Context, cond sq.Sqlizer) (*domain.User, error) {
	query := ur.db.QueryBuilder.Select("*").
		From("users").
		Where(cond).
		Limit(1)

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := ur.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var row userRow

	if err := ur.scanner.ScanRowToStruct(rows, &row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return ur.toDomain(ctx, row)
}

func (ur *UserRepository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	return ur.findOne(ctx, sq.Eq{"id": id})
}

func (ur *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return ur.findOne(ctx, sq.Eq{"email": email})
}

func (ur *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return ur.findOne(ctx, sq.Eq{"username": username})
}

func (ur *UserRepository) FindAll(ctx context.Context, filter port.UserFilter) (*port.UserFilterResult, error) {
	ctx, span := ur.telemetry.StartRepositorySpan(ctx, "FindAll", "user", map[string]interface{}{
		"filter.limit":  filter.Limit,
		"filter.offset": filter.Offset,
	})
	defer span.End()

	column := sortColumn(filter.SortBy, map[string]string{
		"email":     "email",
		"username":  "username",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	})

	query := ur.db.QueryBuilder.Select("*").From("users")
	countQuery := ur.db.QueryBuilder.Select("COUNT(*)").From("users")

	query, countQuery = applyUserFilter(query, countQuery, filter)

	query = query.OrderBy(orderClause(column, filter.SortOrder))

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	ur.telemetry.RecordRepositoryQuery(ctx, "FindAll", "user", stmt, args)

	rows, err := ur.db.QueryContext(ctx, stmt, args...)

	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	defer rows.Close()

	var dbRows []userRow

	if err := ur.scanner.ScanRowsToSlice(rows, &dbRows); err != nil {
		return nil, err
	}

	users := make([]*domain.User, 0, len(dbRows))

	for _, row := range dbRows {
		user, err := ur.toDomain(ctx, row)

		if err != nil {
			return nil, err
		}

		users = append(users, user)
	}

	total, err := countRows(ctx, ur.db, countQuery)

	if err != nil {
		return nil, err
	}

	return &port.UserFilterResult{
		Users: users,
		Total: total,
	}, nil
}

func applyUserFilter(query, countQuery sq.SelectBuilder, filter port.UserFilter) (sq.SelectBuilder, sq.SelectBuilder) {
	if filter.Email != "" {
		cond := sq.Like{"email": "%" + filter.Email + "%"}
		query = query.Where(cond)
		countQuery = countQuery.Where(cond)
	}

	if filter.Username != "" {
		cond := sq.Like{"username": "%" + filter.Username + "%"}
		query = query.Where(cond)
		countQuery = countQuery.Where(cond)
	}

	if filter.PersonID != nil {
		cond := sq.Eq{"person_id": *filter.PersonID}
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

func (ur *UserRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, span := ur.telemetry.StartRepositorySpan(ctx, "Save", "user", map[string]interface{}{
		"user.id": user.ID(),
	})
	defer span.End()

	rec := user.Record()

	if rec.ID == 0 {
		query := ur.db.QueryBuilder.Insert("users").
			Columns("email", "username", "encrypted_password", "person_id", "deleted_at", "created_at", "updated_at").
			Values(rec.Email, rec.Username, rec.Password, rec.PersonID, rec.DeletedAt, rec.CreatedAt, rec.UpdatedAt).
			Suffix("RETURNING id")

		stmt, args, err := query.ToSql()

		if err != nil {
			return nil, err
		}

		var id int

		if err := ur.db.QueryRowContext(ctx, stmt, args...).Scan(&id); err != nil {
			span.RecordError(err)
			slog.Error("User#Save", "insert", err)
			return nil, err
		}

		return ur.FindByID(ctx, id)
	}

	query := ur.db.QueryBuilder.Update("users").
		Set("email", rec.Email).
		Set("username", rec.Username).
		Set("encrypted_password", rec.Password).
		Set("deleted_at", rec.DeletedAt).
		Set("updated_at", rec.UpdatedAt).
		Where(sq.Eq{"id": rec.ID})

	stmt, args, err := query.ToSql()

	if err != nil {
		return nil, err
	}

	if _, err := ur.db.ExecContext(ctx, stmt, args...); err != nil {
		span.RecordError(err)
		slog.Error("User#Save", "update", err)
		return nil, err
	}

	return ur.FindByID(ctx, rec.ID)
}

func (ur *UserRepository) Delete(ctx context.Context, id int) error {
	query := ur.db.QueryBuilder.Delete("users").Where(sq.Eq{"id": id})

	stmt, args, err := query.ToSql()

	if err != nil {
		return err
	}

	result, err := ur.db.ExecContext(ctx, stmt, args...)

	if err != nil {
		slog.Error("User#Delete", "exec", err)
		return err
	}

	affected, err := result.RowsAffected()

	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.NewNotFoundError("User not found")
	}

	return nil
}

func (ur *UserRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	return existsWhere(ctx, ur.db, "users", sq.Eq{"id": id})
}

func (ur *UserRepository) ExistsByEmail(ctx context.Context, email string, excludeId int) (bool, error) {
	conds := []sq.Sqlizer{sq.Eq{"email": email}}

	if excludeId > 0 {
		conds = append(conds, sq.NotEq{"id": excludeId})
	}

	return existsWhere(ctx, ur.db, "users", conds...)
}

func (ur *UserRepository) ExistsByUsername(ctx context.Context, username string, excludeId int) (bool, error) {
	conds := []sq.Sqlizer{sq.Eq{"username": username}}

	if excludeId > 0 {
		conds = append(conds, sq.NotEq{"id": excludeId})
	}

	return existsWhere(ctx, ur.db, "users", conds...)
}
