package database

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
)

// DB wraps the sql handle with a squirrel builder configured for
// dollar placeholders, which both sqlite and postgres accept.
type DB struct {
	*sql.DB
	QueryBuilder *squirrel.StatementBuilderType
}

func NewDB(sqlDB *sql.DB) *DB {
	queryBuilder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	return &DB{
		DB:           sqlDB,
		QueryBuilder: &queryBuilder,
	}
}
