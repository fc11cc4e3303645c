package repository

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"projecthub/internal/adapter/database"
	"projecthub/internal/core/port"
)

// sortColumn maps API sort keys onto column names. Unknown keys fall
// back to created_at so user input never reaches the SQL string.
func sortColumn(sortBy string, allowed map[string]string) string {
	if col, ok := allowed[sortBy]; ok {
		return col
	}

	return "created_at"
}

func orderClause(column string, order port.SortOrder) string {
	direction := "DESC"

	if strings.EqualFold(string(order), string(port.SortAsc)) {
		direction = "ASC"
	}

	return column + " " + direction
}

func countRows(ctx context.Context, db *database.DB, query sq.SelectBuilder) (int, error) {
	stmt, args, err := query.ToSql()

	if err != nil {
		return 0, err
	}

	var total int

	if err := db.QueryRowContext(ctx, stmt, args...).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}

func existsWhere(ctx context.Context, db *database.DB, table string, conds ...sq.Sqlizer) (bool, error) {
	query := db.QueryBuilder.Select("COUNT(*)").From(table)

	for _, cond := range conds {
		query = query.Where(cond)
	}

	total, err := countRows(ctx, db, query)

	if err != nil {
		return false, err
	}

	return total > 0, nil
}
