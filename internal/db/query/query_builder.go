package query

import (
	"fmt"
	"strings"
)

// QueryBuilder assembles parameterized SELECT statements for the filtered
// listing endpoints. All values are bound as placeholders, never
// interpolated into the SQL text.
type QueryBuilder struct {
	table      string
	columns    []string
	conditions []string
	values     []interface{}
	orderBy    string
	limit      int
	offset     int
}

func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{limit: -1, offset: -1}
}

func (qb *QueryBuilder) Select(columns ...string) *QueryBuilder {
	qb.columns = append(qb.columns, columns...)
	return qb
}

func (qb *QueryBuilder) From(table string) *QueryBuilder {
	qb.table = table
	return qb
}

func (qb *QueryBuilder) Where(condition string, args ...interface{}) *QueryBuilder {
	qb.conditions = append(qb.conditions, condition)
	qb.values = append(qb.values, args...)
	return qb
}

// WhereEqual adds an equality condition on column.
func (qb *QueryBuilder) WhereEqual(column string, value interface{}) *QueryBuilder {
	return qb.Where(fmt.Sprintf("%s = ?", column), value)
}

// WhereLike adds a case-insensitive substring match on column.
func (qb *QueryBuilder) WhereLike(column, pattern string) *QueryBuilder {
	return qb.Where(fmt.Sprintf("%s ILIKE ?", column), "%"+pattern+"%")
}

func (qb *QueryBuilder) OrderBy(clause string) *QueryBuilder {
	qb.orderBy = clause
	return qb
}

func (qb *QueryBuilder) Limit(n int) *QueryBuilder {
	qb.limit = n
	return qb
}

func (qb *QueryBuilder) Offset(n int) *QueryBuilder {
	qb.offset = n
	return qb
}

// Paginate applies limit/offset for a 1-based page number.
func (qb *QueryBuilder) Paginate(page, pageSize int) *QueryBuilder {
	if page < 1 {
		page = 1
	}
	return qb.Limit(pageSize).Offset((page - 1) * pageSize)
}

func (qb *QueryBuilder) Build() (string, []interface{}) {
	var sb strings.Builder

	if len(qb.columns) > 0 {
		sb.WriteString(fmt.Sprintf("SELECT %s FROM %s", strings.Join(qb.columns, ", "), qb.table))
	} else {
		sb.WriteString(fmt.Sprintf("SELECT * FROM %s", qb.table))
	}

	if len(qb.conditions) > 0 {
		sb.WriteString(" WHERE " + strings.Join(qb.conditions, " AND "))
	}
	if qb.orderBy != "" {
		sb.WriteString(" ORDER BY " + qb.orderBy)
	}

	values := qb.values
	if qb.limit >= 0 {
		sb.WriteString(" LIMIT ?")
		values = append(values, qb.limit)
	}
	if qb.offset > 0 {
		sb.WriteString(" OFFSET ?")
		values = append(values, qb.offset)
	}

	return sb.String(), values
}
