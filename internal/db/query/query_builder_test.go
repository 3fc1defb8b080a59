package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSelectAll(t *testing.T) {
	sql, args := NewQueryBuilder().From("documents").Build()

	assert.Equal(t, "SELECT * FROM documents", sql)
	assert.Empty(t, args)
}

func TestBuildWithColumnsAndConditions(t *testing.T) {
	sql, args := NewQueryBuilder().
		Select("id", "name").
		From("documents").
		WhereEqual("status", "processed").
		WhereLike("name", "hipaa").
		Build()

	assert.Equal(t, "SELECT id, name FROM documents WHERE status = ? AND name ILIKE ?", sql)
	assert.Equal(t, []interface{}{"processed", "%hipaa%"}, args)
}

func TestBuildWithOrderAndPagination(t *testing.T) {
	sql, args := NewQueryBuilder().
		From("games").
		WhereEqual("status", "active").
		OrderBy("created_at DESC").
		Paginate(3, 10).
		Build()

	assert.Equal(t, "SELECT * FROM games WHERE status = ? ORDER BY created_at DESC LIMIT ? OFFSET ?", sql)
	assert.Equal(t, []interface{}{"active", 10, 20}, args)
}

func TestPaginateClampsPage(t *testing.T) {
	sql, args := NewQueryBuilder().From("games").Paginate(0, 5).Build()

	// Page 0 behaves as page 1: no offset emitted.
	assert.Equal(t, "SELECT * FROM games LIMIT ?", sql)
	assert.Equal(t, []interface{}{5}, args)
}
