package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// dryRunDB builds a DB that only generates SQL, capturing each query
// statement so tests can assert on the exact clauses emitted.
func dryRunDB(t *testing.T, captured *string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)

	err = db.Callback().Query().After("gorm:query").Register("capture_sql", func(tx *gorm.DB) {
		*captured = tx.Statement.SQL.String()
	})
	require.NoError(t, err)
	return db
}

func TestBookRepository_FindByIDForUpdateLocksRow(t *testing.T) {
	var sql string
	repo := NewBookRepository(dryRunDB(t, &sql))

	_, err := repo.FindByIDForUpdate(context.Background(), 1)
	assert.NoError(t, err)
	assert.Contains(t, sql, "FOR UPDATE")
}

func TestReservationRepository_FindBookForUpdateLocksRow(t *testing.T) {
	var sql string
	repo := NewReservationRepository(dryRunDB(t, &sql))

	_, err := repo.FindBookForUpdate(context.Background(), 1)
	assert.NoError(t, err)
	assert.Contains(t, sql, "FOR UPDATE")
}

func TestBookRepository_FindByIDDoesNotLock(t *testing.T) {
	var sql string
	repo := NewBookRepository(dryRunDB(t, &sql))

	_, err := repo.FindByID(context.Background(), 1)
	assert.NoError(t, err)
	assert.NotContains(t, sql, "FOR UPDATE")
}
