package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwdb/course-ratings-api/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestCatalogRepositoryGetProfessor(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewCatalogRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name FROM professors WHERE id = $1 LIMIT 1`)).
		WithArgs("JE1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("JE1", "J. Example"))

	prof, err := repo.GetProfessor(context.Background(), "JE1")
	require.NoError(t, err)
	assert.Equal(t, "J. Example", prof.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepositoryGetProfessorNotFound(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewCatalogRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name FROM professors WHERE id = $1 LIMIT 1`)).
		WithArgs("ZZZ").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetProfessor(context.Background(), "ZZZ")
	assert.Equal(t, sql.ErrNoRows, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepositoryGetModuleInstance(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewCatalogRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, module_code, year, semester FROM module_instances
		WHERE module_code = $1 AND year = $2 AND semester = $3 LIMIT 1`)).
		WithArgs("CSC", 2023, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "module_code", "year", "semester"}).
			AddRow("inst-1", "CSC", 2023, 1))

	instance, err := repo.GetModuleInstance(context.Background(), "CSC", 2023, 1)
	require.NoError(t, err)
	assert.Equal(t, "inst-1", instance.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepositoryListModuleInstancesOrdered(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewCatalogRepository(db)

	mock.ExpectQuery(`ORDER BY mi.module_code ASC, mi.year ASC, mi.semester ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "module_code", "module_name", "year", "semester"}).
			AddRow("inst-1", "CSC", "Computer Science", 2023, 1).
			AddRow("inst-2", "CSC", "Computer Science", 2023, 2))

	rows, err := repo.ListModuleInstances(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Semester)
	assert.Equal(t, 2, rows[1].Semester)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepositoryCreateModuleDuplicate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewCatalogRepository(db)

	mock.ExpectExec("INSERT INTO modules").
		WithArgs("CSC", "Computer Science").
		WillReturnError(newUniqueViolation())

	err := repo.CreateModule(context.Background(), &models.Module{Code: "CSC", Name: "Computer Science"})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepositoryDeleteModule(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewCatalogRepository(db)

	mock.ExpectExec("DELETE FROM modules").
		WithArgs("CSC").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteModule(context.Background(), "CSC"))

	mock.ExpectExec("DELETE FROM modules").
		WithArgs("ZZZ").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.Equal(t, sql.ErrNoRows, repo.DeleteModule(context.Background(), "ZZZ"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
