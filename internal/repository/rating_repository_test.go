package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwdb/course-ratings-api/internal/models"
)

func newUniqueViolation() *pq.Error {
	return &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}
}

func TestRatingRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewRatingRepository(db)

	mock.ExpectExec("INSERT INTO ratings").
		WithArgs(sqlmock.AnyArg(), "user-1", "assign-1", 4, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	rating := &models.Rating{UserID: "user-1", AssignmentID: "assign-1", Score: 4}
	require.NoError(t, repo.Create(context.Background(), rating))
	assert.NotEmpty(t, rating.ID)
	assert.False(t, rating.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingRepositoryCreateDuplicate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewRatingRepository(db)

	mock.ExpectExec("INSERT INTO ratings").
		WithArgs(sqlmock.AnyArg(), "user-1", "assign-1", 4, sqlmock.AnyArg()).
		WillReturnError(newUniqueViolation())

	err := repo.Create(context.Background(), &models.Rating{UserID: "user-1", AssignmentID: "assign-1", Score: 4})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingRepositoryExistsForUserAssignment(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewRatingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM ratings WHERE user_id = $1 AND assignment_id = $2 LIMIT 1`)).
		WithArgs("user-1", "assign-1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	exists, err := repo.ExistsForUserAssignment(context.Background(), "user-1", "assign-1")
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM ratings WHERE user_id = $1 AND assignment_id = $2 LIMIT 1`)).
		WithArgs("user-1", "assign-2").
		WillReturnError(sql.ErrNoRows)

	exists, err = repo.ExistsForUserAssignment(context.Background(), "user-1", "assign-2")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingRepositoryListForAssignments(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewRatingRepository(db)

	mock.ExpectQuery(`SELECT id, user_id, assignment_id, score, created_at FROM ratings WHERE assignment_id IN`).
		WithArgs("assign-1", "assign-2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "assignment_id", "score", "created_at"}).
			AddRow("rating-1", "user-1", "assign-1", 5, time.Now()).
			AddRow("rating-2", "user-2", "assign-2", 3, time.Now()))

	ratings, err := repo.ListForAssignments(context.Background(), []string{"assign-1", "assign-2"})
	require.NoError(t, err)
	assert.Len(t, ratings, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRatingRepositoryListForAssignmentsEmptySet(t *testing.T) {
	db, _, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewRatingRepository(db)

	ratings, err := repo.ListForAssignments(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, ratings)
}
