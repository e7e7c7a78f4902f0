package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwdb/course-ratings-api/internal/models"
)

func TestUserRepositoryFindByUsername(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT id, username, email, password_hash, role, active, last_login, created_at, updated_at`).
		WithArgs("student1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "role", "active", "last_login", "created_at", "updated_at"}).
			AddRow("user-1", "student1", nil, "hash", "STUDENT", true, nil, now, now))

	user, err := repo.FindByUsername(context.Background(), "student1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryExistsByUsername(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT 1 FROM users WHERE username = \$1 LIMIT 1`).
		WithArgs("student1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	exists, err := repo.ExistsByUsername(context.Background(), "student1")
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery(`SELECT 1 FROM users WHERE username = \$1 LIMIT 1`).
		WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)

	exists, err = repo.ExistsByUsername(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCreateDuplicate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(newUniqueViolation())

	err := repo.Create(context.Background(), &models.User{Username: "student1", PasswordHash: "hash", Role: models.RoleStudent, Active: true})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
