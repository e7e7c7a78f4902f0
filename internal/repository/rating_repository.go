package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cwdb/course-ratings-api/internal/models"
)

// RatingRepository persists user ratings of teaching assignments.
// Ratings are insert-only; no update or delete is exposed.
type RatingRepository struct {
	db *sqlx.DB
}

// NewRatingRepository constructs the repository.
func NewRatingRepository(db *sqlx.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Create inserts a new rating, assigning its ID and creation time.
// A duplicate (user, assignment) pair surfaces as ErrDuplicate via the
// unique constraint, so a concurrent loser observes a conflict rather
// than overwriting.
func (r *RatingRepository) Create(ctx context.Context, rating *models.Rating) error {
	if rating.ID == "" {
		rating.ID = uuid.NewString()
	}
	rating.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO ratings (id, user_id, assignment_id, score, created_at)
		VALUES (:id, :user_id, :assignment_id, :score, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, rating); err != nil {
		if mapped := mapUniqueViolation(err); mapped == ErrDuplicate {
			return mapped
		}
		return fmt.Errorf("create rating: %w", err)
	}
	return nil
}

// ExistsForUserAssignment checks whether the user already rated the assignment.
func (r *RatingRepository) ExistsForUserAssignment(ctx context.Context, userID, assignmentID string) (bool, error) {
	const query = `SELECT 1 FROM ratings WHERE user_id = $1 AND assignment_id = $2 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, userID, assignmentID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check rating: %w", err)
	}
	return true, nil
}

// ListForAssignments returns every rating whose assignment is in the set.
func (r *RatingRepository) ListForAssignments(ctx context.Context, assignmentIDs []string) ([]models.Rating, error) {
	if len(assignmentIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT id, user_id, assignment_id, score, created_at FROM ratings WHERE assignment_id IN (?)`, assignmentIDs)
	if err != nil {
		return nil, fmt.Errorf("build ratings query: %w", err)
	}
	query = r.db.Rebind(query)

	var ratings []models.Rating
	if err := r.db.SelectContext(ctx, &ratings, query, args...); err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return ratings, nil
}
