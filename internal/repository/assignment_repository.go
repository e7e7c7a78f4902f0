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

// AssignmentRepository persists professor-to-offering teaching assignments.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs the repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// List returns assignments matching the filter. Supplied filter fields
// combine with AND; omitted fields match everything.
func (r *AssignmentRepository) List(ctx context.Context, filter models.AssignmentFilter) ([]models.TeachingAssignment, error) {
	query := `SELECT id, module_instance_id, professor_id, created_at FROM teaching_assignments WHERE 1=1`
	args := []interface{}{}
	if filter.ModuleInstanceID != nil {
		args = append(args, *filter.ModuleInstanceID)
		query += fmt.Sprintf(" AND module_instance_id = $%d", len(args))
	}
	if filter.ProfessorID != nil {
		args = append(args, *filter.ProfessorID)
		query += fmt.Sprintf(" AND professor_id = $%d", len(args))
	}
	query += " ORDER BY created_at ASC"

	var assignments []models.TeachingAssignment
	if err := r.db.SelectContext(ctx, &assignments, query, args...); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}

// Get resolves the unique assignment for (module instance, professor).
func (r *AssignmentRepository) Get(ctx context.Context, moduleInstanceID, professorID string) (*models.TeachingAssignment, error) {
	const query = `SELECT id, module_instance_id, professor_id, created_at FROM teaching_assignments
		WHERE module_instance_id = $1 AND professor_id = $2 LIMIT 1`
	var assignment models.TeachingAssignment
	if err := r.db.GetContext(ctx, &assignment, query, moduleInstanceID, professorID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	return &assignment, nil
}

// ListDetailsByInstance returns assignments for one offering joined with
// professor names, ordered by professor code.
func (r *AssignmentRepository) ListDetailsByInstance(ctx context.Context, moduleInstanceID string) ([]models.AssignmentDetail, error) {
	const query = `
SELECT ta.id, ta.module_instance_id, ta.professor_id, p.name AS professor_name
FROM teaching_assignments ta
JOIN professors p ON p.id = ta.professor_id
WHERE ta.module_instance_id = $1
ORDER BY ta.professor_id ASC`
	var details []models.AssignmentDetail
	if err := r.db.SelectContext(ctx, &details, query, moduleInstanceID); err != nil {
		return nil, fmt.Errorf("list assignment details: %w", err)
	}
	return details, nil
}

// ListByProfessorAndModule returns assignments linking the professor to any
// instance of the module.
func (r *AssignmentRepository) ListByProfessorAndModule(ctx context.Context, professorID, moduleCode string) ([]models.TeachingAssignment, error) {
	const query = `
SELECT ta.id, ta.module_instance_id, ta.professor_id, ta.created_at
FROM teaching_assignments ta
JOIN module_instances mi ON mi.id = ta.module_instance_id
WHERE ta.professor_id = $1 AND mi.module_code = $2
ORDER BY ta.created_at ASC`
	var assignments []models.TeachingAssignment
	if err := r.db.SelectContext(ctx, &assignments, query, professorID, moduleCode); err != nil {
		return nil, fmt.Errorf("list assignments by professor and module: %w", err)
	}
	return assignments, nil
}

// Create inserts a new assignment. A duplicate (module instance, professor)
// pair surfaces as ErrDuplicate via the unique constraint.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.TeachingAssignment) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO teaching_assignments (id, module_instance_id, professor_id, created_at)
		VALUES (:id, :module_instance_id, :professor_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, assignment); err != nil {
		if mapped := mapUniqueViolation(err); mapped == ErrDuplicate {
			return mapped
		}
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}
