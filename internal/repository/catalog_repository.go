package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/cwdb/course-ratings-api/internal/models"
)

// CatalogRepository provides read access to professors, modules and module
// instances, plus the administrative writes that maintain them.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository constructs the repository.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// GetProfessor returns a professor by its short code.
func (r *CatalogRepository) GetProfessor(ctx context.Context, id string) (*models.Professor, error) {
	const query = `SELECT id, name FROM professors WHERE id = $1 LIMIT 1`
	var prof models.Professor
	if err := r.db.GetContext(ctx, &prof, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get professor: %w", err)
	}
	return &prof, nil
}

// ListProfessors returns all professors in store order.
func (r *CatalogRepository) ListProfessors(ctx context.Context) ([]models.Professor, error) {
	const query = `SELECT id, name FROM professors ORDER BY id ASC`
	var profs []models.Professor
	if err := r.db.SelectContext(ctx, &profs, query); err != nil {
		return nil, fmt.Errorf("list professors: %w", err)
	}
	return profs, nil
}

// GetModule returns a module by its code.
func (r *CatalogRepository) GetModule(ctx context.Context, code string) (*models.Module, error) {
	const query = `SELECT code, name FROM modules WHERE code = $1 LIMIT 1`
	var module models.Module
	if err := r.db.GetContext(ctx, &module, query, code); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get module: %w", err)
	}
	return &module, nil
}

// GetModuleInstance resolves the unique offering for (module, year, semester).
func (r *CatalogRepository) GetModuleInstance(ctx context.Context, moduleCode string, year, semester int) (*models.ModuleInstance, error) {
	const query = `SELECT id, module_code, year, semester FROM module_instances
		WHERE module_code = $1 AND year = $2 AND semester = $3 LIMIT 1`
	var instance models.ModuleInstance
	if err := r.db.GetContext(ctx, &instance, query, moduleCode, year, semester); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get module instance: %w", err)
	}
	return &instance, nil
}

// ListModuleInstances returns every offering joined with its module name,
// ordered by (module_code, year, semester).
func (r *CatalogRepository) ListModuleInstances(ctx context.Context) ([]models.ModuleInstanceRow, error) {
	const query = `
SELECT mi.id, mi.module_code, m.name AS module_name, mi.year, mi.semester
FROM module_instances mi
JOIN modules m ON m.code = mi.module_code
ORDER BY mi.module_code ASC, mi.year ASC, mi.semester ASC`
	var rows []models.ModuleInstanceRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list module instances: %w", err)
	}
	return rows, nil
}

// CreateProfessor inserts a new professor record.
func (r *CatalogRepository) CreateProfessor(ctx context.Context, prof *models.Professor) error {
	const query = `INSERT INTO professors (id, name) VALUES (:id, :name)`
	if _, err := r.db.NamedExecContext(ctx, query, prof); err != nil {
		if mapped := mapUniqueViolation(err); mapped == ErrDuplicate {
			return mapped
		}
		return fmt.Errorf("create professor: %w", err)
	}
	return nil
}

// CreateModule inserts a new module record.
func (r *CatalogRepository) CreateModule(ctx context.Context, module *models.Module) error {
	const query = `INSERT INTO modules (code, name) VALUES (:code, :name)`
	if _, err := r.db.NamedExecContext(ctx, query, module); err != nil {
		if mapped := mapUniqueViolation(err); mapped == ErrDuplicate {
			return mapped
		}
		return fmt.Errorf("create module: %w", err)
	}
	return nil
}

// CreateModuleInstance inserts a new offering.
func (r *CatalogRepository) CreateModuleInstance(ctx context.Context, instance *models.ModuleInstance) error {
	if instance.ID == "" {
		instance.ID = uuid.NewString()
	}
	const query = `INSERT INTO module_instances (id, module_code, year, semester)
		VALUES (:id, :module_code, :year, :semester)`
	if _, err := r.db.NamedExecContext(ctx, query, instance); err != nil {
		if mapped := mapUniqueViolation(err); mapped == ErrDuplicate {
			return mapped
		}
		return fmt.Errorf("create module instance: %w", err)
	}
	return nil
}

// DeleteModule removes a module. Instances, assignments and ratings owned by
// it are removed by the ON DELETE CASCADE chain declared in the schema.
func (r *CatalogRepository) DeleteModule(ctx context.Context, code string) error {
	const query = `DELETE FROM modules WHERE code = $1`
	result, err := r.db.ExecContext(ctx, query, code)
	if err != nil {
		return fmt.Errorf("delete module: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check deleted module rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
