package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/cwdb/course-ratings-api/internal/models"
	"github.com/cwdb/course-ratings-api/internal/repository"
	appErrors "github.com/cwdb/course-ratings-api/pkg/errors"
)

type catalogAdminRepo interface {
	catalogReader
	CreateProfessor(ctx context.Context, prof *models.Professor) error
	CreateModule(ctx context.Context, module *models.Module) error
	CreateModuleInstance(ctx context.Context, instance *models.ModuleInstance) error
	DeleteModule(ctx context.Context, code string) error
}

type assignmentWriter interface {
	Get(ctx context.Context, moduleInstanceID, professorID string) (*models.TeachingAssignment, error)
	Create(ctx context.Context, assignment *models.TeachingAssignment) error
}

// CreateProfessorRequest is the admin payload for a new professor.
type CreateProfessorRequest struct {
	ID   string `json:"id" validate:"required,max=3"`
	Name string `json:"name" validate:"required,max=50"`
}

// CreateModuleRequest is the admin payload for a new module.
type CreateModuleRequest struct {
	Code string `json:"code" validate:"required,max=3"`
	Name string `json:"name" validate:"required,max=50"`
}

// CreateModuleInstanceRequest is the admin payload for a new offering.
type CreateModuleInstanceRequest struct {
	ModuleCode string `json:"module_code" validate:"required,max=3"`
	Year       int    `json:"year" validate:"required,gte=1990,lte=2100"`
	Semester   int    `json:"semester" validate:"required,oneof=1 2"`
}

// CreateAssignmentRequest links a professor to an offering.
type CreateAssignmentRequest struct {
	ProfessorID string `json:"professor_id" validate:"required,max=3"`
	ModuleCode  string `json:"module_code" validate:"required,max=3"`
	Year        int    `json:"year" validate:"required,gte=1990,lte=2100"`
	Semester    int    `json:"semester" validate:"required,oneof=1 2"`
}

// AdminService maintains the reference catalog. All operations here are
// administrative; the rating submission path never mutates catalog data.
type AdminService struct {
	catalog     catalogAdminRepo
	assignments assignmentWriter
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewAdminService creates a service instance.
func NewAdminService(catalog catalogAdminRepo, assignments assignmentWriter, validate *validator.Validate, logger *zap.Logger) *AdminService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{catalog: catalog, assignments: assignments, validator: validate, logger: logger}
}

// CreateProfessor registers a new professor.
func (s *AdminService) CreateProfessor(ctx context.Context, req CreateProfessorRequest) (*models.Professor, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid professor payload")
	}
	prof := &models.Professor{ID: req.ID, Name: req.Name}
	if err := s.catalog.CreateProfessor(ctx, prof); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "professor id already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create professor")
	}
	return prof, nil
}

// CreateModule registers a new module.
func (s *AdminService) CreateModule(ctx context.Context, req CreateModuleRequest) (*models.Module, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid module payload")
	}
	module := &models.Module{Code: req.Code, Name: req.Name}
	if err := s.catalog.CreateModule(ctx, module); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "module code already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create module")
	}
	return module, nil
}

// CreateModuleInstance schedules an offering of an existing module.
func (s *AdminService) CreateModuleInstance(ctx context.Context, req CreateModuleInstanceRequest) (*models.ModuleInstance, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid module instance payload")
	}
	if _, err := s.catalog.GetModule(ctx, req.ModuleCode); err != nil {
		return nil, mapLookupErr(err, "module not found")
	}
	instance := &models.ModuleInstance{
		ModuleCode: req.ModuleCode,
		Year:       req.Year,
		Semester:   req.Semester,
	}
	if err := s.catalog.CreateModuleInstance(ctx, instance); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "module instance already scheduled for this year and semester")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create module instance")
	}
	return instance, nil
}

// CreateAssignment links a professor to an offering. A duplicate pair is a
// conflict; the submission path never reaches this operation.
func (s *AdminService) CreateAssignment(ctx context.Context, req CreateAssignmentRequest) (*models.TeachingAssignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}
	professor, err := s.catalog.GetProfessor(ctx, req.ProfessorID)
	if err != nil {
		return nil, mapLookupErr(err, "professor not found")
	}
	instance, err := s.catalog.GetModuleInstance(ctx, req.ModuleCode, req.Year, req.Semester)
	if err != nil {
		return nil, mapLookupErr(err, "module instance not found")
	}

	assignment := &models.TeachingAssignment{
		ModuleInstanceID: instance.ID,
		ProfessorID:      professor.ID,
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "professor already assigned to this module instance")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
	}
	return assignment, nil
}

// DeleteModule removes a module and everything it owns: its instances,
// their assignments and their ratings go with it.
func (s *AdminService) DeleteModule(ctx context.Context, code string) error {
	if err := s.catalog.DeleteModule(ctx, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "module not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete module")
	}
	s.logger.Info("module deleted with owned instances, assignments and ratings", zap.String("module_code", code))
	return nil
}
