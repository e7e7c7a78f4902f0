package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cwdb/course-ratings-api/internal/models"
	appErrors "github.com/cwdb/course-ratings-api/pkg/errors"
)

type moduleInstanceLister interface {
	ListModuleInstances(ctx context.Context) ([]models.ModuleInstanceRow, error)
}

type assignmentDetailLister interface {
	ListDetailsByInstance(ctx context.Context, moduleInstanceID string) ([]models.AssignmentDetail, error)
}

// CatalogService serves the public offering listings.
type CatalogService struct {
	instances   moduleInstanceLister
	assignments assignmentDetailLister
	logger      *zap.Logger
}

// NewCatalogService creates a service instance.
func NewCatalogService(instances moduleInstanceLister, assignments assignmentDetailLister, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{instances: instances, assignments: assignments, logger: logger}
}

// ListOfferings returns all module instances with the professors teaching
// them, ordered by (module code, year, semester).
func (s *CatalogService) ListOfferings(ctx context.Context) ([]models.Offering, error) {
	rows, err := s.instances.ListModuleInstances(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list module instances")
	}

	offerings := make([]models.Offering, 0, len(rows))
	for _, row := range rows {
		details, err := s.assignments.ListDetailsByInstance(ctx, row.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
		}

		taughtBy := make([]string, len(details))
		for i, detail := range details {
			taughtBy[i] = fmt.Sprintf("%s, %s", detail.ProfessorID, detail.ProfessorName)
		}

		offerings = append(offerings, models.Offering{
			ModuleCode: row.ModuleCode,
			ModuleName: row.ModuleName,
			Year:       row.Year,
			Semester:   row.Semester,
			TaughtBy:   taughtBy,
		})
	}
	return offerings, nil
}
