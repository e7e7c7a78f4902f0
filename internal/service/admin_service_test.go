package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwdb/course-ratings-api/internal/models"
	"github.com/cwdb/course-ratings-api/internal/repository"
	appErrors "github.com/cwdb/course-ratings-api/pkg/errors"
)

type catalogAdminStub struct {
	*catalogStub
	createInstanceErr error
	deleted           []string
	deleteErr         error
}

func (s *catalogAdminStub) CreateProfessor(ctx context.Context, prof *models.Professor) error {
	if _, exists := s.professors[prof.ID]; exists {
		return repository.ErrDuplicate
	}
	s.professors[prof.ID] = prof
	return nil
}

func (s *catalogAdminStub) CreateModule(ctx context.Context, module *models.Module) error {
	if _, exists := s.modules[module.Code]; exists {
		return repository.ErrDuplicate
	}
	s.modules[module.Code] = module
	return nil
}

func (s *catalogAdminStub) CreateModuleInstance(ctx context.Context, instance *models.ModuleInstance) error {
	if s.createInstanceErr != nil {
		return s.createInstanceErr
	}
	instance.ID = "inst-new"
	s.instances[instanceKey(instance.ModuleCode, instance.Year, instance.Semester)] = instance
	return nil
}

func (s *catalogAdminStub) DeleteModule(ctx context.Context, code string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, code)
	return nil
}

type assignmentWriterStub struct {
	createErr error
	created   []*models.TeachingAssignment
}

func (s *assignmentWriterStub) Get(ctx context.Context, moduleInstanceID, professorID string) (*models.TeachingAssignment, error) {
	return nil, sql.ErrNoRows
}

func (s *assignmentWriterStub) Create(ctx context.Context, assignment *models.TeachingAssignment) error {
	if s.createErr != nil {
		return s.createErr
	}
	assignment.ID = "assign-new"
	s.created = append(s.created, assignment)
	return nil
}

func newAdminFixtures() (*catalogAdminStub, *assignmentWriterStub, *AdminService) {
	catalog, _ := seededFixtures()
	adminCatalog := &catalogAdminStub{catalogStub: catalog}
	assignments := &assignmentWriterStub{}
	svc := NewAdminService(adminCatalog, assignments, nil, nil)
	return adminCatalog, assignments, svc
}

func TestAdminCreateProfessor(t *testing.T) {
	_, _, svc := newAdminFixtures()

	prof, err := svc.CreateProfessor(context.Background(), CreateProfessorRequest{ID: "AB1", Name: "A. Body"})
	require.NoError(t, err)
	assert.Equal(t, "AB1", prof.ID)
}

func TestAdminCreateProfessorDuplicate(t *testing.T) {
	_, _, svc := newAdminFixtures()

	_, err := svc.CreateProfessor(context.Background(), CreateProfessorRequest{ID: "JE1", Name: "J. Example"})
	assertErrCode(t, err, appErrors.ErrConflict)
}

func TestAdminCreateProfessorInvalidID(t *testing.T) {
	_, _, svc := newAdminFixtures()

	_, err := svc.CreateProfessor(context.Background(), CreateProfessorRequest{ID: "TOOLONG", Name: "A. Body"})
	assertErrCode(t, err, appErrors.ErrValidation)
}

func TestAdminCreateModuleInstanceUnknownModule(t *testing.T) {
	_, _, svc := newAdminFixtures()

	_, err := svc.CreateModuleInstance(context.Background(), CreateModuleInstanceRequest{ModuleCode: "ZZZ", Year: 2024, Semester: 1})
	assertErrCode(t, err, appErrors.ErrNotFound)
}

func TestAdminCreateModuleInstanceBadSemester(t *testing.T) {
	_, _, svc := newAdminFixtures()

	_, err := svc.CreateModuleInstance(context.Background(), CreateModuleInstanceRequest{ModuleCode: "CSC", Year: 2024, Semester: 3})
	assertErrCode(t, err, appErrors.ErrValidation)
}

func TestAdminCreateModuleInstanceDuplicateTriple(t *testing.T) {
	catalog, _, svc := newAdminFixtures()
	catalog.createInstanceErr = repository.ErrDuplicate

	_, err := svc.CreateModuleInstance(context.Background(), CreateModuleInstanceRequest{ModuleCode: "CSC", Year: 2023, Semester: 1})
	assertErrCode(t, err, appErrors.ErrConflict)
}

func TestAdminCreateAssignment(t *testing.T) {
	_, assignments, svc := newAdminFixtures()

	assignment, err := svc.CreateAssignment(context.Background(), CreateAssignmentRequest{
		ProfessorID: "JE1", ModuleCode: "CSC", Year: 2023, Semester: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "inst-1", assignment.ModuleInstanceID)
	require.Len(t, assignments.created, 1)
}

func TestAdminCreateAssignmentDuplicatePair(t *testing.T) {
	_, assignments, svc := newAdminFixtures()
	assignments.createErr = repository.ErrDuplicate

	_, err := svc.CreateAssignment(context.Background(), CreateAssignmentRequest{
		ProfessorID: "JE1", ModuleCode: "CSC", Year: 2023, Semester: 1,
	})
	assertErrCode(t, err, appErrors.ErrConflict)
}

func TestAdminDeleteModuleNotFound(t *testing.T) {
	catalog, _, svc := newAdminFixtures()
	catalog.deleteErr = sql.ErrNoRows

	err := svc.DeleteModule(context.Background(), "ZZZ")
	assertErrCode(t, err, appErrors.ErrNotFound)
}

func TestAdminDeleteModule(t *testing.T) {
	catalog, _, svc := newAdminFixtures()

	require.NoError(t, svc.DeleteModule(context.Background(), "CSC"))
	assert.Equal(t, []string{"CSC"}, catalog.deleted)
}
