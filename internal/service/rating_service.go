package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/cwdb/course-ratings-api/internal/models"
	"github.com/cwdb/course-ratings-api/internal/repository"
	appErrors "github.com/cwdb/course-ratings-api/pkg/errors"
)

type catalogReader interface {
	GetProfessor(ctx context.Context, id string) (*models.Professor, error)
	GetModule(ctx context.Context, code string) (*models.Module, error)
	GetModuleInstance(ctx context.Context, moduleCode string, year, semester int) (*models.ModuleInstance, error)
	ListProfessors(ctx context.Context) ([]models.Professor, error)
}

type assignmentReader interface {
	List(ctx context.Context, filter models.AssignmentFilter) ([]models.TeachingAssignment, error)
	Get(ctx context.Context, moduleInstanceID, professorID string) (*models.TeachingAssignment, error)
	ListByProfessorAndModule(ctx context.Context, professorID, moduleCode string) ([]models.TeachingAssignment, error)
}

type ratingRepo interface {
	Create(ctx context.Context, rating *models.Rating) error
	ExistsForUserAssignment(ctx context.Context, userID, assignmentID string) (bool, error)
	ListForAssignments(ctx context.Context, assignmentIDs []string) ([]models.Rating, error)
}

// RawValue captures a JSON scalar verbatim, whether quoted or bare, so that
// presence, integer-parse and range checks run in the service in a fixed
// order instead of failing at bind time.
type RawValue string

// UnmarshalJSON accepts strings, numbers and null.
func (v *RawValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return err
		}
		*v = RawValue(unquoted)
		return nil
	}
	*v = RawValue(data)
	return nil
}

// SubmitRatingRequest carries the raw submission payload.
type SubmitRatingRequest struct {
	ProfessorID string   `json:"professor_id"`
	ModuleCode  string   `json:"module_code"`
	Year        RawValue `json:"year"`
	Semester    RawValue `json:"semester"`
	Score       RawValue `json:"rating"`
}

// SubmitRatingResponse returns the identifier of the stored rating.
type SubmitRatingResponse struct {
	RatingID string `json:"rating_id"`
}

// RatingService validates rating submissions and computes aggregates.
type RatingService struct {
	catalog     catalogReader
	assignments assignmentReader
	ratings     ratingRepo
	logger      *zap.Logger
}

// NewRatingService creates a service instance.
func NewRatingService(catalog catalogReader, assignments assignmentReader, ratings ratingRepo, logger *zap.Logger) *RatingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RatingService{
		catalog:     catalog,
		assignments: assignments,
		ratings:     ratings,
		logger:      logger,
	}
}

// Submit runs the rating submission through its validation sequence and
// persists exactly one new rating on success. The check order is fixed:
// required fields, integer parsing, semester range, score range, existence
// of professor/module/offering/assignment, then duplicate detection.
func (s *RatingService) Submit(ctx context.Context, userID string, req SubmitRatingRequest) (*models.Rating, error) {
	if userID == "" {
		return nil, appErrors.ErrUnauthenticated
	}

	if req.ProfessorID == "" || req.ModuleCode == "" || req.Year == "" || req.Semester == "" || req.Score == "" {
		return nil, appErrors.Clone(appErrors.ErrMissingField, "professor_id, module_code, year, semester and rating are required")
	}

	year, err := parseInt(req.Year)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidArgument, "year must be an integer")
	}
	semester, err := parseInt(req.Semester)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidArgument, "semester must be an integer")
	}
	score, err := parseInt(req.Score)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidArgument, "rating must be an integer")
	}

	if semester != 1 && semester != 2 {
		return nil, appErrors.Clone(appErrors.ErrInvalidArgument, "semester must be 1 or 2")
	}
	if score < 1 || score > 5 {
		return nil, appErrors.Clone(appErrors.ErrInvalidArgument, "rating must be between 1 and 5")
	}

	professor, err := s.catalog.GetProfessor(ctx, req.ProfessorID)
	if err != nil {
		return nil, mapLookupErr(err, "professor not found")
	}
	module, err := s.catalog.GetModule(ctx, req.ModuleCode)
	if err != nil {
		return nil, mapLookupErr(err, "module not found")
	}
	instance, err := s.catalog.GetModuleInstance(ctx, module.Code, year, semester)
	if err != nil {
		return nil, mapLookupErr(err, "module instance not found")
	}
	assignment, err := s.assignments.Get(ctx, instance.ID, professor.ID)
	if err != nil {
		return nil, mapLookupErr(err, "professor does not teach this module instance")
	}

	exists, err := s.ratings.ExistsForUserAssignment(ctx, userID, assignment.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing rating")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "you have already rated this professor for this module instance")
	}

	rating := &models.Rating{
		UserID:       userID,
		AssignmentID: assignment.ID,
		Score:        score,
	}
	if err := s.ratings.Create(ctx, rating); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost the race against a concurrent submission for the same pair.
			return nil, appErrors.Clone(appErrors.ErrConflict, "you have already rated this professor for this module instance")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create rating")
	}

	s.logger.Info("rating created",
		zap.String("rating_id", rating.ID),
		zap.String("assignment_id", assignment.ID),
		zap.Int("score", score),
	)
	return rating, nil
}

// ListProfessorOverallRatings returns every professor with the aggregate of
// all ratings across all their assignments.
func (s *RatingService) ListProfessorOverallRatings(ctx context.Context) ([]models.ProfessorRating, error) {
	professors, err := s.catalog.ListProfessors(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list professors")
	}

	result := make([]models.ProfessorRating, 0, len(professors))
	for _, prof := range professors {
		aggregate, err := s.professorOverall(ctx, prof.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, models.ProfessorRating{
			ProfessorID:   prof.ID,
			ProfessorName: prof.Name,
			Rating:        aggregate.Display,
		})
	}
	return result, nil
}

// GetProfessorModuleRating aggregates ratings of one professor across all
// instances of one module. A professor with no assignments to the module
// yields a "No rating" aggregate, not an error.
func (s *RatingService) GetProfessorModuleRating(ctx context.Context, professorID, moduleCode string) (*models.ProfessorModuleRating, error) {
	professor, err := s.catalog.GetProfessor(ctx, professorID)
	if err != nil {
		return nil, mapLookupErr(err, "professor not found")
	}
	module, err := s.catalog.GetModule(ctx, moduleCode)
	if err != nil {
		return nil, mapLookupErr(err, "module not found")
	}

	assignments, err := s.assignments.ListByProfessorAndModule(ctx, professor.ID, module.Code)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}

	aggregate, err := s.aggregateForAssignments(ctx, assignments)
	if err != nil {
		return nil, err
	}

	return &models.ProfessorModuleRating{
		ProfessorID:   professor.ID,
		ProfessorName: professor.Name,
		ModuleCode:    module.Code,
		ModuleName:    module.Name,
		Rating:        aggregate.Display,
	}, nil
}

func (s *RatingService) professorOverall(ctx context.Context, professorID string) (models.AggregateResult, error) {
	assignments, err := s.assignments.List(ctx, models.AssignmentFilter{ProfessorID: &professorID})
	if err != nil {
		return models.AggregateResult{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}
	return s.aggregateForAssignments(ctx, assignments)
}

func (s *RatingService) aggregateForAssignments(ctx context.Context, assignments []models.TeachingAssignment) (models.AggregateResult, error) {
	if len(assignments) == 0 {
		return Average(nil), nil
	}
	ids := make([]string, len(assignments))
	for i, assignment := range assignments {
		ids[i] = assignment.ID
	}
	ratings, err := s.ratings.ListForAssignments(ctx, ids)
	if err != nil {
		return models.AggregateResult{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list ratings")
	}
	return Average(ratings), nil
}

func parseInt(v RawValue) (int, error) {
	return strconv.Atoi(string(v))
}

func mapLookupErr(err error, message string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, message)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "lookup failed")
}
