package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cwdb/course-ratings-api/internal/middleware"
	"github.com/cwdb/course-ratings-api/internal/models"
	"github.com/cwdb/course-ratings-api/internal/service"
	appErrors "github.com/cwdb/course-ratings-api/pkg/errors"
	"github.com/cwdb/course-ratings-api/pkg/response"
)

type ratingService interface {
	ListProfessorOverallRatings(ctx context.Context) ([]models.ProfessorRating, error)
	GetProfessorModuleRating(ctx context.Context, professorID, moduleCode string) (*models.ProfessorModuleRating, error)
	Submit(ctx context.Context, userID string, req service.SubmitRatingRequest) (*models.Rating, error)
}

// RatingHandler wires rating reads and submissions to HTTP routes.
type RatingHandler struct {
	ratings ratingService
	metrics *service.MetricsService
}

// NewRatingHandler constructs a new RatingHandler.
func NewRatingHandler(ratings ratingService, metrics *service.MetricsService) *RatingHandler {
	return &RatingHandler{ratings: ratings, metrics: metrics}
}

// ViewAll godoc
// @Summary List all professors with their overall star rating
// @Tags Ratings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /view [get]
func (h *RatingHandler) ViewAll(c *gin.Context) {
	ratings, err := h.ratings.ListProfessorOverallRatings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ratings)
}

// Average godoc
// @Summary Average rating of a professor in one module
// @Tags Ratings
// @Produce json
// @Param professorId path string true "Professor ID"
// @Param moduleCode path string true "Module code"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /average/{professorId}/{moduleCode} [get]
func (h *RatingHandler) Average(c *gin.Context) {
	result, err := h.ratings.GetProfessorModuleRating(c.Request.Context(), c.Param("professorId"), c.Param("moduleCode"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Rate godoc
// @Summary Submit a rating for a professor on a module offering
// @Tags Ratings
// @Accept json
// @Produce json
// @Param payload body service.SubmitRatingRequest true "Rating payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /rate-professor [post]
func (h *RatingHandler) Rate(c *gin.Context) {
	claims, ok := currentClaims(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	var req service.SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidArgument.Code, http.StatusBadRequest, "invalid rating payload"))
		return
	}

	rating, err := h.ratings.Submit(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.IncRatingsCreated()
	}
	response.Created(c, service.SubmitRatingResponse{RatingID: rating.ID})
}

func currentClaims(c *gin.Context) (*models.JWTClaims, bool) {
	claimsValue, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil, false
	}
	claims, ok := claimsValue.(*models.JWTClaims)
	return claims, ok
}
