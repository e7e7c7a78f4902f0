package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cwdb/course-ratings-api/internal/service"
	appErrors "github.com/cwdb/course-ratings-api/pkg/errors"
	"github.com/cwdb/course-ratings-api/pkg/response"
)

// AdminHandler exposes catalog maintenance and report export.
type AdminHandler struct {
	admin  *service.AdminService
	export *service.ExportService
}

// NewAdminHandler constructs a new AdminHandler.
func NewAdminHandler(admin *service.AdminService, export *service.ExportService) *AdminHandler {
	return &AdminHandler{admin: admin, export: export}
}

// CreateProfessor godoc
// @Summary Create a professor
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body service.CreateProfessorRequest true "Professor payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/professors [post]
func (h *AdminHandler) CreateProfessor(c *gin.Context) {
	var req service.CreateProfessorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid professor payload"))
		return
	}
	prof, err := h.admin.CreateProfessor(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, prof)
}

// CreateModule godoc
// @Summary Create a module
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body service.CreateModuleRequest true "Module payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/modules [post]
func (h *AdminHandler) CreateModule(c *gin.Context) {
	var req service.CreateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid module payload"))
		return
	}
	module, err := h.admin.CreateModule(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, module)
}

// CreateModuleInstance godoc
// @Summary Schedule a module offering
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body service.CreateModuleInstanceRequest true "Offering payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/module-instances [post]
func (h *AdminHandler) CreateModuleInstance(c *gin.Context) {
	var req service.CreateModuleInstanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid module instance payload"))
		return
	}
	instance, err := h.admin.CreateModuleInstance(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, instance)
}

// CreateAssignment godoc
// @Summary Assign a professor to an offering
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body service.CreateAssignmentRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/assignments [post]
func (h *AdminHandler) CreateAssignment(c *gin.Context) {
	var req service.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}
	assignment, err := h.admin.CreateAssignment(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}

// DeleteModule godoc
// @Summary Delete a module and everything it owns
// @Tags Admin
// @Produce json
// @Param code path string true "Module code"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/modules/{code} [delete]
func (h *AdminHandler) DeleteModule(c *gin.Context) {
	if err := h.admin.DeleteModule(c.Request.Context(), c.Param("code")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ExportRatings godoc
// @Summary Export the overall professor ratings report
// @Tags Admin
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Success 200
// @Security BearerAuth
// @Router /admin/ratings/export [get]
func (h *AdminHandler) ExportRatings(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	result, err := h.export.RatingsReport(c.Request.Context(), service.ExportFormat(format))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
