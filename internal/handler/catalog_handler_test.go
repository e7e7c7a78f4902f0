package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwdb/course-ratings-api/internal/models"
	appErrors "github.com/cwdb/course-ratings-api/pkg/errors"
)

type catalogServiceMock struct {
	listResp []models.Offering
	listErr  error
}

func (m *catalogServiceMock) ListOfferings(ctx context.Context) ([]models.Offering, error) {
	return m.listResp, m.listErr
}

func TestCatalogHandlerListOfferings(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &catalogServiceMock{
		listResp: []models.Offering{
			{ModuleCode: "CD1", ModuleName: "Computing", Year: 2023, Semester: 1, TaughtBy: []string{"JE1, J. Excellent"}},
		},
	}
	handler := NewCatalogHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/list", nil)
	c.Request = req

	handler.ListOfferings(c)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []models.Offering `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, []string{"JE1, J. Excellent"}, body.Data[0].TaughtBy)
}

func TestCatalogHandlerListOfferingsError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCatalogHandler(&catalogServiceMock{listErr: appErrors.ErrInternal})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/list", nil)
	c.Request = req

	handler.ListOfferings(c)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
