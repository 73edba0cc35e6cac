package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derin/notehub/internal/app/models/dto"
	"github.com/derin/notehub/internal/pkg/apperrors"
)

func runHandler(t *testing.T, err error) (*httptest.ResponseRecorder, *dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HandleAPIError(c, err)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, &resp
}

func TestHandleAPIErrorNotFound(t *testing.T) {
	for _, err := range []error{
		apperrors.ErrDepartmentNotFound,
		apperrors.ErrSemesterNotFound,
		apperrors.ErrSubjectNotFound,
		apperrors.ErrUnitNotFound,
		apperrors.ErrNoteNotFound,
		apperrors.ErrLiveNoteNotFound,
	} {
		w, resp := runHandler(t, err)
		assert.Equal(t, http.StatusNotFound, w.Code, err.Error())
		assert.False(t, resp.Success)
		assert.Equal(t, dto.ErrorCodeResourceNotFound, resp.Error.Code)
	}
}

func TestHandleAPIErrorDuplicate(t *testing.T) {
	for _, err := range []error{
		apperrors.ErrDepartmentAlreadyExists,
		apperrors.ErrSubjectAlreadyExists,
		apperrors.ErrUnitAlreadyExists,
	} {
		w, resp := runHandler(t, err)
		assert.Equal(t, http.StatusBadRequest, w.Code, err.Error())
		assert.Equal(t, dto.ErrorCodeResourceAlreadyExists, resp.Error.Code)
	}
}

func TestHandleAPIErrorInvalidFileType(t *testing.T) {
	w, resp := runHandler(t, apperrors.ErrInvalidFileType)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeInvalidFileType, resp.Error.Code)
}

func TestHandleAPIErrorWrappedValidation(t *testing.T) {
	w, resp := runHandler(t, apperrors.NewValidationError("unit name is required"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, resp.Error.Code)
	assert.Equal(t, "unit name is required", resp.Error.Message)
}

func TestHandleAPIErrorInvalidCredentials(t *testing.T) {
	w, resp := runHandler(t, apperrors.ErrInvalidCredentials)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrorCodeInvalidCredentials, resp.Error.Code)
}

func TestHandleAPIErrorUnknownIsInternal(t *testing.T) {
	w, resp := runHandler(t, errors.New("connection reset"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, dto.ErrorCodeInternalServer, resp.Error.Code)
	// Internals never leak raw error text.
	assert.Equal(t, "Internal server error", resp.Error.Message)
}
