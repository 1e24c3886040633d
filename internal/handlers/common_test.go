package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/medsimples/app-cirurgias/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestWriteServiceErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"request not found", models.ErrRequestNotFound, http.StatusNotFound},
		{"reference not found", models.ErrReferenceNotFound, http.StatusNotFound},
		{"document not found", models.ErrDocumentNotFound, http.StatusNotFound},
		{"notification not found", models.ErrNotificationNotFound, http.StatusNotFound},
		{"pendency not found", models.ErrPendencyNotFound, http.StatusNotFound},
		{"unknown status", models.ErrUnknownStatus, http.StatusBadRequest},
		{"deny without reason", models.ErrDenyReasonRequired, http.StatusBadRequest},
		{"invalid cpf", models.ErrInvalidCPF, http.StatusBadRequest},
		{"invalid cnpj", models.ErrInvalidCNPJ, http.StatusBadRequest},
		{"pendency not manual", models.ErrPendencyNotManual, http.StatusBadRequest},
		{"invalid transition", models.ErrInvalidTransition, http.StatusConflict},
		{"duplicate cpf", models.ErrDuplicateCPF, http.StatusConflict},
		{"duplicate tuss code", models.ErrDuplicateTUSSCode, http.StatusConflict},
		{"unexpected error", fmt.Errorf("mongo: connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)
			c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

			writeServiceError(c, nil, tt.err)

			assert.Equal(t, tt.want, recorder.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

// services wrap the sentinels with context; the mapping must survive that
func TestWriteServiceErrorWrappedSentinel(t *testing.T) {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	err := fmt.Errorf("%w: invalid health plan id abc", models.ErrReferenceNotFound)
	writeServiceError(c, nil, err)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestWriteServiceErrorHidesInternalDetail(t *testing.T) {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	writeServiceError(c, nil, fmt.Errorf("dial tcp 10.0.0.3:27017: i/o timeout"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "Erro interno do servidor", body.Error)
	assert.NotContains(t, body.Error, "10.0.0.3")
}
