package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medsimples/app-cirurgias/internal/config"
	"github.com/medsimples/app-cirurgias/internal/logging"
	"github.com/medsimples/app-cirurgias/internal/models"
	"go.uber.org/zap"
)

// ErrorResponse is the uniform error envelope of the API
type ErrorResponse struct {
	Error string `json:"error"`
}

// PendenciesErrorResponse is returned when a transition is blocked by
// unmet pendencies; it carries the list so the client can render them
type PendenciesErrorResponse struct {
	Error      string            `json:"error"`
	Pendencies []models.Pendency `json:"pendencies"`
}

// HealthResponse is the health check envelope
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	MongoDB   string `json:"mongodb"`
	Redis     string `json:"redis"`
}

// HealthCheck godoc
// @Summary Health check
// @Description Verifica a saúde do serviço e de suas dependências
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	ctx := c.Request.Context()
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		MongoDB:   "ok",
		Redis:     "ok",
	}

	if err := config.MongoDB.Client().Ping(ctx, nil); err != nil {
		response.Status = "unhealthy"
		response.MongoDB = err.Error()
	}
	if err := config.Redis.Ping(ctx).Err(); err != nil {
		response.Status = "unhealthy"
		response.Redis = err.Error()
	}

	status := http.StatusOK
	if response.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, response)
}

// writeServiceError maps sentinel service errors onto HTTP statuses.
// Unknown errors are logged and hidden behind a generic 500.
func writeServiceError(c *gin.Context, logger *logging.SafeLogger, err error) {
	switch {
	case errors.Is(err, models.ErrRequestNotFound),
		errors.Is(err, models.ErrReferenceNotFound),
		errors.Is(err, models.ErrDocumentNotFound),
		errors.Is(err, models.ErrNotificationNotFound),
		errors.Is(err, models.ErrPendencyNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrUnknownStatus),
		errors.Is(err, models.ErrDenyReasonRequired),
		errors.Is(err, models.ErrInvalidCPF),
		errors.Is(err, models.ErrInvalidCNPJ),
		errors.Is(err, models.ErrPendencyNotManual):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrDuplicateCPF),
		errors.Is(err, models.ErrDuplicateTUSSCode):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		logger.Error("unhandled service error",
			zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Erro interno do servidor"})
	}
}
