package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medsimples/app-cirurgias/internal/logging"
	"github.com/medsimples/app-cirurgias/internal/middleware"
	"github.com/medsimples/app-cirurgias/internal/services"
	"github.com/medsimples/app-cirurgias/internal/utils"
)

// PendencyHandlers handles pendency validation and completion
type PendencyHandlers struct {
	logger  *logging.SafeLogger
	service *services.PendencyService
}

// NewPendencyHandlers creates a new pendency handlers instance
func NewPendencyHandlers(logger *logging.SafeLogger, service *services.PendencyService) *PendencyHandlers {
	return &PendencyHandlers{logger: logger, service: service}
}

// Validate godoc
// @Summary Validar pendências
// @Description Recalcula as pendências do status atual da solicitação e informa se ela pode avançar
// @Tags Pendências
// @Produce json
// @Param id path string true "ID da solicitação"
// @Success 200 {object} models.ValidationResult
// @Failure 404 {object} ErrorResponse
// @Router /surgery-requests/pendencies/validate/{id} [get]
func (h *PendencyHandlers) Validate(c *gin.Context) {
	ctx, span := utils.TraceBusinessLogic(c.Request.Context(), "validate_pendencies")
	defer span.End()

	result, err := h.service.Validate(ctx, c.Param("id"))
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Complete godoc
// @Summary Concluir pendência manual
// @Description Registra a conclusão de uma pendência manual; quando a última pendência obrigatória de um status com avanço automático é concluída, a solicitação transiciona
// @Tags Pendências
// @Produce json
// @Param id path string true "ID da solicitação"
// @Param pendencyId path string true "Chave da pendência"
// @Success 200 {object} models.CompleteResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /surgery-requests/{id}/pendencies/{pendencyId}/complete [patch]
func (h *PendencyHandlers) Complete(c *gin.Context) {
	ctx, span := utils.TraceBusinessLogic(c.Request.Context(), "complete_pendency")
	defer span.End()

	actor, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Não autenticado"})
		return
	}

	result, err := h.service.Complete(ctx, c.Param("id"), c.Param("pendencyId"), actor)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
