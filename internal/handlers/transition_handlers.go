package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medsimples/app-cirurgias/internal/logging"
	"github.com/medsimples/app-cirurgias/internal/middleware"
	"github.com/medsimples/app-cirurgias/internal/models"
	"github.com/medsimples/app-cirurgias/internal/services"
	"github.com/medsimples/app-cirurgias/internal/utils"
)

// TransitionHandlers handles status transition operations
type TransitionHandlers struct {
	logger  *logging.SafeLogger
	service *services.TransitionService
}

// NewTransitionHandlers creates a new transition handlers instance
func NewTransitionHandlers(logger *logging.SafeLogger, service *services.TransitionService) *TransitionHandlers {
	return &TransitionHandlers{logger: logger, service: service}
}

// Transition godoc
// @Summary Transicionar status
// @Description Move a solicitação por uma aresta válida do fluxo; transições para frente exigem pendências obrigatórias concluídas
// @Tags Transições
// @Accept json
// @Produce json
// @Param id path string true "ID da solicitação"
// @Param transition body models.TransitionRequest true "Novo status"
// @Success 200 {object} models.SurgeryRequest
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} PendenciesErrorResponse
// @Router /surgery-requests/{id}/transition [post]
func (h *TransitionHandlers) Transition(c *gin.Context) {
	ctx, span := utils.TraceBusinessLogic(c.Request.Context(), "transition_request")
	defer span.End()

	var payload models.TransitionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Dados inválidos: " + err.Error()})
		return
	}

	actor, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Não autenticado"})
		return
	}

	request, unmet, err := h.service.Transition(ctx, c.Param("id"), actor, models.Status(payload.NewStatus))
	if err != nil {
		if errors.Is(err, models.ErrPendenciesNotSatisfied) {
			c.JSON(http.StatusUnprocessableEntity, PendenciesErrorResponse{
				Error:      err.Error(),
				Pendencies: unmet,
			})
			return
		}
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

// Approve godoc
// @Summary Aprovar solicitação
// @Description Registra o parecer favorável do convênio; válido em análise e em reanálise
// @Tags Transições
// @Produce json
// @Param id path string true "ID da solicitação"
// @Success 200 {object} models.SurgeryRequest
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /surgery-requests/{id}/approve [post]
func (h *TransitionHandlers) Approve(c *gin.Context) {
	ctx, span := utils.TraceBusinessLogic(c.Request.Context(), "approve_request")
	defer span.End()

	actor, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Não autenticado"})
		return
	}

	request, err := h.service.Approve(ctx, c.Param("id"), actor)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

// Deny godoc
// @Summary Negar solicitação
// @Description Registra a negativa do convênio com o motivo de contestação obrigatório e envia a solicitação para reanálise
// @Tags Transições
// @Accept json
// @Produce json
// @Param id path string true "ID da solicitação"
// @Param denial body models.DenyRequest true "Motivo da contestação"
// @Success 200 {object} models.SurgeryRequest
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /surgery-requests/{id}/deny [post]
func (h *TransitionHandlers) Deny(c *gin.Context) {
	ctx, span := utils.TraceBusinessLogic(c.Request.Context(), "deny_request")
	defer span.End()

	var payload models.DenyRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Motivo da contestação é obrigatório"})
		return
	}

	actor, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Não autenticado"})
		return
	}

	request, err := h.service.Deny(ctx, c.Param("id"), actor, payload.ContestReason)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

// SetStatus godoc
// @Summary Definir status diretamente
// @Description Define o status sem validar pendências (apenas administradores); saídas de estados terminais continuam bloqueadas
// @Tags Transições
// @Accept json
// @Produce json
// @Param id path string true "ID da solicitação"
// @Param status body models.SetStatusRequest true "Status desejado"
// @Success 200 {object} models.SurgeryRequest
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /surgery-requests/{id}/status [patch]
func (h *TransitionHandlers) SetStatus(c *gin.Context) {
	ctx, span := utils.TraceBusinessLogic(c.Request.Context(), "set_request_status")
	defer span.End()

	isAdmin, err := middleware.IsAdmin(c)
	if err != nil || !isAdmin {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Acesso negado - apenas administradores"})
		return
	}

	var payload models.SetStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Dados inválidos: " + err.Error()})
		return
	}

	actor, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Não autenticado"})
		return
	}

	request, err := h.service.SetStatus(ctx, c.Param("id"), actor, models.Status(payload.Status))
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, request)
}
