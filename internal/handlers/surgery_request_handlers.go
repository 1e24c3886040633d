package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/medsimples/app-cirurgias/internal/logging"
	"github.com/medsimples/app-cirurgias/internal/middleware"
	"github.com/medsimples/app-cirurgias/internal/models"
	"github.com/medsimples/app-cirurgias/internal/services"
	"github.com/medsimples/app-cirurgias/internal/utils"
)

// SurgeryRequestHandlers handles surgery request CRUD operations
type SurgeryRequestHandlers struct {
	logger  *logging.SafeLogger
	service *services.SurgeryRequestService
}

// NewSurgeryRequestHandlers creates a new surgery request handlers instance
func NewSurgeryRequestHandlers(logger *logging.SafeLogger, service *services.SurgeryRequestService) *SurgeryRequestHandlers {
	return &SurgeryRequestHandlers{logger: logger, service: service}
}

// List godoc
// @Summary Listar solicitações
// @Description Lista as solicitações de cirurgia, mais recentes primeiro
// @Tags Solicitações
// @Produce json
// @Param status query int false "Filtrar por status (1-10)"
// @Success 200 {object} models.SurgeryRequestList
// @Failure 400 {object} ErrorResponse
// @Router /surgery-requests [get]
func (h *SurgeryRequestHandlers) List(c *gin.Context) {
	ctx, span := utils.TraceBusinessLogic(c.Request.Context(), "list_surgery_requests")
	defer span.End()

	var status *models.Status
	if raw := c.Query("status"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "status inválido: " + raw})
			return
		}
		s := models.Status(value)
		status = &s
	}

	list, err := h.service.List(ctx, status)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get godoc
// @Summary Obter solicitação
// @Description Obtém uma solicitação de cirurgia por ID
// @Tags Solicitações
// @Produce json
// @Param id path string true "ID da solicitação"
// @Success 200 {object} models.SurgeryRequest
// @Failure 404 {object} ErrorResponse
// @Router /surgery-requests/{id} [get]
func (h *SurgeryRequestHandlers) Get(c *gin.Context) {
	ctx, span := utils.TraceBusinessLogic(c.Request.Context(), "get_surgery_request")
	defer span.End()

	request, err := h.service.GetByID(ctx, c.Param("id"))
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

// CreateSimple godoc
// @Summary Criar solicitação simplificada
// @Description Cria uma solicitação informando apenas paciente, médico e hospital
// @Tags Solicitações
// @Accept json
// @Produce json
// @Param request body models.CreateSimpleRequest true "Dados da solicitação"
// @Success 201 {object} models.SurgeryRequest
// @Failure 400 {object} ErrorResponse
// @Router /surgery-requests/simple [post]
func (h *SurgeryRequestHandlers) CreateSimple(c *gin.Context) {
	ctx, span := utils.TraceInputParsing(c.Request.Context(), "create_simple_request")
	defer span.End()

	var payload models.CreateSimpleRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Dados inválidos: " + err.Error()})
		return
	}

	actor, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Não autenticado"})
		return
	}

	request, err := h.service.CreateSimple(ctx, &payload, actor)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

// CreateFull godoc
// @Summary Criar solicitação completa
// @Description Cria uma solicitação com convênio, procedimentos e itens OPME
// @Tags Solicitações
// @Accept json
// @Produce json
// @Param request body models.CreateFullRequest true "Dados da solicitação"
// @Success 201 {object} models.SurgeryRequest
// @Failure 400 {object} ErrorResponse
// @Router /surgery-requests [post]
func (h *SurgeryRequestHandlers) CreateFull(c *gin.Context) {
	ctx, span := utils.TraceInputParsing(c.Request.Context(), "create_full_request")
	defer span.End()

	var payload models.CreateFullRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Dados inválidos: " + err.Error()})
		return
	}

	actor, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Não autenticado"})
		return
	}

	request, err := h.service.CreateFull(ctx, &payload, actor)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

// Update godoc
// @Summary Atualizar solicitação
// @Description Atualiza campos da solicitação; o status só muda pelos endpoints de transição
// @Tags Solicitações
// @Accept json
// @Produce json
// @Param id path string true "ID da solicitação"
// @Param request body models.UpdateSurgeryRequest true "Campos a atualizar"
// @Success 200 {object} models.SurgeryRequest
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /surgery-requests/{id} [patch]
func (h *SurgeryRequestHandlers) Update(c *gin.Context) {
	ctx, span := utils.TraceInputParsing(c.Request.Context(), "update_surgery_request")
	defer span.End()

	var payload models.UpdateSurgeryRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Dados inválidos: " + err.Error()})
		return
	}

	request, err := h.service.Update(ctx, c.Param("id"), &payload)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, request)
}

// AddQuotation godoc
// @Summary Adicionar cotação OPME
// @Description Anexa uma cotação de fornecedor a um item OPME da solicitação
// @Tags Solicitações
// @Accept json
// @Produce json
// @Param id path string true "ID da solicitação"
// @Param quotation body models.AddQuotationRequest true "Dados da cotação"
// @Success 200 {object} models.SurgeryRequest
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /surgery-requests/{id}/quotations [post]
func (h *SurgeryRequestHandlers) AddQuotation(c *gin.Context) {
	ctx, span := utils.TraceInputParsing(c.Request.Context(), "add_quotation")
	defer span.End()

	var payload models.AddQuotationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Dados inválidos: " + err.Error()})
		return
	}

	request, err := h.service.AddQuotation(ctx, c.Param("id"), &payload)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, request)
}
