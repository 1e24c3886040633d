package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medsimples/app-cirurgias/internal/logging"
	"github.com/medsimples/app-cirurgias/internal/middleware"
	"github.com/medsimples/app-cirurgias/internal/models"
	"github.com/medsimples/app-cirurgias/internal/services"
	"github.com/medsimples/app-cirurgias/internal/utils"
)

// CustomDocumentHandlers handles clinic-defined document requirements
type CustomDocumentHandlers struct {
	logger  *logging.SafeLogger
	service *services.CustomDocumentService
}

// NewCustomDocumentHandlers creates a new custom document handlers instance
func NewCustomDocumentHandlers(logger *logging.SafeLogger, service *services.CustomDocumentService) *CustomDocumentHandlers {
	return &CustomDocumentHandlers{logger: logger, service: service}
}

// Create godoc
// @Summary Criar exigência de documento
// @Description Define uma exigência de documento da clínica para um status; o id numérico vira a chave da pendência (apenas administradores)
// @Tags Exigências
// @Accept json
// @Produce json
// @Param requirement body models.CreateCustomDocumentRequest true "Dados da exigência"
// @Success 201 {object} models.CustomDocumentRequirement
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin/custom-documents [post]
func (h *CustomDocumentHandlers) Create(c *gin.Context) {
	ctx, span := utils.TraceInputParsing(c.Request.Context(), "create_custom_document")
	defer span.End()

	isAdmin, err := middleware.IsAdmin(c)
	if err != nil || !isAdmin {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Acesso negado - apenas administradores"})
		return
	}

	var payload models.CreateCustomDocumentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Dados inválidos: " + err.Error()})
		return
	}

	requirement, err := h.service.Create(ctx, &payload)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, requirement)
}

// List godoc
// @Summary Listar exigências de documento
// @Tags Exigências
// @Produce json
// @Success 200 {array} models.CustomDocumentRequirement
// @Router /admin/custom-documents [get]
func (h *CustomDocumentHandlers) List(c *gin.Context) {
	ctx, span := utils.TraceBusinessLogic(c.Request.Context(), "list_custom_documents")
	defer span.End()

	isAdmin, err := middleware.IsAdmin(c)
	if err != nil || !isAdmin {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Acesso negado - apenas administradores"})
		return
	}

	requirements, err := h.service.List(ctx)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, requirements)
}

// Update godoc
// @Summary Atualizar exigência de documento
// @Description Atualiza ou desativa uma exigência; desativar remove a pendência das próximas validações (apenas administradores)
// @Tags Exigências
// @Accept json
// @Produce json
// @Param id path int true "ID numérico da exigência"
// @Param requirement body models.UpdateCustomDocumentRequest true "Campos a atualizar"
// @Success 200 {object} models.CustomDocumentRequirement
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/custom-documents/{id} [patch]
func (h *CustomDocumentHandlers) Update(c *gin.Context) {
	ctx, span := utils.TraceInputParsing(c.Request.Context(), "update_custom_document")
	defer span.End()

	isAdmin, err := middleware.IsAdmin(c)
	if err != nil || !isAdmin {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Acesso negado - apenas administradores"})
		return
	}

	var payload models.UpdateCustomDocumentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Dados inválidos: " + err.Error()})
		return
	}

	requirement, err := h.service.Update(ctx, c.Param("id"), &payload)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, requirement)
}
