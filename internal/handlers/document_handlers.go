package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medsimples/app-cirurgias/internal/logging"
	"github.com/medsimples/app-cirurgias/internal/middleware"
	"github.com/medsimples/app-cirurgias/internal/services"
	"github.com/medsimples/app-cirurgias/internal/utils"
)

// maxDocumentSize limits uploads to 25 MiB per file
const maxDocumentSize = 25 << 20

// DocumentHandlers handles attachment upload and retrieval
type DocumentHandlers struct {
	logger  *logging.SafeLogger
	service *services.DocumentService
}

// NewDocumentHandlers creates a new document handlers instance
func NewDocumentHandlers(logger *logging.SafeLogger, service *services.DocumentService) *DocumentHandlers {
	return &DocumentHandlers{logger: logger, service: service}
}

// Upload godoc
// @Summary Enviar documento
// @Description Envia um anexo sob uma chave de documento; reenvios da mesma chave substituem o registro anterior
// @Tags Documentos
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "ID da solicitação"
// @Param chave formData string true "Chave do documento"
// @Param arquivo formData file true "Arquivo"
// @Success 201 {object} models.Document
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /surgery-requests/{id}/documents [post]
func (h *DocumentHandlers) Upload(c *gin.Context) {
	ctx, span := utils.TraceInputParsing(c.Request.Context(), "upload_document")
	defer span.End()

	key := c.PostForm("chave")
	if key == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Chave do documento é obrigatória"})
		return
	}

	fileHeader, err := c.FormFile("arquivo")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Arquivo é obrigatório"})
		return
	}
	if fileHeader.Size > maxDocumentSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Arquivo excede o tamanho máximo de 25MB"})
		return
	}

	actor, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Não autenticado"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Falha ao ler o arquivo"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	document, err := h.service.Upload(ctx, c.Param("id"), key,
		fileHeader.Filename, contentType, fileHeader.Size, file, actor)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, document)
}

// List godoc
// @Summary Listar documentos
// @Description Lista os anexos de uma solicitação
// @Tags Documentos
// @Produce json
// @Param id path string true "ID da solicitação"
// @Success 200 {object} models.DocumentsResponse
// @Failure 404 {object} ErrorResponse
// @Router /surgery-requests/{id}/documents [get]
func (h *DocumentHandlers) List(c *gin.Context) {
	ctx, span := utils.TraceBusinessLogic(c.Request.Context(), "list_documents")
	defer span.End()

	documents, err := h.service.List(ctx, c.Param("id"))
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, documents)
}

// Download godoc
// @Summary Baixar documento
// @Description Emite um link assinado de curta duração para o anexo
// @Tags Documentos
// @Produce json
// @Param id path string true "ID da solicitação"
// @Param documentId path string true "ID do documento"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /surgery-requests/{id}/documents/{documentId}/download [get]
func (h *DocumentHandlers) Download(c *gin.Context) {
	ctx, span := utils.TraceExternalService(c.Request.Context(), "minio", "presign")
	defer span.End()

	url, err := h.service.DownloadURL(ctx, c.Param("id"), c.Param("documentId"))
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
