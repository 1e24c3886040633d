package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medsimples/app-cirurgias/internal/logging"
	"github.com/medsimples/app-cirurgias/internal/services"
	"github.com/medsimples/app-cirurgias/internal/utils"
)

// BoardHandlers handles the kanban board view
type BoardHandlers struct {
	logger  *logging.SafeLogger
	service *services.BoardService
}

// NewBoardHandlers creates a new board handlers instance
func NewBoardHandlers(logger *logging.SafeLogger, service *services.BoardService) *BoardHandlers {
	return &BoardHandlers{logger: logger, service: service}
}

// GetBoard godoc
// @Summary Obter quadro kanban
// @Description Retorna uma coluna por status com os cartões das solicitações; a busca filtra por paciente, médico ou procedimento sem diferenciar acentos
// @Tags Quadro
// @Produce json
// @Param search query string false "Termo de busca"
// @Success 200 {object} models.Board
// @Router /board [get]
func (h *BoardHandlers) GetBoard(c *gin.Context) {
	ctx, span := utils.TraceBusinessLogic(c.Request.Context(), "build_board")
	defer span.End()

	board, err := h.service.Build(ctx, c.Query("search"))
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, board)
}
