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

// NotificationHandlers handles the authenticated user's notifications
type NotificationHandlers struct {
	logger  *logging.SafeLogger
	service *services.NotificationService
}

// NewNotificationHandlers creates a new notification handlers instance
func NewNotificationHandlers(logger *logging.SafeLogger, service *services.NotificationService) *NotificationHandlers {
	return &NotificationHandlers{logger: logger, service: service}
}

// List godoc
// @Summary Listar notificações
// @Description Lista as notificações do usuário autenticado, mais recentes primeiro
// @Tags Notificações
// @Produce json
// @Success 200 {object} models.NotificationsResponse
// @Router /notifications [get]
func (h *NotificationHandlers) List(c *gin.Context) {
	ctx, span := utils.TraceBusinessLogic(c.Request.Context(), "list_notifications")
	defer span.End()

	recipient, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Não autenticado"})
		return
	}

	notifications, err := h.service.List(ctx, recipient)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// UnreadCount godoc
// @Summary Contar não lidas
// @Description Retorna o total de notificações não lidas do usuário autenticado
// @Tags Notificações
// @Produce json
// @Success 200 {object} models.UnreadCountResponse
// @Router /notifications/unread-count [get]
func (h *NotificationHandlers) UnreadCount(c *gin.Context) {
	ctx, span := utils.TraceCacheGet(c.Request.Context(), "notificacoes:nao_lidas")
	defer span.End()

	recipient, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Não autenticado"})
		return
	}

	count, err := h.service.UnreadCount(ctx, recipient)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.UnreadCountResponse{Count: count})
}

// MarkRead godoc
// @Summary Marcar como lida
// @Description Marca uma notificação do usuário autenticado como lida
// @Tags Notificações
// @Produce json
// @Param id path string true "ID da notificação"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /notifications/{id}/read [patch]
func (h *NotificationHandlers) MarkRead(c *gin.Context) {
	ctx, span := utils.TraceBusinessLogic(c.Request.Context(), "mark_notification_read")
	defer span.End()

	recipient, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Não autenticado"})
		return
	}

	if err := h.service.MarkRead(ctx, recipient, c.Param("id")); err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkAllRead godoc
// @Summary Marcar todas como lidas
// @Description Marca todas as notificações não lidas do usuário autenticado como lidas
// @Tags Notificações
// @Produce json
// @Success 200 {object} map[string]int64
// @Router /notifications/read-all [post]
func (h *NotificationHandlers) MarkAllRead(c *gin.Context) {
	ctx, span := utils.TraceBusinessLogic(c.Request.Context(), "mark_all_notifications_read")
	defer span.End()

	recipient, err := middleware.CurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Não autenticado"})
		return
	}

	updated, err := h.service.MarkAllRead(ctx, recipient)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
