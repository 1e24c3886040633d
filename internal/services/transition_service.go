package services

import (
	"context"
	"fmt"
	"time"

	"github.com/medsimples/app-cirurgias/internal/config"
	"github.com/medsimples/app-cirurgias/internal/logging"
	"github.com/medsimples/app-cirurgias/internal/models"
	"github.com/medsimples/app-cirurgias/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// TransitionService owns every status mutation of a surgery request.
// All writes are conditional on the status the caller observed, so two
// concurrent operators cannot both move the same request.
type TransitionService struct {
	logger *logging.SafeLogger
}

// NewTransitionService creates a new transition service
func NewTransitionService(logger *logging.SafeLogger) *TransitionService {
	return &TransitionService{logger: logger}
}

// Approve records the health plan's authorization verdict. It is only
// meaningful while the plan is analyzing, so Em Análise and Em Reanálise
// are the sole accepted origins.
func (s *TransitionService) Approve(ctx context.Context, requestID, actor string) (*models.SurgeryRequest, error) {
	request, err := NewSurgeryRequestService(s.logger).GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != models.StatusEmAnalise && request.Status != models.StatusEmReanalise {
		return nil, fmt.Errorf("%w: approve from %s", models.ErrInvalidTransition, request.Status)
	}
	return executeTransition(ctx, s.logger, request, models.StatusAutorizada, actor, "", false)
}

// Deny records a denial verdict and sends the request to reanalysis.
// The contest reason is mandatory and becomes part of the record.
func (s *TransitionService) Deny(ctx context.Context, requestID, actor, reason string) (*models.SurgeryRequest, error) {
	if reason == "" {
		return nil, models.ErrDenyReasonRequired
	}
	request, err := NewSurgeryRequestService(s.logger).GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != models.StatusEmAnalise {
		return nil, fmt.Errorf("%w: deny from %s", models.ErrInvalidTransition, request.Status)
	}
	return executeTransition(ctx, s.logger, request, models.StatusEmReanalise, actor, reason, false)
}

// Transition moves a request along one edge of the status graph. Forward
// moves are gated on the pendencies of the current status; cancellation
// is not, since abandoning a request must always be possible.
// On a gate failure the unmet pendencies are returned alongside
// ErrPendenciesNotSatisfied.
func (s *TransitionService) Transition(ctx context.Context, requestID, actor string, to models.Status) (*models.SurgeryRequest, []models.Pendency, error) {
	if !to.IsValid() {
		return nil, nil, fmt.Errorf("%w: %d", models.ErrUnknownStatus, int(to))
	}
	request, err := NewSurgeryRequestService(s.logger).GetByID(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}
	if !request.Status.CanTransitionTo(to) {
		return nil, nil, fmt.Errorf("%w: %s to %s", models.ErrInvalidTransition, request.Status, to)
	}

	if to != models.StatusCancelada {
		result, err := NewPendencyService(s.logger).Validate(ctx, requestID)
		if err != nil {
			return nil, nil, err
		}
		if result.PendingCount > 0 {
			var unmet []models.Pendency
			for _, p := range result.Pendencies {
				if p.Actionable() && !p.IsOptional {
					unmet = append(unmet, p)
				}
			}
			return nil, unmet, models.ErrPendenciesNotSatisfied
		}
	}

	updated, err := executeTransition(ctx, s.logger, request, to, actor, "", false)
	if err != nil {
		return nil, nil, err
	}
	return updated, nil, nil
}

// SetStatus is the legacy direct status set kept for operator tooling.
// It skips the pendency gate and the edge check but still refuses
// unknown values and exits from terminal states, and it leaves the same
// audit trail as a regular transition.
func (s *TransitionService) SetStatus(ctx context.Context, requestID, actor string, to models.Status) (*models.SurgeryRequest, error) {
	if !to.IsValid() {
		return nil, fmt.Errorf("%w: %d", models.ErrUnknownStatus, int(to))
	}
	request, err := NewSurgeryRequestService(s.logger).GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: %s is terminal", models.ErrInvalidTransition, request.Status)
	}
	if to == request.Status {
		return request, nil
	}
	return executeTransition(ctx, s.logger, request, to, actor, "", true)
}

// executeTransition performs the persisted status change: a conditional
// update filtered on the observed status, the audit trail entry, the
// transition metric, cache invalidation and the operator notification.
func executeTransition(ctx context.Context, logger *logging.SafeLogger, request *models.SurgeryRequest, to models.Status, actor, reason string, direct bool) (*models.SurgeryRequest, error) {
	from := request.Status
	now := time.Now()
	change := models.StatusChange{
		From:      from,
		To:        to,
		Actor:     actor,
		Reason:    reason,
		Direct:    direct,
		Timestamp: now,
	}

	set := bson.M{
		"status":        to,
		"atualizado_em": now,
	}
	if reason != "" {
		set["motivo_contestacao"] = reason
	}

	collection := config.MongoDB.Collection(config.AppConfig.SurgeryRequestCollection)
	filter := bson.M{"_id": request.ID, "status": from}
	update := bson.M{"$set": set, "$push": bson.M{"historico": change}}

	result, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		logger.Error("status update failed",
			zap.String("request_id", request.ID.Hex()),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	if result.MatchedCount == 0 {
		// Someone else moved the request first; the caller's view is stale
		return nil, fmt.Errorf("%w: request no longer at %s", models.ErrInvalidTransition, from)
	}

	observability.StatusTransitions.WithLabelValues(from.String(), to.String(), "success").Inc()
	invalidateRequestCache(ctx, logger, request.ID.Hex())

	logger.Info("status transition",
		zap.String("request_id", request.ID.Hex()),
		zap.String("from", from.String()),
		zap.String("to", to.String()),
		zap.String("actor", actor),
		zap.Bool("direct", direct))

	notifyTransition(ctx, logger, request, from, to, reason)

	var updated models.SurgeryRequest
	if err := collection.FindOne(ctx, bson.M{"_id": request.ID}).Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to reload request: %w", err)
	}
	return &updated, nil
}

// notifyTransition tells the request's doctor about the change. Failures
// are logged and swallowed: notification delivery never blocks a
// transition that already happened.
func notifyTransition(ctx context.Context, logger *logging.SafeLogger, request *models.SurgeryRequest, from, to models.Status, reason string) {
	title := fmt.Sprintf("Solicitação %s", to.String())
	message := fmt.Sprintf("A solicitação do paciente %s passou de %s para %s.",
		request.PatientName, from.String(), to.String())
	if reason != "" {
		message = fmt.Sprintf("%s Motivo: %s", message, reason)
	}

	requestID := request.ID
	notifications := NewNotificationService(logger)
	_, err := notifications.Create(ctx, models.Notification{
		Recipient:        request.DoctorID.Hex(),
		SurgeryRequestID: &requestID,
		Title:            title,
		Message:          message,
	})
	if err != nil {
		logger.Warn("failed to notify transition",
			zap.String("request_id", request.ID.Hex()),
			zap.Error(err))
	}
}
