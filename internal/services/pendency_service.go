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
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// PendencyService evaluates per-status pendencies and records manual
// completions. Every validate call recomputes the full result from
// persisted data; the only state it owns is manual completion records.
type PendencyService struct {
	logger *logging.SafeLogger
}

// NewPendencyService creates a new pendency service
func NewPendencyService(logger *logging.SafeLogger) *PendencyService {
	return &PendencyService{logger: logger}
}

// Validate recomputes the pendency set of the request at its current
// status and reports whether it can advance
func (s *PendencyService) Validate(ctx context.Context, requestID string) (*models.ValidationResult, error) {
	requests := NewSurgeryRequestService(s.logger)
	request, err := requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	rc, err := s.buildContext(ctx, request)
	if err != nil {
		return nil, err
	}

	result := EvaluatePendencies(rc)
	observability.PendencyValidations.WithLabelValues("success").Inc()

	// Keep the display-only counter in step with the computed result
	if request.PendenciesCount != result.PendingCount {
		collection := config.MongoDB.Collection(config.AppConfig.SurgeryRequestCollection)
		_, err := collection.UpdateByID(ctx, request.ID, bson.M{
			"$set": bson.M{"qtd_pendencias": result.PendingCount},
		})
		if err != nil {
			s.logger.Warn("failed to refresh pendency counter",
				zap.String("request_id", requestID), zap.Error(err))
		} else {
			invalidateRequestCache(ctx, s.logger, requestID)
		}
	}

	return &result, nil
}

// Complete records a manual completion for a pendency that has no
// automatic data signal. When the completion clears the last required
// pendency of an auto-advancing status, the request transitions as a side
// effect and the response reports the new status authoritatively.
func (s *PendencyService) Complete(ctx context.Context, requestID, pendencyKey, actor string) (*models.CompleteResult, error) {
	requests := NewSurgeryRequestService(s.logger)
	request, err := requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	rc, err := s.buildContext(ctx, request)
	if err != nil {
		return nil, err
	}

	rule, found := findRule(request.Status, rc.CustomRequirements, pendencyKey)
	if !found {
		return nil, models.ErrPendencyNotFound
	}
	if !rule.Manual {
		return nil, models.ErrPendencyNotManual
	}

	completion := models.PendencyCompletion{
		SurgeryRequestID: request.ID,
		PendencyKey:      pendencyKey,
		StatusContext:    request.Status,
		CompletedBy:      actor,
		CompletedAt:      time.Now(),
	}

	collection := config.MongoDB.Collection(config.AppConfig.PendencyCompletionCollection)
	filter := bson.M{"solicitacao_id": request.ID, "pendencia_chave": pendencyKey}
	update := bson.M{"$setOnInsert": completion}
	if _, err := collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		s.logger.Error("failed to record pendency completion",
			zap.String("request_id", requestID),
			zap.String("pendency_key", pendencyKey),
			zap.Error(err))
		return nil, fmt.Errorf("failed to record completion: %w", err)
	}

	rc, err = s.buildContext(ctx, request)
	if err != nil {
		return nil, err
	}
	result := EvaluatePendencies(rc)

	completed := models.Pendency{
		Key:           rule.Key,
		Name:          rule.Name,
		Description:   rule.Description,
		IsComplete:    true,
		IsOptional:    rule.Optional,
		Responsible:   rule.Responsible,
		StatusContext: request.Status,
	}
	out := &models.CompleteResult{Pendency: completed}

	target, autoAdvances := autoAdvanceTargets[request.Status]
	if !autoAdvances || !result.CanAdvance {
		return out, nil
	}

	updated, err := executeTransition(ctx, s.logger, request, target, actor, "", false)
	if err != nil {
		// The completion itself stands; the caller learns the transition
		// did not happen and the next validate stays authoritative
		s.logger.Error("auto-advance after completion failed",
			zap.String("request_id", requestID),
			zap.String("target", target.String()),
			zap.Error(err))
		return out, nil
	}

	out.Transitioned = true
	out.NewStatus = &updated.Status
	return out, nil
}

// buildContext assembles the data snapshot one evaluation runs against
func (s *PendencyService) buildContext(ctx context.Context, request *models.SurgeryRequest) (*RequestContext, error) {
	rc := &RequestContext{
		Request:      request,
		DocumentKeys: make(map[string]bool),
		Completions:  make(map[string]bool),
	}

	patients := config.MongoDB.Collection(config.AppConfig.PatientCollection)
	var patient models.Patient
	err := patients.FindOne(ctx, bson.M{"_id": request.PatientID}).Decode(&patient)
	if err == nil {
		rc.Patient = &patient
	} else if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}

	if request.HealthPlanID != nil {
		plans := config.MongoDB.Collection(config.AppConfig.HealthPlanCollection)
		var plan models.HealthPlan
		err := plans.FindOne(ctx, bson.M{"_id": *request.HealthPlanID}).Decode(&plan)
		if err == nil {
			rc.HealthPlan = &plan
		} else if err != mongo.ErrNoDocuments {
			return nil, fmt.Errorf("failed to load health plan: %w", err)
		}
	}

	documents := config.MongoDB.Collection(config.AppConfig.DocumentCollection)
	cursor, err := documents.Find(ctx, bson.M{"solicitacao_id": request.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}
	var docs []models.Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}
	for _, doc := range docs {
		rc.DocumentKeys[doc.Key] = true
	}

	completions := config.MongoDB.Collection(config.AppConfig.PendencyCompletionCollection)
	cursor, err = completions.Find(ctx, bson.M{"solicitacao_id": request.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to load completions: %w", err)
	}
	var done []models.PendencyCompletion
	if err := cursor.All(ctx, &done); err != nil {
		return nil, fmt.Errorf("failed to decode completions: %w", err)
	}
	for _, c := range done {
		rc.Completions[c.PendencyKey] = true
	}

	custom := config.MongoDB.Collection(config.AppConfig.CustomDocumentCollection)
	cursor, err = custom.Find(ctx, bson.M{"status_contexto": request.Status, "ativo": true})
	if err != nil {
		return nil, fmt.Errorf("failed to load custom requirements: %w", err)
	}
	if err := cursor.All(ctx, &rc.CustomRequirements); err != nil {
		return nil, fmt.Errorf("failed to decode custom requirements: %w", err)
	}

	return rc, nil
}

// findRule looks a rule up by key within a status context, custom
// requirements included
func findRule(status models.Status, custom []models.CustomDocumentRequirement, key string) (PendencyRule, bool) {
	for _, rule := range rulesForStatus(status, custom) {
		if rule.Key == key {
			return rule, true
		}
	}
	return PendencyRule{}, false
}
