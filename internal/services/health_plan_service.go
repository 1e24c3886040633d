package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/medsimples/app-cirurgias/internal/config"
	"github.com/medsimples/app-cirurgias/internal/logging"
	"github.com/medsimples/app-cirurgias/internal/models"
	"github.com/medsimples/app-cirurgias/internal/observability"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const healthPlanListCacheKey = "convenios:ativos"

// HealthPlanService manages the health plan registry. The active-plan
// list changes rarely and is read on every form, so it is cached in
// Redis with a long TTL.
type HealthPlanService struct {
	logger *logging.SafeLogger
}

// NewHealthPlanService creates a new health plan service
func NewHealthPlanService(logger *logging.SafeLogger) *HealthPlanService {
	return &HealthPlanService{logger: logger}
}

// Create registers a health plan and drops the cached list
func (s *HealthPlanService) Create(ctx context.Context, payload *models.CreateHealthPlanRequest) (*models.HealthPlan, error) {
	now := time.Now()
	plan := models.HealthPlan{
		Name:        payload.Name,
		ANSRegistry: payload.ANSRegistry,
		Phone:       payload.Phone,
		PortalURL:   payload.PortalURL,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	collection := config.MongoDB.Collection(config.AppConfig.HealthPlanCollection)
	result, err := collection.InsertOne(ctx, plan)
	if err != nil {
		return nil, fmt.Errorf("failed to create health plan: %w", err)
	}
	plan.ID = result.InsertedID.(primitive.ObjectID)

	config.Redis.Del(ctx, healthPlanListCacheKey)
	s.logger.Info("health plan created", zap.String("plan_id", plan.ID.Hex()))
	return &plan, nil
}

// GetByID fetches one health plan
func (s *HealthPlanService) GetByID(ctx context.Context, id string) (*models.HealthPlan, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrReferenceNotFound
	}
	collection := config.MongoDB.Collection(config.AppConfig.HealthPlanCollection)
	var plan models.HealthPlan
	err = collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&plan)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrReferenceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch health plan: %w", err)
	}
	return &plan, nil
}

// List returns the active plans, cache first
func (s *HealthPlanService) List(ctx context.Context) ([]models.HealthPlan, error) {
	cached, err := config.Redis.Get(ctx, healthPlanListCacheKey).Result()
	if err == nil {
		var plans []models.HealthPlan
		if err := json.Unmarshal([]byte(cached), &plans); err == nil {
			observability.CacheHits.WithLabelValues("hit").Inc()
			return plans, nil
		}
		config.Redis.Del(ctx, healthPlanListCacheKey)
	} else if err != redis.Nil {
		s.logger.Warn("health plan cache read failed", zap.Error(err))
	}
	observability.CacheHits.WithLabelValues("miss").Inc()

	collection := config.MongoDB.Collection(config.AppConfig.HealthPlanCollection)
	opts := options.Find().SetSort(bson.D{{Key: "nome", Value: 1}})
	cursor, err := collection.Find(ctx, bson.M{"ativo": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list health plans: %w", err)
	}
	var plans []models.HealthPlan
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, fmt.Errorf("failed to decode health plans: %w", err)
	}

	if data, err := json.Marshal(plans); err == nil {
		if err := config.Redis.Set(ctx, healthPlanListCacheKey, data, config.AppConfig.ReferenceCacheTTL).Err(); err != nil {
			s.logger.Warn("failed to cache health plans", zap.Error(err))
		}
	}
	return plans, nil
}

// Update applies partial changes and drops the cached list
func (s *HealthPlanService) Update(ctx context.Context, id string, payload *models.UpdateHealthPlanRequest) (*models.HealthPlan, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrReferenceNotFound
	}

	set := bson.M{"atualizado_em": time.Now()}
	if payload.Name != nil {
		set["nome"] = *payload.Name
	}
	if payload.Phone != nil {
		set["telefone"] = *payload.Phone
	}
	if payload.PortalURL != nil {
		set["portal_url"] = *payload.PortalURL
	}
	if payload.Active != nil {
		set["ativo"] = *payload.Active
	}

	collection := config.MongoDB.Collection(config.AppConfig.HealthPlanCollection)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var plan models.HealthPlan
	err = collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": set}, opts).Decode(&plan)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrReferenceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update health plan: %w", err)
	}

	config.Redis.Del(ctx, healthPlanListCacheKey)
	return &plan, nil
}
