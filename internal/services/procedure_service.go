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
	"github.com/medsimples/app-cirurgias/internal/utils"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const procedureCatalogCacheKey = "procedimentos:catalogo"

// ProcedureService manages the TUSS procedure catalog. The catalog is a
// slow-moving reference table cached whole in Redis; searching happens
// in memory over the cached copy.
type ProcedureService struct {
	logger *logging.SafeLogger
}

// NewProcedureService creates a new procedure service
func NewProcedureService(logger *logging.SafeLogger) *ProcedureService {
	return &ProcedureService{logger: logger}
}

// Create adds a catalog entry keyed by its TUSS code
func (s *ProcedureService) Create(ctx context.Context, payload *models.CreateProcedureRequest) (*models.Procedure, error) {
	now := time.Now()
	procedure := models.Procedure{
		TUSSCode:  payload.TUSSCode,
		Name:      payload.Name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	collection := config.MongoDB.Collection(config.AppConfig.ProcedureCollection)
	_, err := collection.InsertOne(ctx, procedure)
	if mongo.IsDuplicateKeyError(err) {
		return nil, models.ErrDuplicateTUSSCode
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create procedure: %w", err)
	}

	config.Redis.Del(ctx, procedureCatalogCacheKey)
	s.logger.Info("procedure created", zap.String("tuss_code", procedure.TUSSCode))
	return &procedure, nil
}

// List returns catalog entries, optionally filtered by an
// accent-insensitive name or code search
func (s *ProcedureService) List(ctx context.Context, search string) (*models.ProceduresResponse, error) {
	procedures, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}

	response := &models.ProceduresResponse{Procedures: []models.Procedure{}}
	for _, p := range procedures {
		if search == "" || utils.ContainsNormalized(p.Name, search) || utils.ContainsNormalized(p.TUSSCode, search) {
			response.Procedures = append(response.Procedures, p)
		}
	}
	return response, nil
}

// Update applies partial changes to a catalog entry
func (s *ProcedureService) Update(ctx context.Context, tussCode string, payload *models.UpdateProcedureRequest) (*models.Procedure, error) {
	set := bson.M{"atualizado_em": time.Now()}
	if payload.Name != nil {
		set["nome"] = *payload.Name
	}
	if payload.Active != nil {
		set["ativo"] = *payload.Active
	}

	collection := config.MongoDB.Collection(config.AppConfig.ProcedureCollection)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var procedure models.Procedure
	err := collection.FindOneAndUpdate(ctx, bson.M{"_id": tussCode}, bson.M{"$set": set}, opts).Decode(&procedure)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrReferenceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update procedure: %w", err)
	}

	config.Redis.Del(ctx, procedureCatalogCacheKey)
	return &procedure, nil
}

// catalog loads the active catalog, cache first
func (s *ProcedureService) catalog(ctx context.Context) ([]models.Procedure, error) {
	cached, err := config.Redis.Get(ctx, procedureCatalogCacheKey).Result()
	if err == nil {
		var procedures []models.Procedure
		if err := json.Unmarshal([]byte(cached), &procedures); err == nil {
			observability.CacheHits.WithLabelValues("hit").Inc()
			return procedures, nil
		}
		config.Redis.Del(ctx, procedureCatalogCacheKey)
	} else if err != redis.Nil {
		s.logger.Warn("procedure cache read failed", zap.Error(err))
	}
	observability.CacheHits.WithLabelValues("miss").Inc()

	collection := config.MongoDB.Collection(config.AppConfig.ProcedureCollection)
	opts := options.Find().SetSort(bson.D{{Key: "nome", Value: 1}})
	cursor, err := collection.Find(ctx, bson.M{"ativo": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list procedures: %w", err)
	}
	var procedures []models.Procedure
	if err := cursor.All(ctx, &procedures); err != nil {
		return nil, fmt.Errorf("failed to decode procedures: %w", err)
	}

	if data, err := json.Marshal(procedures); err == nil {
		if err := config.Redis.Set(ctx, procedureCatalogCacheKey, data, config.AppConfig.ReferenceCacheTTL).Err(); err != nil {
			s.logger.Warn("failed to cache procedures", zap.Error(err))
		}
	}
	return procedures, nil
}
