package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/medsimples/app-cirurgias/internal/config"
	"github.com/medsimples/app-cirurgias/internal/logging"
	"github.com/medsimples/app-cirurgias/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// CustomDocumentService manages clinic-defined document requirements.
// Their numeric ids double as pendency keys, which the presenter's
// action resolver maps to a document upload by the numeric-key
// convention.
type CustomDocumentService struct {
	logger *logging.SafeLogger
}

// NewCustomDocumentService creates a new custom document service
func NewCustomDocumentService(logger *logging.SafeLogger) *CustomDocumentService {
	return &CustomDocumentService{logger: logger}
}

// Create defines a requirement, allocating the next numeric id
func (s *CustomDocumentService) Create(ctx context.Context, payload *models.CreateCustomDocumentRequest) (*models.CustomDocumentRequirement, error) {
	status := models.Status(payload.StatusContext)
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %d", models.ErrUnknownStatus, payload.StatusContext)
	}

	requirement := models.CustomDocumentRequirement{
		Name:          payload.Name,
		Description:   payload.Description,
		StatusContext: status,
		Optional:      payload.Optional,
		Active:        true,
		CreatedAt:     time.Now(),
	}

	collection := config.MongoDB.Collection(config.AppConfig.CustomDocumentCollection)

	// Ids are allocated by retrying past a concurrent insert; the _id
	// uniqueness constraint makes the race harmless
	for attempt := 0; attempt < 3; attempt++ {
		next, err := s.nextID(ctx)
		if err != nil {
			return nil, err
		}
		requirement.NumericID = next
		_, err = collection.InsertOne(ctx, requirement)
		if err == nil {
			s.logger.Info("custom document requirement created",
				zap.Int("id", requirement.NumericID),
				zap.String("status", status.String()))
			return &requirement, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("failed to create requirement: %w", err)
		}
	}
	return nil, fmt.Errorf("failed to allocate requirement id")
}

// List returns every requirement, active and inactive, newest first
func (s *CustomDocumentService) List(ctx context.Context) ([]models.CustomDocumentRequirement, error) {
	collection := config.MongoDB.Collection(config.AppConfig.CustomDocumentCollection)
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list requirements: %w", err)
	}
	var requirements []models.CustomDocumentRequirement
	if err := cursor.All(ctx, &requirements); err != nil {
		return nil, fmt.Errorf("failed to decode requirements: %w", err)
	}
	return requirements, nil
}

// Update applies partial changes; deactivating a requirement removes its
// pendency from future validations without touching past uploads
func (s *CustomDocumentService) Update(ctx context.Context, id string, payload *models.UpdateCustomDocumentRequest) (*models.CustomDocumentRequirement, error) {
	numericID, err := strconv.Atoi(id)
	if err != nil {
		return nil, models.ErrReferenceNotFound
	}

	set := bson.M{}
	if payload.Name != nil {
		set["nome"] = *payload.Name
	}
	if payload.Description != nil {
		set["descricao"] = *payload.Description
	}
	if payload.Optional != nil {
		set["opcional"] = *payload.Optional
	}
	if payload.Active != nil {
		set["ativo"] = *payload.Active
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	collection := config.MongoDB.Collection(config.AppConfig.CustomDocumentCollection)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var requirement models.CustomDocumentRequirement
	err = collection.FindOneAndUpdate(ctx, bson.M{"_id": numericID}, bson.M{"$set": set}, opts).Decode(&requirement)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrReferenceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update requirement: %w", err)
	}
	return &requirement, nil
}

func (s *CustomDocumentService) nextID(ctx context.Context) (int, error) {
	collection := config.MongoDB.Collection(config.AppConfig.CustomDocumentCollection)
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})
	var last models.CustomDocumentRequirement
	err := collection.FindOne(ctx, bson.M{}, opts).Decode(&last)
	if err == mongo.ErrNoDocuments {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to allocate requirement id: %w", err)
	}
	return last.NumericID + 1, nil
}
