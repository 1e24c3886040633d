package services

import (
	"context"
	"fmt"
	"time"

	"github.com/medsimples/app-cirurgias/internal/config"
	"github.com/medsimples/app-cirurgias/internal/logging"
	"github.com/medsimples/app-cirurgias/internal/models"
	"github.com/medsimples/app-cirurgias/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// CollaboratorService manages clinic members. Doctors are collaborators
// with the medico role and a CRM number.
type CollaboratorService struct {
	logger *logging.SafeLogger
}

// NewCollaboratorService creates a new collaborator service
func NewCollaboratorService(logger *logging.SafeLogger) *CollaboratorService {
	return &CollaboratorService{logger: logger}
}

// Create registers a collaborator. Doctors must carry a CRM.
func (s *CollaboratorService) Create(ctx context.Context, payload *models.CreateCollaboratorRequest) (*models.Collaborator, error) {
	if payload.Role == models.RoleDoctor && payload.CRM == "" {
		return nil, fmt.Errorf("doctors require a CRM number")
	}

	phone := payload.Phone
	if phone != "" {
		normalized, err := utils.NormalizePhone(phone)
		if err != nil {
			return nil, fmt.Errorf("invalid phone: %w", err)
		}
		phone = normalized
	}

	now := time.Now()
	collaborator := models.Collaborator{
		Name:      payload.Name,
		Role:      payload.Role,
		CRM:       payload.CRM,
		Phone:     phone,
		Email:     payload.Email,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	collection := config.MongoDB.Collection(config.AppConfig.CollaboratorCollection)
	result, err := collection.InsertOne(ctx, collaborator)
	if err != nil {
		return nil, fmt.Errorf("failed to create collaborator: %w", err)
	}
	collaborator.ID = result.InsertedID.(primitive.ObjectID)

	s.logger.Info("collaborator created",
		zap.String("collaborator_id", collaborator.ID.Hex()),
		zap.String("role", string(collaborator.Role)))
	return &collaborator, nil
}

// List returns active collaborators, optionally restricted to one role
func (s *CollaboratorService) List(ctx context.Context, role models.CollaboratorRole) ([]models.Collaborator, error) {
	filter := bson.M{"ativo": true}
	if role != "" {
		filter["funcao"] = role
	}

	collection := config.MongoDB.Collection(config.AppConfig.CollaboratorCollection)
	opts := options.Find().SetSort(bson.D{{Key: "nome", Value: 1}})
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list collaborators: %w", err)
	}
	var collaborators []models.Collaborator
	if err := cursor.All(ctx, &collaborators); err != nil {
		return nil, fmt.Errorf("failed to decode collaborators: %w", err)
	}
	return collaborators, nil
}

// Update applies partial changes to a collaborator
func (s *CollaboratorService) Update(ctx context.Context, id string, payload *models.UpdateCollaboratorRequest) (*models.Collaborator, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrReferenceNotFound
	}

	set := bson.M{"atualizado_em": time.Now()}
	if payload.Name != nil {
		set["nome"] = *payload.Name
	}
	if payload.CRM != nil {
		set["crm"] = *payload.CRM
	}
	if payload.Phone != nil {
		phone := *payload.Phone
		if phone != "" {
			normalized, err := utils.NormalizePhone(phone)
			if err != nil {
				return nil, fmt.Errorf("invalid phone: %w", err)
			}
			phone = normalized
		}
		set["telefone"] = phone
	}
	if payload.Email != nil {
		set["email"] = *payload.Email
	}
	if payload.Active != nil {
		set["ativo"] = *payload.Active
	}

	collection := config.MongoDB.Collection(config.AppConfig.CollaboratorCollection)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var collaborator models.Collaborator
	err = collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": set}, opts).Decode(&collaborator)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrReferenceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update collaborator: %w", err)
	}
	return &collaborator, nil
}
