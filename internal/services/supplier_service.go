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

// SupplierService manages the OPME supplier registry
type SupplierService struct {
	logger *logging.SafeLogger
}

// NewSupplierService creates a new supplier service
func NewSupplierService(logger *logging.SafeLogger) *SupplierService {
	return &SupplierService{logger: logger}
}

// Create registers a supplier after validating its CNPJ
func (s *SupplierService) Create(ctx context.Context, payload *models.CreateSupplierRequest) (*models.Supplier, error) {
	cnpj := nonDigits.ReplaceAllString(payload.CNPJ, "")
	if !utils.ValidateCNPJ(cnpj) {
		return nil, models.ErrInvalidCNPJ
	}

	now := time.Now()
	supplier := models.Supplier{
		Name:      payload.Name,
		CNPJ:      cnpj,
		Phone:     payload.Phone,
		Email:     payload.Email,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	collection := config.MongoDB.Collection(config.AppConfig.SupplierCollection)
	result, err := collection.InsertOne(ctx, supplier)
	if err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}
	supplier.ID = result.InsertedID.(primitive.ObjectID)

	s.logger.Info("supplier created", zap.String("supplier_id", supplier.ID.Hex()))
	return &supplier, nil
}

// List returns all active suppliers sorted by name
func (s *SupplierService) List(ctx context.Context) ([]models.Supplier, error) {
	collection := config.MongoDB.Collection(config.AppConfig.SupplierCollection)
	opts := options.Find().SetSort(bson.D{{Key: "nome", Value: 1}})
	cursor, err := collection.Find(ctx, bson.M{"ativo": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	var suppliers []models.Supplier
	if err := cursor.All(ctx, &suppliers); err != nil {
		return nil, fmt.Errorf("failed to decode suppliers: %w", err)
	}
	return suppliers, nil
}

// Update applies partial changes to a supplier
func (s *SupplierService) Update(ctx context.Context, id string, payload *models.UpdateSupplierRequest) (*models.Supplier, error) {
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
	if payload.Email != nil {
		set["email"] = *payload.Email
	}
	if payload.Active != nil {
		set["ativo"] = *payload.Active
	}

	collection := config.MongoDB.Collection(config.AppConfig.SupplierCollection)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var supplier models.Supplier
	err = collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": set}, opts).Decode(&supplier)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrReferenceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}
	return &supplier, nil
}
