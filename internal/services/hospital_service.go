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

// HospitalService manages the hospital registry
type HospitalService struct {
	logger *logging.SafeLogger
}

// NewHospitalService creates a new hospital service
func NewHospitalService(logger *logging.SafeLogger) *HospitalService {
	return &HospitalService{logger: logger}
}

// Create registers a hospital after validating its CNPJ
func (s *HospitalService) Create(ctx context.Context, payload *models.CreateHospitalRequest) (*models.Hospital, error) {
	cnpj := nonDigits.ReplaceAllString(payload.CNPJ, "")
	if !utils.ValidateCNPJ(cnpj) {
		return nil, models.ErrInvalidCNPJ
	}

	now := time.Now()
	hospital := models.Hospital{
		Name:      payload.Name,
		CNPJ:      cnpj,
		Phone:     payload.Phone,
		Email:     payload.Email,
		Address:   payload.Address,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	collection := config.MongoDB.Collection(config.AppConfig.HospitalCollection)
	result, err := collection.InsertOne(ctx, hospital)
	if err != nil {
		return nil, fmt.Errorf("failed to create hospital: %w", err)
	}
	hospital.ID = result.InsertedID.(primitive.ObjectID)

	s.logger.Info("hospital created", zap.String("hospital_id", hospital.ID.Hex()))
	return &hospital, nil
}

// GetByID fetches one hospital
func (s *HospitalService) GetByID(ctx context.Context, id string) (*models.Hospital, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrReferenceNotFound
	}
	collection := config.MongoDB.Collection(config.AppConfig.HospitalCollection)
	var hospital models.Hospital
	err = collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&hospital)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrReferenceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hospital: %w", err)
	}
	return &hospital, nil
}

// List returns all active hospitals sorted by name
func (s *HospitalService) List(ctx context.Context) ([]models.Hospital, error) {
	collection := config.MongoDB.Collection(config.AppConfig.HospitalCollection)
	opts := options.Find().SetSort(bson.D{{Key: "nome", Value: 1}})
	cursor, err := collection.Find(ctx, bson.M{"ativo": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list hospitals: %w", err)
	}
	var hospitals []models.Hospital
	if err := cursor.All(ctx, &hospitals); err != nil {
		return nil, fmt.Errorf("failed to decode hospitals: %w", err)
	}
	return hospitals, nil
}

// Update applies partial changes to a hospital
func (s *HospitalService) Update(ctx context.Context, id string, payload *models.UpdateHospitalRequest) (*models.Hospital, error) {
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
	if payload.Address != nil {
		set["endereco"] = payload.Address
	}
	if payload.Active != nil {
		set["ativo"] = *payload.Active
	}

	collection := config.MongoDB.Collection(config.AppConfig.HospitalCollection)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var hospital models.Hospital
	err = collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": set}, opts).Decode(&hospital)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrReferenceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update hospital: %w", err)
	}
	return &hospital, nil
}
