package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/medsimples/app-cirurgias/internal/config"
	"github.com/medsimples/app-cirurgias/internal/logging"
	"github.com/medsimples/app-cirurgias/internal/models"
	"github.com/medsimples/app-cirurgias/internal/observability"
	"github.com/medsimples/app-cirurgias/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var nonDigits = regexp.MustCompile(`\D`)

// PatientService manages the patient registry. CPF is the natural key:
// it is validated, stored as bare digits and enforced unique by index.
type PatientService struct {
	logger *logging.SafeLogger
}

// NewPatientService creates a new patient service
func NewPatientService(logger *logging.SafeLogger) *PatientService {
	return &PatientService{logger: logger}
}

// Create registers a patient after validating CPF and normalizing the phone
func (s *PatientService) Create(ctx context.Context, payload *models.CreatePatientRequest) (*models.Patient, error) {
	cpf := nonDigits.ReplaceAllString(payload.CPF, "")
	if !utils.ValidateCPF(cpf) {
		return nil, models.ErrInvalidCPF
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
	patient := models.Patient{
		Name:      payload.Name,
		CPF:       cpf,
		BirthDate: payload.BirthDate,
		Phone:     phone,
		Email:     payload.Email,
		Address:   payload.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}

	collection := config.MongoDB.Collection(config.AppConfig.PatientCollection)
	result, err := collection.InsertOne(ctx, patient)
	if mongo.IsDuplicateKeyError(err) {
		return nil, models.ErrDuplicateCPF
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	patient.ID = result.InsertedID.(primitive.ObjectID)

	s.logger.Info("patient created",
		zap.String("patient_id", patient.ID.Hex()),
		zap.String("cpf", observability.MaskCPF(cpf)))
	return &patient, nil
}

// GetByID fetches one patient
func (s *PatientService) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrReferenceNotFound
	}
	collection := config.MongoDB.Collection(config.AppConfig.PatientCollection)
	var patient models.Patient
	err = collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&patient)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrReferenceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patient: %w", err)
	}
	return &patient, nil
}

// List returns all patients, optionally filtered by an accent-insensitive
// name search
func (s *PatientService) List(ctx context.Context, search string) ([]models.Patient, error) {
	collection := config.MongoDB.Collection(config.AppConfig.PatientCollection)
	opts := options.Find().SetSort(bson.D{{Key: "nome", Value: 1}})
	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	var patients []models.Patient
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, fmt.Errorf("failed to decode patients: %w", err)
	}
	if search == "" {
		return patients, nil
	}
	filtered := make([]models.Patient, 0, len(patients))
	for _, p := range patients {
		if utils.ContainsNormalized(p.Name, search) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// Update applies partial changes; the CPF of an existing patient is
// immutable
func (s *PatientService) Update(ctx context.Context, id string, payload *models.UpdatePatientRequest) (*models.Patient, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrReferenceNotFound
	}

	set := bson.M{"atualizado_em": time.Now()}
	if payload.Name != nil {
		set["nome"] = *payload.Name
	}
	if payload.BirthDate != nil {
		set["nascimento_data"] = *payload.BirthDate
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
	if payload.Address != nil {
		set["endereco"] = payload.Address
	}

	collection := config.MongoDB.Collection(config.AppConfig.PatientCollection)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var patient models.Patient
	err = collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": set}, opts).Decode(&patient)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrReferenceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return &patient, nil
}
