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

// SurgeryRequestService handles creation and retrieval of surgery
// requests. Single-request reads go through Redis; the cache is
// invalidated on every write path.
type SurgeryRequestService struct {
	logger *logging.SafeLogger
}

// NewSurgeryRequestService creates a new surgery request service
func NewSurgeryRequestService(logger *logging.SafeLogger) *SurgeryRequestService {
	return &SurgeryRequestService{logger: logger}
}

func requestCacheKey(id string) string {
	return fmt.Sprintf("cirurgia:%s", id)
}

// invalidateRequestCache drops the cached copy of a request after a write
func invalidateRequestCache(ctx context.Context, logger *logging.SafeLogger, id string) {
	if err := config.Redis.Del(ctx, requestCacheKey(id)).Err(); err != nil {
		logger.Warn("failed to invalidate request cache",
			zap.String("request_id", id), zap.Error(err))
	}
}

// GetByID fetches a single request, cache first
func (s *SurgeryRequestService) GetByID(ctx context.Context, id string) (*models.SurgeryRequest, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrRequestNotFound
	}

	cacheKey := requestCacheKey(id)
	cached, err := config.Redis.Get(ctx, cacheKey).Result()
	if err == nil {
		var request models.SurgeryRequest
		if err := json.Unmarshal([]byte(cached), &request); err == nil {
			observability.CacheHits.WithLabelValues("hit").Inc()
			return &request, nil
		}
		config.Redis.Del(ctx, cacheKey)
	} else if err != redis.Nil {
		s.logger.Warn("request cache read failed", zap.Error(err))
	}
	observability.CacheHits.WithLabelValues("miss").Inc()

	collection := config.MongoDB.Collection(config.AppConfig.SurgeryRequestCollection)
	var request models.SurgeryRequest
	err = collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&request)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch request: %w", err)
	}

	if data, err := json.Marshal(request); err == nil {
		if err := config.Redis.Set(ctx, cacheKey, data, config.AppConfig.RedisTTL).Err(); err != nil {
			s.logger.Warn("failed to cache request", zap.Error(err))
		}
	}

	return &request, nil
}

// List returns requests, newest first, optionally filtered by status
func (s *SurgeryRequestService) List(ctx context.Context, status *models.Status) (*models.SurgeryRequestList, error) {
	filter := bson.M{}
	if status != nil {
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: %d", models.ErrUnknownStatus, int(*status))
		}
		filter["status"] = *status
	}

	collection := config.MongoDB.Collection(config.AppConfig.SurgeryRequestCollection)
	opts := options.Find().SetSort(bson.D{{Key: "criado_em", Value: -1}})
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	list := &models.SurgeryRequestList{Records: []models.SurgeryRequest{}}
	if err := cursor.All(ctx, &list.Records); err != nil {
		return nil, fmt.Errorf("failed to decode requests: %w", err)
	}
	return list, nil
}

// CreateSimple creates a request from the reduced form: patient, doctor
// and hospital only. Everything else becomes a pendency to resolve.
func (s *SurgeryRequestService) CreateSimple(ctx context.Context, payload *models.CreateSimpleRequest, actor string) (*models.SurgeryRequest, error) {
	request, err := s.buildRequest(ctx, payload, actor)
	if err != nil {
		return nil, err
	}
	return s.insert(ctx, request)
}

// CreateFull creates a request from the complete form, with health plan
// data and procedure and OPME lines already filled in
func (s *SurgeryRequestService) CreateFull(ctx context.Context, payload *models.CreateFullRequest, actor string) (*models.SurgeryRequest, error) {
	request, err := s.buildRequest(ctx, &payload.CreateSimpleRequest, actor)
	if err != nil {
		return nil, err
	}

	if payload.HealthPlanID != "" {
		planID, err := primitive.ObjectIDFromHex(payload.HealthPlanID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid health plan id %s", models.ErrReferenceNotFound, payload.HealthPlanID)
		}
		request.HealthPlanID = &planID
	}
	request.HealthPlanCardID = payload.HealthPlanCardID
	request.Procedures = payload.Procedures
	request.OPMEItems = payload.OPMEItems

	return s.insert(ctx, request)
}

// buildRequest resolves and denormalizes the referenced entities. Names
// are copied onto the request so list and board reads need no joins.
func (s *SurgeryRequestService) buildRequest(ctx context.Context, payload *models.CreateSimpleRequest, actor string) (*models.SurgeryRequest, error) {
	patientID, err := primitive.ObjectIDFromHex(payload.PatientID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid patient id %s", models.ErrReferenceNotFound, payload.PatientID)
	}
	doctorID, err := primitive.ObjectIDFromHex(payload.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid doctor id %s", models.ErrReferenceNotFound, payload.DoctorID)
	}
	hospitalID, err := primitive.ObjectIDFromHex(payload.HospitalID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid hospital id %s", models.ErrReferenceNotFound, payload.HospitalID)
	}

	var patient models.Patient
	err = config.MongoDB.Collection(config.AppConfig.PatientCollection).
		FindOne(ctx, bson.M{"_id": patientID}).Decode(&patient)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("%w: patient %s", models.ErrReferenceNotFound, payload.PatientID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patient: %w", err)
	}

	var doctor models.Collaborator
	err = config.MongoDB.Collection(config.AppConfig.CollaboratorCollection).
		FindOne(ctx, bson.M{"_id": doctorID, "funcao": models.RoleDoctor}).Decode(&doctor)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("%w: doctor %s", models.ErrReferenceNotFound, payload.DoctorID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch doctor: %w", err)
	}

	count, err := config.MongoDB.Collection(config.AppConfig.HospitalCollection).
		CountDocuments(ctx, bson.M{"_id": hospitalID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hospital: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: hospital %s", models.ErrReferenceNotFound, payload.HospitalID)
	}

	priority := payload.Priority
	if priority == 0 {
		priority = models.PriorityMedia
	}

	now := time.Now()
	return &models.SurgeryRequest{
		Status:      models.StatusPendente,
		Priority:    priority,
		PatientID:   patientID,
		PatientName: patient.Name,
		DoctorID:    doctorID,
		DoctorName:  doctor.Name,
		HospitalID:  hospitalID,
		History: []models.StatusChange{{
			From:      models.StatusPendente,
			To:        models.StatusPendente,
			Actor:     actor,
			Timestamp: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update applies partial changes to a request's details. Filling these
// fields is how most data-derived pendencies get resolved.
func (s *SurgeryRequestService) Update(ctx context.Context, id string, payload *models.UpdateSurgeryRequest) (*models.SurgeryRequest, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrRequestNotFound
	}

	set := bson.M{"atualizado_em": time.Now()}
	if payload.Priority != nil {
		set["prioridade"] = *payload.Priority
	}
	if payload.HealthPlanID != nil {
		planID, err := primitive.ObjectIDFromHex(*payload.HealthPlanID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid health plan id %s", models.ErrReferenceNotFound, *payload.HealthPlanID)
		}
		set["convenio_id"] = planID
	}
	if payload.HealthPlanCardID != nil {
		set["convenio_carteirinha"] = *payload.HealthPlanCardID
	}
	if payload.AuthorizationNumber != nil {
		set["numero_autorizacao"] = *payload.AuthorizationNumber
	}
	if payload.SurgeryDate != nil {
		set["data_cirurgia"] = *payload.SurgeryDate
	}
	if payload.InvoiceNumber != nil {
		set["numero_fatura"] = *payload.InvoiceNumber
	}
	if payload.Procedures != nil {
		set["procedimentos"] = payload.Procedures
	}
	if payload.OPMEItems != nil {
		set["itens_opme"] = payload.OPMEItems
	}

	collection := config.MongoDB.Collection(config.AppConfig.SurgeryRequestCollection)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var request models.SurgeryRequest
	err = collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": set}, opts).Decode(&request)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update request: %w", err)
	}

	invalidateRequestCache(ctx, s.logger, id)
	return &request, nil
}

// AddQuotation attaches a supplier quote to one OPME line of the request
func (s *SurgeryRequestService) AddQuotation(ctx context.Context, id string, payload *models.AddQuotationRequest) (*models.SurgeryRequest, error) {
	request, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payload.ItemIndex < 0 || payload.ItemIndex >= len(request.OPMEItems) {
		return nil, fmt.Errorf("opme item index out of range: %d", payload.ItemIndex)
	}

	supplierID, err := primitive.ObjectIDFromHex(payload.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid supplier id %s", models.ErrReferenceNotFound, payload.SupplierID)
	}
	var supplier models.Supplier
	err = config.MongoDB.Collection(config.AppConfig.SupplierCollection).
		FindOne(ctx, bson.M{"_id": supplierID}).Decode(&supplier)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrReferenceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch supplier: %w", err)
	}

	quotation := models.Quotation{
		SupplierID:   supplierID,
		SupplierName: supplier.Name,
		PriceCents:   payload.PriceCents,
		QuotedAt:     time.Now(),
	}

	field := fmt.Sprintf("itens_opme.%d.cotacoes", payload.ItemIndex)
	collection := config.MongoDB.Collection(config.AppConfig.SurgeryRequestCollection)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.SurgeryRequest
	err = collection.FindOneAndUpdate(ctx, bson.M{"_id": request.ID},
		bson.M{"$push": bson.M{field: quotation}, "$set": bson.M{"atualizado_em": time.Now()}}, opts).Decode(&updated)
	if err != nil {
		return nil, fmt.Errorf("failed to add quotation: %w", err)
	}

	invalidateRequestCache(ctx, s.logger, id)
	return &updated, nil
}

func (s *SurgeryRequestService) insert(ctx context.Context, request *models.SurgeryRequest) (*models.SurgeryRequest, error) {
	collection := config.MongoDB.Collection(config.AppConfig.SurgeryRequestCollection)
	result, err := collection.InsertOne(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	request.ID = result.InsertedID.(primitive.ObjectID)

	observability.DatabaseOperations.WithLabelValues("insert", "success").Inc()
	s.logger.Info("surgery request created",
		zap.String("request_id", request.ID.Hex()),
		zap.String("patient_id", request.PatientID.Hex()))

	return request, nil
}
