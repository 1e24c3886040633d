package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/medsimples/app-cirurgias/internal/config"
	"github.com/medsimples/app-cirurgias/internal/logging"
	"github.com/medsimples/app-cirurgias/internal/models"
	"github.com/medsimples/app-cirurgias/internal/utils"
	"github.com/minio/minio-go/v7"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// DocumentService stores attachment bodies in MinIO and their metadata
// in MongoDB. The document keys it records are what the pendency
// evaluator checks against.
type DocumentService struct {
	logger *logging.SafeLogger
}

// NewDocumentService creates a new document service
func NewDocumentService(logger *logging.SafeLogger) *DocumentService {
	return &DocumentService{logger: logger}
}

// Upload stores a file under the given document key. Re-uploading a key
// replaces the previous metadata; the old object stays in the bucket for
// audit purposes.
func (s *DocumentService) Upload(ctx context.Context, requestID, key, fileName, contentType string, size int64, body io.Reader, actor string) (*models.Document, error) {
	request, err := NewSurgeryRequestService(s.logger).GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	storageKey := fmt.Sprintf("%s/%s/%s", request.ID.Hex(), key, utils.GenerateUUID())
	_, err = config.Minio.PutObject(ctx, config.AppConfig.MinioBucket, storageKey, body, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	document := models.Document{
		SurgeryRequestID: request.ID,
		Key:              key,
		FileName:         fileName,
		ContentType:      contentType,
		SizeBytes:        size,
		StorageKey:       storageKey,
		UploadedBy:       actor,
		UploadedAt:       time.Now(),
	}

	collection := config.MongoDB.Collection(config.AppConfig.DocumentCollection)
	filter := bson.M{"solicitacao_id": request.ID, "chave": key}
	update := bson.M{"$set": document}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var stored models.Document
	if err := collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored); err != nil {
		return nil, fmt.Errorf("failed to record document: %w", err)
	}

	s.refreshAttachmentCounter(ctx, request.ID)
	invalidateRequestCache(ctx, s.logger, request.ID.Hex())

	s.logger.Info("document uploaded",
		zap.String("request_id", request.ID.Hex()),
		zap.String("key", key),
		zap.Int64("size_bytes", size))

	return &stored, nil
}

// List returns the metadata of a request's attachments
func (s *DocumentService) List(ctx context.Context, requestID string) (*models.DocumentsResponse, error) {
	request, err := NewSurgeryRequestService(s.logger).GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	collection := config.MongoDB.Collection(config.AppConfig.DocumentCollection)
	opts := options.Find().SetSort(bson.D{{Key: "enviado_em", Value: -1}})
	cursor, err := collection.Find(ctx, bson.M{"solicitacao_id": request.ID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	response := &models.DocumentsResponse{Documents: []models.Document{}}
	if err := cursor.All(ctx, &response.Documents); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}
	return response, nil
}

// DownloadURL issues a short-lived presigned link for one attachment
func (s *DocumentService) DownloadURL(ctx context.Context, requestID, documentID string) (string, error) {
	requestObjectID, err := primitive.ObjectIDFromHex(requestID)
	if err != nil {
		return "", models.ErrRequestNotFound
	}
	documentObjectID, err := primitive.ObjectIDFromHex(documentID)
	if err != nil {
		return "", models.ErrDocumentNotFound
	}

	collection := config.MongoDB.Collection(config.AppConfig.DocumentCollection)
	var document models.Document
	err = collection.FindOne(ctx, bson.M{"_id": documentObjectID, "solicitacao_id": requestObjectID}).Decode(&document)
	if err == mongo.ErrNoDocuments {
		return "", models.ErrDocumentNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to fetch document: %w", err)
	}

	url, err := config.Minio.PresignedGetObject(ctx, config.AppConfig.MinioBucket, document.StorageKey, 15*time.Minute, nil)
	if err != nil {
		return "", fmt.Errorf("failed to presign document: %w", err)
	}
	return url.String(), nil
}

// refreshAttachmentCounter keeps the card badge in step with the real count
func (s *DocumentService) refreshAttachmentCounter(ctx context.Context, requestID primitive.ObjectID) {
	collection := config.MongoDB.Collection(config.AppConfig.DocumentCollection)
	count, err := collection.CountDocuments(ctx, bson.M{"solicitacao_id": requestID})
	if err != nil {
		s.logger.Warn("failed to count attachments", zap.Error(err))
		return
	}
	requests := config.MongoDB.Collection(config.AppConfig.SurgeryRequestCollection)
	if _, err := requests.UpdateByID(ctx, requestID, bson.M{"$set": bson.M{"qtd_anexos": count}}); err != nil {
		s.logger.Warn("failed to refresh attachment counter", zap.Error(err))
	}
}
