package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/medsimples/app-cirurgias/internal/config"
	"github.com/medsimples/app-cirurgias/internal/logging"
	"github.com/medsimples/app-cirurgias/internal/models"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// NotificationService stores notifications in MongoDB and keeps the
// per-recipient unread counter in Redis so the dashboard poll never
// touches the database on the happy path.
type NotificationService struct {
	logger *logging.SafeLogger
}

// NewNotificationService creates a new notification service
func NewNotificationService(logger *logging.SafeLogger) *NotificationService {
	return &NotificationService{logger: logger}
}

func unreadCounterKey(recipient string) string {
	return fmt.Sprintf("notificacoes:nao_lidas:%s", recipient)
}

// Create persists a notification and bumps the recipient's unread counter
func (s *NotificationService) Create(ctx context.Context, notification models.Notification) (*models.Notification, error) {
	notification.Read = false
	notification.CreatedAt = time.Now()

	collection := config.MongoDB.Collection(config.AppConfig.NotificationCollection)
	result, err := collection.InsertOne(ctx, notification)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	notification.ID = result.InsertedID.(primitive.ObjectID)

	if err := config.Redis.Incr(ctx, unreadCounterKey(notification.Recipient)).Err(); err != nil {
		// The counter self-heals on the next cache miss
		s.logger.Warn("failed to bump unread counter",
			zap.String("recipient", notification.Recipient), zap.Error(err))
		config.Redis.Del(ctx, unreadCounterKey(notification.Recipient))
	}

	return &notification, nil
}

// List returns the recipient's notifications, newest first
func (s *NotificationService) List(ctx context.Context, recipient string) (*models.NotificationsResponse, error) {
	collection := config.MongoDB.Collection(config.AppConfig.NotificationCollection)
	opts := options.Find().SetSort(bson.D{{Key: "criada_em", Value: -1}}).SetLimit(100)
	cursor, err := collection.Find(ctx, bson.M{"destinatario": recipient}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	response := &models.NotificationsResponse{Notifications: []models.Notification{}}
	if err := cursor.All(ctx, &response.Notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return response, nil
}

// UnreadCount answers from the Redis counter, rebuilding it from MongoDB
// when it is missing
func (s *NotificationService) UnreadCount(ctx context.Context, recipient string) (int64, error) {
	key := unreadCounterKey(recipient)
	cached, err := config.Redis.Get(ctx, key).Result()
	if err == nil {
		if count, err := strconv.ParseInt(cached, 10, 64); err == nil && count >= 0 {
			return count, nil
		}
	} else if err != redis.Nil {
		s.logger.Warn("unread counter read failed",
			zap.String("recipient", recipient), zap.Error(err))
	}

	collection := config.MongoDB.Collection(config.AppConfig.NotificationCollection)
	count, err := collection.CountDocuments(ctx, bson.M{"destinatario": recipient, "lida": false})
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	if err := config.Redis.Set(ctx, key, count, config.AppConfig.RedisTTL).Err(); err != nil {
		s.logger.Warn("failed to rebuild unread counter",
			zap.String("recipient", recipient), zap.Error(err))
	}
	return count, nil
}

// MarkRead marks one of the recipient's notifications as read. Marking
// an already-read notification is a no-op.
func (s *NotificationService) MarkRead(ctx context.Context, recipient, notificationID string) error {
	objectID, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return models.ErrNotificationNotFound
	}

	collection := config.MongoDB.Collection(config.AppConfig.NotificationCollection)
	filter := bson.M{"_id": objectID, "destinatario": recipient}
	result, err := collection.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"lida": true}})
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrNotificationNotFound
	}
	if result.ModifiedCount > 0 {
		if err := config.Redis.Decr(ctx, unreadCounterKey(recipient)).Err(); err != nil {
			config.Redis.Del(ctx, unreadCounterKey(recipient))
		}
	}
	return nil
}

// MarkAllRead marks every unread notification of the recipient as read
func (s *NotificationService) MarkAllRead(ctx context.Context, recipient string) (int64, error) {
	collection := config.MongoDB.Collection(config.AppConfig.NotificationCollection)
	filter := bson.M{"destinatario": recipient, "lida": false}
	result, err := collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"lida": true}})
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}

	if err := config.Redis.Del(ctx, unreadCounterKey(recipient)).Err(); err != nil {
		s.logger.Warn("failed to reset unread counter",
			zap.String("recipient", recipient), zap.Error(err))
	}
	return result.ModifiedCount, nil
}
