package config

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/medsimples/app-cirurgias/internal/logging"
	"github.com/medsimples/app-cirurgias/internal/redisclient"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
	"go.uber.org/zap"
)

var (
	// MongoDB database handle
	MongoDB *mongo.Database
	// Redis client
	Redis *redisclient.Client
	// Minio object storage client
	Minio *minio.Client
)

// InitMongoDB initializes the MongoDB connection
func InitMongoDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(AppConfig.MongoURI).
		SetMonitor(otelmongo.NewMonitor()).
		SetMaxPoolSize(100).
		SetMinPoolSize(10).
		SetMaxConnIdleTime(5 * time.Minute).
		SetRetryWrites(true).
		SetRetryReads(true)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Fatal(err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatal(err)
	}

	MongoDB = client.Database(AppConfig.MongoDatabase)

	if err := EnsureIndexes(); err != nil {
		logging.Logger.Error("failed to ensure indexes on startup", zap.Error(err))
	}
	startIndexMaintenance()

	logging.Logger.Info("connected to MongoDB",
		zap.String("uri", maskMongoURI(AppConfig.MongoURI)),
		zap.String("database", AppConfig.MongoDatabase),
	)
}

// InitRedis initializes the Redis connection
func InitRedis() {
	redisClient := redis.NewClient(&redis.Options{
		Addr:         AppConfig.RedisURI,
		Password:     AppConfig.RedisPassword,
		DB:           AppConfig.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	// Wrap with traced client
	Redis = redisclient.NewClient(redisClient)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Redis.Ping(ctx).Err(); err != nil {
		logging.Logger.Error("failed to connect to Redis",
			zap.String("uri", AppConfig.RedisURI),
			zap.Error(err))
		return
	}

	logging.Logger.Info("connected to Redis",
		zap.String("uri", AppConfig.RedisURI))
}

// InitMinio initializes the MinIO client and makes sure the document
// bucket exists
func InitMinio() {
	client, err := minio.New(AppConfig.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(AppConfig.MinioAccessKey, AppConfig.MinioSecretKey, ""),
		Secure: AppConfig.MinioUseSSL,
	})
	if err != nil {
		log.Fatal(err)
	}

	Minio = client

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, AppConfig.MinioBucket)
	if err != nil {
		logging.Logger.Error("failed to check MinIO bucket",
			zap.String("bucket", AppConfig.MinioBucket),
			zap.Error(err))
		return
	}
	if !exists {
		if err := client.MakeBucket(ctx, AppConfig.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			logging.Logger.Error("failed to create MinIO bucket",
				zap.String("bucket", AppConfig.MinioBucket),
				zap.Error(err))
			return
		}
	}

	logging.Logger.Info("connected to MinIO",
		zap.String("endpoint", AppConfig.MinioEndpoint),
		zap.String("bucket", AppConfig.MinioBucket))
}

// maskMongoURI masks sensitive information in MongoDB URI
func maskMongoURI(uri string) string {
	at := strings.LastIndex(uri, "@")
	if at < 0 {
		return uri
	}
	return "mongodb://****:****@" + uri[at+1:]
}

// EnsureIndexes creates required indexes if they don't exist
func EnsureIndexes() error {
	logger := logging.Logger.Named("database")
	logger.Info("ensuring required indexes exist")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := ensureSurgeryRequestIndexes(ctx, logger); err != nil {
		return err
	}
	if err := ensurePatientIndexes(ctx, logger); err != nil {
		return err
	}
	if err := ensureDocumentIndexes(ctx, logger); err != nil {
		return err
	}
	if err := ensureNotificationIndexes(ctx, logger); err != nil {
		return err
	}
	if err := ensurePendencyCompletionIndexes(ctx, logger); err != nil {
		return err
	}

	logger.Info("all required indexes verified")
	return nil
}

// ensureSurgeryRequestIndexes creates the status and lookup indexes for the
// surgery request collection
func ensureSurgeryRequestIndexes(ctx context.Context, logger *logging.SafeLogger) error {
	return createMissingIndexes(ctx, logger, AppConfig.SurgeryRequestCollection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("status_1"),
		},
		{
			Keys:    bson.D{{Key: "paciente_id", Value: 1}},
			Options: options.Index().SetName("paciente_id_1"),
		},
		{
			Keys:    bson.D{{Key: "medico_id", Value: 1}},
			Options: options.Index().SetName("medico_id_1"),
		},
		{
			Keys:    bson.D{{Key: "criado_em", Value: -1}},
			Options: options.Index().SetName("criado_em_1"),
		},
	})
}

// ensurePatientIndexes creates the unique CPF index for patients
func ensurePatientIndexes(ctx context.Context, logger *logging.SafeLogger) error {
	return createMissingIndexes(ctx, logger, AppConfig.PatientCollection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "cpf", Value: 1}},
			Options: options.Index().SetName("cpf_1").SetUnique(true),
		},
	})
}

// ensureDocumentIndexes creates the per-request attachment lookup index
func ensureDocumentIndexes(ctx context.Context, logger *logging.SafeLogger) error {
	return createMissingIndexes(ctx, logger, AppConfig.DocumentCollection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "solicitacao_id", Value: 1}, {Key: "chave", Value: 1}},
			Options: options.Index().SetName("solicitacao_id_1_chave_1"),
		},
	})
}

// ensureNotificationIndexes creates the recipient and unread indexes
func ensureNotificationIndexes(ctx context.Context, logger *logging.SafeLogger) error {
	return createMissingIndexes(ctx, logger, AppConfig.NotificationCollection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "destinatario", Value: 1}, {Key: "lida", Value: 1}},
			Options: options.Index().SetName("destinatario_1_lida_1"),
		},
		{
			Keys:    bson.D{{Key: "criada_em", Value: -1}},
			Options: options.Index().SetName("criada_em_1"),
		},
	})
}

// ensurePendencyCompletionIndexes enforces one manual completion per
// request/pendency pair
func ensurePendencyCompletionIndexes(ctx context.Context, logger *logging.SafeLogger) error {
	return createMissingIndexes(ctx, logger, AppConfig.PendencyCompletionCollection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "solicitacao_id", Value: 1}, {Key: "pendencia_chave", Value: 1}},
			Options: options.Index().SetName("solicitacao_id_1_pendencia_chave_1").SetUnique(true),
		},
	})
}

// createMissingIndexes creates the given indexes that do not exist yet on
// the collection
func createMissingIndexes(ctx context.Context, logger *logging.SafeLogger, collectionName string, indexes []mongo.IndexModel) error {
	collection := MongoDB.Collection(collectionName)

	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		logger.Error("failed to list indexes", zap.String("collection", collectionName), zap.Error(err))
		return err
	}
	defer cursor.Close(ctx)

	existing := make(map[string]bool)
	for cursor.Next(ctx) {
		var index bson.M
		if err := cursor.Decode(&index); err != nil {
			continue
		}
		if name, ok := index["name"].(string); ok {
			existing[name] = true
		}
	}

	created := 0
	for _, model := range indexes {
		name := ""
		if model.Options != nil && model.Options.Name != nil {
			name = *model.Options.Name
		}
		if existing[name] {
			continue
		}
		if _, err := collection.Indexes().CreateOne(ctx, model); err != nil {
			// Another instance may have created it in between
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			logger.Error("failed to create index",
				zap.String("collection", collectionName),
				zap.String("index", name),
				zap.Error(err))
			return err
		}
		created++
	}

	if created > 0 {
		logger.Info("created collection indexes",
			zap.String("collection", collectionName),
			zap.Int("count", created))
	} else {
		logger.Debug("collection indexes already exist",
			zap.String("collection", collectionName))
	}
	return nil
}

// startIndexMaintenance starts a goroutine that periodically ensures
// indexes exist
func startIndexMaintenance() {
	logger := logging.Logger.Named("database")

	go func() {
		ticker := time.NewTicker(AppConfig.IndexMaintenanceInterval)
		defer ticker.Stop()

		for range ticker.C {
			if err := EnsureIndexes(); err != nil {
				logger.Error("periodic index check failed", zap.Error(err))
			}
		}
	}()

	logger.Info("started index maintenance routine",
		zap.Duration("interval", AppConfig.IndexMaintenanceInterval))
}
