package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port        int    `json:"port"`
	Environment string `json:"environment"`

	// MongoDB configuration
	MongoURI      string `json:"mongo_uri"`
	MongoDatabase string `json:"mongo_database"`

	// Redis configuration
	RedisURI      string        `json:"redis_uri"`
	RedisPassword string        `json:"redis_password"`
	RedisDB       int           `json:"redis_db"`
	RedisTTL      time.Duration `json:"redis_ttl"`

	// MinIO object storage configuration
	MinioEndpoint  string `json:"minio_endpoint"`
	MinioAccessKey string `json:"minio_access_key"`
	MinioSecretKey string `json:"minio_secret_key"`
	MinioUseSSL    bool   `json:"minio_use_ssl"`
	MinioBucket    string `json:"minio_bucket"`

	// Collection names
	SurgeryRequestCollection     string `json:"mongo_surgery_request_collection"`
	PatientCollection            string `json:"mongo_patient_collection"`
	HospitalCollection           string `json:"mongo_hospital_collection"`
	HealthPlanCollection         string `json:"mongo_health_plan_collection"`
	ProcedureCollection          string `json:"mongo_procedure_collection"`
	SupplierCollection           string `json:"mongo_supplier_collection"`
	CollaboratorCollection       string `json:"mongo_collaborator_collection"`
	DocumentCollection           string `json:"mongo_document_collection"`
	NotificationCollection       string `json:"mongo_notification_collection"`
	PendencyCompletionCollection string `json:"mongo_pendency_completion_collection"`
	CustomDocumentCollection     string `json:"mongo_custom_document_collection"`

	// Cache TTLs
	ReferenceCacheTTL time.Duration `json:"reference_cache_ttl"`

	// Tracing configuration
	TracingEnabled  bool   `json:"tracing_enabled"`
	TracingEndpoint string `json:"tracing_endpoint"`

	// Index maintenance
	IndexMaintenanceInterval time.Duration `json:"index_maintenance_interval"`

	// Authorization
	AdminGroup string `json:"admin_group"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables
func LoadConfig() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	redisTTL, err := time.ParseDuration(getEnvOrDefault("REDIS_TTL", "60m"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_TTL: %w", err)
	}

	referenceCacheTTL, err := time.ParseDuration(getEnvOrDefault("REFERENCE_CACHE_TTL", "6h"))
	if err != nil {
		return fmt.Errorf("invalid REFERENCE_CACHE_TTL: %w", err)
	}

	indexMaintenanceInterval, err := time.ParseDuration(getEnvOrDefault("INDEX_MAINTENANCE_INTERVAL", "1h"))
	if err != nil {
		return fmt.Errorf("invalid INDEX_MAINTENANCE_INTERVAL: %w", err)
	}

	AppConfig = &Config{
		// Server configuration
		Port:        port,
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),

		// MongoDB configuration
		MongoURI:      getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOrDefault("MONGODB_DATABASE", "cirurgias"),

		// Redis configuration
		RedisURI:      getEnvOrDefault("REDIS_URI", "localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,
		RedisTTL:      redisTTL,

		// MinIO configuration
		MinioEndpoint:  getEnvOrDefault("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getEnvOrDefault("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnvOrDefault("MINIO_SECRET_KEY", ""),
		MinioUseSSL:    getEnvOrDefault("MINIO_USE_SSL", "false") == "true",
		MinioBucket:    getEnvOrDefault("MINIO_BUCKET", "documentos-cirurgias"),

		// Collection names
		SurgeryRequestCollection:     getEnvOrDefault("MONGODB_SURGERY_REQUEST_COLLECTION", "surgery_requests"),
		PatientCollection:            getEnvOrDefault("MONGODB_PATIENT_COLLECTION", "patients"),
		HospitalCollection:           getEnvOrDefault("MONGODB_HOSPITAL_COLLECTION", "hospitals"),
		HealthPlanCollection:         getEnvOrDefault("MONGODB_HEALTH_PLAN_COLLECTION", "health_plans"),
		ProcedureCollection:          getEnvOrDefault("MONGODB_PROCEDURE_COLLECTION", "procedures"),
		SupplierCollection:           getEnvOrDefault("MONGODB_SUPPLIER_COLLECTION", "suppliers"),
		CollaboratorCollection:       getEnvOrDefault("MONGODB_COLLABORATOR_COLLECTION", "collaborators"),
		DocumentCollection:           getEnvOrDefault("MONGODB_DOCUMENT_COLLECTION", "documents"),
		NotificationCollection:       getEnvOrDefault("MONGODB_NOTIFICATION_COLLECTION", "notifications"),
		PendencyCompletionCollection: getEnvOrDefault("MONGODB_PENDENCY_COMPLETION_COLLECTION", "pendency_completions"),
		CustomDocumentCollection:     getEnvOrDefault("MONGODB_CUSTOM_DOCUMENT_COLLECTION", "custom_documents"),

		// Cache TTLs
		ReferenceCacheTTL: referenceCacheTTL,

		// Tracing configuration
		TracingEnabled:  getEnvOrDefault("TRACING_ENABLED", "false") == "true",
		TracingEndpoint: getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),

		// Index maintenance
		IndexMaintenanceInterval: indexMaintenanceInterval,

		// Authorization
		AdminGroup: getEnvOrDefault("ADMIN_GROUP", "cirurgias-admin"),
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
