package services

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/medsimples/app-cirurgias/internal/config"
	"github.com/medsimples/app-cirurgias/internal/logging"
	"github.com/medsimples/app-cirurgias/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// setupIntegration spins up MongoDB and Redis containers and points the
// global config at them. These tests are opt-in: set INTEGRATION_TESTS to
// run them.
func setupIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("INTEGRATION_TESTS") == "" {
		t.Skip("set INTEGRATION_TESTS to run container-backed tests")
	}

	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	testcontainers.CleanupContainer(t, mongoContainer)
	require.NoError(t, err)
	mongoURI, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	redisContainer, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, redisContainer)
	require.NoError(t, err)
	redisURI, err := redisContainer.ConnectionString(ctx)
	require.NoError(t, err)

	t.Setenv("MONGODB_URI", mongoURI)
	t.Setenv("MONGODB_DATABASE", "cirurgias_test")
	t.Setenv("REDIS_URI", strings.TrimPrefix(redisURI, "redis://"))

	require.NoError(t, logging.InitLogger())
	require.NoError(t, config.LoadConfig())
	config.InitMongoDB()
	config.InitRedis()
}

// seedReferences creates the patient, doctor and hospital a request needs
func seedReferences(t *testing.T, ctx context.Context) (patientID, doctorID, hospitalID string) {
	t.Helper()
	logger := logging.Logger

	birth := time.Date(1975, 6, 1, 0, 0, 0, 0, time.UTC)
	patient, err := NewPatientService(logger).Create(ctx, &models.CreatePatientRequest{
		Name:      "João Álvares",
		CPF:       "529.982.247-25",
		BirthDate: &birth,
		Phone:     "(21) 98765-4321",
	})
	require.NoError(t, err)

	doctor, err := NewCollaboratorService(logger).Create(ctx, &models.CreateCollaboratorRequest{
		Name:  "Dra. Maria Conceição",
		Role:  models.RoleDoctor,
		CRM:   "52-123456",
		Email: "maria@clinica.example",
	})
	require.NoError(t, err)

	hospital, err := NewHospitalService(logger).Create(ctx, &models.CreateHospitalRequest{
		Name: "Hospital São Lucas",
		CNPJ: "11.222.333/0001-81",
	})
	require.NoError(t, err)

	return patient.ID.Hex(), doctor.ID.Hex(), hospital.ID.Hex()
}

// attachDocument records document metadata directly, standing in for an
// upload so the test does not need object storage
func attachDocument(t *testing.T, ctx context.Context, request *models.SurgeryRequest, key string) {
	t.Helper()
	collection := config.MongoDB.Collection(config.AppConfig.DocumentCollection)
	_, err := collection.InsertOne(ctx, models.Document{
		SurgeryRequestID: request.ID,
		Key:              key,
		FileName:         key + ".pdf",
		ContentType:      "application/pdf",
		SizeBytes:        1024,
		StorageKey:       "test/" + key,
		UploadedBy:       "teste@clinica.example",
		UploadedAt:       time.Now(),
	})
	require.NoError(t, err)
	invalidateRequestCache(ctx, logging.Logger, request.ID.Hex())
}

func TestRequestLifecycleIntegration(t *testing.T) {
	setupIntegration(t)
	ctx := context.Background()
	logger := logging.Logger
	patientID, doctorID, hospitalID := seedReferences(t, ctx)

	requests := NewSurgeryRequestService(logger)
	pendencies := NewPendencyService(logger)
	transitions := NewTransitionService(logger)
	actor := "secretaria@clinica.example"

	request, err := requests.CreateSimple(ctx, &models.CreateSimpleRequest{
		PatientID:  patientID,
		DoctorID:   doctorID,
		HospitalID: hospitalID,
	}, actor)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendente, request.Status)
	assert.Equal(t, "João Álvares", request.PatientName)
	id := request.ID.Hex()

	// fresh request cannot advance yet
	result, err := pendencies.Validate(ctx, id)
	require.NoError(t, err)
	assert.False(t, result.CanAdvance)
	assert.Greater(t, result.PendingCount, 0)

	// the refreshed counter is visible on the next read, cached or not
	refreshed, err := requests.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, result.PendingCount, refreshed.PendenciesCount)

	// manual completion before the data pendencies resolves the rule but
	// does not transition
	complete, err := pendencies.Complete(ctx, id, "patient_contact", actor)
	require.NoError(t, err)
	assert.False(t, complete.Transitioned)

	_, err = requests.Update(ctx, id, &models.UpdateSurgeryRequest{
		Procedures: []models.ProcedureItem{{TUSSCode: "30715016", Name: "Artroplastia total de quadril", Quantity: 1}},
	})
	require.NoError(t, err)
	attachDocument(t, ctx, request, models.DocumentKeyMedicalReport)

	// repeating the completion is idempotent and, with everything else in
	// place, submits the request forward
	complete, err = pendencies.Complete(ctx, id, "patient_contact", actor)
	require.NoError(t, err)
	require.True(t, complete.Transitioned)
	require.NotNil(t, complete.NewStatus)
	assert.Equal(t, models.StatusEnviada, *complete.NewStatus)

	// the doctor hears about the move
	unread, err := NewNotificationService(logger).UnreadCount(ctx, doctorID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, unread, int64(1))

	// forward transition stays gated until the submission pendencies are met
	_, unmet, err := transitions.Transition(ctx, id, actor, models.StatusEmAnalise)
	require.ErrorIs(t, err, models.ErrPendenciesNotSatisfied)
	assert.NotEmpty(t, unmet)

	plan, err := NewHealthPlanService(logger).Create(ctx, &models.CreateHealthPlanRequest{
		Name:        "Saúde Total",
		ANSRegistry: "123456",
	})
	require.NoError(t, err)
	planID := plan.ID.Hex()
	card := "9876543210"
	_, err = requests.Update(ctx, id, &models.UpdateSurgeryRequest{
		HealthPlanID:     &planID,
		HealthPlanCardID: &card,
	})
	require.NoError(t, err)
	attachDocument(t, ctx, request, models.DocumentKeyAuthForm)

	updated, unmet, err := transitions.Transition(ctx, id, actor, models.StatusEmAnalise)
	require.NoError(t, err)
	assert.Empty(t, unmet)
	assert.Equal(t, models.StatusEmAnalise, updated.Status)

	// deny demands a reason, then parks the request in reanalysis
	_, err = transitions.Deny(ctx, id, actor, "")
	require.ErrorIs(t, err, models.ErrDenyReasonRequired)

	denied, err := transitions.Deny(ctx, id, actor, "Laudo incompleto")
	require.NoError(t, err)
	assert.Equal(t, models.StatusEmReanalise, denied.Status)
	assert.Equal(t, "Laudo incompleto", denied.ContestReason)
	assert.GreaterOrEqual(t, len(denied.History), 3)

	// cancellation skips the pendency gate entirely
	cancelled, unmet, err := transitions.Transition(ctx, id, actor, models.StatusCancelada)
	require.NoError(t, err)
	assert.Empty(t, unmet)
	assert.Equal(t, models.StatusCancelada, cancelled.Status)
}

func TestBoardIntegration(t *testing.T) {
	setupIntegration(t)
	ctx := context.Background()
	logger := logging.Logger
	patientID, doctorID, hospitalID := seedReferences(t, ctx)

	requests := NewSurgeryRequestService(logger)
	for i := 0; i < 3; i++ {
		_, err := requests.CreateSimple(ctx, &models.CreateSimpleRequest{
			PatientID:  patientID,
			DoctorID:   doctorID,
			HospitalID: hospitalID,
		}, "secretaria@clinica.example")
		require.NoError(t, err)
	}

	board, err := NewBoardService(logger).Build(ctx, "")
	require.NoError(t, err)
	require.Len(t, board.Columns, len(models.AllStatuses))
	assert.Len(t, board.Columns[0].Cards, 3)

	// accent and case insensitive search over the denormalized names
	filtered, err := NewBoardService(logger).Build(ctx, "joao")
	require.NoError(t, err)
	assert.Len(t, filtered.Columns[0].Cards, 3)

	empty, err := NewBoardService(logger).Build(ctx, "ninguém")
	require.NoError(t, err)
	assert.Empty(t, empty.Columns[0].Cards)
}
