package services

import (
	"testing"
	"time"

	"github.com/medsimples/app-cirurgias/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newContext(status models.Status) *RequestContext {
	return &RequestContext{
		Request: &models.SurgeryRequest{
			ID:         primitive.NewObjectID(),
			Status:     status,
			PatientID:  primitive.NewObjectID(),
			DoctorID:   primitive.NewObjectID(),
			HospitalID: primitive.NewObjectID(),
		},
		DocumentKeys: map[string]bool{},
		Completions:  map[string]bool{},
	}
}

func completePatient() *models.Patient {
	birth := time.Date(1980, 3, 14, 0, 0, 0, 0, time.UTC)
	return &models.Patient{
		Name:      "João Álvares",
		CPF:       "52998224725",
		BirthDate: &birth,
	}
}

func TestEvaluatePendenteAllIncomplete(t *testing.T) {
	rc := newContext(models.StatusPendente)
	rc.Request.DoctorID = primitive.NilObjectID
	rc.Request.HospitalID = primitive.NilObjectID

	result := EvaluatePendencies(rc)

	assert.Equal(t, models.StatusPendente, result.CurrentStatus)
	assert.Equal(t, 6, result.TotalCount)
	assert.Equal(t, 6, result.PendingCount)
	assert.Equal(t, 0, result.CompletedCount)
	assert.False(t, result.CanAdvance)
	require.NotNil(t, result.NextStatus)
	assert.Equal(t, models.StatusEnviada, *result.NextStatus)
}

func TestEvaluatePendenteProgressesToCanAdvance(t *testing.T) {
	rc := newContext(models.StatusPendente)
	rc.Patient = completePatient()
	rc.Request.Procedures = []models.ProcedureItem{{TUSSCode: "31309054", Name: "Colecistectomia", Quantity: 1}}
	rc.DocumentKeys[models.DocumentKeyMedicalReport] = true

	// one manual pendency still open
	result := EvaluatePendencies(rc)
	assert.Equal(t, 1, result.PendingCount)
	assert.Equal(t, 5, result.CompletedCount)
	assert.False(t, result.CanAdvance)

	rc.Completions["patient_contact"] = true
	result = EvaluatePendencies(rc)
	assert.Equal(t, 0, result.PendingCount)
	assert.Equal(t, 6, result.CompletedCount)
	assert.True(t, result.CanAdvance)
}

func TestEvaluateWaitingExcludedFromBothCounts(t *testing.T) {
	rc := newContext(models.StatusEnviada)
	rc.Request.HealthPlanID = &rc.Request.PatientID
	rc.Request.HealthPlanCardID = "123456"
	rc.DocumentKeys[models.DocumentKeyAuthForm] = true

	result := EvaluatePendencies(rc)

	assert.Equal(t, 3, result.TotalCount)
	assert.Equal(t, 2, result.CompletedCount)
	assert.Equal(t, 0, result.PendingCount)
	assert.Equal(t, 1, result.WaitingCount)
	// waiting markers do not block advancing
	assert.True(t, result.CanAdvance)

	badge := result.Badge()
	assert.Equal(t, "✓", badge.Text)
	assert.Equal(t, models.BadgeWaiting, badge.State)
}

func TestEvaluateOptionalIncompleteNotPending(t *testing.T) {
	rc := newContext(models.StatusEmAnalise)

	result := EvaluatePendencies(rc)

	// one waiting rule plus two optional documents, none attached
	assert.Equal(t, 3, result.TotalCount)
	assert.Equal(t, 0, result.PendingCount)
	assert.Equal(t, 0, result.CompletedCount)
	assert.Equal(t, 1, result.WaitingCount)
	assert.True(t, result.CanAdvance)

	for _, p := range result.Pendencies {
		if p.IsOptional {
			assert.Equal(t, models.DisplayOptionalIncomplete, p.DisplayState())
		}
	}
}

func TestEvaluateOPMEQuotations(t *testing.T) {
	rc := newContext(models.StatusAutorizada)
	rc.Request.AuthorizationNumber = "AUT-2024-001"
	date := time.Now().AddDate(0, 1, 0)
	rc.Request.SurgeryDate = &date
	rc.Request.OPMEItems = []models.OPMEItem{
		{Description: "Prótese de quadril", Quantity: 1, Quotations: []models.Quotation{{PriceCents: 1500000}}},
		{Description: "Parafuso canulado", Quantity: 4},
	}

	result := EvaluatePendencies(rc)
	assert.Equal(t, 1, result.PendingCount)
	assert.False(t, result.CanAdvance)

	rc.Request.OPMEItems[1].Quotations = []models.Quotation{{PriceCents: 80000}}
	result = EvaluatePendencies(rc)
	assert.Equal(t, 0, result.PendingCount)
	assert.True(t, result.CanAdvance)
}

func TestEvaluateNoOPMEItemsIsVacuouslyComplete(t *testing.T) {
	rc := newContext(models.StatusAutorizada)
	rc.Request.AuthorizationNumber = "AUT-2024-002"
	date := time.Now().AddDate(0, 2, 0)
	rc.Request.SurgeryDate = &date

	result := EvaluatePendencies(rc)
	assert.True(t, result.CanAdvance)
}

func TestEvaluateManualCompletionRecorded(t *testing.T) {
	rc := newContext(models.StatusFaturada)

	result := EvaluatePendencies(rc)
	assert.Equal(t, 1, result.PendingCount)
	assert.False(t, result.CanAdvance)

	rc.Completions["payment_confirmation"] = true
	result = EvaluatePendencies(rc)
	assert.Equal(t, 0, result.PendingCount)
	assert.True(t, result.CanAdvance)
	require.NotNil(t, result.NextStatus)
	assert.Equal(t, models.StatusFinalizada, *result.NextStatus)
}

func TestEvaluateTerminalStatusesNeverAdvance(t *testing.T) {
	for _, status := range []models.Status{models.StatusFinalizada, models.StatusCancelada} {
		rc := newContext(status)
		result := EvaluatePendencies(rc)
		assert.Equal(t, 0, result.TotalCount, status.String())
		assert.False(t, result.CanAdvance, status.String())
		assert.Nil(t, result.NextStatus, status.String())
	}
}

func TestEvaluateCustomRequirements(t *testing.T) {
	rc := newContext(models.StatusEnviada)
	rc.Request.HealthPlanID = &rc.Request.PatientID
	rc.Request.HealthPlanCardID = "987654"
	rc.DocumentKeys[models.DocumentKeyAuthForm] = true
	rc.CustomRequirements = []models.CustomDocumentRequirement{
		{NumericID: 7, Name: "Termo de consentimento", StatusContext: models.StatusEnviada, Active: true},
		{NumericID: 8, Name: "Exigência desativada", StatusContext: models.StatusEnviada, Active: false},
		{NumericID: 9, Name: "Outro status", StatusContext: models.StatusAgendada, Active: true},
	}

	result := EvaluatePendencies(rc)

	// only the active requirement of this status participates
	assert.Equal(t, 4, result.TotalCount)
	assert.Equal(t, 1, result.PendingCount)
	assert.False(t, result.CanAdvance)

	rc.DocumentKeys["7"] = true
	result = EvaluatePendencies(rc)
	assert.Equal(t, 0, result.PendingCount)
	assert.True(t, result.CanAdvance)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	rc := newContext(models.StatusPendente)
	rc.Patient = completePatient()
	rc.DocumentKeys[models.DocumentKeyMedicalReport] = true

	first := EvaluatePendencies(rc)
	second := EvaluatePendencies(rc)
	assert.Equal(t, first, second)
}

func TestAutoAdvanceTargetsAreValidEdges(t *testing.T) {
	for from, to := range autoAdvanceTargets {
		assert.True(t, from.CanTransitionTo(to), "%s -> %s", from, to)
	}
	// statuses leaving through explicit operator actions never auto-advance
	_, ok := autoAdvanceTargets[models.StatusEmAnalise]
	assert.False(t, ok)
	_, ok = autoAdvanceTargets[models.StatusAutorizada]
	assert.False(t, ok)
}

func TestEveryRuleKeyResolvesOrIsWaiting(t *testing.T) {
	for status, rules := range pendencyRules {
		for _, rule := range rules {
			if rule.Waiting {
				continue
			}
			assert.NotNil(t, models.ResolveAction(rule.Key),
				"rule %s of %s has no action", rule.Key, status)
		}
	}
}
