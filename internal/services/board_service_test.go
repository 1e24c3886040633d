package services

import (
	"testing"

	"github.com/medsimples/app-cirurgias/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMatchesSearch(t *testing.T) {
	request := &models.SurgeryRequest{
		PatientName: "João Álvares",
		DoctorName:  "Dra. Maria Conceição",
		Procedures: []models.ProcedureItem{
			{TUSSCode: "31005497", Name: "Artroplastia de quadril", Quantity: 1},
		},
	}

	assert.True(t, matchesSearch(request, "joao"))
	assert.True(t, matchesSearch(request, "conceicao"))
	assert.True(t, matchesSearch(request, "ARTROPLASTIA"))
	assert.True(t, matchesSearch(request, "quadril"))
	assert.False(t, matchesSearch(request, "pedro"))
	assert.False(t, matchesSearch(request, "colecistectomia"))
}

func boardRequest(status models.Status, patient string) models.SurgeryRequest {
	return models.SurgeryRequest{
		ID:          primitive.NewObjectID(),
		Status:      status,
		PatientName: patient,
	}
}

func TestPartitionPlacesEveryKnownRequestExactlyOnce(t *testing.T) {
	service := NewBoardService(nil)
	requests := []models.SurgeryRequest{
		boardRequest(models.StatusPendente, "João Álvares"),
		boardRequest(models.StatusPendente, "Maria Souza"),
		boardRequest(models.StatusEmAnalise, "Pedro Lima"),
		boardRequest(models.StatusAutorizada, "Ana Castro"),
		boardRequest(models.StatusCancelada, "Rui Prado"),
	}

	board := service.partition(requests, "")

	require.Len(t, board.Columns, len(models.AllStatuses))
	seen := map[primitive.ObjectID]int{}
	total := 0
	for i, column := range board.Columns {
		assert.Equal(t, models.AllStatuses[i], column.Status)
		for _, card := range column.Cards {
			assert.Equal(t, column.Status, card.Status)
			seen[card.ID]++
			total++
		}
	}
	assert.Equal(t, len(requests), total)
	for _, request := range requests {
		assert.Equal(t, 1, seen[request.ID])
	}
}

func TestPartitionAlwaysRendersAllColumns(t *testing.T) {
	board := NewBoardService(nil).partition(nil, "")

	require.Len(t, board.Columns, len(models.AllStatuses))
	for _, column := range board.Columns {
		assert.NotNil(t, column.Cards)
		assert.Empty(t, column.Cards)
		assert.Equal(t, column.Status.String(), column.Label)
	}
}

func TestPartitionSkipsUnknownStatus(t *testing.T) {
	requests := []models.SurgeryRequest{
		boardRequest(models.StatusPendente, "João Álvares"),
		boardRequest(models.Status(99), "Corrompida"),
	}

	board := NewBoardService(nil).partition(requests, "")

	total := 0
	for _, column := range board.Columns {
		total += len(column.Cards)
	}
	assert.Equal(t, 1, total)
}

func TestPartitionWhitespaceSearchFiltersNothing(t *testing.T) {
	service := NewBoardService(nil)
	requests := []models.SurgeryRequest{
		boardRequest(models.StatusPendente, "João Álvares"),
		boardRequest(models.StatusEnviada, "Maria Souza"),
	}

	for _, term := range []string{"", " ", "   ", "\t", " \t "} {
		board := service.partition(requests, term)
		total := 0
		for _, column := range board.Columns {
			total += len(column.Cards)
		}
		assert.Equal(t, len(requests), total, "term %q", term)
	}
}

func TestPartitionSearchIsIdempotent(t *testing.T) {
	service := NewBoardService(nil)
	requests := []models.SurgeryRequest{
		boardRequest(models.StatusPendente, "João Álvares"),
		boardRequest(models.StatusEnviada, "Joana Prado"),
		boardRequest(models.StatusEmAnalise, "Carlos Dias"),
	}

	once := service.partition(requests, "joa")
	var surviving []models.SurgeryRequest
	for _, column := range once.Columns {
		surviving = append(surviving, column.Cards...)
	}
	twice := service.partition(surviving, "joa")

	onceTotal, twiceTotal := 0, 0
	for i := range once.Columns {
		onceTotal += len(once.Columns[i].Cards)
		twiceTotal += len(twice.Columns[i].Cards)
	}
	assert.Equal(t, 2, onceTotal)
	assert.Equal(t, onceTotal, twiceTotal)
}
