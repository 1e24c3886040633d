package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/medsimples/app-cirurgias/internal/config"
	"github.com/medsimples/app-cirurgias/internal/logging"
	"github.com/medsimples/app-cirurgias/internal/models"
	"github.com/medsimples/app-cirurgias/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// BoardService assembles the kanban view: one column per status, every
// column present even when empty, cards in creation order.
type BoardService struct {
	logger *logging.SafeLogger
}

// NewBoardService creates a new board service
func NewBoardService(logger *logging.SafeLogger) *BoardService {
	return &BoardService{logger: logger}
}

// Build partitions all requests into status columns. A non-empty search
// term filters cards by patient, doctor or procedure name, accent and
// case insensitive; the set of columns never changes.
func (s *BoardService) Build(ctx context.Context, search string) (*models.Board, error) {
	collection := config.MongoDB.Collection(config.AppConfig.SurgeryRequestCollection)
	opts := options.Find().SetSort(bson.D{{Key: "criado_em", Value: 1}})
	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load board: %w", err)
	}
	var requests []models.SurgeryRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode board: %w", err)
	}

	return s.partition(requests, search), nil
}

// partition assigns each request to the column of its status. Requests
// with a status outside the known ten are skipped, never dropped columns.
func (s *BoardService) partition(requests []models.SurgeryRequest, search string) *models.Board {
	// A blank term means no filter at all
	search = strings.TrimSpace(search)
	columns := make(map[models.Status]*models.KanbanColumn, len(models.AllStatuses))
	board := &models.Board{Columns: make([]models.KanbanColumn, 0, len(models.AllStatuses))}
	for _, status := range models.AllStatuses {
		board.Columns = append(board.Columns, models.KanbanColumn{
			Status: status,
			Label:  status.String(),
			Cards:  []models.SurgeryRequest{},
		})
		columns[status] = &board.Columns[len(board.Columns)-1]
	}

	for _, request := range requests {
		column, known := columns[request.Status]
		if !known {
			// Corrupt data must not break the board, only hide the card
			s.logger.Warn("request with unknown status skipped",
				zap.String("request_id", request.ID.Hex()),
				zap.Int("status", int(request.Status)))
			continue
		}
		if search != "" && !matchesSearch(&request, search) {
			continue
		}
		column.Cards = append(column.Cards, request)
	}

	return board
}

// matchesSearch checks the card's patient, doctor and procedure names
func matchesSearch(request *models.SurgeryRequest, term string) bool {
	if utils.ContainsNormalized(request.PatientName, term) {
		return true
	}
	if utils.ContainsNormalized(request.DoctorName, term) {
		return true
	}
	for _, procedure := range request.Procedures {
		if utils.ContainsNormalized(procedure.Name, term) {
			return true
		}
	}
	return false
}
