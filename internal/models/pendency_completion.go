package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PendencyCompletion is the persisted record of a manual completion, the
// only pendency state stored directly: every other check is recomputed
// from request data on each validate call.
type PendencyCompletion struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SurgeryRequestID primitive.ObjectID `bson:"solicitacao_id" json:"solicitacao_id"`
	PendencyKey      string             `bson:"pendencia_chave" json:"pendencia_chave"`
	StatusContext    Status             `bson:"status_contexto" json:"status_contexto"`
	CompletedBy      string             `bson:"concluida_por" json:"concluida_por"`
	CompletedAt      time.Time          `bson:"concluida_em" json:"concluida_em"`
}
