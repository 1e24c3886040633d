package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is a user-facing event record created as a side effect of
// status transitions and denials
type Notification struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Recipient        string              `bson:"destinatario" json:"destinatario"`
	SurgeryRequestID *primitive.ObjectID `bson:"solicitacao_id,omitempty" json:"solicitacao_id,omitempty"`
	Title            string              `bson:"titulo" json:"titulo"`
	Message          string              `bson:"mensagem" json:"mensagem"`
	Read             bool                `bson:"lida" json:"lida"`
	CreatedAt        time.Time           `bson:"criada_em" json:"criada_em"`
}

// NotificationsResponse is the envelope of the notification listing
type NotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
}

// UnreadCountResponse answers the periodic unread poll of the dashboard
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
