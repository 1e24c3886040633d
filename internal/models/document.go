package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document keys the pendency evaluator knows out of the box. Clinics may
// define additional document requirements whose keys are bare numeric ids.
const (
	DocumentKeyMedicalReport  = "document_medical_report"
	DocumentKeyAuthForm       = "document_auth_form"
	DocumentKeyUpdatedReport  = "document_updated_report"
	DocumentKeyBillingInvoice = "document_billing_invoice"
	DocumentKeyHealthPlanCard = "document_health_plan_card"
	DocumentKeyIdentity       = "document_identity"
)

// Document is the stored metadata of an uploaded attachment; the file body
// lives in object storage under StorageKey
type Document struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SurgeryRequestID primitive.ObjectID `bson:"solicitacao_id" json:"solicitacao_id"`
	Key              string             `bson:"chave" json:"chave"`
	FileName         string             `bson:"arquivo_nome" json:"arquivo_nome"`
	ContentType      string             `bson:"content_type" json:"content_type"`
	SizeBytes        int64              `bson:"tamanho_bytes" json:"tamanho_bytes"`
	StorageKey       string             `bson:"storage_key" json:"-"`
	UploadedBy       string             `bson:"enviado_por" json:"enviado_por"`
	UploadedAt       time.Time          `bson:"enviado_em" json:"enviado_em"`
}

// DocumentsResponse is the envelope of a request's attachment listing
type DocumentsResponse struct {
	Documents []Document `json:"documents"`
}

// CustomDocumentRequirement is a clinic-defined document requirement. Its
// numeric id doubles as the pendency key, matched by the numeric-key naming
// convention of the presenter's action resolver.
type CustomDocumentRequirement struct {
	NumericID     int       `bson:"_id" json:"id"`
	Name          string    `bson:"nome" json:"nome"`
	Description   string    `bson:"descricao,omitempty" json:"descricao,omitempty"`
	StatusContext Status    `bson:"status_contexto" json:"status_contexto"`
	Optional      bool      `bson:"opcional" json:"opcional"`
	Active        bool      `bson:"ativo" json:"ativo"`
	CreatedAt     time.Time `bson:"criado_em" json:"criado_em"`
}

// CreateCustomDocumentRequest is the payload for defining a clinic
// document requirement
type CreateCustomDocumentRequest struct {
	Name          string `json:"nome" binding:"required"`
	Description   string `json:"descricao"`
	StatusContext int    `json:"status_contexto" binding:"required"`
	Optional      bool   `json:"opcional"`
}

// UpdateCustomDocumentRequest is the payload for updating a clinic
// document requirement
type UpdateCustomDocumentRequest struct {
	Name        *string `json:"nome"`
	Description *string `json:"descricao"`
	Optional    *bool   `json:"opcional"`
	Active      *bool   `json:"ativo"`
}
