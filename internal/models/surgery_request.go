package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Priority is the ordinal urgency of a request, used only for display
type Priority int

const (
	PriorityBaixa   Priority = 1
	PriorityMedia   Priority = 2
	PriorityAlta    Priority = 3
	PriorityUrgente Priority = 4
)

var priorityLabels = map[Priority]string{
	PriorityBaixa:   "Baixa",
	PriorityMedia:   "Média",
	PriorityAlta:    "Alta",
	PriorityUrgente: "Urgente",
}

// Label returns the display label of the priority, empty when unknown
func (p Priority) Label() string {
	return priorityLabels[p]
}

// ProcedureItem is a TUSS-coded procedure attached to a request
type ProcedureItem struct {
	TUSSCode string `bson:"codigo_tuss" json:"codigo_tuss"`
	Name     string `bson:"nome" json:"nome"`
	Quantity int    `bson:"quantidade" json:"quantidade"`
}

// OPMEItem is an orthosis/prosthesis/special-material line with its
// supplier quotations
type OPMEItem struct {
	Description string      `bson:"descricao" json:"descricao"`
	Quantity    int         `bson:"quantidade" json:"quantidade"`
	Quotations  []Quotation `bson:"cotacoes,omitempty" json:"cotacoes,omitempty"`
}

// Quotation is a supplier price quote for an OPME item
type Quotation struct {
	SupplierID   primitive.ObjectID `bson:"fornecedor_id" json:"fornecedor_id"`
	SupplierName string             `bson:"fornecedor_nome" json:"fornecedor_nome"`
	PriceCents   int64              `bson:"preco_centavos" json:"preco_centavos"`
	QuotedAt     time.Time          `bson:"cotado_em" json:"cotado_em"`
}

// StatusChange is one entry of the request's audit trail
type StatusChange struct {
	From      Status    `bson:"de" json:"de"`
	To        Status    `bson:"para" json:"para"`
	Actor     string    `bson:"autor" json:"autor"`
	Reason    string    `bson:"motivo,omitempty" json:"motivo,omitempty"`
	Direct    bool      `bson:"direto,omitempty" json:"direto,omitempty"`
	Timestamp time.Time `bson:"data" json:"data"`
}

// SurgeryRequest is an authorization request for a surgical procedure.
// The status field is mutated exclusively through the transition service;
// requests are never deleted.
type SurgeryRequest struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Status   Status             `bson:"status" json:"status"`
	Priority Priority           `bson:"prioridade,omitempty" json:"prioridade,omitempty"`

	PatientID   primitive.ObjectID `bson:"paciente_id" json:"paciente_id"`
	PatientName string             `bson:"paciente_nome" json:"paciente_nome"`
	DoctorID    primitive.ObjectID `bson:"medico_id" json:"medico_id"`
	DoctorName  string             `bson:"medico_nome" json:"medico_nome"`
	HospitalID  primitive.ObjectID `bson:"hospital_id" json:"hospital_id"`

	HealthPlanID        *primitive.ObjectID `bson:"convenio_id,omitempty" json:"convenio_id,omitempty"`
	HealthPlanCardID    string              `bson:"convenio_carteirinha,omitempty" json:"convenio_carteirinha,omitempty"`
	AuthorizationNumber string              `bson:"numero_autorizacao,omitempty" json:"numero_autorizacao,omitempty"`
	ContestReason       string              `bson:"motivo_contestacao,omitempty" json:"motivo_contestacao,omitempty"`
	SurgeryDate         *time.Time          `bson:"data_cirurgia,omitempty" json:"data_cirurgia,omitempty"`
	InvoiceNumber       string              `bson:"numero_fatura,omitempty" json:"numero_fatura,omitempty"`

	Procedures []ProcedureItem `bson:"procedimentos,omitempty" json:"procedimentos,omitempty"`
	OPMEItems  []OPMEItem      `bson:"itens_opme,omitempty" json:"itens_opme,omitempty"`
	History    []StatusChange  `bson:"historico,omitempty" json:"historico,omitempty"`

	// Display-only derived counters, refreshed on write paths
	PendenciesCount  int `bson:"qtd_pendencias" json:"qtd_pendencias"`
	MessagesCount    int `bson:"qtd_mensagens" json:"qtd_mensagens"`
	AttachmentsCount int `bson:"qtd_anexos" json:"qtd_anexos"`

	CreatedAt time.Time `bson:"criado_em" json:"criado_em"`
	UpdatedAt time.Time `bson:"atualizado_em" json:"atualizado_em"`
}

// SurgeryRequestList is the envelope returned by the list endpoint
type SurgeryRequestList struct {
	Records []SurgeryRequest `json:"records"`
}

// CreateSimpleRequest is the payload for the reduced creation flow
type CreateSimpleRequest struct {
	PatientID  string   `json:"paciente_id" binding:"required"`
	DoctorID   string   `json:"medico_id" binding:"required"`
	HospitalID string   `json:"hospital_id" binding:"required"`
	Priority   Priority `json:"prioridade"`
}

// CreateFullRequest is the payload for the complete creation flow
type CreateFullRequest struct {
	CreateSimpleRequest
	HealthPlanID     string          `json:"convenio_id"`
	HealthPlanCardID string          `json:"convenio_carteirinha"`
	Procedures       []ProcedureItem `json:"procedimentos"`
	OPMEItems        []OPMEItem      `json:"itens_opme"`
}

// UpdateSurgeryRequest is the partial-update payload for request details;
// nil fields keep their stored value. Status is not here: it only moves
// through the transition endpoints.
type UpdateSurgeryRequest struct {
	Priority            *Priority       `json:"prioridade"`
	HealthPlanID        *string         `json:"convenio_id"`
	HealthPlanCardID    *string         `json:"convenio_carteirinha"`
	AuthorizationNumber *string         `json:"numero_autorizacao"`
	SurgeryDate         *time.Time      `json:"data_cirurgia"`
	InvoiceNumber       *string         `json:"numero_fatura"`
	Procedures          []ProcedureItem `json:"procedimentos"`
	OPMEItems           []OPMEItem      `json:"itens_opme"`
}

// AddQuotationRequest attaches a supplier quote to one OPME line
type AddQuotationRequest struct {
	ItemIndex  int    `json:"item_index"`
	SupplierID string `json:"fornecedor_id" binding:"required"`
	PriceCents int64  `json:"preco_centavos" binding:"required"`
}

// TransitionRequest is the payload of the generic transition endpoint
type TransitionRequest struct {
	NewStatus int `json:"new_status" binding:"required"`
}

// DenyRequest carries the mandatory contest reason of a denial
type DenyRequest struct {
	ContestReason string `json:"contest_reason" binding:"required"`
}

// SetStatusRequest is the payload of the legacy direct status set
type SetStatusRequest struct {
	Status int `json:"status" binding:"required"`
}
