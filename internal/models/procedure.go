package models

import "time"

// Procedure is a catalog entry of the TUSS procedure table
type Procedure struct {
	TUSSCode  string    `bson:"_id" json:"codigo_tuss"`
	Name      string    `bson:"nome" json:"nome"`
	Active    bool      `bson:"ativo" json:"ativo"`
	CreatedAt time.Time `bson:"criado_em" json:"criado_em"`
	UpdatedAt time.Time `bson:"atualizado_em" json:"atualizado_em"`
}

// CreateProcedureRequest is the payload for creating a catalog procedure
type CreateProcedureRequest struct {
	TUSSCode string `json:"codigo_tuss" binding:"required"`
	Name     string `json:"nome" binding:"required"`
}

// UpdateProcedureRequest is the payload for updating a catalog procedure
type UpdateProcedureRequest struct {
	Name   *string `json:"nome"`
	Active *bool   `json:"ativo"`
}

// ProceduresResponse is the envelope of the procedure catalog listing
type ProceduresResponse struct {
	Procedures []Procedure `json:"procedures"`
}
