package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hospital is a care facility where requested procedures take place
type Hospital struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"nome" json:"nome"`
	CNPJ      string             `bson:"cnpj" json:"cnpj"`
	Phone     string             `bson:"telefone,omitempty" json:"telefone,omitempty"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Address   *Address           `bson:"endereco,omitempty" json:"endereco,omitempty"`
	Active    bool               `bson:"ativo" json:"ativo"`
	CreatedAt time.Time          `bson:"criado_em" json:"criado_em"`
	UpdatedAt time.Time          `bson:"atualizado_em" json:"atualizado_em"`
}

// CreateHospitalRequest is the payload for creating a hospital
type CreateHospitalRequest struct {
	Name    string   `json:"nome" binding:"required"`
	CNPJ    string   `json:"cnpj" binding:"required"`
	Phone   string   `json:"telefone"`
	Email   string   `json:"email"`
	Address *Address `json:"endereco"`
}

// UpdateHospitalRequest is the payload for updating a hospital
type UpdateHospitalRequest struct {
	Name    *string  `json:"nome"`
	Phone   *string  `json:"telefone"`
	Email   *string  `json:"email"`
	Address *Address `json:"endereco"`
	Active  *bool    `json:"ativo"`
}
