package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Supplier is an OPME vendor that provides quotations
type Supplier struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"nome" json:"nome"`
	CNPJ      string             `bson:"cnpj" json:"cnpj"`
	Phone     string             `bson:"telefone,omitempty" json:"telefone,omitempty"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Active    bool               `bson:"ativo" json:"ativo"`
	CreatedAt time.Time          `bson:"criado_em" json:"criado_em"`
	UpdatedAt time.Time          `bson:"atualizado_em" json:"atualizado_em"`
}

// CreateSupplierRequest is the payload for creating a supplier
type CreateSupplierRequest struct {
	Name  string `json:"nome" binding:"required"`
	CNPJ  string `json:"cnpj" binding:"required"`
	Phone string `json:"telefone"`
	Email string `json:"email"`
}

// UpdateSupplierRequest is the payload for updating a supplier
type UpdateSupplierRequest struct {
	Name   *string `json:"nome"`
	Phone  *string `json:"telefone"`
	Email  *string `json:"email"`
	Active *bool   `json:"ativo"`
}
