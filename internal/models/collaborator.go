package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CollaboratorRole distinguishes doctors from administrative staff
type CollaboratorRole string

const (
	RoleDoctor CollaboratorRole = "medico"
	RoleStaff  CollaboratorRole = "secretaria"
	RoleAdmin  CollaboratorRole = "administrador"
)

// Collaborator is a clinic member: a doctor or an administrative user
type Collaborator struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"nome" json:"nome"`
	Role      CollaboratorRole   `bson:"funcao" json:"funcao"`
	CRM       string             `bson:"crm,omitempty" json:"crm,omitempty"`
	Phone     string             `bson:"telefone,omitempty" json:"telefone,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Active    bool               `bson:"ativo" json:"ativo"`
	CreatedAt time.Time          `bson:"criado_em" json:"criado_em"`
	UpdatedAt time.Time          `bson:"atualizado_em" json:"atualizado_em"`
}

// CreateCollaboratorRequest is the payload for creating a collaborator
type CreateCollaboratorRequest struct {
	Name  string           `json:"nome" binding:"required"`
	Role  CollaboratorRole `json:"funcao" binding:"required"`
	CRM   string           `json:"crm"`
	Phone string           `json:"telefone"`
	Email string           `json:"email" binding:"required"`
}

// UpdateCollaboratorRequest is the payload for updating a collaborator
type UpdateCollaboratorRequest struct {
	Name   *string `json:"nome"`
	CRM    *string `json:"crm"`
	Phone  *string `json:"telefone"`
	Email  *string `json:"email"`
	Active *bool   `json:"ativo"`
}
