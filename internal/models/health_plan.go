package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HealthPlan is a health insurance operator that authorizes procedures
type HealthPlan struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"nome" json:"nome"`
	ANSRegistry string             `bson:"registro_ans" json:"registro_ans"`
	Phone       string             `bson:"telefone,omitempty" json:"telefone,omitempty"`
	PortalURL   string             `bson:"portal_url,omitempty" json:"portal_url,omitempty"`
	Active      bool               `bson:"ativo" json:"ativo"`
	CreatedAt   time.Time          `bson:"criado_em" json:"criado_em"`
	UpdatedAt   time.Time          `bson:"atualizado_em" json:"atualizado_em"`
}

// CreateHealthPlanRequest is the payload for creating a health plan
type CreateHealthPlanRequest struct {
	Name        string `json:"nome" binding:"required"`
	ANSRegistry string `json:"registro_ans" binding:"required"`
	Phone       string `json:"telefone"`
	PortalURL   string `json:"portal_url"`
}

// UpdateHealthPlanRequest is the payload for updating a health plan
type UpdateHealthPlanRequest struct {
	Name      *string `json:"nome"`
	Phone     *string `json:"telefone"`
	PortalURL *string `json:"portal_url"`
	Active    *bool   `json:"ativo"`
}
