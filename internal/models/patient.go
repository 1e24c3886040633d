package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Patient is a person on whose behalf surgery requests are opened
type Patient struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"nome" json:"nome"`
	CPF       string             `bson:"cpf" json:"cpf"`
	BirthDate *time.Time         `bson:"nascimento_data,omitempty" json:"nascimento_data,omitempty"`
	Phone     string             `bson:"telefone,omitempty" json:"telefone,omitempty"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	Address   *Address           `bson:"endereco,omitempty" json:"endereco,omitempty"`
	CreatedAt time.Time          `bson:"criado_em" json:"criado_em"`
	UpdatedAt time.Time          `bson:"atualizado_em" json:"atualizado_em"`
}

// Address is a Brazilian postal address
type Address struct {
	Street       string `bson:"logradouro" json:"logradouro"`
	Number       string `bson:"numero" json:"numero"`
	Complement   string `bson:"complemento,omitempty" json:"complemento,omitempty"`
	Neighborhood string `bson:"bairro" json:"bairro"`
	City         string `bson:"cidade" json:"cidade"`
	State        string `bson:"uf" json:"uf"`
	ZipCode      string `bson:"cep" json:"cep"`
}

// CreatePatientRequest is the payload for creating a patient
type CreatePatientRequest struct {
	Name      string     `json:"nome" binding:"required"`
	CPF       string     `json:"cpf" binding:"required"`
	BirthDate *time.Time `json:"nascimento_data"`
	Phone     string     `json:"telefone"`
	Email     string     `json:"email"`
	Address   *Address   `json:"endereco"`
}

// UpdatePatientRequest is the payload for updating a patient; nil fields
// keep their stored value
type UpdatePatientRequest struct {
	Name      *string    `json:"nome"`
	BirthDate *time.Time `json:"nascimento_data"`
	Phone     *string    `json:"telefone"`
	Email     *string    `json:"email"`
	Address   *Address   `json:"endereco"`
}

// Complete reports whether the patient record satisfies the structured-data
// completeness check of the pendency evaluator
func (p *Patient) Complete() bool {
	return p != nil && p.Name != "" && p.CPF != "" && p.BirthDate != nil
}
