package models

import "errors"

// Error constants for surgery request operations
var (
	ErrRequestNotFound        = errors.New("surgery request not found")
	ErrUnknownStatus          = errors.New("unknown status value")
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrPendenciesNotSatisfied = errors.New("required pendencies not satisfied")
	ErrDenyReasonRequired     = errors.New("deny requires a contest reason")
	ErrPendencyNotFound       = errors.New("pendency not found")
	ErrPendencyNotManual      = errors.New("pendency has no manual completion action")
	ErrDocumentNotFound       = errors.New("document not found")
	ErrNotificationNotFound   = errors.New("notification not found")
	ErrReferenceNotFound      = errors.New("reference entity not found")
	ErrInvalidCPF             = errors.New("invalid cpf")
	ErrInvalidCNPJ            = errors.New("invalid cnpj")
	ErrDuplicateCPF           = errors.New("cpf already registered")
	ErrDuplicateTUSSCode      = errors.New("tuss code already registered")
)
