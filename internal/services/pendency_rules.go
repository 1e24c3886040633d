package services

import (
	"strconv"

	"github.com/medsimples/app-cirurgias/internal/models"
)

// PendencyRule is one named check of a status context. Exactly one of the
// following holds: Check is set (the rule is recomputed from request data),
// Manual is set (completion happens through an explicit complete call), or
// Waiting is set (the rule blocks on an external party and has no user
// action at all).
type PendencyRule struct {
	Key         string
	Name        string
	Description string
	Responsible models.Responsible
	Optional    bool
	Waiting     bool
	Manual      bool
	Check       func(rc *RequestContext) bool
}

// RequestContext is the data snapshot a validation run evaluates against.
// It is assembled once per validate call; evaluation itself never touches
// storage, which keeps validate a pure function of request state.
type RequestContext struct {
	Request            *models.SurgeryRequest
	Patient            *models.Patient
	HealthPlan         *models.HealthPlan
	DocumentKeys       map[string]bool
	Completions        map[string]bool
	CustomRequirements []models.CustomDocumentRequirement
}

// hasDocument reports whether an attachment with the given key exists
func (rc *RequestContext) hasDocument(key string) bool {
	return rc.DocumentKeys[key]
}

// pendencyRules is the static rule registry, keyed by the status the rules
// apply to. Terminal statuses carry no rules.
var pendencyRules = map[models.Status][]PendencyRule{
	models.StatusPendente: {
		{
			Key:         "patient_data",
			Name:        "Dados do paciente",
			Description: "Nome, CPF e data de nascimento do paciente preenchidos",
			Responsible: models.ResponsibleCollaborator,
			Check:       func(rc *RequestContext) bool { return rc.Patient.Complete() },
		},
		{
			Key:         "doctor_assigned",
			Name:        "Médico responsável",
			Description: "Solicitação vinculada a um médico responsável",
			Responsible: models.ResponsibleCollaborator,
			Check:       func(rc *RequestContext) bool { return !rc.Request.DoctorID.IsZero() },
		},
		{
			Key:         "hospital_set",
			Name:        "Hospital",
			Description: "Hospital onde o procedimento será realizado",
			Responsible: models.ResponsibleCollaborator,
			Check:       func(rc *RequestContext) bool { return !rc.Request.HospitalID.IsZero() },
		},
		{
			Key:         "procedures",
			Name:        "Procedimentos TUSS",
			Description: "Ao menos um procedimento TUSS informado",
			Responsible: models.ResponsibleDoctor,
			Check:       func(rc *RequestContext) bool { return len(rc.Request.Procedures) > 0 },
		},
		{
			Key:         models.DocumentKeyMedicalReport,
			Name:        "Laudo médico",
			Description: "Laudo médico anexado à solicitação",
			Responsible: models.ResponsibleDoctor,
			Check:       func(rc *RequestContext) bool { return rc.hasDocument(models.DocumentKeyMedicalReport) },
		},
		{
			Key:         "patient_contact",
			Name:        "Contato com o paciente",
			Description: "Paciente contatado e ciente da solicitação",
			Responsible: models.ResponsiblePatient,
			Manual:      true,
		},
	},
	models.StatusEnviada: {
		{
			Key:         "health_plan_data",
			Name:        "Dados do convênio",
			Description: "Convênio e carteirinha do paciente informados",
			Responsible: models.ResponsibleCollaborator,
			Check: func(rc *RequestContext) bool {
				return rc.Request.HealthPlanID != nil && rc.Request.HealthPlanCardID != ""
			},
		},
		{
			Key:         models.DocumentKeyAuthForm,
			Name:        "Guia de autorização",
			Description: "Guia de solicitação de autorização anexada",
			Responsible: models.ResponsibleCollaborator,
			Check:       func(rc *RequestContext) bool { return rc.hasDocument(models.DocumentKeyAuthForm) },
		},
		{
			Key:         "plan_protocol",
			Name:        "Protocolo do convênio",
			Description: "Aguardando número de protocolo do convênio",
			Responsible: models.ResponsibleCollaborator,
			Waiting:     true,
		},
	},
	models.StatusEmAnalise: {
		{
			Key:         "plan_analysis",
			Name:        "Análise do convênio",
			Description: "Solicitação em análise pela operadora",
			Responsible: models.ResponsibleCollaborator,
			Waiting:     true,
		},
		{
			Key:         models.DocumentKeyIdentity,
			Name:        "Documento de identidade",
			Description: "Documento de identidade do paciente",
			Responsible: models.ResponsiblePatient,
			Optional:    true,
			Check:       func(rc *RequestContext) bool { return rc.hasDocument(models.DocumentKeyIdentity) },
		},
		{
			Key:         models.DocumentKeyHealthPlanCard,
			Name:        "Carteirinha do convênio",
			Description: "Cópia da carteirinha do convênio",
			Responsible: models.ResponsiblePatient,
			Optional:    true,
			Check:       func(rc *RequestContext) bool { return rc.hasDocument(models.DocumentKeyHealthPlanCard) },
		},
	},
	models.StatusEmReanalise: {
		{
			Key:         models.DocumentKeyUpdatedReport,
			Name:        "Laudo atualizado",
			Description: "Laudo médico atualizado após a negativa",
			Responsible: models.ResponsibleDoctor,
			Check:       func(rc *RequestContext) bool { return rc.hasDocument(models.DocumentKeyUpdatedReport) },
		},
		{
			Key:         "resubmission",
			Name:        "Reenvio ao convênio",
			Description: "Documentação complementar reenviada à operadora",
			Responsible: models.ResponsibleCollaborator,
			Manual:      true,
		},
	},
	models.StatusAutorizada: {
		{
			Key:         "authorization_number",
			Name:        "Número da autorização",
			Description: "Número de autorização emitido pela operadora",
			Responsible: models.ResponsibleCollaborator,
			Check:       func(rc *RequestContext) bool { return rc.Request.AuthorizationNumber != "" },
		},
		{
			Key:         "opme_quotations",
			Name:        "Cotações OPME",
			Description: "Todos os itens OPME com ao menos uma cotação",
			Responsible: models.ResponsibleCollaborator,
			Check: func(rc *RequestContext) bool {
				for _, item := range rc.Request.OPMEItems {
					if len(item.Quotations) == 0 {
						return false
					}
				}
				return true
			},
		},
		{
			Key:         "surgery_date",
			Name:        "Data da cirurgia",
			Description: "Data da cirurgia acordada com hospital e paciente",
			Responsible: models.ResponsibleCollaborator,
			Check:       func(rc *RequestContext) bool { return rc.Request.SurgeryDate != nil },
		},
	},
	models.StatusAgendada: {
		{
			Key:         "hospital_confirmation",
			Name:        "Confirmação do hospital",
			Description: "Reserva de sala confirmada pelo hospital",
			Responsible: models.ResponsibleCollaborator,
			Manual:      true,
		},
		{
			Key:         "patient_preop",
			Name:        "Pré-operatório",
			Description: "Aguardando exames pré-operatórios do paciente",
			Responsible: models.ResponsiblePatient,
			Waiting:     true,
		},
	},
	models.StatusAFaturar: {
		{
			Key:         models.DocumentKeyBillingInvoice,
			Name:        "Nota fiscal",
			Description: "Nota fiscal dos materiais anexada",
			Responsible: models.ResponsibleCollaborator,
			Check:       func(rc *RequestContext) bool { return rc.hasDocument(models.DocumentKeyBillingInvoice) },
		},
		{
			Key:         "invoice_number",
			Name:        "Número da fatura",
			Description: "Número da fatura emitida para a operadora",
			Responsible: models.ResponsibleCollaborator,
			Check:       func(rc *RequestContext) bool { return rc.Request.InvoiceNumber != "" },
		},
	},
	models.StatusFaturada: {
		{
			Key:         "payment_confirmation",
			Name:        "Confirmação de pagamento",
			Description: "Pagamento da operadora conferido",
			Responsible: models.ResponsibleCollaborator,
			Manual:      true,
		},
	},
	models.StatusFinalizada: {},
	models.StatusCancelada:  {},
}

// autoAdvanceTargets lists the statuses where completing the last required
// pendency itself submits the request forward. These are the only places a
// complete call may trigger a transition as a side effect.
var autoAdvanceTargets = map[models.Status]models.Status{
	models.StatusPendente: models.StatusEnviada,
	models.StatusFaturada: models.StatusFinalizada,
}

// rulesForStatus returns the static rules of a status plus the dynamic
// rules derived from clinic-defined custom document requirements, whose
// numeric ids double as pendency keys.
func rulesForStatus(status models.Status, custom []models.CustomDocumentRequirement) []PendencyRule {
	rules := pendencyRules[status]
	out := make([]PendencyRule, len(rules), len(rules)+len(custom))
	copy(out, rules)

	for _, req := range custom {
		if !req.Active || req.StatusContext != status {
			continue
		}
		key := strconv.Itoa(req.NumericID)
		out = append(out, PendencyRule{
			Key:         key,
			Name:        req.Name,
			Description: req.Description,
			Responsible: models.ResponsibleCollaborator,
			Optional:    req.Optional,
			Check: func(rc *RequestContext) bool {
				return rc.hasDocument(key)
			},
		})
	}
	return out
}

// EvaluatePendencies runs every rule of the request's current status
// against the snapshot and aggregates the result. For fixed input data the
// output is always identical; nothing here mutates state.
func EvaluatePendencies(rc *RequestContext) models.ValidationResult {
	status := rc.Request.Status
	rules := rulesForStatus(status, rc.CustomRequirements)

	result := models.ValidationResult{
		RequestID:     rc.Request.ID.Hex(),
		CurrentStatus: status,
		Pendencies:    make([]models.Pendency, 0, len(rules)),
	}

	for _, rule := range rules {
		p := models.Pendency{
			Key:           rule.Key,
			Name:          rule.Name,
			Description:   rule.Description,
			IsOptional:    rule.Optional,
			IsWaiting:     rule.Waiting,
			Responsible:   rule.Responsible,
			StatusContext: status,
		}

		switch {
		case rule.Waiting:
			// informational only, never complete nor required
		case rule.Manual:
			p.IsComplete = rc.Completions[rule.Key]
		default:
			p.IsComplete = rule.Check(rc)
		}

		switch {
		case rule.Waiting:
			result.WaitingCount++
		case p.IsComplete:
			result.CompletedCount++
		case !p.IsOptional:
			result.PendingCount++
		}

		result.Pendencies = append(result.Pendencies, p)
	}

	result.TotalCount = len(result.Pendencies)
	result.CanAdvance = result.PendingCount == 0 && !status.IsTerminal()
	if next, ok := status.Next(); ok {
		result.NextStatus = &next
	}

	return result
}
