package models

import "strings"

// ActionType tags the kind of navigation a pendency triggers when clicked
type ActionType string

const (
	ActionScroll   ActionType = "scroll"
	ActionNavigate ActionType = "navigate"
	ActionModal    ActionType = "modal"
	ActionExternal ActionType = "external"
)

// PendencyAction is the declarative click behavior of a pendency. A nil
// action means the pendency renders inert.
type PendencyAction struct {
	Type   ActionType `json:"type"`
	Target string     `json:"target"`
	Label  string     `json:"label"`
}

// pendencyActions maps known pendency keys to their click behavior
var pendencyActions = map[string]PendencyAction{
	"patient_data":          {Type: ActionScroll, Target: "#paciente", Label: "Dados do paciente"},
	"doctor_assigned":       {Type: ActionScroll, Target: "#medico", Label: "Médico responsável"},
	"hospital_set":          {Type: ActionScroll, Target: "#hospital", Label: "Hospital"},
	"health_plan_data":      {Type: ActionScroll, Target: "#convenio", Label: "Convênio"},
	"procedures":            {Type: ActionModal, Target: "procedimentos", Label: "Procedimentos TUSS"},
	"opme_quotations":       {Type: ActionModal, Target: "cotacoes", Label: "Cotações OPME"},
	"surgery_date":          {Type: ActionModal, Target: "agendamento", Label: "Agendamento"},
	"patient_contact":       {Type: ActionModal, Target: "contato", Label: "Contato com paciente"},
	"resubmission":          {Type: ActionNavigate, Target: "/solicitacoes/reenvio", Label: "Reenviar ao convênio"},
	"hospital_confirmation": {Type: ActionModal, Target: "agendamento", Label: "Confirmação do hospital"},
	"payment_confirmation":  {Type: ActionModal, Target: "faturamento", Label: "Confirmação de pagamento"},
	"invoice_number":        {Type: ActionModal, Target: "faturamento", Label: "Número da fatura"},
	"authorization_number":  {Type: ActionModal, Target: "autorizacao", Label: "Número da autorização"},
	"plan_portal":           {Type: ActionExternal, Target: "https://portal.convenio.example", Label: "Portal do convênio"},
}

// documentAction is the shared behavior of every document_* pendency and of
// clinic-defined custom documents, which use bare numeric keys.
var documentAction = PendencyAction{Type: ActionModal, Target: "anexos", Label: "Anexar documento"}

// ResolveAction maps a pendency key to its click behavior. Resolution
// order: exact key, document_* prefix, numeric custom-document key, none.
func ResolveAction(key string) *PendencyAction {
	if action, ok := pendencyActions[key]; ok {
		return &action
	}
	if strings.HasPrefix(key, "document_") {
		action := documentAction
		return &action
	}
	if key != "" && isAllDigits(key) {
		action := documentAction
		return &action
	}
	return nil
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
