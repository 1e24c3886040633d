package models

import "fmt"

// Status is the canonical 10-state pipeline of a surgery request. The
// numeric values 1..10 are a wire contract shared with every consumer of
// the API and must never be renumbered.
type Status int

const (
	StatusPendente    Status = 1
	StatusEnviada     Status = 2
	StatusEmAnalise   Status = 3
	StatusEmReanalise Status = 4
	StatusAutorizada  Status = 5
	StatusAgendada    Status = 6
	StatusAFaturar    Status = 7
	StatusFaturada    Status = 8
	StatusFinalizada  Status = 9
	StatusCancelada   Status = 10
)

// statusLabels maps each status to its display label
var statusLabels = map[Status]string{
	StatusPendente:    "Pendente",
	StatusEnviada:     "Enviada",
	StatusEmAnalise:   "Em Análise",
	StatusEmReanalise: "Em Reanálise",
	StatusAutorizada:  "Autorizada",
	StatusAgendada:    "Agendada",
	StatusAFaturar:    "A Faturar",
	StatusFaturada:    "Faturada",
	StatusFinalizada:  "Finalizada",
	StatusCancelada:   "Cancelada",
}

// statusTransitions is the forward edge set of the pipeline. Cancelada is
// reachable from every non-terminal status and is handled in CanTransitionTo
// rather than listed on every edge.
var statusTransitions = map[Status][]Status{
	StatusPendente:    {StatusEnviada},
	StatusEnviada:     {StatusEmAnalise},
	StatusEmAnalise:   {StatusEmReanalise, StatusAutorizada},
	StatusEmReanalise: {StatusAutorizada},
	StatusAutorizada:  {StatusAgendada},
	StatusAgendada:    {StatusAFaturar},
	StatusAFaturar:    {StatusFaturada},
	StatusFaturada:    {StatusFinalizada},
	StatusFinalizada:  {},
	StatusCancelada:   {},
}

// AllStatuses lists every status in canonical pipeline order. Kanban columns
// are built in this exact order.
var AllStatuses = []Status{
	StatusPendente,
	StatusEnviada,
	StatusEmAnalise,
	StatusEmReanalise,
	StatusAutorizada,
	StatusAgendada,
	StatusAFaturar,
	StatusFaturada,
	StatusFinalizada,
	StatusCancelada,
}

// String returns the display label of the status
func (s Status) String() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// IsValid reports whether the numeric value is one of the 10 defined statuses
func (s Status) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

// IsTerminal reports whether the status admits no further transitions
func (s Status) IsTerminal() bool {
	return s == StatusFinalizada || s == StatusCancelada
}

// CanTransitionTo reports whether the edge s -> target exists in the
// pipeline. Cancellation is allowed from any non-terminal status.
func (s Status) CanTransitionTo(target Status) bool {
	if !s.IsValid() || !target.IsValid() {
		return false
	}
	if target == StatusCancelada {
		return !s.IsTerminal()
	}
	for _, next := range statusTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Next returns the natural forward status of the pipeline, or false when the
// status is terminal. For Em Análise and Em Reanálise the natural next step
// is Autorizada; denial into Em Reanálise only happens through an explicit
// deny call.
func (s Status) Next() (Status, bool) {
	switch s {
	case StatusEmAnalise, StatusEmReanalise:
		return StatusAutorizada, true
	case StatusFinalizada, StatusCancelada:
		return 0, false
	default:
		if !s.IsValid() {
			return 0, false
		}
		return s + 1, true
	}
}

// ParseStatus converts a wire-numeric value into a Status
func ParseStatus(value int) (Status, error) {
	s := Status(value)
	if !s.IsValid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownStatus, value)
	}
	return s, nil
}
