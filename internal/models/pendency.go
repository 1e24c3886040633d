package models

import "fmt"

// Responsible identifies which party must act on a pendency
type Responsible string

const (
	ResponsibleCollaborator Responsible = "collaborator"
	ResponsiblePatient      Responsible = "patient"
	ResponsibleDoctor       Responsible = "doctor"
)

// Pendency is one computed check of the current status context. It is
// recomputed from persisted request data on every validate call and is not
// a persisted row of its own, except for manual completions.
type Pendency struct {
	Key           string      `json:"key"`
	Name          string      `json:"name"`
	Description   string      `json:"description,omitempty"`
	IsComplete    bool        `json:"is_complete"`
	IsOptional    bool        `json:"is_optional"`
	IsWaiting     bool        `json:"is_waiting"`
	Responsible   Responsible `json:"responsible"`
	StatusContext Status      `json:"status_context"`
}

// ValidationResult is the authoritative answer of the pendency evaluator
// for one request at its current status.
type ValidationResult struct {
	RequestID      string     `json:"request_id"`
	CurrentStatus  Status     `json:"current_status"`
	Pendencies     []Pendency `json:"pendencies"`
	CanAdvance     bool       `json:"can_advance"`
	NextStatus     *Status    `json:"next_status"`
	CompletedCount int        `json:"completed_count"`
	PendingCount   int        `json:"pending_count"`
	WaitingCount   int        `json:"waiting_count"`
	TotalCount     int        `json:"total_count"`
}

// CompleteResult reports a manual completion and the status transition it
// may have triggered. Consumers must treat it as authoritative and never
// infer the new status themselves.
type CompleteResult struct {
	Pendency     Pendency `json:"pendency"`
	Transitioned bool     `json:"transitioned"`
	NewStatus    *Status  `json:"new_status"`
}

// DisplayState is the single visual/semantic state of a rendered pendency
type DisplayState string

const (
	DisplayComplete           DisplayState = "complete"
	DisplayWaiting            DisplayState = "waiting"
	DisplayOptionalIncomplete DisplayState = "optional_incomplete"
	DisplayRequiredIncomplete DisplayState = "required_incomplete"
)

// DisplayState resolves the exactly-one visual state of the pendency.
// Precedence: complete > waiting > optional > required.
func (p Pendency) DisplayState() DisplayState {
	switch {
	case p.IsComplete:
		return DisplayComplete
	case p.IsWaiting:
		return DisplayWaiting
	case p.IsOptional:
		return DisplayOptionalIncomplete
	default:
		return DisplayRequiredIncomplete
	}
}

// Actionable reports whether the pendency still requires user action.
// Waiting pendencies are informational only and are never actionable.
func (p Pendency) Actionable() bool {
	return !p.IsComplete && !p.IsWaiting
}

// BadgeState is the color/semantic state of the aggregate pendency badge
type BadgeState string

const (
	BadgeComplete BadgeState = "complete" // green
	BadgeWaiting  BadgeState = "waiting"  // amber
	BadgePending  BadgeState = "pending"
)

// Badge is the aggregate indicator shown on a request card
type Badge struct {
	Text  string     `json:"text"`
	State BadgeState `json:"state"`
}

// Badge computes the aggregate badge of the result. The request counts as
// complete iff no required pendency is pending, independent of waiting
// markers; with zero pending but waiting markers outstanding the badge
// keeps the complete text but takes the waiting color.
func (r ValidationResult) Badge() Badge {
	if r.PendingCount == 0 {
		state := BadgeComplete
		if r.WaitingCount > 0 {
			state = BadgeWaiting
		}
		return Badge{Text: "✓", State: state}
	}
	return Badge{
		Text:  fmt.Sprintf("%d/%d", r.CompletedCount, r.TotalCount),
		State: BadgePending,
	}
}
