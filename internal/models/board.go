package models

// KanbanColumn holds the requests of exactly one status. Columns always
// appear in canonical pipeline order and partition the request set: every
// request with a known status lands in exactly one column.
type KanbanColumn struct {
	Status Status           `json:"status"`
	Label  string           `json:"label"`
	Cards  []SurgeryRequest `json:"cards"`
}

// Board is the kanban view of the request set
type Board struct {
	Columns []KanbanColumn `json:"columns"`
}
