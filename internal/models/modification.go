package models

// Modification kinds and clause actions. A Modification is a tagged
// variant: Kind selects which of the remaining fields are meaningful.
const (
	KindBasicInfo = "basic_info"
	KindClause    = "clause"

	ActionAdd    = "add"
	ActionRemove = "remove"
	ActionModify = "modify"
)

// Modification is one item of a modification batch
type Modification struct {
	Kind string `json:"kind"`

	// basic_info fields
	Section string `json:"section,omitempty"`
	Field   string `json:"field,omitempty"`
	Value   any    `json:"value,omitempty"`

	// clause fields
	Action     string         `json:"action,omitempty"`
	ClauseType string         `json:"clause_type,omitempty"`
	Variables  map[string]any `json:"variables,omitempty"`
}

// ModificationRequest is the edit-turn shape produced by the external
// requirement extraction service
type ModificationRequest struct {
	Modifications []Modification `json:"modifications"`
}

// ModificationResult is returned by the mutation engine after a batch
type ModificationResult struct {
	Contract  *Contract `json:"contract"`
	ChangeLog []string  `json:"change_log"`
}

// GenerationResult pairs a freshly generated contract with non-fatal
// warnings collected while populating it
type GenerationResult struct {
	Contract *Contract `json:"contract"`
	Warnings []string  `json:"warnings,omitempty"`
}
