package models

// StructuredRequirements is the fixed shape produced by the external
// requirement extraction service. The engine treats it as untrusted input;
// the validation package checks it before use.
type StructuredRequirements struct {
	TemplateType     string                    `json:"template_type"`
	Province         string                    `json:"province"`
	PropertyType     string                    `json:"property_type,omitempty"`
	SpecialFeatures  []string                  `json:"special_features,omitempty"`
	BasicInfo        map[string]map[string]any `json:"basic_info,omitempty"`
	SuggestedClauses []SuggestedClause         `json:"suggested_clauses,omitempty"`
}

// SuggestedClause names a clause type the extraction service inferred,
// with any variables it could pull from the text
type SuggestedClause struct {
	ClauseType string         `json:"clause_type"`
	Variables  map[string]any `json:"variables,omitempty"`
}

// SelectionResult pairs the winning template with its score breakdown
type SelectionResult struct {
	Template     *Template    `json:"template"`
	Score        int          `json:"score"`
	MatchReasons MatchReasons `json:"match_reasons"`
}

// MatchReasons explains how a template earned its score
type MatchReasons struct {
	Province     bool     `json:"province"`
	PropertyType bool     `json:"property_type"`
	Features     []string `json:"features"`
	Sections     []string `json:"sections"`
}
