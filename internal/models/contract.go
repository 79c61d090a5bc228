package models

import (
	"encoding/json"
	"time"
)

// Contract is the mutable working document being assembled and edited.
// The engine never mutates a caller's contract in place; modification
// produces a structural copy.
type Contract struct {
	ID             string                    `json:"id"`
	Version        string                    `json:"version"`
	Type           string                    `json:"type"`
	Province       string                    `json:"province"`
	Sections       map[string]map[string]any `json:"sections"`
	SpecialClauses []ClauseInstance          `json:"special_clauses"`
	History        []ModificationRecord      `json:"modification_history"`
	CurrentVersion int                       `json:"current_version"`
	CreatedAt      time.Time                 `json:"created_at"`
}

// ModificationRecord captures one applied modification batch. Append-only;
// the contract's CurrentVersion increases by exactly 1 per record.
type ModificationRecord struct {
	Version   int       `json:"version"`
	Changes   []string  `json:"changes"`
	Timestamp time.Time `json:"timestamp"`
}

// FindClause returns the index of the clause instance with the given type,
// or -1 when absent
func (c *Contract) FindClause(clauseType string) int {
	for i, cl := range c.SpecialClauses {
		if cl.Type == clauseType {
			return i
		}
	}
	return -1
}

// ClauseTypes returns the set of clause types currently present
func (c *Contract) ClauseTypes() map[string]bool {
	types := make(map[string]bool, len(c.SpecialClauses))
	for _, cl := range c.SpecialClauses {
		types[cl.Type] = true
	}
	return types
}

// Clone returns a structural copy sharing no mutable state with the receiver
func (c *Contract) Clone() *Contract {
	out := &Contract{
		ID:             c.ID,
		Version:        c.Version,
		Type:           c.Type,
		Province:       c.Province,
		Sections:       make(map[string]map[string]any, len(c.Sections)),
		CurrentVersion: c.CurrentVersion,
		CreatedAt:      c.CreatedAt,
	}
	for name, fields := range c.Sections {
		section := make(map[string]any, len(fields))
		for k, v := range fields {
			section[k] = CloneValue(v)
		}
		out.Sections[name] = section
	}
	for _, cl := range c.SpecialClauses {
		copied := ClauseInstance{
			Type:        cl.Type,
			DisplayName: cl.DisplayName,
			Content:     CloneValue(cl.Content),
			Variables:   make(map[string]any, len(cl.Variables)),
			AddedAt:     cl.AddedAt,
		}
		for k, v := range cl.Variables {
			copied.Variables[k] = CloneValue(v)
		}
		if cl.ModifiedAt != nil {
			t := *cl.ModifiedAt
			copied.ModifiedAt = &t
		}
		out.SpecialClauses = append(out.SpecialClauses, copied)
	}
	for _, rec := range c.History {
		copied := ModificationRecord{
			Version:   rec.Version,
			Changes:   append([]string(nil), rec.Changes...),
			Timestamp: rec.Timestamp,
		}
		out.History = append(out.History, copied)
	}
	return out
}

// ToMap renders the contract as a plain nested map suitable for any
// external formatter
func (c *Contract) ToMap() (map[string]any, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CloneValue deep-copies a content-flexible value (string, number, boolean,
// nested map, or list). Scalars are returned as-is.
func CloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = CloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = CloneValue(item)
		}
		return out
	default:
		return v
	}
}
