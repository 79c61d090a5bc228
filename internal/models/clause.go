package models

import (
	"strings"
	"time"
)

// ClauseTemplate represents a reusable, parameterized clause fragment.
// ClauseType is the sole identity key across the catalog.
type ClauseTemplate struct {
	// Frontmatter fields
	ClauseType       string         `yaml:"clause_type" json:"clause_type"`
	Category         string         `yaml:"category,omitempty" json:"category,omitempty"`
	Title            string         `yaml:"title,omitempty" json:"title,omitempty"`
	Province         string         `yaml:"province,omitempty" json:"province,omitempty"`
	Variables        []VariableSpec `yaml:"variables,omitempty" json:"variables,omitempty"`
	IncompatibleWith []string       `yaml:"incompatible_with,omitempty" json:"incompatible_with,omitempty"`

	// Structured holds a JSON-shaped content value whose leaf strings may
	// contain placeholders. When set it takes precedence over Content.
	Structured any `yaml:"structured,omitempty" json:"structured,omitempty"`

	// Content fields
	Content  string `yaml:"-" json:"content,omitempty"` // Text body with {name} placeholders
	FilePath string `yaml:"-" json:"-"`
}

// VariableSpec is a named placeholder declared by a clause template
type VariableSpec struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Type        string `yaml:"type,omitempty" json:"type,omitempty"` // "text", "currency", "date"
	Required    bool   `yaml:"required" json:"required"`
	Default     string `yaml:"default,omitempty" json:"default,omitempty"`
}

// RequiredVariables returns the names of all variables declared required
func (c *ClauseTemplate) RequiredVariables() []string {
	var names []string
	for _, v := range c.Variables {
		if v.Required {
			names = append(names, v.Name)
		}
	}
	return names
}

// VariableType returns the declared type of a variable, or "text" when the
// variable is not declared
func (c *ClauseTemplate) VariableType(name string) string {
	for _, v := range c.Variables {
		if v.Name == name {
			if v.Type == "" {
				return "text"
			}
			return v.Type
		}
	}
	return "text"
}

// DisplayName returns the clause title, falling back to a title-cased form
// of the type key ("pet_agreement" becomes "Pet Agreement")
func (c *ClauseTemplate) DisplayName() string {
	if c.Title != "" {
		return c.Title
	}
	words := strings.Split(c.ClauseType, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ClauseInstance is a clause bound to concrete variable values within one
// contract. At most one instance per clause type exists in a contract.
type ClauseInstance struct {
	Type        string         `json:"type"`
	DisplayName string         `json:"display_name"`
	Content     any            `json:"content"` // Resolved string or structured value
	Variables   map[string]any `json:"variables"`
	AddedAt     time.Time      `json:"added_at"`
	ModifiedAt  *time.Time     `json:"modified_at,omitempty"`
}
