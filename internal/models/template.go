package models

// Template represents a reusable contract skeleton with declared sections
type Template struct {
	// Frontmatter fields
	ID            string                   `yaml:"id" json:"id"`
	Type          string                   `yaml:"type" json:"type"`
	Version       string                   `yaml:"version" json:"version"`
	Province      string                   `yaml:"province" json:"province"`
	Description   string                   `yaml:"description,omitempty" json:"description,omitempty"`
	Sections      map[string]SectionSchema `yaml:"sections" json:"sections"`
	Features      []string                 `yaml:"features,omitempty" json:"features,omitempty"`
	PropertyTypes []string                 `yaml:"property_types,omitempty" json:"property_types,omitempty"`

	FilePath string `yaml:"-" json:"-"` // Path to the file
}

// SectionSchema declares the fields a contract section carries
type SectionSchema struct {
	Title  string                 `yaml:"title,omitempty" json:"title,omitempty"`
	Fields map[string]FieldSchema `yaml:"fields" json:"fields"`
}

// FieldSchema describes a single fillable field within a section
type FieldSchema struct {
	Label    string `yaml:"label,omitempty" json:"label,omitempty"`
	Type     string `yaml:"type,omitempty" json:"type,omitempty"` // "text", "number", "date", "enum"
	Required bool   `yaml:"required" json:"required"`
	Default  string `yaml:"default,omitempty" json:"default,omitempty"`
}

// HasFeature reports whether the template declares a special feature
func (t *Template) HasFeature(feature string) bool {
	for _, f := range t.Features {
		if f == feature {
			return true
		}
	}
	return false
}

// SupportsPropertyType reports whether the template applies to a property type
func (t *Template) SupportsPropertyType(propertyType string) bool {
	for _, pt := range t.PropertyTypes {
		if pt == propertyType {
			return true
		}
	}
	return false
}
