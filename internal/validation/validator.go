// Package validation checks the untrusted output of the external
// requirement extraction service before it reaches the contract engine.
//
// Two shapes are validated: the generation request (structured
// requirements) and the modification request (a list of tagged edit
// items). Generation requests are schema-validated field by field;
// modification lists are checked structurally up front, since a list that
// is not a list of tagged variants must fail before any processing begins.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lexcraft/lexcraft/internal/errors"
	"github.com/lexcraft/lexcraft/internal/models"
)

// FieldValidator provides validation rules for individual fields
type FieldValidator struct {
	Name      string
	Required  bool
	Type      string
	MaxLength int
	Pattern   *regexp.Regexp
	Options   []string
}

// ValidationResult represents the result of validation
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
	Data   map[string]any    `json:"data,omitempty"`
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// ToAppError converts a failed validation into the standard error shape
func (r *ValidationResult) ToAppError() *errors.AppError {
	if r.Valid {
		return nil
	}
	var msgs []string
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return errors.ValidationError(strings.Join(msgs, "; "))
}

// Schema represents a validation schema
type Schema struct {
	Name   string
	Fields map[string]FieldValidator
	Rules  []func(map[string]any) error
}

// Validator provides centralized validation functionality
type Validator struct {
	schemas map[string]*Schema
}

// NewValidator creates a validator with the built-in schemas registered
func NewValidator() *Validator {
	v := &Validator{schemas: make(map[string]*Schema)}
	v.registerBuiltinSchemas()
	return v
}

// RegisterSchema registers a validation schema
func (v *Validator) RegisterSchema(schema *Schema) {
	v.schemas[schema.Name] = schema
}

// Validate validates data against a schema
func (v *Validator) Validate(schemaName string, data map[string]any) *ValidationResult {
	schema, exists := v.schemas[schemaName]
	if !exists {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:   "schema",
				Code:    "SCHEMA_NOT_FOUND",
				Message: fmt.Sprintf("Validation schema '%s' not found", schemaName),
			}},
		}
	}

	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
		Data:   make(map[string]any),
	}

	for fieldName, validator := range schema.Fields {
		v.validateField(fieldName, validator, data, result)
	}

	for _, rule := range schema.Rules {
		if err := rule(data); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   "schema",
				Code:    "SCHEMA_RULE_VIOLATION",
				Message: err.Error(),
			})
		}
	}

	return result
}

// validateField validates a single field
func (v *Validator) validateField(fieldName string, validator FieldValidator, data map[string]any, result *ValidationResult) {
	value, exists := data[fieldName]

	if validator.Required && (!exists || value == nil || value == "") {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   fieldName,
			Code:    "REQUIRED_FIELD_MISSING",
			Message: fmt.Sprintf("Field '%s' is required", fieldName),
		})
		return
	}

	if !exists || value == nil {
		return
	}

	converted, err := convertType(fieldName, validator.Type, value)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   fieldName,
			Code:    "INVALID_TYPE",
			Message: err.Error(),
			Value:   value,
		})
		return
	}
	result.Data[fieldName] = converted

	if validator.Type == "string" {
		strValue, ok := converted.(string)
		if !ok {
			return
		}
		if validator.MaxLength > 0 && len(strValue) > validator.MaxLength {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   fieldName,
				Code:    "MAX_LENGTH_VIOLATION",
				Message: fmt.Sprintf("Field '%s' must be at most %d characters long", fieldName, validator.MaxLength),
				Value:   strValue,
			})
		}
		if validator.Pattern != nil && !validator.Pattern.MatchString(strValue) {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   fieldName,
				Code:    "PATTERN_MISMATCH",
				Message: fmt.Sprintf("Field '%s' does not match required pattern", fieldName),
				Value:   strValue,
			})
		}
		if len(validator.Options) > 0 {
			valid := false
			for _, option := range validator.Options {
				if strValue == option {
					valid = true
					break
				}
			}
			if !valid {
				result.Valid = false
				result.Errors = append(result.Errors, ValidationError{
					Field:   fieldName,
					Code:    "INVALID_OPTION",
					Message: fmt.Sprintf("Field '%s' must be one of: %s", fieldName, strings.Join(validator.Options, ", ")),
					Value:   strValue,
				})
			}
		}
	}
}

// convertType validates and converts value to the specified type
func convertType(fieldName, expectedType string, value any) (any, error) {
	switch expectedType {
	case "string":
		if str, ok := value.(string); ok {
			return str, nil
		}
		return nil, fmt.Errorf("field '%s' must be a string", fieldName)

	case "array":
		switch val := value.(type) {
		case []any:
			return val, nil
		case []string:
			result := make([]any, len(val))
			for i, s := range val {
				result[i] = s
			}
			return result, nil
		}
		return nil, fmt.Errorf("field '%s' must be an array", fieldName)

	case "object":
		if obj, ok := value.(map[string]any); ok {
			return obj, nil
		}
		return nil, fmt.Errorf("field '%s' must be an object", fieldName)

	default:
		return value, nil
	}
}

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// registerBuiltinSchemas registers the request shapes this system accepts
func (v *Validator) registerBuiltinSchemas() {
	v.RegisterSchema(&Schema{
		Name: "generate_request",
		Fields: map[string]FieldValidator{
			"template_type": {
				Name:      "template_type",
				Type:      "string",
				Required:  true,
				MaxLength: 100,
				Pattern:   identifierPattern,
			},
			"province": {
				Name:      "province",
				Type:      "string",
				Required:  true,
				MaxLength: 50,
			},
			"property_type": {
				Name:      "property_type",
				Type:      "string",
				MaxLength: 50,
			},
			"special_features": {
				Name: "special_features",
				Type: "array",
			},
			"basic_info": {
				Name: "basic_info",
				Type: "object",
			},
			"suggested_clauses": {
				Name: "suggested_clauses",
				Type: "array",
			},
		},
	})

	v.RegisterSchema(&Schema{
		Name: "modification_request",
		Fields: map[string]FieldValidator{
			"modifications": {
				Name:     "modifications",
				Type:     "array",
				Required: true,
			},
		},
	})
}

// ValidateModifications checks that a decoded modification list is a list
// of tagged variants. It returns a MalformedModificationError for the
// first structural violation, before any item is processed.
func ValidateModifications(mods []models.Modification) error {
	if mods == nil {
		return &errors.MalformedModificationError{Index: -1, Reason: "modifications list is missing"}
	}
	for i, mod := range mods {
		switch mod.Kind {
		case models.KindBasicInfo, models.KindClause:
		case "":
			return &errors.MalformedModificationError{Index: i, Reason: "item has no kind tag"}
		default:
			return &errors.MalformedModificationError{Index: i, Reason: fmt.Sprintf("unknown kind %q", mod.Kind)}
		}
	}
	return nil
}
