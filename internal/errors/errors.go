// Package errors provides unified error handling across the lexcraft system.
//
// It standardizes error representation for the contract engine and its
// interfaces (CLI, HTTP): stable error codes, severity levels, and the
// domain error types the engine reports (template lookup failures, missing
// clause variables, incompatible clauses, malformed modifications).
//
// USAGE PATTERNS:
// - Create errors: domain error types as struct literals, or constructors
//   like ValidationError() and InternalError() for the generic shape
// - Wrap errors: use Wrap() to add context to existing errors
// - Check types: use errors.As with the domain types, or GetAppError() for the generic shape
package errors

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	// Validation errors
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"

	// Engine errors
	ErrCodeTemplateNotFound       ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrCodeClauseTemplateNotFound ErrorCode = "CLAUSE_TEMPLATE_NOT_FOUND"
	ErrCodeMissingVariables       ErrorCode = "MISSING_REQUIRED_VARIABLES"
	ErrCodeIncompatibleClause     ErrorCode = "INCOMPATIBLE_CLAUSE"
	ErrCodeMalformedModification  ErrorCode = "MALFORMED_MODIFICATION"

	// Catalog/infrastructure errors
	ErrCodeCatalogFailure ErrorCode = "CATALOG_FAILURE"
	ErrCodeNotFound       ErrorCode = "NOT_FOUND"
	ErrCodeInternalError  ErrorCode = "INTERNAL_ERROR"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityInfo     ErrorSeverity = "info"
	SeverityWarning  ErrorSeverity = "warning"
	SeverityError    ErrorSeverity = "error"
	SeverityCritical ErrorSeverity = "critical"
)

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation"
	CategoryEngine     ErrorCategory = "engine"
	CategoryCatalog    ErrorCategory = "catalog"
	CategorySystem     ErrorCategory = "system"
)

// AppError represents a standardized application error
type AppError struct {
	Code      ErrorCode      `json:"code"`
	Message   string         `json:"message"`
	Details   string         `json:"details,omitempty"`
	Severity  ErrorSeverity  `json:"severity"`
	Category  ErrorCategory  `json:"category"`
	Cause     error          `json:"-"`
	Context   map[string]any `json:"context,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value any) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string) *AppError {
	category, severity := categorizeError(code)
	return &AppError{
		Code:      code,
		Message:   message,
		Severity:  severity,
		Category:  category,
		Timestamp: time.Now(),
	}
}

// Wrap wraps an existing error with application error context
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := NewAppError(code, message)
	appErr.Cause = err
	return appErr
}

// categorizeError determines the category and severity based on error code
func categorizeError(code ErrorCode) (ErrorCategory, ErrorSeverity) {
	switch code {
	case ErrCodeValidation, ErrCodeInvalidInput, ErrCodeMissingField:
		return CategoryValidation, SeverityWarning

	case ErrCodeTemplateNotFound:
		return CategoryEngine, SeverityError
	case ErrCodeClauseTemplateNotFound, ErrCodeMissingVariables, ErrCodeIncompatibleClause:
		return CategoryEngine, SeverityWarning
	case ErrCodeMalformedModification:
		return CategoryEngine, SeverityWarning

	case ErrCodeCatalogFailure:
		return CategoryCatalog, SeverityError
	case ErrCodeNotFound:
		return CategoryCatalog, SeverityInfo

	default:
		return CategorySystem, SeverityError
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError extracts an AppError from an error, or converts it to one
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Wrap(err, ErrCodeInternalError, "Internal error occurred")
}

// Domain error types. These carry structured data about what failed and
// convert to AppError at the interface boundary.

// TemplateNotFoundError reports that no template survived province/type
// filtering. Fatal to generation.
type TemplateNotFoundError struct {
	Province     string
	TemplateType string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("no contract template found for province %q, type %q", e.Province, e.TemplateType)
}

// ToAppError converts to the generic application error shape
func (e *TemplateNotFoundError) ToAppError() *AppError {
	return NewAppError(ErrCodeTemplateNotFound, e.Error()).
		WithContext("province", e.Province).
		WithContext("template_type", e.TemplateType)
}

// ClauseTemplateNotFoundError reports an unknown clause type
type ClauseTemplateNotFoundError struct {
	ClauseType string
}

func (e *ClauseTemplateNotFoundError) Error() string {
	return fmt.Sprintf("clause template not found: %s", e.ClauseType)
}

// MissingRequiredVariablesError carries the names of the variables a clause
// declared required but the caller did not supply
type MissingRequiredVariablesError struct {
	ClauseType string
	Missing    []string
}

func (e *MissingRequiredVariablesError) Error() string {
	missing := append([]string(nil), e.Missing...)
	sort.Strings(missing)
	return fmt.Sprintf("clause %s missing required variables: %s", e.ClauseType, strings.Join(missing, ", "))
}

// IncompatibleClauseError reports a clause rejected because another clause
// it cannot coexist with is already present
type IncompatibleClauseError struct {
	ClauseType    string
	ConflictsWith string
}

func (e *IncompatibleClauseError) Error() string {
	return fmt.Sprintf("clause %s is incompatible with %s", e.ClauseType, e.ConflictsWith)
}

// MalformedModificationError reports a modification item that failed
// structural validation
type MalformedModificationError struct {
	Index  int
	Reason string
}

func (e *MalformedModificationError) Error() string {
	return fmt.Sprintf("modification %d malformed: %s", e.Index, e.Reason)
}

// Common error constructors

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message)
}

func NotFoundError(resource string) *AppError {
	return NewAppError(ErrCodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternalError, message)
}

func CatalogError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeCatalogFailure, fmt.Sprintf("Catalog operation failed: %s", operation))
}
