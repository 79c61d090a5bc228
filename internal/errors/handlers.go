// Package errors handlers: interface-specific error formatting for the CLI
// and HTTP surfaces. Business logic produces AppErrors (or domain error
// types); handlers map them to terminal output or HTTP status codes.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// ErrorHandler provides interface-specific error handling
type ErrorHandler interface {
	HandleError(err error) error
	FormatError(err error) string
}

// CLIErrorHandler handles errors for CLI interface
type CLIErrorHandler struct {
	Verbose bool
	logger  *zap.Logger
}

// NewCLIErrorHandler creates a new CLI error handler
func NewCLIErrorHandler(verbose bool, logger *zap.Logger) *CLIErrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CLIErrorHandler{Verbose: verbose, logger: logger}
}

// HandleError handles errors for CLI interface
func (h *CLIErrorHandler) HandleError(err error) error {
	appErr := normalize(err)
	if h.Verbose {
		h.logger.Warn("command failed",
			zap.String("code", string(appErr.Code)),
			zap.String("severity", string(appErr.Severity)),
			zap.Error(appErr))
	}
	return errors.New(h.FormatError(appErr))
}

// FormatError formats an error for CLI display
func (h *CLIErrorHandler) FormatError(err error) string {
	appErr := normalize(err)
	switch appErr.Severity {
	case SeverityCritical, SeverityError:
		return fmt.Sprintf("error: %s", appErr.Message)
	case SeverityWarning:
		return fmt.Sprintf("warning: %s", appErr.Message)
	default:
		return appErr.Message
	}
}

// HTTPErrorHandler handles errors for HTTP interface
type HTTPErrorHandler struct {
	IncludeDetails bool
	logger         *zap.Logger
}

// NewHTTPErrorHandler creates a new HTTP error handler
func NewHTTPErrorHandler(includeDetails bool, logger *zap.Logger) *HTTPErrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPErrorHandler{IncludeDetails: includeDetails, logger: logger}
}

// HTTPErrorResponse is the JSON error body
type HTTPErrorResponse struct {
	Error struct {
		Code    ErrorCode      `json:"code"`
		Message string         `json:"message"`
		Details string         `json:"details,omitempty"`
		Context map[string]any `json:"context,omitempty"`
	} `json:"error"`
}

// WriteHTTPError writes a JSON error response with the mapped status code
func (h *HTTPErrorHandler) WriteHTTPError(w http.ResponseWriter, err error) {
	appErr := normalize(err)
	h.logger.Warn("request failed",
		zap.String("code", string(appErr.Code)),
		zap.Error(appErr))

	resp := HTTPErrorResponse{}
	resp.Error.Code = appErr.Code
	resp.Error.Message = appErr.Message
	if h.IncludeDetails {
		resp.Error.Details = appErr.Details
		resp.Error.Context = appErr.Context
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusCode(appErr.Code))
	_ = json.NewEncoder(w).Encode(resp)
}

// StatusCode maps error codes to HTTP status codes
func StatusCode(code ErrorCode) int {
	switch code {
	case ErrCodeValidation, ErrCodeInvalidInput, ErrCodeMissingField, ErrCodeMalformedModification:
		return http.StatusBadRequest
	case ErrCodeTemplateNotFound, ErrCodeClauseTemplateNotFound, ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeMissingVariables, ErrCodeIncompatibleClause:
		return http.StatusUnprocessableEntity
	case ErrCodeCatalogFailure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// normalize folds domain error types into the AppError shape so every
// interface sees the same codes
func normalize(err error) *AppError {
	var tnf *TemplateNotFoundError
	if errors.As(err, &tnf) {
		return tnf.ToAppError()
	}
	var cnf *ClauseTemplateNotFoundError
	if errors.As(err, &cnf) {
		return NewAppError(ErrCodeClauseTemplateNotFound, cnf.Error()).
			WithContext("clause_type", cnf.ClauseType)
	}
	var mrv *MissingRequiredVariablesError
	if errors.As(err, &mrv) {
		return NewAppError(ErrCodeMissingVariables, mrv.Error()).
			WithContext("clause_type", mrv.ClauseType).
			WithContext("missing", mrv.Missing)
	}
	var inc *IncompatibleClauseError
	if errors.As(err, &inc) {
		return NewAppError(ErrCodeIncompatibleClause, inc.Error()).
			WithContext("clause_type", inc.ClauseType).
			WithContext("conflicts_with", inc.ConflictsWith)
	}
	var mal *MalformedModificationError
	if errors.As(err, &mal) {
		return NewAppError(ErrCodeMalformedModification, mal.Error())
	}
	return GetAppError(err)
}
