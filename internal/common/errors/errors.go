// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeRecordNotFound    ErrorCode = "RECORD_NOT_FOUND"
	ErrCodeUnknownCollection ErrorCode = "UNKNOWN_COLLECTION"
	ErrCodeInvalidTransition ErrorCode = "INVALID_STAGE_TRANSITION"
	ErrCodeRecordValidation  ErrorCode = "RECORD_VALIDATION_FAILED"
	ErrCodeDuplicateRecord   ErrorCode = "DUPLICATE_RECORD"

	ErrCodeImportParseFailed     ErrorCode = "IMPORT_PARSE_FAILED"
	ErrCodeImportUnsupportedType ErrorCode = "IMPORT_UNSUPPORTED_TYPE"
	ErrCodeImportSchemaViolation ErrorCode = "IMPORT_SCHEMA_VIOLATION"
	ErrCodeExportFailed          ErrorCode = "EXPORT_FAILED"

	ErrCodePaymentTermsInvalid ErrorCode = "PAYMENT_TERMS_INVALID"

	ErrCodeCommunicationSendFailed ErrorCode = "COMMUNICATION_SEND_FAILED"
	ErrCodeCommunicationChannel    ErrorCode = "COMMUNICATION_CHANNEL_INVALID"

	ErrCodeLenderRequired ErrorCode = "LENDER_REQUIRED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewRecordNotFoundError creates a non-retryable not-found error.
func NewRecordNotFoundError(collection string, id int) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecordNotFound,
		Message:   "Record not found",
		Details:   fmt.Sprintf("collection: %s, id: %d", collection, id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownCollectionError creates a non-retryable unknown collection error.
func NewUnknownCollectionError(collection string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownCollection,
		Message:   "Unknown record collection",
		Details:   fmt.Sprintf("collection: %s", collection),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidTransitionError creates a non-retryable status transition error.
func NewInvalidTransitionError(entity, from, to string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidTransition,
		Message:   "Status transition not allowed",
		Details:   fmt.Sprintf("entity: %s, from: %s, to: %s", entity, from, to),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRecordValidationError creates a non-retryable validation error.
func NewRecordValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecordValidation,
		Message:   "Record data validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewImportParseFailedError creates a non-retryable import parse error.
func NewImportParseFailedError(format string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeImportParseFailed,
		Message:   "Import payload could not be parsed",
		Details:   fmt.Sprintf("format: %s, error: %s", format, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewImportUnsupportedTypeError creates a non-retryable unsupported format error.
func NewImportUnsupportedTypeError(format string) *StandardError {
	return &StandardError{
		Code:      ErrCodeImportUnsupportedType,
		Message:   "Unsupported import file type",
		Details:   fmt.Sprintf("format: %s", format),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewImportSchemaViolationError creates a non-retryable schema validation error.
func NewImportSchemaViolationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeImportSchemaViolation,
		Message:   "Import payload failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewExportFailedError creates a non-retryable export error.
func NewExportFailedError(collection string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExportFailed,
		Message:   "Export failed",
		Details:   fmt.Sprintf("collection: %s, error: %s", collection, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPaymentTermsInvalidError creates a non-retryable payment terms error.
func NewPaymentTermsInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodePaymentTermsInvalid,
		Message:   "Payment option terms are invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCommunicationSendFailedError creates a retryable delivery error.
func NewCommunicationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCommunicationSendFailed,
		Message:   "Communication delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCommunicationChannelError creates a non-retryable channel error.
func NewCommunicationChannelError(channel string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCommunicationChannel,
		Message:   "Unsupported communication channel",
		Details:   fmt.Sprintf("channel: %s", channel),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewLenderRequiredError creates a non-retryable lender error.
func NewLenderRequiredError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeLenderRequired,
		Message:   "A lender must be specified",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// Generic constructors

func NewBusinessRuleError(message, details string) *StandardError {
	return &StandardError{
		Code:      "BUSINESS_RULE_VIOLATION",
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "TIMEOUT_ERROR",
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return &StandardError{
		Code:      "RESOURCE_NOT_FOUND",
		Message:   fmt.Sprintf("Resource not found in %s", service),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewAuthenticationError(details string) *StandardError {
	return &StandardError{
		Code:      "AUTHENTICATION_ERROR",
		Message:   "Authentication failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes (same as internal).
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeRecordNotFound:          "RECORD_NOT_FOUND",
	ErrCodeUnknownCollection:       "UNKNOWN_COLLECTION",
	ErrCodeInvalidTransition:       "INVALID_STAGE_TRANSITION",
	ErrCodeRecordValidation:        "RECORD_VALIDATION_FAILED",
	ErrCodeDuplicateRecord:         "DUPLICATE_RECORD",
	ErrCodeImportParseFailed:       "IMPORT_PARSE_FAILED",
	ErrCodeImportUnsupportedType:   "IMPORT_UNSUPPORTED_TYPE",
	ErrCodeImportSchemaViolation:   "IMPORT_SCHEMA_VIOLATION",
	ErrCodeExportFailed:            "EXPORT_FAILED",
	ErrCodePaymentTermsInvalid:     "PAYMENT_TERMS_INVALID",
	ErrCodeCommunicationSendFailed: "COMMUNICATION_SEND_FAILED",
	ErrCodeCommunicationChannel:    "COMMUNICATION_CHANNEL_INVALID",
	ErrCodeLenderRequired:          "LENDER_REQUIRED",
}

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeCommunicationSendFailed:
		return 3 // Retryable delivery errors

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code) // Fallback
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "IMPORT") || strings.Contains(codeStr, "EXPORT"):
		return "IMPORT/EXPORT"
	case strings.Contains(codeStr, "TRANSITION") || strings.Contains(codeStr, "LENDER"):
		return "LIFECYCLE"
	case strings.Contains(codeStr, "COMMUNICATION"):
		return "COMMUNICATION"
	case strings.Contains(codeStr, "PAYMENT"):
		return "DESKING"
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	case strings.Contains(codeStr, "NOT_FOUND") || strings.Contains(codeStr, "COLLECTION"):
		return "STORE"
	default:
		return "OTHER"
	}
}
