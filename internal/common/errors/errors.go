// Package errors provides standardized error handling for the content pipeline.
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
	// Provider errors. A single adapter failure is recovered by the router
	// and never surfaced; these codes classify what the router logs.
	ErrCodeProviderCallFailed      ErrorCode = "PROVIDER_CALL_FAILED"
	ErrCodeProviderTimeout         ErrorCode = "PROVIDER_TIMEOUT"
	ErrCodeProviderResponseInvalid ErrorCode = "PROVIDER_RESPONSE_INVALID"

	// Storage / grouping errors.
	ErrCodeStorageListFailed ErrorCode = "STORAGE_LIST_FAILED"

	// Datastore errors.
	ErrCodeDatabaseInsertFailed ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeDatabaseUpdateFailed ErrorCode = "DATABASE_UPDATE_FAILED"
	ErrCodeSlugLookupFailed     ErrorCode = "SLUG_LOOKUP_FAILED"

	// Batch errors.
	ErrCodeBatchItemFailed ErrorCode = "BATCH_ITEM_FAILED"

	// Notification errors.
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
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
// 2. Error Constructors
// ==========================

// NewProviderCallFailedError classifies a failed adapter call. Retryable in
// the sense that the router advances to the next adapter, not that the same
// adapter is retried.
func NewProviderCallFailedError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderCallFailed,
		Message:   fmt.Sprintf("Provider '%s' call failed", provider),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderTimeoutError classifies an adapter call that exceeded its window.
func NewProviderTimeoutError(provider string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderTimeout,
		Message:   fmt.Sprintf("Provider '%s' call timed out", provider),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderResponseInvalidError classifies a structurally invalid response.
func NewProviderResponseInvalidError(provider, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderResponseInvalid,
		Message:   fmt.Sprintf("Provider '%s' returned an invalid response", provider),
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStorageListFailedError creates a retryable storage listing error.
func NewStorageListFailedError(path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageListFailed,
		Message:   "Storage listing failed",
		Details:   fmt.Sprintf("path: %s, error: %s", path, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseInsertFailedError creates a retryable database insert error.
func NewDatabaseInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseInsertFailed,
		Message:   "Database insert operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseUpdateFailedError creates a retryable database update error.
func NewDatabaseUpdateFailedError(id string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseUpdateFailed,
		Message:   "Database update operation failed",
		Details:   fmt.Sprintf("id: %s, error: %s", id, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSlugLookupFailedError creates a retryable slug lookup error.
func NewSlugLookupFailedError(slug string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSlugLookupFailed,
		Message:   "Slug lookup failed",
		Details:   fmt.Sprintf("slug: %s, error: %s", slug, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewBatchItemFailedError wraps the error that broke one batch item. The
// batch itself continues; this is only recorded against the item's key.
func NewBatchItemFailedError(itemKey string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeBatchItemFailed,
		Message:   "Batch item processing failed",
		Details:   err.Error(),
		Retryable: false,
		Metadata:  map[string]interface{}{"itemKey": itemKey},
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// IsRetryable checks if a StandardError is retryable.
func IsRetryable(err error) bool {
	if se, ok := err.(*StandardError); ok {
		return se.Retryable
	}
	return false
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "PROVIDER"):
		return "PROVIDER"
	case strings.Contains(codeStr, "STORAGE"):
		return "STORAGE"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "SLUG"):
		return "DATABASE"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "BATCH"):
		return "BATCH"
	default:
		return "OTHER"
	}
}
