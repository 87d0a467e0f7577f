package hafas

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeAccessDenied   ErrorType = "HAFAS_ACCESS_DENIED"
	ErrorTypeInvalidRequest ErrorType = "HAFAS_INVALID_REQUEST"
	ErrorTypeNotFound       ErrorType = "HAFAS_NOT_FOUND"
	ErrorTypeServerError    ErrorType = "HAFAS_SERVER_ERROR"
	ErrorTypeNoConnections  ErrorType = "NO_CONNECTIONS"
	ErrorTypeGeneric        ErrorType = "ERROR"
)

// APIError is a failed backend request
type APIError struct {
	StatusCode int
	Type       ErrorType
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hafas backend returned %d (%s): %s", e.StatusCode, e.Type, e.Message)
}

// Retryable reports whether repeating the request could succeed
func (e *APIError) Retryable() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
}

type backendErrorBody struct {
	Message      string `json:"message"`
	IsHafasError bool   `json:"isHafasError"`
	Code         string `json:"code"`
}

func newAPIError(statusCode int, body []byte) *APIError {
	apiError := &APIError{
		StatusCode: statusCode,
		Type:       errorTypeFromStatus(statusCode),
		Message:    http.StatusText(statusCode),
	}

	var backendError backendErrorBody
	if json.Unmarshal(body, &backendError) == nil {
		if backendError.Message != "" {
			apiError.Message = backendError.Message
		}
		if backendError.IsHafasError && backendError.Code != "" {
			apiError.Type = ErrorType("HAFAS_" + backendError.Code)
		}
	}

	return apiError
}

func errorTypeFromStatus(statusCode int) ErrorType {
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return ErrorTypeAccessDenied
	case statusCode == http.StatusNotFound:
		return ErrorTypeNotFound
	case statusCode >= http.StatusInternalServerError:
		return ErrorTypeServerError
	case statusCode >= http.StatusBadRequest:
		return ErrorTypeInvalidRequest
	default:
		return ErrorTypeGeneric
	}
}

// ErrorDetails extracts the HTTP status and error type to report for err
func ErrorDetails(err error) (int, ErrorType) {
	var apiError *APIError
	if errors.As(err, &apiError) {
		return apiError.StatusCode, apiError.Type
	}

	return http.StatusBadGateway, ErrorTypeGeneric
}
