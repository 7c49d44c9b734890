package model

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a backend rejection normalized into a human-readable message
// plus optional per-field validation errors.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string][]string
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msgs := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, "; ")))
	}
	return fmt.Sprintf("api error (%d): %s [%s]", e.StatusCode, e.Message, strings.Join(parts, ", "))
}

// DecodeAPIError turns an error response body into an APIError. The backend
// answers either {"detail": "..."} or a map of field name to error list;
// anything else falls back to a generic status message.
func DecodeAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		apiErr.Message = genericStatusMessage(statusCode)
		return apiErr
	}

	if detail, ok := raw["detail"]; ok {
		var msg string
		if json.Unmarshal(detail, &msg) == nil {
			apiErr.Message = msg
		}
	}

	for field, val := range raw {
		if field == "detail" {
			continue
		}
		var msgs []string
		if json.Unmarshal(val, &msgs) == nil {
			if apiErr.Fields == nil {
				apiErr.Fields = make(map[string][]string)
			}
			apiErr.Fields[field] = msgs
			continue
		}
		var msg string
		if json.Unmarshal(val, &msg) == nil {
			if apiErr.Fields == nil {
				apiErr.Fields = make(map[string][]string)
			}
			apiErr.Fields[field] = []string{msg}
		}
	}

	if apiErr.Message == "" {
		if len(apiErr.Fields) > 0 {
			apiErr.Message = "validation failed"
		} else {
			apiErr.Message = genericStatusMessage(statusCode)
		}
	}
	return apiErr
}

func genericStatusMessage(statusCode int) string {
	if text := http.StatusText(statusCode); text != "" {
		return text
	}
	return fmt.Sprintf("request failed with status %d", statusCode)
}
