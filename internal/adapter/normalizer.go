package adapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// msgUnexpected is the placeholder used while extracting a message from the
// response body; any status-specific fallback only applies when extraction
// left this value in place.
const msgUnexpected = "An unexpected error occurred"

// backendErrorKind identifies which of the known backend error shapes a
// failed response body matched.
type backendErrorKind int

const (
	errKindUnknown    backendErrorKind = iota
	errKindPlain                       // body is a bare string
	errKindDetail                      // {"detail": ...}
	errKindMessage                     // {"message": ...}
	errKindErrorField                  // {"error": ...}
	errKindValidation                  // [{"loc": [...], "msg": ...}, ...]
)

// backendError is the decoded form of a failed response body. Exactly one
// variant carries data, selected by kind.
type backendError struct {
	kind   backendErrorKind
	text   string           // errKindPlain, errKindMessage, errKindErrorField, string detail
	detail *errorDetail     // errKindDetail with an object detail
	items  []validationItem // errKindValidation
}

// errorDetail is the backend's structured error envelope, produced by its
// API error handler: {"detail": {"error_type": ..., "message": ...}}.
type errorDetail struct {
	ErrorType string `json:"error_type"`
	Message   string `json:"message"`

	raw json.RawMessage
}

// validationItem is one entry of an itemized validation failure.
type validationItem struct {
	Loc     []any  `json:"loc"`
	Field   string `json:"field"`
	Msg     string `json:"msg"`
	Message string `json:"message"`

	text   string // set when the array entry was a bare string
	isText bool
}

// decodeBackendError classifies body into one of the known error shapes.
// A body that is not valid JSON is treated as a plain string verbatim.
func decodeBackendError(body []byte) backendError {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return backendError{kind: errKindUnknown}
	}

	switch body[0] {
	case '"':
		var s string
		if err := json.Unmarshal(body, &s); err == nil {
			return backendError{kind: errKindPlain, text: s}
		}
	case '[':
		var entries []json.RawMessage
		if err := json.Unmarshal(body, &entries); err == nil {
			items := make([]validationItem, 0, len(entries))
			for _, raw := range entries {
				var s string
				if json.Unmarshal(raw, &s) == nil {
					items = append(items, validationItem{text: s, isText: true})
					continue
				}
				var item validationItem
				if json.Unmarshal(raw, &item) == nil {
					items = append(items, item)
				}
			}
			return backendError{kind: errKindValidation, items: items}
		}
	case '{':
		var envelope struct {
			Detail  json.RawMessage `json:"detail"`
			Message *string         `json:"message"`
			Error   *string         `json:"error"`
		}
		if err := json.Unmarshal(body, &envelope); err == nil {
			switch {
			case len(envelope.Detail) > 0:
				return decodeDetail(envelope.Detail)
			case envelope.Message != nil:
				return backendError{kind: errKindMessage, text: *envelope.Message}
			case envelope.Error != nil:
				return backendError{kind: errKindErrorField, text: *envelope.Error}
			}
			return backendError{kind: errKindUnknown}
		}
	}

	return backendError{kind: errKindPlain, text: string(body)}
}

func decodeDetail(raw json.RawMessage) backendError {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return backendError{kind: errKindDetail, text: s}
	}

	var detail errorDetail
	if json.Unmarshal(raw, &detail) == nil {
		detail.raw = raw
		return backendError{kind: errKindDetail, detail: &detail}
	}

	return backendError{kind: errKindDetail, detail: &errorDetail{raw: raw}}
}

// message extracts the human-readable text for the matched shape. The
// boolean is false when the body yielded nothing usable.
func (e backendError) message() (string, bool) {
	switch e.kind {
	case errKindPlain, errKindMessage, errKindErrorField:
		return e.text, e.text != ""
	case errKindDetail:
		if e.detail == nil {
			return e.text, e.text != ""
		}
		if e.detail.Message != "" {
			return e.detail.Message, true
		}
		if e.detail.ErrorType != "" {
			return e.detail.ErrorType, true
		}
		// Unrecognized detail object: surface it serialized rather than
		// swallowing it.
		return string(e.detail.raw), len(e.detail.raw) > 0
	case errKindValidation:
		if len(e.items) == 0 {
			return "", false
		}
		parts := make([]string, 0, len(e.items))
		for _, item := range e.items {
			parts = append(parts, item.render())
		}
		return strings.Join(parts, ", "), true
	}
	return "", false
}

func (v validationItem) render() string {
	if v.isText {
		return v.text
	}

	field := v.Field
	if len(v.Loc) > 0 {
		segments := make([]string, 0, len(v.Loc))
		for _, seg := range v.Loc {
			segments = append(segments, fmt.Sprint(seg))
		}
		field = strings.Join(segments, ".")
	}
	if field == "" {
		field = "field"
	}

	msg := v.Msg
	if msg == "" {
		msg = v.Message
	}
	if msg == "" {
		msg = "validation error"
	}

	return field + ": " + msg
}

// normalizeError turns a failed call into an *APIError with a single display
// message. transportErr is non-nil when the request never produced a
// response; login marks the call as the login endpoint, which suppresses the
// logout side effect and swaps the 401 text for a credentials message.
func normalizeError(status int, body []byte, transportErr error, login bool) *APIError {
	if transportErr != nil {
		return newAPIError(0, "Error: "+transportErr.Error(), login, transportErr)
	}

	message := msgUnexpected
	if extracted, ok := decodeBackendError(body).message(); ok {
		message = extracted
	}

	switch status {
	case http.StatusBadRequest:
		if message == msgUnexpected {
			message = "Bad request. Check the submitted data"
		}
	case http.StatusUnauthorized:
		if !login {
			message = "Not authorized. Please sign in again"
		} else if message == msgUnexpected {
			message = "Invalid credentials. Check your username and password"
		}
	case http.StatusForbidden:
		if message == msgUnexpected {
			message = "Access denied"
		}
	case http.StatusNotFound:
		if message == msgUnexpected {
			message = "Resource not found"
		}
	case http.StatusUnprocessableEntity:
		if message == msgUnexpected {
			message = "Invalid input data"
		}
	case http.StatusInternalServerError:
		if message == msgUnexpected {
			message = "Internal server error"
		}
	default:
		if message == msgUnexpected {
			text := http.StatusText(status)
			if text == "" {
				text = "unknown error"
			}
			message = fmt.Sprintf("Error %d: %s", status, text)
		}
	}

	return newAPIError(status, message, login, nil)
}
