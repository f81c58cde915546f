package net

import (
	"encoding/json"
	"net/http"

	perr "itinerary/internal/platform/errors"
)

// Envelope wraps every JSON body the API writes, successes and failures alike
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	JobID      string         `json:"job_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Reply builds a success envelope for data
func Reply(status int, data any, reqID, jobID string) Envelope {
	return Envelope{
		StatusCode: status,
		Status:     http.StatusText(status),
		RequestID:  reqID,
		JobID:      jobID,
		Data:       data,
	}
}

// Failure maps err to its HTTP status and an error envelope.
// A nil err is a plain 200
func Failure(err error, reqID, jobID string) (int, Envelope) {
	if err == nil {
		return http.StatusOK, Reply(http.StatusOK, nil, reqID, jobID)
	}
	status := perr.HTTPStatus(err)
	w := perr.WireFrom(err)
	return status, Envelope{
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       w.Code,
		Error:      w.Message,
		Field:      w.Field,
		RequestID:  reqID,
		JobID:      jobID,
	}
}

// WriteJSON writes v with status as UTF-8 JSON
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
