package dto

import "time"

// ErrorResponse is the JSON envelope returned for every failed request.
//
// Message is always present. ErrorDetails is only filled for client errors;
// database failures never reach this field.
type ErrorResponse struct {
	Message      string    `json:"message" example:"ticker \"XYZ\" not found"`
	ErrorDetails string    `json:"error,omitempty" example:"invalid date"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewErrorResponse builds an ErrorResponse stamped with the current UTC time.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}

func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}
