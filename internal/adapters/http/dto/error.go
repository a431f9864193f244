package dto

// ErrorResponse is the body of every non-chat error.
type ErrorResponse struct {
	Success bool   `json:"success" msgpack:"success"`
	Error   string `json:"error" msgpack:"error"`
	Message string `json:"message,omitempty" msgpack:"message,omitempty"`
	Code    int    `json:"code,omitempty" msgpack:"code,omitempty"`
}

func NewErrorResponse(err string, message string, code int) *ErrorResponse {
	return &ErrorResponse{
		Error:   err,
		Message: message,
		Code:    code,
	}
}
