package boarddto

// Error codes returned by the board API.
const (
	CodeNotFound   = "not_found"
	CodeConflict   = "conflict"
	CodeBadRequest = "bad_request"
	CodeInternal   = "internal"
)

// DomainError is the JSON error body of the board API.
type DomainError struct {
	Code      string `json:"code"`
	Message   string `json:"error"`
	Retryable bool   `json:"retryable,omitempty"`
}

func (e DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	return "board service error"
}
