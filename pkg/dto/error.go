package dto

// ErrorResponse is the envelope every JSON relay error uses.
type ErrorResponse struct {
	Error string `json:"error"`
}
