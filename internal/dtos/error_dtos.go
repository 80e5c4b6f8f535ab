package dtos

// ValidationErrorDetail describes a single failed field so clients can
// surface errors inline.
type ValidationErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}
