package dto

// ErrorResponse is returned with every 4xx and 5xx response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	VariantID string `json:"variantId,omitempty"`
}
