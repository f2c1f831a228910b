package dto

// LoginRequest describes staff credentials payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
