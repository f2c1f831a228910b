package dto

// LocationResponse is a stock location.
type LocationResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
