package dto

// MessageResponse is the body returned by delete endpoints
type MessageResponse struct {
	Message string `json:"message"`
}
