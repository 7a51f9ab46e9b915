package dto

type RateLimitResponse struct {
	Message string `json:"message"`
}

type HealthResponseDTO struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}
