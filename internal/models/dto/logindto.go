package dto

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// FormResponseDTO is the body of every /api form response. Errors is set
// only when field validation failed.
type FormResponseDTO struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}
