package dto

type RegisterRequestDTO struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequestDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserDTO struct {
	ID        int    `json:"id" example:"1"`
	Email     string `json:"email" example:"jane@example.com"`
	FullName  string `json:"full_name" example:"Jane Doe"`
	Role      string `json:"role" example:"user"`
	CreatedAt string `json:"created_at" example:"2025-06-01T12:00:00Z"`
}

type AuthResponseDTO struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}
