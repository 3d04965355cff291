package dto

import "time"

// SignupRequest entrada para registro de empleados (password en texto, se hashea en use case).
type SignupRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	Email      string `json:"email" validate:"required,email"`
	EmployeeID string `json:"employee_id" validate:"omitempty,max=64"`
	Password   string `json:"password" validate:"required,min=8"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	EmployeeID string    `json:"employee_id,omitempty"`
	Role       string    `json:"role"`
	Earning    int64     `json:"earning"`
	CreatedAt  time.Time `json:"created_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
