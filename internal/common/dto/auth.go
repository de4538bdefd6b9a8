package dto

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserInfo represents the authenticated user returned by login and /auth/me
type UserInfo struct {
	ID          uint     `json:"id"`
	Email       string   `json:"email"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}
