package types

import "github.com/golang-jwt/jwt/v5"

// RegisterRequest is the register request body.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the login request body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

// RegisterResponse is returned on a successful registration.
type RegisterResponse struct {
	Message string     `json:"message"`
	User    PublicUser `json:"user"`
}

// Response is the generic success/error message envelope.
type Response struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

// Claims are the JWT claims embedded in every bearer token.
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}
