package handler

import (
	"time"

	"github.com/edusign/edusign-api/internal/core/domain"
)

// --- Request / Response types ---

type signupRequest struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
	Age      *int   `json:"age"      validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response-only types owned by the transport layer. Deliberately separate
// from the domain types so the JSON contract cannot grow a hash field by
// accident.

type userResponse struct {
	ID        string     `json:"id"`
	FullName  string     `json:"fullName"`
	Email     string     `json:"email"`
	Age       *int       `json:"age,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

type authResponse struct {
	User userResponse `json:"user"`
}

func signupResponse(a *domain.Account) authResponse {
	createdAt := a.CreatedAt
	return authResponse{User: userResponse{
		ID:        a.ID,
		FullName:  a.FullName,
		Email:     a.Email,
		Age:       a.Age,
		CreatedAt: &createdAt,
	}}
}

func loginResponse(a *domain.Account) authResponse {
	return authResponse{User: userResponse{
		ID:       a.ID,
		FullName: a.FullName,
		Email:    a.Email,
		Age:      a.Age,
	}}
}
