package dto

import "apparel-shopfront/internal/model"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	User  *model.User `json:"user"`
	Staff bool        `json:"staff"`
}

type UpdateProfileRequest struct {
	FullName string `json:"fullName"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type AddCartItemRequest struct {
	ProductID int64  `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

type PayURLResponse struct {
	PayURL string `json:"payUrl"`
}

// ErrorResponse is the uniform error envelope of the shopfront's own API.
// Fields is only set for checkout validation failures.
type ErrorResponse struct {
	Code     string            `json:"code,omitempty"`
	Message  string            `json:"message"`
	Fields   map[string]string `json:"fields,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
}
