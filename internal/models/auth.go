package models

// LoginRequest is the admin login form.
type LoginRequest struct {
	LoginID  string `json:"login_id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is what the API issues on a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// SignupRequest is the admin signup form. ConfirmPassword never leaves the console.
type SignupRequest struct {
	LoginID         string `json:"login_id" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password"`
}
