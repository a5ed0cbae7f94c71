package dto

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Email       string  `json:"email" binding:"required"`
	PhoneNumber string  `json:"phone_number" binding:"required"`
	FullName    string  `json:"full_name" binding:"required,min=2"`
	Password    string  `json:"password" binding:"required,min=6"`
	AvatarURL   *string `json:"avatar_url"`
}

// LoginRequest carries a free-text identifier (email or phone) plus password.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// TokenResponse returns a freshly issued session token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ForgotPasswordRequest starts the reset flow for an email identifier.
type ForgotPasswordRequest struct {
	Identifier string `json:"identifier" binding:"required"`
}

// ResetPasswordRequest consumes a previously mailed 6-digit code.
type ResetPasswordRequest struct {
	Identifier  string `json:"identifier" binding:"required"`
	Code        string `json:"code" binding:"required,len=6"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// ChangePasswordRequest rotates the password of the authenticated user.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// MessageResponse is a generic human-readable acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// AvatarUploadResponse returns where an uploaded avatar ended up.
type AvatarUploadResponse struct {
	URL string `json:"url"`
}
