package models

import (
	"time"
)

// VerificationCode is a one-time code sent to a phone. Rows are never deleted;
// IsUsed flips to true once, on the first successful verification.
type VerificationCode struct {
	ID        int64     `json:"id" db:"id"`
	Phone     string    `json:"phone" db:"phone"`
	Code      string    `json:"code" db:"code"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	IsUsed    bool      `json:"isUsed" db:"is_used"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// SendCodeRequest represents a request to send a verification code
type SendCodeRequest struct {
	Phone string `json:"phone" validate:"required"`
}

// VerifyCodeRequest represents a request to verify a code
type VerifyCodeRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"code" validate:"required"`
}

// RefreshRequest represents a request to mint a new access token
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse is returned after a successful code verification
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse carries a freshly minted access token
type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// CodeDispatch is the message handed to the SMS delivery pipeline
type CodeDispatch struct {
	Phone     string    `json:"phone"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}
