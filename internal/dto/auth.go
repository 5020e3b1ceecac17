package dto

import "time"

// TokenRequest exchanges the operator secret for an access token.
type TokenRequest struct {
	Secret string `json:"secret" binding:"required"`
}

// TokenResponse carries an issued access token.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
