package dto

import "time"

// LoginRequest defines the credentials for username/password login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned on successful authentication. The refresh token
// travels in an HTTP-only cookie, not in the body.
type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        UserResponse `json:"user"`
}

// RefreshTokenRequest identifies the user refreshing their session; the raw
// refresh token itself is read from the cookie.
type RefreshTokenRequest struct {
	UserID string `json:"userID" binding:"required"`
}

// GoogleCallbackRequest carries a Google ID token for token-based sign-in.
type GoogleCallbackRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}
