package common

import "golang.org/x/oauth2"

// AuthClient defines the ability to refresh a bearer token pair.
// The school backend issues short-lived access tokens alongside a
// long-lived refresh token; clients call RefreshToken when the access
// token is rejected with 401.
type AuthClient interface {
	// RefreshToken attempts to refresh using the given refresh token string.
	// Returns a new *oauth2.Token on success, or an error if refresh fails.
	RefreshToken(refreshToken string) (*oauth2.Token, error)
}
