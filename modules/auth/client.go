package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/campushq/schoolapi/common"
	"github.com/campushq/schoolapi/common/model"
)

// Client handles the backend's token-based auth flow: login issues an
// access/refresh pair, refresh trades the refresh token for a new access
// token, logout blacklists the refresh token server-side.
//
// Client satisfies common.AuthClient, so it can be plugged into the school
// client for transparent refresh on 401.
type Client interface {
	Login(ctx context.Context, username, password string) (*model.Session, error)
	RefreshToken(refreshToken string) (*oauth2.Token, error)
	Logout(ctx context.Context, refreshToken string) error
	CurrentUser(ctx context.Context, token *oauth2.Token) (*model.User, error)
}

type authClient struct {
	baseURL    string
	httpClient common.HttpClient
}

// NewClient constructs an auth Client. baseURL is the API root, e.g.
// "https://school.example.com/api/".
func NewClient(baseURL string, httpClient common.HttpClient) Client {
	return &authClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// Login authenticates with username/password and returns the session: the
// bearer token pair plus the user record the backend includes in the login
// response.
func (c *authClient) Login(ctx context.Context, username, password string) (*model.Session, error) {
	payload := map[string]string{"username": username, "password": password}
	data, err := c.postJSON(ctx, "auth/login/", payload, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var resp model.LoginResponse
	if err := model.JSONUnmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	return &model.Session{
		Token: tokenPair(resp.Access, resp.Refresh),
		User:  resp.User,
	}, nil
}

// RefreshToken exchanges the refresh token for a new access token. The
// refresh token itself is carried over unless the backend rotates it.
func (c *authClient) RefreshToken(refreshToken string) (*oauth2.Token, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("no refresh token provided")
	}
	payload := map[string]string{"refresh": refreshToken}
	data, err := c.postJSON(context.Background(), "auth/token/refresh/", payload, nil, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}

	var resp model.RefreshResponse
	if err := model.JSONUnmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode refresh response: %w", err)
	}
	if resp.Refresh == "" {
		resp.Refresh = refreshToken
	}
	return tokenPair(resp.Access, resp.Refresh), nil
}

// Logout blacklists the refresh token. The caller is responsible for
// discarding any locally stored tokens and clearing caches.
func (c *authClient) Logout(ctx context.Context, refreshToken string) error {
	payload := map[string]string{"refresh": refreshToken}
	_, err := c.postJSON(ctx, "auth/logout/", payload, nil, http.StatusResetContent)
	return err
}

// CurrentUser returns the account behind the given access token.
func (c *authClient) CurrentUser(ctx context.Context, token *oauth2.Token) (*model.User, error) {
	if token == nil || token.AccessToken == "" {
		return nil, fmt.Errorf("no token provided")
	}
	urlStr, err := c.buildURL("auth/user/")
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	data, status, err := c.execute(req)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, model.DecodeAPIError(status, data)
	}

	var user model.User
	if err := model.JSONUnmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return &user, nil
}

// postJSON marshals payload and POSTs it to endpoint, returning the body when
// the status matches expectedStatus.
func (c *authClient) postJSON(ctx context.Context, endpoint string, payload any, token *oauth2.Token, expectedStatus int) ([]byte, error) {
	urlStr, err := c.buildURL(endpoint)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, urlStr, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if token != nil && token.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	}

	data, status, err := c.execute(req)
	if err != nil {
		return nil, err
	}
	if status != expectedStatus {
		return nil, model.DecodeAPIError(status, data)
	}
	return data, nil
}

func (c *authClient) execute(req *http.Request) ([]byte, int, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	data, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %v", readErr)
	}
	return data, resp.StatusCode, nil
}

func (c *authClient) buildURL(endpoint string) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	path, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint: %w", err)
	}
	return base.ResolveReference(path).String(), nil
}

// tokenPair assembles an oauth2.Token, stamping Expiry from the access
// token's exp claim so callers can refresh proactively.
func tokenPair(access, refresh string) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		Expiry:       accessTokenExpiry(access),
	}
}

// accessTokenExpiry reads the exp claim without verifying the signature;
// the token is opaque credential material here, not something we trust.
// A zero time means the expiry could not be determined.
func accessTokenExpiry(access string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(access, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
