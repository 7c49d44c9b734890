package auth_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/campushq/schoolapi/common"
	"github.com/campushq/schoolapi/common/model"
	"github.com/campushq/schoolapi/modules/auth"
)

// signedAccessToken mints a JWT with the given expiry, the way the backend's
// token endpoint does.
func signedAccessToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 12,
		"exp":     exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func newTestClient(handler http.Handler) (auth.Client, *httptest.Server) {
	ts := httptest.NewServer(handler)
	httpClient := common.NewHTTPClient("schoolapi-test", &http.Client{})
	return auth.NewClient(ts.URL+"/api/", httpClient), ts
}

func TestClient_Login(t *testing.T) {
	exp := time.Now().Add(15 * time.Minute).Truncate(time.Second)
	access := signedAccessToken(t, exp)

	client, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login/", r.URL.Path)

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds["username"] != "principal" || creds["password"] != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"detail": "No active account found with the given credentials"}`)
			return
		}
		fmt.Fprintf(w, `{
			"access": %q,
			"refresh": "refresh-token",
			"user": {"id": 1, "username": "principal", "role": "principal"}
		}`, access)
	}))
	defer ts.Close()

	session, err := client.Login(context.Background(), "principal", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, access, session.Token.AccessToken)
	assert.Equal(t, "refresh-token", session.Token.RefreshToken)
	assert.Equal(t, model.RolePrincipal, session.User.Role)
	assert.WithinDuration(t, exp, session.Token.Expiry, time.Second,
		"expiry should come from the access token's exp claim")
}

func TestClient_LoginRejected(t *testing.T) {
	client, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"detail": "No active account found with the given credentials"}`)
	}))
	defer ts.Close()

	_, err := client.Login(context.Background(), "nobody", "wrong")
	require.Error(t, err)

	var apiErr *model.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "No active account")
}

func TestClient_RefreshToken(t *testing.T) {
	newAccess := signedAccessToken(t, time.Now().Add(15*time.Minute))

	client, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/token/refresh/", r.URL.Path)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "old-refresh", payload["refresh"])

		fmt.Fprintf(w, `{"access": %q}`, newAccess)
	}))
	defer ts.Close()

	token, err := client.RefreshToken("old-refresh")
	require.NoError(t, err)
	assert.Equal(t, newAccess, token.AccessToken)
	assert.Equal(t, "old-refresh", token.RefreshToken,
		"refresh token is carried over when the backend does not rotate it")
}

func TestClient_RefreshToken_Empty(t *testing.T) {
	client, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	defer ts.Close()

	_, err := client.RefreshToken("")
	assert.Error(t, err)
}

func TestClient_Logout(t *testing.T) {
	client, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/logout/", r.URL.Path)
		w.WriteHeader(http.StatusResetContent)
	}))
	defer ts.Close()

	err := client.Logout(context.Background(), "refresh-token")
	assert.NoError(t, err)
}

func TestClient_CurrentUser(t *testing.T) {
	client, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/user/", r.URL.Path)
		require.Equal(t, "Bearer access-token", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"id": 7, "username": "msmith", "role": "teacher", "profile": {"subject": "History"}}`)
	}))
	defer ts.Close()

	user, err := client.CurrentUser(context.Background(), &oauth2.Token{AccessToken: "access-token"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, model.RoleTeacher, user.Role)
	require.NotNil(t, user.Profile)
	assert.Equal(t, "History", user.Profile.Subject)
}

func TestClient_CurrentUser_NoToken(t *testing.T) {
	client, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	defer ts.Close()

	_, err := client.CurrentUser(context.Background(), nil)
	assert.Error(t, err)
}
