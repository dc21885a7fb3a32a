package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	_, app := newTestServer(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "john",
		"email":    "john@example.com",
		"password": "cat food is tasty",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, body["token"])

	user := body["user"].(map[string]any)
	assert.Equal(t, "john", user["username"])
	assert.Equal(t, "john@example.com", user["email"])
	// The credential hash never appears in responses.
	_, exposed := user["password_hash"]
	assert.False(t, exposed)
}

func TestSignupDuplicate(t *testing.T) {
	_, app := newTestServer(t)
	signupUser(t, app, "john", "john@example.com", "cat food is tasty")

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "John",
		"email":    "other@example.com",
		"password": "cat food is tasty",
	}, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE_IDENTITY", body["code"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "john2",
		"email":    "JOHN@example.com",
		"password": "cat food is tasty",
	}, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE_IDENTITY", body["code"])
}

func TestSignupValidation(t *testing.T) {
	_, app := newTestServer(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "john",
		"email":    "john@example.com",
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "j!",
		"email":    "john@example.com",
		"password": "cat food is tasty",
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	_, app := newTestServer(t)
	signupUser(t, app, "susan", "susan@example.com", "dog biscuits rock")

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "susan",
		"password": "dog biscuits rock",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])

	// Wrong password and unknown user fail identically.
	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "susan",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIAL", body["code"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "nobody",
		"password": "dog biscuits rock",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIAL", body["code"])
}

func TestPasswordResetFlow(t *testing.T) {
	srv, app := newTestServer(t)
	signupUser(t, app, "mary", "mary@example.com", "old password 123")

	// Unknown emails get the exact same response.
	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/reset-password", map[string]string{
		"email": "ghost@example.com",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	unknownMsg := body["message"]

	resp, body = doJSON(t, app, http.MethodPost, "/api/auth/reset-password", map[string]string{
		"email": "mary@example.com",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, unknownMsg, body["message"])

	// The mailer only logs, so mint the token directly for the confirm step.
	user, err := srv.userRepo.GetByEmail(context.Background(), "mary@example.com")
	require.NoError(t, err)
	token, err := srv.tokens.Issue(user.ID, srv.config.ResetTokenTTL)
	require.NoError(t, err)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/reset-password/confirm", map[string]string{
		"token":    token,
		"password": "new password 456",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "mary",
		"password": "new password 456",
	}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "mary",
		"password": "old password 123",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPasswordResetBadToken(t *testing.T) {
	_, app := newTestServer(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/reset-password/confirm", map[string]string{
		"token":    "definitely.not.valid",
		"password": "new password 456",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}
