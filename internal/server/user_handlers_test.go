package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMyProfile(t *testing.T) {
	_, app := newTestServer(t)
	token := signupUser(t, app, "john", "john@example.com", "cat food is tasty")

	resp, body := doJSON(t, app, http.MethodGet, "/api/users/me", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	user := body["user"].(map[string]any)
	assert.Equal(t, "john", user["username"])
	// md5("john@example.com"), the stable gravatar key for this address.
	assert.Equal(t,
		"https://www.gravatar.com/avatar/d4c74594d841139328695756648b6bd6?d=identicon&s=128",
		body["avatar"])

	resp, _ = doJSON(t, app, http.MethodGet, "/api/users/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUpdateMyProfile(t *testing.T) {
	_, app := newTestServer(t)
	token := signupUser(t, app, "john", "john@example.com", "cat food is tasty")

	resp, body := doJSON(t, app, http.MethodPut, "/api/users/me", map[string]any{
		"about_me": "I write Go for fun",
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user := body["user"].(map[string]any)
	assert.Equal(t, "I write Go for fun", user["about_me"])

	// Username change to a taken name conflicts.
	signupUser(t, app, "susan", "susan@example.com", "dog biscuits rock")
	resp, respBody := doJSON(t, app, http.MethodPut, "/api/users/me", map[string]any{
		"username": "susan",
	}, token)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE_IDENTITY", respBody["code"])
}

func TestGetUserProfile(t *testing.T) {
	_, app := newTestServer(t)
	johnToken := signupUser(t, app, "john", "john@example.com", "cat food is tasty")
	signupUser(t, app, "susan", "susan@example.com", "dog biscuits rock")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/posts", map[string]string{"body": "hello"}, johnToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodPost, "/api/users/susan/follow", nil, johnToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Lookup is case-insensitive.
	resp, body := doJSON(t, app, http.MethodGet, "/api/users/John", nil, johnToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	user := body["user"].(map[string]any)
	assert.Equal(t, "john", user["username"])

	follow := body["follow"].(map[string]any)
	assert.Equal(t, float64(0), follow["followers"])
	assert.Equal(t, float64(1), follow["following"])

	posts := body["posts"].([]any)
	require.Len(t, posts, 1)
	assert.Equal(t, "hello", posts[0].(map[string]any)["body"])
}

func TestGetUserProfileNotFound(t *testing.T) {
	_, app := newTestServer(t)
	token := signupUser(t, app, "john", "john@example.com", "cat food is tasty")

	resp, body := doJSON(t, app, http.MethodGet, "/api/users/ghost", nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestListUsers(t *testing.T) {
	_, app := newTestServer(t)
	signupUser(t, app, "john", "john@example.com", "cat food is tasty")
	signupUser(t, app, "susan", "susan@example.com", "dog biscuits rock")

	resp, body := doJSON(t, app, http.MethodGet, "/api/users", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	users := body["users"].([]any)
	assert.Len(t, users, 2)
}
