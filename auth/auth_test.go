package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyago/middleware"
	"voyago/models"
)

// Logout extracts the bearer token from the Authorization header and
// validates it before touching any state. This round-trips a freshly issued
// access token through that exact path.
func TestIssuedTokenSurvivesBearerExtraction(t *testing.T) {
	user := &models.User{
		UserID:   "uLogout1",
		Username: "mira",
		Role:     []string{"user"},
	}
	token, err := generateAccessToken(user)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	bare := getBearerToken(r)
	require.NotEmpty(t, bare)
	assert.Equal(t, token, bare)

	claims, err := middleware.ValidateJWT(bare)
	require.NoError(t, err, "a freshly issued token must validate")
	assert.Equal(t, user.UserID, claims.UserID)
	assert.Equal(t, user.Username, claims.Username)
}

func TestGetBearerToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	assert.Empty(t, getBearerToken(r))

	r.Header.Set("Authorization", "Token abc")
	assert.Empty(t, getBearerToken(r))

	r.Header.Set("Authorization", "Bearer abc")
	assert.Equal(t, "abc", getBearerToken(r))
}
