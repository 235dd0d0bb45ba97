package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyago/globals"
)

func signTestToken(t *testing.T, userID string) string {
	t.Helper()
	claims := &Claims{
		Username: "mira",
		UserID:   userID,
		Role:     []string{"user"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	require.NoError(t, err)
	return token
}

func TestValidateJWTAcceptsBearerHeader(t *testing.T) {
	token := signTestToken(t, "u123")

	// full Authorization header value, as handlers pass it
	claims, err := ValidateJWT("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "u123", claims.UserID)

	// bare token
	claims, err = ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "u123", claims.UserID)
}

func TestValidateJWTRejectsBadTokens(t *testing.T) {
	_, err := ValidateJWT("")
	assert.Error(t, err)

	_, err = ValidateJWT("Bearer ")
	assert.Error(t, err)

	token := signTestToken(t, "u123")
	_, err = ValidateJWT("Bearer " + token + "tampered")
	assert.Error(t, err)
}

func TestAuthenticateSetsUserID(t *testing.T) {
	var gotUserID string
	handle := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUserID = RequestingUserID(r)
	})

	r := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	r.Header.Set("Authorization", "Bearer "+signTestToken(t, "u456"))
	w := httptest.NewRecorder()
	handle(w, r, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u456", gotUserID)
}

func TestOptionalAuth(t *testing.T) {
	var gotUserID string
	handle := OptionalAuth(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUserID = RequestingUserID(r)
	})

	// anonymous callers pass straight through
	r := httptest.NewRequest(http.MethodGet, "/api/shared/tok", nil)
	w := httptest.NewRecorder()
	handle(w, r, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, gotUserID)

	// a valid token identifies the caller
	r = httptest.NewRequest(http.MethodGet, "/api/shared/tok", nil)
	r.Header.Set("Authorization", "Bearer "+signTestToken(t, "u789"))
	w = httptest.NewRecorder()
	handle(w, r, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u789", gotUserID)
}
