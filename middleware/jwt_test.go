package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, key []byte, username string) string {
	t.Helper()
	claims := &Claims{
		Username: username,
		UserHash: UserHashFromUsername(username, key),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func callJWT(key []byte, authorization string) (echo.Context, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	handler := JWT(key)(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return c, handler(c)
}

func TestJWTAcceptsBareAndBearerTokens(t *testing.T) {
	key := []byte("signing-key")
	token := signedToken(t, key, "jury")

	for _, header := range []string{token, "Bearer " + token} {
		c, err := callJWT(key, header)
		require.NoError(t, err, header)
		assert.Equal(t, "jury", c.Get("username"))
		assert.Equal(t, UserHashFromUsername("jury", key), c.Get("user_hash"))
	}
}

func TestJWTRejectsBadTokens(t *testing.T) {
	key := []byte("signing-key")

	_, err := callJWT(key, "")
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)

	// Signed with a different key.
	_, err = callJWT(key, signedToken(t, []byte("other-key"), "jury"))
	require.Error(t, err)
}

func TestUserHashFromUsernameNormalizes(t *testing.T) {
	key := []byte("signing-key")
	assert.Equal(t, UserHashFromUsername("Jury", key), UserHashFromUsername("  jury ", key))
	assert.NotEqual(t, UserHashFromUsername("jury", key), UserHashFromUsername("jury", []byte("other")))
}
