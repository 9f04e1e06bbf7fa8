package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-testing"

func TestGenerateJWT_Success(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	token, err := GenerateJWT("user-123", "test@example.com", 0)

	require.NoError(t, err)
	assert.Equal(t, 3, len(strings.Split(token, ".")), "JWT should have 3 parts")
}

func TestGenerateJWT_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := GenerateJWT("user-123", "test@example.com", time.Hour)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET not set")
}

func TestValidateJWT_ValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	token, err := GenerateJWT("user-123", "test@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateJWT(token)

	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, tokenIssuer, claims.Issuer)
}

func TestValidateJWT_Rejects(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	sign := func(claims Claims, secret string) string {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return token
	}

	valid := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	foreign := valid
	foreign.Issuer = "someone-else"

	tests := map[string]string{
		"expired":      sign(Claims{UserID: "u", RegisteredClaims: expired}, testSecret),
		"wrong secret": sign(Claims{UserID: "u", RegisteredClaims: valid}, "other-secret"),
		"wrong issuer": sign(Claims{UserID: "u", RegisteredClaims: foreign}, testSecret),
		"missing user": sign(Claims{RegisteredClaims: valid}, testSecret),
		"not a jwt":    "abc.def",
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ValidateJWT(token)
			assert.Error(t, err)
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", testSecret)

	token, err := GenerateJWT("user-7", "u7@example.com", time.Hour)
	require.NoError(t, err)

	router := gin.New()
	router.GET("/private", AuthMiddleware(), func(c *gin.Context) {
		id, _ := GetUserID(c)
		c.String(http.StatusOK, id)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "Bearer " + token, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)

			if tt.status == http.StatusOK {
				assert.Equal(t, "user-7", w.Body.String())
			}
		})
	}
}
