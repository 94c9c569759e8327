package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-community-forum/internal/core/auth"
	"go-community-forum/internal/domain"
)

func newAuthedEngine(t *testing.T, j *auth.JWTer, requireRole string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", AuthJWT(j, zap.NewNop(), requireRole), func(c *gin.Context) {
		claims, ok := Identity(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"email": claims.Email, "role": claims.Role})
	})
	return r
}

func doGet(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthJWT_MissingToken(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s"), Issuer: "t", TTL: time.Hour}
	r := newAuthedEngine(t, j, "")

	w := doGet(r, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Unauthorized")
}

func TestAuthJWT_BadToken(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s"), Issuer: "t", TTL: time.Hour}
	r := newAuthedEngine(t, j, "")

	w := doGet(r, "garbage")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s"), Issuer: "t", TTL: -time.Minute}
	tok, err := j.Issue(1, "a@x.com", domain.RoleUser)
	require.NoError(t, err)

	r := newAuthedEngine(t, j, "")
	w := doGet(r, tok)
	// 过期与非法一视同仁
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Unauthorized")
}

func TestAuthJWT_ValidToken(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s"), Issuer: "t", TTL: time.Hour}
	tok, err := j.Issue(7, "a@x.com", domain.RoleUser)
	require.NoError(t, err)

	r := newAuthedEngine(t, j, "")
	w := doGet(r, tok)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "a@x.com")
}

func TestAuthJWT_RoleGate(t *testing.T) {
	j := &auth.JWTer{Secret: []byte("s"), Issuer: "t", TTL: time.Hour}
	r := newAuthedEngine(t, j, domain.RoleAdmin)

	userTok, err := j.Issue(1, "a@x.com", domain.RoleUser)
	require.NoError(t, err)
	w := doGet(r, userTok)
	require.Equal(t, http.StatusForbidden, w.Code)

	adminTok, err := j.Issue(2, "boss@x.com", domain.RoleAdmin)
	require.NoError(t, err)
	w = doGet(r, adminTok)
	require.Equal(t, http.StatusOK, w.Code)
}
