package core

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newProtectedProbe(t *testing.T, tokens *TokenService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/probe", AuthRequired(tokens), func(c *gin.Context) {
		p, ok := CurrentPrincipal(c)
		require.True(t, ok, "principal should be attached after auth")
		c.JSON(http.StatusOK, gin.H{"id": p.ID, "token": p.Token})
	})
	return r
}

func doProbe(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeKO(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthRequiredMissingHeader(t *testing.T) {
	tokens := newTestTokenService(t, time.Hour)
	r := newProtectedProbe(t, tokens)

	w := doProbe(r, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeKO(t, w)
	require.Equal(t, "KO", body["result"])
	require.Equal(t, msgNoAuthHeader, body["message"])
}

func TestAuthRequiredMissingTokenSegment(t *testing.T) {
	tokens := newTestTokenService(t, time.Hour)
	r := newProtectedProbe(t, tokens)

	for _, header := range []string{"Bearer", "Bearer "} {
		w := doProbe(r, header)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		body := decodeKO(t, w)
		require.Equal(t, "KO", body["result"])
		require.Equal(t, msgNoBearerToken, body["message"], "header %q", header)
	}
}

func TestAuthRequiredValidToken(t *testing.T) {
	tokens := newTestTokenService(t, time.Hour)
	r := newProtectedProbe(t, tokens)

	tok, err := tokens.Issue("64b5f0c4a1b2c3d4e5f60718")
	require.NoError(t, err)

	w := doProbe(r, "Bearer "+tok)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "64b5f0c4a1b2c3d4e5f60718", body["id"])
	require.Equal(t, tok, body["token"])
}

func TestAuthRequiredExpiredToken(t *testing.T) {
	expired := newTestTokenService(t, -1*time.Second)
	r := newProtectedProbe(t, expired)

	tok, err := expired.Issue("u1")
	require.NoError(t, err)

	w := doProbe(r, "Bearer "+tok)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, msgTokenExpired, decodeKO(t, w)["message"])
}

func TestAuthRequiredInvalidToken(t *testing.T) {
	tokens := newTestTokenService(t, time.Hour)
	r := newProtectedProbe(t, tokens)

	w := doProbe(r, "Bearer definitely.not.valid")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, msgTokenInvalid, decodeKO(t, w)["message"])
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Methods"))
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Headers"))

	// Preflight is answered directly.
	req = httptest.NewRequest(http.MethodOptions, "/ping", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
