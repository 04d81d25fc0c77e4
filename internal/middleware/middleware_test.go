package middleware_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"cadastro/internal/config"
	"cadastro/internal/logger"
	"cadastro/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type staticAuth map[string]string

func (a staticAuth) Authenticate(token string) (string, error) {
	if u, ok := a[token]; ok {
		return u, nil
	}
	return "", errors.New("invalid")
}

func protectedRouter() *gin.Engine {
	r := gin.New()
	r.Use(middleware.AuthMiddleware(staticAuth{"good": "admin"}))
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": middleware.Username(c)})
	})
	return r
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestAuthMiddleware(t *testing.T) {
	r := protectedRouter()

	cases := []struct {
		name   string
		header string
		status int
		err    string
	}{
		{"missing", "", http.StatusUnauthorized, "Token não fornecido"},
		{"no scheme", "good", http.StatusUnauthorized, "Formato de token inválido"},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, "Formato de token inválido"},
		{"lowercase scheme", "bearer good", http.StatusUnauthorized, "Formato de token inválido"},
		{"extra part", "Bearer good extra", http.StatusUnauthorized, "Formato de token inválido"},
		{"bad token", "Bearer invalid.token.here", http.StatusUnauthorized, "Token inválido ou expirado"},
		{"empty token", "Bearer ", http.StatusUnauthorized, "Token inválido ou expirado"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			require.Equal(t, tc.status, w.Code)
			require.Equal(t, tc.err, errorBody(t, w))
		})
	}

	t.Run("valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer good")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"username":"admin"}`, w.Body.String())
	})
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORS())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLoggerAndRecovery(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithOutput(config.LoggingConfig{Level: "info", Format: "json"}, &buf)

	r := gin.New()
	r.Use(middleware.RequestLogger(log), middleware.Recovery(log))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("panic becomes 500", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.Equal(t, "Erro interno do servidor", errorBody(t, w))
		require.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("request id is propagated", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, "req-123", w.Header().Get(middleware.RequestIDHeader))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "req-123", entry["request_id"])
		require.Equal(t, float64(http.StatusOK), entry["status"])
		require.Equal(t, logrus.InfoLevel.String(), entry["level"])
	})
}
