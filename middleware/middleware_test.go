package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/plantnet/plantnet-server/database"
	"github.com/plantnet/plantnet-server/models"
	"github.com/plantnet/plantnet-server/utils"
)

func newTestAuth(t *testing.T) (*Auth, *database.MemoryStore, *utils.TokenService) {
	t.Helper()
	tokens, err := utils.NewTokenService("middleware-secret", time.Hour)
	require.NoError(t, err)
	store := database.NewMemoryStore()
	return NewAuth(tokens, store, zap.NewNop()), store, tokens
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, CallerEmail(c))
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func withToken(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	return req
}

func TestVerifyToken(t *testing.T) {
	auth, _, tokens := newTestAuth(t)
	e := echo.New()
	e.GET("/private", okHandler, auth.VerifyToken)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"unauthorized access"}`, rec.Body.String())

	rec = serve(e, withToken(httptest.NewRequest(http.MethodGet, "/private", nil), "garbage"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	foreign, err := utils.NewTokenService("someone-else", time.Hour)
	require.NoError(t, err)
	forged, err := foreign.GenerateJWT("ivy@example.com")
	require.NoError(t, err)
	rec = serve(e, withToken(httptest.NewRequest(http.MethodGet, "/private", nil), forged))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := tokens.GenerateJWT("ivy@example.com")
	require.NoError(t, err)
	rec = serve(e, withToken(httptest.NewRequest(http.MethodGet, "/private", nil), token))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ivy@example.com", rec.Body.String())
}

func TestRequireRole(t *testing.T) {
	auth, store, tokens := newTestAuth(t)
	ctx := context.Background()

	for _, email := range []string{"ivy@example.com", "seller@example.com", "admin@example.com"} {
		_, err := store.RegisterUser(ctx, models.User{Email: email})
		require.NoError(t, err)
	}
	require.NoError(t, store.SetUserRole(ctx, "seller@example.com", models.RoleSeller))
	require.NoError(t, store.SetUserRole(ctx, "admin@example.com", models.RoleAdmin))

	e := echo.New()
	e.GET("/seller", okHandler, auth.VerifyToken, auth.RequireSeller)
	e.GET("/admin", okHandler, auth.VerifyToken, auth.RequireAdmin)

	tests := []struct {
		email string
		path  string
		want  int
	}{
		{"ivy@example.com", "/seller", http.StatusForbidden},
		{"ivy@example.com", "/admin", http.StatusForbidden},
		{"seller@example.com", "/seller", http.StatusOK},
		{"seller@example.com", "/admin", http.StatusForbidden},
		{"admin@example.com", "/admin", http.StatusOK},
		{"admin@example.com", "/seller", http.StatusForbidden},
		{"ghost@example.com", "/seller", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.email+tt.path, func(t *testing.T) {
			token, err := tokens.GenerateJWT(tt.email)
			require.NoError(t, err)
			rec := serve(e, withToken(httptest.NewRequest(http.MethodGet, tt.path, nil), token))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	e.Use(RequestID)
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get(HeaderXRequestID)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderXRequestID, "abc-123")
	rec = serve(e, req)
	assert.Equal(t, "abc-123", rec.Header().Get(HeaderXRequestID))
}

func TestMetrics_LabelsByRouteTemplate(t *testing.T) {
	m := utils.NewMetrics()
	e := echo.New()
	e.Use(RequestLogger(zap.NewNop()))
	e.Use(Metrics(m))
	e.GET("/plant/:id", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "Plant not found")
	})

	serve(e, httptest.NewRequest(http.MethodGet, "/plant/1", nil))
	serve(e, httptest.NewRequest(http.MethodGet, "/plant/2", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "/plant/:id", "404")))
}
