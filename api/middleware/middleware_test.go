package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/api/ctxutil"
	"storefront/api/response"
	"storefront/config"
	"storefront/domain/shared"
	"storefront/domain/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type staticTokens map[string]shared.Principal

func (s staticTokens) Parse(token string) (shared.Principal, error) {
	if p, ok := s[token]; ok {
		return p, nil
	}
	return shared.Principal{}, shared.NewUnauthorizedError("Not authorized, token failed")
}

type staticUsers map[string]*user.User

func (s staticUsers) FindByID(ctx context.Context, id string) (*user.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, user.NewUserNotFoundError(id)
}

func account(t *testing.T, id string, role shared.Role) *user.User {
	t.Helper()
	u, err := user.NewUser(id, "Name "+id, id+"@example.com", user.Contact{})
	require.NoError(t, err)
	require.NoError(t, u.ChangeRole(role))
	return u
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	engine.Use(RequestIDMiddleware(), RecoveryMiddleware())
	engine.Use(handlers...)
	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": ctxutil.Principal(c).UserID})
	})
	return engine
}

func get(engine *gin.Engine, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRequestIDPropagation(t *testing.T) {
	engine := newEngine()

	rec := get(engine, http.Header{RequestIDHeader: {"abc-123"}})
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	rec = get(engine, nil)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestAuthenticate(t *testing.T) {
	tokens := staticTokens{
		"good":  {UserID: "alice", Role: shared.RoleUser},
		"ghost": {UserID: "ghost", Role: shared.RoleUser},
	}
	users := staticUsers{"alice": account(t, "alice", shared.RoleUser)}
	engine := newEngine(Authenticate(tokens, users))

	rec := get(engine, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authorized, no token", decode(t, rec).Message)

	rec = get(engine, http.Header{"Authorization": {"Bearer forged"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = get(engine, http.Header{"Authorization": {"Bearer good"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user":"alice"}`, rec.Body.String())

	rec = get(engine, http.Header{"Authorization": {"Bearer ghost"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "User not found", decode(t, rec).Message)

	users["alice"].Deactivate()
	rec = get(engine, http.Header{"Authorization": {"Bearer good"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "User account is deactivated", decode(t, rec).Message)
}

func TestRequireRole(t *testing.T) {
	tokens := staticTokens{
		"user":  {UserID: "alice", Role: shared.RoleUser},
		"admin": {UserID: "root", Role: shared.RoleAdmin},
	}
	users := staticUsers{
		"alice": account(t, "alice", shared.RoleUser),
		"root":  account(t, "root", shared.RoleAdmin),
	}
	engine := newEngine(Authenticate(tokens, users), RequireRole(shared.RoleAdmin))

	rec := get(engine, http.Header{"Authorization": {"Bearer user"}})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "FORBIDDEN", body.Error)
	assert.Equal(t, "Role (user) is not allowed to access this resource", body.Message)

	rec = get(engine, http.Header{"Authorization": {"Bearer admin"}})
	assert.Equal(t, http.StatusOK, rec.Code)

	// the stored role wins over the role baked into the token
	require.NoError(t, users["root"].ChangeRole(shared.RoleUser))
	rec = get(engine, http.Header{"Authorization": {"Bearer admin"}})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Role (user) is not allowed to access this resource", decode(t, rec).Message)
}

func TestRateLimit(t *testing.T) {
	engine := newEngine(RateLimitMiddleware(&config.RateLimitConfig{Enabled: true, Rate: 0.001, Burst: 1}))

	assert.Equal(t, http.StatusOK, get(engine, nil).Code)

	rec := get(engine, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", decode(t, rec).Error)

	disabled := newEngine(RateLimitMiddleware(&config.RateLimitConfig{Enabled: false}))
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, get(disabled, nil).Code)
	}
}

func TestRecovery(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestIDMiddleware(), RecoveryMiddleware())
	engine.GET("/ping", func(c *gin.Context) { panic("nil map write") })

	rec := get(engine, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "internal server error", body.Message)
	assert.NotContains(t, rec.Body.String(), "nil map")
}

func TestCORS(t *testing.T) {
	engine := newEngine(CORSMiddleware(&config.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000"},
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Authorization"},
		MaxAge:       600,
	}))

	rec := get(engine, http.Header{"Origin": {"http://localhost:3000"}})
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))

	rec = get(engine, http.Header{"Origin": {"http://evil.test"}})
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
