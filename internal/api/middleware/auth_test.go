package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"todo_api/internal/common/security"
	"todo_api/internal/domain/model"
	"todo_api/internal/platform/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupJWT(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{
		AccessTokenKey:  []byte("test-access-secret"),
		RefreshTokenKey: []byte("test-refresh-secret"),
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 7 * 24 * time.Hour,
	}
	security.InitJWT()
}

func protectedRouter(extra ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(security.AccessAuth))
	r.Use(Authenticator)
	for _, mw := range extra {
		r.Use(mw)
	}
	r.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
		id, _ := GetUserIDFromContext(r.Context())
		role, _ := GetUserRoleFromContext(r.Context())
		w.Write([]byte(id + ":" + role))
	})
	r.Get("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	return r
}

func doGet(t *testing.T, h http.Handler, path, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticatorMissingToken(t *testing.T) {
	setupJWT(t)
	rec := doGet(t, protectedRouter(), "/whoami", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "No authentication token provided")
}

// Expired tokens get a distinct message so clients know a silent refresh is
// worth attempting.
func TestAuthenticatorExpiredToken(t *testing.T) {
	setupJWT(t)
	config.AppConfig.AccessTokenExp = -time.Minute
	token, err := security.GenerateAccessToken("u1", model.RoleUser)
	require.NoError(t, err)
	config.AppConfig.AccessTokenExp = 15 * time.Minute

	rec := doGet(t, protectedRouter(), "/whoami", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token has expired")
}

func TestAuthenticatorInvalidToken(t *testing.T) {
	setupJWT(t)
	rec := doGet(t, protectedRouter(), "/whoami", "not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token")
}

// A refresh token on the access path is signed with the wrong key.
func TestAuthenticatorRejectsRefreshToken(t *testing.T) {
	setupJWT(t)
	refreshToken, err := security.GenerateRefreshToken("u1")
	require.NoError(t, err)

	rec := doGet(t, protectedRouter(), "/whoami", refreshToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatorAttachesIdentity(t *testing.T) {
	setupJWT(t)
	token, err := security.GenerateAccessToken("u1", model.RoleAdmin)
	require.NoError(t, err)

	rec := doGet(t, protectedRouter(), "/whoami", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1:admin", rec.Body.String())
}

func TestRequireRole(t *testing.T) {
	setupJWT(t)
	router := protectedRouter(RequireRole(model.RoleAdmin))

	userToken, err := security.GenerateAccessToken("u1", model.RoleUser)
	require.NoError(t, err)
	rec := doGet(t, router, "/whoami", userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken, err := security.GenerateAccessToken("a1", model.RoleAdmin)
	require.NoError(t, err)
	rec = doGet(t, router, "/whoami", adminToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSelfOrAdmin(t *testing.T) {
	setupJWT(t)
	router := protectedRouter(SelfOrAdmin("id"))

	userToken, err := security.GenerateAccessToken("u1", model.RoleUser)
	require.NoError(t, err)

	rec := doGet(t, router, "/users/u1", userToken)
	assert.Equal(t, http.StatusOK, rec.Code, "own resource passes")

	rec = doGet(t, router, "/users/u2", userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code, "someone else's resource is forbidden")

	adminToken, err := security.GenerateAccessToken("a1", model.RoleAdmin)
	require.NoError(t, err)
	rec = doGet(t, router, "/users/u2", adminToken)
	assert.Equal(t, http.StatusOK, rec.Code, "admin bypasses ownership")
}
