package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intersify/internal/common"
	"intersify/internal/domain/user"
	"intersify/internal/security"
)

func authFixture(t *testing.T) (*AuthMiddleware, *security.JWTProvider) {
	t.Helper()
	jwt := security.NewJWTProvider("test-secret")
	return NewAuthMiddleware(jwt), jwt
}

func bearerRequest(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/applications/a/tracking", nil)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

func TestAuthenticatePutsIdentityInContext(t *testing.T) {
	auth, jwt := authFixture(t)
	userID := common.NewUUID()
	token, _, err := jwt.Generate(userID, "Student", time.Hour)
	require.NoError(t, err)

	var gotID common.UUID
	var gotRole user.Role
	handler := auth.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ok bool
		gotID, ok = UserIDFromContext(r.Context())
		require.True(t, ok)
		gotRole, ok = RoleFromContext(r.Context())
		require.True(t, ok)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, bearerRequest(token))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, user.RoleStudent, gotRole, "role token is normalized")
}

func TestAuthenticateRejectsMissingHeader(t *testing.T) {
	auth, _ := authFixture(t)
	handler := auth.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, bearerRequest(""))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "missing authorization header")
}

func TestAuthenticateRejectsNonBearerScheme(t *testing.T) {
	auth, _ := authFixture(t)
	handler := auth.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	r := httptest.NewRequest(http.MethodGet, "/applications", nil)
	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, r)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "invalid authorization header")
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	auth, _ := authFixture(t)
	foreign, _, err := security.NewJWTProvider("other-secret").Generate(common.NewUUID(), "student", time.Hour)
	require.NoError(t, err)
	expired, _, err := security.NewJWTProvider("test-secret").Generate(common.NewUUID(), "student", -time.Minute)
	require.NoError(t, err)

	handler := auth.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	for name, token := range map[string]string{
		"garbage":        "not.a.jwt",
		"foreign secret": foreign,
		"expired":        expired,
	} {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, bearerRequest(token))
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, name)
		assert.Contains(t, recorder.Body.String(), "invalid token", name)
	}
}

func TestAuthenticateRejectsNonUUIDSubject(t *testing.T) {
	auth, jwt := authFixture(t)
	token, _, err := jwt.Generate(common.UUID("not-a-uuid"), "student", time.Hour)
	require.NoError(t, err)

	handler := auth.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, bearerRequest(token))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "invalid user id")
}

func TestRequireRole(t *testing.T) {
	auth, jwt := authFixture(t)
	studentToken, _, err := jwt.Generate(common.NewUUID(), "student", time.Hour)
	require.NoError(t, err)
	companyToken, _, err := jwt.Generate(common.NewUUID(), "company", time.Hour)
	require.NoError(t, err)

	handler := auth.Authenticate(RequireRole(user.RoleCompany)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, bearerRequest(companyToken))
	assert.Equal(t, http.StatusNoContent, recorder.Code, "matching role passes")

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, bearerRequest(studentToken))
	assert.Equal(t, http.StatusForbidden, recorder.Code, "wrong role is rejected")
	assert.Contains(t, recorder.Body.String(), "insufficient role")
}

func TestRequireRoleWithoutAuthentication(t *testing.T) {
	handler := RequireRole(user.RoleStudent)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/applications", nil))

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "role not found")
}
