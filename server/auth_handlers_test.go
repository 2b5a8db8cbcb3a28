package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/lms-mobile-gateway/apimodel"
	"github.com/stretchr/testify/require"
)

func requireLoginFor(t *testing.T, f *testFixture, w *httptest.ResponseRecorder, userID int64, email string) apimodel.LoginResponse {
	t.Helper()

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	resp := decode[apimodel.LoginResponse](t, w)
	require.Equal(t, "bearer", resp.TokenType)
	require.Equal(t, 3600, resp.ExpiresIn)
	require.Equal(t, userID, resp.User.ID)
	require.Equal(t, email, resp.User.Email)

	access, err := f.tokens.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, userID, access.ID)

	refresh, ok := f.tokens.ValidateRefreshToken(resp.RefreshToken)
	require.True(t, ok)
	require.Equal(t, userID, refresh.ID)
	return resp
}

func TestGoogleLoginHandler(t *testing.T) {
	t.Run("registered user", func(t *testing.T) {
		f := setupTestFixture(t)
		f.lms.respond("core_user_get_users", testUsersBody)
		s := f.server(t)

		w := do(t, s, request{method: http.MethodPost, path: "/auth/google", body: apimodel.GoogleLoginRequest{IDToken: testValidIDToken}})
		resp := requireLoginFor(t, f, w, testUser.ID, testUser.Email)
		require.Equal(t, "A B", resp.User.FullName)

		form := f.lms.formFor(t, "core_user_get_users")
		require.Equal(t, "email", form.Get("criteria[0][key]"))
		require.Equal(t, testUser.Email, form.Get("criteria[0][value]"))
	})

	t.Run("verified identity unknown to the LMS", func(t *testing.T) {
		f := setupTestFixture(t)
		f.lms.respond("core_user_get_users", `{"users":[]}`)
		s := f.server(t)

		w := do(t, s, request{method: http.MethodPost, path: "/auth/google", body: apimodel.GoogleLoginRequest{IDToken: testUnknownIDToken}})
		requireError(t, w, http.StatusForbidden, "identity_not_registered")
	})

	t.Run("failed lookup is not registered", func(t *testing.T) {
		f := setupTestFixture(t)
		f.lms.respondStatus("core_user_get_users", http.StatusServiceUnavailable, "down")
		s := f.server(t)

		w := do(t, s, request{method: http.MethodPost, path: "/auth/google", body: apimodel.GoogleLoginRequest{IDToken: testValidIDToken}})
		requireError(t, w, http.StatusForbidden, "identity_not_registered")
	})

	t.Run("invalid ID token", func(t *testing.T) {
		f := setupTestFixture(t)
		s := f.server(t)

		w := do(t, s, request{method: http.MethodPost, path: "/auth/google", body: apimodel.GoogleLoginRequest{IDToken: "forged"}})
		requireError(t, w, http.StatusUnauthorized, "invalid_identity_assertion")
		require.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	})

	t.Run("missing ID token", func(t *testing.T) {
		f := setupTestFixture(t)
		s := f.server(t)

		w := do(t, s, request{method: http.MethodPost, path: "/auth/google", body: `{}`})
		requireError(t, w, http.StatusBadRequest, "invalid_request")
	})

	t.Run("malformed body", func(t *testing.T) {
		f := setupTestFixture(t)
		s := f.server(t)

		w := do(t, s, request{method: http.MethodPost, path: "/auth/google", body: `{"id_token":`})
		requireError(t, w, http.StatusBadRequest, "invalid_request")
	})
}

func TestGoogleCodeLoginHandler_NotConfigured(t *testing.T) {
	f := setupTestFixture(t)
	s := f.server(t)

	w := do(t, s, request{method: http.MethodPost, path: "/auth/google/code", body: apimodel.GoogleCodeLoginRequest{Code: "abc"}})
	requireError(t, w, http.StatusNotImplemented, "not_implemented")
}

func TestDevLoginHandler(t *testing.T) {
	t.Run("by email", func(t *testing.T) {
		f := setupTestFixture(t)
		f.lms.respond("core_user_get_users", testUsersBody)
		s := f.server(t)

		w := do(t, s, request{method: http.MethodPost, path: "/auth/dev-login", body: apimodel.DevLoginRequest{Email: testUser.Email}})
		requireLoginFor(t, f, w, testUser.ID, testUser.Email)
	})

	t.Run("without a body uses the service token owner", func(t *testing.T) {
		f := setupTestFixture(t)
		f.lms.respond("core_webservice_get_site_info", `{"sitename":"Test LMS","userid":2,"username":"admin","fullname":"Admin User"}`)
		f.lms.respond("core_user_get_users_by_field", `[{"id":2,"username":"admin","email":"admin@x.com","fullname":"Admin User"}]`)
		s := f.server(t)

		w := do(t, s, request{method: http.MethodPost, path: "/auth/dev-login"})
		requireLoginFor(t, f, w, 2, "admin@x.com")

		form := f.lms.formFor(t, "core_user_get_users_by_field")
		require.Equal(t, "id", form.Get("field"))
		require.Equal(t, "2", form.Get("values[0]"))
	})

	t.Run("unknown email", func(t *testing.T) {
		f := setupTestFixture(t)
		f.lms.respond("core_user_get_users", `{"users":[]}`)
		s := f.server(t)

		w := do(t, s, request{method: http.MethodPost, path: "/auth/dev-login", body: apimodel.DevLoginRequest{Email: "nobody@x.com"}})
		requireError(t, w, http.StatusNotFound, "not_found")
	})

	t.Run("disabled outside debug mode", func(t *testing.T) {
		f := setupTestFixture(t)
		f.settings.Debug = false
		f.lms.respond("core_user_get_users", testUsersBody)
		s := f.server(t)

		w := do(t, s, request{method: http.MethodPost, path: "/auth/dev-login", body: apimodel.DevLoginRequest{Email: testUser.Email}})
		requireError(t, w, http.StatusForbidden, "dev_login_disabled")
	})
}

func TestRefreshHandler(t *testing.T) {
	f := setupTestFixture(t)
	s := f.server(t)

	t.Run("refresh token", func(t *testing.T) {
		refresh, err := f.tokens.IssueRefreshToken(testUser)
		require.NoError(t, err)

		w := do(t, s, request{method: http.MethodPost, path: "/auth/refresh", body: apimodel.RefreshRequest{RefreshToken: refresh}})
		requireLoginFor(t, f, w, testUser.ID, testUser.Email)
	})

	t.Run("access token is rejected", func(t *testing.T) {
		w := do(t, s, request{method: http.MethodPost, path: "/auth/refresh", body: apimodel.RefreshRequest{RefreshToken: f.accessToken(t)}})
		requireError(t, w, http.StatusUnauthorized, "refresh_rejected")
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		w := do(t, s, request{method: http.MethodPost, path: "/auth/refresh", body: apimodel.RefreshRequest{RefreshToken: "x.y.z"}})
		requireError(t, w, http.StatusUnauthorized, "refresh_rejected")
	})
}

func TestMeHandler(t *testing.T) {
	f := setupTestFixture(t)
	s := f.server(t)

	w := do(t, s, request{method: http.MethodGet, path: "/auth/me", bearer: f.accessToken(t)})
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"id":5,"email":"a@x.com","fullname":"A B"}`, w.Body.String())
}

func TestMoodleStatusHandler(t *testing.T) {
	t.Run("connected", func(t *testing.T) {
		f := setupTestFixture(t)
		f.lms.respond("core_webservice_get_site_info", `{"sitename":"Test LMS","userid":2}`)
		s := f.server(t)

		w := do(t, s, request{method: http.MethodGet, path: "/auth/moodle-status", bearer: f.accessToken(t)})
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"connected":true,"site_name":"Test LMS"}`, w.Body.String())
	})

	t.Run("LMS failure is reported, not raised", func(t *testing.T) {
		f := setupTestFixture(t)
		s := f.server(t)

		w := do(t, s, request{method: http.MethodGet, path: "/auth/moodle-status", bearer: f.accessToken(t)})
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[apimodel.MoodleStatusResponse](t, w)
		require.False(t, resp.Connected)
		require.Nil(t, resp.SiteName)
		require.NotNil(t, resp.Error)
		require.Contains(t, *resp.Error, "Access control exception")
	})
}
