package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"festx/infrastructure"
)

func newHandlerHarness(t *testing.T) (*mux.Router, UseCase) {
	t.Helper()
	svc, _ := newTestService(newFakeRepository())
	h := NewJSONAuthHandler(svc, false, 24*time.Hour)
	r := mux.NewRouter()
	SetupJSONAuthRoutes(r, h)
	r.HandleFunc("/protected", h.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		u, _ := UserFromContext(r.Context())
		infrastructure.WriteJSON(w, http.StatusOK, infrastructure.Response{Success: true, User: u})
	})).Methods("GET")
	return r, svc
}

func doJSON(t *testing.T, r *mux.Router, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = "192.0.2.1:51234"
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) infrastructure.Response {
	t.Helper()
	var resp infrastructure.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestRegisterEndpointSetsSessionCookie(t *testing.T) {
	r, _ := newHandlerHarness(t)

	rec := doJSON(t, r, "POST", "/auth/register", registerReq(), nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.User)

	cookie := sessionCookie(t, rec)
	assert.Len(t, cookie.Value, 64)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, int((24 * time.Hour).Seconds()), cookie.MaxAge)

	// The password hash must never leak through the envelope.
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestLoginEndpointFlow(t *testing.T) {
	r, _ := newHandlerHarness(t)
	doJSON(t, r, "POST", "/auth/register", registerReq(), nil)

	rec := doJSON(t, r, "POST", "/auth/login", LoginRequest{
		Identifier: "asha@koedlearning.edu",
		Password:   "tr0ub4dor&3-festival",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(t, rec)

	me := doJSON(t, r, "GET", "/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, me.Code)
	resp := decodeResponse(t, me)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.User)
}

func TestLoginEndpointGenericFailure(t *testing.T) {
	r, _ := newHandlerHarness(t)
	doJSON(t, r, "POST", "/auth/register", registerReq(), nil)

	wrongPassword := doJSON(t, r, "POST", "/auth/login", LoginRequest{
		Identifier: "asha@koedlearning.edu",
		Password:   "wrong",
	}, nil)
	unknownUser := doJSON(t, r, "POST", "/auth/login", LoginRequest{
		Identifier: "ghost@koedlearning.edu",
		Password:   "wrong",
	}, nil)

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownUser.Code)

	// Same body for both failure modes.
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
	assert.Equal(t, "Invalid credentials", decodeResponse(t, wrongPassword).Message)
}

func TestLoginEndpointLockout(t *testing.T) {
	r, _ := newHandlerHarness(t)
	doJSON(t, r, "POST", "/auth/register", registerReq(), nil)

	for i := 0; i < 5; i++ {
		rec := doJSON(t, r, "POST", "/auth/login", LoginRequest{
			Identifier: "asha@koedlearning.edu",
			Password:   "wrong",
		}, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec := doJSON(t, r, "POST", "/auth/login", LoginRequest{
		Identifier: "asha@koedlearning.edu",
		Password:   "tr0ub4dor&3-festival",
	}, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestLogoutEndpointClearsCookie(t *testing.T) {
	r, _ := newHandlerHarness(t)
	reg := doJSON(t, r, "POST", "/auth/register", registerReq(), nil)
	cookie := sessionCookie(t, reg)

	rec := doJSON(t, r, "POST", "/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := sessionCookie(t, rec)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)

	// The old token no longer authenticates.
	me := doJSON(t, r, "GET", "/auth/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, me.Code)

	// Logging out again without a session still succeeds.
	again := doJSON(t, r, "POST", "/auth/logout", nil, nil)
	assert.Equal(t, http.StatusOK, again.Code)
}

func TestMeEndpointWithoutCookie(t *testing.T) {
	r, _ := newHandlerHarness(t)
	rec := doJSON(t, r, "GET", "/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeEndpointClearsDeadCookie(t *testing.T) {
	r, _ := newHandlerHarness(t)
	rec := doJSON(t, r, "GET", "/auth/me", nil, &http.Cookie{
		Name:  SessionCookieName,
		Value: "deadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	cleared := sessionCookie(t, rec)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

func TestRequireAuthMiddleware(t *testing.T) {
	r, _ := newHandlerHarness(t)

	denied := doJSON(t, r, "GET", "/protected", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, denied.Code)

	reg := doJSON(t, r, "POST", "/auth/register", registerReq(), nil)
	cookie := sessionCookie(t, reg)

	allowed := doJSON(t, r, "GET", "/protected", nil, cookie)
	require.Equal(t, http.StatusOK, allowed.Code)
	resp := decodeResponse(t, allowed)
	assert.NotNil(t, resp.User)
}

func TestChangePasswordEndpoint(t *testing.T) {
	r, _ := newHandlerHarness(t)
	reg := doJSON(t, r, "POST", "/auth/register", registerReq(), nil)
	cookie := sessionCookie(t, reg)

	denied := doJSON(t, r, "POST", "/auth/change-password", ChangePasswordRequest{
		CurrentPassword: "tr0ub4dor&3-festival",
		NewPassword:     "c0rrect-horse-battery",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, denied.Code)

	wrong := doJSON(t, r, "POST", "/auth/change-password", ChangePasswordRequest{
		CurrentPassword: "not the password",
		NewPassword:     "c0rrect-horse-battery",
	}, cookie)
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)

	ok := doJSON(t, r, "POST", "/auth/change-password", ChangePasswordRequest{
		CurrentPassword: "tr0ub4dor&3-festival",
		NewPassword:     "c0rrect-horse-battery",
	}, cookie)
	require.Equal(t, http.StatusOK, ok.Code)
	assert.True(t, decodeResponse(t, ok).Success)

	relogin := doJSON(t, r, "POST", "/auth/login", LoginRequest{
		Identifier: "asha@koedlearning.edu",
		Password:   "c0rrect-horse-battery",
	}, nil)
	assert.Equal(t, http.StatusOK, relogin.Code)
}

func TestSessionsEndpointHidesTokens(t *testing.T) {
	r, _ := newHandlerHarness(t)
	reg := doJSON(t, r, "POST", "/auth/register", registerReq(), nil)
	cookie := sessionCookie(t, reg)

	rec := doJSON(t, r, "GET", "/auth/sessions", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeResponse(t, rec).Success)
	assert.NotContains(t, rec.Body.String(), cookie.Value)
}

func TestRegisterEndpointMalformedBody(t *testing.T) {
	r, _ := newHandlerHarness(t)

	req := httptest.NewRequest("POST", "/auth/register", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterEndpointDuplicate(t *testing.T) {
	r, _ := newHandlerHarness(t)

	first := doJSON(t, r, "POST", "/auth/register", registerReq(), nil)
	require.Equal(t, http.StatusCreated, first.Code)

	second := doJSON(t, r, "POST", "/auth/register", registerReq(), nil)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, "user with this email or mobile already exists", decodeResponse(t, second).Message)
}
