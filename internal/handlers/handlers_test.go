package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"kardetailing/config"
	"kardetailing/internal/app"
	"kardetailing/internal/database"
	"kardetailing/internal/handlers/middleware"
	"kardetailing/internal/repositories/memory"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	t     *testing.T
	fiber *fiber.App
	users *memory.UserRepository
}

func newTestServer(t *testing.T, transport string) *testServer {
	t.Helper()

	cfg := config.Config{
		ServerPort:       8288,
		SessionSecret:    "0123456789abcdef0123456789abcdef",
		SessionTTLHours:  168,
		SessionTransport: transport,
		BcryptCost:       bcrypt.MinCost,
		CorsAllowOrigins: "http://localhost:3000",
	}

	repos := memory.New()
	application, err := app.Build(cfg, database.DB{}, repos)
	require.NoError(t, err)

	server := fiber.New()
	require.NoError(t, Router(server, application))

	return &testServer{
		t:     t,
		fiber: server,
		users: repos.User.(*memory.UserRepository),
	}
}

type request struct {
	method string
	path   string
	body   any
	cookie string
	bearer string
}

func (s *testServer) do(r request) (*http.Response, map[string]any) {
	s.t.Helper()

	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		require.NoError(s.t, err)
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(r.method, r.path, body)
	if r.body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if r.cookie != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: r.cookie})
	}
	if r.bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+r.bearer)
	}

	resp, err := s.fiber.Test(req, -1)
	require.NoError(s.t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	_ = resp.Body.Close()

	decoded := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(s.t, json.Unmarshal(raw, &decoded))
	} else if len(raw) > 0 {
		var list []any
		require.NoError(s.t, json.Unmarshal(raw, &list))
		decoded["items"] = list
	}

	return resp, decoded
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == middleware.SessionCookieName {
			return cookie
		}
	}
	return nil
}

// signUp registers and logs in, returning the cookie value and account id.
func (s *testServer) signUp(email string) (string, uuid.UUID) {
	s.t.Helper()

	creds := map[string]string{"email": email, "password": "pw"}
	resp, _ := s.do(request{method: http.MethodPost, path: "/api/auth/register", body: creds})
	require.Equal(s.t, http.StatusCreated, resp.StatusCode)

	resp, body := s.do(request{method: http.MethodPost, path: "/api/auth/login", body: creds})
	require.Equal(s.t, http.StatusOK, resp.StatusCode)

	cookie := sessionCookie(resp)
	require.NotNil(s.t, cookie)

	user := body["user"].(map[string]any)
	return cookie.Value, uuid.MustParse(user["id"].(string))
}

func (s *testServer) promote(id uuid.UUID) {
	s.t.Helper()
	require.NoError(s.t, s.users.SetAdmin(context.Background(), id, true))
}

func TestHealth_EchoesTraceID(t *testing.T) {
	s := newTestServer(t, config.SessionTransportCookie)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(middleware.TraceIDHeader, "trace-123")
	resp, err := s.fiber.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "trace-123", resp.Header.Get(middleware.TraceIDHeader))

	resp, _ = s.do(request{method: http.MethodGet, path: "/api/health"})
	assert.NotEmpty(t, resp.Header.Get(middleware.TraceIDHeader))
}

func TestAuth_CookieSessionLifecycle(t *testing.T) {
	s := newTestServer(t, config.SessionTransportCookie)
	creds := map[string]string{"email": "jane@example.com", "password": "pw"}

	resp, body := s.do(request{method: http.MethodPost, path: "/api/auth/register", body: creds})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Registered successfully", body["message"])
	assert.Nil(t, sessionCookie(resp))

	resp, body = s.do(request{method: http.MethodPost, path: "/api/auth/register", body: creds})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email already exists.", body["error"])

	resp, body = s.do(request{method: http.MethodPost, path: "/api/auth/login", body: creds})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, "token")
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	user := body["user"].(map[string]any)
	assert.Equal(t, "jane@example.com", user["email"])
	assert.NotContains(t, user, "passwordHash")

	resp, body = s.do(request{method: http.MethodGet, path: "/api/auth/profile", cookie: cookie.Value})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "jane@example.com", body["email"])

	resp, body = s.do(request{method: http.MethodPost, path: "/api/auth/logout"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Logged out", body["message"])
	cleared := sessionCookie(resp)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
}

func TestAuth_LoginFailuresShareMessage(t *testing.T) {
	s := newTestServer(t, config.SessionTransportCookie)
	s.signUp("jane@example.com")

	unknown, unknownBody := s.do(request{
		method: http.MethodPost,
		path:   "/api/auth/login",
		body:   map[string]string{"email": "nobody@example.com", "password": "pw"},
	})
	wrong, wrongBody := s.do(request{
		method: http.MethodPost,
		path:   "/api/auth/login",
		body:   map[string]string{"email": "jane@example.com", "password": "nope"},
	})

	assert.Equal(t, http.StatusBadRequest, unknown.StatusCode)
	assert.Equal(t, http.StatusBadRequest, wrong.StatusCode)
	assert.Equal(t, "Invalid email or password.", unknownBody["error"])
	assert.Equal(t, unknownBody, wrongBody)

	missing, missingBody := s.do(request{
		method: http.MethodPost,
		path:   "/api/auth/login",
		body:   map[string]string{"email": "jane@example.com"},
	})
	assert.Equal(t, http.StatusBadRequest, missing.StatusCode)
	assert.Equal(t, "All fields required.", missingBody["error"])
}

func TestAuth_SessionRejections(t *testing.T) {
	s := newTestServer(t, config.SessionTransportCookie)

	resp, body := s.do(request{method: http.MethodGet, path: "/api/auth/profile"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Not logged in", body["error"])

	resp, body = s.do(request{method: http.MethodGet, path: "/api/auth/profile", cookie: "forged"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid session", body["error"])
}

func TestAuth_HeaderTransport(t *testing.T) {
	s := newTestServer(t, config.SessionTransportHeader)
	creds := map[string]string{"email": "jane@example.com", "password": "pw"}

	resp, _ := s.do(request{method: http.MethodPost, path: "/api/auth/register", body: creds})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := s.do(request{method: http.MethodPost, path: "/api/auth/login", body: creds})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, sessionCookie(resp))
	token, ok := body["token"].(string)
	require.True(t, ok)

	resp, _ = s.do(request{method: http.MethodGet, path: "/api/auth/profile", bearer: token})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The cookie carries nothing in header mode.
	resp, body = s.do(request{method: http.MethodGet, path: "/api/auth/profile", cookie: token})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Not logged in", body["error"])
}

func TestAuth_ListUsersRequiresAdmin(t *testing.T) {
	s := newTestServer(t, config.SessionTransportCookie)
	cookie, userID := s.signUp("jane@example.com")

	resp, body := s.do(request{method: http.MethodGet, path: "/api/auth/users", cookie: cookie})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Admin access required", body["error"])

	s.promote(userID)

	resp, body = s.do(request{method: http.MethodGet, path: "/api/auth/users", cookie: cookie})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["items"], 1)
}

func TestBookings_Flow(t *testing.T) {
	s := newTestServer(t, config.SessionTransportCookie)
	alice, _ := s.signUp("alice@example.com")
	bob, _ := s.signUp("bob@example.com")
	admin, adminID := s.signUp("admin@example.com")
	s.promote(adminID)

	booking := map[string]string{
		"name":    "Alice",
		"contact": "0917",
		"date":    "2025-06-01",
		"time":    "09:00 AM",
		"service": "🚗 Light Condition (Full Service)",
	}

	resp, _ := s.do(request{method: http.MethodPost, path: "/api/bookings", body: booking})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, created := s.do(request{method: http.MethodPost, path: "/api/bookings", body: booking, cookie: alice})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Pending", created["status"])
	bookingID := created["id"].(string)

	booking["date"] = "not a date"
	resp, body := s.do(request{method: http.MethodPost, path: "/api/bookings", body: booking, cookie: bob})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["error"])

	resp, body = s.do(request{method: http.MethodGet, path: "/api/bookings", cookie: bob})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["items"])

	resp, body = s.do(request{method: http.MethodGet, path: "/api/bookings", cookie: admin})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["items"], 1)

	statusPath := "/api/bookings/status/" + bookingID
	resp, body = s.do(request{method: http.MethodPut, path: statusPath, cookie: alice})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Admin access required", body["error"])

	resp, body = s.do(request{method: http.MethodGet, path: "/api/bookings", cookie: alice})
	require.Len(t, body["items"], 1)
	assert.Equal(t, "Pending", body["items"].([]any)[0].(map[string]any)["status"])

	resp, body = s.do(request{method: http.MethodPut, path: statusPath, cookie: admin})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Completed", body["status"])

	resp, body = s.do(request{method: http.MethodPut, path: "/api/bookings/status/" + uuid.NewString(), cookie: admin})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Booking not found", body["error"])

	resp, body = s.do(request{method: http.MethodGet, path: "/api/bookings/options"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["timeSlots"], 18)
	assert.Len(t, body["services"], 9)
}

func TestFeedback_Flow(t *testing.T) {
	s := newTestServer(t, config.SessionTransportCookie)
	member, _ := s.signUp("jane@example.com")
	admin, adminID := s.signUp("admin@example.com")
	s.promote(adminID)

	resp, _ := s.do(request{method: http.MethodPost, path: "/api/feedback", body: map[string]any{"rating": 5, "comment": "hi"}})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := s.do(request{
		method: http.MethodPost,
		path:   "/api/feedback",
		body:   map[string]any{"rating": 6, "comment": "too good"},
		cookie: member,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["error"])

	resp, created := s.do(request{
		method: http.MethodPost,
		path:   "/api/feedback",
		body:   map[string]any{"rating": 5, "comment": "  Spotless  "},
		cookie: member,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Spotless", created["comment"])
	feedbackID := created["id"].(string)

	resp, body = s.do(request{method: http.MethodGet, path: "/api/feedback"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["items"], 1)

	resp, _ = s.do(request{method: http.MethodDelete, path: "/api/feedback/" + feedbackID, cookie: member})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = s.do(request{method: http.MethodDelete, path: "/api/feedback/" + feedbackID, cookie: admin})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = s.do(request{method: http.MethodDelete, path: "/api/feedback/" + feedbackID, cookie: admin})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Feedback not found", body["error"])
}

func TestProfile(t *testing.T) {
	s := newTestServer(t, config.SessionTransportCookie)
	cookie, _ := s.signUp("jane@example.com")

	resp, body := s.do(request{
		method: http.MethodPut,
		path:   "/api/profile",
		body:   map[string]string{"name": "Jane", "contactNumber": "0917", "address": "Manila"},
		cookie: cookie,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Jane", body["user"].(map[string]any)["name"])

	resp, body = s.do(request{method: http.MethodGet, path: "/api/profile", cookie: cookie})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Jane", body["name"])
	assert.Equal(t, "Manila", body["address"])
	assert.Empty(t, body["bookings"])

	resp, _ = s.do(request{method: http.MethodGet, path: "/api/profile"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAssessment(t *testing.T) {
	s := newTestServer(t, config.SessionTransportCookie)

	resp, body := s.do(request{method: http.MethodGet, path: "/api/assessment/questions"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["interior"], 5)
	assert.Len(t, body["exterior"], 5)

	resp, body = s.do(request{
		method: http.MethodPost,
		path:   "/api/assessment/resolve",
		body: map[string]any{
			"serviceType": "both",
			"answers":     map[string]int{"interior_0": 1, "exterior_2": 2},
		},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["complete"])
	assert.Equal(t, "Severe", body["category"])
	assert.Equal(t, "2300", body["price"])

	resp, body = s.do(request{
		method: http.MethodPost,
		path:   "/api/assessment/resolve",
		body:   map[string]any{"serviceType": "interior"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["complete"])
	assert.NotContains(t, body, "price")
}
