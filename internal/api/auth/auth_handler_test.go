package auth

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bakeryhq/bakery-admin/internal/types"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password string) (types.PublicUser, error) {
	args := m.Called(ctx, name, email, password)
	return args.Get(0).(types.PublicUser), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string, client types.ClientContext) (*types.LoginResponse, error) {
	args := m.Called(ctx, email, password, client)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.LoginResponse), args.Error(1)
}

func (m *MockAuthService) GetUserByID(ctx context.Context, id int64) (*types.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func newTestHandler(t *testing.T) (*Handler, *MockAuthService) {
	t.Helper()
	svc := new(MockAuthService)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(svc, logger), svc
}

func postJSON(target, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHandler_Register_Success(t *testing.T) {
	handler, svc := newTestHandler(t)

	public := types.PublicUser{ID: 3, Name: "Ana", Email: "ana@bakery.com"}
	svc.On("Register", mock.Anything, "Ana", "ana@bakery.com", "secret123").
		Return(public, nil).Once()

	rec := httptest.NewRecorder()
	handler.Register(rec, postJSON("/api/auth/register",
		`{"name":"Ana","email":"ana@bakery.com","password":"secret123"}`))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp types.RegisterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "User registered successfully", resp.Message)
	assert.Equal(t, public, resp.User)
	svc.AssertExpectations(t)
}

func TestHandler_Register_MissingFields(t *testing.T) {
	handler, svc := newTestHandler(t)

	for _, body := range []string{
		`{"email":"ana@bakery.com","password":"secret123"}`,
		`{"name":"Ana","password":"secret123"}`,
		`{"name":"Ana","email":"ana@bakery.com"}`,
	} {
		rec := httptest.NewRecorder()
		handler.Register(rec, postJSON("/api/auth/register", body))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "All fields are required", decodeMessage(t, rec))
	}
	svc.AssertNotCalled(t, "Register")
}

func TestHandler_Register_EmailTaken(t *testing.T) {
	handler, svc := newTestHandler(t)

	svc.On("Register", mock.Anything, "Ana", "ana@bakery.com", "secret123").
		Return(types.PublicUser{}, types.ErrAlreadyRegistered).Once()

	rec := httptest.NewRecorder()
	handler.Register(rec, postJSON("/api/auth/register",
		`{"name":"Ana","email":"ana@bakery.com","password":"secret123"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already registered", decodeMessage(t, rec))
}

func TestHandler_Login_Success(t *testing.T) {
	handler, svc := newTestHandler(t)

	result := &types.LoginResponse{
		Token: "signed-token",
		User:  types.PublicUser{ID: 3, Name: "Ana", Email: "ana@bakery.com"},
	}
	svc.On("Login", mock.Anything, "ana@bakery.com", "secret123",
		mock.MatchedBy(func(c types.ClientContext) bool {
			return c.IPAddress != "" && c.UserAgent == "test-agent"
		})).Return(result, nil).Once()

	rec := httptest.NewRecorder()
	req := postJSON("/api/auth/login", `{"email":"ana@bakery.com","password":"secret123"}`)
	req.Header.Set("User-Agent", "test-agent")
	handler.Login(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp types.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "signed-token", resp.Token)
	assert.Equal(t, result.User, resp.User)
	svc.AssertExpectations(t)
}

func TestHandler_Login_BadCredentials(t *testing.T) {
	handler, svc := newTestHandler(t)

	svc.On("Login", mock.Anything, "ana@bakery.com", "wrong", mock.Anything).
		Return(nil, types.ErrInvalidCredentials).Once()

	rec := httptest.NewRecorder()
	handler.Login(rec, postJSON("/api/auth/login", `{"email":"ana@bakery.com","password":"wrong"}`))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", decodeMessage(t, rec))
}

func TestHandler_Login_MissingFields(t *testing.T) {
	handler, svc := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.Login(rec, postJSON("/api/auth/login", `{"email":"ana@bakery.com"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email and password required", decodeMessage(t, rec))
	svc.AssertNotCalled(t, "Login")
}

func TestHandler_Profile(t *testing.T) {
	handler, _ := newTestHandler(t)

	user := &types.User{ID: 3, Name: "Ana", Email: "ana@bakery.com", IsActive: true}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req = req.WithContext(ContextWithUser(req.Context(), user))

	handler.Profile(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.JSONEq(t, `"You are authenticated and active"`, string(body["message"]))

	var public types.PublicUser
	require.NoError(t, json.Unmarshal(body["user"], &public))
	assert.Equal(t, user.Public(), public)
}
