package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/train-reservation/internal/config"
	"github.com/iliyamo/train-reservation/internal/model"
	"github.com/iliyamo/train-reservation/internal/repository"
	"github.com/iliyamo/train-reservation/internal/utils"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) FindByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserStore) Create(ctx context.Context, username, password string, isAdmin bool, cost int) (uint64, error) {
	args := m.Called(ctx, username, password, isAdmin, cost)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *mockUserStore) UpsertAdmin(ctx context.Context, cost int) error {
	return m.Called(ctx, cost).Error(0)
}

func testCfg() config.Config {
	return config.Config{
		JWTSecret:   "handler-test-secret",
		TokenTTLHrs: 1,
		BcryptCost:  bcrypt.MinCost,
	}
}

func postJSON(t *testing.T, h echo.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func adminUser(t *testing.T) model.User {
	t.Helper()
	hash, err := utils.HashPassword("admin123", bcrypt.MinCost)
	require.NoError(t, err)
	return model.User{ID: 1, Username: "admin", PasswordHash: hash, IsAdmin: true}
}

func TestAdminLoginSuccess(t *testing.T) {
	users := new(mockUserStore)
	users.On("UpsertAdmin", mock.Anything, bcrypt.MinCost).Return(nil)
	users.On("FindByUsername", mock.Anything, "admin").Return(adminUser(t), nil)

	h := NewAuthHandler(testCfg(), users)
	rec := postJSON(t, h.AdminLogin, "/api/admin/login", `{"username":"admin","password":"admin123"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Token   string `json:"token"`
		IsAdmin bool   `json:"is_admin"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.IsAdmin)

	claims, err := utils.ParseAccessToken("handler-test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.True(t, claims.IsAdmin)
	users.AssertExpectations(t)
}

func TestAdminLoginSelfHealsOnWrongPassword(t *testing.T) {
	// The repair runs before the credential check, so even a failed
	// attempt restores the admin record.
	users := new(mockUserStore)
	users.On("UpsertAdmin", mock.Anything, bcrypt.MinCost).Return(nil)
	users.On("FindByUsername", mock.Anything, "admin").Return(adminUser(t), nil)

	h := NewAuthHandler(testCfg(), users)
	rec := postJSON(t, h.AdminLogin, "/api/admin/login", `{"username":"admin","password":"nope"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	users.AssertCalled(t, "UpsertAdmin", mock.Anything, bcrypt.MinCost)
}

func TestAdminLoginRejectsNonAdminAccount(t *testing.T) {
	hash, err := utils.HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)
	users := new(mockUserStore)
	users.On("UpsertAdmin", mock.Anything, bcrypt.MinCost).Return(nil)
	users.On("FindByUsername", mock.Anything, "bob").
		Return(model.User{ID: 2, Username: "bob", PasswordHash: hash, IsAdmin: false}, nil)

	h := NewAuthHandler(testCfg(), users)
	rec := postJSON(t, h.AdminLogin, "/api/admin/login", `{"username":"bob","password":"secret"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminLoginStorageErrorIsGeneric(t *testing.T) {
	users := new(mockUserStore)
	users.On("UpsertAdmin", mock.Anything, bcrypt.MinCost).Return(assert.AnError)

	h := NewAuthHandler(testCfg(), users)
	rec := postJSON(t, h.AdminLogin, "/api/admin/login", `{"username":"admin","password":"admin123"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "login failed", body["message"])
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestLoginSuccessIssuesNonAdminToken(t *testing.T) {
	hash, err := utils.HashPassword("travel", bcrypt.MinCost)
	require.NoError(t, err)
	users := new(mockUserStore)
	users.On("FindByUsername", mock.Anything, "alice").
		Return(model.User{ID: 3, Username: "alice", PasswordHash: hash, IsAdmin: false}, nil)

	h := NewAuthHandler(testCfg(), users)
	rec := postJSON(t, h.Login, "/api/login", `{"username":"alice","password":"travel"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Token   string `json:"token"`
		IsAdmin bool   `json:"is_admin"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.IsAdmin)

	claims, err := utils.ParseAccessToken("handler-test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.False(t, claims.IsAdmin)
}

func TestLoginNeverGrantsAdminFlag(t *testing.T) {
	// Even the admin account gets a plain token through the user route.
	users := new(mockUserStore)
	users.On("FindByUsername", mock.Anything, "admin").Return(adminUser(t), nil)

	h := NewAuthHandler(testCfg(), users)
	rec := postJSON(t, h.Login, "/api/login", `{"username":"admin","password":"admin123"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	claims, err := utils.ParseAccessToken("handler-test-secret", resp.Token)
	require.NoError(t, err)
	assert.False(t, claims.IsAdmin)
}

func TestLoginUnknownUser(t *testing.T) {
	users := new(mockUserStore)
	users.On("FindByUsername", mock.Anything, "ghost").Return(model.User{}, sql.ErrNoRows)

	h := NewAuthHandler(testCfg(), users)
	rec := postJSON(t, h.Login, "/api/login", `{"username":"ghost","password":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginMissingFields(t *testing.T) {
	h := NewAuthHandler(testCfg(), new(mockUserStore))
	rec := postJSON(t, h.Login, "/api/login", `{"username":"  ","password":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignupSuccess(t *testing.T) {
	users := new(mockUserStore)
	users.On("Create", mock.Anything, "carol", "pw123", false, bcrypt.MinCost).
		Return(uint64(7), nil)

	h := NewAuthHandler(testCfg(), users)
	rec := postJSON(t, h.Signup, "/api/signup", `{"username":"carol","password":"pw123"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	users.AssertExpectations(t)
}

func TestSignupDuplicateUsername(t *testing.T) {
	users := new(mockUserStore)
	users.On("Create", mock.Anything, "carol", "pw123", false, bcrypt.MinCost).
		Return(uint64(0), repository.ErrUsernameExists)

	h := NewAuthHandler(testCfg(), users)
	rec := postJSON(t, h.Signup, "/api/signup", `{"username":"carol","password":"pw123"}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "username already exists", body["message"])
}

func TestMeEchoesTokenIdentity(t *testing.T) {
	h := NewAuthHandler(testCfg(), new(mockUserStore))
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("username", "alice")
	c.Set("is_admin", false)

	require.NoError(t, h.Me(c))
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, false, body["is_admin"])
}
