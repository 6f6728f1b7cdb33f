package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashankb2004/edublog/internal/domain"
	internal_errors "github.com/shashankb2004/edublog/internal/errors"
)

type MockAuthService struct {
	SignupFunc         func(username, email, password string) (domain.User, string, error)
	LoginFunc          func(username, password string) (domain.User, string, error)
	ProfileFunc        func(id domain.UserId) (domain.User, error)
	ChangePasswordFunc func(id domain.UserId, currentPassword, newPassword string) error
}

func (m *MockAuthService) Signup(username, email, password string) (domain.User, string, error) {
	if m.SignupFunc != nil {
		return m.SignupFunc(username, email, password)
	}
	return domain.User{Id: 1, Username: username, Email: email}, "test_token", nil
}

func (m *MockAuthService) Login(username, password string) (domain.User, string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(username, password)
	}
	return domain.User{Id: 1, Username: username}, "test_token", nil
}

func (m *MockAuthService) Profile(id domain.UserId) (domain.User, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(id)
	}
	return domain.User{Id: id, Username: "alice", Email: "a@x.com"}, nil
}

func (m *MockAuthService) ChangePassword(id domain.UserId, currentPassword, newPassword string) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(id, currentPassword, newPassword)
	}
	return nil
}

func TestSignupHandler(t *testing.T) {
	h := &Handler{}

	route := "/api/auth/signup"
	router := mux.NewRouter()
	router.HandleFunc(route, h.Signup).Methods("POST")

	t.Run("successful request", func(t *testing.T) {
		h.auth = &MockAuthService{}

		req := createRequest(t, http.MethodPost, route, []byte(`{"username": "alice", "email": "a@x.com", "password": "secret1"}`))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var resp struct {
			Token string      `json:"token"`
			User  domain.User `json:"user"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "test_token", resp.Token)
		assert.Equal(t, "alice", resp.User.Username)
	})

	t.Run("password hash never serialized", func(t *testing.T) {
		h.auth = &MockAuthService{
			SignupFunc: func(username, email, password string) (domain.User, string, error) {
				return domain.User{Id: 1, Username: username, PassHash: "$2a$10$topsecret"}, "t", nil
			},
		}

		req := createRequest(t, http.MethodPost, route, []byte(`{"username": "alice", "email": "a@x.com", "password": "secret1"}`))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.NotContains(t, rr.Body.String(), "topsecret")
	})

	t.Run("missing fields", func(t *testing.T) {
		h.auth = &MockAuthService{}

		req := createRequest(t, http.MethodPost, route, []byte(`{"username": "alice"}`))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		h.auth = &MockAuthService{
			SignupFunc: func(username, email, password string) (domain.User, string, error) {
				return domain.User{}, "", &internal_errors.ErrorWithStatusCode{Message: "Email already registered", StatusCode: http.StatusBadRequest}
			},
		}

		req := createRequest(t, http.MethodPost, route, []byte(`{"username": "alice", "email": "a@x.com", "password": "secret1"}`))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Email already registered")
	})
}

func TestLoginHandler(t *testing.T) {
	h := &Handler{}

	route := "/api/auth/login"
	router := mux.NewRouter()
	router.HandleFunc(route, h.Login).Methods("POST")
	requestBody := []byte(`{"username": "alice", "password": "secret1"}`)

	t.Run("successful request", func(t *testing.T) {
		h.auth = &MockAuthService{}

		req := createRequest(t, http.MethodPost, route, requestBody)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "test_token")
	})

	t.Run("invalid request body", func(t *testing.T) {
		req := createRequest(t, http.MethodPost, route, []byte(`{invalid json::}`))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		h.auth = &MockAuthService{
			LoginFunc: func(username, password string) (domain.User, string, error) {
				return domain.User{}, "", &internal_errors.ErrorWithStatusCode{Message: "Invalid credentials", StatusCode: http.StatusBadRequest}
			},
		}

		req := createRequest(t, http.MethodPost, route, requestBody)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid credentials")
	})
}

func TestProfileHandler(t *testing.T) {
	h := &Handler{}

	route := "/api/auth/profile"
	router := mux.NewRouter()
	router.HandleFunc(route, h.Profile).Methods("GET")

	t.Run("successful request", func(t *testing.T) {
		h.auth = &MockAuthService{}

		req := createAuthedRequest(t, http.MethodGet, route, nil, 7)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var user domain.User
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
		assert.Equal(t, int64(7), user.Id)
	})

	t.Run("no identity in context", func(t *testing.T) {
		req := createRequest(t, http.MethodGet, route, nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("user not found", func(t *testing.T) {
		h.auth = &MockAuthService{
			ProfileFunc: func(id domain.UserId) (domain.User, error) {
				return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
			},
		}

		req := createAuthedRequest(t, http.MethodGet, route, nil, 7)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestChangePasswordHandler(t *testing.T) {
	h := &Handler{}

	route := "/api/auth/change-password"
	router := mux.NewRouter()
	router.HandleFunc(route, h.ChangePassword).Methods("POST")
	requestBody := []byte(`{"currentPassword": "secret1", "newPassword": "secret2"}`)

	t.Run("successful request", func(t *testing.T) {
		h.auth = &MockAuthService{}

		req := createAuthedRequest(t, http.MethodPost, route, requestBody, 7)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("wrong current password", func(t *testing.T) {
		h.auth = &MockAuthService{
			ChangePasswordFunc: func(id domain.UserId, currentPassword, newPassword string) error {
				return &internal_errors.ErrorWithStatusCode{Message: "Current password is incorrect", StatusCode: http.StatusUnauthorized}
			},
		}

		req := createAuthedRequest(t, http.MethodPost, route, requestBody, 7)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		h.auth = &MockAuthService{}

		req := createAuthedRequest(t, http.MethodPost, route, []byte(`{"currentPassword": "secret1"}`), 7)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
