package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientapi "github.com/maktab-uz/maktab/internal/client/api"
	"github.com/maktab-uz/maktab/internal/client/session"
	"github.com/maktab-uz/maktab/internal/client/storage"
	"github.com/maktab-uz/maktab/pkg/api"
)

// mockSessionStorage — хранилище сессии в памяти
type mockSessionStorage struct {
	data    *session.Data
	saveErr error
}

func (m *mockSessionStorage) SaveSession(ctx context.Context, data *session.Data) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	copied := *data
	m.data = &copied
	return nil
}

func (m *mockSessionStorage) GetSession(ctx context.Context) (*session.Data, error) {
	if m.data == nil {
		return nil, storage.ErrSessionNotFound
	}
	copied := *m.data
	return &copied, nil
}

func (m *mockSessionStorage) DeleteSession(ctx context.Context) error {
	if m.data == nil {
		return storage.ErrSessionNotFound
	}
	m.data = nil
	return nil
}

func newTestAPIClient(baseURL string) *clientapi.Client {
	return clientapi.NewClientWithResolver(func() []string {
		return []string{baseURL}
	}, clientapi.NewBreaker())
}

func TestNewService_NoSavedSession(t *testing.T) {
	store := &mockSessionStorage{}

	svc, err := NewService(context.Background(), newTestAPIClient("http://localhost:0"), store)
	require.NoError(t, err)

	assert.Equal(t, session.StateLoggedOut, svc.Session().State())
}

func TestNewService_RestoresSavedSession(t *testing.T) {
	store := &mockSessionStorage{
		data: &session.Data{
			Token:    "saved-token",
			User:     api.User{ID: "u1", Username: "aziza", Role: "teacher"},
			Language: session.LangUz,
		},
	}

	svc, err := NewService(context.Background(), newTestAPIClient("http://localhost:0"), store)
	require.NoError(t, err)

	assert.Equal(t, session.StateActive, svc.Session().State())
	assert.Equal(t, session.LangUz, svc.Session().Language())
}

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)

		var req api.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "aziza", req.Username)
		assert.Equal(t, "student", req.Role)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"user": {"id":"u1","username":"aziza","role":"student"},
			"token": "jwt-token",
			"requirePasswordChange": false
		}`))
	}))
	defer srv.Close()

	store := &mockSessionStorage{}
	svc, err := NewService(context.Background(), newTestAPIClient(srv.URL), store)
	require.NoError(t, err)

	state, err := svc.Login(context.Background(), "aziza", "secret", "student")
	require.NoError(t, err)
	assert.Equal(t, session.StateActive, state)

	// Сессия сохранена локально
	require.NotNil(t, store.data)
	assert.Equal(t, "jwt-token", store.data.Token)
	assert.Equal(t, "aziza", store.data.User.Username)
}

func TestLogin_TemporaryPasswordRequiresChange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"user": {"id":"u1","username":"aziza","role":"student"},
			"token": "jwt-token",
			"requirePasswordChange": true
		}`))
	}))
	defer srv.Close()

	store := &mockSessionStorage{}
	svc, err := NewService(context.Background(), newTestAPIClient(srv.URL), store)
	require.NoError(t, err)

	state, err := svc.Login(context.Background(), "aziza", "temp-pass", "student")
	require.NoError(t, err)
	assert.Equal(t, session.StatePendingPasswordChange, state)

	_, err = svc.Session().Token()
	assert.ErrorIs(t, err, session.ErrPasswordChangeRequired)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	defer srv.Close()

	store := &mockSessionStorage{}
	svc, err := NewService(context.Background(), newTestAPIClient(srv.URL), store)
	require.NoError(t, err)

	state, err := svc.Login(context.Background(), "aziza", "wrong", "student")

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	// Неудачный вход не меняет состояние и ничего не сохраняет
	assert.Equal(t, session.StateLoggedOut, state)
	assert.Nil(t, store.data)
}

func TestChangePassword_ClearsPendingFlag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/change-password", r.URL.Path)
		assert.Equal(t, "Bearer jwt-token", r.Header.Get("Authorization"))

		var req api.ChangePasswordRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "temp-pass", req.CurrentPassword)
		assert.Equal(t, "new-pass", req.NewPassword)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Password changed"}`))
	}))
	defer srv.Close()

	store := &mockSessionStorage{
		data: &session.Data{
			Token:                 "jwt-token",
			User:                  api.User{ID: "u1", Username: "aziza", Role: "student"},
			RequirePasswordChange: true,
		},
	}

	svc, err := NewService(context.Background(), newTestAPIClient(srv.URL), store)
	require.NoError(t, err)
	require.Equal(t, session.StatePendingPasswordChange, svc.Session().State())

	require.NoError(t, svc.ChangePassword(context.Background(), "temp-pass", "new-pass"))

	assert.Equal(t, session.StateActive, svc.Session().State())
	require.NotNil(t, store.data)
	assert.False(t, store.data.RequirePasswordChange)
}

func TestChangePassword_ServerRejectsCurrentPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid password"}`))
	}))
	defer srv.Close()

	store := &mockSessionStorage{
		data: &session.Data{Token: "jwt-token", RequirePasswordChange: true},
	}

	svc, err := NewService(context.Background(), newTestAPIClient(srv.URL), store)
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), "wrong", "new-pass")

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid password", apiErr.Message)

	// Флаг остается до успешной смены
	assert.Equal(t, session.StatePendingPasswordChange, svc.Session().State())
}

func TestChangePassword_NotLoggedIn(t *testing.T) {
	store := &mockSessionStorage{}
	svc, err := NewService(context.Background(), newTestAPIClient("http://localhost:0"), store)
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), "old", "new")
	assert.ErrorIs(t, err, session.ErrNotLoggedIn)
}

func TestLogout_ClientLocalOnly(t *testing.T) {
	var serverHits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serverHits++
	}))
	defer srv.Close()

	store := &mockSessionStorage{
		data: &session.Data{Token: "jwt-token"},
	}

	svc, err := NewService(context.Background(), newTestAPIClient(srv.URL), store)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background()))

	// Выход чисто локальный: сервер не видит ни одного запроса
	assert.Equal(t, 0, serverHits)
	assert.Equal(t, session.StateLoggedOut, svc.Session().State())
	assert.Nil(t, store.data)
}

func TestLogout_MissingLocalSessionIsFine(t *testing.T) {
	store := &mockSessionStorage{}
	svc, err := NewService(context.Background(), newTestAPIClient("http://localhost:0"), store)
	require.NoError(t, err)

	assert.NoError(t, svc.Logout(context.Background()))
}

func TestApplyLogin_PersistsSession(t *testing.T) {
	store := &mockSessionStorage{}
	svc, err := NewService(context.Background(), newTestAPIClient("http://localhost:0"), store)
	require.NoError(t, err)

	state, err := svc.ApplyLogin(context.Background(), &api.LoginResponse{
		User:  api.User{ID: "a1", Username: "director", Role: "admin"},
		Token: "admin-jwt",
	})
	require.NoError(t, err)
	assert.Equal(t, session.StateActive, state)

	require.NotNil(t, store.data)
	assert.Equal(t, "admin-jwt", store.data.Token)
}

func TestSetLanguage_Persists(t *testing.T) {
	store := &mockSessionStorage{}
	svc, err := NewService(context.Background(), newTestAPIClient("http://localhost:0"), store)
	require.NoError(t, err)

	require.NoError(t, svc.SetLanguage(context.Background(), session.LangUz))

	require.NotNil(t, store.data)
	assert.Equal(t, session.LangUz, store.data.Language)
}
