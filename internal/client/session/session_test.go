package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maktab-uz/maktab/pkg/api"
)

func loginResponse(requireChange bool) *api.LoginResponse {
	return &api.LoginResponse{
		User: api.User{
			ID:       "u1",
			Username: "aziza",
			Role:     "student",
		},
		Token:                 "jwt-token",
		RequirePasswordChange: requireChange,
	}
}

func TestNew_StartsLoggedOut(t *testing.T) {
	s := New()

	assert.Equal(t, StateLoggedOut, s.State())
	assert.Equal(t, LangRu, s.Language())

	_, err := s.Token()
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	_, err = s.User()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestApplyLogin_PermanentPassword(t *testing.T) {
	s := New()

	state := s.ApplyLogin(loginResponse(false))
	assert.Equal(t, StateActive, state)
	assert.Equal(t, StateActive, s.State())

	token, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)

	user, err := s.User()
	require.NoError(t, err)
	assert.Equal(t, "aziza", user.Username)
}

func TestApplyLogin_TemporaryPassword(t *testing.T) {
	s := New()

	state := s.ApplyLogin(loginResponse(true))
	assert.Equal(t, StatePendingPasswordChange, state)

	// До смены пароля токен не выдается для обычных операций
	_, err := s.Token()
	assert.ErrorIs(t, err, ErrPasswordChangeRequired)

	// Но доступен для самой смены пароля
	token, err := s.TokenForPasswordChange()
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)
}

func TestSetRoute_BlockedWhilePending(t *testing.T) {
	s := New()

	assert.ErrorIs(t, s.SetRoute("home"), ErrNotLoggedIn)

	s.ApplyLogin(loginResponse(true))
	assert.ErrorIs(t, s.SetRoute("home"), ErrPasswordChangeRequired)

	s.PasswordChanged()
	require.NoError(t, s.SetRoute("home"))
	assert.Equal(t, "home", s.Route())
}

func TestPasswordChanged_TransitionsToActive(t *testing.T) {
	s := New()
	s.ApplyLogin(loginResponse(true))
	require.Equal(t, StatePendingPasswordChange, s.State())

	s.PasswordChanged()

	assert.Equal(t, StateActive, s.State())

	token, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)
}

func TestLogout_ClearsEverythingExceptLanguage(t *testing.T) {
	s := New()
	s.ApplyLogin(loginResponse(false))
	require.NoError(t, s.SetRoute("home"))
	require.NoError(t, s.SetLanguage(LangUz))

	s.Logout()

	assert.Equal(t, StateLoggedOut, s.State())
	assert.Empty(t, s.Route())

	_, err := s.Token()
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	// Выбранный язык переживает выход
	assert.Equal(t, LangUz, s.Language())
}

func TestApplyLogin_ResetsRoute(t *testing.T) {
	s := New()
	s.ApplyLogin(loginResponse(false))
	require.NoError(t, s.SetRoute("journal"))

	// Повторный вход начинается с чистого экрана
	s.ApplyLogin(loginResponse(false))
	assert.Empty(t, s.Route())
}

func TestSetLanguage(t *testing.T) {
	s := New()

	require.NoError(t, s.SetLanguage(LangUz))
	assert.Equal(t, LangUz, s.Language())

	assert.Error(t, s.SetLanguage("en"))
	assert.Equal(t, LangUz, s.Language())
}

func TestRestore(t *testing.T) {
	s := Restore(Data{
		Token:                 "saved-token",
		User:                  api.User{ID: "u1", Username: "aziza", Role: "teacher"},
		RequirePasswordChange: false,
		ActiveRoute:           "journal",
		Language:              LangUz,
	})

	assert.Equal(t, StateActive, s.State())
	assert.Equal(t, "journal", s.Route())
	assert.Equal(t, LangUz, s.Language())
}

func TestRestore_EmptyLanguageDefaultsToRussian(t *testing.T) {
	s := Restore(Data{Token: "saved-token"})

	assert.Equal(t, LangRu, s.Language())
}

func TestRestore_PendingPasswordChangeSurvivesRestart(t *testing.T) {
	s := Restore(Data{Token: "saved-token", RequirePasswordChange: true})

	assert.Equal(t, StatePendingPasswordChange, s.State())

	_, err := s.Token()
	assert.ErrorIs(t, err, ErrPasswordChangeRequired)
}

func TestSnapshot_ReturnsCopy(t *testing.T) {
	s := New()
	s.ApplyLogin(loginResponse(false))

	snap := s.Snapshot()
	assert.Equal(t, "jwt-token", snap.Token)

	// Изменение снимка не трогает сессию
	snap.Token = "mutated"
	token, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)
}
