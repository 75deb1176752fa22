package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-order-desk/internal/adapter"
	"github.com/MKhiriev/go-order-desk/internal/logger"
	"github.com/MKhiriev/go-order-desk/internal/mock"
	"github.com/MKhiriev/go-order-desk/internal/validators"
	"github.com/MKhiriev/go-order-desk/models"
)

// newTestAuthSvc: хелпер для создания clientAuthService с моками
func newTestAuthSvc(
	t *testing.T,
	ctrl *gomock.Controller,
) (
	*clientAuthService,
	*mock.MockGatewayAdapter,
	*mock.MockClientSessionService,
	*mock.MockPasswordHasher,
) {
	t.Helper()
	mockAdapter := mock.NewMockGatewayAdapter(ctrl)
	mockSessions := mock.NewMockClientSessionService(ctrl)
	mockHasher := mock.NewMockPasswordHasher(ctrl)

	svc := NewClientAuthService(mockAdapter, mockSessions, mockHasher, validators.NewCredentialsValidator(), logger.Nop()).(*clientAuthService)
	return svc, mockAdapter, mockSessions, mockHasher
}

func validRegisterForm() models.RegisterForm {
	return models.RegisterForm{
		Name:           " Ada ",
		Surname:        "Lovelace",
		Email:          " ada@example.com ",
		BirthDate:      "1990-12-10",
		Password:       "difference-engine",
		RepeatPassword: "difference-engine",
	}
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestClientAuthService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, mockSessions, mockHasher := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	resp := models.AuthResponse{AccessToken: "token", User: &models.User{ID: 7}}
	session := models.Session{User: models.User{ID: 7}, AccessToken: "token"}

	gomock.InOrder(
		mockHasher.EXPECT().HashPassword("ada@example.com", "secret-pass").Return("hash"),
		// пароль в открытом виде на сервер не уходит
		mockAdapter.EXPECT().Login(ctx, models.LoginRequest{Email: "ada@example.com", PasswordHash: "hash"}).Return(resp, nil),
		mockSessions.EXPECT().Start(ctx, resp, "ada@example.com").Return(session, nil),
	)

	got, err := svc.Login(ctx, models.LoginForm{Email: "  ada@example.com", Password: "secret-pass"})
	require.NoError(t, err)
	assert.Equal(t, session, got)
}

func TestClientAuthService_Login_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _, _ := newTestAuthSvc(t, ctrl)

	_, err := svc.Login(context.Background(), models.LoginForm{Email: "not-an-email"})
	require.ErrorIs(t, err, validators.ErrInvalidCredentials)

	var fieldErrs validators.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, validators.FieldEmail)
	assert.Contains(t, fieldErrs, validators.FieldPassword)
}

func TestClientAuthService_Login_GatewayErrors(t *testing.T) {
	tests := []struct {
		name       string
		adapterErr error
		want       error
	}{
		{name: "wrong password", adapterErr: adapter.ErrUnauthorized, want: ErrWrongCredentials},
		{name: "offline", adapterErr: fmt.Errorf("%w: dial tcp", adapter.ErrUnavailable), want: ErrGatewayUnavailable},
		{name: "server error", adapterErr: adapter.ErrInternalServerError, want: ErrGatewayFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, mockAdapter, _, mockHasher := newTestAuthSvc(t, ctrl)

			mockHasher.EXPECT().HashPassword(gomock.Any(), gomock.Any()).Return("hash")
			mockAdapter.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.AuthResponse{}, tt.adapterErr)

			_, err := svc.Login(context.Background(), models.LoginForm{Email: "ada@example.com", Password: "secret-pass"})
			require.ErrorIs(t, err, ErrLoginOnServer)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClientAuthService_Login_SessionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, mockSessions, mockHasher := newTestAuthSvc(t, ctrl)

	mockHasher.EXPECT().HashPassword(gomock.Any(), gomock.Any()).Return("hash")
	mockAdapter.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.AuthResponse{AccessToken: "opaque"}, nil)
	mockSessions.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.Session{}, ErrMissingUser)

	_, err := svc.Login(context.Background(), models.LoginForm{Email: "ada@example.com", Password: "secret-pass"})
	require.ErrorIs(t, err, ErrMissingUser)
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestClientAuthService_Register_EmptyResponse(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, _, mockHasher := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockHasher.EXPECT().HashPassword("ada@example.com", "difference-engine").Return("hash")
	mockAdapter.EXPECT().Register(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
			assert.Equal(t, models.UserData{
				Name:      "Ada",
				Surname:   "Lovelace",
				Email:     "ada@example.com",
				BirthDate: "1990-12-10",
			}, req.UserData)
			assert.Equal(t, models.Credentials{Email: "ada@example.com", PasswordHash: "hash"}, req.Credentials)
			return models.AuthResponse{}, nil
		},
	)

	_, loggedIn, err := svc.Register(ctx, validRegisterForm())
	require.NoError(t, err)
	assert.False(t, loggedIn)
}

func TestClientAuthService_Register_WithToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, mockAdapter, mockSessions, mockHasher := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	session := models.Session{User: models.User{ID: 3}, AccessToken: "token"}

	mockHasher.EXPECT().HashPassword(gomock.Any(), gomock.Any()).Return("hash")
	mockAdapter.EXPECT().Register(ctx, gomock.Any()).Return(models.AuthResponse{AccessToken: "token"}, nil)
	mockSessions.EXPECT().Start(ctx, gomock.Any(), "ada@example.com").DoAndReturn(
		func(_ context.Context, resp models.AuthResponse, _ string) (models.Session, error) {
			// профиль берётся из формы, если сервер его не вернул
			require.NotNil(t, resp.User)
			assert.Equal(t, "Lovelace", resp.User.Surname)
			return session, nil
		},
	)

	got, loggedIn, err := svc.Register(ctx, validRegisterForm())
	require.NoError(t, err)
	assert.True(t, loggedIn)
	assert.Equal(t, session, got)
}

func TestClientAuthService_Register_Errors(t *testing.T) {
	t.Run("mismatched passwords", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, _, _, _ := newTestAuthSvc(t, ctrl)

		form := validRegisterForm()
		form.RepeatPassword = "something-else"

		_, _, err := svc.Register(context.Background(), form)
		var fieldErrs validators.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs, validators.FieldRepeatPassword)
	})

	t.Run("email taken", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, mockAdapter, _, mockHasher := newTestAuthSvc(t, ctrl)

		mockHasher.EXPECT().HashPassword(gomock.Any(), gomock.Any()).Return("hash")
		mockAdapter.EXPECT().Register(gomock.Any(), gomock.Any()).
			Return(models.AuthResponse{}, fmt.Errorf("%w: %w", adapter.ErrConflict, &models.APIError{Message: "email exists"}))

		_, _, err := svc.Register(context.Background(), validRegisterForm())
		require.ErrorIs(t, err, ErrRegisterOnServer)
		require.ErrorIs(t, err, ErrEmailAlreadyExists)

		msg, ok := GatewayMessage(err)
		assert.True(t, ok)
		assert.Equal(t, "email exists", msg)
	})

	t.Run("session start failure is not fatal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, mockAdapter, mockSessions, mockHasher := newTestAuthSvc(t, ctrl)

		mockHasher.EXPECT().HashPassword(gomock.Any(), gomock.Any()).Return("hash")
		mockAdapter.EXPECT().Register(gomock.Any(), gomock.Any()).Return(models.AuthResponse{AccessToken: "opaque"}, nil)
		mockSessions.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.Session{}, errors.New("no user"))

		_, loggedIn, err := svc.Register(context.Background(), validRegisterForm())
		require.NoError(t, err)
		assert.False(t, loggedIn)
	})
}

// ── Logout ───────────────────────────────────────────────────────────────────

func TestClientAuthService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, mockSessions, _ := newTestAuthSvc(t, ctrl)

	mockSessions.EXPECT().End(gomock.Any()).Return(nil)
	require.NoError(t, svc.Logout(context.Background()))
}
