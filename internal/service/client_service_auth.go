package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-order-desk/internal/adapter"
	"github.com/MKhiriev/go-order-desk/internal/crypto"
	"github.com/MKhiriev/go-order-desk/internal/logger"
	"github.com/MKhiriev/go-order-desk/internal/validators"
	"github.com/MKhiriev/go-order-desk/models"
)

type clientAuthService struct {
	adapter   adapter.GatewayAdapter
	sessions  ClientSessionService
	hasher    crypto.PasswordHasher
	validator validators.Validator
	logger    *logger.Logger
}

func NewClientAuthService(
	gateway adapter.GatewayAdapter,
	sessions ClientSessionService,
	hasher crypto.PasswordHasher,
	validator validators.Validator,
	logger *logger.Logger,
) ClientAuthService {
	return &clientAuthService{
		adapter:   gateway,
		sessions:  sessions,
		hasher:    hasher,
		validator: validator,
		logger:    logger,
	}
}

func (a *clientAuthService) Login(ctx context.Context, form models.LoginForm) (models.Session, error) {
	if err := a.validator.Validate(ctx, form); err != nil {
		return models.Session{}, err
	}

	email := strings.TrimSpace(form.Email)
	req := models.LoginRequest{
		Email:        email,
		PasswordHash: a.hasher.HashPassword(email, form.Password),
	}

	resp, err := a.adapter.Login(ctx, req)
	if err != nil {
		a.logger.Err(err).Str("func", "clientAuthService.Login").Msg("gateway login failed")
		return models.Session{}, fmt.Errorf("%w: %w", ErrLoginOnServer, mapAuthError(err))
	}

	session, err := a.sessions.Start(ctx, resp, email)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrLoginOnServer, err)
	}

	return session, nil
}

func (a *clientAuthService) Register(ctx context.Context, form models.RegisterForm) (models.Session, bool, error) {
	if err := a.validator.Validate(ctx, form); err != nil {
		return models.Session{}, false, err
	}

	email := strings.TrimSpace(form.Email)
	req := models.RegisterRequest{
		UserData: models.UserData{
			Name:      strings.TrimSpace(form.Name),
			Surname:   strings.TrimSpace(form.Surname),
			Email:     email,
			BirthDate: strings.TrimSpace(form.BirthDate),
		},
		Credentials: models.Credentials{
			Email:        email,
			PasswordHash: a.hasher.HashPassword(email, form.Password),
		},
	}

	resp, err := a.adapter.Register(ctx, req)
	if err != nil {
		a.logger.Err(err).Str("func", "clientAuthService.Register").Msg("gateway registration failed")
		return models.Session{}, false, fmt.Errorf("%w: %w", ErrRegisterOnServer, mapAuthError(err))
	}

	// an empty body means the account exists but nobody is logged in yet
	if resp.AccessToken == "" {
		return models.Session{}, false, nil
	}

	if resp.User == nil {
		resp.User = &models.User{
			Name:      req.UserData.Name,
			Surname:   req.UserData.Surname,
			Email:     email,
			BirthDate: req.UserData.BirthDate,
		}
	}

	session, err := a.sessions.Start(ctx, resp, email)
	if err != nil {
		a.logger.Warn().Err(err).
			Str("func", "clientAuthService.Register").
			Msg("registered but could not start session")
		return models.Session{}, false, nil
	}

	return session, true, nil
}

func (a *clientAuthService) Logout(ctx context.Context) error {
	return a.sessions.End(ctx)
}
