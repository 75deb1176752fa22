package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-order-desk/internal/adapter"
	"github.com/MKhiriev/go-order-desk/internal/logger"
	"github.com/MKhiriev/go-order-desk/internal/store"
	"github.com/MKhiriev/go-order-desk/internal/utils"
	"github.com/MKhiriev/go-order-desk/models"
)

type clientSessionService struct {
	sessions store.SessionRepository
	orders   store.OrderCacheRepository
	adapter  adapter.GatewayAdapter
	logger   *logger.Logger
	now      func() time.Time

	mu      sync.RWMutex
	current models.Session
}

// NewClientSessionService creates the session service. The session starts
// empty until Init or Start is called.
func NewClientSessionService(storages *store.ClientStorages, gateway adapter.GatewayAdapter, logger *logger.Logger) ClientSessionService {
	return &clientSessionService{
		sessions: storages.Session,
		orders:   storages.Orders,
		adapter:  gateway,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *clientSessionService) Init(ctx context.Context) (models.Session, error) {
	session, err := s.sessions.LoadSession(ctx)
	if err != nil {
		if errors.Is(err, store.ErrLocalSessionNotFound) {
			return models.Session{}, ErrNotAuthenticated
		}
		s.logger.Err(err).Str("func", "clientSessionService.Init").Msg("failed to load persisted session")
		return models.Session{}, fmt.Errorf("load session: %w", err)
	}

	if !session.IsAuthenticated() {
		if clearErr := s.sessions.ClearSession(ctx); clearErr != nil {
			s.logger.Err(clearErr).Str("func", "clientSessionService.Init").Msg("failed to clear incomplete session")
		}
		return models.Session{}, ErrNotAuthenticated
	}

	if session.IsExpired(s.now()) {
		s.logger.Info().
			Str("func", "clientSessionService.Init").
			Int64("user_id", session.User.ID).
			Msg("persisted session is expired")

		s.mu.Lock()
		s.current = session
		s.mu.Unlock()
		if endErr := s.End(ctx); endErr != nil {
			return models.Session{}, endErr
		}
		return models.Session{}, ErrSessionExpired
	}

	s.install(session)
	return session, nil
}

func (s *clientSessionService) Current() (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current, s.current.IsAuthenticated()
}

func (s *clientSessionService) Start(ctx context.Context, resp models.AuthResponse, email string) (models.Session, error) {
	accessToken := strings.TrimSpace(resp.AccessToken)
	if accessToken == "" {
		return models.Session{}, adapter.ErrMissingToken
	}

	session := models.Session{
		AccessToken:  accessToken,
		RefreshToken: resp.RefreshToken,
	}
	if resp.User != nil {
		session.User = *resp.User
	}

	// the body may omit the user or the expiry; both can be read from the JWT
	token, tokenErr := utils.ParseUnverifiedToken(accessToken)
	if tokenErr == nil {
		session.ExpiresAt = token.Expiry()
		if session.User.ID <= 0 {
			if userID, idErr := token.GetUserID(); idErr == nil {
				session.User.ID = userID
			}
		}
	} else {
		s.logger.Debug().Err(tokenErr).
			Str("func", "clientSessionService.Start").
			Msg("access token is not a readable JWT")
	}

	if session.User.ID <= 0 {
		return models.Session{}, ErrMissingUser
	}
	if session.User.Email == "" {
		session.User.Email = strings.TrimSpace(email)
	}

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		s.logger.Err(err).Str("func", "clientSessionService.Start").Msg("failed to persist session")
		return models.Session{}, fmt.Errorf("save session: %w", err)
	}

	s.install(session)

	s.logger.Info().
		Str("func", "clientSessionService.Start").
		Int64("user_id", session.User.ID).
		Msg("session started")

	return session, nil
}

func (s *clientSessionService) End(ctx context.Context) error {
	s.mu.Lock()
	userID := s.current.User.ID
	s.current = models.Session{}
	s.mu.Unlock()

	s.adapter.SetToken("")

	var errs []error
	if err := s.sessions.ClearSession(ctx); err != nil {
		errs = append(errs, fmt.Errorf("clear session: %w", err))
	}
	if userID > 0 {
		if err := s.orders.DeleteOrders(ctx, userID); err != nil {
			errs = append(errs, fmt.Errorf("clear cached orders: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		s.logger.Err(err).Str("func", "clientSessionService.End").Msg("failed to clear local session data")
		return err
	}

	s.logger.Info().Str("func", "clientSessionService.End").Int64("user_id", userID).Msg("session ended")
	return nil
}

func (s *clientSessionService) install(session models.Session) {
	s.mu.Lock()
	s.current = session
	s.mu.Unlock()

	s.adapter.SetToken(session.AccessToken)
}
