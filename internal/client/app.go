package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-order-desk/internal/app"
	"github.com/MKhiriev/go-order-desk/internal/config"
	"github.com/MKhiriev/go-order-desk/internal/logger"
	"github.com/MKhiriev/go-order-desk/internal/service"
	"github.com/MKhiriev/go-order-desk/internal/tui"
	"github.com/MKhiriev/go-order-desk/internal/workers"
	"github.com/MKhiriev/go-order-desk/models"
)

var ErrNoUI = errors.New("client ui is not set")

type App struct {
	sessions service.ClientSessionService
	auth     service.ClientAuthService
	ui       UI
	workers  *workers.Workers
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, ui UI, workersCfg config.ClientWorkers, logger *logger.Logger) (*App, error) {
	if services == nil {
		return nil, tui.ErrNoServices
	}
	if ui == nil {
		return nil, ErrNoUI
	}

	return &App{
		sessions: services.SessionService,
		auth:     services.AuthService,
		ui:       ui,
		workers:  workers.New(workers.Every(services.RefreshJob, workersCfg.RefreshInterval)),
		logger:   logger,
	}, nil
}

// Run restores the persisted session, or runs the login flow, and then the
// main loop. Logging out or an expired session leads back to the login flow.
// Quitting from any screen ends Run with a nil error.
func (a *App) Run(ctx context.Context) error {
	session, err := a.sessions.Init(ctx)

	for {
		if err != nil {
			session, err = a.ui.LoginFlow(ctx, a.loginNotice(err))
			if errors.Is(err, tui.ErrUserQuit) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("login flow: %w", err)
			}
		}

		a.logger.Info().
			Str("func", "App.Run").
			Int64("user_id", session.User.ID).
			Msg("session started")

		exit, loopErr := a.runMainLoop(ctx, session)
		if loopErr != nil {
			return fmt.Errorf("main loop: %w", loopErr)
		}

		switch exit {
		case tui.ExitLogout:
			if logoutErr := a.auth.Logout(ctx); logoutErr != nil {
				a.logger.Err(logoutErr).Str("func", "App.Run").Msg("logout left local data behind")
			}
			err = service.ErrNotAuthenticated
		case tui.ExitSessionExpired:
			err = service.ErrSessionExpired
		default:
			return nil
		}
	}
}

func (a *App) runMainLoop(ctx context.Context, session models.Session) (tui.Exit, error) {
	a.workers.Start(ctx)
	defer a.workers.Stop()

	return a.ui.MainLoop(ctx, session)
}

// loginNotice maps the reason the user is logged out to the menu notice.
// An unreadable local session is logged and the user logs in again.
func (a *App) loginNotice(err error) tui.StatusNotice {
	switch {
	case errors.Is(err, service.ErrSessionExpired):
		return tui.StatusNotice{Text: app.MsgAuthenticationFailed, Error: true}
	case errors.Is(err, service.ErrNotAuthenticated):
		return tui.StatusNotice{}
	}

	a.logger.Err(err).Str("func", "App.loginNotice").Msg("failed to restore session")
	return tui.StatusNotice{Text: app.MsgUnexpectedError, Error: true}
}
