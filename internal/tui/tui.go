package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-order-desk/internal/logger"
	"github.com/MKhiriev/go-order-desk/internal/service"
	"github.com/MKhiriev/go-order-desk/models"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	ErrUserQuit   = errors.New("user quit")
	ErrNoServices = errors.New("client services are not set")
)

// Exit tells the caller why the main loop ended.
type Exit int

const (
	ExitQuit Exit = iota
	ExitLogout
	ExitSessionExpired
)

type TUI struct {
	services  *service.ClientServices
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(services *service.ClientServices, buildInfo models.AppBuildInfo, logger *logger.Logger) (*TUI, error) {
	if services == nil {
		return nil, ErrNoServices
	}
	return &TUI{services: services, buildInfo: buildInfo, logger: logger.GetChildLogger()}, nil
}

// LoginFlow runs the menu, login and register pages until a session is
// started. notice is shown on the menu, e.g. after the previous session
// expired.
func (t *TUI) LoginFlow(ctx context.Context, notice StatusNotice) (models.Session, error) {
	pages := map[string]tea.Model{
		pageMenu:     NewMenuModel(notice),
		pageLogin:    NewLoginModel(ctx, t.services.AuthService),
		pageRegister: NewRegisterModel(ctx, t.services.AuthService),
	}

	root := NewRootModel(pages, pageMenu, t.buildInfo)
	finalModel, runErr := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if runErr != nil {
		return models.Session{}, runErr
	}

	result, ok := finalModel.(RootModel)
	if !ok {
		return models.Session{}, tea.ErrProgramKilled
	}
	if result.quitByUser {
		return models.Session{}, ErrUserQuit
	}

	t.logger.Info().
		Str("func", "TUI.LoginFlow").
		Int64("user_id", result.session.User.ID).
		Msg("user logged in")
	return result.session, nil
}

// MainLoop runs the orders and profile screens for session.
func (t *TUI) MainLoop(ctx context.Context, session models.Session) (Exit, error) {
	model := newMainLoopModel(ctx, t.services.OrderService, session)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if runErr != nil {
		return ExitQuit, runErr
	}

	result, ok := finalModel.(mainLoopModel)
	if !ok {
		return ExitQuit, tea.ErrProgramKilled
	}
	return result.exit, nil
}
