package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-order-desk/internal/app"
	"github.com/MKhiriev/go-order-desk/internal/mock"
	"github.com/MKhiriev/go-order-desk/internal/service"
	"github.com/MKhiriev/go-order-desk/models"
)

func testSession() models.Session {
	return models.Session{
		User:        models.User{ID: 7, Name: "Ada", Surname: "Lovelace", Email: "ada@example.com"},
		AccessToken: "token",
	}
}

// newLoadedMainLoop: хелпер: главный экран с уже загруженным списком заказов
func newLoadedMainLoop(t *testing.T, svc service.ClientOrderService, list models.OrderList) mainLoopModel {
	t.Helper()
	m := newMainLoopModel(context.Background(), svc, testSession())
	m.copyToClipboard = func(string) error { return nil }

	updated, _ := m.Update(ordersLoadedMsg{list: list})
	return updated.(mainLoopModel)
}

func update(t *testing.T, m mainLoopModel, msg tea.Msg) (mainLoopModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(mainLoopModel), cmd
}

func TestMainLoop_LoadOrders(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockClientOrderService(ctrl)

	list := models.OrderList{Orders: []models.Order{testSnapshot(), {ID: 101, Status: models.OrderStatusPaid}}}
	svc.EXPECT().List(gomock.Any()).Return(list, nil)

	m := newMainLoopModel(context.Background(), svc, testSession())
	assert.Contains(t, m.View(), "Loading orders")

	msg := m.cmdLoadOrders()()
	m, _ = update(t, m, msg)

	view := m.View()
	assert.False(t, m.list.loading)
	assert.Contains(t, view, "ORDERS")
	assert.Contains(t, view, "Created")
	assert.Contains(t, view, "119.79", "total of order 100")
	assert.Contains(t, view, "Paid")
	assert.NotContains(t, view, app.MsgStaleOrders)
}

func TestMainLoop_StaleListIsFlagged(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockClientOrderService(ctrl)

	m := newLoadedMainLoop(t, svc, models.OrderList{Orders: []models.Order{testSnapshot()}, Stale: true})
	assert.Contains(t, m.View(), app.MsgStaleOrders)
}

func TestMainLoop_ListKeepsSelectionAcrossReload(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockClientOrderService(ctrl)

	m := newLoadedMainLoop(t, svc, models.OrderList{Orders: []models.Order{{ID: 1}, {ID: 2}, {ID: 3}}})
	m, _ = update(t, m, keyType(tea.KeyDown))
	m, _ = update(t, m, keyType(tea.KeyDown))
	m, _ = update(t, m, keyType(tea.KeyDown))
	order, ok := m.list.current()
	require.True(t, ok)
	assert.Equal(t, int64(3), order.ID)

	m, _ = update(t, m, ordersLoadedMsg{list: models.OrderList{Orders: []models.Order{{ID: 3}, {ID: 4}}}})
	order, _ = m.list.current()
	assert.Equal(t, int64(3), order.ID)
}

func TestMainLoop_DeleteWithConfirmation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockClientOrderService(ctrl)

	m := newLoadedMainLoop(t, svc, models.OrderList{Orders: []models.Order{testSnapshot()}})

	m, cmd := update(t, m, keyType(tea.KeyCtrlD))
	assert.Nil(t, cmd)
	require.True(t, m.showConfirm)
	assert.Contains(t, m.View(), "Delete order #100?")

	// "n" отменяет удаление и не создаёт новый заказ
	m, cmd = update(t, m, keyRunes("n"))
	assert.Nil(t, cmd)
	assert.False(t, m.showConfirm)
	assert.Equal(t, viewList, m.view)

	svc.EXPECT().Delete(gomock.Any(), int64(100)).Return(nil)

	m, _ = update(t, m, keyType(tea.KeyCtrlD))
	m, cmd = update(t, m, keyRunes("y"))
	require.NotNil(t, cmd)
	assert.True(t, m.deleting)

	msg, ok := cmd().(orderDeletedMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)

	m, cmd = update(t, m, msg)
	assert.NotNil(t, cmd)
	assert.False(t, m.deleting)
	assert.True(t, m.list.loading)
	assert.Equal(t, "Order #100 deleted", m.status)
}

func TestMainLoop_DeleteError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockClientOrderService(ctrl)

	m := newLoadedMainLoop(t, svc, models.OrderList{Orders: []models.Order{testSnapshot()}})
	m, _ = update(t, m, orderDeletedMsg{orderID: 100, err: service.ErrForbidden})

	assert.Contains(t, m.View(), app.MsgForbidden)
}

func TestMainLoop_SessionExpiry(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockClientOrderService(ctrl)

	m := newLoadedMainLoop(t, svc, models.OrderList{Orders: []models.Order{testSnapshot()}})
	m, cmd := update(t, m, ordersLoadedMsg{err: service.ErrSessionExpired})
	assert.Nil(t, cmd)
	assert.Equal(t, ExitSessionExpired, m.exit)
	assert.Contains(t, m.View(), app.MsgAuthenticationFailed)

	// other keys are swallowed by the overlay
	m, cmd = update(t, m, keyRunes("n"))
	assert.Nil(t, cmd)
	assert.Equal(t, viewList, m.view)

	_, cmd = update(t, m, keyType(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestMainLoop_SessionExpiryWhileSaving(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockClientOrderService(ctrl)

	m := newLoadedMainLoop(t, svc, models.OrderList{Orders: []models.Order{testSnapshot()}})
	m, _ = update(t, m, keyRunes("n"))
	require.Equal(t, viewForm, m.view)

	m, _ = update(t, m, orderCreatedMsg{err: service.ErrSessionExpired})
	assert.Equal(t, ExitSessionExpired, m.exit)
	assert.True(t, m.showError)
}

func TestMainLoop_CreateOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockClientOrderService(ctrl)

	m := newLoadedMainLoop(t, svc, models.OrderList{})
	assert.Contains(t, m.View(), "No orders yet")

	m, _ = update(t, m, keyRunes("n"))
	require.Equal(t, viewForm, m.view)
	assert.Equal(t, int64(7), m.form.userID)
	assert.Contains(t, m.View(), "NEW ORDER")

	// validation error keeps the form open
	m.form.saving = true
	m, _ = update(t, m, orderCreatedMsg{err: errors.Join(errors.New("create"), service.ErrInvalidDataProvided)})
	assert.Equal(t, viewForm, m.view)
	assert.False(t, m.form.saving)
	assert.Contains(t, m.View(), app.MsgInvalidDataProvided)

	m, cmd := update(t, m, orderCreatedMsg{order: models.Order{ID: 101}})
	assert.NotNil(t, cmd)
	assert.Equal(t, viewList, m.view)
	assert.Equal(t, "Order #101 created", m.status)
	assert.True(t, m.list.loading)
}

func TestMainLoop_EscLeavesForm(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockClientOrderService(ctrl)

	m := newLoadedMainLoop(t, svc, models.OrderList{Orders: []models.Order{testSnapshot()}})
	m, _ = update(t, m, keyRunes("n"))
	m, _ = update(t, m, keyType(tea.KeyEsc))
	assert.Equal(t, viewList, m.view)

	// esc is ignored while the form is saving
	m, _ = update(t, m, keyRunes("n"))
	m.form.saving = true
	m, _ = update(t, m, keyType(tea.KeyEsc))
	assert.Equal(t, viewForm, m.view)
}

func TestMainLoop_DetailAndEdit(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockClientOrderService(ctrl)

	snapshot := testSnapshot()
	m := newLoadedMainLoop(t, svc, models.OrderList{Orders: []models.Order{snapshot}})

	fresh := snapshot
	fresh.Status = models.OrderStatusPaid
	svc.EXPECT().Get(gomock.Any(), int64(100)).Return(fresh, nil)

	m, _ = update(t, m, keyType(tea.KeyEnter))
	require.Equal(t, viewDetail, m.view)
	assert.True(t, m.detail.loading)

	m, _ = update(t, m, m.cmdGetOrder(100)())
	assert.False(t, m.detail.loading)
	view := m.View()
	assert.Contains(t, view, "ORDER #100")
	assert.Contains(t, view, "Keyboard")
	assert.Contains(t, view, "99.80", "line total of 2 x 49.90")
	assert.Contains(t, view, "Total: 119.79")
	assert.Equal(t, models.OrderStatusPaid, m.list.list.Orders[0].Status, "list row refreshed too")

	m, _ = update(t, m, keyRunes("e"))
	require.Equal(t, viewForm, m.view)
	assert.Equal(t, fresh, m.form.snapshot)

	m, _ = update(t, m, keyType(tea.KeyEsc))
	assert.Equal(t, viewDetail, m.view)

	// nothing changed: no call, message shown
	m.view = viewForm
	m, _ = update(t, m, orderUpdatedMsg{result: models.UpdateResult{Order: fresh}})
	assert.Equal(t, viewDetail, m.view)
	assert.Equal(t, app.MsgNoChanges, m.status)
}

func TestMainLoop_EditFromListFetchesSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockClientOrderService(ctrl)

	m := newLoadedMainLoop(t, svc, models.OrderList{Orders: []models.Order{testSnapshot()}})

	m, cmd := update(t, m, keyRunes("e"))
	require.NotNil(t, cmd)
	assert.True(t, m.editAfterLoad)
	assert.Equal(t, viewList, m.view)

	fresh := testSnapshot()
	fresh.Items = fresh.Items[:1]
	m, _ = update(t, m, orderLoadedMsg{order: fresh})

	assert.Equal(t, viewForm, m.view)
	assert.False(t, m.editAfterLoad)
	assert.Len(t, m.form.rows, 1)

	m, _ = update(t, m, keyType(tea.KeyEsc))
	assert.Equal(t, viewList, m.view)
}

func TestMainLoop_CopyOrderID(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockClientOrderService(ctrl)

	m := newLoadedMainLoop(t, svc, models.OrderList{Orders: []models.Order{testSnapshot()}})

	var copied string
	m.copyToClipboard = func(s string) error {
		copied = s
		return nil
	}

	m, cmd := update(t, m, keyRunes("c"))
	assert.NotNil(t, cmd)
	assert.Equal(t, "100", copied)
	assert.Equal(t, "Order id 100 copied", m.status)

	m, _ = update(t, m, clearStatusMsg{})
	assert.Empty(t, m.status)

	m.copyToClipboard = func(string) error { return errors.New("no clipboard") }
	m, _ = update(t, m, keyRunes("c"))
	assert.Contains(t, m.errMsg, "no clipboard")
}

func TestMainLoop_TabsAndExit(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockClientOrderService(ctrl)

	m := newLoadedMainLoop(t, svc, models.OrderList{})
	m.session.ExpiresAt = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	m, _ = update(t, m, keyType(tea.KeyTab))
	assert.Equal(t, tabProfile, m.tab)
	view := m.View()
	assert.Contains(t, view, "PROFILE")
	assert.Contains(t, view, "Ada Lovelace")
	assert.Contains(t, view, "ada@example.com")

	// order keys do nothing on the profile tab
	m, cmd := update(t, m, keyRunes("n"))
	assert.Nil(t, cmd)
	assert.Equal(t, viewList, m.view)

	m, _ = update(t, m, keyType(tea.KeyTab))
	assert.Equal(t, tabOrders, m.tab)

	m, cmd = update(t, m, keyRunes("l"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, ExitLogout, m.exit)

	m, cmd = update(t, m, keyType(tea.KeyCtrlC))
	require.NotNil(t, cmd)
	assert.Equal(t, ExitQuit, m.exit)
}
