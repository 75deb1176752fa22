package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-order-desk/internal/mock"
	"github.com/MKhiriev/go-order-desk/models"
)

func ptr[T any](v T) *T { return &v }

func testSnapshot() models.Order {
	return models.Order{
		ID:     100,
		UserID: 7,
		Status: models.OrderStatusCreated,
		Items: []models.OrderLine{
			{ID: 10, Item: models.Item{ID: 1, Name: "Keyboard", Price: 49.90}, Quantity: 2},
			{ID: 11, Item: models.Item{ID: 2, Name: "Mouse", Price: 19.99}, Quantity: 1},
		},
	}
}

func formType(m orderFormModel, s string) orderFormModel {
	for _, r := range s {
		m, _ = m.update(keyRunes(string(r)))
	}
	return m
}

func TestOrderForm_CreateFlow(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockClientOrderService(ctrl)
	ctx := context.Background()

	form := newCreateForm(ctx, svc, 7)
	require.Len(t, form.rows, 1)
	assert.Equal(t, "1", form.cells[0][cellQuantity].Value())

	form = formType(form, "5")
	form, _ = form.update(keyType(tea.KeyTab))
	form, _ = form.update(keyType(tea.KeyBackspace))
	assert.Equal(t, "required", form.cellErrs[cellQuantity])
	assert.Equal(t, int64(1), form.rows[0].Quantity, "empty cell keeps the last valid quantity")

	form = formType(form, "3")
	assert.Empty(t, form.cellErrs)

	// вторая строка с тем же товаром схлопывается при нормализации в сервисе
	form, _ = form.update(keyType(tea.KeyCtrlA))
	require.Len(t, form.rows, 2)
	assert.Equal(t, cellsPerRow, form.focus)
	form = formType(form, "5")

	want := []models.LineEntry{
		{CatalogItemID: 5, Quantity: 3},
		{CatalogItemID: 5, Quantity: 1},
	}
	svc.EXPECT().Create(ctx, int64(7), want).Return(models.Order{ID: 101}, nil)

	form, cmd := form.update(keyType(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	assert.True(t, form.saving)
	assert.Contains(t, form.View(), "[Saving...]")

	// while saving: no resubmission, rows frozen
	_, again := form.update(keyType(tea.KeyCtrlS))
	assert.Nil(t, again)
	frozen, _ := form.update(keyType(tea.KeyCtrlA))
	assert.Len(t, frozen.rows, 2)

	msg, ok := cmd().(orderCreatedMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)
	assert.Equal(t, int64(101), msg.order.ID)
}

func TestOrderForm_RejectsNonNumbers(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockClientOrderService(ctrl)

	form := newCreateForm(context.Background(), svc, 7)
	form = formType(form, "x")
	assert.Equal(t, "not a number", form.cellErrs[cellItem])
	assert.Contains(t, form.View(), "not a number")

	form, cmd := form.update(keyType(tea.KeyCtrlS))
	assert.Nil(t, cmd)
	assert.False(t, form.saving)
	assert.Contains(t, form.errMsg, "fix the highlighted cells")
}

func TestOrderForm_QuantityIsClamped(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockClientOrderService(ctrl)

	form := newCreateForm(context.Background(), svc, 7)
	form, _ = form.update(keyType(tea.KeyTab))
	form, _ = form.update(keyType(tea.KeyBackspace))
	form = formType(form, "0")

	assert.Equal(t, int64(1), form.rows[0].Quantity)
	assert.Equal(t, "1", form.cells[0][cellQuantity].Value())
}

func TestOrderForm_EditRemoveRowAndPreview(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockClientOrderService(ctrl)
	ctx := context.Background()

	snapshot := testSnapshot()
	form := newEditForm(ctx, svc, snapshot, 99)
	assert.Equal(t, int64(7), form.userID, "the order owner wins over the session user")
	require.Len(t, form.rows, 2)
	assert.Equal(t, "1", form.cells[0][cellItem].Value())
	assert.Contains(t, form.View(), "Changes: none")

	// фокус на второй строке, удаляем мышь
	form, _ = form.update(keyType(tea.KeyShiftTab))
	assert.Equal(t, 3, form.focus)
	form, _ = form.update(keyType(tea.KeyCtrlX))
	require.Len(t, form.rows, 1)
	assert.Equal(t, 0, form.focus)

	view := form.View()
	assert.Contains(t, view, "EDIT ORDER #100")
	assert.Contains(t, view, "Changes: 1 removed │ 0 added │ 0 updated")
	assert.Contains(t, view, "-item 2 (Mouse) x 1")

	svc.EXPECT().Update(ctx, snapshot, int64(7), []models.LineEntry{
		{ServerLineID: ptr(int64(10)), CatalogItemID: 1, Quantity: 2},
	}).Return(models.UpdateResult{Changed: true}, nil)

	_, cmd := form.update(keyType(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	msg, ok := cmd().(orderUpdatedMsg)
	require.True(t, ok)
	assert.True(t, msg.result.Changed)
}

func TestOrderForm_RemoveLastRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockClientOrderService(ctrl)

	form := newCreateForm(context.Background(), svc, 7)
	form, _ = form.update(keyType(tea.KeyCtrlX))
	assert.Empty(t, form.rows)
	assert.Equal(t, 0, form.focus)
	assert.Contains(t, form.View(), "no rows")

	// keys on an empty form are harmless
	form, _ = form.update(keyType(tea.KeyTab))
	form = formType(form, "1")
	assert.Empty(t, form.rows)
}

func TestOrderForm_RemoveRowShiftsCellErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockClientOrderService(ctrl)

	form := newCreateForm(context.Background(), svc, 7)
	form, _ = form.update(keyType(tea.KeyCtrlA))
	form = formType(form, "x")
	require.Contains(t, form.cellErrs, cellsPerRow+cellItem)

	// remove the first row, the error moves up with its row
	form.focus = 0
	form.applyFocus()
	form, _ = form.update(keyType(tea.KeyCtrlX))
	require.Len(t, form.rows, 1)
	assert.Equal(t, map[int]string{cellItem: "not a number"}, form.cellErrs)
}
