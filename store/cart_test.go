package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pravinale/pantonefrontend/models"
)

// stubStock returns a fixed stock level, or an error when set.
type stubStock struct {
	stock int
	err   error
	calls int
}

func (s *stubStock) Stock(ctx context.Context, productID, color, size string) (int, error) {
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	return s.stock, nil
}

func newTestCart(t *testing.T, stock StockQuerier) *CartStore {
	t.Helper()
	local := OpenLocalStore(filepath.Join(t.TempDir(), "session.json"))
	return NewCartStore(local, stock)
}

func redShirt() models.LineItem {
	return models.LineItem{ProductID: "P1", Name: "Shirt", Price: 100, Color: "Red", Size: "M", Image: "img/shirt.png"}
}

func TestCartStore_AddMergesSameVariant(t *testing.T) {
	cart := newTestCart(t, &stubStock{stock: 10})

	cart.Add(redShirt())
	cart.Add(redShirt())

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCartStore_AddKeepsDistinctSizesApart(t *testing.T) {
	cart := newTestCart(t, &stubStock{stock: 10})

	m := redShirt()
	l := redShirt()
	l.Size = "L"
	cart.Add(m)
	cart.Add(l)

	items := cart.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestCartStore_DecreaseClampsAtOne(t *testing.T) {
	cart := newTestCart(t, &stubStock{stock: 10})
	cart.Add(redShirt())

	require.NoError(t, cart.UpdateQuantity(context.Background(), "P1", "Red", "M", ActionDecrease))

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity, "decrease at quantity 1 must not drop below 1 or remove the line")
}

func TestCartStore_IncreaseWithinStock(t *testing.T) {
	stock := &stubStock{stock: 3}
	cart := newTestCart(t, stock)
	cart.Add(redShirt())

	require.NoError(t, cart.UpdateQuantity(context.Background(), "P1", "Red", "M", ActionIncrease))

	assert.Equal(t, 2, cart.Items()[0].Quantity)
	assert.Equal(t, 1, stock.calls, "increase must consult live stock")
}

func TestCartStore_IncreaseBeyondStockIsRejected(t *testing.T) {
	cart := newTestCart(t, &stubStock{stock: 1})
	cart.Add(redShirt())

	err := cart.UpdateQuantity(context.Background(), "P1", "Red", "M", ActionIncrease)
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 1, cart.Items()[0].Quantity, "quantity must be unchanged on rejection")
}

func TestCartStore_IncreaseFailsSafeWhenStockLookupFails(t *testing.T) {
	cart := newTestCart(t, &stubStock{err: errors.New("boom")})
	cart.Add(redShirt())

	err := cart.UpdateQuantity(context.Background(), "P1", "Red", "M", ActionIncrease)
	require.ErrorIs(t, err, ErrStockUnavailable)
	assert.Equal(t, 1, cart.Items()[0].Quantity)
}

func TestCartStore_UnknownActionRejected(t *testing.T) {
	cart := newTestCart(t, &stubStock{stock: 10})
	cart.Add(redShirt())

	err := cart.UpdateQuantity(context.Background(), "P1", "Red", "M", "double")
	require.ErrorIs(t, err, ErrUnknownAction)
}

func TestCartStore_UpdateQuantityUnknownLineIsNoop(t *testing.T) {
	cart := newTestCart(t, &stubStock{stock: 10})
	cart.Add(redShirt())

	require.NoError(t, cart.UpdateQuantity(context.Background(), "P9", "Blue", "S", ActionIncrease))
	assert.Equal(t, 1, cart.Items()[0].Quantity)
}

func TestCartStore_RemoveDeletesOnlyMatchingLine(t *testing.T) {
	cart := newTestCart(t, &stubStock{stock: 10})
	m := redShirt()
	l := redShirt()
	l.Size = "L"
	cart.Add(m)
	cart.Add(l)

	cart.Remove("P1", "Red", "M")

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "L", items[0].Size)

	// Removing an absent line is a no-op.
	cart.Remove("P1", "Red", "M")
	assert.Len(t, cart.Items(), 1)
}

func TestCartStore_Subtotal(t *testing.T) {
	cart := newTestCart(t, &stubStock{stock: 10})
	a := redShirt()
	cart.Add(a)
	cart.Add(a) // qty 2 at 100
	b := models.LineItem{ProductID: "P2", Name: "Cap", Price: 50, Color: "Blue", Size: "One", Image: "img/cap.png"}
	cart.Add(b)

	assert.Equal(t, 250.0, cart.Subtotal())
}

func TestCartStore_PersistsAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	local := OpenLocalStore(path)
	cart := NewCartStore(local, &stubStock{stock: 10})
	cart.Add(redShirt())
	cart.Add(redShirt())

	rehydrated := NewCartStore(OpenLocalStore(path), &stubStock{stock: 10})
	items := rehydrated.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "Shirt", items[0].Name)
}

func TestCartStore_NonArrayStoredValueHydratesEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"cartitem": "corrupted"}`), 0644))

	cart := NewCartStore(OpenLocalStore(path), &stubStock{stock: 10})
	assert.True(t, cart.Empty())
}

func TestCartStore_ClearErasesDurableMirror(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	local := OpenLocalStore(path)
	cart := NewCartStore(local, &stubStock{stock: 10})
	cart.Add(redShirt())

	cart.Clear()

	assert.True(t, cart.Empty())
	_, ok := OpenLocalStore(path).Get("cartitem")
	assert.False(t, ok)
}
